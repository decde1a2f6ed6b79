package main

import (
	"fmt"

	"github.com/gobwas/glob"
	"github.com/kballard/go-shellquote"
	"github.com/spf13/cobra"

	"github.com/dzonerzy/snapopt/derive"
	"github.com/dzonerzy/snapopt/internal/respfile"
	"github.com/dzonerzy/snapopt/opt"
)

type parseOptions struct {
	defaults []string
	match    string
	render   bool
	raw      bool
	noRsp    bool
}

func newParseCmd(a *app) *cobra.Command {
	o := &parseOptions{}
	cmd := &cobra.Command{
		Use:   "parse [flags] -- <argv...>",
		Short: "Parse a command line and print its argument list",
		Example: `  argdump parse -- -O2 -Iinclude -o app main.c
  argdump parse --default -O0 --default -g -- -c main.c
  argdump parse --match '-W*' -- -Wall -Wl,-z,now main.c
  argdump parse --render -- @flags.rsp main.c`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("default") {
				a.cfg.Defaults = o.defaults
			}
			return a.runParse(o, args)
		},
	}

	f := cmd.Flags()
	f.StringArrayVar(&o.defaults, "default", nil, "argument appended when its option is absent (repeatable)")
	f.String("env", "", "environment variable holding extra arguments")
	f.StringVar(&o.match, "match", "", "only show args whose option matches this glob")
	f.Bool("strict", false, "reject unknown options")
	f.Bool("drop-driver-only", false, "remove driver-only options from the derived list")
	f.Bool("relative-response-files", false, "resolve nested @file references against the including file")
	f.BoolVar(&o.render, "render", false, "print the re-emitted command line instead of a table")
	f.BoolVar(&o.raw, "raw", false, "show the parsed input list without derivation")
	f.BoolVar(&o.noRsp, "no-response-files", false, "treat @file arguments literally")

	_ = a.v.BindPFlag("env", f.Lookup("env"))
	_ = a.v.BindPFlag("strict", f.Lookup("strict"))
	_ = a.v.BindPFlag("drop_driver_only", f.Lookup("drop-driver-only"))
	_ = a.v.BindPFlag("relative_response_files", f.Lookup("relative-response-files"))
	return cmd
}

func (a *app) runParse(o *parseOptions, argv []string) error {
	tbl, err := a.loadTable()
	if err != nil {
		return err
	}

	var m glob.Glob
	if o.match != "" {
		m, err = glob.Compile(o.match)
		if err != nil {
			return &ExitError{Code: exitMisuse, Err: fmt.Errorf("bad --match pattern: %w", err)}
		}
	}

	if !o.noRsp {
		var rspOpts []respfile.Option
		if a.cfg.RelativeRsp {
			rspOpts = append(rspOpts, respfile.RelativeToFile())
		}
		n := len(argv)
		argv, err = respfile.Expand(argv, rspOpts...)
		if err != nil {
			return err
		}
		a.logger.Debug("response files expanded", "before", n, "after", len(argv))
	}

	var parseOpts []opt.ParseOption
	if a.cfg.Strict {
		parseOpts = append(parseOpts, opt.WithStrictUnknown())
	}
	in, err := tbl.ParseArgs(argv, parseOpts...)
	if err != nil {
		return err
	}
	defer in.Release()
	a.logger.Debug("parsed", "strings", in.NumInputArgStrings(), "args", in.Len())

	var list opt.ArgList = in
	if !o.raw {
		out, err := a.derive(tbl, in)
		if err != nil {
			return err
		}
		defer out.Release()
		list = out
	}

	if o.render {
		_, err := fmt.Fprintln(a.stdout, shellquote.Join(opt.RenderArgs(list)...))
		return err
	}
	return writeTable(a.stdout, argHeader, argRows(list, m))
}

// derive applies the configured rules and passes to in
func (a *app) derive(tbl *opt.Table, in *opt.InputArgList) (*opt.DerivedArgList, error) {
	var rules []derive.Rule
	if a.cfg.DropDriverOnly {
		rules = append(rules, derive.StripDriverOnly())
	}
	out, err := derive.Translate(in, rules...)
	if err != nil {
		return nil, err
	}

	var passes []derive.Pass
	if len(a.cfg.Defaults) > 0 {
		passes = append(passes, derive.Defaults(tbl, a.cfg.Defaults...))
	}
	if a.cfg.Env != "" {
		passes = append(passes, derive.FromEnv(tbl, a.cfg.Env))
	}
	if err := derive.Post(out, passes...); err != nil {
		return nil, err
	}
	a.logger.Debug("derived", "args", out.Len(), "synthesized", out.NumArgStrings()-out.NumInputArgStrings())
	return out, nil
}
