package main

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/dzonerzy/snapopt/opt"
	"github.com/dzonerzy/snapopt/tablefile"
)

// app carries the state shared by every subcommand
type app struct {
	stdout io.Writer
	stderr io.Writer

	v       *viper.Viper
	cfg     *Config
	logger  *log.Logger
	cfgFile string
	verbose bool
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	a := &app{
		stdout: stdout,
		stderr: stderr,
		v:      newViper(),
		logger: log.NewWithOptions(stderr, log.Options{Prefix: "argdump"}),
	}

	root := &cobra.Command{
		Use:   "argdump",
		Short: "Inspect how an option table splits a command line",
		Long: TitleStyle.Render("argdump") + SubtitleStyle.Render(" - inspect parsed argument lists") + `

argdump matches a command line against an option table and prints the
resulting argument list: one row per occurrence, with its option, kind,
values and, for derived lists, the input arg it came from.

Without --table a built-in C compiler driver table is used.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if a.verbose {
				a.logger.SetLevel(log.DebugLevel)
			}
			cfg, err := loadConfig(a.v, a.cfgFile)
			if err != nil {
				return err
			}
			a.cfg = cfg
			a.logger.Debug("configuration loaded", "file", a.cfgFile, "table", cfg.Table)
			return nil
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &ExitError{Code: exitMisuse, Err: err}
	})

	pf := root.PersistentFlags()
	pf.StringVar(&a.cfgFile, "config", "", "config file (TOML, YAML or JSON)")
	pf.BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")
	pf.String("table", "", "option table file (TOML); the built-in table when empty")
	_ = a.v.BindPFlag("table", pf.Lookup("table"))

	root.AddCommand(newParseCmd(a))
	root.AddCommand(newTableCmd(a))
	return root
}

// loadTable returns the configured option table
func (a *app) loadTable() (*opt.Table, error) {
	path := a.cfg.Table
	if path == "" {
		a.logger.Debug("using built-in table")
		t, err := builtinTable()
		if err != nil {
			return nil, &ExitError{Code: exitGeneral, Err: err}
		}
		return t, nil
	}
	t, err := tablefile.LoadFile(path)
	if err != nil {
		return nil, &ExitError{Code: exitInput, Err: err}
	}
	a.logger.Debug("table loaded", "file", path, "options", t.Len())
	return t, nil
}
