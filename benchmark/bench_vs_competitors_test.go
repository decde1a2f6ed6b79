package benchmark_test

import (
	"fmt"
	"testing"

	"github.com/spf13/cobra"
	"github.com/urfave/cli/v2"

	"github.com/dzonerzy/snapopt/opt"
)

// Benchmark a compiler style command line
// Each library gets the same options and the argv spelled the way it accepts:
// opt and pflag take glued values, urfave/cli only separate ones.

const (
	idO uint32 = opt.FirstUserID + iota
	idOutput
	idG
	idInclude
	idDefine
)

func compileTable(b *testing.B) *opt.Table {
	b.Helper()
	t, err := opt.NewTableBuilder().
		Joined(idO, "O").Back().
		Separate(idOutput, "o").Back().
		Flag(idG, "g").Back().
		JoinedOrSeparate(idInclude, "I").Back().
		JoinedOrSeparate(idDefine, "D").Back().
		Build()
	if err != nil {
		b.Fatal(err)
	}
	return t
}

var gluedArgv = []string{"-O2", "-g", "-Iinclude", "-I", "vendor", "-DNDEBUG", "-o", "app", "main.c", "util.c"}

func BenchmarkCompile_Opt(b *testing.B) {
	t := compileTable(b)
	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		l, err := t.ParseArgs(gluedArgv)
		if err != nil {
			b.Fatal(err)
		}
		_ = l.AllArgValues(opt.Spec(idInclude))
		_ = l.AllArgValues(opt.InputSpec)
	}
}

func BenchmarkCompile_Cobra(b *testing.B) {
	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		cmd := &cobra.Command{
			Use: "cc",
			Run: func(_ *cobra.Command, _ []string) {},
		}
		cmd.Flags().StringP("opt", "O", "0", "Optimization level")
		cmd.Flags().StringP("output", "o", "a.out", "Output file")
		cmd.Flags().BoolP("debug", "g", false, "Debug information")
		cmd.Flags().StringArrayP("include", "I", nil, "Include path")
		cmd.Flags().StringArrayP("define", "D", nil, "Macro definition")
		cmd.SetArgs(gluedArgv)
		_ = cmd.Execute()
	}
}

func BenchmarkCompile_Urfave(b *testing.B) {
	args := []string{"cc", "-O", "2", "-g", "-I", "include", "-I", "vendor", "-D", "NDEBUG", "-o", "app", "main.c", "util.c"}
	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		app := &cli.App{
			Name: "cc",
			Flags: []cli.Flag{
				&cli.StringFlag{Name: "O", Value: "0", Usage: "Optimization level"},
				&cli.StringFlag{Name: "o", Value: "a.out", Usage: "Output file"},
				&cli.BoolFlag{Name: "g", Usage: "Debug information"},
				&cli.StringSliceFlag{Name: "I", Usage: "Include path"},
				&cli.StringSliceFlag{Name: "D", Usage: "Macro definition"},
			},
			Action: func(_ *cli.Context) error { return nil },
		}
		_ = app.Run(args)
	}
}

// Benchmark many repeated options
// Include paths are the typical case of one option given dozens of times

func repeatedArgv(n int, glued bool) []string {
	var argv []string
	for i := range n {
		if glued {
			argv = append(argv, fmt.Sprintf("-Idir%d", i))
		} else {
			argv = append(argv, "-I", fmt.Sprintf("dir%d", i))
		}
	}
	return append(argv, "main.c")
}

func BenchmarkRepeated_Opt(b *testing.B) {
	t := compileTable(b)
	args := repeatedArgv(50, true)
	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		l, err := t.ParseArgs(args)
		if err != nil {
			b.Fatal(err)
		}
		if len(l.AllArgValues(opt.Spec(idInclude))) != 50 {
			b.Fatal("include paths lost")
		}
	}
}

func BenchmarkRepeated_Cobra(b *testing.B) {
	args := repeatedArgv(50, true)
	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		cmd := &cobra.Command{
			Use: "cc",
			Run: func(_ *cobra.Command, _ []string) {},
		}
		cmd.Flags().StringArrayP("include", "I", nil, "Include path")
		cmd.SetArgs(args)
		_ = cmd.Execute()
	}
}

func BenchmarkRepeated_Urfave(b *testing.B) {
	args := append([]string{"cc"}, repeatedArgv(50, false)...)
	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		app := &cli.App{
			Name: "cc",
			Flags: []cli.Flag{
				&cli.StringSliceFlag{Name: "I", Usage: "Include path"},
			},
			Action: func(_ *cli.Context) error { return nil },
		}
		_ = app.Run(args)
	}
}
