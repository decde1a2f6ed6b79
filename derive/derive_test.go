package derive

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/d4l3k/messagediff"

	"github.com/dzonerzy/snapopt/opt"
)

const (
	idO uint32 = opt.FirstUserID + iota
	idOutput
	idOutputLong
	idG
	idInclude
	idLinker
	idXarch
	idHashHashHash
	idFast
	idO2
	idOmitFP
)

func newTable(t *testing.T) *opt.Table {
	t.Helper()
	tbl, err := opt.NewTableBuilder().
		Joined(idO, "O").Back().
		Separate(idOutput, "o").Back().
		Separate(idOutputLong, "output").Prefixes("--").AliasOf(idOutput).Back().
		Flag(idG, "g").Back().
		JoinedOrSeparate(idInclude, "I").Back().
		CommaJoined(idLinker, "Wl,").Back().
		Multi(idXarch, "Xarch", 2).Back().
		Flag(idHashHashHash, "###").With(opt.FlagDriverOnly).Back().
		Flag(idFast, "Ofast").Back().
		Flag(idO2, "O2").Back().
		Flag(idOmitFP, "fomit-frame-pointer").Back().
		Build()
	if err != nil {
		t.Fatalf("building table: %v", err)
	}
	return tbl
}

func parse(t *testing.T, tbl *opt.Table, argv ...string) *opt.InputArgList {
	t.Helper()
	l, err := tbl.ParseArgs(argv)
	if err != nil {
		t.Fatalf("ParseArgs(%q): %v", argv, err)
	}
	return l
}

func option(t *testing.T, tbl *opt.Table, id uint32) *opt.Option {
	t.Helper()
	o, ok := tbl.Option(opt.Spec(id))
	if !ok {
		t.Fatalf("option %d missing", id)
	}
	return o
}

func TestTranslateWithoutRulesMirrorsBase(t *testing.T) {
	tbl := newTable(t)
	base := parse(t, tbl, "-O2", "-Iinc", "-o", "a.out", "main.c", "-Wl,-z,now")

	out, err := Translate(base)
	if err != nil {
		t.Fatalf("Translate: %v", err)
	}
	if diff, equal := messagediff.PrettyDiff(opt.RenderArgs(base), opt.RenderArgs(out)); !equal {
		t.Errorf("derived list differs from base:\n%s", diff)
	}
	for i, a := range out.All() {
		if bo, ok := a.BaseOrdinal(); !ok || bo != i {
			t.Errorf("arg %d: base ordinal (%d, %v)", i, bo, ok)
		}
	}
}

func TestRules(t *testing.T) {
	tbl := newTable(t)

	tests := []struct {
		name  string
		argv  []string
		rules func() []Rule
		want  []string
	}{
		{
			name:  "drop",
			argv:  []string{"-g", "-O2", "-g", "main.c"},
			rules: func() []Rule { return []Rule{Drop(opt.Spec(idG))} },
			want:  []string{"-O2", "main.c"},
		},
		{
			name:  "strip driver only",
			argv:  []string{"-###", "main.c"},
			rules: func() []Rule { return []Rule{StripDriverOnly()} },
			want:  []string{"main.c"},
		},
		{
			name:  "rename",
			argv:  []string{"-o", "a.out", "-g"},
			rules: func() []Rule { return []Rule{Rename(opt.Spec(idOutput), option(t, tbl, idOutputLong))} },
			want:  []string{"--output", "a.out", "-g"},
		},
		{
			name: "rewrite value keeps shape",
			argv: []string{"-Iinc", "-I", "lib", "-Wl,a,b", "-Xarch", "x", "y"},
			rules: func() []Rule {
				return []Rule{RewriteValue(opt.Spec(idInclude), strings.ToUpper),
					RewriteValue(opt.Spec(idLinker), strings.ToUpper),
					RewriteValue(opt.Spec(idXarch), strings.ToUpper)}
			},
			want: []string{"-IINC", "-I", "LIB", "-Wl,A,B", "-Xarch", "X", "Y"},
		},
		{
			name: "rewrite inputs",
			argv: []string{"main.c", "-g"},
			rules: func() []Rule {
				return []Rule{RewriteValue(opt.InputSpec, func(s string) string { return filepath.Join("/src", s) })}
			},
			want: []string{"/src/main.c", "-g"},
		},
		{
			name:  "expand",
			argv:  []string{"-Ofast", "main.c"},
			rules: func() []Rule { return []Rule{Expand(tbl, opt.Spec(idFast), "-O3", "-fomit-frame-pointer")} },
			want:  []string{"-O3", "-fomit-frame-pointer", "main.c"},
		},
		{
			name: "first rule wins",
			argv: []string{"-g"},
			rules: func() []Rule {
				return []Rule{Drop(opt.Spec(idG)), Expand(tbl, opt.Spec(idG), "-O2")}
			},
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			base := parse(t, tbl, tt.argv...)
			out, err := Translate(base, tt.rules()...)
			if err != nil {
				t.Fatalf("Translate: %v", err)
			}
			if diff, equal := messagediff.PrettyDiff(tt.want, opt.RenderArgs(out)); !equal {
				t.Errorf("unexpected output:\n%s", diff)
			}
		})
	}
}

func TestRewriteLeavesBaseAlone(t *testing.T) {
	tbl := newTable(t)
	base := parse(t, tbl, "-o", "a.out")
	out, err := Translate(base, RewriteValue(opt.Spec(idOutput), func(string) string { return "b.out" }))
	if err != nil {
		t.Fatalf("Translate: %v", err)
	}
	if got := out.LastArgValue(opt.Spec(idOutput), ""); got != "b.out" {
		t.Errorf("derived -o = %q", got)
	}
	if got := base.LastArgValue(opt.Spec(idOutput), ""); got != "a.out" {
		t.Errorf("base -o = %q", got)
	}
	if _, ok := out.Arg(0).BaseOrdinal(); ok {
		t.Errorf("rewritten arg is synthesized and has no base ordinal")
	}
}

func TestRuleErrors(t *testing.T) {
	tbl := newTable(t)
	base := parse(t, tbl, "-g", "-o", "x")

	_, err := Translate(base, Rename(opt.Spec(idOutput), option(t, tbl, idG)))
	var re *RuleError
	if !errors.As(err, &re) {
		t.Fatalf("expected *RuleError, got %v", err)
	}
	if re.Option != "-o" || re.Index != 1 {
		t.Errorf("error names %q at %d", re.Option, re.Index)
	}
	if !errors.Is(err, &opt.ParseError{Type: opt.ErrorTypeArity}) {
		t.Errorf("cause should be an arity error, got %v", err)
	}

	_, err = Translate(base, Expand(tbl, opt.Spec(idG), "-o"))
	if !errors.Is(err, &opt.ParseError{Type: opt.ErrorTypeMissingValue}) {
		t.Errorf("expected missing value from the expansion, got %v", err)
	}
}

func TestPasses(t *testing.T) {
	tbl := newTable(t)
	base := parse(t, tbl, "-O1", "main.c")
	out, err := Translate(base)
	if err != nil {
		t.Fatalf("Translate: %v", err)
	}

	t.Setenv("CC_EXTRA", `-I "/opt/my include" -bogus`)
	t.Setenv("CC_EMPTY", "")

	err = Post(out,
		Defaults(tbl, "-O3", "-o", "a.out", "crt0.o"),
		FromEnv(tbl, "CC_EXTRA"),
		FromEnv(tbl, "CC_EMPTY"),
	)
	if err != nil {
		t.Fatalf("Post: %v", err)
	}

	want := []string{"-O1", "main.c", "-o", "a.out", "crt0.o", "-I", "/opt/my include", "-bogus"}
	if diff, equal := messagediff.PrettyDiff(want, opt.RenderArgs(out)); !equal {
		t.Errorf("unexpected output:\n%s", diff)
	}
	if got := out.LastArgValue(opt.Spec(idO), ""); got != "1" {
		t.Errorf("default must not override -O1, got %q", got)
	}
	if base.Len() != 2 {
		t.Errorf("passes must not touch the base list")
	}

	t.Setenv("CC_BROKEN", `-I "unterminated`)
	if err := Post(out, FromEnv(tbl, "CC_BROKEN")); err == nil {
		t.Errorf("expected split error")
	}
}

func TestDefaultsKeepsRepeatedOptions(t *testing.T) {
	tbl := newTable(t)

	tests := []struct {
		name     string
		argv     []string
		defaults []string
		want     []string
	}{
		{"all repeats added", []string{"main.c"}, []string{"-Ia", "-Ib"}, []string{"main.c", "-Ia", "-Ib"}},
		{"present before the pass", []string{"-Ix", "main.c"}, []string{"-Ia", "-Ib", "-g"}, []string{"-Ix", "main.c", "-g"}},
		{"alias counts as present", []string{"--output", "x"}, []string{"-o", "y", "-o", "z"}, []string{"--output", "x"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := Translate(parse(t, tbl, tt.argv...))
			if err != nil {
				t.Fatalf("Translate: %v", err)
			}
			if err := Post(out, Defaults(tbl, tt.defaults...)); err != nil {
				t.Fatalf("Post: %v", err)
			}
			if diff, equal := messagediff.PrettyDiff(tt.want, opt.RenderArgs(out)); !equal {
				t.Errorf("unexpected output:\n%s", diff)
			}
		})
	}
}
