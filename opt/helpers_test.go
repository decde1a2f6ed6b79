//nolint:testpackage // using package name 'opt' to access unexported fields for testing
package opt

import "testing"

// Ids of the small compiler table used throughout the tests.
const (
	idCompileGroup uint32 = FirstUserID + iota
	idO
	idOutput
	idG
	idInclude
	idLinker
	idDefine
	idOutputLong
	idXarch
	idPIC
	idNoPIC
	idO2
	idO3
	idHashHashHash
	idVerbose
)

func newTestTable(t testing.TB) *Table {
	t.Helper()
	tbl, err := NewTableBuilder().
		Group(idCompileGroup, "<compile>").Back().
		Joined(idO, "O").InGroup(idCompileGroup).Help("Optimization level").Back().
		Separate(idOutput, "o").Help("Write output to <file>").Back().
		Flag(idG, "g").InGroup(idCompileGroup).Back().
		JoinedOrSeparate(idInclude, "I").Back().
		CommaJoined(idLinker, "Wl,").Back().
		Joined(idDefine, "D").Back().
		Separate(idOutputLong, "output").Prefixes("--").AliasOf(idOutput).Back().
		Multi(idXarch, "Xarch", 2).Back().
		Flag(idPIC, "fpic").Back().
		Flag(idNoPIC, "fno-pic").Back().
		Flag(idO2, "O2").InGroup(idCompileGroup).Back().
		Flag(idO3, "O3").InGroup(idCompileGroup).Back().
		Flag(idHashHashHash, "###").With(FlagDriverOnly).Back().
		Flag(idVerbose, "v").Back().
		Build()
	if err != nil {
		t.Fatalf("failed to build test table: %v", err)
	}
	return tbl
}

func mustOption(t testing.TB, tbl *Table, id uint32) *Option {
	t.Helper()
	o, ok := tbl.Option(Spec(id))
	if !ok {
		t.Fatalf("option %d not in table", id)
	}
	return o
}

func mustParse(t testing.TB, tbl *Table, argv ...string) *InputArgList {
	t.Helper()
	l, err := tbl.ParseArgs(argv)
	if err != nil {
		t.Fatalf("ParseArgs(%q) failed: %v", argv, err)
	}
	return l
}

func expectPanic(t *testing.T, what string, fn func()) {
	t.Helper()
	defer func() {
		if recover() == nil {
			t.Errorf("%s: expected panic", what)
		}
	}()
	fn()
}
