package main

import "github.com/dzonerzy/snapopt/opt"

// Option ids of the built-in C compiler driver table
const (
	idCompileGroup uint32 = opt.FirstUserID + iota
	idLinkGroup
	idPreprocessGroup
	idCompileOnly
	idAssembleOnly
	idPreprocessOnly
	idOutput
	idOutputLong
	idOptimize
	idOptimizeFast
	idDebug
	idInclude
	idDefine
	idUndefine
	idLibPath
	idLib
	idLinkerArgs
	idAssemblerArgs
	idWarning
	idStd
	idLanguage
	idXlinker
	idArch
	idXarch
	idPIC
	idNoPIC
	idDepFile
	idDepGen
	idVerbose
	idHashHashHash
	idPrintSearchDirs
	idHelp
)

func builtinTable() (*opt.Table, error) {
	return opt.NewTableBuilder().
		Group(idCompileGroup, "<compile>").Back().
		Group(idLinkGroup, "<link>").Back().
		Group(idPreprocessGroup, "<preprocess>").Back().
		Flag(idCompileOnly, "c").Help("Compile and assemble, but do not link").Back().
		Flag(idAssembleOnly, "S").Help("Compile only; do not assemble or link").Back().
		Flag(idPreprocessOnly, "E").Help("Preprocess only").Back().
		Separate(idOutput, "o").Help("Place the output into <file>").Back().
		Separate(idOutputLong, "output").Prefixes("--").AliasOf(idOutput).Back().
		Joined(idOptimize, "O").InGroup(idCompileGroup).Help("Optimization level").Back().
		Flag(idOptimizeFast, "Ofast").InGroup(idCompileGroup).Back().
		Flag(idDebug, "g").InGroup(idCompileGroup).Help("Generate debug information").Back().
		JoinedOrSeparate(idInclude, "I").InGroup(idPreprocessGroup).Help("Add directory to include search path").Back().
		JoinedOrSeparate(idDefine, "D").InGroup(idPreprocessGroup).Help("Define <macro> to <value> (or 1)").Back().
		JoinedOrSeparate(idUndefine, "U").InGroup(idPreprocessGroup).Back().
		JoinedOrSeparate(idLibPath, "L").InGroup(idLinkGroup).Help("Add directory to library search path").Back().
		JoinedOrSeparate(idLib, "l").InGroup(idLinkGroup).Back().
		CommaJoined(idLinkerArgs, "Wl,").InGroup(idLinkGroup).Help("Pass the comma separated arguments to the linker").Back().
		CommaJoined(idAssemblerArgs, "Wa,").Help("Pass the comma separated arguments to the assembler").Back().
		Joined(idWarning, "W").InGroup(idCompileGroup).Back().
		Joined(idStd, "std=").InGroup(idCompileGroup).Help("Language standard to compile for").Back().
		JoinedOrSeparate(idLanguage, "x").Help("Treat subsequent input files as having type <language>").Back().
		Separate(idXlinker, "Xlinker").InGroup(idLinkGroup).Back().
		Separate(idArch, "arch").Back().
		Multi(idXarch, "Xarch", 2).Help("Pass <arg> to the compilation for <arch>").Back().
		Flag(idPIC, "fpic").InGroup(idCompileGroup).Back().
		Flag(idNoPIC, "fno-pic").InGroup(idCompileGroup).Back().
		Separate(idDepFile, "MF").InGroup(idPreprocessGroup).Back().
		Flag(idDepGen, "MD").InGroup(idPreprocessGroup).Back().
		Flag(idVerbose, "v").With(opt.FlagDriverOnly).Help("Show commands to run").Back().
		Flag(idHashHashHash, "###").With(opt.FlagDriverOnly).Help("Print commands to run but do not run them").Back().
		Flag(idPrintSearchDirs, "print-search-dirs").With(opt.FlagDriverOnly).Hidden().Back().
		Flag(idHelp, "help").Prefixes("--", "-").With(opt.FlagDriverOnly).Help("Display available options").Back().
		Build()
}
