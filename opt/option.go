package opt

import "fmt"

// Kind represents the value arity of an option
type Kind uint8

const (
	// KindFlag takes no value: -g
	KindFlag Kind = iota
	// KindJoined takes a value glued to the spelling: -O2, -DNAME=1
	KindJoined
	// KindSeparate takes the next token as its value: -o out.o
	KindSeparate
	// KindJoinedOrSeparate uses the glued remainder when present, the next token otherwise: -Ifoo, -I foo
	KindJoinedOrSeparate
	// KindMulti consumes a fixed number of following tokens: -arch_multiple a b
	KindMulti
	// KindCommaJoined splits the glued remainder on commas: -Wl,-rpath,/lib
	KindCommaJoined
	// KindGroup is a pure grouping node and never matches a token
	KindGroup
	// KindInput is a positional input (file name, or anything after "--")
	KindInput
	// KindUnknown is an option-looking token the table does not know
	KindUnknown
)

var kindNames = [...]string{
	KindFlag:             "flag",
	KindJoined:           "joined",
	KindSeparate:         "separate",
	KindJoinedOrSeparate: "joined-or-separate",
	KindMulti:            "multi",
	KindCommaJoined:      "comma-joined",
	KindGroup:            "group",
	KindInput:            "input",
	KindUnknown:          "unknown",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// ParseKind maps the textual kind used by option table files back to a Kind
func ParseKind(s string) (Kind, bool) {
	for k, name := range kindNames {
		if name == s {
			return Kind(k), true
		}
	}
	return 0, false
}

// Visibility flags attached to an option definition
type Visibility uint32

const (
	// FlagHidden keeps the option out of help listings
	FlagHidden Visibility = 1 << iota
	// FlagDriverOnly marks options consumed by the driver and never forwarded to tools
	FlagDriverOnly
)

// Option describes the shape of one option definition. Options are created by
// a TableBuilder and never change once the Table is built.
type Option struct {
	id       uint32
	name     string
	prefixes []string
	kind     Kind
	numArgs  int
	help     string
	flags    Visibility

	groupID uint32
	aliasID uint32

	// resolved by TableBuilder.Build
	group     *Option
	canonical *Option
}

// ID returns the option's own id, which differs from the canonical id for aliases
func (o *Option) ID() uint32 { return o.id }

// Name returns the option name without its prefix
func (o *Option) Name() string { return o.name }

// Prefixes returns the accepted prefixes, preferred spelling first
func (o *Option) Prefixes() []string { return o.prefixes }

// PrefixedName returns the preferred full spelling, e.g. "-O" or "--output="
func (o *Option) PrefixedName() string {
	if len(o.prefixes) == 0 {
		return o.name
	}
	return o.prefixes[0] + o.name
}

// Kind returns the value arity class
func (o *Option) Kind() Kind { return o.kind }

// NumArgs returns the number of values consumed by a KindMulti option
func (o *Option) NumArgs() int { return o.numArgs }

// Help returns the help text
func (o *Option) Help() string { return o.help }

// Has reports whether all visibility flags in v are set
func (o *Option) Has(v Visibility) bool { return o.flags&v == v }

// Visibility returns the raw visibility flags
func (o *Option) Visibility() Visibility { return o.flags }

// Group returns the group this option belongs to, or nil
func (o *Option) Group() *Option { return o.group }

// Alias returns the option this one is an alias of, or nil
func (o *Option) Alias() *Option {
	if o.aliasID == 0 {
		return nil
	}
	return o.canonical
}

// Canonical returns the option every alias in the chain resolves to
func (o *Option) Canonical() *Option {
	if o.canonical == nil {
		return o
	}
	return o.canonical
}

// Spec returns the canonical specifier of the option
func (o *Option) Spec() OptSpecifier {
	return Spec(o.Canonical().id)
}

// Matches reports whether the option is named by s, either through its
// canonical id or through one of the groups the canonical option belongs to.
func (o *Option) Matches(s OptSpecifier) bool {
	if s.id == 0 {
		return false
	}
	c := o.Canonical()
	if c.id == s.id {
		return true
	}
	for g := c.group; g != nil; g = g.group {
		if g.id == s.id {
			return true
		}
	}
	return false
}

// ExpectedValues returns the value count range for an occurrence of this
// option. max is -1 when unbounded.
func (o *Option) ExpectedValues() (minValues, maxValues int) {
	switch o.kind {
	case KindFlag, KindUnknown, KindGroup:
		return 0, 0
	case KindJoined, KindSeparate, KindJoinedOrSeparate, KindInput:
		return 1, 1
	case KindMulti:
		return o.numArgs, o.numArgs
	case KindCommaJoined:
		return 0, -1
	default:
		return 0, 0
	}
}

func (o *Option) String() string {
	if o == nil {
		return "<nil>"
	}
	return o.PrefixedName() + " (" + o.kind.String() + ")"
}

// Built-in options used for positional inputs and unknown tokens. They live
// outside any table and carry reserved ids.
var (
	inputOption   = &Option{id: InputID, name: "<input>", kind: KindInput}
	unknownOption = &Option{id: UnknownID, name: "<unknown>", kind: KindUnknown}
)

const (
	// InputID is the id shared by every positional input
	InputID uint32 = 1
	// UnknownID is the id shared by every unknown option token
	UnknownID uint32 = 2
	// FirstUserID is the lowest id a table may assign to its own options
	FirstUserID uint32 = 3
)

var (
	// InputSpec matches positional inputs
	InputSpec = Spec(InputID)
	// UnknownSpec matches unknown option tokens
	UnknownSpec = Spec(UnknownID)
)
