package opt

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// ValueRef locates one value of an Arg inside the raw strings of a list.
// Values are resolved lazily, so a slot rewritten with ReplaceArgString is
// seen by every Arg pointing at it.
type ValueRef struct {
	Index  int // raw string slot
	Offset int // byte offset of the value inside the slot
	Part   int // comma separated field of the remainder, -1 for the whole remainder
}

// SeparateValue refers to a whole slot
func SeparateValue(index int) ValueRef {
	return ValueRef{Index: index, Part: -1}
}

// JoinedValue refers to the remainder of a slot after offset bytes
func JoinedValue(index, offset int) ValueRef {
	return ValueRef{Index: index, Offset: offset, Part: -1}
}

// CommaValue refers to the part-th comma separated field after offset bytes
func CommaValue(index, offset, part int) ValueRef {
	return ValueRef{Index: index, Offset: offset, Part: part}
}

func (v ValueRef) resolve(src StringSource) string {
	s := src.ArgString(v.Index)
	if v.Offset > len(s) {
		return ""
	}
	s = s[v.Offset:]
	if v.Part < 0 {
		return s
	}
	for i := 0; i < v.Part; i++ {
		j := strings.IndexByte(s, ',')
		if j < 0 {
			return ""
		}
		s = s[j+1:]
	}
	if j := strings.IndexByte(s, ','); j >= 0 {
		s = s[:j]
	}
	return s
}

// Arg is one occurrence of an option inside an argument list. It stores
// indices into the list's raw strings, never the strings themselves, and is
// not modified after it has been appended.
type Arg struct {
	option   *Option // as matched, possibly an alias
	spelling string  // the prefix+name text the user typed
	index    int
	values   []ValueRef
	ordinal  int
	base     int
}

// NewArg creates an occurrence of o spelled as spelling at slot index. The
// number of values must fit the option's arity.
func NewArg(o *Option, spelling string, index int, values ...ValueRef) (Arg, error) {
	if o == nil {
		return Arg{}, NewParseError(ErrorTypeArity, "arg without option")
	}
	if index < 0 {
		return Arg{}, errorf(ErrorTypeIndexRange, "option '%s': negative index %d", o.PrefixedName(), index)
	}
	lo, hi := o.ExpectedValues()
	if len(values) < lo || (hi >= 0 && len(values) > hi) {
		return Arg{}, &ParseError{
			Type:    ErrorTypeArity,
			Message: fmt.Sprintf("option '%s' (%s) takes %s value(s), got %d", o.PrefixedName(), o.kind, arity(lo, hi), len(values)),
			Option:  o.PrefixedName(),
			Index:   index,
		}
	}
	for _, v := range values {
		if v.Index < 0 || v.Offset < 0 {
			return Arg{}, errorf(ErrorTypeIndexRange, "option '%s': bad value reference %+v", o.PrefixedName(), v)
		}
	}
	if spelling == "" && o.kind != KindInput {
		spelling = o.PrefixedName()
	}
	return Arg{option: o, spelling: spelling, index: index, values: slices.Clone(values), ordinal: -1, base: -1}, nil
}

// InputArg creates a positional input occupying slot index
func InputArg(index int) Arg {
	return Arg{option: inputOption, index: index, values: []ValueRef{SeparateValue(index)}, ordinal: -1, base: -1}
}

// UnknownArg creates an occurrence for an unrecognized option token
func UnknownArg(token string, index int) Arg {
	return Arg{option: unknownOption, spelling: token, index: index, ordinal: -1, base: -1}
}

func arity(lo, hi int) string {
	switch {
	case hi < 0:
		return "at least " + strconv.Itoa(lo)
	case lo == hi:
		return strconv.Itoa(lo)
	default:
		return strconv.Itoa(lo) + ".." + strconv.Itoa(hi)
	}
}

// Option returns the canonical matched option; aliases are already resolved
func (a Arg) Option() *Option {
	if a.option == nil {
		return nil
	}
	return a.option.Canonical()
}

// SpelledOption returns the option exactly as matched, which is the alias
// itself when the user typed an alias spelling.
func (a Arg) SpelledOption() *Option { return a.option }

// Spelling returns the prefix+name text of the occurrence
func (a Arg) Spelling() string { return a.spelling }

// Index returns the raw string slot holding the spelling
func (a Arg) Index() int { return a.index }

// ValueIndices returns the slot of every value, in order. Joined values
// share the spelling slot.
func (a Arg) ValueIndices() []int {
	out := make([]int, len(a.values))
	for i, v := range a.values {
		out[i] = v.Index
	}
	return out
}

// ValueRefs returns the value references
func (a Arg) ValueRefs() []ValueRef {
	return append([]ValueRef(nil), a.values...)
}

// NumValues returns the number of values
func (a Arg) NumValues() int { return len(a.values) }

// Ordinal returns the insertion position inside the owning list, -1 before
// the arg has been appended anywhere.
func (a Arg) Ordinal() int { return a.ordinal }

// BaseOrdinal returns the ordinal of the base list arg this one re-wraps
func (a Arg) BaseOrdinal() (int, bool) {
	return a.base, a.base >= 0
}

// Matches reports whether the arg is an occurrence of the option named by s
func (a Arg) Matches(s OptSpecifier) bool {
	return a.option != nil && a.option.Matches(s)
}

// Value resolves the i-th value through src
func (a Arg) Value(src StringSource, i int) string {
	return a.values[i].resolve(src)
}

// Values resolves every value through src
func (a Arg) Values(src StringSource) []string {
	out := make([]string, len(a.values))
	for i, v := range a.values {
		out[i] = v.resolve(src)
	}
	return out
}

// Render re-emits the occurrence as argv tokens in the shape it was given
func (a Arg) Render(src StringSource) []string {
	switch a.option.kind {
	case KindInput:
		return []string{a.Value(src, 0)}
	case KindUnknown, KindFlag, KindGroup:
		return []string{a.spelling}
	case KindJoined:
		return []string{a.spelling + a.Value(src, 0)}
	case KindJoinedOrSeparate:
		if a.values[0].Index == a.index {
			return []string{a.spelling + a.Value(src, 0)}
		}
		return []string{a.spelling, a.Value(src, 0)}
	case KindCommaJoined:
		return []string{a.spelling + strings.Join(a.Values(src), ",")}
	default:
		return append([]string{a.spelling}, a.Values(src)...)
	}
}

// AsString returns a debug representation with values resolved through src
func (a Arg) AsString(src StringSource) string {
	var b strings.Builder
	b.WriteString("<")
	b.WriteString(a.option.kind.String())
	b.WriteString(" ")
	b.WriteString(strconv.Quote(a.spelling))
	b.WriteString(" index:")
	b.WriteString(strconv.Itoa(a.index))
	if len(a.values) > 0 {
		b.WriteString(" values:")
		for i, v := range a.Values(src) {
			if i > 0 {
				b.WriteString(",")
			}
			b.WriteString(strconv.Quote(v))
		}
	}
	b.WriteString(">")
	return b.String()
}

func (a Arg) withOrdinal(n int) Arg {
	a.ordinal = n
	return a
}

func (a Arg) maxIndex() int {
	m := a.index
	for _, v := range a.values {
		m = max(m, v.Index)
	}
	return m
}
