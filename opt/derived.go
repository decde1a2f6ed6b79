package opt

import (
	"fmt"
	"strings"
)

// DerivedArgList is an argument list layered over an InputArgList. It reads
// raw strings through the base and never copies them. Text it synthesizes
// itself is kept in a small local arena addressed after the base's slots,
// and lives as long as the derived list.
//
// The base must outlive the derived list and must not be moved or released
// while the derived list is in use.
type DerivedArgList struct {
	argStore
	base      *InputArgList
	baseLen   int
	synthetic []string
}

var _ ArgList = (*DerivedArgList)(nil)

// NewDerivedArgList creates an empty derived list over base
func NewDerivedArgList(base *InputArgList) *DerivedArgList {
	return &DerivedArgList{base: base, baseLen: base.NumInputArgStrings()}
}

// Base returns the list this one derives from
func (d *DerivedArgList) Base() *InputArgList { return d.base }

// ArgString resolves slot i through the base, or through the local arena for
// slots created by MakeArgString.
func (d *DerivedArgList) ArgString(i int) string {
	if i < d.baseLen {
		return d.base.ArgString(i)
	}
	j := i - d.baseLen
	if j >= len(d.synthetic) {
		panic(fmt.Sprintf("opt: raw string index %d out of range [0,%d)", i, d.NumArgStrings()))
	}
	return d.synthetic[j]
}

// NumInputArgStrings returns the base's input string count
func (d *DerivedArgList) NumInputArgStrings() int { return d.base.NumInputArgStrings() }

// NumArgStrings counts base slots plus synthesized ones
func (d *DerivedArgList) NumArgStrings() int { return d.baseLen + len(d.synthetic) }

// MakeArgString stores s in the local arena and returns its slot
func (d *DerivedArgList) MakeArgString(s string) int {
	d.synthetic = append(d.synthetic, s)
	return d.baseLen + len(d.synthetic) - 1
}

// Append adds an arg whose indices resolve against this list
func (d *DerivedArgList) Append(a Arg) (Arg, error) {
	if a.option == nil {
		return Arg{}, NewParseError(ErrorTypeArity, "cannot append zero Arg")
	}
	if m := a.maxIndex(); m >= d.NumArgStrings() {
		return Arg{}, &ParseError{
			Type:    ErrorTypeIndexRange,
			Message: fmt.Sprintf("arg %s refers to slot %d of %d", a.spelling, m, d.NumArgStrings()),
			Option:  a.spelling,
			Index:   m,
		}
	}
	return d.append(a), nil
}

// AppendBase re-wraps an arg of the base list. Its indices keep resolving
// through the base, and BaseOrdinal records where it came from.
func (d *DerivedArgList) AppendBase(a Arg) (Arg, error) {
	if a.ordinal < 0 || a.ordinal >= d.base.Len() {
		return Arg{}, errorf(ErrorTypeIndexRange, "arg %s does not belong to the base list", a.spelling)
	}
	if m := a.maxIndex(); m >= d.baseLen {
		return Arg{}, errorf(ErrorTypeIndexRange, "arg %s refers to slot %d outside the base", a.spelling, m)
	}
	a.base = a.ordinal
	return d.append(a), nil
}

// Respell appends base arg a as an occurrence of o, keeping a's values.
// Both options must have the same shape. Rendering uses o's preferred
// spelling while the values still resolve through the base.
func (d *DerivedArgList) Respell(a Arg, o *Option) (Arg, error) {
	if o == nil || a.option == nil {
		return Arg{}, errorf(ErrorTypeArity, "cannot respell %s without an option", a.spelling)
	}
	if a.option.kind != o.kind || a.option.numArgs != o.numArgs {
		return Arg{}, errorf(ErrorTypeArity, "cannot respell %s (%s) as %s (%s)",
			a.spelling, a.option.kind, o.PrefixedName(), o.kind)
	}
	a.option = o
	a.spelling = o.PrefixedName()
	return d.AppendBase(a)
}

// AddFlagArg synthesizes an occurrence of the flag o
func (d *DerivedArgList) AddFlagArg(o *Option) (Arg, error) {
	if o.kind != KindFlag {
		return Arg{}, shapeError(o, "flag")
	}
	a, err := NewArg(o, o.PrefixedName(), d.MakeArgString(o.PrefixedName()))
	if err != nil {
		return Arg{}, err
	}
	return d.append(a), nil
}

// AddJoinedArg synthesizes "<spelling><value>" as one token
func (d *DerivedArgList) AddJoinedArg(o *Option, value string) (Arg, error) {
	if o.kind != KindJoined && o.kind != KindJoinedOrSeparate {
		return Arg{}, shapeError(o, "joined")
	}
	spelling := o.PrefixedName()
	idx := d.MakeArgString(spelling + value)
	a, err := NewArg(o, spelling, idx, JoinedValue(idx, len(spelling)))
	if err != nil {
		return Arg{}, err
	}
	return d.append(a), nil
}

// AddSeparateArg synthesizes "<spelling> <value>" as two tokens
func (d *DerivedArgList) AddSeparateArg(o *Option, value string) (Arg, error) {
	if o.kind != KindSeparate && o.kind != KindJoinedOrSeparate {
		return Arg{}, shapeError(o, "separate")
	}
	spelling := o.PrefixedName()
	idx := d.MakeArgString(spelling)
	v := d.MakeArgString(value)
	a, err := NewArg(o, spelling, idx, SeparateValue(v))
	if err != nil {
		return Arg{}, err
	}
	return d.append(a), nil
}

// AddValuesArg synthesizes a multi or comma-joined occurrence
func (d *DerivedArgList) AddValuesArg(o *Option, values ...string) (Arg, error) {
	spelling := o.PrefixedName()
	switch o.kind {
	case KindMulti:
		idx := d.MakeArgString(spelling)
		refs := make([]ValueRef, len(values))
		for i, v := range values {
			refs[i] = SeparateValue(d.MakeArgString(v))
		}
		a, err := NewArg(o, spelling, idx, refs...)
		if err != nil {
			return Arg{}, err
		}
		return d.append(a), nil
	case KindCommaJoined:
		for _, v := range values {
			if strings.Contains(v, ",") {
				return Arg{}, errorf(ErrorTypeArity, "option '%s': value %q contains a comma", spelling, v)
			}
		}
		idx := d.MakeArgString(spelling + strings.Join(values, ","))
		refs := make([]ValueRef, len(values))
		for i := range values {
			refs[i] = CommaValue(idx, len(spelling), i)
		}
		a, err := NewArg(o, spelling, idx, refs...)
		if err != nil {
			return Arg{}, err
		}
		return d.append(a), nil
	default:
		return Arg{}, shapeError(o, "multi or comma-joined")
	}
}

// AddInputArg synthesizes a positional input
func (d *DerivedArgList) AddInputArg(value string) Arg {
	return d.append(InputArg(d.MakeArgString(value)))
}

// Release drops the args and strings owned by this list. The base is untouched.
func (d *DerivedArgList) Release() {
	d.releaseArgs()
	d.synthetic = nil
}

// LastArgValue returns the first value of the last arg matching id, or def
func (d *DerivedArgList) LastArgValue(id OptSpecifier, def string) string {
	return lastArgValue(d, id, def)
}

// AllArgValues returns the values of every arg matching id, in order
func (d *DerivedArgList) AllArgValues(id OptSpecifier) []string {
	return allArgValues(d, id)
}

// HasFlag resolves a -ffoo/-fno-foo pair: the last one given wins, def when neither appears
func (d *DerivedArgList) HasFlag(pos, neg OptSpecifier, def bool) bool {
	return hasFlag(d, pos, neg, def)
}

func shapeError(o *Option, want string) *ParseError {
	return &ParseError{
		Type:    ErrorTypeArity,
		Message: fmt.Sprintf("option '%s' is %s, not %s", o.PrefixedName(), o.kind, want),
		Option:  o.PrefixedName(),
		Index:   -1,
	}
}
