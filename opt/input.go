package opt

import (
	"fmt"
	"slices"
)

// InputArgList is the root argument list. It owns the raw argv strings and
// every Arg appended to it; indices held by its Args are offsets into its
// own string arena.
type InputArgList struct {
	argStore
	strings []string
}

var _ ArgList = (*InputArgList)(nil)

// NewInputArgList takes ownership of argv. The slice is copied, so later
// changes by the caller do not leak into the list.
func NewInputArgList(argv []string) *InputArgList {
	return &InputArgList{strings: slices.Clone(argv)}
}

// Append adds a to the end of the list and returns it with its ordinal set.
// Every index a refers to must be a valid slot of this list.
func (l *InputArgList) Append(a Arg) (Arg, error) {
	if a.option == nil {
		return Arg{}, NewParseError(ErrorTypeArity, "cannot append zero Arg")
	}
	if m := a.maxIndex(); m >= len(l.strings) {
		return Arg{}, &ParseError{
			Type:    ErrorTypeIndexRange,
			Message: fmt.Sprintf("arg %s refers to slot %d of %d", a.spelling, m, len(l.strings)),
			Option:  a.spelling,
			Index:   m,
		}
	}
	return l.append(a), nil
}

// ArgString returns raw string i
func (l *InputArgList) ArgString(i int) string {
	if i < 0 || i >= len(l.strings) {
		panic(fmt.Sprintf("opt: raw string index %d out of range [0,%d)", i, len(l.strings)))
	}
	return l.strings[i]
}

// NumInputArgStrings returns the number of owned raw strings
func (l *InputArgList) NumInputArgStrings() int { return len(l.strings) }

// ArgStrings returns a copy of the raw strings
func (l *InputArgList) ArgStrings() []string { return slices.Clone(l.strings) }

// InputArg returns the arg with ordinal i
func (l *InputArgList) InputArg(i int) Arg { return l.Arg(i) }

// ReplaceArgString rewrites slot i in place. Args and derived lists pointing
// at the slot see the new text on their next lookup. It must not run while
// the list is being read elsewhere.
func (l *InputArgList) ReplaceArgString(i int, s string) {
	if i < 0 || i >= len(l.strings) {
		panic(fmt.Sprintf("opt: raw string index %d out of range [0,%d)", i, len(l.strings)))
	}
	l.strings[i] = s
}

// Move transfers the strings and args to a new list and leaves l empty but
// usable. Derived lists built over l keep pointing at l, and so see the
// empty list afterwards.
func (l *InputArgList) Move() *InputArgList {
	dst := &InputArgList{argStore: l.argStore, strings: l.strings}
	l.argStore = argStore{}
	l.strings = nil
	return dst
}

// Release drops both the args and the raw strings. Calling it twice is fine.
func (l *InputArgList) Release() {
	l.releaseArgs()
	l.strings = nil
}

// LastArgValue returns the first value of the last arg matching id, or def
func (l *InputArgList) LastArgValue(id OptSpecifier, def string) string {
	return lastArgValue(l, id, def)
}

// AllArgValues returns the values of every arg matching id, in order
func (l *InputArgList) AllArgValues(id OptSpecifier) []string {
	return allArgValues(l, id)
}

// HasFlag resolves a -ffoo/-fno-foo pair: the last one given wins, def when neither appears
func (l *InputArgList) HasFlag(pos, neg OptSpecifier, def bool) bool {
	return hasFlag(l, pos, neg, def)
}
