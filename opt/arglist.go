package opt

import (
	"iter"
	"strings"
)

// StringSource gives access to the raw strings an Arg's indices point into.
// Both list kinds implement it; a derived list forwards to its base.
type StringSource interface {
	// ArgString returns the raw string in slot i. An index that was not
	// obtained from an Arg of a compatible list is a programming error and
	// panics.
	ArgString(i int) string
	// NumInputArgStrings returns the number of raw strings that came from
	// the input argv. A derived list may resolve further slots above this
	// count for strings it created itself; see DerivedArgList.NumArgStrings.
	NumInputArgStrings() int
}

// ArgList is an ordered, append-only sequence of Args with lookup by
// specifier. Later occurrences of an option override earlier ones for the
// "last" queries.
type ArgList interface {
	StringSource

	Len() int
	Arg(i int) Arg
	All() iter.Seq2[int, Arg]

	HasArg(ids ...OptSpecifier) bool
	LastArg(ids ...OptSpecifier) (Arg, bool)
	LastArgValue(id OptSpecifier, def string) string
	AllArgValues(id OptSpecifier) []string
	Filtered(ids ...OptSpecifier) []Arg
	HasFlag(pos, neg OptSpecifier, def bool) bool
}

// argStore is the arena of Args shared by both list kinds. Args are stored
// by value and addressed by position, which is also their ordinal.
type argStore struct {
	args []Arg
}

func (s *argStore) append(a Arg) Arg {
	a = a.withOrdinal(len(s.args))
	s.args = append(s.args, a)
	return a
}

// Len returns the number of args
func (s *argStore) Len() int { return len(s.args) }

// Arg returns the arg with ordinal i
func (s *argStore) Arg(i int) Arg { return s.args[i] }

// All iterates over args in insertion order
func (s *argStore) All() iter.Seq2[int, Arg] {
	return func(yield func(int, Arg) bool) {
		for i, a := range s.args {
			if !yield(i, a) {
				return
			}
		}
	}
}

// HasArg reports whether any arg matches one of ids. Matching goes through
// the canonical option, so an alias spelling satisfies a query for its
// target, and a group id matches every member.
func (s *argStore) HasArg(ids ...OptSpecifier) bool {
	for _, a := range s.args {
		if matchesAny(a, ids) {
			return true
		}
	}
	return false
}

// LastArg returns the most recently appended arg matching one of ids
func (s *argStore) LastArg(ids ...OptSpecifier) (Arg, bool) {
	for i := len(s.args) - 1; i >= 0; i-- {
		if matchesAny(s.args[i], ids) {
			return s.args[i], true
		}
	}
	return Arg{}, false
}

// Filtered returns every arg matching one of ids, in order
func (s *argStore) Filtered(ids ...OptSpecifier) []Arg {
	var out []Arg
	for _, a := range s.args {
		if matchesAny(a, ids) {
			out = append(out, a)
		}
	}
	return out
}

func (s *argStore) releaseArgs() {
	s.args = nil
}

func matchesAny(a Arg, ids []OptSpecifier) bool {
	for _, id := range ids {
		if a.Matches(id) {
			return true
		}
	}
	return false
}

// The value queries need the concrete list as StringSource, so they are
// written once here and wrapped by both list kinds.

func lastArgValue(l ArgList, id OptSpecifier, def string) string {
	a, ok := l.LastArg(id)
	if !ok || a.NumValues() == 0 {
		return def
	}
	return a.Value(l, 0)
}

func allArgValues(l ArgList, id OptSpecifier) []string {
	var out []string
	for _, a := range l.Filtered(id) {
		out = append(out, a.Values(l)...)
	}
	return out
}

func hasFlag(l ArgList, pos, neg OptSpecifier, def bool) bool {
	a, ok := l.LastArg(pos, neg)
	if !ok {
		return def
	}
	return a.Matches(pos)
}

// RenderArgs re-emits every arg of l as argv tokens, in order
func RenderArgs(l ArgList) []string {
	out := make([]string, 0, l.Len())
	for _, a := range l.All() {
		out = append(out, a.Render(l)...)
	}
	return out
}

// Dump returns one AsString line per arg, for debugging
func Dump(l ArgList) string {
	var b strings.Builder
	for i, a := range l.All() {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(a.AsString(l))
	}
	return b.String()
}
