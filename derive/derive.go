// Package derive turns a parsed argument list into the derived list a tool
// actually consumes. Rules look at one input arg at a time and decide what
// ends up in the output; passes run afterwards over the whole output.
package derive

import (
	"fmt"

	"github.com/dzonerzy/snapopt/opt"
)

// Rule handles one arg of the input list. It returns true when it has taken
// care of the arg, in which case later rules and the default re-wrap are
// skipped for it.
type Rule func(a opt.Arg, in *opt.InputArgList, out *opt.DerivedArgList) (bool, error)

// Pass runs over the derived list once every input arg has been handled
type Pass func(out *opt.DerivedArgList) error

// RuleError reports which arg a rule failed on
type RuleError struct {
	Option string
	Index  int
	Cause  error
}

func (e *RuleError) Error() string {
	return fmt.Sprintf("translating '%s' at %d: %v", e.Option, e.Index, e.Cause)
}

func (e *RuleError) Unwrap() error { return e.Cause }

// Translate builds a derived list over base. Args no rule handles are
// re-wrapped unchanged, so with no rules the result mirrors base.
func Translate(base *opt.InputArgList, rules ...Rule) (*opt.DerivedArgList, error) {
	out := opt.NewDerivedArgList(base)
	rule := Chain(rules...)
	for _, a := range base.All() {
		handled, err := rule(a, base, out)
		if err != nil {
			return out, &RuleError{Option: a.Spelling(), Index: a.Index(), Cause: err}
		}
		if handled {
			continue
		}
		if _, err := out.AppendBase(a); err != nil {
			return out, err
		}
	}
	return out, nil
}

// Post runs passes over out in order and stops at the first error
func Post(out *opt.DerivedArgList, passes ...Pass) error {
	for _, p := range passes {
		if err := p(out); err != nil {
			return err
		}
	}
	return nil
}

// Chain combines rules; the first one to handle an arg wins
func Chain(rules ...Rule) Rule {
	return func(a opt.Arg, in *opt.InputArgList, out *opt.DerivedArgList) (bool, error) {
		for _, r := range rules {
			handled, err := r(a, in, out)
			if err != nil || handled {
				return handled, err
			}
		}
		return false, nil
	}
}

// Drop removes every arg matching one of ids
func Drop(ids ...opt.OptSpecifier) Rule {
	return func(a opt.Arg, _ *opt.InputArgList, _ *opt.DerivedArgList) (bool, error) {
		for _, id := range ids {
			if a.Matches(id) {
				return true, nil
			}
		}
		return false, nil
	}
}

// StripDriverOnly removes options flagged opt.FlagDriverOnly
func StripDriverOnly() Rule {
	return func(a opt.Arg, _ *opt.InputArgList, _ *opt.DerivedArgList) (bool, error) {
		return a.Option().Has(opt.FlagDriverOnly), nil
	}
}

// Rename respells args matching from as to. The values keep pointing at the
// input strings.
func Rename(from opt.OptSpecifier, to *opt.Option) Rule {
	return func(a opt.Arg, _ *opt.InputArgList, out *opt.DerivedArgList) (bool, error) {
		if !a.Matches(from) {
			return false, nil
		}
		if _, err := out.Respell(a, to); err != nil {
			return false, err
		}
		return true, nil
	}
}

// RewriteValue replaces each value of args matching id with fn(value). The
// new text is stored in the derived list; the input is left alone.
func RewriteValue(id opt.OptSpecifier, fn func(string) string) Rule {
	return func(a opt.Arg, in *opt.InputArgList, out *opt.DerivedArgList) (bool, error) {
		if !a.Matches(id) || a.NumValues() == 0 {
			return false, nil
		}
		values := a.Values(in)
		for i, v := range values {
			values[i] = fn(v)
		}
		if _, err := synthesize(out, a, values); err != nil {
			return false, err
		}
		return true, nil
	}
}

// Expand replaces args matching id with replacement, parsed through t
func Expand(t *opt.Table, id opt.OptSpecifier, replacement ...string) Rule {
	return func(a opt.Arg, _ *opt.InputArgList, out *opt.DerivedArgList) (bool, error) {
		if !a.Matches(id) {
			return false, nil
		}
		if err := appendParsed(t, out, replacement, nil); err != nil {
			return false, err
		}
		return true, nil
	}
}

// Copy appends a synthesized copy of a, whose values resolve through src,
// to out. Use it to move args between unrelated lists.
func Copy(out *opt.DerivedArgList, a opt.Arg, src opt.StringSource) (opt.Arg, error) {
	return synthesize(out, a, a.Values(src))
}

// synthesize appends an arg shaped like a but carrying values
func synthesize(out *opt.DerivedArgList, a opt.Arg, values []string) (opt.Arg, error) {
	o := a.Option()
	switch o.Kind() {
	case opt.KindFlag:
		return out.AddFlagArg(o)
	case opt.KindJoined:
		return out.AddJoinedArg(o, values[0])
	case opt.KindJoinedOrSeparate:
		if a.ValueRefs()[0].Index == a.Index() {
			return out.AddJoinedArg(o, values[0])
		}
		return out.AddSeparateArg(o, values[0])
	case opt.KindSeparate:
		return out.AddSeparateArg(o, values[0])
	case opt.KindMulti, opt.KindCommaJoined:
		return out.AddValuesArg(o, values...)
	case opt.KindInput:
		return out.AddInputArg(values[0]), nil
	case opt.KindUnknown:
		return out.Append(opt.UnknownArg(a.Spelling(), out.MakeArgString(a.Spelling())))
	default:
		return opt.Arg{}, fmt.Errorf("cannot synthesize %s arg %q", o.Kind(), a.Spelling())
	}
}

// appendParsed parses argv through t and appends a copy of every resulting
// arg accepted by keep, or all of them when keep is nil.
func appendParsed(t *opt.Table, out *opt.DerivedArgList, argv []string, keep func(opt.Arg) bool) error {
	l, err := t.ParseArgs(argv)
	if err != nil {
		return err
	}
	defer l.Release()
	for _, a := range l.All() {
		if keep != nil && !keep(a) {
			continue
		}
		if _, err := Copy(out, a, l); err != nil {
			return err
		}
	}
	return nil
}
