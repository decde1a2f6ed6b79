package derive

import (
	"fmt"
	"os"

	"github.com/kballard/go-shellquote"

	"github.com/dzonerzy/snapopt/opt"
)

// Defaults appends argv, parsed through t, for every option the derived
// list did not hold before the pass. Repeated defaults of one option are all
// kept, and inputs among the defaults are always added.
func Defaults(t *opt.Table, argv ...string) Pass {
	return func(out *opt.DerivedArgList) error {
		before := out.Len()
		present := func(s opt.OptSpecifier) bool {
			for i := range before {
				if out.Arg(i).Matches(s) {
					return true
				}
			}
			return false
		}
		return appendParsed(t, out, argv, func(a opt.Arg) bool {
			return a.Matches(opt.InputSpec) || !present(a.Option().Spec())
		})
	}
}

// FromEnv appends the arguments found in environment variable name, split
// with shell quoting rules and parsed through t. An unset or empty variable
// adds nothing.
func FromEnv(t *opt.Table, name string) Pass {
	return func(out *opt.DerivedArgList) error {
		v := os.Getenv(name)
		if v == "" {
			return nil
		}
		argv, err := shellquote.Split(v)
		if err != nil {
			return fmt.Errorf("splitting $%s: %w", name, err)
		}
		if err := appendParsed(t, out, argv, nil); err != nil {
			return fmt.Errorf("parsing $%s: %w", name, err)
		}
		return nil
	}
}
