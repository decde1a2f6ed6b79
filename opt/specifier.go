package opt

import "strconv"

// OptSpecifier identifies an option without referring to its spelling.
// The zero value is the invalid specifier and matches nothing.
type OptSpecifier struct {
	id uint32
}

// Spec returns the specifier for a table id. Any id is accepted; ids that the
// table does not know simply never match.
func Spec(id uint32) OptSpecifier {
	return OptSpecifier{id: id}
}

// ID returns the raw option id
func (s OptSpecifier) ID() uint32 { return s.id }

// IsValid reports whether the specifier names an option at all
func (s OptSpecifier) IsValid() bool { return s.id != 0 }

// Equal reports whether both specifiers carry the same id
func (s OptSpecifier) Equal(other OptSpecifier) bool { return s.id == other.id }

// Matches reports whether o is the option named by s, after alias resolution.
func (s OptSpecifier) Matches(o *Option) bool {
	if o == nil || s.id == 0 {
		return false
	}
	return o.Matches(s)
}

func (s OptSpecifier) String() string {
	return "opt#" + strconv.FormatUint(uint64(s.id), 10)
}
