package opt

import (
	"slices"
	"sort"
	"strings"
)

// Table is the immutable set of option definitions a driver understands. It
// is built once, before any argument list exists, and then only read.
type Table struct {
	options    []*Option
	byID       map[uint32]*Option
	bySpelling map[string]*Option
	prefixes   []string // distinct prefixes, longest first
	maxLen     int      // longest prefixed spelling
}

// Option returns the definition with the given id. A missing id is reported
// with ok == false and is not an error.
func (t *Table) Option(s OptSpecifier) (*Option, bool) {
	switch s.id {
	case 0:
		return nil, false
	case InputID:
		return inputOption, true
	case UnknownID:
		return unknownOption, true
	}
	o, ok := t.byID[s.id]
	return o, ok
}

// Lookup returns the option whose full spelling (prefix + name) is exactly spelling
func (t *Table) Lookup(spelling string) (*Option, bool) {
	o, ok := t.bySpelling[spelling]
	return o, ok
}

// Options returns every definition in id order, groups and aliases included
func (t *Table) Options() []*Option {
	return slices.Clone(t.options)
}

// Len returns the number of definitions
func (t *Table) Len() int { return len(t.options) }

// Match finds the option with the longest spelling that token starts with.
// Flag, separate and multi options only match the whole token; joined kinds
// accept a trailing value. The returned length is the length of the matched
// spelling inside token.
func (t *Table) Match(token string) (*Option, int, bool) {
	n := min(len(token), t.maxLen)
	for l := n; l > 0; l-- {
		o, ok := t.bySpelling[token[:l]]
		if !ok {
			continue
		}
		switch o.kind {
		case KindFlag, KindSeparate, KindMulti:
			if l != len(token) {
				continue
			}
		}
		return o, l, true
	}
	return nil, 0, false
}

// IsOptionLike reports whether token starts with one of the table's prefixes
// and has something after it. A lone "-" is a positional input (stdin).
func (t *Table) IsOptionLike(token string) bool {
	for _, p := range t.prefixes {
		if len(token) > len(p) && strings.HasPrefix(token, p) {
			return true
		}
	}
	return false
}

func (t *Table) spellings() []string {
	out := make([]string, 0, len(t.bySpelling))
	for s, o := range t.bySpelling {
		if o.Has(FlagHidden) {
			continue
		}
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

// TableBuilder collects option definitions and validates them in Build
type TableBuilder struct {
	options []*Option
}

// NewTableBuilder creates an empty builder
func NewTableBuilder() *TableBuilder {
	return &TableBuilder{options: make([]*Option, 0, 64)}
}

// OptionBuilder provides a fluent interface for one option definition
type OptionBuilder struct {
	opt    *Option
	parent *TableBuilder
}

// Define registers an option of the given kind. The default prefix is "-".
func (b *TableBuilder) Define(id uint32, name string, kind Kind) *OptionBuilder {
	o := &Option{id: id, name: name, kind: kind, prefixes: []string{"-"}}
	if kind == KindGroup {
		o.prefixes = nil
	}
	b.options = append(b.options, o)
	return &OptionBuilder{opt: o, parent: b}
}

// Flag registers an option without value
func (b *TableBuilder) Flag(id uint32, name string) *OptionBuilder {
	return b.Define(id, name, KindFlag)
}

// Joined registers an option whose value is glued to it
func (b *TableBuilder) Joined(id uint32, name string) *OptionBuilder {
	return b.Define(id, name, KindJoined)
}

// Separate registers an option whose value is the next token
func (b *TableBuilder) Separate(id uint32, name string) *OptionBuilder {
	return b.Define(id, name, KindSeparate)
}

// JoinedOrSeparate registers an option accepting both value shapes
func (b *TableBuilder) JoinedOrSeparate(id uint32, name string) *OptionBuilder {
	return b.Define(id, name, KindJoinedOrSeparate)
}

// CommaJoined registers an option whose glued value is a comma separated list
func (b *TableBuilder) CommaJoined(id uint32, name string) *OptionBuilder {
	return b.Define(id, name, KindCommaJoined)
}

// Multi registers an option consuming n following tokens
func (b *TableBuilder) Multi(id uint32, name string, n int) *OptionBuilder {
	ob := b.Define(id, name, KindMulti)
	ob.opt.numArgs = n
	return ob
}

// Group registers a grouping node other options can join
func (b *TableBuilder) Group(id uint32, name string) *OptionBuilder {
	return b.Define(id, name, KindGroup)
}

// Prefixes replaces the accepted prefixes; the first one is preferred when rendering
func (ob *OptionBuilder) Prefixes(prefixes ...string) *OptionBuilder {
	ob.opt.prefixes = slices.Clone(prefixes)
	return ob
}

// InGroup puts the option into the group with the given id
func (ob *OptionBuilder) InGroup(group uint32) *OptionBuilder {
	ob.opt.groupID = group
	return ob
}

// AliasOf makes the option an alternative spelling of target
func (ob *OptionBuilder) AliasOf(target uint32) *OptionBuilder {
	ob.opt.aliasID = target
	return ob
}

// Help sets the help text
func (ob *OptionBuilder) Help(text string) *OptionBuilder {
	ob.opt.help = text
	return ob
}

// With sets visibility flags
func (ob *OptionBuilder) With(v Visibility) *OptionBuilder {
	ob.opt.flags |= v
	return ob
}

// Hidden keeps the option out of help listings and suggestions
func (ob *OptionBuilder) Hidden() *OptionBuilder { return ob.With(FlagHidden) }

// Back returns to the parent builder
func (ob *OptionBuilder) Back() *TableBuilder { return ob.parent }

// Build validates the definitions and produces the immutable table. Alias
// chains are resolved here so every option knows its canonical option.
//
//nolint:gocognit // validation is a flat list of checks
func (b *TableBuilder) Build() (*Table, error) {
	t := &Table{
		byID:       make(map[uint32]*Option, len(b.options)),
		bySpelling: make(map[string]*Option, len(b.options)),
	}

	for _, o := range b.options {
		if o.id < FirstUserID {
			return nil, errorf(ErrorTypeBadDefinition, "option %q: id %d is reserved", o.name, o.id)
		}
		if o.name == "" {
			return nil, errorf(ErrorTypeBadDefinition, "option #%d: empty name", o.id)
		}
		if _, dup := t.byID[o.id]; dup {
			return nil, errorf(ErrorTypeDuplicateOption, "option %q: id %d already defined", o.name, o.id)
		}
		if o.kind == KindMulti && o.numArgs < 1 {
			return nil, errorf(ErrorTypeBadDefinition, "option %q: multi option needs at least one value", o.name)
		}
		if o.kind == KindInput || o.kind == KindUnknown {
			return nil, errorf(ErrorTypeBadDefinition, "option %q: kind %s is reserved", o.name, o.kind)
		}
		if o.kind != KindGroup && len(o.prefixes) == 0 {
			return nil, errorf(ErrorTypeBadDefinition, "option %q: no prefix", o.name)
		}
		if o.kind == KindGroup && len(o.prefixes) > 0 {
			return nil, errorf(ErrorTypeBadDefinition, "group %q cannot be spelled on a command line", o.name)
		}
		t.byID[o.id] = o
		t.options = append(t.options, o)
	}

	for _, o := range t.options {
		if o.groupID != 0 {
			g, ok := t.byID[o.groupID]
			if !ok || g.kind != KindGroup {
				return nil, errorf(ErrorTypeBadDefinition, "option %q: group %d is not a group", o.name, o.groupID)
			}
			o.group = g
		}
		for _, p := range o.prefixes {
			s := p + o.name
			if prev, dup := t.bySpelling[s]; dup {
				return nil, errorf(ErrorTypeDuplicateOption, "spelling %q used by options %d and %d", s, prev.id, o.id)
			}
			t.bySpelling[s] = o
			t.maxLen = max(t.maxLen, len(s))
			if !slices.Contains(t.prefixes, p) {
				t.prefixes = append(t.prefixes, p)
			}
		}
	}

	for _, o := range t.options {
		if err := checkGroupCycle(o); err != nil {
			return nil, err
		}
		if o.aliasID == 0 {
			continue
		}
		target, err := t.resolveAlias(o)
		if err != nil {
			return nil, err
		}
		o.canonical = target
	}

	sort.Slice(t.options, func(i, j int) bool { return t.options[i].id < t.options[j].id })
	sort.Slice(t.prefixes, func(i, j int) bool { return len(t.prefixes[i]) > len(t.prefixes[j]) })
	return t, nil
}

func (t *Table) resolveAlias(o *Option) (*Option, error) {
	seen := map[uint32]bool{o.id: true}
	cur := o
	for cur.aliasID != 0 {
		next, ok := t.byID[cur.aliasID]
		if !ok {
			return nil, errorf(ErrorTypeBadAlias, "option %q: alias target %d does not exist", o.name, cur.aliasID)
		}
		if seen[next.id] {
			return nil, errorf(ErrorTypeBadAlias, "option %q: alias cycle through %d", o.name, next.id)
		}
		seen[next.id] = true
		cur = next
	}
	if cur.kind == KindGroup {
		return nil, errorf(ErrorTypeBadAlias, "option %q: cannot alias group %q", o.name, cur.name)
	}
	if cur.kind != o.kind || cur.numArgs != o.numArgs {
		return nil, errorf(ErrorTypeBadAlias, "option %q (%s) aliases %q (%s) with a different shape",
			o.name, o.kind, cur.name, cur.kind)
	}
	return cur, nil
}

func checkGroupCycle(o *Option) error {
	seen := map[*Option]bool{}
	for g := o.group; g != nil; g = g.group {
		if seen[g] {
			return errorf(ErrorTypeBadDefinition, "option %q: group cycle through %q", o.name, g.name)
		}
		seen[g] = true
	}
	return nil
}
