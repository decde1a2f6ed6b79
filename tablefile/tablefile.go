// Package tablefile reads and writes option tables declared in TOML.
//
// A table file is a list of option entries:
//
//	[[option]]
//	id = 3
//	name = "o"
//	kind = "separate"
//	help = "Write output to <file>"
//
//	[[option]]
//	id = 4
//	name = "output"
//	prefixes = ["--"]
//	kind = "separate"
//	alias = 3
//
// Kinds use the names printed by opt.Kind.String. Prefixes default to "-",
// num_args is only read for multi options.
package tablefile

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/dzonerzy/snapopt/opt"
)

// File is the decoded form of a table file
type File struct {
	Options []Entry `toml:"option"`
}

// Entry is one option definition
type Entry struct {
	ID         uint32   `toml:"id"`
	Name       string   `toml:"name"`
	Prefixes   []string `toml:"prefixes,omitempty"`
	Kind       string   `toml:"kind"`
	NumArgs    int      `toml:"num_args,omitempty"`
	Group      uint32   `toml:"group,omitempty"`
	Alias      uint32   `toml:"alias,omitempty"`
	Help       string   `toml:"help,omitempty"`
	Hidden     bool     `toml:"hidden,omitempty"`
	DriverOnly bool     `toml:"driver_only,omitempty"`
}

// Load decodes a table file from r and builds the table. Unknown keys are
// rejected so typos do not silently drop settings.
func Load(r io.Reader) (*opt.Table, error) {
	var f File
	dec := toml.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&f); err != nil {
		var de *toml.DecodeError
		if errors.As(err, &de) {
			row, col := de.Position()
			return nil, fmt.Errorf("decoding option table at %d:%d: %w", row, col, err)
		}
		return nil, fmt.Errorf("decoding option table: %w", err)
	}
	return f.Build()
}

// LoadFile loads the table file at path
func LoadFile(path string) (*opt.Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading option table: %w", err)
	}
	t, err := Load(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// Build turns the decoded entries into a table
func (f *File) Build() (*opt.Table, error) {
	b := opt.NewTableBuilder()
	for i, e := range f.Options {
		kind, ok := opt.ParseKind(e.Kind)
		if !ok {
			return nil, opt.NewParseError(opt.ErrorTypeBadDefinition,
				fmt.Sprintf("option entry %d (%q): unknown kind %q", i, e.Name, e.Kind))
		}

		var ob *opt.OptionBuilder
		if kind == opt.KindMulti {
			ob = b.Multi(e.ID, e.Name, e.NumArgs)
		} else {
			ob = b.Define(e.ID, e.Name, kind)
		}
		if len(e.Prefixes) > 0 {
			ob.Prefixes(e.Prefixes...)
		}
		if e.Group != 0 {
			ob.InGroup(e.Group)
		}
		if e.Alias != 0 {
			ob.AliasOf(e.Alias)
		}
		if e.Help != "" {
			ob.Help(e.Help)
		}
		if e.Hidden {
			ob.Hidden()
		}
		if e.DriverOnly {
			ob.With(opt.FlagDriverOnly)
		}
	}
	return b.Build()
}

// FromTable converts a built table back to entries. Alias chains come out
// flattened onto their final target.
func FromTable(t *opt.Table) *File {
	f := &File{}
	for _, o := range t.Options() {
		e := Entry{
			ID:         o.ID(),
			Name:       o.Name(),
			Kind:       o.Kind().String(),
			Help:       o.Help(),
			Hidden:     o.Has(opt.FlagHidden),
			DriverOnly: o.Has(opt.FlagDriverOnly),
		}
		if p := o.Prefixes(); o.Kind() != opt.KindGroup && !(len(p) == 1 && p[0] == "-") {
			e.Prefixes = p
		}
		if o.Kind() == opt.KindMulti {
			e.NumArgs = o.NumArgs()
		}
		if g := o.Group(); g != nil {
			e.Group = g.ID()
		}
		if a := o.Alias(); a != nil {
			e.Alias = a.ID()
		}
		f.Options = append(f.Options, e)
	}
	return f
}

// Dump writes t as a table file that Load accepts
func Dump(w io.Writer, t *opt.Table) error {
	enc := toml.NewEncoder(w)
	enc.SetIndentTables(true)
	if err := enc.Encode(FromTable(t)); err != nil {
		return fmt.Errorf("encoding option table: %w", err)
	}
	return nil
}
