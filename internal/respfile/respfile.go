// Package respfile expands @file arguments into the tokens stored in the
// named file, the way compiler drivers accept long command lines.
package respfile

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/kballard/go-shellquote"
)

// MaxDepth bounds how deeply response files may include each other
const MaxDepth = 20

// ErrCycle is returned when a response file includes itself, directly or not
var ErrCycle = errors.New("response file includes itself")

// ErrTooDeep is returned when nesting exceeds MaxDepth
var ErrTooDeep = errors.New("response files nested too deeply")

// Error wraps a failure while reading or tokenizing a response file
type Error struct {
	File string
	Err  error
}

func (e *Error) Error() string { return fmt.Sprintf("response file %s: %v", e.File, e.Err) }

func (e *Error) Unwrap() error { return e.Err }

type config struct {
	fsys           fs.FS
	wd             string
	relativeToFile bool
	strict         bool
}

// Option configures Expand
type Option func(*config)

// WithFS reads response files from fsys instead of the working directory.
// Names are cleaned and stripped of a leading "/" before opening.
func WithFS(fsys fs.FS) Option {
	return func(c *config) { c.fsys = fsys }
}

// RelativeToFile resolves @file references found inside a response file
// against that file's directory instead of the working directory.
func RelativeToFile() Option {
	return func(c *config) { c.relativeToFile = true }
}

// Strict makes a missing response file an error. By default the token is
// kept verbatim.
func Strict() Option {
	return func(c *config) { c.strict = true }
}

// Expand returns argv with every @file token replaced by the contents of
// file, tokenized with POSIX shell quoting rules. argv is not modified.
func Expand(argv []string, opts ...Option) ([]string, error) {
	cfg := config{}
	for _, apply := range opts {
		apply(&cfg)
	}
	if cfg.fsys == nil {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("resolving response files: %w", err)
		}
		cfg.fsys = os.DirFS("/")
		cfg.wd = filepath.ToSlash(wd)
	}
	e := &expander{cfg: cfg, active: make(map[string]bool)}
	return e.expand(argv, "", 0)
}

type expander struct {
	cfg    config
	active map[string]bool
}

func (e *expander) expand(argv []string, dir string, depth int) ([]string, error) {
	out := make([]string, 0, len(argv))
	for _, tok := range argv {
		name, ok := strings.CutPrefix(tok, "@")
		if !ok || name == "" {
			out = append(out, tok)
			continue
		}

		p := e.resolve(name, dir)
		data, err := fs.ReadFile(e.cfg.fsys, p)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) && !e.cfg.strict {
				out = append(out, tok)
				continue
			}
			return nil, &Error{File: name, Err: err}
		}

		if e.active[p] {
			return nil, &Error{File: name, Err: ErrCycle}
		}
		if depth >= MaxDepth {
			return nil, &Error{File: name, Err: ErrTooDeep}
		}

		words, err := shellquote.Split(string(data))
		if err != nil {
			return nil, &Error{File: name, Err: err}
		}

		next := dir
		if e.cfg.relativeToFile {
			next = path.Dir(p)
		}
		e.active[p] = true
		nested, err := e.expand(words, next, depth+1)
		delete(e.active, p)
		if err != nil {
			return nil, err
		}
		out = append(out, nested...)
	}
	return out, nil
}

// resolve maps a reference to a name inside the filesystem. Relative names
// are joined with dir, or with the configured working directory at the top
// level.
func (e *expander) resolve(name, dir string) string {
	if !path.IsAbs(name) {
		if dir == "" {
			dir = e.cfg.wd
		}
		name = path.Join(dir, name)
	}
	return strings.TrimPrefix(path.Clean(name), "/")
}
