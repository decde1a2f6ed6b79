package opt

import (
	"fmt"
	"strings"

	"github.com/dzonerzy/snapopt/internal/fuzzy"
)

// ErrorType represents error categories produced while building tables,
// matching argv and constructing args. Binaries map them to exit codes.
type ErrorType string

const (
	ErrorTypeUnknownOption   ErrorType = "unknown_option"
	ErrorTypeMissingValue    ErrorType = "missing_value"
	ErrorTypeArity           ErrorType = "arity"
	ErrorTypeIndexRange      ErrorType = "index_range"
	ErrorTypeDuplicateOption ErrorType = "duplicate_option"
	ErrorTypeBadAlias        ErrorType = "bad_alias"
	ErrorTypeBadDefinition   ErrorType = "bad_definition"
)

// ParseError is the concrete error returned by this package
type ParseError struct {
	Type       ErrorType
	Message    string
	Option     string // spelling of the option involved, if any
	Index      int    // raw string slot the error refers to, -1 when not applicable
	Missing    int    // number of missing values for ErrorTypeMissingValue
	Suggestion string // closest known spelling for ErrorTypeUnknownOption

	// Candidates lists close spellings, best first. Suggestion is the first.
	Candidates []string
}

func (e *ParseError) Error() string {
	if e.Suggestion != "" {
		return e.Message + " (did you mean '" + e.Suggestion + "'?)"
	}
	return e.Message
}

// Is lets errors.Is match on the category: errors.Is(err, &ParseError{Type: ErrorTypeArity})
func (e *ParseError) Is(target error) bool {
	t, ok := target.(*ParseError)
	if !ok {
		return false
	}
	return t.Type == e.Type && (t.Message == "" || t.Message == e.Message)
}

// NewParseError creates a ParseError with the given type and message
func NewParseError(errType ErrorType, message string) *ParseError {
	return &ParseError{Type: errType, Message: message, Index: -1}
}

func errorf(errType ErrorType, format string, args ...any) *ParseError {
	return NewParseError(errType, fmt.Sprintf(format, args...))
}

func missingValueError(o *Option, index, missing int) *ParseError {
	return &ParseError{
		Type:    ErrorTypeMissingValue,
		Message: fmt.Sprintf("option '%s' requires %d more value(s)", o.PrefixedName(), missing),
		Option:  o.PrefixedName(),
		Index:   index,
		Missing: missing,
	}
}

// unknownOptionError builds an error for token, suggesting the closest
// spelling in t. Suggestions compare the part before any '=' or ','.
func (t *Table) unknownOptionError(token string, index int) *ParseError {
	name := token
	if i := strings.IndexAny(name, "=,"); i > 0 {
		name = name[:i]
	}
	pe := &ParseError{
		Type:       ErrorTypeUnknownOption,
		Message:    "unknown argument: '" + token + "'",
		Option:     token,
		Index:      index,
		Candidates: t.Suggestions(name, maxCandidates),
	}
	if len(pe.Candidates) > 0 {
		pe.Suggestion = pe.Candidates[0]
	}
	return pe
}

const maxCandidates = 3

// Suggest returns the known spelling closest to token, or "" when nothing is
// within edit distance 2.
func (t *Table) Suggest(token string) string {
	return fuzzy.FindBestOption(token, t.spellings(), 2)
}

// Suggestions returns up to limit known spellings close to token, best first
func (t *Table) Suggestions(token string, limit int) []string {
	return fuzzy.FindSuggestions(token, t.spellings(), 2, limit)
}
