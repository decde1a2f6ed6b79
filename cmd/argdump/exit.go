package main

import (
	"errors"

	"github.com/dzonerzy/snapopt/internal/respfile"
	"github.com/dzonerzy/snapopt/opt"
)

const (
	exitOK      = 0
	exitGeneral = 1
	exitMisuse  = 2
	exitInput   = 3
)

// ExitError requests a specific exit code for the wrapped error
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return "exit"
}

func (e *ExitError) Unwrap() error { return e.Err }

var codesByType = map[opt.ErrorType]int{
	opt.ErrorTypeUnknownOption:   exitMisuse,
	opt.ErrorTypeMissingValue:    exitMisuse,
	opt.ErrorTypeArity:           exitGeneral,
	opt.ErrorTypeIndexRange:      exitGeneral,
	opt.ErrorTypeDuplicateOption: exitInput,
	opt.ErrorTypeBadAlias:        exitInput,
	opt.ErrorTypeBadDefinition:   exitInput,
}

// exitCode maps err to a process exit code. An explicit ExitError wins,
// then parse error categories, then response file failures.
func exitCode(err error) int {
	if err == nil {
		return exitOK
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}

	var pe *opt.ParseError
	if errors.As(err, &pe) {
		if code, ok := codesByType[pe.Type]; ok {
			return code
		}
		return exitGeneral
	}

	var re *respfile.Error
	if errors.As(err, &re) {
		return exitInput
	}
	return exitGeneral
}
