package core

import (
	"errors"
	"fmt"
)

// Exit codes returned by the command line.
const (
	ExitOK         = 0
	ExitHandled    = 1
	ExitUnexpected = 2
)

// ErrNoRequirements reports an input file without any requirement row.
var ErrNoRequirements = errors.New("no requirements found")

// InputError represents unusable input: a missing file, a bad header,
// an invalid row or an empty requirement set.
type InputError struct {
	Path string
	Err  error
}

func (e *InputError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("input %s: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("input: %v", e.Err)
}

func (e *InputError) Unwrap() error {
	return e.Err
}

// IOError represents a failure to write results.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

// ExitCode maps a run error to the process exit status: 0 on success,
// 1 for input and output problems the user can fix, 2 for anything else.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}

	var inputErr *InputError
	var ioErr *IOError
	if errors.As(err, &inputErr) || errors.As(err, &ioErr) {
		return ExitHandled
	}
	return ExitUnexpected
}
