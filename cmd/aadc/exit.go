package main

import (
	"errors"
	"fmt"

	"aadc/internal/source"
)

// Exit codes, stable for scripting.
const (
	exitSuccess     = 0
	exitError       = 1
	exitInvalidArgs = 2
	exitWouldChange = 3
	exitParseError  = 4
)

// usageError marks command-line misuse so main can exit with the
// dedicated code instead of the generic failure one.
type usageError struct {
	msg string
}

func (e *usageError) Error() string { return e.msg }

func usageErrorf(format string, args ...any) *usageError {
	return &usageError{msg: fmt.Sprintf(format, args...)}
}

// errWouldChange signals a dry run that found pending corrections.
var errWouldChange = errors.New("corrections pending")

// reportedError wraps an error already printed to stderr so main only
// maps it to an exit code.
type reportedError struct {
	err error
}

func (e *reportedError) Error() string { return e.err.Error() }
func (e *reportedError) Unwrap() error { return e.err }

func exitCodeFor(err error) int {
	if err == nil {
		return exitSuccess
	}
	var usage *usageError
	if errors.As(err, &usage) {
		return exitInvalidArgs
	}
	if errors.Is(err, errWouldChange) {
		return exitWouldChange
	}
	var decode *source.DecodeError
	if errors.As(err, &decode) {
		return exitParseError
	}
	return exitError
}
