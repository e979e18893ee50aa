package errors

import (
	"errors"
	"fmt"
)

var (
	ErrSourcesMissing = errors.New("sources directory missing or unreadable")
	ErrFileUnreadable = errors.New("source file unreadable")
	ErrBadEncoding    = errors.New("record not decodable as text")
	ErrOutputWrite    = errors.New("cannot write output")
	ErrInvalidConfig  = errors.New("invalid configuration")
	ErrInternal       = errors.New("internal error")
)

// Exit codes reported by the CLI. Recoverable per-file and per-record
// failures never surface here; only errors that prevent producing any
// output map to a non-zero code.
const (
	ExitOK       = 0
	ExitFailure  = 1
	ExitBadUsage = 2
)

type AppError struct {
	Err     error
	Path    string
	Message string
}

func (e *AppError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s: %s", e.Err.Error(), e.Path, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Err.Error(), e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New wraps a sentinel with the offending path and a human-readable reason.
func New(sentinel error, path string, message string) *AppError {
	return &AppError{
		Err:     sentinel,
		Path:    path,
		Message: message,
	}
}

func Newf(sentinel error, path string, format string, args ...any) *AppError {
	return &AppError{
		Err:     sentinel,
		Path:    path,
		Message: fmt.Sprintf(format, args...),
	}
}

// ExitCode maps an error to the process exit code for the CLI.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, ErrInvalidConfig):
		return ExitBadUsage
	default:
		return ExitFailure
	}
}
