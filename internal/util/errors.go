package util

import (
	"errors"
	"fmt"
)

// Error kinds. Controllers map them to HTTP status codes with errors.Is.
var (
	ErrValidation = errors.New("validation failed")
	ErrConflict   = errors.New("conflict")
	ErrNotFound   = errors.New("not found")
	ErrStorage    = errors.New("storage failure")
)

var (
	ErrIndividualNotFound = KindError(ErrNotFound, "User not found")
	ErrTestNotFound       = KindError(ErrNotFound, "Test not found")
	ErrResultNotFound     = KindError(ErrNotFound, "Result not found")
	ErrResultExists       = KindError(ErrConflict, "Result ID already exists")
)

type kindError struct {
	kind error
	msg  string
}

func (e *kindError) Error() string { return e.msg }

func (e *kindError) Unwrap() error { return e.kind }

// KindError returns an error whose message is msg and which matches kind
// under errors.Is.
func KindError(kind error, msg string) error {
	return &kindError{kind: kind, msg: msg}
}

func KindErrorf(kind error, format string, args ...interface{}) error {
	return &kindError{kind: kind, msg: fmt.Sprintf(format, args...)}
}

// StorageError wraps a persistence failure so it matches ErrStorage while
// keeping the cause reachable.
func StorageError(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrStorage, op, err)
}
