// Package failure classifies the errors returned by repositories so callers can tell a rejected input
// from a missing row or a storage fault without parsing messages.
package failure

import (
	"errors"
	"fmt"
)

type Kind string

const (
	Validation       Kind = "ValidationError"
	InvalidReference Kind = "InvalidReference"
	NotFound         Kind = "NotFound"
	Storage          Kind = "StorageError"
)

var (
	ErrNotFound         = errors.New("no matching rows")
	ErrInvalidReference = errors.New("referenced creator doesn't exist")
)

// Error pairs a kind with the operation that failed and the underlying cause.
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	if e.Op == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func wrap(kind Kind, op string, err error) *Error {
	return &Error{Kind: kind, Op: op, Err: err}
}

func Invalid(op string, err error) error {
	return wrap(Validation, op, err)
}

// Missing reports an update or delete that targeted no rows.
func Missing(op string, format string, args ...interface{}) error {
	return wrap(NotFound, op, fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrNotFound))
}

func Dangling(op string, creatorId int64) error {
	return wrap(InvalidReference, op, fmt.Errorf("creator %d: %w", creatorId, ErrInvalidReference))
}

// Store wraps engine errors; nil passes through so it can guard a plain return.
func Store(op string, err error) error {
	if err == nil {
		return nil
	}
	var classified *Error
	if errors.As(err, &classified) {
		return err
	}
	return wrap(Storage, op, err)
}

// KindOf returns Storage for errors that were never classified.
func KindOf(err error) Kind {
	var classified *Error
	if errors.As(err, &classified) {
		return classified.Kind
	}
	switch {
	case errors.Is(err, ErrNotFound):
		return NotFound
	case errors.Is(err, ErrInvalidReference):
		return InvalidReference
	}
	return Storage
}

func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}
