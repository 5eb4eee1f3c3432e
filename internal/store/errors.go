package store

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when an operation references an id that does not
// resolve to a stored record.
var ErrNotFound = errors.New("not found")

// StorageError wraps a backend fault (connection loss, I/O failure, bad
// data on disk). The core never retries these; the caller decides whether
// to retry or degrade.
type StorageError struct {
	Op  string // the store operation that failed, e.g. "create project"
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage: %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// NewStorageError wraps err as a StorageError unless it already is one or is
// ErrNotFound, which passes through untouched.
func NewStorageError(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrNotFound) {
		return err
	}
	var se *StorageError
	if errors.As(err, &se) {
		return err
	}
	return &StorageError{Op: op, Err: err}
}
