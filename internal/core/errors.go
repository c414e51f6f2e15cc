package core

import (
	"errors"
	"fmt"
)

// ErrNotFound reports that a delete target does not exist.
var ErrNotFound = errors.New("expense not found")

// ValidationError reports bad client input. The HTTP boundary maps it
// to a client error status; it never reaches the persistence layer.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

// StorageError wraps a connectivity or query failure of the persistence
// layer. The underlying message is surfaced to the caller.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string { return fmt.Sprintf("storage: %s: %v", e.Op, e.Err) }

func (e *StorageError) Unwrap() error { return e.Err }
