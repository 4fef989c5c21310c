package store

import (
	"errors"
	"fmt"
)

// StoreError reports a failed store operation. NotFound discriminates
// "the named configuration does not exist" from genuine failures so
// callers can treat absence as a normal condition.
type StoreError struct {
	// Path is the filesystem path involved, if any
	Path string

	// Message describes what went wrong
	Message string

	// NotFound is set when the named configuration or resource is absent
	NotFound bool

	// Err is the underlying cause, if any
	Err error
}

// Error implements the error interface.
func (e *StoreError) Error() string {
	msg := e.Message
	if e.Path != "" {
		msg = fmt.Sprintf("%s: %s", e.Message, e.Path)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

// Unwrap returns the underlying cause.
func (e *StoreError) Unwrap() error {
	return e.Err
}

// IsStoreError checks if an error is or wraps a StoreError.
func IsStoreError(err error) bool {
	var stErr *StoreError
	return errors.As(err, &stErr)
}

// IsNotFound checks if an error is a StoreError for a missing
// configuration or resource.
func IsNotFound(err error) bool {
	var stErr *StoreError
	return errors.As(err, &stErr) && stErr.NotFound
}
