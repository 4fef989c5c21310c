package conf

import (
	"errors"
	"fmt"
)

// ResolutionError reports that marshalling metadata could not be computed
// for a type: a malformed descriptor, a duplicate field name, or a type
// name that is not present in the registry.
type ResolutionError struct {
	// TypeName identifies the configuration type whose metadata failed
	TypeName string

	// Message describes what went wrong
	Message string

	// Err is the underlying cause, if any
	Err error
}

// Error implements the error interface.
func (e *ResolutionError) Error() string {
	msg := e.Message
	if e.TypeName != "" {
		msg = fmt.Sprintf("type %s: %s", e.TypeName, e.Message)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

// Unwrap returns the underlying cause.
func (e *ResolutionError) Unwrap() error {
	return e.Err
}

// IsResolutionError checks if an error is or wraps a ResolutionError.
func IsResolutionError(err error) bool {
	var resErr *ResolutionError
	return errors.As(err, &resErr)
}

// SerializationError reports that writing a configuration object failed.
type SerializationError struct {
	// TypeName identifies the configuration type being written
	TypeName string

	// Field names the field being written when the failure occurred
	Field string

	// Message describes what went wrong
	Message string

	// Err is the underlying cause, if any
	Err error
}

// Error implements the error interface.
func (e *SerializationError) Error() string {
	msg := "serialize"
	if e.TypeName != "" {
		msg += " " + e.TypeName
	}
	if e.Field != "" {
		msg += " field " + e.Field
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

// Unwrap returns the underlying cause.
func (e *SerializationError) Unwrap() error {
	return e.Err
}

// IsSerializationError checks if an error is or wraps a SerializationError.
func IsSerializationError(err error) bool {
	var serErr *SerializationError
	return errors.As(err, &serErr)
}

// DeserializationError reports that reading or populating a configuration
// object failed: an unknown field, missing type information, an
// unsupported scalar type, or a malformed document.
type DeserializationError struct {
	// Element names the document element being read when the failure
	// occurred
	Element string

	// Message describes what went wrong
	Message string

	// Err is the underlying cause, if any
	Err error
}

// Error implements the error interface.
func (e *DeserializationError) Error() string {
	msg := "deserialize"
	if e.Element != "" {
		msg += " element " + e.Element
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

// Unwrap returns the underlying cause.
func (e *DeserializationError) Unwrap() error {
	return e.Err
}

// IsDeserializationError checks if an error is or wraps a
// DeserializationError.
func IsDeserializationError(err error) bool {
	var desErr *DeserializationError
	return errors.As(err, &desErr)
}
