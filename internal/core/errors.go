package core

import (
	"errors"
	"fmt"
)

// OpErrorCode categorizes operation failures.
type OpErrorCode string

const (
	// ErrCodeNotFound indicates an unknown id was passed to an update.
	ErrCodeNotFound OpErrorCode = "NOT_FOUND"

	// ErrCodeInvalid indicates a validation failure: missing required
	// fields or a disallowed state transition.
	ErrCodeInvalid OpErrorCode = "INVALID"
)

// OpError is the error returned by core operations. It distinguishes
// "nothing happened because the id was bad" from "the input was
// rejected", so callers never have to guess whether a no-op occurred.
type OpError struct {
	// Code identifies the error category.
	Code OpErrorCode

	// Entity names the entity kind involved (order, table, item, ...).
	Entity string

	// ID is the offending identifier, when there is one.
	ID string

	// Message is a human-readable description.
	Message string
}

// Error implements the error interface.
func (e *OpError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("%s: %s %s: %s", e.Code, e.Entity, e.ID, e.Message)
	}
	if e.Entity != "" {
		return fmt.Sprintf("%s: %s: %s", e.Code, e.Entity, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// IsNotFound reports whether err is a NotFound operation error.
// Uses errors.As to handle wrapped errors.
func IsNotFound(err error) bool {
	var oe *OpError
	return errors.As(err, &oe) && oe.Code == ErrCodeNotFound
}

// IsInvalid reports whether err is a validation error.
// Uses errors.As to handle wrapped errors.
func IsInvalid(err error) bool {
	var oe *OpError
	return errors.As(err, &oe) && oe.Code == ErrCodeInvalid
}

func notFound(entity, id string) *OpError {
	return &OpError{
		Code:    ErrCodeNotFound,
		Entity:  entity,
		ID:      id,
		Message: "no such " + entity,
	}
}

func invalid(entity, format string, args ...any) *OpError {
	return &OpError{
		Code:    ErrCodeInvalid,
		Entity:  entity,
		Message: fmt.Sprintf(format, args...),
	}
}
