package store

import (
	"errors"
	"fmt"
)

// Error represents a failed store operation.
//
// Store errors cover precondition violations only:
//   - Duplicate key: Add with an id already present
//   - Not found: Update or Delete on an id that does not exist
//   - Invalid operation: attempt to change a record's immutable id
//
// All are synchronous, recoverable failures reported to the immediate
// caller. A missing id on Find is not an error (see doc.go, CP-3).
type Error struct {
	// Code identifies the error category.
	Code ErrorCode

	// Message is a human-readable description.
	Message string

	// ID identifies the affected record.
	ID int
}

// ErrorCode categorizes store errors.
type ErrorCode string

const (
	// ErrCodeDuplicateKey indicates Add was called with an existing id.
	ErrCodeDuplicateKey ErrorCode = "DUPLICATE_KEY"

	// ErrCodeNotFound indicates Update/Delete referenced a missing id.
	ErrCodeNotFound ErrorCode = "NOT_FOUND"

	// ErrCodeInvalidOperation indicates an attempt to mutate an
	// immutable field (the id).
	ErrCodeInvalidOperation ErrorCode = "INVALID_OPERATION"
)

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s (id=%d)", e.Code, e.Message, e.ID)
}

// IsDuplicateKey returns true if the error is a duplicate key error.
// Uses errors.As to handle wrapped errors.
func IsDuplicateKey(err error) bool {
	var se *Error
	return errors.As(err, &se) && se.Code == ErrCodeDuplicateKey
}

// IsNotFound returns true if the error is a not-found error.
func IsNotFound(err error) bool {
	var se *Error
	return errors.As(err, &se) && se.Code == ErrCodeNotFound
}

// IsInvalidOperation returns true if the error is an invalid operation
// error.
func IsInvalidOperation(err error) bool {
	var se *Error
	return errors.As(err, &se) && se.Code == ErrCodeInvalidOperation
}

func newDuplicateKeyError(id int) *Error {
	return &Error{
		Code:    ErrCodeDuplicateKey,
		Message: "record with this id already exists",
		ID:      id,
	}
}

func newNotFoundError(id int) *Error {
	return &Error{
		Code:    ErrCodeNotFound,
		Message: "no record with this id",
		ID:      id,
	}
}

func newInvalidOperationError(id int) *Error {
	return &Error{
		Code:    ErrCodeInvalidOperation,
		Message: "record id is immutable",
		ID:      id,
	}
}
