package store

import (
	"errors"
	"fmt"
)

// Common store errors used across all store implementations.
// Together with *StoreError they form the closed set of error kinds the
// rest of the application branches on; callers never inspect driver error
// codes directly.
var (
	// ErrNotFound is returned when a requested entity does not exist in the
	// store. This is a fact about the lookup, not an infrastructure failure;
	// the transaction that produced it still commits.
	ErrNotFound = errors.New("entity not found")

	// ErrDuplicate is returned when an operation would create a duplicate
	// of a unique entity (e.g., a user with the same email).
	ErrDuplicate = errors.New("entity already exists")

	// ErrInvalidEntity is returned when an entity violates a declared
	// constraint such as a required field. Check the wrapped error for the
	// specific violation.
	ErrInvalidEntity = errors.New("invalid entity")

	// ErrMalformedData is returned when the driver rejects a value as
	// unparseable for its column type. The caller may correct the input
	// and retry.
	ErrMalformedData = errors.New("malformed input data")

	// Entity-specific errors

	// ErrUserNotFound indicates that the requested user does not exist in the store.
	ErrUserNotFound = fmt.Errorf("%w: user", ErrNotFound)

	// ErrEmailExists indicates that a user with the given email already exists.
	ErrEmailExists = fmt.Errorf("%w: email", ErrDuplicate)
)

// IsNotFound checks if the error is any kind of "not found" error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsDuplicate checks if the error is any kind of "duplicate" error.
func IsDuplicate(err error) bool {
	return errors.Is(err, ErrDuplicate)
}

// IsValidation checks if the error is a constraint or required-field violation.
func IsValidation(err error) bool {
	return errors.Is(err, ErrInvalidEntity)
}

// IsMalformedData checks if the error is a malformed-input driver error.
func IsMalformedData(err error) bool {
	return errors.Is(err, ErrMalformedData)
}

// IsClassified reports whether the error carries one of the recoverable
// domain kinds. Anything unclassified is an infrastructure failure that the
// caller should treat as "try again later".
func IsClassified(err error) bool {
	return IsNotFound(err) || IsDuplicate(err) || IsValidation(err) || IsMalformedData(err)
}

// StoreError is the generic, non-recoverable store failure. It carries the
// entity and operation for diagnostics and preserves the original driver
// error as the cause. Its message is safe to log but is never shown to the
// end user verbatim.
type StoreError struct {
	Entity    string // The entity type (e.g., "user")
	Operation string // The operation that failed (e.g., "create", "update")
	Message   string // Error message
	Err       error  // Original error
}

// Error implements the error interface for StoreError.
func (e *StoreError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s operation on %s failed: %s: %v", e.Operation, e.Entity, e.Message, e.Err)
	}
	return fmt.Sprintf("%s operation on %s failed: %s", e.Operation, e.Entity, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *StoreError) Unwrap() error {
	return e.Err
}

// NewStoreError creates a new StoreError with the given entity, operation,
// message, and wrapped cause.
func NewStoreError(entity, operation, message string, err error) *StoreError {
	return &StoreError{
		Entity:    entity,
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}

// IsStoreFailure checks if the error is (or wraps) a generic StoreError.
func IsStoreFailure(err error) bool {
	var storeErr *StoreError
	return errors.As(err, &storeErr)
}
