package service

import (
	"fmt"

	"github.com/userbook/userbook/internal/store"
)

// OperationError is the single user-facing kind that all unclassified
// infrastructure failures collapse into. Its message is stable and safe to
// show to the end user; the original cause is retained for logging only
// and is reachable through Unwrap.
type OperationError struct {
	Op  string // gerund form of the failed operation, e.g. "creating"
	Err error  // original cause, never shown to the end user
}

// Error implements the error interface for OperationError.
func (e *OperationError) Error() string {
	return fmt.Sprintf("database error while %s user, try again later", e.Op)
}

// Unwrap returns the wrapped cause to support errors.Is/errors.As.
func (e *OperationError) Unwrap() error {
	return e.Err
}

// wrapUnclassified passes through errors already carrying a domain kind and
// collapses everything else into an OperationError for the given operation.
func wrapUnclassified(op string, err error) error {
	if err == nil || store.IsClassified(err) {
		return err
	}
	return &OperationError{Op: op, Err: err}
}

// IsRecoverable reports whether the caller can fix the failure by
// re-prompting for corrected input. Unclassified infrastructure failures
// are not locally recoverable.
func IsRecoverable(err error) bool {
	return store.IsClassified(err)
}
