// Package validation implements the field-validation collaborator consulted
// by the service layer. Constraints are declared per field of the User
// entity and evaluated with go-playground/validator, so the rules live in
// one table instead of being scattered through orchestration code.
package validation

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// Declared constraints for each validated field of the user entity.
var userFieldRules = map[string]string{
	"name":  "required",
	"email": "required,email",
	"age":   "gte=0",
}

// FieldError describes a single field that failed validation.
type FieldError struct {
	Field   string
	Message string
}

// Error implements the error interface for FieldError.
func (e *FieldError) Error() string {
	return fmt.Sprintf("field %q is invalid: %s", e.Field, e.Message)
}

// UserFieldValidator validates individual field values of the user entity
// against the declared constraints.
type UserFieldValidator struct {
	validate *validator.Validate
}

// NewUserFieldValidator creates a validator for user entity fields.
func NewUserFieldValidator() *UserFieldValidator {
	return &UserFieldValidator{
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// ValidateField checks a single value against the constraints declared for
// the named field. It returns nil when the value passes, a *FieldError
// describing the violation when it fails, and a plain error for fields
// without declared constraints.
func (v *UserFieldValidator) ValidateField(field string, value any) error {
	rules, ok := userFieldRules[field]
	if !ok {
		return fmt.Errorf("no validation rules declared for field %q", field)
	}

	err := v.validate.Var(value, rules)
	if err == nil {
		return nil
	}

	var violations validator.ValidationErrors
	if errors.As(err, &violations) && len(violations) > 0 {
		return &FieldError{
			Field:   field,
			Message: fmt.Sprintf("failed %q constraint", violations[0].Tag()),
		}
	}

	return fmt.Errorf("validating field %q: %w", field, err)
}
