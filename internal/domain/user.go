package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Common validation errors
var (
	ErrEmptyName   = errors.New("name cannot be empty")
	ErrEmptyEmail  = errors.New("email cannot be empty")
	ErrNegativeAge = errors.New("age cannot be negative")
)

// User represents a single record in the user directory.
// The ID is assigned by the database on first insert and is zero until then.
// CreatedAt and UpdatedAt are maintained by the database; application code
// never writes to them.
type User struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Age       int32     `json:"age"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewUser creates a new User with the given name, email and age.
// The email is expected to be normalized already (see NormalizeEmail);
// callers in the service layer normalize before constructing the entity.
// Returns an error if validation fails.
func NewUser(name, email string, age int32) (*User, error) {
	user := &User{
		Name:  name,
		Email: email,
		Age:   age,
	}

	if err := user.Validate(); err != nil {
		return nil, err
	}

	return user, nil
}

// Validate checks if the User has valid data.
// Returns an error if any field fails validation.
func (u *User) Validate() error {
	if strings.TrimSpace(u.Name) == "" {
		return ErrEmptyName
	}

	if u.Email == "" {
		return ErrEmptyEmail
	}

	if u.Age < 0 {
		return ErrNegativeAge
	}

	return nil
}

// NormalizeEmail folds an email address into the canonical form used as the
// uniqueness key: surrounding whitespace removed, all characters lower-cased.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// String implements fmt.Stringer for log and console output.
func (u *User) String() string {
	return fmt.Sprintf("User{id=%d name=%q email=%q age=%d}", u.ID, u.Name, u.Email, u.Age)
}
