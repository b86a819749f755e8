package store_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/userbook/userbook/internal/store"
)

func TestSentinelErrors(t *testing.T) {
	t.Run("entity-specific errors wrap generic kinds", func(t *testing.T) {
		assert.ErrorIs(t, store.ErrUserNotFound, store.ErrNotFound)
		assert.ErrorIs(t, store.ErrEmailExists, store.ErrDuplicate)
	})

	t.Run("wrapped errors keep their kind", func(t *testing.T) {
		err := fmt.Errorf("%w: user with email %q already exists", store.ErrEmailExists, "a@ex.com")
		assert.True(t, store.IsDuplicate(err))
		assert.False(t, store.IsNotFound(err))
	})
}

func TestKindHelpers(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		notFound   bool
		duplicate  bool
		validation bool
		malformed  bool
	}{
		{"not found", store.ErrNotFound, true, false, false, false},
		{"user not found", store.ErrUserNotFound, true, false, false, false},
		{"duplicate", store.ErrDuplicate, false, true, false, false},
		{"email exists", store.ErrEmailExists, false, true, false, false},
		{"invalid entity", store.ErrInvalidEntity, false, false, true, false},
		{"malformed data", store.ErrMalformedData, false, false, false, true},
		{"plain error", errors.New("boom"), false, false, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.notFound, store.IsNotFound(tt.err))
			assert.Equal(t, tt.duplicate, store.IsDuplicate(tt.err))
			assert.Equal(t, tt.validation, store.IsValidation(tt.err))
			assert.Equal(t, tt.malformed, store.IsMalformedData(tt.err))

			wantClassified := tt.notFound || tt.duplicate || tt.validation || tt.malformed
			assert.Equal(t, wantClassified, store.IsClassified(tt.err))
		})
	}
}

func TestStoreError(t *testing.T) {
	t.Run("message includes entity, operation and cause", func(t *testing.T) {
		cause := errors.New("connection refused")
		err := store.NewStoreError("user", "create", "database failure", cause)

		assert.Contains(t, err.Error(), "create operation on user failed")
		assert.Contains(t, err.Error(), "connection refused")
	})

	t.Run("message without cause", func(t *testing.T) {
		err := store.NewStoreError("user", "delete", "database failure", nil)
		assert.Equal(t, "delete operation on user failed: database failure", err.Error())
	})

	t.Run("unwrap preserves the cause", func(t *testing.T) {
		cause := errors.New("connection refused")
		err := store.NewStoreError("user", "create", "database failure", cause)

		assert.ErrorIs(t, err, cause)
		require.NotNil(t, errors.Unwrap(err))
		assert.Equal(t, cause, errors.Unwrap(err))
	})

	t.Run("detected by IsStoreFailure even when wrapped", func(t *testing.T) {
		err := fmt.Errorf("outer: %w", store.NewStoreError("user", "read", "database failure", nil))
		assert.True(t, store.IsStoreFailure(err))
		assert.False(t, store.IsStoreFailure(errors.New("plain")))
	})

	t.Run("not classified as recoverable", func(t *testing.T) {
		err := store.NewStoreError("user", "create", "database failure", errors.New("io timeout"))
		assert.False(t, store.IsClassified(err))
	})
}
