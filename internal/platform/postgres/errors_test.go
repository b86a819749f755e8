package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/userbook/userbook/internal/store"
)

func TestMapError_Nil(t *testing.T) {
	assert.NoError(t, MapError("create", nil))
}

func TestMapError_NoRows(t *testing.T) {
	err := MapError("read", sql.ErrNoRows)
	assert.True(t, store.IsNotFound(err))
}

func TestMapError_UniqueViolation(t *testing.T) {
	pgErr := &pgconn.PgError{
		Code:           "23505",
		ConstraintName: "users_email_lower_idx",
		Message:        `duplicate key value violates unique constraint "users_email_lower_idx"`,
	}

	err := MapError("create", pgErr)
	assert.True(t, store.IsDuplicate(err))
	assert.False(t, store.IsStoreFailure(err))
}

func TestMapError_NotNullViolation(t *testing.T) {
	pgErr := &pgconn.PgError{
		Code:       "23502",
		ColumnName: "email",
		Message:    `null value in column "email" violates not-null constraint`,
	}

	err := MapError("create", pgErr)
	assert.True(t, store.IsValidation(err))
	assert.Contains(t, err.Error(), "required field missing")
	assert.Contains(t, err.Error(), "email")
}

func TestMapError_InvalidTextRepresentation(t *testing.T) {
	pgErr := &pgconn.PgError{
		Code:    "22P02",
		Message: `invalid input syntax for type integer: "abc"`,
	}

	err := MapError("create", pgErr)
	assert.True(t, store.IsMalformedData(err))
	assert.False(t, store.IsValidation(err))
}

func TestMapError_OtherConstraintViolation(t *testing.T) {
	// Check constraint violations are not recoverable by re-prompting;
	// they classify as generic store failures.
	pgErr := &pgconn.PgError{
		Code:           "23514",
		ConstraintName: "users_age_check",
	}

	err := MapError("create", pgErr)
	assert.True(t, store.IsStoreFailure(err))
	assert.False(t, store.IsClassified(err))
	assert.ErrorIs(t, err, pgErr, "original cause must be preserved")
}

func TestMapError_UnknownDriverError(t *testing.T) {
	cause := errors.New("connection reset by peer")

	err := MapError("update", cause)
	require.True(t, store.IsStoreFailure(err))
	assert.ErrorIs(t, err, cause)

	var storeErr *store.StoreError
	require.True(t, errors.As(err, &storeErr))
	assert.Equal(t, "update", storeErr.Operation)
	assert.Equal(t, "user", storeErr.Entity)
}

func TestMapError_WrappedPgError(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "23505"}
	wrapped := fmt.Errorf("exec failed: %w", pgErr)

	assert.True(t, store.IsDuplicate(MapError("create", wrapped)))
}

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, IsUniqueViolation(&pgconn.PgError{Code: "23505"}))
	assert.False(t, IsUniqueViolation(&pgconn.PgError{Code: "23502"}))
	assert.False(t, IsUniqueViolation(errors.New("plain")))
	assert.False(t, IsUniqueViolation(nil))
}

func TestIsNotNullViolation(t *testing.T) {
	assert.True(t, IsNotNullViolation(&pgconn.PgError{Code: "23502"}))
	assert.False(t, IsNotNullViolation(&pgconn.PgError{Code: "23505"}))
}

func TestCheckRowsAffected(t *testing.T) {
	t.Run("rows affected", func(t *testing.T) {
		assert.NoError(t, CheckRowsAffected(sqlmock.NewResult(0, 1), "user"))
	})

	t.Run("no rows affected", func(t *testing.T) {
		err := CheckRowsAffected(sqlmock.NewResult(0, 0), "user")
		assert.True(t, store.IsNotFound(err))
		assert.Contains(t, err.Error(), "user")
	})

	t.Run("no rows affected without entity name", func(t *testing.T) {
		err := CheckRowsAffected(sqlmock.NewResult(0, 0), "")
		assert.Equal(t, store.ErrNotFound, err)
	})

	t.Run("nil result", func(t *testing.T) {
		err := CheckRowsAffected(nil, "user")
		require.Error(t, err)
		assert.False(t, store.IsNotFound(err))
	})
}
