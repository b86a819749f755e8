package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/userbook/userbook/internal/store"
)

// PostgreSQL error codes
const (
	// uniqueViolationCode is the PostgreSQL error code for unique constraint violations
	uniqueViolationCode = "23505"

	// notNullViolationCode is the PostgreSQL error code for not null violations
	notNullViolationCode = "23502"

	// invalidTextRepresentationCode is the PostgreSQL error code for values
	// that cannot be parsed as the column's type (e.g., an invalid literal)
	invalidTextRepresentationCode = "22P02"

	// integrityViolationClass is the SQLSTATE class prefix shared by all
	// integrity constraint violations
	integrityViolationClass = "23"
)

// MapError maps a database error to the appropriate domain error kind.
// The classification is fixed:
//
//	unique violation        -> store.ErrDuplicate (value already in use)
//	not-null violation      -> store.ErrInvalidEntity (required field missing)
//	invalid literal (22P02) -> store.ErrMalformedData (caller may correct and retry)
//	other class-23 code     -> *store.StoreError
//	sql.ErrNoRows           -> store.ErrNotFound
//	anything else           -> *store.StoreError, original cause preserved
//
// Every database operation funnels its errors through this function so
// callers never branch on SQLSTATE codes themselves.
func MapError(operation string, err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %v", store.ErrNotFound, err)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case pgErr.Code == uniqueViolationCode:
			return fmt.Errorf("%w: %v", store.ErrDuplicate, err)
		case pgErr.Code == notNullViolationCode:
			return fmt.Errorf("%w: required field missing (%s): %v",
				store.ErrInvalidEntity, pgErr.ColumnName, err)
		case pgErr.Code == invalidTextRepresentationCode:
			return fmt.Errorf("%w: %v", store.ErrMalformedData, err)
		case strings.HasPrefix(pgErr.Code, integrityViolationClass):
			return store.NewStoreError("user", operation,
				fmt.Sprintf("constraint violation (%s)", pgErr.ConstraintName), err)
		}
	}

	return store.NewStoreError("user", operation, "database failure", err)
}

// IsUniqueViolation checks if the given error is a PostgreSQL unique
// constraint violation, such as a duplicate email address.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}

// IsNotNullViolation checks if the given error is a PostgreSQL not null
// constraint violation.
func IsNotNullViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == notNullViolationCode
}

// CheckRowsAffected examines the number of rows affected by a database
// operation. If no rows were affected, it returns store.ErrNotFound
// (qualified with entityName when given). This is how UPDATE and DELETE
// detect that the target record does not exist.
func CheckRowsAffected(result sql.Result, entityName string) error {
	if result == nil {
		return fmt.Errorf("nil result provided to CheckRowsAffected")
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		if entityName == "" {
			return store.ErrNotFound
		}
		return fmt.Errorf("%w: %s", store.ErrNotFound, entityName)
	}

	return nil
}
