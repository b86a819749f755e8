package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/userbook/userbook/internal/platform/logger"
)

// TxFn is a unit of work that executes within a database transaction.
// The transaction is committed if the function returns nil, or rolled back
// if it returns an error or panics.
type TxFn func(ctx context.Context, tx *sql.Tx) error

// RunInTransaction executes the given function within its own transaction.
// On success the transaction is committed before returning; on any failure
// (including a panic inside fn) it is rolled back. Either way the
// transaction is left in a terminal state and the connection is released.
func RunInTransaction(ctx context.Context, db *sql.DB, fn TxFn) error {
	return runInTx(ctx, db, nil, fn)
}

// RunInReadOnlyTransaction is RunInTransaction for operations that only
// read. The store may use the hint to reject accidental writes.
func RunInReadOnlyTransaction(ctx context.Context, db *sql.DB, fn TxFn) error {
	return runInTx(ctx, db, &sql.TxOptions{ReadOnly: true}, fn)
}

func runInTx(ctx context.Context, db *sql.DB, opts *sql.TxOptions, fn TxFn) error {
	log := logger.FromContext(ctx)

	tx, err := db.BeginTx(ctx, opts)
	if err != nil {
		log.Error("failed to begin transaction",
			slog.String("error", err.Error()))
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	// The deferred rollback is a no-op once the transaction has committed
	// (Rollback then reports sql.ErrTxDone). It fires on the error path and
	// on panics, so every exit leaves the transaction terminal. A failure
	// of the cleanup rollback itself never overrides the primary outcome.
	defer safeRollback(log, tx)

	if err := fn(ctx, tx); err != nil {
		log.Debug("rolling back transaction due to error",
			slog.String("error", err.Error()))
		return err
	}

	if err := tx.Commit(); err != nil {
		log.Error("failed to commit transaction",
			slog.String("error", err.Error()))
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

func safeRollback(log *slog.Logger, tx *sql.Tx) {
	if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
		log.Warn("transaction rollback failed",
			slog.String("error", err.Error()))
	}
}
