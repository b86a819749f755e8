package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/userbook/userbook/internal/domain"
	"github.com/userbook/userbook/internal/platform/logger"
	"github.com/userbook/userbook/internal/store"
)

// PostgresUserStore implements the store.UserStore interface using a
// PostgreSQL database as the storage backend. Every method runs in its own
// transaction and leaves it in a terminal state on all exit paths. The SQL
// itself executes through store.DBTX, so each query works against either a
// transaction or a bare connection.
type PostgresUserStore struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewPostgresUserStore creates a new PostgreSQL implementation of the
// UserStore interface. It accepts a database connection that should be
// initialized and managed by the caller. If logger is nil, the default
// logger is used.
func NewPostgresUserStore(db *sql.DB, logger *slog.Logger) *PostgresUserStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresUserStore{
		db:     db,
		logger: logger.With(slog.String("component", "user_store")),
	}
}

// Ensure PostgresUserStore implements store.UserStore interface
var _ store.UserStore = (*PostgresUserStore)(nil)

// insertUser inserts the record and writes the store-assigned id and
// timestamps back onto it.
func insertUser(ctx context.Context, q store.DBTX, user *domain.User) error {
	query := `
		INSERT INTO users (name, email, age)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at
	`
	return q.QueryRowContext(ctx, query, user.Name, user.Email, user.Age).
		Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
}

// findUserByID fills user from the row with the given id. A missing row is
// reported through the boolean, not as an error.
func findUserByID(ctx context.Context, q store.DBTX, id int64, user *domain.User) (bool, error) {
	query := `
		SELECT id, name, email, age, created_at, updated_at
		FROM users
		WHERE id = $1
	`
	err := q.QueryRowContext(ctx, query, id).Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.Age,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// updateUserRow writes the full state of user to its row and refreshes
// UpdatedAt from the database clock. A missing row is reported through the
// boolean.
func updateUserRow(ctx context.Context, q store.DBTX, user *domain.User) (bool, error) {
	query := `
		UPDATE users
		SET name = $1, email = $2, age = $3, updated_at = now()
		WHERE id = $4
		RETURNING updated_at
	`
	err := q.QueryRowContext(ctx, query, user.Name, user.Email, user.Age, user.ID).
		Scan(&user.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// deleteUserRow removes the row with the given id, reporting through the
// boolean whether a row was actually deleted.
func deleteUserRow(ctx context.Context, q store.DBTX, id int64) (bool, error) {
	result, err := q.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	if err := CheckRowsAffected(result, "user"); err != nil {
		if store.IsNotFound(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// findUserIDByEmail resolves a normalized email to at most one user id.
func findUserIDByEmail(ctx context.Context, q store.DBTX, email string) (int64, bool, error) {
	query := `
		SELECT id
		FROM users
		WHERE lower(email) = $1
		LIMIT 1
	`
	var id int64
	err := q.QueryRowContext(ctx, query, email).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return id, true, nil
}

// emailTaken reports whether any row matches the normalized email.
func emailTaken(ctx context.Context, q store.DBTX, email string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM users WHERE lower(email) = $1)`

	var exists bool
	err := q.QueryRowContext(ctx, query, email).Scan(&exists)
	return exists, err
}

// Create implements store.UserStore.Create.
// The id and both timestamps are assigned by the database and written back
// onto the passed record after the insert commits.
func (s *PostgresUserStore) Create(ctx context.Context, user *domain.User) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		return insertUser(ctx, tx, user)
	})

	if err != nil {
		if IsUniqueViolation(err) {
			log.Warn("duplicate email during user creation",
				slog.String("email", user.Email))
			return fmt.Errorf("%w: %v", store.ErrEmailExists, err)
		}

		mapped := MapError("create", err)
		if store.IsClassified(mapped) {
			log.Warn("user creation rejected by constraint",
				slog.String("error", mapped.Error()))
		} else {
			log.Error("failed to create user",
				slog.String("error", err.Error()))
		}
		return mapped
	}

	log.Info("user created",
		slog.Int64("user_id", user.ID),
		slog.String("email", user.Email))
	return nil
}

// GetByID implements store.UserStore.GetByID.
// The lookup runs in a read-only transaction that commits even when the
// user does not exist; a missing row is control flow, not a failure.
func (s *PostgresUserStore) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var user domain.User
	var found bool

	err := store.RunInReadOnlyTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		var err error
		found, err = findUserByID(ctx, tx, id, &user)
		return err
	})

	if err != nil {
		log.Error("failed to get user by ID",
			slog.String("error", err.Error()),
			slog.Int64("user_id", id))
		return nil, MapError("read", err)
	}

	if !found {
		log.Debug("user not found", slog.Int64("user_id", id))
		return nil, store.ErrUserNotFound
	}

	log.Debug("user retrieved", slog.Int64("user_id", id))
	return &user, nil
}

// Update implements store.UserStore.Update.
// It applies the full state of the supplied record to the stored row keyed
// by ID and refreshes UpdatedAt from the database clock.
func (s *PostgresUserStore) Update(ctx context.Context, user *domain.User) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var found bool

	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		var err error
		found, err = updateUserRow(ctx, tx, user)
		return err
	})

	if err != nil {
		if IsUniqueViolation(err) {
			log.Warn("duplicate email during user update",
				slog.Int64("user_id", user.ID),
				slog.String("email", user.Email))
			return fmt.Errorf("%w: %v", store.ErrEmailExists, err)
		}

		mapped := MapError("update", err)
		if store.IsClassified(mapped) {
			log.Warn("user update rejected by constraint",
				slog.String("error", mapped.Error()),
				slog.Int64("user_id", user.ID))
		} else {
			log.Error("failed to update user",
				slog.String("error", err.Error()),
				slog.Int64("user_id", user.ID))
		}
		return mapped
	}

	if !found {
		log.Debug("user not found for update", slog.Int64("user_id", user.ID))
		return store.ErrUserNotFound
	}

	log.Info("user updated", slog.Int64("user_id", user.ID))
	return nil
}

// DeleteByID implements store.UserStore.DeleteByID.
// Deletion is physical and immediate upon commit.
func (s *PostgresUserStore) DeleteByID(ctx context.Context, id int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var found bool

	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		var err error
		found, err = deleteUserRow(ctx, tx, id)
		return err
	})

	if err != nil {
		log.Error("failed to delete user by ID",
			slog.String("error", err.Error()),
			slog.Int64("user_id", id))
		return MapError("delete", err)
	}

	if !found {
		log.Debug("user not found for deletion", slog.Int64("user_id", id))
		return store.ErrUserNotFound
	}

	log.Info("user deleted", slog.Int64("user_id", id))
	return nil
}

// DeleteByEmail implements store.UserStore.DeleteByEmail.
// The lookup and the delete run inside one transaction so the removal
// cannot race a concurrent write to the same row. If several rows somehow
// match, exactly one arbitrary match is removed.
func (s *PostgresUserStore) DeleteByEmail(ctx context.Context, email string) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var notFound bool

	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		id, found, err := findUserIDByEmail(ctx, tx, email)
		if err != nil {
			return err
		}
		if !found {
			notFound = true
			return nil
		}

		// The id was resolved inside this same transaction, so the row is
		// still there for the delete.
		_, err = deleteUserRow(ctx, tx, id)
		return err
	})

	if err != nil {
		log.Error("failed to delete user by email",
			slog.String("error", err.Error()),
			slog.String("email", email))
		return MapError("delete", err)
	}

	if notFound {
		log.Debug("user not found for deletion", slog.String("email", email))
		return store.ErrUserNotFound
	}

	log.Info("user deleted", slog.String("email", email))
	return nil
}

// EmailExists implements store.UserStore.EmailExists.
// The read-only transaction commits whether or not a match exists.
func (s *PostgresUserStore) EmailExists(ctx context.Context, email string) (bool, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var exists bool

	err := store.RunInReadOnlyTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		var err error
		exists, err = emailTaken(ctx, tx, email)
		return err
	})

	if err != nil {
		log.Error("failed to check email existence",
			slog.String("error", err.Error()),
			slog.String("email", email))
		return false, MapError("email_exists", err)
	}

	log.Debug("email existence checked",
		slog.String("email", email),
		slog.Bool("exists", exists))
	return exists, nil
}
