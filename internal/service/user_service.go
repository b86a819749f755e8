package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/userbook/userbook/internal/domain"
	"github.com/userbook/userbook/internal/store"
)

// FieldValidator is the validation collaborator consulted before any write
// reaches the store. It checks a single value against the constraints
// declared for a named field of the user entity.
type FieldValidator interface {
	ValidateField(field string, value any) error
}

// UserService provides user-related operations over the persistence gateway.
type UserService interface {
	// CreateUser creates a new user with the given name, email and age.
	// The email is normalized (trimmed, lower-cased) before storage.
	// Returns store.ErrEmailExists if the normalized email is already in use.
	CreateUser(ctx context.Context, name, email string, age int32) (*domain.User, error)

	// GetUser retrieves a user by their ID.
	// Returns store.ErrUserNotFound if the user does not exist.
	GetUser(ctx context.Context, id int64) (*domain.User, error)

	// UpdateUser applies a partial update: only non-nil fields change, the
	// rest keep their stored values. Email uniqueness is re-checked only
	// when the normalized email actually changes. Returns the updated record.
	UpdateUser(ctx context.Context, id int64, name *string, email *string, age *int32) (*domain.User, error)

	// DeleteUserByID removes a user by their ID.
	DeleteUserByID(ctx context.Context, id int64) error

	// DeleteUserByEmail removes the user whose normalized email matches.
	DeleteUserByEmail(ctx context.Context, email string) error
}

// UserServiceImpl implements the UserService interface.
type UserServiceImpl struct {
	userStore store.UserStore
	validator FieldValidator
	logger    *slog.Logger
}

// NewUserService creates a new UserService. The validator is injected so
// tests can substitute it.
func NewUserService(userStore store.UserStore, validator FieldValidator, logger *slog.Logger) *UserServiceImpl {
	if logger == nil {
		logger = slog.Default()
	}
	return &UserServiceImpl{
		userStore: userStore,
		validator: validator,
		logger:    logger.With(slog.String("component", "user_service")),
	}
}

var _ UserService = (*UserServiceImpl)(nil)

// CreateUser creates a new user after normalizing the email, validating all
// fields, and pre-checking email uniqueness. The pre-check only exists to
// produce a friendlier error before the write; the unique index in the
// store remains the guarantee against concurrent creates racing past it.
func (s *UserServiceImpl) CreateUser(ctx context.Context, name, email string, age int32) (*domain.User, error) {
	email = domain.NormalizeEmail(email)

	for _, f := range []struct {
		name  string
		value any
	}{{"name", name}, {"email", email}, {"age", age}} {
		if err := s.validateField(f.name, f.value); err != nil {
			s.logger.Debug("user creation rejected by validation",
				slog.String("error", err.Error()))
			return nil, err
		}
	}

	if err := s.checkEmailAvailable(ctx, "creating", email); err != nil {
		return nil, err
	}

	user, err := domain.NewUser(name, email, age)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	if err := s.userStore.Create(ctx, user); err != nil {
		s.logFailure("creating", err, slog.String("email", email))
		return nil, wrapUnclassified("creating", err)
	}

	s.logger.Info("user created",
		slog.Int64("user_id", user.ID),
		slog.String("email", user.Email))
	return user, nil
}

// GetUser retrieves a user by their ID.
func (s *UserServiceImpl) GetUser(ctx context.Context, id int64) (*domain.User, error) {
	user, err := s.userStore.GetByID(ctx, id)
	if err != nil {
		s.logFailure("reading", err, slog.Int64("user_id", id))
		return nil, wrapUnclassified("reading", err)
	}
	return user, nil
}

// UpdateUser reads the current record, merges only the provided fields,
// and writes the merged record back. A call with all fields nil leaves the
// record unchanged.
func (s *UserServiceImpl) UpdateUser(ctx context.Context, id int64, name *string, email *string, age *int32) (*domain.User, error) {
	user, err := s.userStore.GetByID(ctx, id)
	if err != nil {
		s.logFailure("updating", err, slog.Int64("user_id", id))
		return nil, wrapUnclassified("updating", err)
	}

	if name != nil {
		if err := s.validateField("name", *name); err != nil {
			return nil, err
		}
		user.Name = *name
	}

	if email != nil {
		normalized := domain.NormalizeEmail(*email)
		if normalized != user.Email {
			if err := s.validateField("email", normalized); err != nil {
				return nil, err
			}
			if err := s.checkEmailAvailable(ctx, "updating", normalized); err != nil {
				return nil, err
			}
		}
		user.Email = normalized
	}

	if age != nil {
		if err := s.validateField("age", *age); err != nil {
			return nil, err
		}
		user.Age = *age
	}

	// The injected validator checks fields individually; re-validating the
	// merged record catches values it cannot, such as a whitespace-only
	// name that "required" accepts but the entity rejects.
	if err := user.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	if err := s.userStore.Update(ctx, user); err != nil {
		s.logFailure("updating", err, slog.Int64("user_id", id))
		return nil, wrapUnclassified("updating", err)
	}

	s.logger.Info("user updated", slog.Int64("user_id", user.ID))
	return user, nil
}

// DeleteUserByID removes a user by their ID.
func (s *UserServiceImpl) DeleteUserByID(ctx context.Context, id int64) error {
	if err := s.userStore.DeleteByID(ctx, id); err != nil {
		s.logFailure("deleting", err, slog.Int64("user_id", id))
		return wrapUnclassified("deleting", err)
	}

	s.logger.Info("user deleted", slog.Int64("user_id", id))
	return nil
}

// DeleteUserByEmail normalizes and format-checks the email, then removes
// the matching user. Uniqueness is not re-checked for deletion.
func (s *UserServiceImpl) DeleteUserByEmail(ctx context.Context, email string) error {
	normalized := domain.NormalizeEmail(email)

	if err := s.validateField("email", normalized); err != nil {
		s.logger.Debug("user deletion rejected by validation",
			slog.String("error", err.Error()))
		return err
	}

	if err := s.userStore.DeleteByEmail(ctx, normalized); err != nil {
		s.logFailure("deleting", err, slog.String("email", normalized))
		return wrapUnclassified("deleting", err)
	}

	s.logger.Info("user deleted", slog.String("email", normalized))
	return nil
}

// validateField runs a value through the validation collaborator and
// classifies any violation as an invalid-entity error.
func (s *UserServiceImpl) validateField(field string, value any) error {
	if err := s.validator.ValidateField(field, value); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}
	return nil
}

// checkEmailAvailable fails with store.ErrEmailExists when the normalized
// email is already taken.
func (s *UserServiceImpl) checkEmailAvailable(ctx context.Context, op, email string) error {
	exists, err := s.userStore.EmailExists(ctx, email)
	if err != nil {
		s.logFailure(op, err, slog.String("email", email))
		return wrapUnclassified(op, err)
	}
	if exists {
		s.logger.Debug("email already in use", slog.String("email", email))
		return fmt.Errorf("%w: user with email %q already exists", store.ErrEmailExists, email)
	}
	return nil
}

// logFailure logs classified errors at debug (expected control flow) and
// everything else at error with the original cause.
func (s *UserServiceImpl) logFailure(op string, err error, attrs ...any) {
	args := append([]any{slog.String("op", op), slog.String("error", err.Error())}, attrs...)
	if store.IsClassified(err) {
		s.logger.Debug("user operation failed", args...)
		return
	}
	s.logger.Error("user operation failed", args...)
}
