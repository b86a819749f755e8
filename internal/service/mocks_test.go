package service_test

import (
	"context"
	"fmt"

	"github.com/stretchr/testify/mock"
	"github.com/userbook/userbook/internal/domain"
)

// MockUserStore mocks the store.UserStore interface
type MockUserStore struct {
	mock.Mock
}

func (m *MockUserStore) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserStore) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserStore) Update(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserStore) DeleteByID(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockUserStore) DeleteByEmail(ctx context.Context, email string) error {
	args := m.Called(ctx, email)
	return args.Error(0)
}

func (m *MockUserStore) EmailExists(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

// acceptAllValidator passes every field, for tests that exercise flow
// rather than validation.
type acceptAllValidator struct{}

func (acceptAllValidator) ValidateField(field string, value any) error {
	return nil
}

// rejectFieldValidator fails exactly one named field.
type rejectFieldValidator struct {
	field string
}

func (v rejectFieldValidator) ValidateField(field string, value any) error {
	if field == v.field {
		return fmt.Errorf("field %q is invalid: stubbed violation", field)
	}
	return nil
}
