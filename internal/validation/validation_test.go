package validation_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/userbook/userbook/internal/validation"
)

func TestValidateField_Email(t *testing.T) {
	v := validation.NewUserFieldValidator()

	t.Run("valid email", func(t *testing.T) {
		assert.NoError(t, v.ValidateField("email", "alice@example.com"))
	})

	t.Run("empty email", func(t *testing.T) {
		err := v.ValidateField("email", "")
		require.Error(t, err)

		var fieldErr *validation.FieldError
		require.True(t, errors.As(err, &fieldErr))
		assert.Equal(t, "email", fieldErr.Field)
	})

	t.Run("missing at-sign", func(t *testing.T) {
		assert.Error(t, v.ValidateField("email", "not-an-email"))
	})

	t.Run("missing domain", func(t *testing.T) {
		assert.Error(t, v.ValidateField("email", "alice@"))
	})
}

func TestValidateField_Name(t *testing.T) {
	v := validation.NewUserFieldValidator()

	assert.NoError(t, v.ValidateField("name", "Alice"))
	assert.Error(t, v.ValidateField("name", ""))
}

func TestValidateField_Age(t *testing.T) {
	v := validation.NewUserFieldValidator()

	assert.NoError(t, v.ValidateField("age", int32(0)))
	assert.NoError(t, v.ValidateField("age", int32(42)))
	assert.Error(t, v.ValidateField("age", int32(-1)))
}

func TestValidateField_UnknownField(t *testing.T) {
	v := validation.NewUserFieldValidator()

	err := v.ValidateField("nickname", "anything")
	require.Error(t, err)

	var fieldErr *validation.FieldError
	assert.False(t, errors.As(err, &fieldErr), "unknown field is a programming error, not a violation")
}
