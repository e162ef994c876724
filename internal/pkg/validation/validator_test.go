package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SinghShreyansh/users-service/internal/core/domain"
	"github.com/SinghShreyansh/users-service/internal/core/ports"
)

func TestValidate_PasswordVariants(t *testing.T) {
	v := New()

	accepted := []domain.Password{
		domain.IntegerPassword(42),
		domain.IntegerPassword(0),
		domain.IntegerPassword(-3),
		domain.NumberPassword(1.5),
		domain.TextPassword("1234"),
		domain.TextPassword("-12.75"),
	}
	for _, p := range accepted {
		err := v.Validate(&ports.CreateUserInput{Name: "Al", Password: p})
		assert.NoError(t, err, "password %v (%s)", p.Value(), p.Kind())
	}

	rejected := []domain.Password{
		domain.TextPassword("secret"),
		domain.TextPassword(""),
		domain.TextPassword("12a"),
		domain.PasswordFromValue(true),
		domain.PasswordFromValue(map[string]any{"x": 1}),
	}
	for _, p := range rejected {
		err := v.Validate(&ports.CreateUserInput{Name: "Al", Password: p})
		require.ErrorIs(t, err, domain.ErrValidation, "password %#v", p.Value())
		assert.Contains(t, err.Error(), "password must be a number, an integer or numeric text")
	}
}

func TestValidate_MissingFields(t *testing.T) {
	v := New()

	err := v.Validate(&ports.UpdateUserInput{})
	require.ErrorIs(t, err, domain.ErrValidation)
	assert.Contains(t, err.Error(), "id is required")
	assert.Contains(t, err.Error(), "name is required")
	assert.Contains(t, err.Error(), "password is required")
}

func TestValidate_DeleteRequiresID(t *testing.T) {
	v := New()

	require.ErrorIs(t, v.Validate(&ports.DeleteUserInput{}), domain.ErrValidation)
	assert.NoError(t, v.Validate(&ports.DeleteUserInput{ID: "65f1c2a4e4b0a1b2c3d4e5f6"}))
}

func TestEntity_Rules(t *testing.T) {
	v := New()

	assert.NoError(t, v.Entity("Rahul", domain.IntegerPassword(123)))
	assert.NoError(t, v.Entity("Rahul", domain.NumberPassword(0.1)))

	err := v.Entity("Al", domain.IntegerPassword(1))
	require.ErrorIs(t, err, domain.ErrValidation)
	assert.Contains(t, err.Error(), "name must be at least 3 characters")

	err = v.Entity("Rahul", domain.IntegerPassword(0))
	require.ErrorIs(t, err, domain.ErrValidation)
	assert.Contains(t, err.Error(), "password must be a positive number")

	assert.ErrorIs(t, v.Entity("Rahul", domain.TextPassword("123")), domain.ErrValidation)
}
