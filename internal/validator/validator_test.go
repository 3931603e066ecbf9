package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleRequest struct {
	Email    string  `json:"email" validate:"required,email"`
	Password string  `json:"password" validate:"required,min=8"`
	Role     string  `json:"role" validate:"omitempty,oneof=poster picker"`
	Budget   float64 `json:"budget" validate:"omitempty,gt=0"`
}

func TestValidateOK(t *testing.T) {
	v := New()

	err := v.Validate(&sampleRequest{
		Email:    "user@mail.kz",
		Password: "supersecret",
		Role:     "picker",
		Budget:   1500,
	})
	assert.NoError(t, err)
}

func TestValidateReportsJSONFieldNames(t *testing.T) {
	v := New()

	err := v.Validate(&sampleRequest{Email: "not-an-email", Password: "short"})
	require.Error(t, err)

	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)

	// имена полей из json-тегов, не из Go-структуры
	assert.Contains(t, vErr.Errors, "email")
	assert.Contains(t, vErr.Errors, "password")
	assert.NotContains(t, vErr.Errors, "Email")

	assert.Equal(t, "must be a valid email address", vErr.Errors["email"])
	assert.Equal(t, "must be at least 8 characters long", vErr.Errors["password"])
}

func TestValidateOneofAndGt(t *testing.T) {
	v := New()

	err := v.Validate(&sampleRequest{
		Email:    "user@mail.kz",
		Password: "supersecret",
		Role:     "admin2",
		Budget:   -5,
	})
	require.Error(t, err)

	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "must be one of: poster picker", vErr.Errors["role"])
	assert.Equal(t, "must be greater than 0", vErr.Errors["budget"])
}
