package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobhub_backend/internal/models"
)

func TestGenerateAndParse(t *testing.T) {
	tm := NewTokenManager("secret", 60)

	token, err := tm.Generate("user-1", models.UserRolePoster)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := tm.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, models.UserRolePoster, claims.Role)
}

func TestParseRejectsWrongSecret(t *testing.T) {
	tm := NewTokenManager("secret", 60)
	other := NewTokenManager("other", 60)

	token, err := other.Generate("user-1", models.UserRolePicker)
	require.NoError(t, err)

	_, err = tm.Parse(token)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseRejectsExpired(t *testing.T) {
	tm := NewTokenManager("secret", -1)

	token, err := tm.Generate("user-1", models.UserRolePicker)
	require.NoError(t, err)

	_, err = tm.Parse(token)
	require.ErrorIs(t, err, ErrTokenExpired)
}

func TestParseRejectsGarbage(t *testing.T) {
	tm := NewTokenManager("secret", 60)

	_, err := tm.Parse("not-a-jwt")
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestPasswordHashRoundtrip(t *testing.T) {
	hash, err := HashPassword("password123")
	require.NoError(t, err)
	assert.True(t, CheckPasswordHash("password123", hash))
	assert.False(t, CheckPasswordHash("password124", hash))
}

func TestValidatePassword(t *testing.T) {
	cases := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{"too short", "ab1", true},
		{"letters only", "longenough", true},
		{"digits only", "1234567890", true},
		{"over bcrypt limit", strings.Repeat("a1", 40), true},
		{"letters and digits", "password123", false},
		{"unicode letters", "пароль123", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidatePassword(tc.password)
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
