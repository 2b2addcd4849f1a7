package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignAndParse(t *testing.T) {
	manager := NewManager("test-secret", 1)

	token, err := manager.Sign(42, 1)
	require.NoError(t, err)

	claims, err := manager.Parse(token)
	require.NoError(t, err)
	assert.EqualValues(t, 42, claims.UserId)
	assert.Equal(t, 1, claims.Auth)
}

func TestParseRejectsWrongSecret(t *testing.T) {
	token, err := NewManager("secret-a", 1).Sign(42, 0)
	require.NoError(t, err)

	_, err = NewManager("secret-b", 1).Parse(token)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestParseRejectsGarbage(t *testing.T) {
	manager := NewManager("test-secret", 1)
	_, err := manager.Parse("not.a.token")
	assert.ErrorIs(t, err, ErrTokenInvalid)
}
