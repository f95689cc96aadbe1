package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Anoop2208prakash/LMS/internal/model"
)

func testUser() model.User {
	return model.User{
		ID:       123456,
		Username: "alice",
		Email:    "alice@x.com",
		Role:     model.RoleAdmin,
	}
}

func TestTokenRoundTrip(t *testing.T) {
	manager := NewTokenManager("test-secret", time.Hour)

	token, err := manager.Issue(testUser())
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := manager.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, int64(123456), claims.UserID)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, model.RoleAdmin, claims.Role)
	assert.NotEmpty(t, claims.TokenID)
}

func TestTokenExpired(t *testing.T) {
	manager := NewTokenManager("test-secret", -time.Minute)

	token, err := manager.Issue(testUser())
	require.NoError(t, err)

	claims, err := manager.Verify(token)
	require.ErrorIs(t, err, model.ErrTokenExpired)
	assert.Nil(t, claims)
}

func TestTokenWrongSecret(t *testing.T) {
	issuer := NewTokenManager("secret-a", time.Hour)
	verifier := NewTokenManager("secret-b", time.Hour)

	token, err := issuer.Issue(testUser())
	require.NoError(t, err)

	claims, err := verifier.Verify(token)
	require.ErrorIs(t, err, model.ErrTokenSignature)
	assert.Nil(t, claims)
}

func TestTokenTampered(t *testing.T) {
	manager := NewTokenManager("test-secret", time.Hour)

	token, err := manager.Issue(testUser())
	require.NoError(t, err)

	// Flip a character inside the payload segment; the signature no
	// longer covers the mutated bytes.
	mutated := []byte(token)
	mid := len(mutated) / 2
	if mutated[mid] == 'a' {
		mutated[mid] = 'b'
	} else {
		mutated[mid] = 'a'
	}

	claims, err := manager.Verify(string(mutated))
	require.Error(t, err)
	assert.Nil(t, claims)
}

func TestTokenMalformedAndMissing(t *testing.T) {
	manager := NewTokenManager("test-secret", time.Hour)

	claims, err := manager.Verify("")
	require.ErrorIs(t, err, model.ErrTokenMissing)
	assert.Nil(t, claims)

	claims, err = manager.Verify("not.a.jwt")
	require.ErrorIs(t, err, model.ErrTokenMalformed)
	assert.Nil(t, claims)
}
