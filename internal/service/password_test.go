package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordHasherRoundTrip(t *testing.T) {
	hasher := NewPasswordHasher()

	digest, err := hasher.Hash("secret1")
	require.NoError(t, err)
	require.NotEmpty(t, digest)
	require.NotContains(t, digest, "secret1")

	match, err := hasher.Verify("secret1", digest)
	require.NoError(t, err)
	assert.True(t, match)

	match, err = hasher.Verify("secret2", digest)
	require.NoError(t, err)
	assert.False(t, match)
}

func TestPasswordHasherSaltsEachDigest(t *testing.T) {
	hasher := NewPasswordHasher()

	first, err := hasher.Hash("same-password")
	require.NoError(t, err)
	second, err := hasher.Hash("same-password")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)

	for _, digest := range []string{first, second} {
		match, err := hasher.Verify("same-password", digest)
		require.NoError(t, err)
		assert.True(t, match)
	}
}

func TestPasswordHasherMalformedDigestIsError(t *testing.T) {
	hasher := NewPasswordHasher()

	// A broken digest is an engine failure, not a wrong password.
	match, err := hasher.Verify("whatever", "not-a-bcrypt-digest")
	require.Error(t, err)
	assert.False(t, match)
}
