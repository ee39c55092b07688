package password

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerify_Roundtrip(t *testing.T) {
	hash, salt, err := Hash("correct horse battery staple")
	require.NoError(t, err)
	require.NotEmpty(t, hash)
	require.NotEmpty(t, salt)

	assert.True(t, Verify(hash, "correct horse battery staple", salt))
}

func TestVerify_WrongPassword(t *testing.T) {
	hash, salt, err := Hash("password123")
	require.NoError(t, err)

	assert.False(t, Verify(hash, "password124", salt))
}

func TestVerify_WrongSalt(t *testing.T) {
	hash, _, err := Hash("password123")
	require.NoError(t, err)
	_, otherSalt, err := Hash("password123")
	require.NoError(t, err)

	assert.False(t, Verify(hash, "password123", otherSalt))
}

func TestHash_DistinctSaltsPerCall(t *testing.T) {
	hash1, salt1, err := Hash("password123")
	require.NoError(t, err)
	hash2, salt2, err := Hash("password123")
	require.NoError(t, err)

	assert.NotEqual(t, salt1, salt2)
	assert.NotEqual(t, hash1, hash2)
}

func TestVerify_MalformedHash_FailsClosed(t *testing.T) {
	_, salt, err := Hash("password123")
	require.NoError(t, err)

	assert.False(t, Verify("not-hex!", "password123", salt))
	assert.False(t, Verify("", "password123", salt))
	assert.False(t, Verify("abcd", "password123", salt))
}
