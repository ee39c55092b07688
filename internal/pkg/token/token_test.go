package token

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Unique(t *testing.T) {
	t1, err := New()
	require.NoError(t, err)
	t2, err := New()
	require.NoError(t, err)

	assert.NotEmpty(t, t1)
	assert.NotEqual(t, t1, t2)
}

func TestHashSHA256_Deterministic(t *testing.T) {
	assert.Equal(t, HashSHA256("abc"), HashSHA256("abc"))
	assert.NotEqual(t, HashSHA256("abc"), HashSHA256("abd"))
	assert.Len(t, HashSHA256("abc"), 64)
}
