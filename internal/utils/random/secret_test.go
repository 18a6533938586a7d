package random

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSecret(t *testing.T) {
	a, err := Secret()
	require.NoError(t, err)
	b, err := Secret()
	require.NoError(t, err)

	assert.False(t, a.IsZero())
	assert.False(t, a.Eq(b))
}
