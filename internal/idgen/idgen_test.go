package idgen

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_LengthAndAlphabet(t *testing.T) {
	id, err := New()
	require.NoError(t, err)
	assert.Len(t, id, Length)

	for _, r := range id {
		assert.True(t, strings.ContainsRune(Alphabet, r), "unexpected character %q in id %q", r, id)
	}
}

func TestNew_Unique(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 1000; i++ {
		id, err := New()
		require.NoError(t, err)
		_, dup := seen[id]
		require.False(t, dup, "duplicate id %q after %d generations", id, i)
		seen[id] = struct{}{}
	}
}
