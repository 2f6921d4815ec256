package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMergeMode(t *testing.T) {
	for _, s := range []string{"reconstruct", "overlay", "byte-exact"} {
		mode, err := ParseMergeMode(s)
		require.NoError(t, err)
		assert.Equal(t, MergeMode(s), mode)
	}
}

func TestParseMergeMode_Unknown(t *testing.T) {
	for _, s := range []string{"", "concat", "Reconstruct"} {
		_, err := ParseMergeMode(s)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrConfiguration))
	}
}

func TestParseDuplicatePolicy(t *testing.T) {
	for _, s := range []string{"first", "last"} {
		p, err := ParseDuplicatePolicy(s)
		require.NoError(t, err)
		assert.Equal(t, DuplicatePolicy(s), p)
	}
}

func TestParseDuplicatePolicy_Unknown(t *testing.T) {
	_, err := ParseDuplicatePolicy("newest")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrConfiguration))
}
