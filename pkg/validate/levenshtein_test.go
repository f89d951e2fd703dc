package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLevenshtein(t *testing.T) {
	assert.Equal(t, 0, levenshtein("backend", "backend"))
	assert.Equal(t, 1, levenshtein("backend", "backend2"))
	assert.Equal(t, 1, levenshtein("backend2", "backend"))
	assert.Equal(t, 3, levenshtein("kitten", "sitting"))
}

func TestClosestMatch(t *testing.T) {
	candidates := []string{"frontend", "backend", "cache"}

	match, ok := closestMatch("backend2", candidates)
	assert.True(t, ok)
	assert.Equal(t, "backend", match)

	_, ok = closestMatch("completely-unrelated-name", candidates)
	assert.False(t, ok)
}
