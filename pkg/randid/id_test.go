package randid

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerate(t *testing.T) {
	for _, n := range []int{1, 8, 32} {
		id := Generate(n)
		assert.Len(t, id, n)
		for _, r := range id {
			assert.True(t, strings.ContainsRune(alphabet, r), "unexpected rune %q", r)
		}
	}

	assert.Empty(t, Generate(0))
	assert.Empty(t, Generate(-1))
}

func TestNew_Unique(t *testing.T) {
	seen := make(map[string]bool, 1000)
	for range 1000 {
		id := New()
		assert.Len(t, id, DefaultLength)
		assert.False(t, seen[id], "duplicate id %q", id)
		seen[id] = true
	}
}
