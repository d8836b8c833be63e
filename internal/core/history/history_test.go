package history

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTexts(t *testing.T) {
	entries := []Entry{
		{Conversation: "a", Text: "thanks"},
		{Conversation: "b", Text: "hello"},
	}

	assert.Equal(t, []string{"thanks", "hello"}, Texts(entries))
	assert.Empty(t, Texts(nil))
}
