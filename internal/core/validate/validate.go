// Package validate provides shared validation functions.
package validate

import (
	"fmt"
	"strings"
)

// maxConversationName bounds conversation names, which become file names.
const maxConversationName = 128

// ConversationName validates a conversation name. Names are stored as file
// names, so they must be non-empty, must not start with a dot, and must not
// contain path separators.
func ConversationName(name string) error {
	switch {
	case strings.TrimSpace(name) == "":
		return fmt.Errorf("conversation name is required")
	case len(name) > maxConversationName:
		return fmt.Errorf("conversation name is longer than %d characters", maxConversationName)
	case strings.HasPrefix(name, "."):
		return fmt.Errorf("conversation name cannot start with a dot")
	case strings.ContainsAny(name, `/\`):
		return fmt.Errorf("conversation name cannot contain path separators")
	}
	return nil
}

// MessageText validates message text is non-empty after trimming whitespace.
func MessageText(text string) error {
	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("message text is required")
	}
	return nil
}
