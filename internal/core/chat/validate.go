package chat

import (
	"fmt"
	"strings"

	"github.com/hay-kot/criterio"
)

// ValidateSequence checks that every message has a non-empty ID unique within
// msgs. Problems are reported per field. Message content and sender are not
// validated; unknown senders render on the neutral side.
func ValidateSequence(msgs []Message) error {
	var errs criterio.FieldErrorsBuilder
	seen := make(map[string]int, len(msgs))

	for i, msg := range msgs {
		field := fmt.Sprintf("messages[%d].id", i)

		if strings.TrimSpace(msg.ID) == "" {
			errs = errs.Append(field, fmt.Errorf("id is required"))
		} else if first, ok := seen[msg.ID]; ok {
			errs = errs.Append(field, fmt.Errorf("%w %q (first used by messages[%d])", ErrDuplicateID, msg.ID, first))
		} else {
			seen[msg.ID] = i
		}
	}

	return errs.ToError()
}

// UnknownSenders returns the indexes of messages whose sender is neither
// SenderUser nor SenderAI.
func UnknownSenders(msgs []Message) []int {
	var idx []int
	for i, msg := range msgs {
		if !msg.Sender.Known() {
			idx = append(idx, i)
		}
	}
	return idx
}
