package chat

import (
	"context"
	"time"
)

// ReadMarkers records how far each conversation has been read.
type ReadMarkers interface {
	// LastRead returns the newest message time seen in the conversation, or
	// the zero time when it was never opened.
	LastRead(ctx context.Context, conversation string) (time.Time, error)
	// MarkRead advances the marker to at. Older values are ignored.
	MarkRead(ctx context.Context, conversation string, at time.Time) error
	// All returns every marker keyed by conversation name.
	All(ctx context.Context) (map[string]time.Time, error)
}

// Unread counts messages newer than since that the user did not write.
func Unread(msgs []Message, since time.Time) int {
	var n int
	for _, m := range msgs {
		if !m.Sender.IsUser() && m.Timestamp.After(since) {
			n++
		}
	}
	return n
}

// Latest returns the newest timestamp in msgs, or the zero time when empty.
func Latest(msgs []Message) time.Time {
	var latest time.Time
	for _, m := range msgs {
		if m.Timestamp.After(latest) {
			latest = m.Timestamp
		}
	}
	return latest
}
