package chat

import (
	"context"
	"errors"
	"time"
)

var (
	ErrConversationNotFound = errors.New("conversation not found")
	ErrDuplicateID          = errors.New("duplicate message id")
)

// Store defines persistence operations for conversations.
type Store interface {
	// Append adds a message to a conversation, creating it if needed. An empty
	// ID or zero Timestamp is filled in. Returns the stored message.
	Append(ctx context.Context, conversation string, msg Message) (Message, error)

	// Messages returns the messages of a conversation ordered by timestamp,
	// limited to those after since when since is non-zero.
	// Returns ErrConversationNotFound if the conversation doesn't exist.
	Messages(ctx context.Context, conversation string, since time.Time) ([]Message, error)

	// List returns all conversation names, sorted.
	List(ctx context.Context) ([]string, error)

	// Prune removes messages older than the given duration across all
	// conversations. Returns the number of messages removed.
	Prune(ctx context.Context, olderThan time.Duration) (int, error)
}
