package history

import "context"

// Store defines persistence operations for compose history.
type Store interface {
	// List returns all history entries, newest first. Texts are unique.
	List(ctx context.Context) ([]Entry, error)
	// Save records entry as the newest, replacing an older entry with the
	// same text and pruning the oldest past the configured maximum.
	Save(ctx context.Context, entry Entry) error
	// Clear removes all history entries.
	Clear(ctx context.Context) error
}
