package jsonfile

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/hay-kot/parley/internal/core/history"
)

type historyFile struct {
	Entries []history.Entry `json:"entries"`
}

// HistoryStore keeps compose history in a single JSON file, newest first.
// Each text appears once; sending it again moves it to the front.
type HistoryStore struct {
	path       string
	maxEntries int
	mu         sync.RWMutex
}

var _ history.Store = (*HistoryStore)(nil)

// NewHistoryStore creates a history store at path keeping at most
// maxEntries entries (0 means unlimited).
func NewHistoryStore(path string, maxEntries int) *HistoryStore {
	return &HistoryStore{path: path, maxEntries: maxEntries}
}

func (s *HistoryStore) List(ctx context.Context) ([]history.Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	f, err := s.load()
	if err != nil {
		return nil, err
	}
	return f.Entries, nil
}

// Save records entry as the newest. Blank texts are ignored.
func (s *HistoryStore) Save(ctx context.Context, entry history.Entry) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if strings.TrimSpace(entry.Text) == "" {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := s.load()
	if err != nil {
		return err
	}

	f.Entries = pushEntry(f.Entries, entry, s.maxEntries)
	return writeJSON(s.path, f)
}

func (s *HistoryStore) Clear(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return writeJSON(s.path, historyFile{Entries: []history.Entry{}})
}

func (s *HistoryStore) load() (historyFile, error) {
	var f historyFile
	if _, err := readJSON(s.path, &f); err != nil {
		return historyFile{}, fmt.Errorf("history file corrupted (run 'parley history --clear' to reset): %w", err)
	}
	return f, nil
}

// pushEntry puts entry in front of entries, drops older entries with the same
// text, and trims the result to limit when limit > 0.
func pushEntry(entries []history.Entry, entry history.Entry, limit int) []history.Entry {
	out := make([]history.Entry, 0, len(entries)+1)
	out = append(out, entry)
	for _, e := range entries {
		if e.Text != entry.Text {
			out = append(out, e)
		}
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}
