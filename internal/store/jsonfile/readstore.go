package jsonfile

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	"github.com/hay-kot/parley/internal/core/chat"
)

// readMarker is one conversation's entry in the read markers file.
type readMarker struct {
	ReadAt    time.Time `json:"read_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// readFile is the root JSON structure stored on disk for read markers.
type readFile struct {
	Markers map[string]readMarker `json:"markers"`
}

// ReadStore implements chat.ReadMarkers using a JSON file for persistence.
type ReadStore struct {
	path string
	now  func() time.Time
	mu   sync.RWMutex
}

var _ chat.ReadMarkers = (*ReadStore)(nil)

// NewReadStore creates a new JSON file read marker store at the given path.
func NewReadStore(path string) *ReadStore {
	return &ReadStore{path: path, now: time.Now}
}

// lockPath returns the path to the lock file.
func (s *ReadStore) lockPath() string {
	return s.path + ".lock"
}

// withSharedLock executes fn while holding a shared (read) file lock.
// Multiple processes can hold shared locks simultaneously.
func (s *ReadStore) withSharedLock(fn func() error) error {
	return s.withFileLock(syscall.LOCK_SH, fn)
}

// withExclusiveLock executes fn while holding an exclusive (write) file lock.
// Only one process can hold an exclusive lock at a time.
func (s *ReadStore) withExclusiveLock(fn func() error) error {
	return s.withFileLock(syscall.LOCK_EX, fn)
}

// withFileLock acquires a file lock, executes fn, then releases the lock.
func (s *ReadStore) withFileLock(lockType int, fn func() error) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create lock directory: %w", err)
	}

	f, err := os.OpenFile(s.lockPath(), os.O_CREATE|os.O_RDWR, 0o644)
	if err != nil {
		return fmt.Errorf("open lock file: %w", err)
	}
	defer f.Close() //nolint:errcheck

	if err := syscall.Flock(int(f.Fd()), lockType); err != nil {
		return fmt.Errorf("acquire file lock: %w", err)
	}
	defer syscall.Flock(int(f.Fd()), syscall.LOCK_UN) //nolint:errcheck

	return fn()
}

// LastRead returns the read marker for a conversation, or the zero time when
// none was recorded.
func (s *ReadStore) LastRead(ctx context.Context, conversation string) (time.Time, error) {
	if err := ctx.Err(); err != nil {
		return time.Time{}, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var readAt time.Time
	err := s.withSharedLock(func() error {
		file, err := s.load()
		if err != nil {
			return err
		}
		readAt = file.Markers[conversation].ReadAt
		return nil
	})
	if err != nil {
		return time.Time{}, err
	}

	return readAt, nil
}

// MarkRead advances the marker for a conversation. A time at or before the
// current marker leaves it unchanged.
func (s *ReadStore) MarkRead(ctx context.Context, conversation string, at time.Time) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.withExclusiveLock(func() error {
		file, err := s.load()
		if err != nil {
			return err
		}

		marker := file.Markers[conversation]
		if !at.After(marker.ReadAt) {
			return nil
		}

		file.Markers[conversation] = readMarker{ReadAt: at, UpdatedAt: s.now()}
		return s.save(file)
	})
}

// All returns every read marker keyed by conversation.
func (s *ReadStore) All(ctx context.Context) (map[string]time.Time, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	markers := make(map[string]time.Time)
	err := s.withSharedLock(func() error {
		file, err := s.load()
		if err != nil {
			return err
		}
		for name, m := range file.Markers {
			markers[name] = m.ReadAt
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return markers, nil
}

// load reads the markers file from disk.
// Returns an empty readFile if the file doesn't exist.
func (s *ReadStore) load() (readFile, error) {
	var file readFile
	if _, err := readJSON(s.path, &file); err != nil {
		return readFile{}, err
	}
	if file.Markers == nil {
		file.Markers = make(map[string]readMarker)
	}
	return file, nil
}

// save writes the markers file to disk atomically.
func (s *ReadStore) save(file readFile) error {
	return writeJSON(s.path, file)
}
