// Package jsonfile implements the chat transcript store on JSON files.
package jsonfile

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/hay-kot/parley/internal/core/chat"
	"github.com/hay-kot/parley/pkg/randid"
)

const defaultMaxMessages = 500

// MsgStore implements chat.Store using one JSON file per conversation.
type MsgStore struct {
	dir         string
	maxMessages int
	now         func() time.Time
	mu          sync.RWMutex
}

var _ chat.Store = (*MsgStore)(nil)

// NewMsgStore creates a new message store at the given directory
// (e.g., $XDG_DATA_HOME/parley/conversations).
func NewMsgStore(dir string) *MsgStore {
	return &MsgStore{
		dir:         dir,
		maxMessages: defaultMaxMessages,
		now:         time.Now,
	}
}

// WithMaxMessages sets the maximum number of messages to retain per conversation.
func (s *MsgStore) WithMaxMessages(max int) *MsgStore {
	if max > 0 {
		s.maxMessages = max
	}
	return s
}

// conversationPath returns the file path for a conversation.
func (s *MsgStore) conversationPath(name string) string {
	// Sanitize name for filesystem safety
	safe := strings.ReplaceAll(name, "/", "_")
	return filepath.Join(s.dir, safe+".json")
}

// lockPath returns the lock file path for a conversation.
func (s *MsgStore) lockPath(name string) string {
	return s.conversationPath(name) + ".lock"
}

// withSharedLock executes fn while holding a shared (read) file lock.
func (s *MsgStore) withSharedLock(name string, fn func() error) error {
	return s.withFileLock(name, syscall.LOCK_SH, fn)
}

// withExclusiveLock executes fn while holding an exclusive (write) file lock.
func (s *MsgStore) withExclusiveLock(name string, fn func() error) error {
	return s.withFileLock(name, syscall.LOCK_EX, fn)
}

// withFileLock acquires a file lock, executes fn, then releases the lock.
func (s *MsgStore) withFileLock(name string, lockType int, fn func() error) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create conversations directory: %w", err)
	}

	f, err := os.OpenFile(s.lockPath(name), os.O_CREATE|os.O_RDWR, 0o644)
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

// Append adds a message to a conversation, creating it if it doesn't exist.
func (s *MsgStore) Append(ctx context.Context, name string, msg chat.Message) (chat.Message, error) {
	if err := ctx.Err(); err != nil {
		return chat.Message{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.withExclusiveLock(name, func() error {
		conv, err := s.loadConversation(name)
		if err != nil {
			return err
		}

		if msg.ID == "" {
			msg.ID = randid.New()
		}
		if msg.Timestamp.IsZero() {
			msg.Timestamp = s.now()
		}

		if slices.ContainsFunc(conv.Messages, func(m chat.Message) bool { return m.ID == msg.ID }) {
			return fmt.Errorf("%w %q in conversation %q", chat.ErrDuplicateID, msg.ID, name)
		}

		conv.Messages = append(conv.Messages, msg)
		conv.UpdatedAt = s.now()

		// Enforce retention limit
		if len(conv.Messages) > s.maxMessages {
			conv.Messages = conv.Messages[len(conv.Messages)-s.maxMessages:]
		}

		return s.saveConversation(conv)
	})
	if err != nil {
		return chat.Message{}, err
	}

	return msg, nil
}

// Messages returns the messages of a conversation, optionally filtered by
// the since timestamp. Returns chat.ErrConversationNotFound if the
// conversation doesn't exist.
func (s *MsgStore) Messages(ctx context.Context, name string, since time.Time) ([]chat.Message, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, err := os.Stat(s.conversationPath(name)); err != nil {
		if os.IsNotExist(err) {
			return nil, chat.ErrConversationNotFound
		}
		return nil, fmt.Errorf("stat conversation file: %w", err)
	}

	var messages []chat.Message
	err := s.withSharedLock(name, func() error {
		conv, err := s.loadConversation(name)
		if err != nil {
			return err
		}

		for _, msg := range conv.Messages {
			if since.IsZero() || msg.Timestamp.After(since) {
				messages = append(messages, msg)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.SliceStable(messages, func(i, j int) bool {
		return messages[i].Timestamp.Before(messages[j].Timestamp)
	})

	return messages, nil
}

// List returns all conversation names.
func (s *MsgStore) List(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	names, err := s.listUnsafe()
	if err != nil {
		return nil, err
	}

	sort.Strings(names)
	return names, nil
}

// Prune removes messages older than the given duration across all
// conversations. Returns the number of messages removed.
func (s *MsgStore) Prune(ctx context.Context, olderThan time.Duration) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	names, err := s.listUnsafe()
	if err != nil {
		return 0, err
	}

	cutoff := s.now().Add(-olderThan)
	var removed int

	for _, name := range names {
		err := s.withExclusiveLock(name, func() error {
			conv, err := s.loadConversation(name)
			if err != nil {
				return err
			}

			var kept []chat.Message
			for _, msg := range conv.Messages {
				if msg.Timestamp.After(cutoff) {
					kept = append(kept, msg)
				} else {
					removed++
				}
			}

			if len(kept) != len(conv.Messages) {
				conv.Messages = kept
				conv.UpdatedAt = s.now()
				return s.saveConversation(conv)
			}
			return nil
		})
		if err != nil {
			return removed, err
		}
	}

	return removed, nil
}

// listUnsafe returns all conversation names without locking.
// Caller must hold s.mu.
func (s *MsgStore) listUnsafe() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read conversations directory: %w", err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasSuffix(name, ".json") {
			names = append(names, strings.TrimSuffix(name, ".json"))
		}
	}

	return names, nil
}

// loadConversation reads a conversation file from disk.
// Returns an empty conversation if the file doesn't exist.
func (s *MsgStore) loadConversation(name string) (chat.Conversation, error) {
	conv := chat.Conversation{Name: name}
	if _, err := readJSON(s.conversationPath(name), &conv); err != nil {
		return chat.Conversation{}, fmt.Errorf("load conversation: %w", err)
	}
	conv.Name = name
	return conv, nil
}

// saveConversation writes a conversation file to disk atomically.
func (s *MsgStore) saveConversation(conv chat.Conversation) error {
	if err := writeJSON(s.conversationPath(conv.Name), conv); err != nil {
		return fmt.Errorf("save conversation: %w", err)
	}
	return nil
}
