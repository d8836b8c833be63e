package doctor

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hay-kot/parley/internal/core/chat"
	"github.com/hay-kot/parley/internal/core/config"
)

type mockStore struct {
	conversations map[string][]chat.Message
}

func (m *mockStore) Append(_ context.Context, _ string, msg chat.Message) (chat.Message, error) {
	return msg, nil
}

func (m *mockStore) Messages(_ context.Context, name string, _ time.Time) ([]chat.Message, error) {
	msgs, ok := m.conversations[name]
	if !ok {
		return nil, chat.ErrConversationNotFound
	}
	return msgs, nil
}

func (m *mockStore) List(_ context.Context) ([]string, error) {
	names := make([]string, 0, len(m.conversations))
	for name := range m.conversations {
		names = append(names, name)
	}
	return names, nil
}

func (m *mockStore) Prune(_ context.Context, _ time.Duration) (int, error) {
	return 0, nil
}

func touch(t *testing.T, dir, name string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0o644))
}

func TestStaleFileCheck_NoDirectory(t *testing.T) {
	check := NewStaleFileCheck(filepath.Join(t.TempDir(), "missing"))
	result := check.Run(context.Background())

	assert.Equal(t, "Stale Files", result.Name)
	require.Len(t, result.Items, 1)
	assert.Equal(t, StatusPass, result.Items[0].Status)
}

func TestStaleFileCheck_Clean(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "support.json")
	touch(t, dir, "support.json.lock")

	result := NewStaleFileCheck(dir).Run(context.Background())

	require.Len(t, result.Items, 1)
	assert.Equal(t, StatusPass, result.Items[0].Status)
	assert.Equal(t, "No stale files", result.Items[0].Label)
}

func TestStaleFileCheck_ReportsStale(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "support.json")
	touch(t, dir, "support.json.lock")
	touch(t, dir, "gone.json.lock")
	touch(t, dir, "support.json.tmp")

	result := NewStaleFileCheck(dir).Run(context.Background())

	require.Len(t, result.Items, 2)
	for _, item := range result.Items {
		assert.Equal(t, StatusWarn, item.Status)
		assert.True(t, item.Fixable)
	}

	// Nothing removed without fix
	assert.FileExists(t, filepath.Join(dir, "gone.json.lock"))
	assert.FileExists(t, filepath.Join(dir, "support.json.tmp"))
}

func TestStaleFileCheck_Fix(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "support.json")
	touch(t, dir, "support.json.lock")
	touch(t, dir, "gone.json.lock")

	results := RunAll(context.Background(), []Check{NewStaleFileCheck(dir)}, Options{Fix: true})

	require.Len(t, results, 1)
	require.Len(t, results[0].Items, 1)
	item := results[0].Items[0]
	assert.Equal(t, StatusPass, item.Status)
	assert.True(t, item.Fixed)
	assert.False(t, item.Fixable)
	assert.Equal(t, "fixed: lock file without transcript", item.Detail)

	assert.NoFileExists(t, filepath.Join(dir, "gone.json.lock"))
	assert.FileExists(t, filepath.Join(dir, "support.json.lock"))

	tally := Summarize(results)
	assert.Equal(t, 1, tally.Fixed)
	assert.Equal(t, 0, tally.Fixable)
}

// stubCheck returns canned items and records what it was asked to fix.
type stubCheck struct {
	items  []CheckItem
	fixErr error
	fixed  []string
}

func (c *stubCheck) Name() string { return "Stub" }

func (c *stubCheck) Run(context.Context) Result {
	return Result{Name: c.Name(), Items: append([]CheckItem(nil), c.items...)}
}

func (c *stubCheck) Fix(_ context.Context, item CheckItem) error {
	if c.fixErr != nil {
		return c.fixErr
	}
	c.fixed = append(c.fixed, item.Label)
	return nil
}

// plainCheck reports fixable items but cannot fix them.
type plainCheck struct {
	items []CheckItem
}

func (c *plainCheck) Name() string { return "Plain" }

func (c *plainCheck) Run(context.Context) Result {
	return Result{Name: c.Name(), Items: append([]CheckItem(nil), c.items...)}
}

func TestRunAll_Fix(t *testing.T) {
	items := []CheckItem{
		{Label: "ok", Status: StatusPass, Fixable: true},
		{Label: "broken", Status: StatusWarn, Fixable: true},
		{Label: "manual", Status: StatusFail},
	}

	t.Run("without fix nothing changes", func(t *testing.T) {
		check := &stubCheck{items: items}
		results := RunAll(context.Background(), []Check{check}, Options{})

		assert.Empty(t, check.fixed)
		assert.Equal(t, StatusWarn, results[0].Items[1].Status)
		assert.Equal(t, 1, Summarize(results).Fixable)
	})

	t.Run("fix repairs fixable items only", func(t *testing.T) {
		check := &stubCheck{items: items}
		results := RunAll(context.Background(), []Check{check}, Options{Fix: true})

		assert.Equal(t, []string{"broken"}, check.fixed)
		assert.Equal(t, StatusPass, results[0].Items[1].Status)
		assert.Equal(t, StatusFail, results[0].Items[2].Status)
	})

	t.Run("failed fix becomes a failure", func(t *testing.T) {
		check := &stubCheck{items: items, fixErr: errors.New("read-only filesystem")}
		results := RunAll(context.Background(), []Check{check}, Options{Fix: true})

		item := results[0].Items[1]
		assert.Equal(t, StatusFail, item.Status)
		assert.Contains(t, item.Detail, "read-only filesystem")
		assert.False(t, item.Fixed)
	})

	t.Run("checks without a fixer are left alone", func(t *testing.T) {
		results := RunAll(context.Background(), []Check{&plainCheck{items: items}}, Options{Fix: true})

		assert.Equal(t, StatusWarn, results[0].Items[1].Status)
		assert.False(t, results[0].Items[1].Fixed)
	})
}

func TestTranscriptCheck(t *testing.T) {
	ts := time.Date(2024, 1, 1, 10, 30, 0, 0, time.UTC)
	store := &mockStore{conversations: map[string][]chat.Message{
		"good": {
			{ID: "1", Text: "Hi", Sender: chat.SenderUser, Timestamp: ts},
			{ID: "2", Text: "Hello back", Sender: chat.SenderAI, Timestamp: ts},
		},
		"dupes": {
			{ID: "1", Text: "a", Sender: chat.SenderUser, Timestamp: ts},
			{ID: "1", Text: "b", Sender: chat.SenderUser, Timestamp: ts},
		},
		"no-time": {
			{ID: "1", Text: "a", Sender: chat.SenderUser},
		},
		"system": {
			{ID: "1", Text: "Agent joined", Sender: "system", Timestamp: ts},
			{ID: "2", Text: "Hi", Sender: chat.SenderUser, Timestamp: ts},
		},
	}}

	result := NewTranscriptCheck(store).Run(context.Background())
	require.Len(t, result.Items, 4)

	byLabel := make(map[string]CheckItem, len(result.Items))
	for _, item := range result.Items {
		byLabel[item.Label] = item
	}

	assert.Equal(t, StatusPass, byLabel["good"].Status)
	assert.Equal(t, "2 message(s)", byLabel["good"].Detail)

	assert.Equal(t, StatusFail, byLabel["dupes"].Status)
	assert.Contains(t, byLabel["dupes"].Detail, "messages[1].id")

	assert.Equal(t, StatusFail, byLabel["no-time"].Status)
	assert.Contains(t, byLabel["no-time"].Detail, "timestamp")

	assert.Equal(t, StatusWarn, byLabel["system"].Status)
	assert.Contains(t, byLabel["system"].Detail, `unknown sender "system"`)
	assert.False(t, byLabel["system"].Fixable)
}

func TestTranscriptCheck_Empty(t *testing.T) {
	result := NewTranscriptCheck(&mockStore{}).Run(context.Background())

	require.Len(t, result.Items, 1)
	assert.Equal(t, StatusPass, result.Items[0].Status)
}

func TestConfigCheck(t *testing.T) {
	t.Run("nil config", func(t *testing.T) {
		result := NewConfigCheck(nil, "").Run(context.Background())
		require.Len(t, result.Items, 1)
		assert.Equal(t, StatusFail, result.Items[0].Status)
	})

	t.Run("valid config", func(t *testing.T) {
		cfg := config.DefaultConfig()
		cfg.DataDir = t.TempDir()

		result := NewConfigCheck(&cfg, "").Run(context.Background())
		require.Len(t, result.Items, 1)
		assert.Equal(t, StatusPass, result.Items[0].Status)
	})

	t.Run("field errors become items", func(t *testing.T) {
		cfg := config.DefaultConfig()
		cfg.DataDir = t.TempDir()
		cfg.TimeFormat = "sundial"
		cfg.Theme.UserBackground = "blue"

		result := NewConfigCheck(&cfg, "").Run(context.Background())
		require.Len(t, result.Items, 2)

		labels := []string{result.Items[0].Label, result.Items[1].Label}
		assert.Contains(t, labels, "time_format")
		assert.Contains(t, labels, "theme.user_background")
		for _, item := range result.Items {
			assert.Equal(t, StatusFail, item.Status)
		}
	})
}

func TestRunAll_EncodesStatusNames(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "gone.json.lock")

	results := RunAll(context.Background(), []Check{NewStaleFileCheck(dir)}, Options{})
	require.Len(t, results, 1)
	require.Len(t, results[0].Items, 1)

	data, err := json.Marshal(results[0].Items[0])
	require.NoError(t, err)
	assert.Contains(t, string(data), `"status":"warn"`)
	assert.NotContains(t, string(data), dir, "target stays out of the report")

	tally := Summarize(results)
	assert.Equal(t, Tally{Warned: 1, Fixable: 1}, tally)
	assert.True(t, tally.Healthy())
}
