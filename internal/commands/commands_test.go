package commands

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/x/ansi"
	"github.com/hay-kot/criterio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hay-kot/parley/internal/core/chat"
	"github.com/hay-kot/parley/internal/core/config"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.DataDir = t.TempDir()
	cfg.TimeFormat = config.TimeFormat24h
	return &cfg
}

func TestMatchConversations(t *testing.T) {
	names := []string{"billing", "support-eu", "support-us", "team_bot"}

	tests := []struct {
		name    string
		pattern string
		want    []string
		wantErr bool
	}{
		{"empty pattern matches all", "", names, false},
		{"prefix wildcard", "support-*", []string{"support-eu", "support-us"}, false},
		{"contains", "*bot*", []string{"team_bot"}, false},
		{"alternatives", "{billing,team_bot}", []string{"billing", "team_bot"}, false},
		{"no match", "sales", nil, false},
		{"invalid pattern", "support-[", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := matchConversations(names, tt.pattern)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSummarize(t *testing.T) {
	early := time.Date(2024, 1, 1, 10, 30, 0, 0, time.UTC)
	late := early.Add(time.Hour)

	msgs := []chat.Message{
		{ID: "1", Sender: chat.SenderAI, Timestamp: late},
		{ID: "2", Sender: chat.SenderUser, Timestamp: early},
	}

	s := summarize("support", msgs, time.Time{})
	assert.Equal(t, "support", s.Name)
	assert.Equal(t, 2, s.MessageCount)
	assert.Equal(t, 1, s.Unread, "user messages are never unread")
	assert.Equal(t, late, s.LastMessageAt)

	read := summarize("support", msgs, late)
	assert.Equal(t, 0, read.Unread)

	empty := summarize("empty", nil, time.Time{})
	assert.Equal(t, 0, empty.MessageCount)
	assert.True(t, empty.LastMessageAt.IsZero())
}

func TestPrintSummariesJSON(t *testing.T) {
	ts := time.Date(2024, 1, 1, 10, 30, 0, 0, time.UTC)
	var buf bytes.Buffer

	err := printSummariesJSON(&buf, []conversationSummary{
		{Name: "support", MessageCount: 2, Unread: 1, LastMessageAt: ts},
		{Name: "empty"},
	})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)

	var first map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &first))
	assert.Equal(t, "support", first["name"])
	assert.EqualValues(t, 2, first["message_count"])
	assert.EqualValues(t, 1, first["unread"])
	assert.Equal(t, "2024-01-01T10:30:00Z", first["last_message_at"])

	assert.NotContains(t, lines[1], "last_message_at")
}

func TestPrintSummariesTable(t *testing.T) {
	var buf bytes.Buffer

	err := printSummariesTable(&buf, []conversationSummary{
		{Name: "support", MessageCount: 12, Unread: 3},
	})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "NAME")
	assert.Contains(t, out, "MESSAGES")
	assert.Contains(t, out, "UNREAD")
	assert.Contains(t, out, "support")
	assert.Contains(t, out, "12")
}

func TestReadText(t *testing.T) {
	got, err := readText(strings.NewReader("hello\nworld\n\n"))
	require.NoError(t, err)
	assert.Equal(t, "hello\nworld", got)

	assert.Equal(t, "windows", trimText("windows\r\n"))
	assert.Equal(t, "  keep leading", trimText("  keep leading\n"))
}

func TestRenderConversation(t *testing.T) {
	cfg := testConfig(t)
	base := time.Date(2024, 1, 1, 10, 30, 0, 0, time.UTC)

	msgs := []chat.Message{
		{ID: "1", Text: "Hi", Sender: chat.SenderUser, Timestamp: base},
		{ID: "2", Text: "Hello back", Sender: chat.SenderAI, IsAudio: true, Timestamp: base.Add(time.Minute)},
		{ID: "3", Text: "Thanks", Sender: chat.SenderUser, Timestamp: base.Add(2 * time.Minute)},
	}

	t.Run("all messages", func(t *testing.T) {
		out, err := renderConversation(cfg, msgs, 60, 0)
		require.NoError(t, err)

		plain := ansi.Strip(out)
		assert.Contains(t, plain, "Hi")
		assert.Contains(t, plain, "Hello back")
		assert.Contains(t, plain, "Voice Message")
		assert.Contains(t, plain, "Thanks")
	})

	t.Run("last limits output", func(t *testing.T) {
		out, err := renderConversation(cfg, msgs, 60, 1)
		require.NoError(t, err)

		plain := ansi.Strip(out)
		assert.Contains(t, plain, "Thanks")
		assert.NotContains(t, plain, "Hello back")
	})

	t.Run("duplicate ids rejected", func(t *testing.T) {
		dupes := []chat.Message{
			{ID: "1", Text: "a", Sender: chat.SenderUser, Timestamp: base},
			{ID: "1", Text: "b", Sender: chat.SenderAI, Timestamp: base},
		}
		_, err := renderConversation(cfg, dupes, 60, 0)

		var fieldErrs criterio.FieldErrors
		require.ErrorAs(t, err, &fieldErrs)
		require.Len(t, fieldErrs, 1)
		assert.ErrorIs(t, fieldErrs[0].Err, chat.ErrDuplicateID)
	})

	t.Run("unknown sender renders like ai", func(t *testing.T) {
		system := []chat.Message{{ID: "1", Text: "Agent joined", Sender: "system", Timestamp: base}}
		out, err := renderConversation(cfg, system, 60, 0)
		require.NoError(t, err)

		ai := []chat.Message{{ID: "1", Text: "Agent joined", Sender: chat.SenderAI, Timestamp: base}}
		want, err := renderConversation(cfg, ai, 60, 0)
		require.NoError(t, err)
		assert.Equal(t, want, out)

		for _, line := range strings.Split(ansi.Strip(out), "\n") {
			if strings.Contains(line, "Agent joined") {
				assert.Less(t, len(line)-len(strings.TrimLeft(line, " ")), 5, "left aligned")
			}
		}
	})

	t.Run("malformed timestamp propagates", func(t *testing.T) {
		bad := []chat.Message{{ID: "1", Text: "a", Sender: chat.SenderUser}}
		_, err := renderConversation(cfg, bad, 60, 0)
		require.Error(t, err)
	})

	t.Run("empty renders nothing", func(t *testing.T) {
		out, err := renderConversation(cfg, nil, 60, 0)
		require.NoError(t, err)
		assert.Empty(t, out)
	})
}
