package tui

import (
	"context"
	"errors"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/hay-kot/parley/internal/core/chat"
	"github.com/hay-kot/parley/internal/core/history"
)

// storeTimeout bounds each store call made from the TUI.
const storeTimeout = 5 * time.Second

// messagesLoadedMsg is sent when messages are loaded from the store.
type messagesLoadedMsg struct {
	messages []chat.Message
	err      error
}

// messageSentMsg is sent when a composed message has been appended.
type messageSentMsg struct {
	message chat.Message
	err     error
}

// historyLoadedMsg is sent when compose history is loaded.
type historyLoadedMsg struct {
	entries []history.Entry
	err     error
}

// pollTickMsg is sent to trigger the next poll.
type pollTickMsg struct{}

// loadMessages returns a command that loads the whole conversation. Appends
// from other processes can commit out of timestamp order, so polls always
// read everything and the model drops what it has seen by ID.
func loadMessages(store chat.Store, conversation string) tea.Cmd {
	return func() tea.Msg {
		if store == nil {
			return messagesLoadedMsg{}
		}

		ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
		defer cancel()

		messages, err := store.Messages(ctx, conversation, time.Time{})
		if err != nil {
			// A conversation nobody has written to yet is just empty
			if errors.Is(err, chat.ErrConversationNotFound) {
				return messagesLoadedMsg{}
			}
			return messagesLoadedMsg{err: err}
		}

		return messagesLoadedMsg{messages: messages}
	}
}

// sendMessage returns a command that appends a user message to the store
// and records it in the compose history when one is configured.
func sendMessage(store chat.Store, hist history.Store, conversation, text string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
		defer cancel()

		msg, err := store.Append(ctx, conversation, chat.Message{
			Text:   text,
			Sender: chat.SenderUser,
		})
		if err != nil {
			return messageSentMsg{err: err}
		}

		if hist != nil {
			// Best effort, the message itself was stored
			_ = hist.Save(ctx, history.Entry{
				Conversation: conversation,
				Text:         msg.Text,
				Timestamp:    msg.Timestamp,
			})
		}

		return messageSentMsg{message: msg}
	}
}

// loadHistory returns a command that loads compose history.
func loadHistory(hist history.Store) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
		defer cancel()

		entries, err := hist.List(ctx)
		return historyLoadedMsg{entries: entries, err: err}
	}
}

// schedulePollTick returns a command that schedules the next poll tick.
// An interval of zero disables polling.
func schedulePollTick(interval time.Duration) tea.Cmd {
	if interval <= 0 {
		return nil
	}
	return tea.Tick(interval, func(time.Time) tea.Msg {
		return pollTickMsg{}
	})
}
