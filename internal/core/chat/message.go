// Package chat defines the chat transcript domain types and interfaces.
package chat

import "time"

// Sender identifies who wrote a message.
type Sender string

const (
	SenderUser Sender = "user"
	SenderAI   Sender = "ai"
)

// IsUser reports whether the message was written by the end user. Any other
// value, including unknown ones, is treated as the assistant side.
func (s Sender) IsUser() bool {
	return s == SenderUser
}

// Known reports whether s is one of the defined senders.
func (s Sender) Known() bool {
	return s == SenderUser || s == SenderAI
}

// String returns the sender, or "unknown" when empty.
func (s Sender) String() string {
	if s == "" {
		return "unknown"
	}
	return string(s)
}

// Message is a single chat entry.
type Message struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Sender    Sender    `json:"sender"`
	IsAudio   bool      `json:"is_audio,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// Conversation is a named, ordered transcript of messages.
type Conversation struct {
	Name      string    `json:"name"`
	Messages  []Message `json:"messages"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SameSequence reports whether a and b are the same sequence instance: the
// same backing array viewed with the same length. A slice that was appended
// to, or rebuilt from a reload, is a different sequence even when its
// contents compare equal.
func SameSequence(a, b []Message) bool {
	if len(a) != len(b) {
		return false
	}
	if len(a) == 0 {
		return (a == nil) == (b == nil)
	}
	return &a[0] == &b[0]
}
