// Package render turns an ordered sequence of chat messages into styled
// message bubbles.
package render

import (
	"fmt"

	"github.com/hay-kot/parley/internal/core/chat"
	"github.com/hay-kot/parley/internal/core/clock"
)

// VoiceLabel is shown beneath the text of audio messages.
const VoiceLabel = "Voice Message"

// Align is the horizontal placement of a message block.
type Align int

const (
	AlignLeft Align = iota
	AlignRight
)

func (a Align) String() string {
	if a == AlignRight {
		return "right"
	}
	return "left"
}

// Block is the layout of a single message before styling.
type Block struct {
	ID     string
	Text   string
	Align  Align
	Accent bool // accent colours for the user, neutral otherwise
	Voice  bool // show VoiceLabel
	Time   string
}

// Layout returns one block per message in input order. The first timestamp
// that fails to format aborts the layout.
func Layout(msgs []chat.Message, f clock.Formatter) ([]Block, error) {
	blocks := make([]Block, 0, len(msgs))

	for _, msg := range msgs {
		ts, err := f.Format(msg.Timestamp)
		if err != nil {
			return nil, fmt.Errorf("message %q: %w", msg.ID, err)
		}

		b := Block{
			ID:    msg.ID,
			Text:  msg.Text,
			Voice: msg.IsAudio,
			Time:  ts,
		}

		switch {
		case msg.Sender.IsUser():
			b.Align = AlignRight
			b.Accent = true
		default:
			b.Align = AlignLeft
		}

		blocks = append(blocks, b)
	}

	return blocks, nil
}
