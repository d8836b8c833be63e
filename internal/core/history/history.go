// Package history defines compose history domain types and interfaces.
package history

import "time"

// Entry is a message text that was sent from parley.
type Entry struct {
	Conversation string    `json:"conversation"`
	Text         string    `json:"text"`
	Timestamp    time.Time `json:"timestamp"`
}

// Texts returns the text of each entry, in order.
func Texts(entries []Entry) []string {
	texts := make([]string, len(entries))
	for i, e := range entries {
		texts[i] = e.Text
	}
	return texts
}
