// Package randid generates short random identifiers for stored messages.
package randid

import "math/rand/v2"

// DefaultLength is the length of identifiers returned by New.
const DefaultLength = 12

const alphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

// New returns a random identifier of DefaultLength characters.
func New() string {
	return Generate(DefaultLength)
}

// Generate creates a random lowercase alphanumeric ID of the specified length.
// A non-positive length yields the empty string.
func Generate(length int) string {
	if length <= 0 {
		return ""
	}
	b := make([]byte, length)
	for i := range b {
		b[i] = alphabet[rand.IntN(len(alphabet))]
	}
	return string(b)
}
