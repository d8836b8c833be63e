package validate

import (
	"strings"
	"testing"
)

func TestConversationName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid name", "support-chat", false},
		{"valid with spaces", "team standup", false},
		{"valid with underscore", "bot_log", false},
		{"empty string", "", true},
		{"only spaces", "   ", true},
		{"hidden", ".secret", true},
		{"parent traversal", "../etc", true},
		{"slash", "a/b", true},
		{"backslash", `a\b`, true},
		{"too long", strings.Repeat("x", 129), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ConversationName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ConversationName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestMessageText(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid", "hello", false},
		{"multi line", "hello\nworld", false},
		{"empty string", "", true},
		{"only whitespace", " \n\t", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := MessageText(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("MessageText(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}
