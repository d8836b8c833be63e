// Package styles provides shared lipgloss styles for CLI and TUI components.
package styles

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/hay-kot/parley/internal/core/config"
)

// Tokyo Night color palette.
var (
	ColorGreen  = lipgloss.Color("#9ece6a")
	ColorYellow = lipgloss.Color("#e0af68")
	ColorBlue   = lipgloss.Color("#7aa2f7")
	ColorGray   = lipgloss.Color("#565f89")
	ColorWhite  = lipgloss.Color("#c0caf5")
)

// Banner ASCII art for the header.
const Banner = `
 ╔═╗╔═╗╦═╗╦  ╔═╗╦ ╦
 ╠═╝╠═╣╠╦╝║  ║╣ ╚╦╝
 ╩  ╩ ╩╩╚═╩═╝╚═╝ ╩ `

// BannerStyle styles the ASCII art banner.
var BannerStyle = lipgloss.NewStyle().
	Foreground(ColorBlue).
	Bold(true)

// HeaderStyle styles the conversation header in the TUI.
var HeaderStyle = lipgloss.NewStyle().
	Foreground(ColorBlue).
	Bold(true).
	PaddingLeft(1)

// HelpStyle styles the help line.
var HelpStyle = lipgloss.NewStyle().
	Foreground(ColorGray).
	PaddingLeft(1)

// DividerStyle styles horizontal dividers.
var DividerStyle = lipgloss.NewStyle().
	Foreground(ColorGray)

// Bubble holds the styles for one side of the conversation.
type Bubble struct {
	Container lipgloss.Style
	Text      lipgloss.Style
	Label     lipgloss.Style // secondary "Voice Message" label
	Timestamp lipgloss.Style
}

// Bubbles holds the accent (user) and neutral (ai) bubble styles.
type Bubbles struct {
	Accent  Bubble
	Neutral Bubble
}

// NewBubbles builds bubble styles from the configured theme.
func NewBubbles(theme config.Theme) Bubbles {
	return Bubbles{
		Accent:  newBubble(theme.UserBackground, theme.UserForeground),
		Neutral: newBubble(theme.AIBackground, theme.AIForeground),
	}
}

// DefaultBubbles returns bubble styles for the default theme.
func DefaultBubbles() Bubbles {
	return NewBubbles(config.DefaultConfig().Theme)
}

func newBubble(background, foreground string) Bubble {
	bg := lipgloss.Color(background)
	fg := lipgloss.Color(foreground)

	return Bubble{
		Container: lipgloss.NewStyle().
			Background(bg).
			Padding(0, 1),
		Text: lipgloss.NewStyle().
			Background(bg).
			Foreground(fg),
		Label: lipgloss.NewStyle().
			Background(bg).
			Foreground(fg).
			Faint(true).
			Italic(true),
		Timestamp: lipgloss.NewStyle().
			Background(bg).
			Foreground(fg).
			Faint(true),
	}
}
