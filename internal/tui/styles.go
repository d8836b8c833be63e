// Package tui implements the Bubble Tea TUI for parley.
package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/hay-kot/parley/internal/styles"
)

// Styles used for rendering the TUI chrome around the message list.
var (
	// Conversation title in the header.
	titleStyle = styles.HeaderStyle

	// Message count and follow state beside the title.
	subtitleStyle = lipgloss.NewStyle().
			Foreground(styles.ColorGray)

	// Error and status line.
	statusErrorStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#f38ba8")). // red
				PaddingLeft(1)

	statusStyle = lipgloss.NewStyle().
			Foreground(styles.ColorGreen).
			PaddingLeft(1)

	// Compose prompt.
	promptStyle = lipgloss.NewStyle().
			Foreground(styles.ColorBlue).
			Bold(true)

	// Empty conversation placeholder.
	emptyStyle = lipgloss.NewStyle().
			Foreground(styles.ColorGray).
			Italic(true).
			PaddingLeft(2)
)

// Icons and symbols.
const (
	iconDot    = "•" // Unicode bullet separator
	iconFollow = "●"
)

// Confirmation modal styles.
var (
	modalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(styles.ColorBlue).
			Padding(1, 2)

	modalTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(styles.ColorWhite)

	modalHelpStyle = lipgloss.NewStyle().
			Foreground(styles.ColorGray).
			MarginTop(1)

	modalButtonStyle = lipgloss.NewStyle().
				Padding(0, 1).
				Background(lipgloss.Color("#3b4261")).
				Foreground(lipgloss.Color("#a9b1d6"))

	modalButtonSelectedStyle = lipgloss.NewStyle().
					Padding(0, 1).
					Background(styles.ColorBlue).
					Foreground(lipgloss.Color("#1a1b26")).
					Bold(true)
)
