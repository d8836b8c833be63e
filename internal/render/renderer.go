package render

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/hay-kot/parley/internal/core/chat"
	"github.com/hay-kot/parley/internal/core/clock"
	"github.com/hay-kot/parley/internal/styles"
)

const (
	defaultWidth       = 80
	outerPadding       = 1 // columns left and right of the list
	bubbleChrome       = 2 // bubble horizontal padding
	glamourGutter      = 2 // glamour adds a left margin
	markdownStyle      = "light"
	defaultWidthPct    = 80
	minimumContentCols = 1
)

// Options configures a Renderer.
type Options struct {
	Clock        clock.Formatter
	Bubbles      styles.Bubbles
	WidthPercent int  // bubble max width as a percentage of the list width
	Markdown     bool // render assistant text as markdown
	Logger       zerolog.Logger
}

// Renderer renders message sequences into a vertically stacked list of
// bubbles. A Renderer is not safe for concurrent use.
type Renderer struct {
	opts Options

	markdown      *glamour.TermRenderer
	markdownWidth int
}

// New creates a Renderer.
func New(opts Options) *Renderer {
	if opts.WidthPercent <= 0 || opts.WidthPercent > 100 {
		opts.WidthPercent = defaultWidthPct
	}
	return &Renderer{opts: opts}
}

// Render lays out and styles msgs for a list of the given width. An empty
// sequence renders as the empty string.
func (r *Renderer) Render(msgs []chat.Message, width int) (string, error) {
	blocks, err := Layout(msgs, r.opts.Clock)
	if err != nil {
		return "", err
	}
	if len(blocks) == 0 {
		return "", nil
	}

	if width <= 0 {
		width = defaultWidth
	}
	available := max(width-2*outerPadding, bubbleChrome+minimumContentCols)
	maxContent := max(available*r.opts.WidthPercent/100-bubbleChrome, minimumContentCols)

	rendered := make([]string, len(blocks))
	for i, b := range blocks {
		bubble := r.renderBubble(b, maxContent)

		pos := lipgloss.Left
		if b.Align == AlignRight {
			pos = lipgloss.Right
		}
		placed := lipgloss.PlaceHorizontal(available, pos, bubble)
		rendered[i] = indent(placed, outerPadding)
	}

	// one blank line above the list and between bubbles
	return "\n" + strings.Join(rendered, "\n\n"), nil
}

func (r *Renderer) renderBubble(b Block, maxContent int) string {
	style := r.opts.Bubbles.Neutral
	if b.Accent {
		style = r.opts.Bubbles.Accent
	}

	text := b.Text
	if r.opts.Markdown && !b.Accent {
		text = r.renderMarkdown(text, maxContent)
	}

	contentWidth := min(maxContent, max(widest(text), lipgloss.Width(b.Time), voiceWidth(b.Voice)))
	contentWidth = max(contentWidth, minimumContentCols)

	parts := []string{style.Text.Width(contentWidth).Render(text)}
	if b.Voice {
		parts = append(parts, style.Label.Width(contentWidth).Render(VoiceLabel))
	}
	parts = append(parts, style.Timestamp.Width(contentWidth).Render(b.Time))

	return style.Container.Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}

// renderMarkdown renders text with glamour. On failure the plain text is used.
func (r *Renderer) renderMarkdown(text string, width int) string {
	if r.markdown == nil || r.markdownWidth != width {
		tr, err := glamour.NewTermRenderer(
			glamour.WithStandardStyle(markdownStyle),
			glamour.WithWordWrap(max(width-glamourGutter, minimumContentCols)),
		)
		if err != nil {
			r.opts.Logger.Warn().Err(err).Msg("create markdown renderer")
			return text
		}
		r.markdown = tr
		r.markdownWidth = width
	}

	out, err := r.markdown.Render(text)
	if err != nil {
		r.opts.Logger.Warn().Err(err).Msg("render markdown")
		return text
	}
	return strings.Trim(out, "\n")
}

func widest(s string) int {
	w := 0
	for _, line := range strings.Split(s, "\n") {
		w = max(w, lipgloss.Width(line))
	}
	return w
}

func voiceWidth(voice bool) int {
	if voice {
		return lipgloss.Width(VoiceLabel)
	}
	return 0
}

func indent(s string, n int) string {
	pad := strings.Repeat(" ", n)
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = pad + line
	}
	return strings.Join(lines, "\n")
}
