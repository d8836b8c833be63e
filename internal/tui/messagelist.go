package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/hay-kot/parley/internal/core/chat"
	"github.com/hay-kot/parley/internal/render"
)

// scrollFrameInterval is the delay between scroll animation frames.
const scrollFrameInterval = 30 * time.Millisecond

// scrollFrameMsg advances a scroll-to-end animation. Frames whose tag is not
// the list's current tag belong to a superseded request and are dropped.
type scrollFrameMsg struct {
	tag int
}

// MessageList renders a message sequence into a scrollable viewport and
// scrolls to the newest message whenever the sequence changes.
type MessageList struct {
	renderer *render.Renderer
	viewport viewport.Model
	keys     listKeyMap
	messages []chat.Message
	animate  bool
	width    int
	height   int
	err      error

	scrollTag      int
	scrollRequests int
}

// NewMessageList creates a message list. When animate is true scroll-to-end
// requests ease toward the bottom over several frames instead of jumping.
func NewMessageList(r *render.Renderer, animate bool) *MessageList {
	vp := viewport.New(0, 0)
	vp.MouseWheelEnabled = true

	return &MessageList{
		renderer: r,
		viewport: vp,
		keys:     defaultListKeyMap(),
		animate:  animate,
	}
}

// SetMessages replaces the displayed sequence. If msgs is a different
// sequence than the one shown (see chat.SameSequence) the returned command
// scrolls to the end; passing the same sequence again only re-renders.
func (l *MessageList) SetMessages(msgs []chat.Message) tea.Cmd {
	changed := !chat.SameSequence(l.messages, msgs)
	l.messages = msgs
	l.refresh()

	if !changed || l.err != nil {
		return nil
	}
	return l.ScrollToEnd()
}

// Messages returns the sequence currently displayed.
func (l *MessageList) Messages() []chat.Message {
	return l.messages
}

// SetSize sets the viewport dimensions and re-renders for the new width.
func (l *MessageList) SetSize(width, height int) {
	wasAtBottom := l.viewport.AtBottom()

	l.width = width
	l.height = height
	l.viewport.Width = width
	l.viewport.Height = height
	l.refresh()

	if wasAtBottom {
		l.viewport.GotoBottom()
	}
}

// ScrollToEnd requests a scroll to the end of the content, superseding any
// request still in flight.
func (l *MessageList) ScrollToEnd() tea.Cmd {
	l.scrollRequests++
	l.scrollTag++

	if !l.animate || l.viewport.Height <= 0 {
		l.viewport.GotoBottom()
		return nil
	}
	return scheduleScrollFrame(l.scrollTag)
}

// ScrollRequests returns how many scroll-to-end requests have been issued.
func (l *MessageList) ScrollRequests() int {
	return l.scrollRequests
}

// AtBottom reports whether the newest content is in view.
func (l *MessageList) AtBottom() bool {
	return l.viewport.AtBottom()
}

// Err returns the error from the last render, if any.
func (l *MessageList) Err() error {
	return l.err
}

// Update handles scroll frames and navigation keys.
func (l *MessageList) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case scrollFrameMsg:
		if msg.tag != l.scrollTag {
			return nil
		}
		return l.stepScroll(msg.tag)

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, l.keys.Bottom):
			l.scrollTag++ // cancel any animation in flight
			l.viewport.GotoBottom()
			return nil
		case key.Matches(msg, l.keys.Top):
			l.scrollTag++
			l.viewport.GotoTop()
			return nil
		}
		l.scrollTag++
	}

	var cmd tea.Cmd
	l.viewport, cmd = l.viewport.Update(msg)
	return cmd
}

// View renders the viewport.
func (l *MessageList) View() string {
	return l.viewport.View()
}

// refresh renders the current sequence into the viewport.
func (l *MessageList) refresh() {
	content, err := l.renderer.Render(l.messages, l.width)
	if err != nil {
		l.err = err
		return
	}
	l.err = nil
	l.viewport.SetContent(content)
}

// stepScroll moves half of the remaining distance to the bottom and
// schedules the next frame until the bottom is reached.
func (l *MessageList) stepScroll(tag int) tea.Cmd {
	bottom := max(0, l.viewport.TotalLineCount()-l.viewport.Height)
	remaining := bottom - l.viewport.YOffset
	if remaining <= 0 {
		return nil
	}

	l.viewport.SetYOffset(l.viewport.YOffset + (remaining+1)/2)
	if l.viewport.AtBottom() {
		return nil
	}
	return scheduleScrollFrame(tag)
}

func scheduleScrollFrame(tag int) tea.Cmd {
	return tea.Tick(scrollFrameInterval, func(time.Time) tea.Msg {
		return scrollFrameMsg{tag: tag}
	})
}
