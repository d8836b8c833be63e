package tui

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/hay-kot/parley/internal/core/chat"
	"github.com/hay-kot/parley/internal/core/config"
	"github.com/hay-kot/parley/internal/core/history"
	"github.com/hay-kot/parley/internal/render"
	"github.com/hay-kot/parley/internal/styles"
)

// Rows used around the message list: header, status or input, help.
const chromeRows = 3

// Options configures the TUI behavior.
type Options struct {
	Conversation string         // conversation to display
	Follow       bool           // poll the store for new messages
	ReadOnly     bool           // disable composing
	History      history.Store  // compose history, optional
	Logger       zerolog.Logger // component logger
}

// Model is the main Bubble Tea model for the TUI.
type Model struct {
	cfg   *config.Config
	store chat.Store
	opts  Options
	log   zerolog.Logger

	list  *MessageList
	input textinput.Model
	help  help.Model
	keys  appKeyMap
	seen  map[string]bool

	// recall holds previously sent texts, newest first. recallIdx is -1 when
	// not browsing; draft keeps the unsent input while browsing.
	recall    []string
	recallIdx int
	draft     string

	composing bool
	modal     Modal
	status    string
	statusErr bool
	width     int
	height    int
	err       error
	quitting  bool
}

// New creates a new TUI model.
func New(store chat.Store, cfg *config.Config, opts Options) Model {
	r := render.New(render.Options{
		Clock:        cfg.Clock(),
		Bubbles:      styles.NewBubbles(cfg.Theme),
		WidthPercent: cfg.BubbleWidthPercent,
		Markdown:     cfg.Markdown,
		Logger:       opts.Logger,
	})
	list := NewMessageList(r, cfg.AnimateScroll)

	input := textinput.New()
	input.Prompt = promptStyle.Render("› ")
	input.Placeholder = "Write a message"
	input.CharLimit = 4000

	h := help.New()
	grayStyle := lipgloss.NewStyle().Foreground(styles.ColorGray)
	h.Styles.ShortKey = grayStyle
	h.Styles.ShortDesc = grayStyle
	h.Styles.ShortSeparator = grayStyle
	h.ShortSeparator = " " + iconDot + " "

	return Model{
		cfg:   cfg,
		store: store,
		opts:  opts,
		log:   opts.Logger,
		list:  list,
		input: input,
		help:  h,
		keys:  defaultAppKeyMap(list.keys, !opts.ReadOnly && store != nil),
		seen:  make(map[string]bool),

		recallIdx: -1,
	}
}

// Err returns the error that ended the program, if any.
func (m Model) Err() error {
	return m.err
}

// Messages returns the messages currently displayed.
func (m Model) Messages() []chat.Message {
	return m.list.Messages()
}

// Init loads the conversation and starts polling when following.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{loadMessages(m.store, m.opts.Conversation)}
	if m.opts.History != nil {
		cmds = append(cmds, loadHistory(m.opts.History))
	}
	if m.opts.Follow {
		cmds = append(cmds, schedulePollTick(m.cfg.PollInterval))
	}
	return tea.Batch(cmds...)
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.input.Width = max(msg.Width-4, 1)
		m.list.SetSize(msg.Width, max(msg.Height-chromeRows, 1))
		return m.checkListErr(nil)

	case messagesLoadedMsg:
		if msg.err != nil {
			m.err = fmt.Errorf("load messages: %w", msg.err)
			m.quitting = true
			return m, tea.Quit
		}
		return m.checkListErr(m.appendMessages(msg.messages))

	case historyLoadedMsg:
		if msg.err != nil {
			m.log.Warn().Err(msg.err).Msg("load compose history")
			return m, nil
		}
		m.recall = history.Texts(msg.entries)
		return m, nil

	case pollTickMsg:
		return m, tea.Batch(
			loadMessages(m.store, m.opts.Conversation),
			schedulePollTick(m.cfg.PollInterval),
		)

	case messageSentMsg:
		if msg.err != nil {
			m.log.Error().Err(msg.err).Msg("send message")
			m.setStatus(fmt.Sprintf("send failed: %v", msg.err), true)
			return m, nil
		}
		m.log.Debug().Str("id", msg.message.ID).Msg("message sent")
		m.setStatus("", false)
		cmds := []tea.Cmd{loadMessages(m.store, m.opts.Conversation)}
		if m.opts.History != nil {
			cmds = append(cmds, loadHistory(m.opts.History))
		}
		return m, tea.Batch(cmds...)

	case scrollFrameMsg:
		return m, m.list.Update(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m, m.list.Update(msg)
	}

	if m.composing {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

// handleKey routes key presses to the compose input or the list.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	keyStr := msg.String()

	if m.modal.Visible() {
		return m.handleModalKey(keyStr)
	}

	if keyStr == keyCtrlC {
		if m.composing && strings.TrimSpace(m.input.Value()) != "" {
			m.modal = NewModal("Discard draft?", "The message you are writing has not been sent.", "Quit")
			return m, nil
		}
		m.quitting = true
		return m, tea.Quit
	}

	if m.composing {
		switch keyStr {
		case keyEsc:
			m.stopComposing()
			return m, nil
		case keyEnter:
			text := strings.TrimSpace(m.input.Value())
			m.stopComposing()
			if text == "" {
				return m, nil
			}
			return m, sendMessage(m.store, m.opts.History, m.opts.Conversation, text)
		case keyUp:
			m.recallStep(1)
			return m, nil
		case keyDown:
			m.recallStep(-1)
			return m, nil
		}

		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Compose):
		m.composing = true
		m.setStatus("", false)
		cmd := m.input.Focus()
		return m, cmd
	}

	return m, m.list.Update(msg)
}

// handleModalKey drives the discard-draft confirmation.
func (m Model) handleModalKey(keyStr string) (tea.Model, tea.Cmd) {
	switch keyStr {
	case "left", "right", "h", "l", "tab":
		m.modal.ToggleSelection()
	case keyEnter:
		if m.modal.ConfirmSelected() {
			m.quitting = true
			return m, tea.Quit
		}
		m.modal = Modal{}
	case keyEsc:
		m.modal = Modal{}
	case keyCtrlC:
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

func (m *Model) stopComposing() {
	m.composing = false
	m.input.Blur()
	m.input.Reset()
	m.recallIdx = -1
	m.draft = ""
}

// recallStep moves through the recall list: +1 toward older texts, -1 toward
// newer ones. Stepping past the newest entry restores the draft.
func (m *Model) recallStep(delta int) {
	next := m.recallIdx + delta
	if next >= len(m.recall) || next < -1 {
		return
	}

	if m.recallIdx == -1 {
		m.draft = m.input.Value()
	}
	m.recallIdx = next

	if next == -1 {
		m.input.SetValue(m.draft)
	} else {
		m.input.SetValue(m.recall[next])
	}
	m.input.CursorEnd()
}

// appendMessages adds messages not yet shown and hands a new sequence to the
// list, which scrolls to the end because the sequence changed. The list's
// current sequence is never written to.
func (m *Model) appendMessages(loaded []chat.Message) tea.Cmd {
	current := m.list.Messages()
	next := slices.Clone(current)

	for _, msg := range loaded {
		if m.seen[msg.ID] {
			continue
		}
		m.seen[msg.ID] = true
		next = append(next, msg)
	}

	if len(next) == len(current) {
		return nil
	}

	m.log.Debug().
		Str("conversation", m.opts.Conversation).
		Int("new", len(next)-len(current)).
		Msg("messages loaded")

	return m.list.SetMessages(next)
}

// checkListErr ends the program when the list failed to render.
func (m Model) checkListErr(cmd tea.Cmd) (tea.Model, tea.Cmd) {
	if err := m.list.Err(); err != nil {
		m.err = fmt.Errorf("render messages: %w", err)
		m.quitting = true
		return m, tea.Quit
	}
	return m, cmd
}

func (m *Model) setStatus(s string, isErr bool) {
	m.status = s
	m.statusErr = isErr
}

// View renders the TUI.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n")

	if len(m.list.Messages()) == 0 {
		empty := emptyStyle.Render("No messages yet")
		b.WriteString(lipgloss.PlaceVertical(max(m.height-chromeRows, 1), lipgloss.Top, empty))
	} else {
		b.WriteString(m.list.View())
	}
	b.WriteString("\n")

	switch {
	case m.composing:
		b.WriteString(" ")
		b.WriteString(m.input.View())
	case m.status != "" && m.statusErr:
		b.WriteString(statusErrorStyle.Render(m.status))
	case m.status != "":
		b.WriteString(statusStyle.Render(m.status))
	}
	b.WriteString("\n")

	b.WriteString(styles.HelpStyle.Render(m.help.View(m.keys)))

	if m.modal.Visible() {
		return m.modal.Overlay(b.String(), m.width, m.height)
	}
	return b.String()
}

func (m Model) renderHeader() string {
	count := len(m.list.Messages())
	noun := "messages"
	if count == 1 {
		noun = "message"
	}

	sub := fmt.Sprintf(" %s %d %s", iconDot, count, noun)
	if m.opts.Follow {
		sub += fmt.Sprintf(" %s %s following", iconDot, iconFollow)
	}

	return titleStyle.Render(m.opts.Conversation) + subtitleStyle.Render(sub)
}
