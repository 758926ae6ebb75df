// Package study implements the AI study assistant chat screen.
package study

import (
	"context"
	"log/slog"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/ailearn/internal/chat"
	"github.com/abhisek/ailearn/internal/screen"
	"github.com/abhisek/ailearn/internal/ui/components"
	"github.com/abhisek/ailearn/internal/ui/layout"
	"github.com/abhisek/ailearn/internal/ui/theme"
)

const (
	title       = "AI Study Assistant"
	subtitle    = "Ask any question about your studies"
	placeholder = "Type your question here..."

	// inputLimit caps a single question.
	inputLimit = 2000
)

// Asker sends one question, with the answered turns before it, to the chat
// backend. It always yields display text; failures become an apology.
type Asker interface {
	Ask(ctx context.Context, text string, history ...chat.Turn) string
}

// StudyScreen shows the conversation with the study assistant.
type StudyScreen struct {
	asker   Asker
	conv    *chat.Conversation
	input   components.TextInput
	spinner spinner.Model

	// scroll is the number of lines hidden below the visible window.
	scroll int
}

var _ screen.Screen = (*StudyScreen)(nil)
var _ screen.KeyHintProvider = (*StudyScreen)(nil)

// New creates a StudyScreen that sends questions through asker.
func New(asker Asker) *StudyScreen {
	return &StudyScreen{
		asker: asker,
		conv:  chat.NewConversation(),
		input: components.NewTextInput(placeholder, inputLimit),
		spinner: spinner.New(
			spinner.WithSpinner(spinner.Dot),
			spinner.WithStyle(lipgloss.NewStyle().Foreground(theme.Secondary)),
		),
	}
}

func (s *StudyScreen) Init() tea.Cmd {
	return s.input.Init()
}

func (s *StudyScreen) Title() string {
	return title
}

func (s *StudyScreen) KeyHints() []layout.KeyHint {
	if s.conv.Pending() {
		return []layout.KeyHint{
			{Key: "PgUp/PgDn", Description: "Scroll"},
			{Key: "Esc", Description: "Back"},
		}
	}
	return []layout.KeyHint{
		{Key: "Enter", Description: "Send"},
		{Key: "PgUp/PgDn", Description: "Scroll"},
		{Key: "Ctrl+D", Description: "Dashboard"},
		{Key: "Esc", Description: "Back"},
	}
}

// Conversation exposes the messages for rendering and tests.
func (s *StudyScreen) Conversation() *chat.Conversation {
	return s.conv
}

func (s *StudyScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case replyMsg:
		return s.handleReply(msg)

	case spinner.TickMsg:
		if !s.conv.Pending() {
			return s, nil
		}
		var cmd tea.Cmd
		s.spinner, cmd = s.spinner.Update(msg)
		return s, cmd

	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

func (s *StudyScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "enter":
		return s.send()
	case "pgup":
		s.scroll += scrollStep
		return s, nil
	case "pgdown":
		s.scroll = max(s.scroll-scrollStep, 0)
		return s, nil
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

// send moves the typed question into the conversation and dispatches it.
// Nothing is sent while a reply is outstanding or the input is blank.
func (s *StudyScreen) send() (screen.Screen, tea.Cmd) {
	if s.input.Disabled {
		return s, nil
	}

	text := s.input.Value()
	history := s.conv.History()
	ticket, ok := s.conv.Begin(text)
	if !ok {
		return s, nil
	}

	s.input.Reset()
	s.input.Disabled = true
	s.scroll = 0

	slog.Debug("study question sent", "ticket", int(ticket), "chars", len(text), "history", len(history))
	return s, tea.Batch(s.ask(ticket, text, history), s.spinner.Tick)
}

func (s *StudyScreen) ask(ticket chat.Ticket, text string, history []chat.Turn) tea.Cmd {
	asker := s.asker
	return func() tea.Msg {
		return replyMsg{Ticket: ticket, Text: asker.Ask(context.Background(), text, history...)}
	}
}

func (s *StudyScreen) handleReply(msg replyMsg) (screen.Screen, tea.Cmd) {
	if !s.conv.Resolve(msg.Ticket, msg.Text) {
		slog.Warn("reply for unknown placeholder dropped", "ticket", int(msg.Ticket))
		return s, nil
	}
	s.scroll = 0
	if !s.conv.Pending() {
		s.input.Disabled = false
	}
	return s, nil
}
