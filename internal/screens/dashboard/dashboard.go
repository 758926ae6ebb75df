// Package dashboard implements the learning dashboard screen: summary
// statistics, quiz generation, quiz taking and the quiz history table.
package dashboard

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	tea "charm.land/bubbletea/v2"

	dash "github.com/abhisek/ailearn/internal/dashboard"
	"github.com/abhisek/ailearn/internal/quiz"
	"github.com/abhisek/ailearn/internal/screen"
	"github.com/abhisek/ailearn/internal/ui/components"
	"github.com/abhisek/ailearn/internal/ui/layout"
)

const subjectPlaceholder = "Enter subject (e.g., React, C++)"

// focus is the part of the screen receiving keys.
type focus int

const (
	focusSubject focus = iota
	focusGenerate
	focusQuiz
)

// DashboardScreen shows the learner's progress and runs quizzes.
type DashboardScreen struct {
	dash    *dash.Dashboard
	subject components.TextInput
	button  components.Button
	choice  components.MultiChoice
	focus   focus

	loaded bool
	errMsg string
	notice string
}

var _ screen.Screen = (*DashboardScreen)(nil)
var _ screen.KeyHintProvider = (*DashboardScreen)(nil)

// New creates a DashboardScreen over store.
func New(store dash.HistoryStore) *DashboardScreen {
	s := &DashboardScreen{
		dash:    dash.New(store),
		subject: components.NewTextInput(subjectPlaceholder, 100),
	}
	s.button = components.NewButton("Generate Quiz", false, func() tea.Cmd {
		return func() tea.Msg { return generateMsg{} }
	})
	return s
}

// Dashboard exposes the controller for tests.
func (s *DashboardScreen) Dashboard() *dash.Dashboard {
	return s.dash
}

func (s *DashboardScreen) Init() tea.Cmd {
	store := s.dash.Store()
	return tea.Batch(
		func() tea.Msg {
			records, err := store.Load(context.Background())
			return historyLoadedMsg{Records: records, Err: err}
		},
		s.subject.Init(),
	)
}

func (s *DashboardScreen) Title() string {
	return "Learning Dashboard"
}

func (s *DashboardScreen) KeyHints() []layout.KeyHint {
	switch s.focus {
	case focusQuiz:
		action := "Next"
		if s.dash.Session().IsLast() {
			action = "Submit"
		}
		return []layout.KeyHint{
			{Key: "1-4", Description: "Choose"},
			{Key: "↑↓ Space", Description: "Select"},
			{Key: "Enter", Description: action},
			{Key: "Tab", Description: "Subject"},
			{Key: "Esc", Description: "Back"},
		}
	default:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Generate"},
			{Key: "Tab", Description: "Switch"},
			{Key: "Ctrl+S", Description: "Study"},
			{Key: "Esc", Description: "Back"},
		}
	}
}

func (s *DashboardScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		s.dash.Apply(msg.Records, msg.Err)
		s.loaded = true
		if msg.Err != nil {
			slog.Error("load quiz history", "error", msg.Err)
			s.errMsg = "Quiz history could not be loaded: " + msg.Err.Error()
		}
		return s, nil

	case timerTickMsg:
		if s.dash.Session().Tick(msg.ID) {
			return s, tickCmd(msg.ID)
		}
		return s, nil

	case generateMsg:
		return s.generate()

	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	if s.focus == focusSubject {
		var cmd tea.Cmd
		s.subject, cmd = s.subject.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *DashboardScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "tab":
		return s, s.cycleFocus(1)
	case "shift+tab":
		return s, s.cycleFocus(-1)
	}

	switch s.focus {
	case focusSubject:
		if msg.String() == "enter" {
			return s.generate()
		}
		var cmd tea.Cmd
		s.subject, cmd = s.subject.Update(msg)
		return s, cmd

	case focusGenerate:
		var cmd tea.Cmd
		s.button, cmd = s.button.Update(msg)
		return s, cmd

	case focusQuiz:
		return s.handleQuizKey(msg)
	}
	return s, nil
}

// cycleFocus moves focus by step, skipping the quiz when none is active.
func (s *DashboardScreen) cycleFocus(step int) tea.Cmd {
	order := []focus{focusSubject, focusGenerate}
	if s.dash.Session().Active() {
		order = append(order, focusQuiz)
	}

	cur := 0
	for i, f := range order {
		if f == s.focus {
			cur = i
		}
	}
	next := order[(cur+step+len(order))%len(order)]
	return s.setFocus(next)
}

func (s *DashboardScreen) setFocus(f focus) tea.Cmd {
	s.focus = f
	s.button.Active = f == focusGenerate
	if f == focusSubject {
		return s.subject.Focus()
	}
	s.subject.Blur()
	return nil
}

// generate starts a quiz for the typed subject, replacing any quiz in
// progress. The subject is used exactly as typed. Nothing starts until the
// history has been read, so a result can always be appended to it.
func (s *DashboardScreen) generate() (screen.Screen, tea.Cmd) {
	if !s.loaded {
		slog.Debug("generate ignored while history loads")
		return s, nil
	}
	q := s.dash.Start(s.subject.Value())
	s.errMsg = ""
	s.notice = ""
	s.loadQuestion()
	s.setFocus(focusQuiz)

	id := s.dash.Session().ID()
	slog.Debug("quiz generated", "subject", q.Subject, "builtin", quiz.IsBuiltin(q.Subject), "session", id)
	return s, tickCmd(id)
}

// loadQuestion points the selector at the current question, restoring any
// earlier choice.
func (s *DashboardScreen) loadQuestion() {
	sess := s.dash.Session()
	q, ok := sess.Current()
	if !ok {
		s.choice = components.MultiChoice{}
		return
	}
	chosen, _ := sess.Selection(sess.Index())
	s.choice = components.NewMultiChoice(q.Prompt, q.Options, chosen)
}

func (s *DashboardScreen) handleQuizKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	sess := s.dash.Session()
	if !s.loaded || !sess.Active() {
		return s, s.setFocus(focusSubject)
	}

	if msg.String() == "enter" {
		if sess.IsLast() {
			return s.submit()
		}
		sess.Next()
		s.loadQuestion()
		return s, nil
	}

	var cmd tea.Cmd
	s.choice, cmd = s.choice.Update(msg)
	if opt, ok := s.choice.ChosenOption(); ok {
		if err := sess.Select(opt); err != nil {
			slog.Warn("select option", "option", opt, "error", err)
		}
	}
	return s, cmd
}

func (s *DashboardScreen) submit() (screen.Screen, tea.Cmd) {
	rec, err := s.dash.Submit(context.Background())
	switch {
	case errors.Is(err, dash.ErrHistoryUnavailable) && !s.dash.Loaded():
		s.errMsg = "Quiz history is still loading. Submit again in a moment."
		return s, nil
	case errors.Is(err, dash.ErrHistoryUnavailable):
		s.errMsg = "Quiz history could not be loaded, so this result cannot be saved."
		return s, nil
	case errors.Is(err, quiz.ErrNoActiveQuiz), errors.Is(err, quiz.ErrNotLastQuestion):
		s.errMsg = err.Error()
		return s, nil
	case err != nil:
		slog.Error("save quiz history", "error", err)
		s.errMsg = "Quiz finished but could not be saved: " + err.Error()
	default:
		s.errMsg = ""
	}

	slog.Info("quiz submitted", "subject", rec.Subject, "score", rec.Score, "duration", rec.Duration)
	s.notice = fmt.Sprintf("Quiz submitted: %s scored %d%% in %s", subjectLabel(rec.Subject), rec.Score, rec.Duration)
	s.choice = components.MultiChoice{}
	return s, s.setFocus(focusSubject)
}

// tickCmd schedules the next one-second timer tick for attempt id.
func tickCmd(id string) tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return timerTickMsg{ID: id, Time: t}
	})
}

func subjectLabel(subject string) string {
	if subject == "" {
		return "(no subject)"
	}
	return subject
}
