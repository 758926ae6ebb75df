package quiz

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrNoActiveQuiz is returned when an operation needs a quiz in progress.
	ErrNoActiveQuiz = errors.New("no quiz in progress")

	// ErrNotLastQuestion is returned when submitting before the last question.
	ErrNotLastQuestion = errors.New("quiz can only be submitted from the last question")

	// ErrUnknownOption is returned when selecting a choice the question does not offer.
	ErrUnknownOption = errors.New("option is not offered by the current question")
)

// State is the lifecycle state of a Session.
type State int

const (
	StateIdle       State = iota // No active quiz
	StateInProgress              // Quiz generated, timer running
)

func (s State) String() string {
	switch s {
	case StateInProgress:
		return "in_progress"
	default:
		return "idle"
	}
}

// Session drives one quiz attempt at a time: Idle -> InProgress -> Idle.
// It is not safe for concurrent use; the owning screen serializes access.
type Session struct {
	quiz       *Quiz
	id         string
	index      int
	selections []string
	elapsed    int // seconds
}

// NewSession returns an idle session.
func NewSession() *Session {
	return &Session{}
}

// Start generates a quiz for subject and makes it the active attempt.
// Any quiz already in progress is discarded without a record.
func (s *Session) Start(subject string) Quiz {
	q := Generate(subject)
	s.quiz = &q
	s.id = uuid.New().String()
	s.index = 0
	s.selections = make([]string, len(q.Questions))
	s.elapsed = 0
	return q
}

// State returns the current lifecycle state.
func (s *Session) State() State {
	if s.quiz == nil {
		return StateIdle
	}
	return StateInProgress
}

// Active reports whether a quiz is in progress.
func (s *Session) Active() bool {
	return s.quiz != nil
}

// ID identifies the active attempt. Empty when idle.
func (s *Session) ID() string {
	return s.id
}

// Quiz returns the active quiz, or nil when idle.
func (s *Session) Quiz() *Quiz {
	return s.quiz
}

// Index returns the 0-based position of the current question.
func (s *Session) Index() int {
	return s.index
}

// Current returns the question at the current index.
func (s *Session) Current() (Question, bool) {
	if s.quiz == nil || s.index >= len(s.quiz.Questions) {
		return Question{}, false
	}
	return s.quiz.Questions[s.index], true
}

// IsLast reports whether the current question is the final one.
func (s *Session) IsLast() bool {
	return s.quiz != nil && s.index == len(s.quiz.Questions)-1
}

// Select records option as the answer for the current question,
// overwriting any earlier choice. It does not advance.
func (s *Session) Select(option string) error {
	q, ok := s.Current()
	if !ok {
		return ErrNoActiveQuiz
	}
	if !q.HasOption(option) {
		return ErrUnknownOption
	}
	s.selections[s.index] = option
	return nil
}

// Selection returns the recorded choice at position i, if any.
func (s *Session) Selection(i int) (string, bool) {
	if i < 0 || i >= len(s.selections) || s.selections[i] == "" {
		return "", false
	}
	return s.selections[i], true
}

// Answered returns how many questions have a recorded choice.
func (s *Session) Answered() int {
	n := 0
	for _, sel := range s.selections {
		if sel != "" {
			n++
		}
	}
	return n
}

// Next moves to the following question. It returns false, without
// moving, when idle or already on the last question.
func (s *Session) Next() bool {
	if s.quiz == nil || s.index >= len(s.quiz.Questions)-1 {
		return false
	}
	s.index++
	return true
}

// Tick advances the elapsed counter by one second if id names the active
// attempt. Ticks scheduled for a replaced or submitted quiz are dropped.
func (s *Session) Tick(id string) bool {
	if s.quiz == nil || id != s.id {
		return false
	}
	s.elapsed++
	return true
}

// ElapsedSeconds returns the whole seconds counted for the active attempt.
func (s *Session) ElapsedSeconds() int {
	return s.elapsed
}

// Elapsed returns the counted time as a Duration.
func (s *Session) Elapsed() time.Duration {
	return time.Duration(s.elapsed) * time.Second
}

// Submit finishes the attempt from the last question, returning its record
// dated at now. The session returns to idle.
func (s *Session) Submit(now time.Time) (Record, error) {
	if s.quiz == nil {
		return Record{}, ErrNoActiveQuiz
	}
	if !s.IsLast() {
		return Record{}, ErrNotLastQuestion
	}

	rec := Record{
		Subject:  s.quiz.Subject,
		Score:    Score(s.quiz.Questions, s.selections),
		Date:     FormatDate(now),
		Duration: FormatDuration(s.elapsed),
	}

	s.reset()
	return rec, nil
}

func (s *Session) reset() {
	s.quiz = nil
	s.id = ""
	s.index = 0
	s.selections = nil
	s.elapsed = 0
}
