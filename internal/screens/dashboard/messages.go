package dashboard

import (
	"time"

	"github.com/abhisek/ailearn/internal/quiz"
)

// historyLoadedMsg is sent when the stored history has been read.
type historyLoadedMsg struct {
	Records []quiz.Record
	Err     error
}

// timerTickMsg is sent every second while a quiz is active. ID names the
// attempt that scheduled it.
type timerTickMsg struct {
	ID   string
	Time time.Time
}

// generateMsg is sent when the Generate Quiz button is pressed.
type generateMsg struct{}
