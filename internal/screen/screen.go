package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/ailearn/internal/ui/layout"
)

// Screen defines the interface for all application screens.
type Screen interface {
	// Init returns an initial command when the screen is first created.
	Init() tea.Cmd

	// Update handles messages and returns updated screen + command.
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the screen content (excluding header/footer).
	View(width, height int) string

	// Title returns the screen name for the header.
	Title() string
}

// KeyHintProvider is an optional interface that screens can implement
// to provide custom footer key hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// Page names a top-level destination.
type Page int

const (
	PageHome Page = iota
	PageStudy
	PageDashboard
)

func (p Page) String() string {
	switch p {
	case PageStudy:
		return "study"
	case PageDashboard:
		return "dashboard"
	default:
		return "home"
	}
}

// NavigateMsg asks the app to show a top-level page.
type NavigateMsg struct {
	Page Page
}

// Navigate returns a command emitting NavigateMsg for p.
func Navigate(p Page) tea.Cmd {
	return func() tea.Msg { return NavigateMsg{Page: p} }
}
