package app

import (
	"fmt"
	"log/slog"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	dash "github.com/abhisek/ailearn/internal/dashboard"
	"github.com/abhisek/ailearn/internal/router"
	"github.com/abhisek/ailearn/internal/screen"
	"github.com/abhisek/ailearn/internal/screens/dashboard"
	"github.com/abhisek/ailearn/internal/screens/home"
	"github.com/abhisek/ailearn/internal/screens/study"
	"github.com/abhisek/ailearn/internal/ui/layout"
)

// Options carries the dependencies shared by the screens.
type Options struct {
	// History persists the quiz history. Required.
	History dash.HistoryStore

	// Asker sends study questions to the chat backend. Required.
	Asker study.Asker

	// ChatURL is shown on the landing page.
	ChatURL string

	// Version is shown in the header when set.
	Version string
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	opts   Options
	router *router.Router
	width  int
	height int
}

// newAppModel creates a new AppModel with the home screen.
func newAppModel(opts Options) AppModel {
	m := AppModel{opts: opts}
	m.router = router.New(m.newScreen(screen.PageHome))
	return m
}

func (m AppModel) newScreen(p screen.Page) screen.Screen {
	switch p {
	case screen.PageStudy:
		return study.New(m.opts.Asker)
	case screen.PageDashboard:
		return dashboard.New(m.opts.History)
	default:
		return home.New(m.opts.History, m.opts.ChatURL)
	}
}

func (m AppModel) Init() tea.Cmd {
	return m.router.Active().Init()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case screen.NavigateMsg:
		return m, m.navigate(msg.Page)

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.router.Depth() > 1 {
				return m, screen.Navigate(screen.PageHome)
			}
			return m, nil
		case "ctrl+s":
			return m, screen.Navigate(screen.PageStudy)
		case "ctrl+d":
			return m, screen.Navigate(screen.PageDashboard)
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

// navigate shows page p. Home rebuilds the root so its totals are fresh;
// the other pages sit one level above it and replace each other. Leaving
// a page drops its state, including any quiz in progress.
func (m *AppModel) navigate(p screen.Page) tea.Cmd {
	slog.Debug("navigate", "page", p.String())

	if p == screen.PageHome {
		m.router = router.New(m.newScreen(screen.PageHome))
		return m.router.Active().Init()
	}

	s := m.newScreen(p)
	if m.router.Depth() > 1 {
		return m.router.Update(router.ReplaceScreenMsg{Screen: s})
	}
	return m.router.Update(router.PushScreenMsg{Screen: s})
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true
	if content := m.render(); content != "" {
		v.SetContent(content)
	}
	return v
}

// render composes the full frame for the current terminal size.
func (m AppModel) render() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	status := ""
	if m.opts.Version != "" {
		status = m.opts.Version + "  "
	}
	header := layout.RenderHeader(title, status, m.width)

	var footerHints []layout.KeyHint
	if hp, ok := active.(screen.KeyHintProvider); ok {
		footerHints = hp.KeyHints()
	}
	if len(footerHints) == 0 {
		footerHints = []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}

	footer := layout.RenderFooter(footerHints, m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	return layout.RenderFrame(header, content, footer, m.width, m.height)
}

// Run starts the Bubble Tea program and blocks until it exits.
func Run(opts Options) error {
	if opts.History == nil || opts.Asker == nil {
		return fmt.Errorf("app: history store and chat client are required")
	}

	p := tea.NewProgram(newAppModel(opts))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run program: %w", err)
	}
	return nil
}
