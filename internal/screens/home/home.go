package home

import (
	"context"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/ailearn/internal/dashboard"
	"github.com/abhisek/ailearn/internal/quiz"
	"github.com/abhisek/ailearn/internal/screen"
	"github.com/abhisek/ailearn/internal/ui/components"
	"github.com/abhisek/ailearn/internal/ui/layout"
)

// HistoryLoader reads the stored quiz history.
type HistoryLoader interface {
	Load(ctx context.Context) ([]quiz.Record, error)
}

// HomeScreen is the landing page of the application.
type HomeScreen struct {
	menu    components.Menu
	summary dashboard.Summary
	loadErr error
	chatURL string
}

var _ screen.Screen = (*HomeScreen)(nil)

// New creates a HomeScreen. history may be nil, in which case no totals
// are shown.
func New(history HistoryLoader, chatURL string) *HomeScreen {
	var sum dashboard.Summary
	var loadErr error
	if history != nil {
		records, err := history.Load(context.Background())
		if err != nil {
			loadErr = err
		} else {
			sum = dashboard.Summarize(records)
		}
	}

	items := []components.MenuItem{
		{
			Label: "STUDY ASSISTANT",
			Hint:  "Ask questions and get instant answers",
			Action: func() tea.Cmd {
				return screen.Navigate(screen.PageStudy)
			},
		},
		{
			Label: "LEARNING DASHBOARD",
			Hint:  "Take quizzes and review your scores",
			Action: func() tea.Cmd {
				return screen.Navigate(screen.PageDashboard)
			},
		},
		{
			Label:  "EXIT",
			Hint:   "Close AI Learn",
			Action: func() tea.Cmd { return tea.Quit },
		},
	}

	return &HomeScreen{
		menu:    components.NewMenu(items),
		summary: sum,
		loadErr: loadErr,
		chatURL: chatURL,
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	compact := layout.IsCompactWidth(width)
	content := h.render(width, compact)
	// Fall back to the compact layout when the full one does not fit.
	if !compact && lipgloss.Height(content) > height-2 {
		content = h.render(width, true)
	}
	return renderFrame(content, width, height)
}

func (h *HomeScreen) render(width int, compact bool) string {
	cw := contentWidth(width)

	var sections []string
	sections = append(sections, renderTitle(cw, compact))
	if !compact {
		sections = append(sections, renderIntro(cw))
	}
	sections = append(sections, renderFeatures(cw, compact))
	sections = append(sections, renderStatsBar(h.summary, h.loadErr, cw))
	sections = append(sections, h.menu.View(cw, compact))
	if h.chatURL != "" {
		sections = append(sections, renderAssistantNote(h.chatURL, cw))
	}

	sep := "\n\n"
	if compact {
		sep = "\n"
	}
	return strings.Join(sections, sep)
}

func (h *HomeScreen) Title() string {
	return "Home"
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "1-3", Description: "Jump"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}
