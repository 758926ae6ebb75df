package home

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/ailearn/internal/dashboard"
	"github.com/abhisek/ailearn/internal/ui/theme"
)

const titleFull = ` █████╗ ██╗  ██╗     ███████╗ █████╗ ██████╗ ███╗   ██╗
██╔══██╗██║  ██║     ██╔════╝██╔══██╗██╔══██╗████╗  ██║
███████║██║  ██║     █████╗  ███████║██████╔╝██╔██╗ ██║
██╔══██║██║  ██║     ██╔══╝  ██╔══██║██╔══██╗██║╚██╗██║
██║  ██║██║  ███████╗███████╗██║  ██║██║  ██║██║ ╚████║
╚═╝  ╚═╝╚═╝  ╚══════╝╚══════╝╚═╝  ╚═╝╚═╝  ╚═╝╚═╝  ╚═══╝`

const titleCompact = "A · I   L · E · A · R · N"

const tagline = "Welcome to AI Learn"

const intro = "Revolutionize your learning experience with our AI-powered platform. " +
	"Get personalized assistance, track your progress, and master new skills efficiently."

// feature describes one of the landing cards.
type feature struct {
	title string
	body  string
}

var features = []feature{
	{
		title: "AI Study Assistant",
		body:  "Get instant help with your studies using our advanced AI assistant. Ask questions, get explanations, and deepen your understanding.",
	},
	{
		title: "Learning Dashboard",
		body:  "Track your progress, review past quizzes, and analyze your learning journey with detailed insights and statistics.",
	},
}

// contentWidth returns the uniform inner width used for all sections.
func contentWidth(frameWidth int) int {
	// Leave room for the frame border (2) + inner padding (4)
	w := frameWidth - 6
	if w > 72 {
		w = 72
	}
	if w < 20 {
		w = 20
	}
	return w
}

func renderTitle(cw int, compact bool) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	art := titleFull
	if compact {
		art = titleCompact
	}

	block := style.Render(art) + "\n\n" +
		lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(tagline)

	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(block)
}

func renderIntro(cw int) string {
	return lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Width(cw).
		Align(lipgloss.Center).
		Render(intro)
}

// renderFeatures lays the cards side by side, or stacked when compact.
func renderFeatures(cw int, compact bool) string {
	if compact {
		var lines []string
		for _, f := range features {
			lines = append(lines, lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).Render("• "+f.title))
		}
		return lipgloss.NewStyle().Width(cw).Align(lipgloss.Center).Render(strings.Join(lines, "\n"))
	}

	cardWidth := (cw - 2) / len(features)
	cards := make([]string, 0, len(features))
	for _, f := range features {
		body := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).Render(f.title) +
			"\n" + lipgloss.NewStyle().Foreground(theme.TextDim).Render(f.body)
		cards = append(cards, theme.Card.Width(cardWidth).Render(body))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cards...)
}

// renderStatsBar shows the learner's totals from the quiz history.
func renderStatsBar(sum dashboard.Summary, loadErr error, cw int) string {
	var stats string
	if loadErr != nil {
		stats = theme.ErrorText.Render("⚠ Quiz history could not be loaded")
	} else {
		stats = fmt.Sprintf("%s  %s  %s",
			theme.StatValue.Render(fmt.Sprintf("%d QUIZZES", sum.Completed)),
			lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).Render(
				"AVG "+dashboard.FormatAverage(sum.AverageScore)+"%"),
			theme.StatLabel.Render(fmt.Sprintf("%d MINS STUDIED", sum.TotalTime)),
		)
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Width(cw - 2).
		Align(lipgloss.Center).
		Padding(0, 1).
		Render(stats)
}

// renderAssistantNote tells the user where study questions are sent.
func renderAssistantNote(chatURL string, cw int) string {
	return lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Width(cw).
		Align(lipgloss.Center).
		Render("Study assistant backend: " + chatURL)
}

// renderFrame wraps content in a border, centered within the given dimensions.
func renderFrame(content string, width, height int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Primary).
		Width(width - 2).
		Height(height - 2).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}
