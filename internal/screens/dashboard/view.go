package dashboard

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	dash "github.com/abhisek/ailearn/internal/dashboard"
	"github.com/abhisek/ailearn/internal/quiz"
	"github.com/abhisek/ailearn/internal/ui/components"
	"github.com/abhisek/ailearn/internal/ui/layout"
	"github.com/abhisek/ailearn/internal/ui/theme"
)

// Column widths of the history table.
const (
	colSubject  = 24
	colScore    = 8
	colDate     = 12
	colDuration = 16
)

func (s *DashboardScreen) View(width, height int) string {
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading your dashboard...")
	}

	var sections []string
	sections = append(sections, s.renderStats(width))
	if banner := s.renderBanner(width); banner != "" {
		sections = append(sections, banner)
	}

	// The quiz takes the space of the form and table while active.
	if s.dash.Session().Active() && s.focus == focusQuiz {
		sections = append(sections, s.renderQuiz(width))
	} else {
		sections = append(sections, s.renderGenerate(width))
		used := lipgloss.Height(strings.Join(sections, "\n"))
		sections = append(sections, s.renderHistory(width, height-used-1))
	}

	return strings.Join(sections, "\n")
}

// renderStats shows the three summary cards, or a single line when narrow.
func (s *DashboardScreen) renderStats(width int) string {
	sum := s.dash.Summary()
	values := []struct{ label, value string }{
		{"Average Score", dash.FormatAverage(sum.AverageScore) + "%"},
		{"Total Time", fmt.Sprintf("%d mins", sum.TotalTime)},
		{"Quizzes Completed", fmt.Sprintf("%d", sum.Completed)},
	}

	if layout.IsCompactWidth(width) || s.focus == focusQuiz {
		parts := make([]string, 0, len(values))
		for _, v := range values {
			parts = append(parts, theme.StatLabel.Render(v.label+": ")+theme.StatValue.Render(v.value))
		}
		return lipgloss.PlaceHorizontal(width, lipgloss.Center, strings.Join(parts, "   "))
	}

	cardWidth := (width - 8) / len(values)
	cards := make([]string, 0, len(values))
	for _, v := range values {
		body := theme.StatLabel.Render(v.label) + "\n" + theme.StatValue.Render(v.value)
		cards = append(cards, theme.Card.Width(cardWidth).Render(body))
	}
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, lipgloss.JoinHorizontal(lipgloss.Top, cards...))
}

func (s *DashboardScreen) renderBanner(width int) string {
	switch {
	case s.errMsg != "":
		return lipgloss.PlaceHorizontal(width, lipgloss.Center, theme.ErrorText.Render("⚠ "+s.errMsg))
	case s.notice != "":
		return lipgloss.PlaceHorizontal(width, lipgloss.Center, theme.ScoreBadge.Render("✓ "+s.notice))
	}
	return ""
}

func (s *DashboardScreen) renderGenerate(width int) string {
	s.subject.SetWidth(min(width-30, 50))

	inputStyle := theme.Card
	if s.focus == focusSubject {
		inputStyle = theme.FocusedCard
	}

	row := lipgloss.JoinHorizontal(lipgloss.Center,
		inputStyle.Render(s.subject.View()), "  ", s.button.View())

	hint := theme.Hint.Render("Built-in subjects: " + strings.Join(quiz.Subjects(), ", "))
	if s.dash.Session().Active() {
		hint = theme.Hint.Render(fmt.Sprintf("Quiz in progress: %s (Tab to resume)", subjectLabel(s.dash.Session().Quiz().Subject)))
	}

	block := theme.Heading.Render("Generate New Quiz") + "\n" + row + "\n" + hint
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, block)
}

func (s *DashboardScreen) renderQuiz(width int) string {
	sess := s.dash.Session()
	q := sess.Quiz()
	if q == nil {
		return ""
	}

	inner := min(width-8, 76)

	header := theme.Heading.Render("Quiz: "+q.Subject) +
		"    " + lipgloss.NewStyle().Foreground(theme.Accent).Render("Time: "+quiz.FormatDuration(sess.ElapsedSeconds()))

	progress := components.NewProgressBar("Question", sess.Index()+1, len(q.Questions), inner).View()

	action := "Next"
	if sess.IsLast() {
		action = "Submit"
	}
	footer := theme.ButtonActive.Render("Enter ▸ "+action) + "  " +
		theme.Hint.Render(fmt.Sprintf("%d of %d answered", sess.Answered(), len(q.Questions)))

	block := header + "\n\n" + progress + "\n\n" + s.choice.View() + "\n" + footer
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, theme.FocusedCard.Width(inner+4).Render(block))
}

// renderHistory renders the history table in insertion order. When it does
// not fit in height the oldest rows are elided.
func (s *DashboardScreen) renderHistory(width, height int) string {
	var b strings.Builder
	b.WriteString(theme.Heading.Render("Quiz History"))
	b.WriteString("\n")

	records := s.dash.History()
	if len(records) == 0 {
		b.WriteString(theme.Hint.Render("No quizzes yet. Generate one above to get started!"))
		return lipgloss.PlaceHorizontal(width, lipgloss.Center, b.String())
	}

	b.WriteString(theme.TableHeader.Render(row("Subject", "Score", "Date", "Duration")))
	b.WriteString("\n")

	// heading + header row
	room := max(height-2, 1)
	start := 0
	if len(records) > room {
		start = len(records) - room + 1
		b.WriteString(theme.Hint.Render(fmt.Sprintf("… %d earlier", start)))
		b.WriteString("\n")
	}

	for _, r := range records[start:] {
		b.WriteString(theme.Body.Render(row(
			subjectLabel(r.Subject),
			fmt.Sprintf("%d%%", r.Score),
			r.Date,
			r.Duration,
		)))
		b.WriteString("\n")
	}

	return lipgloss.PlaceHorizontal(width, lipgloss.Center, strings.TrimRight(b.String(), "\n"))
}

func row(subject, score, date, duration string) string {
	return pad(subject, colSubject) + pad(score, colScore) + pad(date, colDate) + pad(duration, colDuration)
}

// pad truncates or right-pads s to exactly w cells.
func pad(s string, w int) string {
	if lipgloss.Width(s) > w-1 {
		r := []rune(s)
		for len(r) > 0 && lipgloss.Width(string(r)) > w-2 {
			r = r[:len(r)-1]
		}
		s = string(r) + "…"
	}
	return s + strings.Repeat(" ", max(w-lipgloss.Width(s), 0))
}
