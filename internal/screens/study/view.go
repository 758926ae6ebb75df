package study

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/ailearn/internal/chat"
	"github.com/abhisek/ailearn/internal/ui/theme"
)

// scrollStep is how many lines PgUp/PgDn move the transcript.
const scrollStep = 5

func (s *StudyScreen) View(width, height int) string {
	head := lipgloss.NewStyle().Width(width).Align(lipgloss.Center).Render(
		theme.Title.Render(title) + "\n" + theme.Subtitle.Render(subtitle))

	inputBox := s.renderInput(width)

	transcriptHeight := height - lipgloss.Height(head) - lipgloss.Height(inputBox) - 2
	if transcriptHeight < 1 {
		transcriptHeight = 1
	}

	return head + "\n\n" + s.renderTranscript(width, transcriptHeight) + "\n" + inputBox
}

// renderTranscript renders the bubbles bottom-anchored in height lines,
// offset by the scroll position.
func (s *StudyScreen) renderTranscript(width, height int) string {
	bubbleWidth := width * 2 / 3
	if bubbleWidth < 20 {
		bubbleWidth = 20
	}

	var lines []string
	for _, m := range s.conv.Messages() {
		lines = append(lines, strings.Split(s.renderBubble(m, width, bubbleWidth), "\n")...)
		lines = append(lines, "")
	}

	maxScroll := max(len(lines)-height, 0)
	if s.scroll > maxScroll {
		s.scroll = maxScroll
	}

	end := len(lines) - s.scroll
	start := max(end-height, 0)
	visible := lines[start:end]

	// Pad above so the latest message sits on the input.
	for len(visible) < height {
		visible = append([]string{""}, visible...)
	}
	return strings.Join(visible, "\n")
}

func (s *StudyScreen) renderBubble(m chat.Message, width, bubbleWidth int) string {
	switch {
	case m.FromUser:
		text := wrap(m.Text, bubbleWidth-2)
		bubble := theme.UserBubble.Render(text)
		return lipgloss.NewStyle().Width(width - 2).Align(lipgloss.Right).Render(bubble)
	case m.Pending:
		return "  " + theme.PendingBubble.Render(s.spinner.View()+" "+m.Text)
	default:
		return "  " + theme.AssistantBubble.Render(wrap(m.Text, bubbleWidth-2))
	}
}

func (s *StudyScreen) renderInput(width int) string {
	s.input.SetWidth(width - 8)
	style := theme.FocusedCard
	if s.input.Disabled {
		style = theme.Card
	}
	return style.Width(width - 2).Render(s.input.View())
}

// wrap word-wraps text to width columns, keeping existing line breaks.
func wrap(text string, width int) string {
	if lipgloss.Width(text) <= width {
		return text
	}
	return lipgloss.NewStyle().Width(width).Render(text)
}
