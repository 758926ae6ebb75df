package components

import (
	"strconv"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/ailearn/internal/ui/theme"
)

// menuButtonWidth is the fixed width of a landing menu button.
const menuButtonWidth = 26

// MenuItem is one landing menu entry. Hint is shown under the menu while
// the item is selected.
type MenuItem struct {
	Label  string
	Hint   string
	Action func() tea.Cmd
}

// Menu is the vertical button list on the landing page. Items are picked
// with the arrows or by their number, starting at 1.
type Menu struct {
	Items    []MenuItem
	Selected int
}

// NewMenu creates a menu with the first item selected.
func NewMenu(items []MenuItem) Menu {
	return Menu{Items: items}
}

// Update moves the selection and runs the chosen item's action. Movement
// wraps around.
func (m Menu) Update(msg tea.Msg) (Menu, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok || len(m.Items) == 0 {
		return m, nil
	}

	switch key := kmsg.String(); key {
	case "up", "k", "shift+tab":
		m.Selected = (m.Selected - 1 + len(m.Items)) % len(m.Items)
	case "down", "j", "tab":
		m.Selected = (m.Selected + 1) % len(m.Items)
	case "enter":
		return m, m.run()
	default:
		// Number keys select and run in one press.
		if n, err := strconv.Atoi(key); err == nil && n >= 1 && n <= len(m.Items) {
			m.Selected = n - 1
			return m, m.run()
		}
	}

	return m, nil
}

func (m Menu) run() tea.Cmd {
	if m.Selected < 0 || m.Selected >= len(m.Items) {
		return nil
	}
	if action := m.Items[m.Selected].Action; action != nil {
		return action()
	}
	return nil
}

// View renders the buttons centered in width, followed by the selected
// item's hint. Compact drops the button borders.
func (m Menu) View(width int, compact bool) string {
	selectedBtn := lipgloss.NewStyle().
		Width(menuButtonWidth).
		Align(lipgloss.Center).
		Bold(true).
		Foreground(theme.Text).
		Background(theme.Primary).
		Padding(0, 1)

	normalBtn := lipgloss.NewStyle().
		Width(menuButtonWidth).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Padding(0, 1)

	if !compact {
		selectedBtn = selectedBtn.Border(lipgloss.RoundedBorder()).BorderForeground(theme.Primary)
		normalBtn = normalBtn.Border(lipgloss.RoundedBorder()).BorderForeground(theme.Border)
	}

	var lines []string
	for i, item := range m.Items {
		label := strconv.Itoa(i+1) + "  " + item.Label
		if i == m.Selected {
			lines = append(lines, selectedBtn.Render("▸ "+label))
		} else {
			lines = append(lines, normalBtn.Render(label))
		}
	}
	if m.Selected >= 0 && m.Selected < len(m.Items) && m.Items[m.Selected].Hint != "" {
		lines = append(lines, theme.Hint.Render(m.Items[m.Selected].Hint))
	}

	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Render(strings.Join(lines, "\n"))
}
