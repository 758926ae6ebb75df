package app

import (
	"context"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/ailearn/internal/chat"
	"github.com/abhisek/ailearn/internal/quiz"
	"github.com/abhisek/ailearn/internal/screen"
)

type memStore struct {
	records []quiz.Record
}

func (s *memStore) Load(context.Context) ([]quiz.Record, error) {
	return append([]quiz.Record(nil), s.records...), nil
}

func (s *memStore) Append(_ context.Context, records []quiz.Record, rec quiz.Record) ([]quiz.Record, error) {
	s.records = append(append([]quiz.Record{}, records...), rec)
	return s.records, nil
}

type echoAsker struct{}

func (echoAsker) Ask(_ context.Context, text string, _ ...chat.Turn) string { return "echo: " + text }

func testModel() AppModel {
	return newAppModel(Options{History: &memStore{}, Asker: echoAsker{}, ChatURL: "http://localhost:5000/api/chat"})
}

func update(t *testing.T, m AppModel, msg tea.Msg) (AppModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	am, ok := next.(AppModel)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return am, cmd
}

func TestApp_StartsAtHome(t *testing.T) {
	m := testModel()
	if m.router.Active().Title() != "Home" {
		t.Errorf("active = %q, want Home", m.router.Active().Title())
	}
}

func TestApp_NavigatePushesThenReplaces(t *testing.T) {
	m := testModel()

	m, _ = update(t, m, screen.NavigateMsg{Page: screen.PageStudy})
	if m.router.Depth() != 2 || m.router.Active().Title() != "AI Study Assistant" {
		t.Fatalf("depth=%d active=%q", m.router.Depth(), m.router.Active().Title())
	}

	m, _ = update(t, m, screen.NavigateMsg{Page: screen.PageDashboard})
	if m.router.Depth() != 2 || m.router.Active().Title() != "Learning Dashboard" {
		t.Fatalf("depth=%d active=%q", m.router.Depth(), m.router.Active().Title())
	}

	m, _ = update(t, m, screen.NavigateMsg{Page: screen.PageHome})
	if m.router.Depth() != 1 || m.router.Active().Title() != "Home" {
		t.Fatalf("depth=%d active=%q", m.router.Depth(), m.router.Active().Title())
	}
}

func TestApp_EscReturnsHome(t *testing.T) {
	m := testModel()
	m, _ = update(t, m, screen.NavigateMsg{Page: screen.PageDashboard})

	_, cmd := update(t, m, tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd == nil {
		t.Fatal("expected a navigation command")
	}
	nav, ok := cmd().(screen.NavigateMsg)
	if !ok || nav.Page != screen.PageHome {
		t.Errorf("got %#v, want NavigateMsg home", nav)
	}
}

func TestApp_EscAtHomeIsNoop(t *testing.T) {
	m := testModel()
	_, cmd := update(t, m, tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd != nil {
		t.Error("expected no command at the root")
	}
}

func TestApp_GlobalShortcuts(t *testing.T) {
	m := testModel()
	tests := []struct {
		key  rune
		want screen.Page
	}{
		{'s', screen.PageStudy},
		{'d', screen.PageDashboard},
	}
	for _, tt := range tests {
		_, cmd := update(t, m, tea.KeyPressMsg{Code: tt.key, Mod: tea.ModCtrl})
		if cmd == nil {
			t.Fatalf("ctrl+%c: expected command", tt.key)
		}
		nav, ok := cmd().(screen.NavigateMsg)
		if !ok || nav.Page != tt.want {
			t.Errorf("ctrl+%c: got %#v, want %v", tt.key, nav, tt.want)
		}
	}
}

func TestApp_CtrlCQuits(t *testing.T) {
	m := testModel()
	_, cmd := update(t, m, tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected QuitMsg")
	}
}

func TestApp_ViewTooSmall(t *testing.T) {
	m := testModel()
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 40, Height: 10})
	if !strings.Contains(m.render(), "Terminal too small") {
		t.Error("expected too-small message")
	}
}

func TestApp_ViewFrame(t *testing.T) {
	m := testModel()
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	content := m.render()
	for _, want := range []string{"AI Learn", "Home", "Enter"} {
		if !strings.Contains(content, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestRun_RequiresDependencies(t *testing.T) {
	if err := Run(Options{}); err == nil {
		t.Error("expected error without dependencies")
	}
}
