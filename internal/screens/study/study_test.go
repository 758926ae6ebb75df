package study

import (
	"context"
	"strings"
	"sync"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/ailearn/internal/chat"
	"github.com/abhisek/ailearn/internal/screen"
)

// fakeAsker records questions and answers with a fixed reply.
type fakeAsker struct {
	mu        sync.Mutex
	reply     string
	asked     []string
	histories [][]chat.Turn
}

func (f *fakeAsker) Ask(_ context.Context, text string, history ...chat.Turn) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.asked = append(f.asked, text)
	f.histories = append(f.histories, history)
	return f.reply
}

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func typeText(s *StudyScreen, text string) {
	var scr screen.Screen = s
	for _, r := range text {
		scr, _ = scr.Update(keyPress(r))
	}
}

// drain runs cmd and any batched commands, collecting their messages.
func drain(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, drain(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

func findReply(msgs []tea.Msg) (replyMsg, bool) {
	for _, m := range msgs {
		if r, ok := m.(replyMsg); ok {
			return r, true
		}
	}
	return replyMsg{}, false
}

func TestStudyScreen_Title(t *testing.T) {
	s := New(&fakeAsker{})
	if s.Title() != "AI Study Assistant" {
		t.Errorf("Title = %q", s.Title())
	}
}

func TestStudyScreen_StartsWithGreeting(t *testing.T) {
	s := New(&fakeAsker{})
	msgs := s.Conversation().Messages()
	if len(msgs) != 1 || msgs[0].Text != chat.Greeting || msgs[0].FromUser {
		t.Fatalf("expected only the greeting, got %+v", msgs)
	}
}

func TestStudyScreen_SendAppendsQuestionAndPlaceholder(t *testing.T) {
	asker := &fakeAsker{reply: "Photosynthesis converts light into chemical energy."}
	s := New(asker)

	typeText(s, "What is photosynthesis?")
	_, cmd := s.Update(specialKey(tea.KeyEnter))

	msgs := s.Conversation().Messages()
	if len(msgs) != 3 {
		t.Fatalf("messages = %d, want 3", len(msgs))
	}
	if !msgs[1].FromUser || msgs[1].Text != "What is photosynthesis?" {
		t.Errorf("user message = %+v", msgs[1])
	}
	if !msgs[2].Pending || msgs[2].Text != chat.Placeholder {
		t.Errorf("placeholder = %+v", msgs[2])
	}
	if s.input.Value() != "" {
		t.Errorf("input not cleared: %q", s.input.Value())
	}
	if !s.input.Disabled {
		t.Error("expected input disabled while waiting")
	}

	reply, ok := findReply(drain(cmd))
	if !ok {
		t.Fatal("expected a reply message from the send command")
	}
	if len(asker.asked) != 1 || asker.asked[0] != "What is photosynthesis?" {
		t.Errorf("asked = %v", asker.asked)
	}

	s.Update(reply)

	msgs = s.Conversation().Messages()
	if len(msgs) != 3 {
		t.Fatalf("messages after reply = %d, want 3", len(msgs))
	}
	if msgs[2].Pending || msgs[2].Text != asker.reply {
		t.Errorf("reply = %+v", msgs[2])
	}
	if s.input.Disabled {
		t.Error("expected input re-enabled after reply")
	}
}

func TestStudyScreen_SendsEarlierTurns(t *testing.T) {
	asker := &fakeAsker{reply: "A typed pipe between goroutines."}
	s := New(asker)

	ask := func(q string) {
		typeText(s, q)
		_, cmd := s.Update(specialKey(tea.KeyEnter))
		reply, ok := findReply(drain(cmd))
		if !ok {
			t.Fatalf("no reply for %q", q)
		}
		s.Update(reply)
	}

	ask("what is a channel?")
	asker.reply = chat.ErrorReply
	ask("and a select?")
	asker.reply = "It has a capacity."
	ask("what is a buffered channel?")

	if len(asker.histories) != 3 {
		t.Fatalf("asked %d times, want 3", len(asker.histories))
	}
	if len(asker.histories[0]) != 0 {
		t.Errorf("first question sent history %+v", asker.histories[0])
	}
	want := []chat.Turn{
		{Role: chat.RoleUser, Text: "what is a channel?"},
		{Role: chat.RoleAssistant, Text: "A typed pipe between goroutines."},
	}
	for i := 1; i < 3; i++ {
		got := asker.histories[i]
		if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
			t.Errorf("question %d history = %+v, want %+v", i+1, got, want)
		}
	}
}

func TestStudyScreen_BlankInputIgnored(t *testing.T) {
	s := New(&fakeAsker{})

	typeText(s, "   ")
	_, cmd := s.Update(specialKey(tea.KeyEnter))

	if cmd != nil {
		t.Error("expected no command for blank input")
	}
	if s.Conversation().Len() != 1 {
		t.Errorf("messages = %d, want 1", s.Conversation().Len())
	}
}

func TestStudyScreen_NoSecondSendWhileWaiting(t *testing.T) {
	s := New(&fakeAsker{reply: "ok"})

	typeText(s, "first")
	s.Update(specialKey(tea.KeyEnter))

	typeText(s, "second")
	_, cmd := s.Update(specialKey(tea.KeyEnter))

	if cmd != nil {
		t.Error("expected no command while a reply is pending")
	}
	if s.Conversation().Len() != 3 {
		t.Errorf("messages = %d, want 3", s.Conversation().Len())
	}
	if s.input.Value() != "" {
		t.Errorf("disabled input accepted keys: %q", s.input.Value())
	}
}

func TestStudyScreen_ErrorReplyShownInPlace(t *testing.T) {
	s := New(&fakeAsker{reply: chat.ErrorReply})

	typeText(s, "help")
	_, cmd := s.Update(specialKey(tea.KeyEnter))
	reply, _ := findReply(drain(cmd))
	s.Update(reply)

	last, ok := s.Conversation().LastAssistant()
	if !ok || last.Text != chat.ErrorReply {
		t.Errorf("last assistant = %+v, %v", last, ok)
	}
}

func TestStudyScreen_UnknownTicketDropped(t *testing.T) {
	s := New(&fakeAsker{})

	s.Update(replyMsg{Ticket: 42, Text: "stray"})

	if s.Conversation().Len() != 1 {
		t.Errorf("messages = %d, want 1", s.Conversation().Len())
	}
}

func TestStudyScreen_View(t *testing.T) {
	s := New(&fakeAsker{})
	typeText(s, "Explain recursion")
	s.Update(specialKey(tea.KeyEnter))

	view := s.View(100, 30)
	for _, want := range []string{"AI Study Assistant", "Ask any question about your studies", "Explain recursion", "How can I help you today?"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestStudyScreen_Scroll(t *testing.T) {
	s := New(&fakeAsker{})

	s.Update(specialKey(tea.KeyPgUp))
	if s.scroll != scrollStep {
		t.Errorf("scroll = %d, want %d", s.scroll, scrollStep)
	}
	s.Update(specialKey(tea.KeyPgDown))
	s.Update(specialKey(tea.KeyPgDown))
	if s.scroll != 0 {
		t.Errorf("scroll = %d, want 0", s.scroll)
	}
}

func TestStudyScreen_KeyHints(t *testing.T) {
	s := New(&fakeAsker{})
	if len(s.KeyHints()) == 0 {
		t.Error("expected key hints")
	}
}
