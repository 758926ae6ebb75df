package llm

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/abhisek/ailearn/internal/store"
)

func openEventRepo(t *testing.T) store.EventRepo {
	t.Helper()
	s, err := store.Open(filepath.Join(t.TempDir(), "llm.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s.EventRepo()
}

func TestLoggingProvider_RecordsSuccess(t *testing.T) {
	repo := openEventRepo(t)
	mock := NewMockProvider(MockResponse{
		Text:  "Closures capture variables.",
		Usage: Usage{InputTokens: 12, OutputTokens: 4, TotalTokens: 16},
	})
	p := WithLogging(mock, "mock", repo)

	ctx := WithPurpose(context.Background(), PurposeChat)
	resp, err := p.Generate(ctx, Request{
		System:   "be brief",
		Messages: []Message{{Role: RoleUser, Content: "what is a closure?"}},
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if resp.Text() != "Closures capture variables." {
		t.Fatalf("text = %q", resp.Text())
	}

	events, err := repo.QueryLLMEvents(context.Background(), store.QueryOpts{})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("events = %d, want 1", len(events))
	}
	ev := events[0]
	if ev.Provider != "mock" || ev.Model != "mock" || ev.Purpose != PurposeChat {
		t.Errorf("unexpected event: %+v", ev)
	}
	if !ev.Success || ev.InputTokens != 12 || ev.OutputTokens != 4 {
		t.Errorf("unexpected usage: %+v", ev)
	}
	if ev.ResponseBody != "Closures capture variables." {
		t.Errorf("response body = %q", ev.ResponseBody)
	}
	want := "[system]\nbe brief\n\n[user]\nwhat is a closure?\n\n"
	if ev.RequestBody != want {
		t.Errorf("request body = %q, want %q", ev.RequestBody, want)
	}
}

func TestLoggingProvider_RecordsFailure(t *testing.T) {
	repo := openEventRepo(t)
	mock := NewMockProvider(MockResponse{Err: errors.New("upstream down")})
	p := WithLogging(mock, "mock", repo)

	if _, err := p.Generate(context.Background(), Request{}); err == nil {
		t.Fatal("expected error")
	}

	events, err := repo.QueryLLMEvents(context.Background(), store.QueryOpts{})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("events = %d, want 1", len(events))
	}
	if events[0].Success {
		t.Error("success = true, want false")
	}
	if events[0].ErrorMessage != "upstream down" {
		t.Errorf("error message = %q", events[0].ErrorMessage)
	}
	if events[0].Purpose != "unknown" {
		t.Errorf("purpose = %q, want unknown", events[0].Purpose)
	}
}

func TestNewProvider_Mock(t *testing.T) {
	repo := openEventRepo(t)
	cfg := DefaultConfig()
	cfg.Provider = "mock"

	p, err := NewProvider(context.Background(), cfg, repo)
	if err != nil {
		t.Fatalf("new provider: %v", err)
	}
	if p.ModelID() != "mock" {
		t.Fatalf("model = %q, want mock", p.ModelID())
	}
}

func TestNewProvider_MockAnswersOffline(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Provider = "mock"

	p, err := NewProvider(context.Background(), cfg, nil)
	if err != nil {
		t.Fatalf("new provider: %v", err)
	}
	resp, err := p.Generate(context.Background(), Request{
		Messages: []Message{{Role: RoleUser, Content: "what is a slice?"}},
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if resp.Text() != OfflineReply(Request{Messages: []Message{{Role: RoleUser, Content: "what is a slice?"}}}) {
		t.Fatalf("text = %q", resp.Text())
	}
}

func TestSerializeRequest_MultiTurn(t *testing.T) {
	got := serializeRequest(Request{Messages: []Message{
		{Role: RoleUser, Content: "q1"},
		{Role: RoleAssistant, Content: "a1"},
		{Role: RoleUser, Content: "q2"},
	}})
	want := "[user]\nq1\n\n[assistant]\na1\n\n[user]\nq2\n\n"
	if got != want {
		t.Fatalf("serializeRequest() = %q, want %q", got, want)
	}
}

func TestNewProvider_Unknown(t *testing.T) {
	_, err := NewProvider(context.Background(), Config{Provider: "nope"}, nil)
	if err == nil {
		t.Fatal("expected error for unknown provider")
	}
}

func TestRetryProvider_ZeroAttemptsStillCalls(t *testing.T) {
	mock := NewMockProvider(MockResponse{Text: "ok"})
	p := WithRetry(mock, RetryConfig{})

	resp, err := p.Generate(context.Background(), Request{})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if resp.Text() != "ok" || mock.CallCount() != 1 {
		t.Fatalf("text = %q, calls = %d", resp.Text(), mock.CallCount())
	}
}

func TestResponseText(t *testing.T) {
	var nilResp *Response
	if nilResp.Text() != "" {
		t.Fatal("nil response should have empty text")
	}
	r := &Response{Content: "  hi there \n"}
	if r.Text() != "hi there" {
		t.Fatalf("text = %q", r.Text())
	}
}
