package llm

import (
	"testing"

	"google.golang.org/genai"
)

func TestGeminiModelMapping(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"gemini-flash", "gemini-2.0-flash"},
		{"gemini-pro", "gemini-2.0-pro"},
		{"gemini-2.0-flash", "gemini-2.0-flash"}, // Pass-through
	}
	for _, tt := range tests {
		got := resolveModel(tt.input, geminiModels)
		if got != tt.expected {
			t.Errorf("resolveModel(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestBuildGeminiContents(t *testing.T) {
	contents := buildGeminiContents([]Message{
		{Role: RoleUser, Content: "what is a goroutine?"},
		{Role: RoleAssistant, Content: "a lightweight thread"},
		{Role: RoleUser, Content: "and a channel?"},
	})

	wantRoles := []string{"user", "model", "user"}
	if len(contents) != len(wantRoles) {
		t.Fatalf("expected %d contents, got %d", len(wantRoles), len(contents))
	}
	for i, role := range wantRoles {
		if string(contents[i].Role) != role {
			t.Errorf("content %d role = %q, want %q", i, contents[i].Role, role)
		}
		if len(contents[i].Parts) != 1 {
			t.Fatalf("content %d has %d parts", i, len(contents[i].Parts))
		}
	}
	if contents[2].Parts[0].Text != "and a channel?" {
		t.Errorf("last part = %q", contents[2].Parts[0].Text)
	}
}

func TestGeminiEmptyReason(t *testing.T) {
	tests := []struct {
		name   string
		result *genai.GenerateContentResponse
		want   string
	}{
		{
			name: "blocked prompt",
			result: &genai.GenerateContentResponse{
				PromptFeedback: &genai.GenerateContentResponsePromptFeedback{BlockReason: "SAFETY"},
			},
			want: "prompt blocked: SAFETY",
		},
		{
			name: "finish reason",
			result: &genai.GenerateContentResponse{
				Candidates: []*genai.Candidate{{FinishReason: "RECITATION"}},
			},
			want: "finish reason RECITATION",
		},
		{
			name:   "no candidates",
			result: &genai.GenerateContentResponse{},
			want:   "no candidates",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := geminiEmptyReason(tt.result); got != tt.want {
				t.Errorf("geminiEmptyReason() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestMapGeminiStopReason(t *testing.T) {
	truncated := &genai.GenerateContentResponse{Candidates: []*genai.Candidate{{FinishReason: "MAX_TOKENS"}}}
	if got := mapGeminiStopReason(truncated); got != StopMaxTokens {
		t.Errorf("MAX_TOKENS maps to %q, want %q", got, StopMaxTokens)
	}
	done := &genai.GenerateContentResponse{Candidates: []*genai.Candidate{{FinishReason: "STOP"}}}
	if got := mapGeminiStopReason(done); got != StopEnd {
		t.Errorf("STOP maps to %q, want %q", got, StopEnd)
	}
}
