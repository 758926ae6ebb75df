package llm

import (
	"math"
	"testing"
)

func TestLookupCost(t *testing.T) {
	tests := []struct {
		model     string
		wantNil   bool
		wantInput float64
	}{
		{"gpt-4o-mini", false, 0.15},
		{"claude-haiku-4-5", false, 1},
		{"openai/gpt-4o-mini", false, 0.15},
		{"google/gemini-2.0-flash", false, 0.1},
		{"GPT-4O-MINI", false, 0.15},
		{"google/gemini-2.0-flash-exp:free", false, 0},
		{"mock", true, 0},
		{"acme/unknown-model", true, 0},
		{":free", true, 0},
	}

	for _, tt := range tests {
		t.Run(tt.model, func(t *testing.T) {
			c := LookupCost(tt.model)
			if tt.wantNil {
				if c != nil {
					t.Fatalf("LookupCost(%q) = %+v, want nil", tt.model, *c)
				}
				return
			}
			if c == nil {
				t.Fatalf("LookupCost(%q) = nil", tt.model)
			}
			if c.InputPerMTok != tt.wantInput {
				t.Errorf("InputPerMTok = %v, want %v", c.InputPerMTok, tt.wantInput)
			}
		})
	}
}

func TestModelCost_Cost(t *testing.T) {
	c := ModelCost{InputPerMTok: 3, OutputPerMTok: 15}
	got := c.Cost(1_000_000, 200_000)
	if math.Abs(got-6) > 1e-9 {
		t.Errorf("Cost = %v, want 6", got)
	}
}
