package quiz

import (
	"fmt"
	"strings"
)

// PlaceholderAnswer is the correct answer of every synthesized question.
const PlaceholderAnswer = "Option 1"

// Generate builds a quiz for subject. Subjects matching a built-in bank
// (case-insensitively) get that bank; anything else, including an empty
// subject, gets placeholder questions. Generate never fails.
func Generate(subject string) Quiz {
	return Quiz{
		Subject:   subject,
		Questions: questionsFor(subject),
	}
}

// Subjects returns the names of the built-in subject banks.
func Subjects() []string {
	out := make([]string, len(bankOrder))
	copy(out, bankOrder)
	return out
}

// IsBuiltin reports whether subject resolves to a built-in bank.
func IsBuiltin(subject string) bool {
	_, ok := banks[strings.ToLower(subject)]
	return ok
}

func questionsFor(subject string) []Question {
	if bank, ok := banks[strings.ToLower(subject)]; ok {
		out := make([]Question, len(bank))
		for i, q := range bank {
			out[i] = Question{
				Prompt:  q.Prompt,
				Options: append([]string(nil), q.Options...),
				Answer:  q.Answer,
			}
		}
		return out
	}

	out := make([]Question, QuestionCount)
	for i := range out {
		out[i] = Question{
			Prompt:  fmt.Sprintf("Question %d for %s", i+1, subject),
			Options: []string{"Option 1", "Option 2", "Option 3", "Option 4"},
			Answer:  PlaceholderAnswer,
		}
	}
	return out
}
