// Package dashboard holds the learning dashboard logic: summary statistics
// over quiz history and the controller that ties a quiz session to
// persisted history.
package dashboard

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/abhisek/ailearn/internal/quiz"
)

// Summary is the aggregate view of the quiz history.
type Summary struct {
	AverageScore float64
	TotalTime    int
	Completed    int
}

// Summarize computes the summary for records. An empty history yields
// zeroes.
func Summarize(records []quiz.Record) Summary {
	s := Summary{Completed: len(records)}
	if len(records) == 0 {
		return s
	}

	total := 0
	for _, r := range records {
		total += r.Score
		s.TotalTime += LeadingInt(r.Duration)
	}
	s.AverageScore = float64(total) / float64(len(records))
	return s
}

// LeadingInt returns the integer written at the start of s, after optional
// whitespace and sign, stopping at the first non-digit. "2 mins 5 secs"
// yields 2. A string with no leading numeral yields 0.
func LeadingInt(s string) int {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)

	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digitsStart := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digitsStart {
		return 0
	}

	n, err := strconv.Atoi(s[:end])
	if err != nil {
		// Out of range.
		return 0
	}
	return n
}

// FormatAverage renders an average score with two decimals.
func FormatAverage(avg float64) string {
	return fmt.Sprintf("%.2f", avg)
}
