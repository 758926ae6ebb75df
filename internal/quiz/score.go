package quiz

import (
	"fmt"
	"time"
)

// DateLayout is the calendar date format stored in records.
const DateLayout = "2006-01-02"

// Score returns PointsPerQuestion for every position whose selection exactly
// matches the question's answer. Empty selections never match.
func Score(questions []Question, selections []string) int {
	score := 0
	for i, q := range questions {
		if i >= len(selections) {
			break
		}
		if selections[i] != "" && selections[i] == q.Answer {
			score += PointsPerQuestion
		}
	}
	return score
}

// FormatDuration renders elapsed seconds as whole minutes and remainder
// seconds, e.g. 125 -> "2 mins 5 secs".
func FormatDuration(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%d mins %d secs", seconds/60, seconds%60)
}

// FormatDate renders t as a UTC calendar date.
func FormatDate(t time.Time) string {
	return t.UTC().Format(DateLayout)
}
