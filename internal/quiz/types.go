package quiz

// QuestionCount is the number of questions every generated quiz carries.
const QuestionCount = 10

// PointsPerQuestion is the score awarded for each correctly answered question.
const PointsPerQuestion = 10

// Question is a single multiple-choice question.
type Question struct {
	// Prompt is the question text shown to the learner.
	Prompt string

	// Options holds exactly 4 choices, one of which equals Answer.
	Options []string

	// Answer is the text of the correct option.
	Answer string
}

// HasOption reports whether option is one of the question's choices.
func (q Question) HasOption(option string) bool {
	for _, o := range q.Options {
		if o == option {
			return true
		}
	}
	return false
}

// Quiz is an ephemeral set of questions generated for one attempt.
// Only the Record derived from it is ever persisted.
type Quiz struct {
	Subject   string
	Questions []Question
}

// Record is the persisted, immutable summary of one completed quiz.
// The JSON shape is the on-disk history format.
type Record struct {
	Subject  string `json:"subject"`
	Score    int    `json:"score"`
	Date     string `json:"date"`
	Duration string `json:"duration"`
}
