package progress

import "github.com/abhisek/secjobcoach/internal/content"

const (
	// WeakThreshold is the number of incorrect attempts that flags a question.
	WeakThreshold = 2

	// DefaultWeakLimit is how many weak topics the dashboard lists.
	DefaultWeakLimit = 5
)

// WeakTopic is a question the learner keeps getting wrong.
type WeakTopic struct {
	Question  content.Question
	Incorrect int
}

// WeakTopics returns questions with at least WeakThreshold incorrect
// attempts, in catalog order, truncated to limit.
func WeakTopics(state AppState, questions []content.Question, limit int) []WeakTopic {
	incorrect := make(map[string]int)
	for _, a := range state.Attempts {
		if a.Result == ResultIncorrect {
			incorrect[a.QuestionID]++
		}
	}

	var out []WeakTopic
	for _, q := range questions {
		if len(out) >= limit {
			break
		}
		if n := incorrect[q.QuestionID()]; n >= WeakThreshold {
			out = append(out, WeakTopic{Question: q, Incorrect: n})
		}
	}
	return out
}

// Summary counts attempts by result.
type Summary struct {
	Total     int `json:"total"`
	Correct   int `json:"correct"`
	Incorrect int `json:"incorrect"`
	Skipped   int `json:"skipped"`
}

// Accuracy returns the share of answered attempts that were correct, or 0
// when nothing was answered.
func (s Summary) Accuracy() float64 {
	answered := s.Correct + s.Incorrect
	if answered == 0 {
		return 0
	}
	return float64(s.Correct) / float64(answered)
}

// Summarize counts the attempts in state.
func Summarize(state AppState) Summary {
	var s Summary
	for _, a := range state.Attempts {
		s.Total++
		switch a.Result {
		case ResultCorrect:
			s.Correct++
		case ResultIncorrect:
			s.Incorrect++
		case ResultSkipped:
			s.Skipped++
		}
	}
	return s
}
