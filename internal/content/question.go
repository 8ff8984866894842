package content

// Kind is the kind of a question bank entry.
type Kind string

const (
	KindQuiz      Kind = "quiz"
	KindShort     Kind = "short"
	KindScenario  Kind = "scenario"
	KindInterview Kind = "interview"
)

// Question is a catalog entry. The concrete type is one of *Quiz, *Short,
// *ScenarioPrompt or *Interview; each carries only the fields its kind uses.
type Question interface {
	QuestionID() string
	QuestionTrack() Track
	QuestionKind() Kind
	QuestionPrompt() string
}

// Base holds the fields shared by every question kind.
type Base struct {
	ID     string
	Track  Track
	Prompt string
}

func (b Base) QuestionID() string     { return b.ID }
func (b Base) QuestionTrack() Track   { return b.Track }
func (b Base) QuestionPrompt() string { return b.Prompt }

// Quiz is a multiple-choice question.
type Quiz struct {
	Base
	Choices []string
	Answer  string
}

func (*Quiz) QuestionKind() Kind { return KindQuiz }

// AnswerIndex returns the index of the correct choice, or -1.
func (q *Quiz) AnswerIndex() int {
	for i, c := range q.Choices {
		if c == q.Answer {
			return i
		}
	}
	return -1
}

// Short is a free-text question with an optional answer key.
type Short struct {
	Base
	Answer string
}

func (*Short) QuestionKind() Kind { return KindShort }

// ScenarioPrompt is an open-ended incident prompt evaluated against a rubric.
type ScenarioPrompt struct {
	Base
	Rubric []string
}

func (*ScenarioPrompt) QuestionKind() Kind { return KindScenario }

// Interview is an interview drill evaluated against a rubric.
type Interview struct {
	Base
	Rubric []string
}

func (*Interview) QuestionKind() Kind { return KindInterview }

// Rubric returns the evaluation bullets of q, if its kind has any.
func Rubric(q Question) []string {
	switch v := q.(type) {
	case *ScenarioPrompt:
		return v.Rubric
	case *Interview:
		return v.Rubric
	}
	return nil
}

// AnswerKey returns the answer text of q, if its kind has one.
func AnswerKey(q Question) string {
	switch v := q.(type) {
	case *Quiz:
		return v.Answer
	case *Short:
		return v.Answer
	}
	return ""
}

// Filter returns the questions matching track whose kind is one of kinds,
// preserving catalog order.
func Filter(questions []Question, track Track, kinds ...Kind) []Question {
	var out []Question
	for _, q := range questions {
		if !q.QuestionTrack().Matches(track) {
			continue
		}
		for _, k := range kinds {
			if q.QuestionKind() == k {
				out = append(out, q)
				break
			}
		}
	}
	return out
}

// rawQuestion is the on-disk shape of a question.
type rawQuestion struct {
	ID      string   `json:"id"`
	Track   Track    `json:"track"`
	Kind    Kind     `json:"kind"`
	Prompt  string   `json:"prompt"`
	Choices []string `json:"choices,omitempty"`
	Answer  string   `json:"answer,omitempty"`
	Rubric  []string `json:"rubric,omitempty"`
}

// toQuestion converts the raw record into its kind's variant. Fields that
// do not belong to the kind are dropped. Returns nil for an unknown kind.
func (r rawQuestion) toQuestion() Question {
	base := Base{ID: r.ID, Track: r.Track, Prompt: r.Prompt}
	switch r.Kind {
	case KindQuiz:
		return &Quiz{Base: base, Choices: r.Choices, Answer: r.Answer}
	case KindShort:
		return &Short{Base: base, Answer: r.Answer}
	case KindScenario:
		return &ScenarioPrompt{Base: base, Rubric: r.Rubric}
	case KindInterview:
		return &Interview{Base: base, Rubric: r.Rubric}
	}
	return nil
}
