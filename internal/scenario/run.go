// Package scenario runs branching incident-response scenarios: one answer
// per step, artifact reveal, and a closing ticket checked for key content.
package scenario

import (
	"github.com/abhisek/secjobcoach/internal/content"
)

// Answer is the option chosen for a step.
type Answer struct {
	StepID   string
	OptionID string
	Score    int
}

// Run is the in-progress state of one scenario attempt.
type Run struct {
	scenario *content.Scenario
	index    int
	answers  []Answer
	revealed map[string]bool
	ticket   map[string]string
}

// NewRun starts a run of s at its first step.
func NewRun(s *content.Scenario) *Run {
	r := &Run{scenario: s}
	r.Reset()
	return r
}

// Reset clears answers, revealed artifacts and ticket notes.
func (r *Run) Reset() {
	r.index = 0
	r.answers = nil
	r.revealed = make(map[string]bool)
	r.ticket = make(map[string]string)
}

// Scenario returns the scenario being run.
func (r *Run) Scenario() *content.Scenario { return r.scenario }

// StepIndex returns the position of the current step. It equals the number
// of steps once the run has moved past the last one.
func (r *Run) StepIndex() int { return r.index }

// Current returns the current step, or false past the last step.
func (r *Run) Current() (content.Step, bool) {
	if r.index >= len(r.scenario.Steps) {
		return content.Step{}, false
	}
	return r.scenario.Steps[r.index], true
}

// Answer returns the answer recorded for stepID.
func (r *Run) Answer(stepID string) (Answer, bool) {
	for _, a := range r.answers {
		if a.StepID == stepID {
			return a, true
		}
	}
	return Answer{}, false
}

// Answers returns the recorded answers in the order they were given.
func (r *Run) Answers() []Answer {
	out := make([]Answer, len(r.answers))
	copy(out, r.answers)
	return out
}

// Choose records optionID as the answer to stepID. It reports false, and
// changes nothing, when the step was already answered or the ids are unknown.
func (r *Run) Choose(stepID, optionID string) (content.Option, bool) {
	if _, done := r.Answer(stepID); done {
		return content.Option{}, false
	}
	step, ok := r.scenario.Step(stepID)
	if !ok {
		return content.Option{}, false
	}
	opt, ok := step.Option(optionID)
	if !ok {
		return content.Option{}, false
	}
	r.answers = append(r.answers, Answer{StepID: stepID, OptionID: optionID, Score: opt.Score})
	return opt, true
}

// Next moves past the current step once it has been answered. It reports
// whether the position changed.
func (r *Run) Next() bool {
	step, ok := r.Current()
	if !ok {
		return false
	}
	if _, answered := r.Answer(step.ID); !answered {
		return false
	}
	r.index = min(r.index+1, len(r.scenario.Steps))
	return true
}

// Prev moves back one step, stopping at the first.
func (r *Run) Prev() bool {
	if r.index == 0 {
		return false
	}
	r.index--
	return true
}

// Score is the sum of the chosen option scores.
func (r *Run) Score() int {
	total := 0
	for _, a := range r.answers {
		total += a.Score
	}
	return total
}

// MaxScore is the best achievable score.
func (r *Run) MaxScore() int { return r.scenario.MaxScore() }

// Finished reports whether every step has an answer.
func (r *Run) Finished() bool {
	return len(r.answers) >= len(r.scenario.Steps)
}

// Artifacts returns the artifacts visible at the current position: the
// scenario-wide ones followed by those of the current step.
func (r *Run) Artifacts() []content.Artifact {
	out := append([]content.Artifact(nil), r.scenario.GlobalArtifacts...)
	if step, ok := r.Current(); ok {
		out = append(out, step.Artifacts...)
	}
	return out
}

// Reveal marks an artifact of the scenario as revealed. It reports false for
// an unknown id.
func (r *Run) Reveal(artifactID string) bool {
	if !r.hasArtifact(artifactID) {
		return false
	}
	r.revealed[artifactID] = true
	return true
}

// Hide reverses Reveal.
func (r *Run) Hide(artifactID string) {
	delete(r.revealed, artifactID)
}

// Revealed reports whether an artifact has been revealed.
func (r *Run) Revealed(artifactID string) bool {
	return r.revealed[artifactID]
}

func (r *Run) hasArtifact(id string) bool {
	for _, a := range r.scenario.GlobalArtifacts {
		if a.ID == id {
			return true
		}
	}
	for _, s := range r.scenario.Steps {
		for _, a := range s.Artifacts {
			if a.ID == id {
				return true
			}
		}
	}
	return false
}
