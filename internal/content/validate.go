package content

import (
	"fmt"
	"strings"

	"golang.org/x/mod/semver"
)

// validateCatalog performs cross-document structural checks that the JSON
// schemas cannot express. Returns a combined error describing all problems
// found, or nil if valid.
func validateCatalog(c *Catalog) error {
	var errs []string

	if !semver.IsValid(c.version) {
		errs = append(errs, fmt.Sprintf("catalog version %q is not a valid semantic version", c.version))
	}

	trackSet := make(map[Track]bool, len(c.tracks))
	for _, t := range c.tracks {
		if t.ID == TrackBoth {
			errs = append(errs, fmt.Sprintf("track id %q is reserved", TrackBoth))
		}
		if trackSet[t.ID] {
			errs = append(errs, fmt.Sprintf("duplicate track ID: %q", t.ID))
		}
		trackSet[t.ID] = true
	}

	idSet := make(map[string]bool, len(c.questions))
	for _, q := range c.questions {
		id := q.QuestionID()
		if idSet[id] {
			errs = append(errs, fmt.Sprintf("duplicate question ID: %q", id))
		}
		idSet[id] = true

		if t := q.QuestionTrack(); t != TrackBoth && !trackSet[t] {
			errs = append(errs, fmt.Sprintf("question %q references unknown track %q", id, t))
		}

		switch v := q.(type) {
		case *Quiz:
			if len(v.Choices) < 2 {
				errs = append(errs, fmt.Sprintf("quiz %q needs at least 2 choices", id))
			}
			if v.Answer != "" && v.AnswerIndex() < 0 {
				errs = append(errs, fmt.Sprintf("quiz %q answer %q is not one of its choices", id, v.Answer))
			}
		case *ScenarioPrompt:
			if len(v.Rubric) == 0 {
				errs = append(errs, fmt.Sprintf("scenario prompt %q has no rubric", id))
			}
		case *Interview:
			if len(v.Rubric) == 0 {
				errs = append(errs, fmt.Sprintf("interview %q has no rubric", id))
			}
		}
	}

	scenarioSet := make(map[string]bool, len(c.scenarios))
	for _, s := range c.scenarios {
		if scenarioSet[s.ID] {
			errs = append(errs, fmt.Sprintf("duplicate scenario ID: %q", s.ID))
		}
		scenarioSet[s.ID] = true

		if !trackSet[s.Track] {
			errs = append(errs, fmt.Sprintf("scenario %q references unknown track %q", s.ID, s.Track))
		}
		errs = append(errs, validateScenario(s)...)
	}

	if len(errs) > 0 {
		return fmt.Errorf("catalog validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}

func validateScenario(s *Scenario) []string {
	var errs []string

	artifactSet := make(map[string]bool)
	checkArtifacts := func(where string, artifacts []Artifact) {
		for _, a := range artifacts {
			if artifactSet[a.ID] {
				errs = append(errs, fmt.Sprintf("scenario %q %s: duplicate artifact ID %q", s.ID, where, a.ID))
			}
			artifactSet[a.ID] = true
		}
	}
	checkArtifacts("global artifacts", s.GlobalArtifacts)

	stepSet := make(map[string]bool, len(s.Steps))
	for _, st := range s.Steps {
		if stepSet[st.ID] {
			errs = append(errs, fmt.Sprintf("scenario %q: duplicate step ID %q", s.ID, st.ID))
		}
		stepSet[st.ID] = true
		checkArtifacts("step "+st.ID, st.Artifacts)

		optionSet := make(map[string]bool, len(st.Options))
		for _, o := range st.Options {
			if optionSet[o.ID] {
				errs = append(errs, fmt.Sprintf("scenario %q step %q: duplicate option ID %q", s.ID, st.ID, o.ID))
			}
			optionSet[o.ID] = true
			if o.Score < 0 || o.Score > MaxOptionScore {
				errs = append(errs, fmt.Sprintf("scenario %q step %q option %q: score %d out of range", s.ID, st.ID, o.ID, o.Score))
			}
		}
	}

	keySet := make(map[string]bool, len(s.TicketFields))
	for _, f := range s.TicketFields {
		if keySet[f.Key] {
			errs = append(errs, fmt.Sprintf("scenario %q: duplicate ticket field %q", s.ID, f.Key))
		}
		keySet[f.Key] = true
	}
	return errs
}
