package content

import "strings"

// Severity is the triage severity of a scenario.
type Severity string

const (
	SeverityLow    Severity = "Low"
	SeverityMedium Severity = "Medium"
	SeverityHigh   Severity = "High"
)

// ArtifactKind classifies a piece of evidence.
type ArtifactKind string

const (
	ArtifactAuth  ArtifactKind = "auth"
	ArtifactSIEM  ArtifactKind = "siem"
	ArtifactEDR   ArtifactKind = "edr"
	ArtifactDNS   ArtifactKind = "dns"
	ArtifactEmail ArtifactKind = "email"
	ArtifactCloud ArtifactKind = "cloud"
	ArtifactNote  ArtifactKind = "note"
)

// MaxOptionScore is the best score a single step option can award.
const MaxOptionScore = 3

// Artifact is evidence that can be revealed during a scenario.
type Artifact struct {
	ID    string
	Kind  ArtifactKind
	Title string
	Body  string
}

// Option is one answer to a scenario step.
type Option struct {
	ID       string `json:"id"`
	Label    string `json:"label"`
	Score    int    `json:"score"`
	Feedback string `json:"feedback"`
}

// Step is one decision point in a scenario.
type Step struct {
	ID        string
	Title     string
	Prompt    string
	Artifacts []Artifact
	Options   []Option
}

// Option returns the option with the given id.
func (s Step) Option(id string) (Option, bool) {
	for _, o := range s.Options {
		if o.ID == id {
			return o, true
		}
	}
	return Option{}, false
}

// TicketField is one field of the incident ticket written after a scenario.
type TicketField struct {
	Key  string `json:"key"`
	Hint string `json:"hint"`
}

// Scenario is a branching incident-response exercise.
type Scenario struct {
	ID              string
	Track           Track
	Title           string
	Severity        Severity
	Context         string
	GlobalArtifacts []Artifact
	Steps           []Step
	TicketFields    []TicketField
}

// Step returns the step with the given id.
func (s *Scenario) Step(id string) (Step, bool) {
	for _, st := range s.Steps {
		if st.ID == id {
			return st, true
		}
	}
	return Step{}, false
}

// MaxScore is the best total score achievable in s.
func (s *Scenario) MaxScore() int {
	return len(s.Steps) * MaxOptionScore
}

type rawArtifact struct {
	ID    string       `json:"id"`
	Kind  ArtifactKind `json:"kind"`
	Title string       `json:"title"`
	Body  []string     `json:"body"`
}

type rawStep struct {
	ID        string        `json:"id"`
	Title     string        `json:"title"`
	Prompt    string        `json:"prompt"`
	Artifacts []rawArtifact `json:"artifacts"`
	Options   []Option      `json:"options"`
}

type rawScenario struct {
	ID              string        `json:"id"`
	Track           Track         `json:"track"`
	Title           string        `json:"title"`
	Severity        Severity      `json:"severity"`
	Context         string        `json:"context"`
	GlobalArtifacts []rawArtifact `json:"globalArtifacts"`
	Steps           []rawStep     `json:"steps"`
	TicketTemplate  struct {
		Fields []TicketField `json:"fields"`
	} `json:"ticketTemplate"`
}

func (r rawArtifact) toArtifact() Artifact {
	return Artifact{
		ID:    r.ID,
		Kind:  r.Kind,
		Title: r.Title,
		Body:  strings.Join(r.Body, "\n"),
	}
}

func toArtifacts(raw []rawArtifact) []Artifact {
	if len(raw) == 0 {
		return nil
	}
	out := make([]Artifact, len(raw))
	for i, a := range raw {
		out[i] = a.toArtifact()
	}
	return out
}

func (r rawScenario) toScenario() *Scenario {
	steps := make([]Step, len(r.Steps))
	for i, st := range r.Steps {
		steps[i] = Step{
			ID:        st.ID,
			Title:     st.Title,
			Prompt:    st.Prompt,
			Artifacts: toArtifacts(st.Artifacts),
			Options:   st.Options,
		}
	}
	return &Scenario{
		ID:              r.ID,
		Track:           r.Track,
		Title:           r.Title,
		Severity:        r.Severity,
		Context:         r.Context,
		GlobalArtifacts: toArtifacts(r.GlobalArtifacts),
		Steps:           steps,
		TicketFields:    r.TicketTemplate.Fields,
	}
}
