// Package content is the immutable catalog of tracks, questions and
// incident scenarios. The default catalog is embedded in the binary.
package content

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"sync"
)

//go:embed data/*.json
var dataFS embed.FS

const (
	tracksFile    = "tracks.json"
	questionsFile = "questions.json"
	scenariosFile = "scenarios.json"
)

// Catalog is the loaded, validated content store.
type Catalog struct {
	version   string
	tracks    []TrackInfo
	questions []Question
	byID      map[string]Question
	scenarios []*Scenario
}

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
)

// Default returns the embedded catalog. It panics if the embedded content
// is invalid; TestDefaultCatalog guards against that.
func Default() *Catalog {
	defaultOnce.Do(func() {
		sub, err := fs.Sub(dataFS, "data")
		if err != nil {
			panic(fmt.Sprintf("content: %v", err))
		}
		c, err := Load(sub)
		if err != nil {
			panic(fmt.Sprintf("content: embedded catalog: %v", err))
		}
		defaultCatalog = c
	})
	return defaultCatalog
}

// Load reads tracks.json, questions.json and scenarios.json from fsys,
// validates each against its schema and validates the catalog as a whole.
func Load(fsys fs.FS) (*Catalog, error) {
	var tracksDoc struct {
		Tracks []TrackInfo `json:"tracks"`
	}
	if err := readDocument(fsys, tracksFile, &tracksDoc); err != nil {
		return nil, err
	}

	var questionsDoc struct {
		Version   string        `json:"version"`
		Questions []rawQuestion `json:"questions"`
	}
	if err := readDocument(fsys, questionsFile, &questionsDoc); err != nil {
		return nil, err
	}

	var scenariosDoc struct {
		Scenarios []rawScenario `json:"scenarios"`
	}
	if err := readDocument(fsys, scenariosFile, &scenariosDoc); err != nil {
		return nil, err
	}

	c := &Catalog{
		version: questionsDoc.Version,
		tracks:  tracksDoc.Tracks,
		byID:    make(map[string]Question, len(questionsDoc.Questions)),
	}
	for _, rq := range questionsDoc.Questions {
		q := rq.toQuestion()
		if q == nil {
			return nil, fmt.Errorf("question %q: unknown kind %q", rq.ID, rq.Kind)
		}
		c.questions = append(c.questions, q)
		if _, dup := c.byID[rq.ID]; !dup {
			c.byID[rq.ID] = q
		}
	}
	for _, rs := range scenariosDoc.Scenarios {
		c.scenarios = append(c.scenarios, rs.toScenario())
	}

	if err := validateCatalog(c); err != nil {
		return nil, err
	}
	return c, nil
}

func readDocument(fsys fs.FS, name string, v any) error {
	raw, err := fs.ReadFile(fsys, name)
	if err != nil {
		return fmt.Errorf("read %s: %w", name, err)
	}
	if err := validateDocument(schemaName(name), raw); err != nil {
		return fmt.Errorf("validate %s: %w", name, err)
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("decode %s: %w", name, err)
	}
	return nil
}

// schemaName maps a data file to its schema file ("tracks.json" ->
// "tracks.schema.json").
func schemaName(file string) string {
	return file[:len(file)-len(".json")] + ".schema.json"
}

// Version returns the catalog's semantic version.
func (c *Catalog) Version() string {
	return c.version
}

// ListQuestions returns every question in catalog order.
func (c *Catalog) ListQuestions() []Question {
	out := make([]Question, len(c.questions))
	copy(out, c.questions)
	return out
}

// Question returns the question with the given id.
func (c *Catalog) Question(id string) (Question, bool) {
	q, ok := c.byID[id]
	return q, ok
}

// Tracks returns the selectable tracks in catalog order.
func (c *Catalog) Tracks() []TrackInfo {
	out := make([]TrackInfo, len(c.tracks))
	copy(out, c.tracks)
	return out
}

// Track returns the track with the given id. The universal marker "both"
// is not a track.
func (c *Catalog) Track(id Track) (TrackInfo, bool) {
	for _, t := range c.tracks {
		if t.ID == id {
			return t, true
		}
	}
	return TrackInfo{}, false
}

// Scenarios returns the scenarios for track in catalog order.
func (c *Catalog) Scenarios(track Track) []*Scenario {
	var out []*Scenario
	for _, s := range c.scenarios {
		if s.Track.Matches(track) {
			out = append(out, s)
		}
	}
	return out
}

// Scenario returns the scenario with the given id.
func (c *Catalog) Scenario(id string) (*Scenario, bool) {
	for _, s := range c.scenarios {
		if s.ID == id {
			return s, true
		}
	}
	return nil, false
}
