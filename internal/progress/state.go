// Package progress tracks the learner's application state: selected track,
// view mode, the attempt log and the daily study streak.
package progress

import (
	"errors"

	"github.com/abhisek/secjobcoach/internal/content"
	"github.com/abhisek/secjobcoach/internal/day"
)

var (
	// ErrInvalidMode is returned for a mode outside the known set.
	ErrInvalidMode = errors.New("invalid mode")

	// ErrInvalidResult is returned for an attempt result outside the known set.
	ErrInvalidResult = errors.New("invalid attempt result")
)

// Mode is the view the learner last chose.
type Mode string

const (
	ModeMission    Mode = "mission"
	ModeScenarios  Mode = "scenarios"
	ModeFlashcards Mode = "flashcards"
)

// Modes lists every mode in dashboard menu order.
var Modes = []Mode{ModeMission, ModeFlashcards, ModeScenarios}

// Label is the dashboard name of m.
func (m Mode) Label() string {
	switch m {
	case ModeMission:
		return "Daily mission"
	case ModeFlashcards:
		return "Flashcards"
	case ModeScenarios:
		return "Scenarios"
	}
	return string(m)
}

// Valid reports whether m is a known mode.
func (m Mode) Valid() bool {
	switch m {
	case ModeMission, ModeScenarios, ModeFlashcards:
		return true
	}
	return false
}

// Result is the outcome of one practice attempt.
type Result string

const (
	ResultCorrect   Result = "correct"
	ResultIncorrect Result = "incorrect"
	ResultSkipped   Result = "skipped"
)

// Valid reports whether r is a known result.
func (r Result) Valid() bool {
	switch r {
	case ResultCorrect, ResultIncorrect, ResultSkipped:
		return true
	}
	return false
}

// Attempt is one answered practice question. TS is unix milliseconds.
type Attempt struct {
	QuestionID string `json:"questionId"`
	TS         int64  `json:"ts"`
	Result     Result `json:"result"`
}

// Streak counts consecutive study days.
type Streak struct {
	LastStudyDay *day.Date `json:"lastStudyDay"`
	Count        int       `json:"count"`
}

// AppState is the persisted application document.
type AppState struct {
	SelectedTrack *content.Track `json:"selectedTrack"`
	Mode          Mode           `json:"mode"`
	Attempts      []Attempt      `json:"attempts"`
	Streak        Streak         `json:"streak"`
}

// Default returns the state of a first launch.
func Default() AppState {
	return AppState{
		SelectedTrack: nil,
		Mode:          ModeMission,
		Attempts:      []Attempt{},
		Streak:        Streak{LastStudyDay: nil, Count: 0},
	}
}

// Track returns the selected track, or "" when none is selected.
func (s AppState) Track() content.Track {
	if s.SelectedTrack == nil {
		return ""
	}
	return *s.SelectedTrack
}

// BumpStreak records a study session on today. A repeat on the same day
// leaves the streak unchanged; a session exactly one day after the last
// extends it; anything else restarts it at 1.
func BumpStreak(prev Streak, today day.Date) Streak {
	if prev.LastStudyDay != nil && *prev.LastStudyDay == today {
		return prev
	}

	count := 1
	if prev.LastStudyDay != nil && today.DaysSince(*prev.LastStudyDay) == 1 {
		count = prev.Count + 1
	}
	return Streak{LastStudyDay: &today, Count: count}
}

// Active reports whether the streak is still alive on today, i.e. the last
// study day is today or yesterday.
func (s Streak) Active(today day.Date) bool {
	if s.LastStudyDay == nil {
		return false
	}
	gap := today.DaysSince(*s.LastStudyDay)
	return gap == 0 || gap == 1
}
