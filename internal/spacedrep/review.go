package spacedrep

import (
	"errors"
	"fmt"
	"math"

	"github.com/abhisek/secjobcoach/internal/content"
	"github.com/abhisek/secjobcoach/internal/day"
)

// ErrInvalidGrade is returned when a grade is outside [0, 5].
var ErrInvalidGrade = errors.New("invalid grade")

// Grade is the self-assessed recall quality of a review, 0..5.
type Grade int

const (
	GradeBlackout  Grade = 0 // no recall
	GradeWrong     Grade = 1 // wrong, answer familiar once seen
	GradeHard      Grade = 2 // wrong, answer felt easy once seen
	GradeDifficult Grade = 3 // correct with serious difficulty
	GradeHesitant  Grade = 4 // correct after hesitation
	GradePerfect   Grade = 5 // perfect recall
)

// Valid reports whether g is within [0, 5].
func (g Grade) Valid() bool {
	return g >= GradeBlackout && g <= GradePerfect
}

// Passing reports whether g counts as a successful recall.
func (g Grade) Passing() bool {
	return g >= GradeDifficult
}

// ParseGrade converts a single digit to a Grade.
func ParseGrade(s string) (Grade, error) {
	if len(s) != 1 || s[0] < '0' || s[0] > '5' {
		return 0, fmt.Errorf("%w: %q", ErrInvalidGrade, s)
	}
	return Grade(s[0] - '0'), nil
}

// Card is the review record for one question. Field names match the
// persisted flashcard document.
type Card struct {
	ID           string        `json:"id"`
	Track        content.Track `json:"track"`
	Front        string        `json:"front"`
	Back         string        `json:"back"`
	Repetitions  int           `json:"repetitions"`
	IntervalDays int           `json:"intervalDays"`
	Ease         float64       `json:"ease"`
	Due          day.Date      `json:"due"`
	LastReviewed *day.Date     `json:"lastReviewed"`
}

// IsDue reports whether the card is due on or before today.
func (c Card) IsDue(today day.Date) bool {
	return !c.Due.After(today)
}

// IsNew reports whether the card has never been reviewed.
func (c Card) IsNew() bool {
	return c.LastReviewed == nil
}

// Review applies one SM-2 step and returns the updated card. The input is
// not modified. Grades outside [0, 5] are clamped.
func Review(c Card, g Grade, today day.Date) Card {
	g = max(GradeBlackout, min(GradePerfect, g))

	miss := float64(GradePerfect - g)
	c.Ease = clampFloat(c.Ease+(0.1-miss*(0.08+miss*0.02)), MinEase, MaxEase)

	if !g.Passing() {
		c.Repetitions = 0
		c.IntervalDays = MinIntervalDays
	} else {
		c.Repetitions++
		switch c.Repetitions {
		case 1:
			c.IntervalDays = MinIntervalDays
		case 2:
			c.IntervalDays = SecondIntervalDays
		default:
			next := int(math.Round(float64(c.IntervalDays) * c.Ease))
			c.IntervalDays = max(MinIntervalDays, min(MaxIntervalDays, next))
		}
	}

	c.Due = today.AddDays(c.IntervalDays)
	reviewed := today
	c.LastReviewed = &reviewed
	return c
}

func clampFloat(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
