// Package mission builds the daily mission: a fixed learn block plus
// practice and interview questions sampled deterministically from the date
// and track.
package mission

import (
	"github.com/abhisek/secjobcoach/internal/content"
	"github.com/abhisek/secjobcoach/internal/day"
)

const (
	PracticeSize = 5
	DrillSize    = 3

	// DrillSeedOffset separates the drill stream from the practice stream.
	DrillSeedOffset = 99
)

// Mission is one day's study plan for a track.
type Mission struct {
	Date         day.Date
	Track        content.TrackInfo
	Learn        content.LearnBlock
	Practice     []content.Question
	Drill        []content.Question
	PracticeSeed int
	DrillSeed    int
}

// Catalog is the subset of the content catalog used to build missions.
type Catalog interface {
	Track(id content.Track) (content.TrackInfo, bool)
	ListQuestions() []content.Question
}

// DateSeed folds a date into its decimal YYYYMMDD form.
func DateSeed(d day.Date) int {
	return d.Year*10000 + int(d.Month)*100 + d.Day
}

// Seeds returns the practice and drill seeds of a track on a date.
func Seeds(d day.Date, seedOffset int) (practice, drill int) {
	practice = DateSeed(d) + seedOffset
	return practice, practice + DrillSeedOffset
}

// Pick returns the first min(n, len(pool)) elements of a seeded
// Fisher-Yates shuffle of pool. pool is not modified.
func Pick[T any](pool []T, n int, seed int) []T {
	shuffled := make([]T, len(pool))
	copy(shuffled, pool)

	r := NewRand(seed)
	for i := len(shuffled) - 1; i > 0; i-- {
		j := r.Intn(i + 1)
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	}
	return shuffled[:max(0, min(n, len(shuffled)))]
}

// Build assembles the mission for track on today. It reports false when
// the track is not in the catalog.
func Build(c Catalog, track content.Track, today day.Date) (Mission, bool) {
	info, ok := c.Track(track)
	if !ok {
		return Mission{}, false
	}

	questions := c.ListQuestions()
	practicePool := content.Filter(questions, track, content.KindQuiz, content.KindShort)
	drillPool := content.Filter(questions, track, content.KindInterview)

	practiceSeed, drillSeed := Seeds(today, info.SeedOffset)
	return Mission{
		Date:         today,
		Track:        info,
		Learn:        info.Learn,
		Practice:     Pick(practicePool, PracticeSize, practiceSeed),
		Drill:        Pick(drillPool, DrillSize, drillSeed),
		PracticeSeed: practiceSeed,
		DrillSeed:    drillSeed,
	}, true
}

// QuestionIDs returns the ids of qs in order.
func QuestionIDs(qs []content.Question) []string {
	ids := make([]string, len(qs))
	for i, q := range qs {
		ids[i] = q.QuestionID()
	}
	return ids
}
