package scenario

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/secjobcoach/internal/store"
)

// ErrNotFinished is returned when saving a run with unanswered steps.
var ErrNotFinished = errors.New("scenario run not finished")

// Recorder persists finished runs.
type Recorder struct {
	runs   store.ScenarioRunRepo
	logger *slog.Logger
	newID  func() string
}

// NewRecorder creates a Recorder. A nil logger discards.
func NewRecorder(runs store.ScenarioRunRepo, logger *slog.Logger) *Recorder {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Recorder{
		runs:   runs,
		logger: logger,
		newID:  func() string { return uuid.New().String() },
	}
}

// Save stores a finished run and returns the stored record.
func (rec *Recorder) Save(ctx context.Context, r *Run, now time.Time) (*store.ScenarioRunRecord, error) {
	if !r.Finished() {
		return nil, fmt.Errorf("save run %s: %w", r.Scenario().ID, ErrNotFinished)
	}

	checks := r.TicketChecks()
	out := &store.ScenarioRunRecord{
		ID:           rec.newID(),
		ScenarioID:   r.Scenario().ID,
		Track:        string(r.Scenario().Track),
		Score:        r.Score(),
		MaxScore:     r.MaxScore(),
		ChecksPassed: PassedChecks(checks),
		ChecksTotal:  len(checks),
		FinishedAt:   now.UTC(),
	}
	if err := rec.runs.Save(ctx, out); err != nil {
		return nil, fmt.Errorf("save run %s: %w", out.ScenarioID, err)
	}

	rec.logger.Info("scenario run recorded",
		"scenario", out.ScenarioID,
		"score", out.Score,
		"max_score", out.MaxScore,
		"checks_passed", out.ChecksPassed,
	)
	return out, nil
}

// History returns recorded runs, newest first.
func (rec *Recorder) History(ctx context.Context, opts store.QueryOpts) ([]store.ScenarioRunRecord, error) {
	runs, err := rec.runs.List(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("scenario history: %w", err)
	}
	return runs, nil
}

// Best returns the highest score recorded per scenario id.
func Best(runs []store.ScenarioRunRecord) map[string]int {
	best := make(map[string]int)
	for _, r := range runs {
		if cur, ok := best[r.ScenarioID]; !ok || r.Score > cur {
			best[r.ScenarioID] = r.Score
		}
	}
	return best
}
