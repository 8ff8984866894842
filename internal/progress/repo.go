package progress

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/abhisek/secjobcoach/internal/content"
	"github.com/abhisek/secjobcoach/internal/store"
)

// StateRepo loads and saves the whole AppState document.
type StateRepo interface {
	LoadState(ctx context.Context) (AppState, error)
	SaveState(ctx context.Context, s AppState) error
}

// DocumentStateRepo stores AppState as one JSON document.
type DocumentStateRepo struct {
	docs   store.DocumentRepo
	logger *slog.Logger
}

var _ StateRepo = (*DocumentStateRepo)(nil)

// NewDocumentStateRepo returns a StateRepo over docs. A nil logger discards.
func NewDocumentStateRepo(docs store.DocumentRepo, logger *slog.Logger) *DocumentStateRepo {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &DocumentStateRepo{docs: docs, logger: logger}
}

// LoadState returns the stored state merged over Default. Absent or
// unreadable documents yield Default; unreadable fields keep their default.
func (r *DocumentStateRepo) LoadState(ctx context.Context) (AppState, error) {
	raw, ok, err := r.docs.Get(ctx, store.AppStateKey)
	if err != nil {
		return AppState{}, fmt.Errorf("load state: %w", err)
	}
	if !ok {
		return Default(), nil
	}
	return r.decode(raw), nil
}

func (r *DocumentStateRepo) decode(raw []byte) AppState {
	state := Default()

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		r.logger.Warn("state document unreadable, using defaults",
			"key", store.AppStateKey, "error", err)
		return state
	}

	merge := func(name string, dst any) bool {
		v, ok := fields[name]
		if !ok || string(v) == "null" {
			return false
		}
		if err := json.Unmarshal(v, dst); err != nil {
			r.logger.Warn("state field unreadable, using default",
				"key", store.AppStateKey, "field", name, "error", err)
			return false
		}
		return true
	}

	var track content.Track
	if merge("selectedTrack", &track) && track != "" {
		state.SelectedTrack = &track
	}

	var mode Mode
	if merge("mode", &mode) {
		if mode.Valid() {
			state.Mode = mode
		} else {
			r.logger.Warn("unknown mode in state document, using default", "mode", string(mode))
		}
	}

	var attempts []Attempt
	if merge("attempts", &attempts) && attempts != nil {
		state.Attempts = attempts
	}

	var streak Streak
	if merge("streak", &streak) {
		state.Streak = streak
	}
	return state
}

// SaveState writes the full state document.
func (r *DocumentStateRepo) SaveState(ctx context.Context, s AppState) error {
	if s.Attempts == nil {
		s.Attempts = []Attempt{}
	}
	raw, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode state: %w", err)
	}
	if err := r.docs.Put(ctx, store.AppStateKey, raw); err != nil {
		return fmt.Errorf("save state: %w", err)
	}
	return nil
}
