package progress

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/abhisek/secjobcoach/internal/content"
	"github.com/abhisek/secjobcoach/internal/day"
)

// TrackLookup resolves selectable tracks.
type TrackLookup interface {
	Track(id content.Track) (content.TrackInfo, bool)
}

// Service applies learner actions to the AppState document. Each method is
// one read-modify-write of the document.
type Service struct {
	repo   StateRepo
	tracks TrackLookup
	loc    *time.Location
	logger *slog.Logger
}

// NewService creates a Service. Dates are computed in loc (nil means local
// time). A nil logger discards.
func NewService(repo StateRepo, tracks TrackLookup, loc *time.Location, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Service{repo: repo, tracks: tracks, loc: loc, logger: logger}
}

// Today returns the calendar date of now in the service location.
func (s *Service) Today(now time.Time) day.Date {
	return day.Today(now, s.loc)
}

// Load returns the current state.
func (s *Service) Load(ctx context.Context) (AppState, error) {
	return s.repo.LoadState(ctx)
}

// update loads the state, applies fn and saves the result.
func (s *Service) update(ctx context.Context, fn func(*AppState)) (AppState, error) {
	state, err := s.repo.LoadState(ctx)
	if err != nil {
		return AppState{}, err
	}
	fn(&state)
	if err := s.repo.SaveState(ctx, state); err != nil {
		return AppState{}, err
	}
	return state, nil
}

// SetTrack selects the study track and returns the dashboard to the daily
// mission.
func (s *Service) SetTrack(ctx context.Context, track content.Track) (AppState, error) {
	if _, ok := s.tracks.Track(track); !ok {
		return AppState{}, fmt.Errorf("set track: %w: %q", content.ErrUnknownTrack, track)
	}
	state, err := s.update(ctx, func(st *AppState) {
		st.SelectedTrack = &track
		st.Mode = ModeMission
	})
	if err != nil {
		return AppState{}, fmt.Errorf("set track: %w", err)
	}
	s.logger.Info("track selected", "track", string(track))
	return state, nil
}

// SetMode records the last chosen view.
func (s *Service) SetMode(ctx context.Context, mode Mode) (AppState, error) {
	if !mode.Valid() {
		return AppState{}, fmt.Errorf("set mode: %w: %q", ErrInvalidMode, mode)
	}
	state, err := s.update(ctx, func(st *AppState) {
		st.Mode = mode
	})
	if err != nil {
		return AppState{}, fmt.Errorf("set mode: %w", err)
	}
	return state, nil
}

// RecordAttempt appends an attempt stamped with now and bumps the streak.
func (s *Service) RecordAttempt(ctx context.Context, questionID string, result Result, now time.Time) (AppState, error) {
	if !result.Valid() {
		return AppState{}, fmt.Errorf("record attempt: %w: %q", ErrInvalidResult, result)
	}
	today := s.Today(now)
	state, err := s.update(ctx, func(st *AppState) {
		st.Attempts = append(st.Attempts, Attempt{
			QuestionID: questionID,
			TS:         now.UnixMilli(),
			Result:     result,
		})
		st.Streak = BumpStreak(st.Streak, today)
	})
	if err != nil {
		return AppState{}, fmt.Errorf("record attempt: %w", err)
	}
	s.logger.Debug("attempt recorded",
		"question", questionID,
		"result", string(result),
		"streak", state.Streak.Count,
	)
	return state, nil
}

// MarkStudied bumps the streak without recording an attempt.
func (s *Service) MarkStudied(ctx context.Context, now time.Time) (AppState, error) {
	today := s.Today(now)
	state, err := s.update(ctx, func(st *AppState) {
		st.Streak = BumpStreak(st.Streak, today)
	})
	if err != nil {
		return AppState{}, fmt.Errorf("mark studied: %w", err)
	}
	return state, nil
}

// Reset replaces the stored state with Default.
func (s *Service) Reset(ctx context.Context) error {
	if err := s.repo.SaveState(ctx, Default()); err != nil {
		return fmt.Errorf("reset state: %w", err)
	}
	s.logger.Info("state reset")
	return nil
}
