// Package coach wires the content catalog, persistence and domain services
// into one value shared by the CLI and the terminal UI.
package coach

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/abhisek/secjobcoach/internal/content"
	"github.com/abhisek/secjobcoach/internal/day"
	"github.com/abhisek/secjobcoach/internal/mission"
	"github.com/abhisek/secjobcoach/internal/progress"
	"github.com/abhisek/secjobcoach/internal/scenario"
	"github.com/abhisek/secjobcoach/internal/spacedrep"
	"github.com/abhisek/secjobcoach/internal/store"
)

// Options configures a Coach.
type Options struct {
	Catalog  *content.Catalog
	Docs     store.DocumentRepo
	Runs     store.ScenarioRunRepo
	Location *time.Location
	DueLimit int
	Logger   *slog.Logger

	// Now defaults to time.Now.
	Now func() time.Time
}

// Coach bundles the services behind every user action.
type Coach struct {
	Catalog  *content.Catalog
	Progress *progress.Service
	Deck     *spacedrep.Deck
	Recorder *scenario.Recorder
	DueLimit int
	Logger   *slog.Logger

	docs store.DocumentRepo
	runs store.ScenarioRunRepo
	loc  *time.Location
	now  func() time.Time
}

// New builds a Coach from opts.
func New(opts Options) *Coach {
	if opts.Catalog == nil {
		opts.Catalog = content.Default()
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.DueLimit <= 0 {
		opts.DueLimit = spacedrep.DefaultDueLimit
	}
	if opts.Runs == nil {
		opts.Runs = &store.MemoryScenarioRuns{}
	}

	logger := opts.Logger
	states := progress.NewDocumentStateRepo(opts.Docs, logger)
	cards := spacedrep.NewDocumentCardRepo(opts.Docs, logger)

	return &Coach{
		Catalog:  opts.Catalog,
		Progress: progress.NewService(states, opts.Catalog, opts.Location, logger),
		Deck:     spacedrep.NewDeck(cards, opts.Catalog, logger),
		Recorder: scenario.NewRecorder(opts.Runs, logger),
		DueLimit: opts.DueLimit,
		Logger:   logger,
		docs:     opts.Docs,
		runs:     opts.Runs,
		loc:      opts.Location,
		now:      opts.Now,
	}
}

// FromStore builds a Coach persisting to st.
func FromStore(st *store.Store, opts Options) *Coach {
	opts.Docs = st.Documents()
	opts.Runs = st.ScenarioRuns()
	return New(opts)
}

// Now returns the current time.
func (c *Coach) Now() time.Time { return c.now() }

// Today returns the current calendar date in the configured location.
func (c *Coach) Today() day.Date { return day.Today(c.now(), c.loc) }

// Mission builds today's mission for track.
func (c *Coach) Mission(track content.Track) (mission.Mission, bool) {
	return mission.Build(c.Catalog, track, c.Today())
}

// Dashboard is the summary shown on the home screen and by the stats command.
type Dashboard struct {
	State     progress.AppState
	Track     content.TrackInfo
	HasTrack  bool
	Cards     spacedrep.Stats
	Attempts  progress.Summary
	Weak      []progress.WeakTopic
	Scenarios int
}

// Dashboard loads the current dashboard.
func (c *Coach) Dashboard(ctx context.Context) (Dashboard, error) {
	state, err := c.Progress.Load(ctx)
	if err != nil {
		return Dashboard{}, fmt.Errorf("load dashboard: %w", err)
	}

	d := Dashboard{
		State:    state,
		Attempts: progress.Summarize(state),
		Weak:     progress.WeakTopics(state, c.Catalog.ListQuestions(), progress.DefaultWeakLimit),
	}
	if info, ok := c.Catalog.Track(state.Track()); ok {
		d.Track = info
		d.HasTrack = true
		d.Scenarios = len(c.Catalog.Scenarios(info.ID))

		d.Cards, err = c.Deck.Stats(ctx, info.ID, c.Today())
		if err != nil {
			return Dashboard{}, fmt.Errorf("load dashboard: %w", err)
		}
	}
	return d, nil
}

// Reset deletes every stored document and scenario run.
func (c *Coach) Reset(ctx context.Context) error {
	for _, key := range []string{store.AppStateKey, store.FlashcardKey} {
		if err := c.docs.Delete(ctx, key); err != nil {
			return fmt.Errorf("reset: %w", err)
		}
	}
	if err := c.runs.DeleteAll(ctx); err != nil {
		return fmt.Errorf("reset: %w", err)
	}
	c.Logger.Info("learner data reset")
	return nil
}
