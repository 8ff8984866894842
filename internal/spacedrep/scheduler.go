package spacedrep

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/abhisek/secjobcoach/internal/content"
	"github.com/abhisek/secjobcoach/internal/day"
)

// QuestionSource lists the questions cards are derived from.
type QuestionSource interface {
	ListQuestions() []content.Question
}

// Stats summarizes the cards of one track.
type Stats struct {
	Total int `json:"total"`
	Due   int `json:"due"`
}

// Deck schedules flashcard reviews over a CardRepo. Every public method
// backfills missing cards before reading, so newly added content surfaces
// immediately.
type Deck struct {
	repo      CardRepo
	questions QuestionSource
	logger    *slog.Logger
}

// NewDeck creates a deck. A nil logger discards.
func NewDeck(repo CardRepo, questions QuestionSource, logger *slog.Logger) *Deck {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Deck{repo: repo, questions: questions, logger: logger}
}

// Eligible reports whether q gets a flashcard: quiz or short questions with
// an answer or at least one choice.
func Eligible(q content.Question) bool {
	switch v := q.(type) {
	case *content.Quiz:
		return v.Answer != "" || len(v.Choices) > 0
	case *content.Short:
		return v.Answer != ""
	}
	return false
}

// NewCard returns the initial card for q, due today.
func NewCard(q content.Question, today day.Date) Card {
	back := content.AnswerKey(q)
	if q.QuestionKind() == content.KindQuiz {
		back = "Correct: " + back
	}
	return Card{
		ID:           q.QuestionID(),
		Track:        q.QuestionTrack(),
		Front:        q.QuestionPrompt(),
		Back:         back,
		Repetitions:  0,
		IntervalDays: 0,
		Ease:         InitialEase,
		Due:          today,
	}
}

// stored reads the card map. An unreadable document is reported as an
// empty, non-writable map so reads never overwrite it.
func (d *Deck) stored(ctx context.Context) (cards map[string]Card, writable bool, err error) {
	cards, err = d.repo.LoadCards(ctx)
	if errors.Is(err, ErrUnreadableCards) {
		d.logger.Warn("flashcard document unreadable, deferring writes until the next review",
			"error", err)
		if cards == nil {
			cards = make(map[string]Card)
		}
		return cards, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return cards, true, nil
}

// load reads the card map and creates cards for eligible questions that
// have none. The map is saved only when something was added and the
// stored document was readable.
func (d *Deck) load(ctx context.Context, today day.Date) (map[string]Card, int, error) {
	cards, writable, err := d.stored(ctx)
	if err != nil {
		return nil, 0, err
	}

	added := 0
	for _, q := range d.questions.ListQuestions() {
		if !Eligible(q) {
			continue
		}
		if _, ok := cards[q.QuestionID()]; ok {
			continue
		}
		cards[q.QuestionID()] = NewCard(q, today)
		added++
	}

	if added > 0 && writable {
		if err := d.repo.SaveCards(ctx, cards); err != nil {
			return nil, 0, fmt.Errorf("backfill cards: %w", err)
		}
		d.logger.Info("flashcards backfilled", "added", added, "total", len(cards))
	}
	return cards, added, nil
}

// Backfill creates cards for eligible questions that have none and returns
// how many were added.
func (d *Deck) Backfill(ctx context.Context, today day.Date) (int, error) {
	_, added, err := d.load(ctx, today)
	return added, err
}

// DueCards returns up to limit cards of track due on or before today, most
// overdue first. Ties are ordered by id.
func (d *Deck) DueCards(ctx context.Context, track content.Track, limit int, today day.Date) ([]Card, error) {
	cards, _, err := d.load(ctx, today)
	if err != nil {
		return nil, fmt.Errorf("due cards: %w", err)
	}

	due := make([]Card, 0, len(cards))
	for _, c := range cards {
		if c.Track.Matches(track) && c.IsDue(today) {
			due = append(due, c)
		}
	}
	slices.SortStableFunc(due, func(a, b Card) int {
		if c := a.Due.Compare(b.Due); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})

	if limit <= 0 {
		return []Card{}, nil
	}
	if len(due) > limit {
		due = due[:limit]
	}
	return due, nil
}

// Stats counts the cards of track and how many are due today.
func (d *Deck) Stats(ctx context.Context, track content.Track, today day.Date) (Stats, error) {
	cards, _, err := d.load(ctx, today)
	if err != nil {
		return Stats{}, fmt.Errorf("card stats: %w", err)
	}

	var s Stats
	for _, c := range cards {
		if !c.Track.Matches(track) {
			continue
		}
		s.Total++
		if c.IsDue(today) {
			s.Due++
		}
	}
	return s, nil
}

// ReviewCard grades the card with the given id and saves the result. An
// unknown id returns nil without writing. A review replaces an unreadable
// stored document.
func (d *Deck) ReviewCard(ctx context.Context, id string, g Grade, today day.Date) (*Card, error) {
	if !g.Valid() {
		return nil, fmt.Errorf("review card %q: %w: %d", id, ErrInvalidGrade, g)
	}

	cards, _, err := d.load(ctx, today)
	if err != nil {
		return nil, fmt.Errorf("review card %q: %w", id, err)
	}
	card, ok := cards[id]
	if !ok {
		return nil, nil
	}

	next := Review(card, g, today)
	cards[id] = next
	if err := d.repo.SaveCards(ctx, cards); err != nil {
		return nil, fmt.Errorf("review card %q: %w", id, err)
	}

	d.logger.Debug("card reviewed",
		"id", id,
		"grade", int(g),
		"repetitions", next.Repetitions,
		"interval_days", next.IntervalDays,
		"ease", next.Ease,
		"due", next.Due.String(),
	)
	return &next, nil
}

// Orphans returns the ids of stored cards whose question is no longer
// eligible, sorted.
func (d *Deck) Orphans(ctx context.Context) ([]string, error) {
	cards, _, err := d.stored(ctx)
	if err != nil {
		return nil, fmt.Errorf("find orphans: %w", err)
	}
	return d.orphanIDs(cards), nil
}

// PruneOrphans deletes cards whose question is no longer eligible and
// returns how many were removed. Nothing is written when none are found.
func (d *Deck) PruneOrphans(ctx context.Context) (int, error) {
	cards, writable, err := d.stored(ctx)
	if err != nil {
		return 0, fmt.Errorf("prune orphans: %w", err)
	}
	ids := d.orphanIDs(cards)
	if len(ids) == 0 || !writable {
		return 0, nil
	}
	for _, id := range ids {
		delete(cards, id)
	}
	if err := d.repo.SaveCards(ctx, cards); err != nil {
		return 0, fmt.Errorf("prune orphans: %w", err)
	}
	d.logger.Info("orphaned flashcards pruned", "removed", len(ids))
	return len(ids), nil
}

func (d *Deck) orphanIDs(cards map[string]Card) []string {
	live := make(map[string]bool)
	for _, q := range d.questions.ListQuestions() {
		if Eligible(q) {
			live[q.QuestionID()] = true
		}
	}
	var ids []string
	for id := range cards {
		if !live[id] {
			ids = append(ids, id)
		}
	}
	slices.Sort(ids)
	return ids
}
