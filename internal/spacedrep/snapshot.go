package spacedrep

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/abhisek/secjobcoach/internal/store"
)

// ErrUnreadableCards is returned with an empty map when the stored card
// document cannot be decoded at all. The document is left as it is.
var ErrUnreadableCards = errors.New("flashcard document unreadable")

// CardRepo loads and saves the full card map. Each SaveCards call replaces
// the stored map.
type CardRepo interface {
	LoadCards(ctx context.Context) (map[string]Card, error)
	SaveCards(ctx context.Context, cards map[string]Card) error
}

// DocumentCardRepo stores cards as one JSON document keyed by question id.
type DocumentCardRepo struct {
	docs   store.DocumentRepo
	logger *slog.Logger
}

var _ CardRepo = (*DocumentCardRepo)(nil)

// NewDocumentCardRepo returns a CardRepo over docs. A nil logger discards.
func NewDocumentCardRepo(docs store.DocumentRepo, logger *slog.Logger) *DocumentCardRepo {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &DocumentCardRepo{docs: docs, logger: logger}
}

// LoadCards returns the stored cards. A missing document yields an empty
// map. Cards that fail to decode are skipped and the rest are kept. A
// document that is not a JSON object yields an empty map and
// ErrUnreadableCards.
func (r *DocumentCardRepo) LoadCards(ctx context.Context) (map[string]Card, error) {
	raw, ok, err := r.docs.Get(ctx, store.FlashcardKey)
	if err != nil {
		return nil, fmt.Errorf("load flashcards: %w", err)
	}
	cards := make(map[string]Card)
	if !ok {
		return cards, nil
	}

	var entries map[string]json.RawMessage
	if err := json.Unmarshal(raw, &entries); err != nil {
		return cards, fmt.Errorf("load flashcards: %w: %v", ErrUnreadableCards, err)
	}

	for id, entry := range entries {
		if string(entry) == "null" {
			continue
		}
		var c Card
		if err := json.Unmarshal(entry, &c); err != nil {
			r.logger.Warn("flashcard unreadable, skipping",
				"id", id, "error", err)
			continue
		}
		if c.ID == "" {
			c.ID = id
		}
		cards[id] = c
	}
	return cards, nil
}

// SaveCards writes the full card map.
func (r *DocumentCardRepo) SaveCards(ctx context.Context, cards map[string]Card) error {
	raw, err := json.Marshal(cards)
	if err != nil {
		return fmt.Errorf("encode flashcards: %w", err)
	}
	if err := r.docs.Put(ctx, store.FlashcardKey, raw); err != nil {
		return fmt.Errorf("save flashcards: %w", err)
	}
	return nil
}
