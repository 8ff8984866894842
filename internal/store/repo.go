package store

import (
	"context"
	"time"
)

// Fixed document keys. The values are part of the persisted format.
const (
	AppStateKey  = "secjobcoach:v1"
	FlashcardKey = "secjobcoach:flashcards:v1"
)

// DocumentRepo stores whole JSON documents under fixed keys. Every write
// replaces the full document.
type DocumentRepo interface {
	// Get returns the raw document stored under key. ok is false when no
	// document exists.
	Get(ctx context.Context, key string) (raw []byte, ok bool, err error)

	// Put replaces the document stored under key.
	Put(ctx context.Context, key string, raw []byte) error

	// Delete removes the document stored under key. Deleting a missing
	// document is not an error.
	Delete(ctx context.Context, key string) error
}

// QueryOpts configures history queries with filtering and pagination.
type QueryOpts struct {
	Limit      int       // max results (0 = unlimited)
	ScenarioID string    // exact match when non-empty
	From       time.Time // finished_at >= From
	To         time.Time // finished_at <= To
}

// ScenarioRunRecord is a finished scenario run.
type ScenarioRunRecord struct {
	ID           string
	ScenarioID   string
	Track        string
	Score        int
	MaxScore     int
	ChecksPassed int
	ChecksTotal  int
	FinishedAt   time.Time
}

// ScenarioRunRepo records finished scenario runs.
type ScenarioRunRepo interface {
	// Save stores a finished run.
	Save(ctx context.Context, rec *ScenarioRunRecord) error

	// List returns runs matching opts, newest first.
	List(ctx context.Context, opts QueryOpts) ([]ScenarioRunRecord, error)

	// DeleteAll removes every recorded run.
	DeleteAll(ctx context.Context) error
}
