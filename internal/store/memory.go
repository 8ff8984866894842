package store

import (
	"context"
	"sort"
	"sync"
)

// MemoryDocuments is an in-memory DocumentRepo for tests and dry runs.
type MemoryDocuments struct {
	mu   sync.Mutex
	docs map[string][]byte

	// Puts counts successful Put calls.
	Puts int
}

var _ DocumentRepo = (*MemoryDocuments)(nil)

// NewMemoryDocuments returns an empty MemoryDocuments.
func NewMemoryDocuments() *MemoryDocuments {
	return &MemoryDocuments{docs: make(map[string][]byte)}
}

func (m *MemoryDocuments) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	raw, ok := m.docs[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), raw...), true, nil
}

func (m *MemoryDocuments) Put(_ context.Context, key string, raw []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.docs[key] = append([]byte(nil), raw...)
	m.Puts++
	return nil
}

func (m *MemoryDocuments) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.docs, key)
	return nil
}

// MemoryScenarioRuns is an in-memory ScenarioRunRepo.
type MemoryScenarioRuns struct {
	mu   sync.Mutex
	runs []ScenarioRunRecord
}

var _ ScenarioRunRepo = (*MemoryScenarioRuns)(nil)

func (m *MemoryScenarioRuns) Save(_ context.Context, rec *ScenarioRunRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.runs = append(m.runs, *rec)
	return nil
}

func (m *MemoryScenarioRuns) List(_ context.Context, opts QueryOpts) ([]ScenarioRunRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []ScenarioRunRecord
	for _, r := range m.runs {
		if opts.ScenarioID != "" && r.ScenarioID != opts.ScenarioID {
			continue
		}
		if !opts.From.IsZero() && r.FinishedAt.Before(opts.From) {
			continue
		}
		if !opts.To.IsZero() && r.FinishedAt.After(opts.To) {
			continue
		}
		out = append(out, r)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].FinishedAt.After(out[j].FinishedAt)
	})
	if opts.Limit > 0 && len(out) > opts.Limit {
		out = out[:opts.Limit]
	}
	return out, nil
}

func (m *MemoryScenarioRuns) DeleteAll(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.runs = nil
	return nil
}
