package progress

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/secjobcoach/internal/content"
	"github.com/abhisek/secjobcoach/internal/day"
	"github.com/abhisek/secjobcoach/internal/store"
)

func TestDocumentStateRepo_Absent(t *testing.T) {
	repo := NewDocumentStateRepo(store.NewMemoryDocuments(), nil)
	got, err := repo.LoadState(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Default(), got)
}

func TestDocumentStateRepo_WireFormat(t *testing.T) {
	docs := store.NewMemoryDocuments()
	repo := NewDocumentStateRepo(docs, nil)
	ctx := context.Background()

	track := content.TrackSOC
	last := day.New(2026, 3, 10)
	require.NoError(t, repo.SaveState(ctx, AppState{
		SelectedTrack: &track,
		Mode:          ModeFlashcards,
		Attempts:      []Attempt{{QuestionID: "quiz-4", TS: 1773140400000, Result: ResultCorrect}},
		Streak:        Streak{LastStudyDay: &last, Count: 3},
	}))

	raw, ok, err := docs.Get(ctx, store.AppStateKey)
	require.NoError(t, err)
	require.True(t, ok)
	assert.JSONEq(t, `{
		"selectedTrack":"soc",
		"mode":"flashcards",
		"attempts":[{"questionId":"quiz-4","ts":1773140400000,"result":"correct"}],
		"streak":{"lastStudyDay":"2026-03-10","count":3}
	}`, string(raw))

	require.NoError(t, repo.SaveState(ctx, Default()))
	raw, _, _ = docs.Get(ctx, store.AppStateKey)
	assert.JSONEq(t, `{"selectedTrack":null,"mode":"mission","attempts":[],"streak":{"lastStudyDay":null,"count":0}}`, string(raw))
}

func TestDocumentStateRepo_ShallowMerge(t *testing.T) {
	soc := content.TrackSOC
	last := day.New(2026, 2, 1)

	tests := []struct {
		name string
		raw  string
		want AppState
	}{
		{
			name: "not json",
			raw:  `not json`,
			want: Default(),
		},
		{
			name: "array",
			raw:  `[]`,
			want: Default(),
		},
		{
			name: "track only",
			raw:  `{"selectedTrack":"soc"}`,
			want: func() AppState { s := Default(); s.SelectedTrack = &soc; return s }(),
		},
		{
			name: "null attempts keep default",
			raw:  `{"mode":"scenarios","attempts":null}`,
			want: func() AppState { s := Default(); s.Mode = ModeScenarios; return s }(),
		},
		{
			name: "unknown mode",
			raw:  `{"mode":"exam"}`,
			want: Default(),
		},
		{
			name: "bad field type keeps default",
			raw:  `{"attempts":"lots","streak":{"lastStudyDay":"2026-02-01","count":2}}`,
			want: func() AppState { s := Default(); s.Streak = Streak{LastStudyDay: &last, Count: 2}; return s }(),
		},
		{
			name: "bad streak date",
			raw:  `{"streak":{"lastStudyDay":"yesterday","count":2}}`,
			want: Default(),
		},
		{
			name: "extra fields ignored",
			raw:  `{"selectedTrack":"soc","theme":"dark"}`,
			want: func() AppState { s := Default(); s.SelectedTrack = &soc; return s }(),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			docs := store.NewMemoryDocuments()
			require.NoError(t, docs.Put(context.Background(), store.AppStateKey, []byte(tt.raw)))

			got, err := NewDocumentStateRepo(docs, nil).LoadState(context.Background())
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
