package home

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/secjobcoach/internal/coach"
	"github.com/abhisek/secjobcoach/internal/content"
	"github.com/abhisek/secjobcoach/internal/progress"
	"github.com/abhisek/secjobcoach/internal/router"
	"github.com/abhisek/secjobcoach/internal/screens/flashcards"
	"github.com/abhisek/secjobcoach/internal/screens/trackpick"
	"github.com/abhisek/secjobcoach/internal/store"
)

func newTestCoach() *coach.Coach {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	return coach.New(coach.Options{
		Docs:     store.NewMemoryDocuments(),
		Location: time.UTC,
		Now:      func() time.Time { return now },
	})
}

func loaded(c *coach.Coach) (*HomeScreen, tea.Cmd) {
	h := New(c)
	_, cmd := h.Update(h.Init()())
	return h, cmd
}

func TestHomeScreen_PromptsForTrack(t *testing.T) {
	h, cmd := loaded(newTestCoach())
	if cmd == nil {
		t.Fatal("first load without a track should open the picker")
	}
	push, ok := cmd().(router.PushScreenMsg)
	if !ok {
		t.Fatal("expected PushScreenMsg")
	}
	if _, ok := push.Screen.(*trackpick.TrackPickScreen); !ok {
		t.Errorf("pushed %T, want *trackpick.TrackPickScreen", push.Screen)
	}

	// A second load does not prompt again.
	if _, cmd := h.Update(h.load()()); cmd != nil {
		t.Error("picker should only be pushed once")
	}
	for _, item := range h.menu.Items[:3] {
		if !item.Disabled {
			t.Errorf("%s should be disabled without a track", item.Label)
		}
	}
}

func TestHomeScreen_Dashboard(t *testing.T) {
	c := newTestCoach()
	ctx := context.Background()
	if _, err := c.Progress.SetTrack(ctx, content.TrackSOC); err != nil {
		t.Fatalf("SetTrack: %v", err)
	}
	for range 2 {
		if _, err := c.Progress.RecordAttempt(ctx, "quiz-4", progress.ResultIncorrect, c.Now()); err != nil {
			t.Fatalf("RecordAttempt: %v", err)
		}
	}

	h, cmd := loaded(c)
	if cmd != nil {
		t.Error("no picker expected with a track selected")
	}
	view := h.View(100, 30)
	for _, want := range []string{"SOC Analyst", "5 due / 5 total", "1 day(s)", "Weak topics"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
	if h.menu.Selected != 0 || h.menu.Items[0].Disabled {
		t.Error("mission should be selectable")
	}
}

func TestHomeScreen_OpeningRecordsMode(t *testing.T) {
	c := newTestCoach()
	ctx := context.Background()
	if _, err := c.Progress.SetTrack(ctx, content.TrackSOC); err != nil {
		t.Fatalf("SetTrack: %v", err)
	}
	h, _ := loaded(c)

	h.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	_, cmd := h.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("enter on Flashcards should open it")
	}
	push, ok := cmd().(router.PushScreenMsg)
	if !ok {
		t.Fatal("expected PushScreenMsg")
	}
	if _, ok := push.Screen.(*flashcards.FlashcardsScreen); !ok {
		t.Errorf("pushed %T, want *flashcards.FlashcardsScreen", push.Screen)
	}

	state, err := c.Progress.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if state.Mode != progress.ModeFlashcards {
		t.Errorf("Mode = %q, want flashcards", state.Mode)
	}
}

func TestHomeScreen_RestoresLastMode(t *testing.T) {
	c := newTestCoach()
	ctx := context.Background()
	if _, err := c.Progress.SetTrack(ctx, content.TrackSOC); err != nil {
		t.Fatalf("SetTrack: %v", err)
	}
	if _, err := c.Progress.SetMode(ctx, progress.ModeScenarios); err != nil {
		t.Fatalf("SetMode: %v", err)
	}

	h, _ := loaded(c)
	if got := h.menu.Items[h.menu.Selected].Label; got != "Scenarios" {
		t.Errorf("selected %q, want Scenarios", got)
	}
	if !strings.Contains(h.View(100, 30), "Last") {
		t.Error("dashboard should show the last mode")
	}

	// A reload after returning keeps the cursor where the learner left it.
	h.Update(tea.KeyPressMsg{Code: tea.KeyUp})
	h.Update(h.load()())
	if got := h.menu.Items[h.menu.Selected].Label; got != "Flashcards" {
		t.Errorf("after reload selected %q, want Flashcards", got)
	}
}

func TestHomeScreen_ResumeReloads(t *testing.T) {
	h, _ := loaded(newTestCoach())
	if _, cmd := h.Update(router.ResumedMsg{}); cmd == nil {
		t.Error("resume should reload the dashboard")
	}
}

func TestHomeScreen_Quit(t *testing.T) {
	h, _ := loaded(newTestCoach())
	_, cmd := h.Update(tea.KeyPressMsg{Code: 'q', Text: "q"})
	if cmd == nil {
		t.Fatal("q should quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected QuitMsg")
	}
}

func TestHomeScreen_Title(t *testing.T) {
	if got := New(newTestCoach()).Title(); got != "Dashboard" {
		t.Errorf("Title = %q, want %q", got, "Dashboard")
	}
}
