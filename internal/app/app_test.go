package app

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/secjobcoach/internal/coach"
	"github.com/abhisek/secjobcoach/internal/content"
	"github.com/abhisek/secjobcoach/internal/router"
	"github.com/abhisek/secjobcoach/internal/screen"
	"github.com/abhisek/secjobcoach/internal/screens/trackpick"
	"github.com/abhisek/secjobcoach/internal/store"
	"github.com/abhisek/secjobcoach/internal/ui/layout"
)

// capturingScreen is a stub screen that reports input capture.
type capturingScreen struct {
	capturing bool
	keys      []string
}

func (s *capturingScreen) Init() tea.Cmd { return nil }
func (s *capturingScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok {
		s.keys = append(s.keys, k.String())
	}
	return s, nil
}
func (s *capturingScreen) View(width, height int) string { return "stub" }
func (s *capturingScreen) Title() string                 { return "Stub" }
func (s *capturingScreen) Capturing() bool               { return s.capturing }

func newTestModel(t *testing.T) AppModel {
	t.Helper()
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	c := coach.New(coach.Options{
		Docs:     store.NewMemoryDocuments(),
		Location: time.UTC,
		Now:      func() time.Time { return now },
	})
	return newAppModel(Options{Coach: c})
}

func update(m AppModel, msg tea.Msg) (AppModel, tea.Cmd) {
	next, cmd := m.Update(msg)
	return next.(AppModel), cmd
}

func TestApp_EscPopsScreen(t *testing.T) {
	m := newTestModel(t)
	m.router.Push(&capturingScreen{})

	m, cmd := update(m, tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd == nil {
		t.Fatal("esc should pop")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("expected PopScreenMsg")
	}
	if m.router.Depth() != 2 {
		t.Errorf("Depth = %d, want 2 until the pop is delivered", m.router.Depth())
	}
}

func TestApp_EscWhileCapturing(t *testing.T) {
	m := newTestModel(t)
	stub := &capturingScreen{capturing: true}
	m.router.Push(stub)

	m, _ = update(m, tea.KeyPressMsg{Code: tea.KeyEscape})
	if m.router.Depth() != 2 {
		t.Errorf("Depth = %d, want 2", m.router.Depth())
	}
	if len(stub.keys) != 1 || stub.keys[0] != "esc" {
		t.Errorf("screen keys = %v, want [esc]", stub.keys)
	}
}

func TestApp_EscAtRoot(t *testing.T) {
	m := newTestModel(t)
	if _, cmd := update(m, tea.KeyPressMsg{Code: tea.KeyEscape}); cmd != nil {
		t.Error("esc on the home screen should do nothing")
	}
}

func TestApp_CtrlCQuits(t *testing.T) {
	m := newTestModel(t)
	_, cmd := update(m, tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl})
	if cmd == nil {
		t.Fatal("ctrl+c should quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected QuitMsg")
	}
}

func TestApp_StatusRefresh(t *testing.T) {
	m := newTestModel(t)
	if _, err := m.coach.Progress.SetTrack(context.Background(), content.TrackSOC); err != nil {
		t.Fatalf("SetTrack: %v", err)
	}

	_, cmd := update(m, screen.StateChangedMsg{})
	if cmd == nil {
		t.Fatal("state change should reload the status")
	}
	m, _ = update(m, cmd())

	want := layout.HeaderStatus{Track: "SOC Analyst", Due: 5}
	if m.status != want {
		t.Errorf("status = %+v, want %+v", m.status, want)
	}
}

func TestApp_ViewRendersActiveScreen(t *testing.T) {
	m := newTestModel(t)
	m, _ = update(m, tea.WindowSizeMsg{Width: 100, Height: 30})
	m.router.Push(trackpick.New(m.coach))

	_ = m.View()
	if !strings.Contains(m.router.View(100, 24), "Choose your track") {
		t.Error("router should render the active screen")
	}
	if m.router.Active().Title() != "Track" {
		t.Errorf("active title = %q, want %q", m.router.Active().Title(), "Track")
	}
}
