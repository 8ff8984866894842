package scenarios

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
	"github.com/abhisek/secjobcoach/internal/store"
)

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func newTestCoach(t *testing.T) *coach.Coach {
	t.Helper()
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	c := coach.New(coach.Options{
		Docs:     store.NewMemoryDocuments(),
		Runs:     &store.MemoryScenarioRuns{},
		Location: time.UTC,
		Now:      func() time.Time { return now },
	})
	if _, err := c.Progress.SetTrack(context.Background(), content.TrackSOC); err != nil {
		t.Fatalf("SetTrack: %v", err)
	}
	return c
}

func run(s screen.Screen, cmd tea.Cmd) {
	if cmd == nil {
		return
	}
	s.Update(cmd())
}

func typeText(s screen.Screen, text string) {
	for _, r := range text {
		s.Update(keyPress(r))
	}
}

func newRunScreen(t *testing.T, c *coach.Coach) *RunScreen {
	t.Helper()
	sc, ok := c.Catalog.Scenario("soc-impossible-travel")
	if !ok {
		t.Fatal("scenario soc-impossible-travel missing")
	}
	return NewRunScreen(c, sc)
}

func TestListScreen_Loads(t *testing.T) {
	c := newTestCoach(t)
	s := New(c)
	run(s, s.Init())

	if len(s.scenarios) != 2 {
		t.Fatalf("scenarios = %d, want 2", len(s.scenarios))
	}
	if !strings.Contains(s.View(80, 24), s.scenarios[0].Title) {
		t.Error("list should show scenario titles")
	}

	_, cmd := s.Update(specialKey(tea.KeyEnter))
	if cmd == nil {
		t.Fatal("enter should open the scenario")
	}
	push, ok := cmd().(router.PushScreenMsg)
	if !ok {
		t.Fatal("expected PushScreenMsg")
	}
	rs, ok := push.Screen.(*RunScreen)
	if !ok {
		t.Fatalf("pushed %T, want *RunScreen", push.Screen)
	}
	if rs.Run().Scenario().ID != s.scenarios[0].ID {
		t.Errorf("run scenario = %s, want %s", rs.Run().Scenario().ID, s.scenarios[0].ID)
	}
}

func TestListScreen_ShowsBestScore(t *testing.T) {
	c := newTestCoach(t)
	if _, err := c.Recorder.Save(context.Background(), finishedRun(t, c).Run(), c.Now()); err != nil {
		t.Fatalf("Save: %v", err)
	}

	s := New(c)
	run(s, s.Init())
	if !strings.Contains(s.View(80, 40), "best 9/9") {
		t.Error("list should show the best score")
	}
}

func TestRunScreen_RevealArtifacts(t *testing.T) {
	s := newRunScreen(t, newTestCoach(t))

	s.Update(keyPress('1'))
	if !s.Run().Revealed("g1") {
		t.Error("1 should reveal the first artifact")
	}
	s.Update(keyPress('1'))
	if s.Run().Revealed("g1") {
		t.Error("1 again should hide it")
	}
	s.Update(keyPress('9'))
	if len(s.Run().Answers()) != 0 {
		t.Error("out-of-range artifact key should change nothing")
	}
}

func TestRunScreen_AnswerOncePerStep(t *testing.T) {
	c := newTestCoach(t)
	s := newRunScreen(t, c)

	_, cmd := s.Update(keyPress('b'))
	if cmd == nil {
		t.Fatal("answering should mark the day studied")
	}
	run(s, cmd)
	if _, cmd := s.Update(keyPress('a')); cmd != nil {
		t.Error("second answer on the same step should be ignored")
	}
	if s.Run().Score() != 1 {
		t.Errorf("Score = %d, want 1", s.Run().Score())
	}
	if !strings.Contains(s.View(80, 40), "Feedback") {
		t.Error("answered step should show feedback")
	}

	st, _ := c.Progress.Load(context.Background())
	if st.Streak.Count != 1 {
		t.Errorf("streak = %d, want 1", st.Streak.Count)
	}
}

func TestRunScreen_NextRequiresAnswer(t *testing.T) {
	s := newRunScreen(t, newTestCoach(t))
	s.Update(keyPress('n'))
	if s.Run().StepIndex() != 0 {
		t.Errorf("StepIndex = %d, want 0", s.Run().StepIndex())
	}
}

func TestRunScreen_FullRunWithTicket(t *testing.T) {
	c := newTestCoach(t)
	s := newRunScreen(t, c)

	for _, opt := range []rune{'a', 'b', 'a'} {
		_, cmd := s.Update(keyPress(opt))
		run(s, cmd)
		s.Update(keyPress('n'))
	}
	if s.Run().Score() != 6 {
		t.Errorf("Score = %d, want 6", s.Run().Score())
	}

	s.Update(keyPress('n'))
	if !s.Capturing() {
		t.Fatal("ticket entry should capture input")
	}

	notes := []string{
		"impossible travel from frankfurt ip",
		"high",
		"2026-03-10t09:14 sign-in",
		"new device and user agent",
		"revoke sessions and reset password",
	}
	for _, note := range notes {
		typeText(s, note)
		s.Update(specialKey(tea.KeyEnter))
	}
	_, cmd := s.Update(specialKey(tea.KeyEnter))
	if cmd == nil {
		t.Fatal("last field should submit the ticket")
	}
	run(s, cmd)

	if s.phase != phaseResult {
		t.Fatalf("phase = %d, want result", s.phase)
	}
	if s.record == nil || s.record.Score != 6 || s.record.MaxScore != 9 {
		t.Fatalf("record = %+v, want score 6/9", s.record)
	}
	if s.record.ChecksPassed != 4 {
		t.Errorf("ChecksPassed = %d, want 4", s.record.ChecksPassed)
	}
	if got := s.Run().TicketField("Summary"); got != notes[0] {
		t.Errorf("Summary = %q, want %q", got, notes[0])
	}

	history, err := c.Recorder.History(context.Background(), store.QueryOpts{})
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(history) != 1 {
		t.Errorf("history = %d runs, want 1", len(history))
	}

	if _, cmd := s.Update(specialKey(tea.KeyEnter)); cmd == nil {
		t.Error("enter on the result should close the run")
	}
}

func TestRunScreen_EscLeavesTicket(t *testing.T) {
	s := newRunScreen(t, newTestCoach(t))
	for _, opt := range []rune{'a', 'a', 'a'} {
		s.Update(keyPress(opt))
		s.Update(keyPress('n'))
	}
	s.Update(keyPress('t'))
	typeText(s, "draft")
	s.Update(specialKey(tea.KeyEscape))

	if s.Capturing() {
		t.Error("esc should return to the steps")
	}
	if got := s.Run().TicketField("Summary"); got != "draft" {
		t.Errorf("Summary = %q, want %q", got, "draft")
	}
}

func finishedRun(t *testing.T, c *coach.Coach) *RunScreen {
	t.Helper()
	s := newRunScreen(t, c)
	for _, opt := range []rune{'a', 'a', 'a'} {
		s.Update(keyPress(opt))
		s.Update(keyPress('n'))
	}
	return s
}
