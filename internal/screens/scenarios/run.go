package scenarios

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/secjobcoach/internal/coach"
	"github.com/abhisek/secjobcoach/internal/content"
	"github.com/abhisek/secjobcoach/internal/router"
	"github.com/abhisek/secjobcoach/internal/scenario"
	"github.com/abhisek/secjobcoach/internal/screen"
	"github.com/abhisek/secjobcoach/internal/store"
	"github.com/abhisek/secjobcoach/internal/ui/components"
	"github.com/abhisek/secjobcoach/internal/ui/layout"
	"github.com/abhisek/secjobcoach/internal/ui/theme"
)

type phase int

const (
	phaseSteps phase = iota
	phaseTicket
	phaseResult
)

type studiedMsg struct {
	err error
}

type savedMsg struct {
	record *store.ScenarioRunRecord
	err    error
}

// RunScreen plays one scenario: steps, then the incident ticket.
type RunScreen struct {
	coach  *coach.Coach
	run    *scenario.Run
	phase  phase
	field  int
	input  components.TextInput
	record *store.ScenarioRunRecord
	saving bool
	err    error
}

var (
	_ screen.Screen        = (*RunScreen)(nil)
	_ screen.InputCapturer = (*RunScreen)(nil)
)

// NewRunScreen starts a run of sc.
func NewRunScreen(c *coach.Coach, sc *content.Scenario) *RunScreen {
	return &RunScreen{coach: c, run: scenario.NewRun(sc)}
}

func (s *RunScreen) Init() tea.Cmd {
	return nil
}

// Run returns the underlying scenario run.
func (s *RunScreen) Run() *scenario.Run {
	return s.run
}

// Capturing reports whether a ticket field is being edited.
func (s *RunScreen) Capturing() bool {
	return s.phase == phaseTicket
}

func (s *RunScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case studiedMsg:
		if msg.err != nil {
			s.err = msg.err
			return s, nil
		}
		return s, screen.StateChanged()

	case savedMsg:
		s.saving = false
		if msg.err != nil {
			s.err = msg.err
			return s, nil
		}
		s.record = msg.record
		s.phase = phaseResult
		return s, screen.StateChanged()

	case tea.KeyMsg:
		if s.saving {
			return s, nil
		}
		switch s.phase {
		case phaseSteps:
			return s.handleStepKey(msg.String())
		case phaseTicket:
			return s.handleTicketKey(msg)
		case phaseResult:
			if msg.String() == "enter" {
				return s, router.Pop()
			}
		}
		return s, nil
	}

	if s.phase == phaseTicket {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *RunScreen) handleStepKey(key string) (screen.Screen, tea.Cmd) {
	switch key {
	case "n", "right":
		if !s.run.Next() && s.run.Finished() {
			return s, s.openTicket(0)
		}
		return s, nil
	case "p", "left":
		s.run.Prev()
		return s, nil
	case "t":
		if s.run.Finished() {
			return s, s.openTicket(0)
		}
		return s, nil
	case "r":
		s.run.Reset()
		return s, nil
	}

	if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
		arts := s.run.Artifacts()
		if i := int(key[0] - '1'); i < len(arts) {
			id := arts[i].ID
			if s.run.Revealed(id) {
				s.run.Hide(id)
			} else {
				s.run.Reveal(id)
			}
		}
		return s, nil
	}

	step, ok := s.run.Current()
	if !ok {
		return s, nil
	}
	if _, chosen := s.run.Choose(step.ID, key); chosen {
		return s, s.markStudied()
	}
	return s, nil
}

func (s *RunScreen) handleTicketKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	fields := s.run.Scenario().TicketFields
	switch msg.String() {
	case "esc":
		s.commitField()
		s.phase = phaseSteps
		return s, nil
	case "up", "shift+tab":
		s.commitField()
		if s.field > 0 {
			return s, s.openTicket(s.field - 1)
		}
		return s, nil
	case "enter", "tab":
		s.commitField()
		if s.field < len(fields)-1 {
			return s, s.openTicket(s.field + 1)
		}
		return s, s.save()
	case "ctrl+s":
		s.commitField()
		return s, s.save()
	}
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

func (s *RunScreen) openTicket(field int) tea.Cmd {
	fields := s.run.Scenario().TicketFields
	if len(fields) == 0 {
		return s.save()
	}
	s.phase = phaseTicket
	s.field = field
	f := fields[field]
	s.input = components.NewTextInput(f.Hint, 0)
	s.input.SetValue(s.run.TicketField(f.Key))
	return s.input.Init()
}

func (s *RunScreen) commitField() {
	fields := s.run.Scenario().TicketFields
	if s.field < len(fields) {
		s.run.SetTicketField(fields[s.field].Key, s.input.Value())
	}
}

func (s *RunScreen) markStudied() tea.Cmd {
	c := s.coach
	return func() tea.Msg {
		_, err := c.Progress.MarkStudied(context.Background(), c.Now())
		return studiedMsg{err: err}
	}
}

func (s *RunScreen) save() tea.Cmd {
	s.saving = true
	c := s.coach
	run := s.run
	return func() tea.Msg {
		rec, err := c.Recorder.Save(context.Background(), run, c.Now())
		return savedMsg{record: rec, err: err}
	}
}

func (s *RunScreen) View(width, height int) string {
	cw := min(width-4, 76)
	sc := s.run.Scenario()

	var b strings.Builder
	b.WriteString(theme.Title.Render(sc.Title))
	b.WriteString("  " + theme.SeverityStyle(sc.Severity).Render(string(sc.Severity)))
	b.WriteString("\n")
	b.WriteString(components.NewMeter("Score", s.run.Score(), s.run.MaxScore(), cw).View())
	b.WriteString("\n\n")

	switch s.phase {
	case phaseSteps:
		b.WriteString(s.renderStep(cw))
	case phaseTicket:
		b.WriteString(s.renderTicket(cw))
	case phaseResult:
		b.WriteString(s.renderResult(cw))
	}

	if s.err != nil {
		b.WriteString("\n\n" + theme.Incorrect.Render(s.err.Error()))
	}
	return b.String()
}

func (s *RunScreen) renderStep(cw int) string {
	step, ok := s.run.Current()
	if !ok {
		return components.Panel("All steps answered", "Press t to write the incident ticket.", cw)
	}
	sc := s.run.Scenario()

	var b strings.Builder
	if s.run.StepIndex() == 0 {
		b.WriteString(theme.Body.Render(layout.Wrap(sc.Context, cw)) + "\n\n")
	}
	b.WriteString(theme.Label.Render(fmt.Sprintf("Step %d/%d  %s", s.run.StepIndex()+1, len(sc.Steps), step.Title)))
	b.WriteString("\n" + theme.Body.Render(layout.Wrap(step.Prompt, cw)) + "\n\n")

	for i, a := range s.run.Artifacts() {
		head := fmt.Sprintf("[%d] %s (%s)", i+1, a.Title, a.Kind)
		if s.run.Revealed(a.ID) {
			b.WriteString(theme.Label.Render(head) + "\n")
			b.WriteString(theme.Evidence.Width(cw).Render(a.Body) + "\n")
		} else {
			b.WriteString(theme.Hint.Render(head+"  hidden") + "\n")
		}
	}
	b.WriteString("\n")

	answer, answered := s.run.Answer(step.ID)
	for _, o := range step.Options {
		line := fmt.Sprintf("%s)  %s", o.ID, o.Label)
		switch {
		case answered && o.ID == answer.OptionID && o.Score == content.MaxOptionScore:
			line = theme.Correct.Render(line)
		case answered && o.ID == answer.OptionID:
			line = theme.Incorrect.Render(line)
		case answered:
			line = theme.Subtitle.Render(line)
		default:
			line = theme.Unselected.Render(line)
		}
		b.WriteString(line + "\n")
	}

	if answered {
		if o, ok := step.Option(answer.OptionID); ok {
			b.WriteString("\n" + components.Panel(fmt.Sprintf("Feedback (+%d)", o.Score), layout.Wrap(o.Feedback, cw-4), cw))
		}
	}
	return b.String()
}

func (s *RunScreen) renderTicket(cw int) string {
	fields := s.run.Scenario().TicketFields
	var b strings.Builder
	b.WriteString(theme.Label.Render(fmt.Sprintf("Incident ticket  field %d/%d", s.field+1, len(fields))))
	b.WriteString("\n\n")
	for i, f := range fields {
		switch {
		case i == s.field:
			b.WriteString(theme.Selected.Render("▸ "+f.Key) + "\n  " + s.input.View() + "\n")
		case s.run.TicketField(f.Key) != "":
			b.WriteString(theme.Unselected.Render("  "+f.Key+": ") + layout.Truncate(s.run.TicketField(f.Key), cw-len(f.Key)-6) + "\n")
		default:
			b.WriteString(theme.Hint.Render("  "+f.Key) + "\n")
		}
	}
	b.WriteString("\n" + renderChecks(s.run.TicketChecks()))
	return b.String()
}

func (s *RunScreen) renderResult(cw int) string {
	var body strings.Builder
	if s.record != nil {
		body.WriteString(fmt.Sprintf("Score %d/%d\nTicket checks %d/%d\n\n",
			s.record.Score, s.record.MaxScore, s.record.ChecksPassed, s.record.ChecksTotal))
	}
	body.WriteString(renderChecks(s.run.TicketChecks()))
	return components.Panel("Run recorded", strings.TrimRight(body.String(), "\n"), cw)
}

func renderChecks(checks []scenario.Check) string {
	var b strings.Builder
	for _, c := range checks {
		if c.Pass {
			b.WriteString(theme.Correct.Render("✓ "+c.Label) + "\n")
		} else {
			b.WriteString(theme.Incorrect.Render("✗ "+c.Label) + "\n")
		}
	}
	return b.String()
}

func (s *RunScreen) Title() string {
	return "Scenario"
}

// KeyHints returns the footer hints for the current phase.
func (s *RunScreen) KeyHints() []layout.KeyHint {
	switch s.phase {
	case phaseTicket:
		return []layout.KeyHint{
			{Key: "enter", Description: "Next field"},
			{Key: "↑", Description: "Previous"},
			{Key: "ctrl+s", Description: "Submit"},
			{Key: "esc", Description: "Steps"},
		}
	case phaseResult:
		return []layout.KeyHint{{Key: "enter", Description: "Done"}}
	}
	return []layout.KeyHint{
		{Key: "a-c", Description: "Answer"},
		{Key: "1-9", Description: "Evidence"},
		{Key: "n/p", Description: "Next/Prev"},
		{Key: "esc", Description: "Back"},
	}
}
