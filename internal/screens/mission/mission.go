package mission

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/secjobcoach/internal/coach"
	"github.com/abhisek/secjobcoach/internal/content"
	daily "github.com/abhisek/secjobcoach/internal/mission"
	"github.com/abhisek/secjobcoach/internal/progress"
	"github.com/abhisek/secjobcoach/internal/router"
	"github.com/abhisek/secjobcoach/internal/screen"
	"github.com/abhisek/secjobcoach/internal/ui/components"
	"github.com/abhisek/secjobcoach/internal/ui/layout"
	"github.com/abhisek/secjobcoach/internal/ui/theme"
)

// noAnswerKey is shown for short questions that carry no answer.
const noAnswerKey = "No answer key provided yet."

type stage int

const (
	stageLoading stage = iota
	stageLearn
	stagePractice
	stageDrill
	stageDone
)

type missionMsg struct {
	mission daily.Mission
	ok      bool
	err     error
}

type attemptSavedMsg struct {
	index  int
	result progress.Result
	err    error
}

type studiedMsg struct {
	err error
}

// MissionScreen walks through today's mission: learn, practice, drill.
type MissionScreen struct {
	coach   *coach.Coach
	mission daily.Mission
	ok      bool

	stage    stage
	index    int
	choice   components.MultiChoice
	input    components.TextInput
	typing   bool
	revealed bool
	results  []progress.Result
	saving   bool
	err      error
}

var (
	_ screen.Screen          = (*MissionScreen)(nil)
	_ screen.InputCapturer   = (*MissionScreen)(nil)
	_ screen.KeyHintProvider = (*MissionScreen)(nil)
)

// New creates a mission screen for the learner's selected track.
func New(c *coach.Coach) *MissionScreen {
	return &MissionScreen{coach: c}
}

func (s *MissionScreen) Init() tea.Cmd {
	c := s.coach
	return func() tea.Msg {
		st, err := c.Progress.Load(context.Background())
		if err != nil {
			return missionMsg{err: err}
		}
		m, ok := c.Mission(st.Track())
		return missionMsg{mission: m, ok: ok}
	}
}

// Capturing reports whether a free-text answer is being typed.
func (s *MissionScreen) Capturing() bool {
	return s.typing
}

func (s *MissionScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case missionMsg:
		if msg.err != nil {
			s.err = msg.err
			return s, nil
		}
		s.mission = msg.mission
		s.ok = msg.ok
		s.results = make([]progress.Result, len(msg.mission.Practice))
		s.stage = stageLearn
		return s, nil

	case attemptSavedMsg:
		s.saving = false
		if msg.err != nil {
			s.err = msg.err
			return s, nil
		}
		s.results[msg.index] = msg.result
		return s, screen.StateChanged()

	case studiedMsg:
		s.saving = false
		if msg.err != nil {
			s.err = msg.err
			return s, nil
		}
		return s, screen.StateChanged()

	case tea.KeyMsg:
		if s.saving {
			return s, nil
		}
		return s.handleKey(msg)
	}

	if s.typing {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *MissionScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()
	if !s.ok {
		return s, nil
	}
	if s.typing && key == "esc" {
		key = "enter"
	}

	switch s.stage {
	case stageLearn:
		if key == "enter" || key == "n" {
			return s, s.advance()
		}
		return s, nil

	case stageDone:
		if key == "enter" {
			return s, router.Pop()
		}
		return s, nil

	case stagePractice:
		return s.handlePractice(msg, key)

	case stageDrill:
		return s.handleDrill(msg, key)
	}
	return s, nil
}

func (s *MissionScreen) handlePractice(msg tea.KeyMsg, key string) (screen.Screen, tea.Cmd) {
	q := s.current()

	if s.results[s.index] != "" {
		if key == "enter" || key == "n" {
			return s, s.advance()
		}
		return s, nil
	}

	if !s.revealed && key == "tab" {
		s.typing = false
		s.revealed = true
		return s, s.record(progress.ResultSkipped)
	}

	if _, isQuiz := q.(*content.Quiz); isQuiz {
		if s.revealed {
			return s, nil
		}
		var cmd tea.Cmd
		s.choice, cmd = s.choice.Update(msg)
		if s.choice.Submitted {
			s.revealed = true
			result := progress.ResultIncorrect
			if s.choice.IsCorrect() {
				result = progress.ResultCorrect
			}
			return s, tea.Batch(cmd, s.record(result))
		}
		return s, cmd
	}

	if s.typing {
		if key == "enter" {
			s.typing = false
			s.revealed = true
			return s, nil
		}
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}

	switch key {
	case "c":
		return s, s.record(progress.ResultCorrect)
	case "i":
		return s, s.record(progress.ResultIncorrect)
	case "s":
		return s, s.record(progress.ResultSkipped)
	}
	return s, nil
}

func (s *MissionScreen) handleDrill(msg tea.KeyMsg, key string) (screen.Screen, tea.Cmd) {
	if s.typing {
		switch key {
		case "enter":
			s.typing = false
			s.revealed = true
			return s, nil
		case "tab":
			return s, s.advance()
		}
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}
	if key == "enter" || key == "n" {
		return s, s.advance()
	}
	return s, nil
}

// record saves the result of the current practice question.
func (s *MissionScreen) record(result progress.Result) tea.Cmd {
	s.saving = true
	c := s.coach
	index := s.index
	id := s.current().QuestionID()
	return func() tea.Msg {
		_, err := c.Progress.RecordAttempt(context.Background(), id, result, c.Now())
		return attemptSavedMsg{index: index, result: result, err: err}
	}
}

// advance moves to the next question, crossing stage boundaries.
func (s *MissionScreen) advance() tea.Cmd {
	switch s.stage {
	case stageLearn:
		s.stage, s.index = stagePractice, 0
	case stagePractice, stageDrill:
		s.index++
	}

	if s.stage == stagePractice && s.index >= len(s.mission.Practice) {
		s.stage, s.index = stageDrill, 0
	}
	if s.stage == stageDrill && s.index >= len(s.mission.Drill) {
		s.stage, s.index = stageDone, 0
		s.typing = false
		return s.finish()
	}
	return s.prepare()
}

func (s *MissionScreen) finish() tea.Cmd {
	s.saving = true
	c := s.coach
	return func() tea.Msg {
		_, err := c.Progress.MarkStudied(context.Background(), c.Now())
		return studiedMsg{err: err}
	}
}

// prepare resets the answer widgets for the current question.
func (s *MissionScreen) prepare() tea.Cmd {
	s.revealed = false
	q := s.current()
	if quiz, ok := q.(*content.Quiz); ok {
		s.typing = false
		s.choice = components.NewMultiChoice(quiz.Choices, quiz.AnswerIndex())
		return nil
	}
	s.typing = true
	s.input = components.NewTextInput("Type your answer, enter to reveal", 500)
	return s.input.Init()
}

func (s *MissionScreen) current() content.Question {
	switch s.stage {
	case stagePractice:
		return s.mission.Practice[s.index]
	case stageDrill:
		return s.mission.Drill[s.index]
	}
	return nil
}

// Stage names the current part of the mission.
func (s *MissionScreen) Stage() string {
	switch s.stage {
	case stageLearn:
		return "learn"
	case stagePractice:
		return "practice"
	case stageDrill:
		return "drill"
	case stageDone:
		return "done"
	}
	return "loading"
}

// Results returns the recorded result of each practice question, "" while
// unanswered.
func (s *MissionScreen) Results() []progress.Result {
	return append([]progress.Result(nil), s.results...)
}

func (s *MissionScreen) View(width, height int) string {
	cw := min(width-4, 76)

	if s.err != nil {
		return theme.Incorrect.Render("Mission unavailable: " + s.err.Error())
	}
	if s.stage == stageLoading {
		return theme.Hint.Render("Loading...")
	}
	if !s.ok {
		return theme.Body.Render("Pick a track from the dashboard to get a mission.")
	}

	m := s.mission
	var b strings.Builder
	b.WriteString(theme.Title.Render(m.Track.Name))
	b.WriteString("  " + theme.Subtitle.Render(m.Date.String()))
	b.WriteString("\n\n")

	switch s.stage {
	case stageLearn:
		var body strings.Builder
		for _, bullet := range m.Learn.Bullets {
			body.WriteString("• " + layout.Wrap(bullet, cw-8) + "\n")
		}
		b.WriteString(components.Panel(m.Learn.Title, strings.TrimRight(body.String(), "\n"), cw))

	case stagePractice:
		b.WriteString(theme.Label.Render(fmt.Sprintf("Practice %d/%d", s.index+1, len(m.Practice))))
		b.WriteString("\n\n")
		b.WriteString(s.renderQuestion(cw))

	case stageDrill:
		b.WriteString(theme.Label.Render(fmt.Sprintf("Interview drill %d/%d", s.index+1, len(m.Drill))))
		b.WriteString("\n\n")
		b.WriteString(s.renderQuestion(cw))

	case stageDone:
		b.WriteString(s.renderDone(cw))
	}
	return b.String()
}

func (s *MissionScreen) renderQuestion(cw int) string {
	q := s.current()
	var b strings.Builder
	b.WriteString(theme.Body.Render(layout.Wrap(q.QuestionPrompt(), cw)))
	b.WriteString("\n\n")

	if _, ok := q.(*content.Quiz); ok {
		b.WriteString(s.choice.View())
	} else if s.typing {
		b.WriteString(s.input.View())
	} else if v := s.input.Value(); v != "" {
		b.WriteString(theme.Hint.Render("Your answer: ") + theme.Body.Render(layout.Wrap(v, cw-13)))
	}

	if s.revealed {
		b.WriteString("\n\n")
		if rubric := content.Rubric(q); len(rubric) > 0 {
			var body strings.Builder
			for _, r := range rubric {
				body.WriteString("• " + r + "\n")
			}
			b.WriteString(components.Panel("A strong answer covers", strings.TrimRight(body.String(), "\n"), cw))
		} else if _, quiz := q.(*content.Quiz); !quiz {
			key := content.AnswerKey(q)
			if key == "" {
				key = noAnswerKey
			}
			b.WriteString(components.Panel("Answer key", layout.Wrap(key, cw-4), cw))
		}
	}

	if s.stage == stagePractice {
		if r := s.results[s.index]; r != "" {
			b.WriteString("\n\n" + renderResult(r))
		}
	}
	return b.String()
}

func (s *MissionScreen) renderDone(cw int) string {
	var correct, incorrect, skipped int
	for _, r := range s.results {
		switch r {
		case progress.ResultCorrect:
			correct++
		case progress.ResultIncorrect:
			incorrect++
		case progress.ResultSkipped:
			skipped++
		}
	}
	body := fmt.Sprintf("Correct %d   Incorrect %d   Skipped %d\n\nCome back tomorrow for a new set.",
		correct, incorrect, skipped)
	return components.Panel("Mission complete", body, cw)
}

func renderResult(r progress.Result) string {
	switch r {
	case progress.ResultCorrect:
		return theme.Correct.Render("✓ correct")
	case progress.ResultIncorrect:
		return theme.Incorrect.Render("✗ incorrect")
	}
	return theme.Hint.Render("skipped")
}

func (s *MissionScreen) Title() string {
	return "Mission"
}

// KeyHints returns the footer hints for the current stage.
func (s *MissionScreen) KeyHints() []layout.KeyHint {
	switch {
	case s.stage == stageLearn:
		return []layout.KeyHint{{Key: "enter", Description: "Start practice"}, {Key: "esc", Description: "Back"}}
	case s.stage == stageDone:
		return []layout.KeyHint{{Key: "enter", Description: "Dashboard"}}
	case s.stage == stagePractice && s.results[s.index] != "":
		return []layout.KeyHint{{Key: "enter", Description: "Next"}, {Key: "esc", Description: "Back"}}
	case s.stage == stagePractice && s.revealed:
		return []layout.KeyHint{
			{Key: "c", Description: "Got it"},
			{Key: "i", Description: "Missed it"},
			{Key: "s", Description: "Skip"},
		}
	case s.typing:
		return []layout.KeyHint{
			{Key: "enter", Description: "Reveal"},
			{Key: "tab", Description: "Skip"},
			{Key: "esc", Description: "Stop typing"},
		}
	case s.stage == stageDrill:
		return []layout.KeyHint{{Key: "enter", Description: "Next"}, {Key: "esc", Description: "Back"}}
	}
	return []layout.KeyHint{
		{Key: "a-d", Description: "Choose"},
		{Key: "enter", Description: "Submit"},
		{Key: "tab", Description: "Skip"},
	}
}
