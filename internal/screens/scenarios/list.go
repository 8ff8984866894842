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

type listMsg struct {
	scenarios []*content.Scenario
	best      map[string]int
	recent    []store.ScenarioRunRecord
	err       error
}

// recentRuns is how many past runs the list shows.
const recentRuns = 5

// ListScreen shows the scenarios of the selected track.
type ListScreen struct {
	coach     *coach.Coach
	scenarios []*content.Scenario
	best      map[string]int
	recent    []store.ScenarioRunRecord
	menu      components.Menu
	loaded    bool
	err       error
}

var _ screen.Screen = (*ListScreen)(nil)

// New creates the scenario list.
func New(c *coach.Coach) *ListScreen {
	return &ListScreen{coach: c}
}

func (s *ListScreen) Init() tea.Cmd {
	return s.load()
}

func (s *ListScreen) load() tea.Cmd {
	c := s.coach
	return func() tea.Msg {
		ctx := context.Background()
		st, err := c.Progress.Load(ctx)
		if err != nil {
			return listMsg{err: err}
		}
		runs, err := c.Recorder.History(ctx, store.QueryOpts{})
		if err != nil {
			return listMsg{err: err}
		}
		recent := runs
		if len(recent) > recentRuns {
			recent = recent[:recentRuns]
		}
		return listMsg{
			scenarios: c.Catalog.Scenarios(st.Track()),
			best:      scenario.Best(runs),
			recent:    recent,
		}
	}
}

func (s *ListScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case listMsg:
		if msg.err != nil {
			s.err = msg.err
			return s, nil
		}
		s.scenarios = msg.scenarios
		s.best = msg.best
		s.recent = msg.recent
		s.loaded = true
		s.buildMenu()
		return s, nil

	case router.ResumedMsg:
		return s, s.load()

	case tea.KeyMsg:
		var cmd tea.Cmd
		s.menu, cmd = s.menu.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *ListScreen) buildMenu() {
	c := s.coach
	selected := s.menu.Selected
	items := make([]components.MenuItem, len(s.scenarios))
	for i, sc := range s.scenarios {
		detail := string(sc.Severity)
		if best, ok := s.best[sc.ID]; ok {
			detail += fmt.Sprintf(" · best %d/%d", best, sc.MaxScore())
		}
		items[i] = components.MenuItem{
			Label:  sc.Title,
			Detail: detail,
			Action: func() tea.Cmd {
				return router.Push(NewRunScreen(c, sc))
			},
		}
	}
	s.menu = components.NewMenu(items)
	if selected < len(items) {
		s.menu.Selected = selected
	}
}

func (s *ListScreen) View(width, height int) string {
	cw := min(width-4, 76)

	if s.err != nil {
		return theme.Incorrect.Render("Scenarios unavailable: " + s.err.Error())
	}
	if !s.loaded {
		return theme.Hint.Render("Loading...")
	}

	var b strings.Builder
	b.WriteString(theme.Title.Render("Incident scenarios"))
	b.WriteString("\n\n")
	if len(s.scenarios) == 0 {
		b.WriteString(theme.Body.Render("No scenarios for this track yet."))
		return b.String()
	}
	b.WriteString(s.menu.View())

	if sel := s.menu.Selected; sel < len(s.scenarios) {
		sc := s.scenarios[sel]
		b.WriteString("\n")
		b.WriteString(components.Panel("Context", layout.Wrap(sc.Context, cw-4), cw))
	}

	if len(s.recent) > 0 {
		var lines []string
		for _, r := range s.recent {
			lines = append(lines, fmt.Sprintf("%s  %-26s %d/%d  checks %d/%d",
				r.FinishedAt.Format("2006-01-02 15:04"), layout.Truncate(r.ScenarioID, 26),
				r.Score, r.MaxScore, r.ChecksPassed, r.ChecksTotal))
		}
		b.WriteString("\n\n")
		b.WriteString(components.Panel("Recent runs", theme.Subtitle.Render(strings.Join(lines, "\n")), cw))
	}
	return b.String()
}

func (s *ListScreen) Title() string {
	return "Scenarios"
}

// KeyHints returns the footer hints.
func (s *ListScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑/↓", Description: "Move"},
		{Key: "enter", Description: "Start"},
		{Key: "esc", Description: "Back"},
	}
}
