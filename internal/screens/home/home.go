package home

import (
	"context"
	"fmt"
	"slices"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/secjobcoach/internal/coach"
	"github.com/abhisek/secjobcoach/internal/progress"
	"github.com/abhisek/secjobcoach/internal/router"
	"github.com/abhisek/secjobcoach/internal/screen"
	"github.com/abhisek/secjobcoach/internal/screens/flashcards"
	"github.com/abhisek/secjobcoach/internal/screens/mission"
	"github.com/abhisek/secjobcoach/internal/screens/scenarios"
	"github.com/abhisek/secjobcoach/internal/screens/trackpick"
	"github.com/abhisek/secjobcoach/internal/ui/components"
	"github.com/abhisek/secjobcoach/internal/ui/layout"
	"github.com/abhisek/secjobcoach/internal/ui/theme"
)

// dashboardMsg carries a freshly loaded dashboard.
type dashboardMsg struct {
	dash coach.Dashboard
	err  error
}

// HomeScreen is the dashboard and main menu.
type HomeScreen struct {
	coach    *coach.Coach
	dash     coach.Dashboard
	loaded   bool
	prompted bool
	err      error
	menu     components.Menu
}

var _ screen.Screen = (*HomeScreen)(nil)

// New creates a new HomeScreen.
func New(c *coach.Coach) *HomeScreen {
	h := &HomeScreen{coach: c}
	h.buildMenu(false)
	return h
}

func (h *HomeScreen) Init() tea.Cmd {
	return h.load()
}

func (h *HomeScreen) load() tea.Cmd {
	c := h.coach
	return func() tea.Msg {
		d, err := c.Dashboard(context.Background())
		return dashboardMsg{dash: d, err: err}
	}
}

// open records mode as the last chosen view, then pushes s. A failed write
// is logged and the screen still opens.
func (h *HomeScreen) open(mode progress.Mode, s screen.Screen) tea.Cmd {
	c := h.coach
	return func() tea.Msg {
		if _, err := c.Progress.SetMode(context.Background(), mode); err != nil {
			c.Logger.Warn("could not record mode", "mode", string(mode), "error", err)
		}
		return router.PushScreenMsg{Screen: s}
	}
}

func (h *HomeScreen) modeItem(mode progress.Mode) components.MenuItem {
	c := h.coach
	item := components.MenuItem{Label: mode.Label(), Disabled: !h.dash.HasTrack}
	switch mode {
	case progress.ModeMission:
		item.Detail = h.dash.Track.Learn.Title
		item.Action = func() tea.Cmd { return h.open(mode, mission.New(c)) }
	case progress.ModeFlashcards:
		if h.dash.HasTrack {
			item.Detail = fmt.Sprintf("%d due of %d", h.dash.Cards.Due, h.dash.Cards.Total)
		}
		item.Action = func() tea.Cmd { return h.open(mode, flashcards.New(c)) }
	case progress.ModeScenarios:
		if h.dash.HasTrack {
			item.Detail = fmt.Sprintf("%d available", h.dash.Scenarios)
		}
		item.Action = func() tea.Cmd { return h.open(mode, scenarios.New(c)) }
	}
	return item
}

// buildMenu rebuilds the menu from the dashboard. The first build after a
// load selects the last chosen mode; later builds keep the cursor.
func (h *HomeScreen) buildMenu(keepSelection bool) {
	c := h.coach
	items := make([]components.MenuItem, 0, len(progress.Modes)+2)
	for _, mode := range progress.Modes {
		items = append(items, h.modeItem(mode))
	}
	items = append(items,
		components.MenuItem{Label: "Change track", Action: func() tea.Cmd {
			return router.Push(trackpick.New(c))
		}},
		components.MenuItem{Label: "Quit", Action: func() tea.Cmd {
			return tea.Quit
		}},
	)

	selected := h.menu.Selected
	if !keepSelection {
		selected = slices.Index(progress.Modes, h.dash.State.Mode)
	}
	h.menu = components.NewMenu(items)
	if selected >= 0 && selected < len(items) && !items[selected].Disabled {
		h.menu.Selected = selected
	}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case dashboardMsg:
		h.err = msg.err
		if msg.err != nil {
			return h, nil
		}
		h.dash = msg.dash
		h.buildMenu(h.loaded)
		h.loaded = true
		if !h.dash.HasTrack && !h.prompted {
			h.prompted = true
			return h, router.Push(trackpick.New(h.coach))
		}
		return h, nil

	case router.ResumedMsg:
		return h, h.load()

	case tea.KeyMsg:
		if msg.String() == "q" {
			return h, tea.Quit
		}
		var cmd tea.Cmd
		h.menu, cmd = h.menu.Update(msg)
		return h, cmd
	}
	return h, nil
}

func (h *HomeScreen) View(width, height int) string {
	cw := min(width-4, 76)

	var sections []string
	sections = append(sections, theme.Title.Render("Security job coach"))

	switch {
	case h.err != nil:
		sections = append(sections, theme.Incorrect.Render("Could not load progress: "+h.err.Error()))
	case !h.loaded:
		sections = append(sections, theme.Hint.Render("Loading..."))
	default:
		sections = append(sections, components.Panel("Today", h.renderStats(cw-4), cw))
		if len(h.dash.Weak) > 0 {
			sections = append(sections, components.Panel("Weak topics", h.renderWeak(cw-4), cw))
		}
	}

	sections = append(sections, h.menu.View())
	return strings.Join(sections, "\n\n")
}

func (h *HomeScreen) renderStats(width int) string {
	d := h.dash
	var lines []string
	if d.HasTrack {
		lines = append(lines, theme.Label.Render("Track   ")+theme.Body.Render(d.Track.Name))
	} else {
		lines = append(lines, theme.Label.Render("Track   ")+theme.Hint.Render("none selected"))
	}

	streak := d.State.Streak.Count
	if !d.State.Streak.Active(h.coach.Today()) {
		streak = 0
	}
	lines = append(lines, theme.Label.Render("Streak  ")+theme.Body.Render(fmt.Sprintf("%d day(s)", streak)))

	if d.HasTrack {
		lines = append(lines, theme.Label.Render("Last    ")+theme.Body.Render(d.State.Mode.Label()))
		lines = append(lines, theme.Label.Render("Cards   ")+
			theme.Body.Render(fmt.Sprintf("%d due / %d total", d.Cards.Due, d.Cards.Total)))
	}

	s := d.Attempts
	acc := "n/a"
	if s.Correct+s.Incorrect > 0 {
		acc = fmt.Sprintf("%.0f%%", s.Accuracy()*100)
	}
	lines = append(lines, theme.Label.Render("Answers ")+
		theme.Body.Render(fmt.Sprintf("%d total, %d correct, %d skipped, accuracy %s", s.Total, s.Correct, s.Skipped, acc)))
	if d.HasTrack && d.Cards.Total > 0 {
		reviewed := d.Cards.Total - d.Cards.Due
		meter := components.NewMeter("Up to date", reviewed, d.Cards.Total, width)
		meter.Percent = true
		lines = append(lines, "", meter.View())
	}
	return strings.Join(lines, "\n")
}

func (h *HomeScreen) renderWeak(width int) string {
	var lines []string
	for _, w := range h.dash.Weak {
		prompt := layout.Truncate(w.Question.QuestionPrompt(), width-8)
		lines = append(lines, fmt.Sprintf("%s  %s", theme.Incorrect.Render(fmt.Sprintf("%dx", w.Incorrect)), prompt))
	}
	return strings.Join(lines, "\n")
}

func (h *HomeScreen) Title() string {
	return "Dashboard"
}

// KeyHints returns the footer hints.
func (h *HomeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑/↓", Description: "Move"},
		{Key: "enter", Description: "Open"},
		{Key: "q", Description: "Quit"},
	}
}
