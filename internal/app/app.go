package app

import (
	"context"
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/secjobcoach/internal/coach"
	"github.com/abhisek/secjobcoach/internal/router"
	"github.com/abhisek/secjobcoach/internal/screen"
	"github.com/abhisek/secjobcoach/internal/screens/home"
	"github.com/abhisek/secjobcoach/internal/ui/layout"
)

// Options configures the terminal UI.
type Options struct {
	Coach *coach.Coach
}

// statusMsg carries the header status after a reload.
type statusMsg struct {
	status layout.HeaderStatus
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	coach  *coach.Coach
	status layout.HeaderStatus
	width  int
	height int
}

// newAppModel creates a new AppModel with the home screen.
func newAppModel(opts Options) AppModel {
	return AppModel{
		router: router.New(home.New(opts.Coach)),
		coach:  opts.Coach,
	}
}

func (m AppModel) Init() tea.Cmd {
	return tea.Batch(m.router.Active().Init(), m.loadStatus())
}

func (m AppModel) loadStatus() tea.Cmd {
	c := m.coach
	return func() tea.Msg {
		d, err := c.Dashboard(context.Background())
		if err != nil {
			c.Logger.Warn("load header status", "err", err)
			return nil
		}
		st := layout.HeaderStatus{Due: d.Cards.Due}
		if d.HasTrack {
			st.Track = d.Track.Name
		}
		if d.State.Streak.Active(c.Today()) {
			st.Streak = d.State.Streak.Count
		}
		return statusMsg{status: st}
	}
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case statusMsg:
		m.status = msg.status
		return m, nil

	case screen.StateChangedMsg:
		return m, m.loadStatus()

	case router.ResumedMsg:
		return m, tea.Batch(m.router.Update(msg), m.loadStatus())

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if c, ok := m.router.Active().(screen.InputCapturer); ok && c.Capturing() {
				break
			}
			if m.router.Depth() > 1 {
				return m, router.Pop()
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	header := layout.RenderHeader(title, m.status, m.width)

	var footerHints []layout.KeyHint
	if p, ok := active.(screen.KeyHintProvider); ok {
		footerHints = p.KeyHints()
	} else if m.router.Depth() > 1 {
		footerHints = []layout.KeyHint{{Key: "Esc", Description: "Back"}}
	}
	footerHints = append(footerHints, layout.KeyHint{Key: "Ctrl+C", Description: "Quit"})

	footer := layout.RenderFooter(footerHints, m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	frame := layout.RenderFrame(header, content, footer, m.width, m.height)

	v.SetContent(frame)
	return v
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	if opts.Coach == nil {
		return fmt.Errorf("run app: no coach configured")
	}
	p := tea.NewProgram(newAppModel(opts))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run app: %w", err)
	}
	return nil
}
