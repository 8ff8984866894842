package trackpick

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/secjobcoach/internal/coach"
	"github.com/abhisek/secjobcoach/internal/content"
	"github.com/abhisek/secjobcoach/internal/router"
	"github.com/abhisek/secjobcoach/internal/screen"
	"github.com/abhisek/secjobcoach/internal/ui/components"
	"github.com/abhisek/secjobcoach/internal/ui/layout"
	"github.com/abhisek/secjobcoach/internal/ui/theme"
)

type trackSavedMsg struct {
	track content.Track
	err   error
}

// TrackPickScreen lets the learner choose a study track.
type TrackPickScreen struct {
	coach    *coach.Coach
	tracks   []content.TrackInfo
	selected int
	saving   bool
	err      error
}

var _ screen.Screen = (*TrackPickScreen)(nil)

// New creates a track picker with the current track preselected.
func New(c *coach.Coach) *TrackPickScreen {
	return &TrackPickScreen{coach: c, tracks: c.Catalog.Tracks()}
}

func (s *TrackPickScreen) Init() tea.Cmd {
	c := s.coach
	return func() tea.Msg {
		st, err := c.Progress.Load(context.Background())
		if err != nil {
			return screen.ErrMsg{Err: err}
		}
		return currentMsg{track: st.Track()}
	}
}

type currentMsg struct {
	track content.Track
}

func (s *TrackPickScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case currentMsg:
		for i, t := range s.tracks {
			if t.ID == msg.track {
				s.selected = i
			}
		}
		return s, nil

	case trackSavedMsg:
		s.saving = false
		if msg.err != nil {
			s.err = msg.err
			return s, nil
		}
		return s, tea.Batch(screen.StateChanged(), router.Pop())

	case screen.ErrMsg:
		s.err = msg.Err
		return s, nil

	case tea.KeyMsg:
		if s.saving {
			return s, nil
		}
		key := msg.String()
		switch key {
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
		case "down", "j":
			if s.selected < len(s.tracks)-1 {
				s.selected++
			}
		case "enter":
			return s, s.save()
		default:
			if len(key) == 1 && key[0] >= '1' && int(key[0]-'1') < len(s.tracks) {
				s.selected = int(key[0] - '1')
				return s, s.save()
			}
		}
	}
	return s, nil
}

func (s *TrackPickScreen) save() tea.Cmd {
	if len(s.tracks) == 0 {
		return nil
	}
	s.saving = true
	c := s.coach
	id := s.tracks[s.selected].ID
	return func() tea.Msg {
		_, err := c.Progress.SetTrack(context.Background(), id)
		return trackSavedMsg{track: id, err: err}
	}
}

// Selected returns the highlighted track.
func (s *TrackPickScreen) Selected() content.TrackInfo {
	if len(s.tracks) == 0 {
		return content.TrackInfo{}
	}
	return s.tracks[s.selected]
}

func (s *TrackPickScreen) View(width, height int) string {
	cw := min(width-4, 76)

	var b strings.Builder
	b.WriteString(theme.Title.Render("Choose your track"))
	b.WriteString("\n\n")

	for i, t := range s.tracks {
		head := fmt.Sprintf("%d  %s", i+1, t.Name)
		if i == s.selected {
			head = theme.Selected.Render("▸ " + head)
		} else {
			head = theme.Unselected.Render("  " + head)
		}
		b.WriteString(head + "\n")
	}
	b.WriteString("\n")

	if t := s.Selected(); t.ID != "" {
		body := layout.Wrap(t.Description, cw-4)
		if len(t.Modules) > 0 {
			body += "\n\n" + theme.Label.Render("Modules") + "\n"
			for _, m := range t.Modules {
				body += "  • " + m + "\n"
			}
		}
		b.WriteString(components.Panel(t.Name, strings.TrimRight(body, "\n"), cw))
	}

	if s.err != nil {
		b.WriteString("\n\n" + theme.Incorrect.Render("Could not save track: "+s.err.Error()))
	}
	return b.String()
}

func (s *TrackPickScreen) Title() string {
	return "Track"
}

// KeyHints returns the footer hints.
func (s *TrackPickScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑/↓", Description: "Move"},
		{Key: "enter", Description: "Select"},
		{Key: "esc", Description: "Back"},
	}
}
