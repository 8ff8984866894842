package flashcards

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/secjobcoach/internal/coach"
	"github.com/abhisek/secjobcoach/internal/screen"
	"github.com/abhisek/secjobcoach/internal/spacedrep"
	"github.com/abhisek/secjobcoach/internal/ui/components"
	"github.com/abhisek/secjobcoach/internal/ui/layout"
	"github.com/abhisek/secjobcoach/internal/ui/theme"
)

const (
	// refillBelow is the queue length under which more due cards are fetched.
	refillBelow = 3

	refillDelay = 100 * time.Millisecond
)

var gradeLabels = [...]string{"Blackout", "Wrong", "Almost", "Hard", "Good", "Easy"}

type cardsMsg struct {
	cards []spacedrep.Card
	err   error
}

type reviewedMsg struct {
	card *spacedrep.Card
	err  error
}

type refillMsg struct{}

// FlashcardsScreen reviews the due queue of the selected track.
type FlashcardsScreen struct {
	coach    *coach.Coach
	queue    []spacedrep.Card
	loaded   bool
	flipped  bool
	saving   bool
	reviewed int
	last     *spacedrep.Card
	err      error
}

var _ screen.Screen = (*FlashcardsScreen)(nil)

// New creates a flashcard review screen.
func New(c *coach.Coach) *FlashcardsScreen {
	return &FlashcardsScreen{coach: c}
}

func (s *FlashcardsScreen) Init() tea.Cmd {
	return s.load()
}

func (s *FlashcardsScreen) load() tea.Cmd {
	c := s.coach
	return func() tea.Msg {
		ctx := context.Background()
		st, err := c.Progress.Load(ctx)
		if err != nil {
			return cardsMsg{err: err}
		}
		cards, err := c.Deck.DueCards(ctx, st.Track(), c.DueLimit, c.Today())
		return cardsMsg{cards: cards, err: err}
	}
}

func (s *FlashcardsScreen) review(g spacedrep.Grade) tea.Cmd {
	c := s.coach
	id := s.queue[0].ID
	s.saving = true
	return func() tea.Msg {
		ctx := context.Background()
		card, err := c.Deck.ReviewCard(ctx, id, g, c.Today())
		if err != nil {
			return reviewedMsg{err: err}
		}
		if _, err := c.Progress.MarkStudied(ctx, c.Now()); err != nil {
			return reviewedMsg{err: err}
		}
		return reviewedMsg{card: card}
	}
}

func (s *FlashcardsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case cardsMsg:
		if msg.err != nil {
			s.err = msg.err
			return s, nil
		}
		if len(s.queue) == 0 || len(msg.cards) == 0 || s.queue[0].ID != msg.cards[0].ID {
			s.flipped = false
		}
		s.queue = msg.cards
		s.loaded = true
		s.err = nil
		return s, nil

	case reviewedMsg:
		s.saving = false
		if msg.err != nil {
			s.err = msg.err
			return s, nil
		}
		s.last = msg.card
		s.reviewed++
		s.flipped = false
		if len(s.queue) > 0 {
			s.queue = s.queue[1:]
		}
		cmds := []tea.Cmd{screen.StateChanged()}
		if len(s.queue) < refillBelow {
			cmds = append(cmds, tea.Tick(refillDelay, func(time.Time) tea.Msg { return refillMsg{} }))
		}
		return s, tea.Batch(cmds...)

	case refillMsg:
		return s, s.load()

	case tea.KeyMsg:
		if s.saving {
			return s, nil
		}
		return s.handleKey(msg.String())
	}
	return s, nil
}

func (s *FlashcardsScreen) handleKey(key string) (screen.Screen, tea.Cmd) {
	switch key {
	case "r":
		return s, s.load()
	case "space", " ", "f":
		if len(s.queue) > 0 {
			s.flipped = !s.flipped
		}
		return s, nil
	}

	if len(key) == 1 && s.flipped && len(s.queue) > 0 {
		if g, err := spacedrep.ParseGrade(key); err == nil {
			return s, s.review(g)
		}
	}
	return s, nil
}

// Queue returns the cards waiting for review.
func (s *FlashcardsScreen) Queue() []spacedrep.Card {
	return append([]spacedrep.Card(nil), s.queue...)
}

func (s *FlashcardsScreen) View(width, height int) string {
	cw := min(width-4, 76)

	if s.err != nil {
		return theme.Incorrect.Render("Flashcards unavailable: " + s.err.Error())
	}
	if !s.loaded {
		return theme.Hint.Render("Loading...")
	}

	var b strings.Builder
	b.WriteString(theme.Title.Render("Flashcards"))
	b.WriteString("  " + theme.Subtitle.Render(fmt.Sprintf("%d in queue, %d reviewed", len(s.queue), s.reviewed)))
	b.WriteString("\n\n")

	if len(s.queue) == 0 {
		b.WriteString(components.Panel("All caught up", "No cards are due. Press r to check again.", cw))
		b.WriteString(s.renderLast())
		return b.String()
	}

	card := s.queue[0]
	b.WriteString(components.Panel("Question", layout.Wrap(card.Front, cw-4), cw))
	b.WriteString("\n")
	if s.flipped {
		b.WriteString(components.Panel("Answer", layout.Wrap(card.Back, cw-4), cw))
		b.WriteString("\n\n")
		chips := make([]string, len(gradeLabels))
		for i, label := range gradeLabels {
			chips[i] = components.KeyChip(fmt.Sprint(i), label, false)
		}
		b.WriteString(components.ChipRow(chips[:3]...) + "\n")
		b.WriteString(components.ChipRow(chips[3:]...))
	} else {
		b.WriteString(theme.Hint.Render("Press space to reveal the answer."))
	}

	meta := fmt.Sprintf("reps %d · interval %dd · ease %.2f", card.Repetitions, card.IntervalDays, card.Ease)
	b.WriteString("\n\n" + theme.Subtitle.Render(meta))
	b.WriteString(s.renderLast())
	return b.String()
}

func (s *FlashcardsScreen) renderLast() string {
	if s.last == nil {
		return ""
	}
	return "\n\n" + theme.Hint.Render(fmt.Sprintf("Last card next due %s (in %d day(s))", s.last.Due, s.last.IntervalDays))
}

func (s *FlashcardsScreen) Title() string {
	return "Flashcards"
}

// KeyHints returns the footer hints.
func (s *FlashcardsScreen) KeyHints() []layout.KeyHint {
	if s.flipped {
		return []layout.KeyHint{
			{Key: "0-2", Description: "Fail"},
			{Key: "3-5", Description: "Pass"},
			{Key: "space", Description: "Hide"},
			{Key: "esc", Description: "Back"},
		}
	}
	return []layout.KeyHint{
		{Key: "space", Description: "Flip"},
		{Key: "r", Description: "Refresh"},
		{Key: "esc", Description: "Back"},
	}
}
