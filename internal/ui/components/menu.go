package components

import (
	"strconv"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/secjobcoach/internal/ui/theme"
)

// MenuItem is one selectable row. Detail is rendered dimmed after the label.
type MenuItem struct {
	Label    string
	Detail   string
	Action   func() tea.Cmd
	Disabled bool
}

// Menu is a vertical list navigated with arrows or j/k. Digits 1-9 activate
// the matching row directly. Navigation skips disabled rows and does not wrap.
type Menu struct {
	Items    []MenuItem
	Selected int
}

// NewMenu selects the first enabled item.
func NewMenu(items []MenuItem) Menu {
	m := Menu{Items: items}
	if next, ok := m.step(-1, 1); ok {
		m.Selected = next
	}
	return m
}

// step finds the next enabled index after from in direction dir.
func (m Menu) step(from, dir int) (int, bool) {
	for i := from + dir; i >= 0 && i < len(m.Items); i += dir {
		if !m.Items[i].Disabled {
			return i, true
		}
	}
	return from, false
}

func (m Menu) activate(i int) tea.Cmd {
	if i < 0 || i >= len(m.Items) {
		return nil
	}
	item := m.Items[i]
	if item.Disabled || item.Action == nil {
		return nil
	}
	return item.Action()
}

// Update handles navigation keys.
func (m Menu) Update(msg tea.Msg) (Menu, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	key := kmsg.String()
	switch key {
	case "up", "k":
		m.Selected, _ = m.step(m.Selected, -1)
	case "down", "j":
		m.Selected, _ = m.step(m.Selected, 1)
	case "enter":
		return m, m.activate(m.Selected)
	default:
		n, err := strconv.Atoi(key)
		if err != nil || n < 1 || n > 9 || n > len(m.Items) || m.Items[n-1].Disabled {
			return m, nil
		}
		m.Selected = n - 1
		return m, m.activate(m.Selected)
	}
	return m, nil
}

// View renders one numbered row per item.
func (m Menu) View() string {
	var b strings.Builder
	for i, item := range m.Items {
		num := "  "
		if i < 9 {
			num = strconv.Itoa(i+1) + "."
		}
		var line string
		switch {
		case item.Disabled:
			line = theme.Subtitle.Faint(true).Render("    " + num + " " + item.Label)
		case i == m.Selected:
			line = theme.Selected.Render("  ▸ " + num + " " + item.Label)
		default:
			line = theme.Unselected.Render("    " + num + " " + item.Label)
		}
		if item.Detail != "" {
			line += "  " + theme.Subtitle.Render(item.Detail)
		}
		b.WriteString(line + "\n")
	}
	return b.String()
}
