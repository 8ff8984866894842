package components

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/secjobcoach/internal/ui/theme"
)

// KeyChip renders a key with its action label, e.g. "[3] Hard".
func KeyChip(key, label string, active bool) string {
	k := lipgloss.NewStyle().Foreground(theme.BgDark).Background(theme.TextDim).Padding(0, 1)
	if active {
		k = k.Background(theme.Primary).Bold(true)
	}
	return k.Render(key) + " " + theme.Body.Render(label)
}

// ChipRow joins chips on one line.
func ChipRow(chips ...string) string {
	return strings.Join(chips, "   ")
}

// Panel wraps content in a rounded card of the given outer width.
func Panel(title, content string, width int) string {
	body := content
	if title != "" {
		body = theme.Label.Render(title) + "\n" + content
	}
	w := width - 2
	if w < 10 {
		w = 10
	}
	return theme.Card.Width(w).Render(body)
}
