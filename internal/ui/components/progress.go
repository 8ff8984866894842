package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/secjobcoach/internal/ui/theme"
)

// Meter is a horizontal bar for a count out of a maximum, such as a
// scenario score or reviewed cards.
type Meter struct {
	Label   string
	Value   int
	Max     int
	Width   int
	Percent bool // show "42%" instead of "3/7"
}

// NewMeter creates a meter. Value is clamped to [0, max] when rendered.
func NewMeter(label string, value, max, width int) Meter {
	return Meter{Label: label, Value: value, Max: max, Width: width}
}

// Fraction returns Value/Max clamped to [0, 1], or 0 when Max is not positive.
func (m Meter) Fraction() float64 {
	if m.Max <= 0 {
		return 0
	}
	f := float64(m.Value) / float64(m.Max)
	switch {
	case f < 0:
		return 0
	case f > 1:
		return 1
	}
	return f
}

func (m Meter) suffix() string {
	if m.Percent {
		return fmt.Sprintf("%d%%", int(m.Fraction()*100))
	}
	return fmt.Sprintf("%d/%d", m.Value, m.Max)
}

// View renders "Label  ████░░░░  3/9".
func (m Meter) View() string {
	label := ""
	if m.Label != "" {
		label = theme.Body.Render(m.Label) + "  "
	}
	suffix := "  " + m.suffix()

	barWidth := m.Width - lipgloss.Width(label) - lipgloss.Width(suffix)
	if barWidth < 4 {
		barWidth = 4
	}
	filled := int(float64(barWidth) * m.Fraction())

	return label +
		theme.ProgressFilled.Render(strings.Repeat(" ", filled)) +
		theme.ProgressEmpty.Render(strings.Repeat(" ", barWidth-filled)) +
		theme.Subtitle.Render(suffix)
}
