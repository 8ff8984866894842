package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/secjobcoach/internal/ui/layout"
)

// Screen defines the interface for all application screens.
type Screen interface {
	// Init returns an initial command when the screen is first created.
	Init() tea.Cmd

	// Update handles messages and returns updated screen + command.
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the screen content (excluding header/footer).
	View(width, height int) string

	// Title returns the screen name for the header.
	Title() string
}

// KeyHintProvider is an optional interface that screens can implement
// to provide custom footer key hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// InputCapturer is implemented by screens that are editing text. While
// Capturing reports true the app does not treat esc or q as navigation.
type InputCapturer interface {
	Capturing() bool
}

// ErrMsg reports a failed background operation to the active screen.
type ErrMsg struct {
	Err error
}

// StateChangedMsg tells the app that learner data was written and the
// header status should be reloaded.
type StateChangedMsg struct{}

// StateChanged returns a command that emits StateChangedMsg.
func StateChanged() tea.Cmd {
	return func() tea.Msg { return StateChangedMsg{} }
}
