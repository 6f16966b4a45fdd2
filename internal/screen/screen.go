package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/studynav/internal/ui/layout"
)

// Screen is one view on the router stack.
type Screen interface {
	// Init returns an initial command when the screen becomes active.
	Init() tea.Cmd

	// Update handles messages and returns updated screen + command.
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the screen content between the header and footer.
	View(width, height int) string

	// Title returns the screen name for the header.
	Title() string
}

// KeyHintProvider is implemented by screens that want their own footer hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// InputCapturer is implemented by screens with a focused text field. While
// Capturing is true the app leaves printable keys and Esc to the screen.
type InputCapturer interface {
	Capturing() bool
}
