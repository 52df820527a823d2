package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/storybook/internal/ui/layout"
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

// KeyCapturer is implemented by screens that sometimes need every key,
// Esc included, e.g. while a text field has focus.
type KeyCapturer interface {
	CapturingKeys() bool
}

// Closer is implemented by screens holding resources that must be
// released when they leave the stack.
type Closer interface {
	Close()
}

// HeaderInfo is an optional interface for screens that show reading
// progress in the header.
type HeaderInfo interface {
	// Progress returns completed and total slide counts.
	Progress() (done, total int)
}
