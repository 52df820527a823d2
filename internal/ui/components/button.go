package components

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/storybook/internal/ui/theme"
)

// Button is a styled button component. Buttons are drawn only; the
// owning screen decides what a press does.
type Button struct {
	Label   string
	Focused bool
	Enabled bool
}

// NewButton creates a new button.
func NewButton(label string, focused, enabled bool) Button {
	return Button{
		Label:   label,
		Focused: focused,
		Enabled: enabled,
	}
}

// View renders the button.
func (b Button) View() string {
	switch {
	case !b.Enabled:
		return theme.ButtonInactive.
			Foreground(theme.Border).
			Render("  " + b.Label + " ")
	case b.Focused:
		return theme.ButtonActive.Render("▸ " + b.Label + " ")
	default:
		return theme.ButtonInactive.Render("  " + b.Label + " ")
	}
}

// ButtonRow lays buttons out side by side with a gap.
func ButtonRow(buttons ...Button) string {
	views := make([]string, 0, len(buttons)*2)
	for i, b := range buttons {
		if i > 0 {
			views = append(views, "  ")
		}
		views = append(views, b.View())
	}
	return lipgloss.JoinHorizontal(lipgloss.Center, views...)
}
