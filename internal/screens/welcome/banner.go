package welcome

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/storybook/internal/ui/theme"
)

// RenderBanner returns the book title letter-spaced in the primary color.
// Narrow terminals get the plain title.
func RenderBanner(title string, width int) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	upper := strings.ToUpper(title)
	spaced := strings.Join(strings.Split(upper, ""), " ")
	if lipgloss.Width(spaced) > width-4 {
		return style.Render(upper)
	}
	return style.Render(spaced)
}
