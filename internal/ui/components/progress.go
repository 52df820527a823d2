package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/storybook/internal/session"
	"github.com/abhisek/storybook/internal/ui/theme"
)

// ProgressBar displays a horizontal progress bar.
type ProgressBar struct {
	Label     string
	Count     int
	Total     int
	ShowCount bool
	Width     int
}

// NewProgressBar creates a new progress bar for count out of total.
func NewProgressBar(label string, count, total int, showCount bool, width int) ProgressBar {
	return ProgressBar{
		Label:     label,
		Count:     count,
		Total:     total,
		ShowCount: showCount,
		Width:     width,
	}
}

// View renders the progress bar.
func (p ProgressBar) View() string {
	var result string

	if p.Label != "" {
		result += lipgloss.NewStyle().Foreground(theme.Text).Render(p.Label) + "  "
	}

	suffix := ""
	if p.ShowCount {
		suffix = fmt.Sprintf("  %d/%d", p.Count, p.Total)
	}

	barWidth := max(p.Width-lipgloss.Width(result)-len(suffix), 4)

	filled := 0
	if p.Total > 0 {
		filled = barWidth * p.Count / p.Total
	}
	filled = min(max(filled, 0), barWidth)

	result += lipgloss.NewStyle().
		Background(theme.Secondary).
		Render(strings.Repeat(" ", filled))
	result += lipgloss.NewStyle().
		Background(theme.Border).
		Render(strings.Repeat(" ", barWidth-filled))

	if p.ShowCount {
		result += lipgloss.NewStyle().
			Foreground(theme.TextDim).
			Render(suffix)
	}

	return result
}

// Dots renders the page indicator: one marker per slide.
func Dots(states []session.DotState) string {
	var b strings.Builder
	for i, st := range states {
		if i > 0 {
			b.WriteString(" ")
		}
		switch st {
		case session.DotActive:
			b.WriteString(theme.DotActive.Render("◉"))
		case session.DotCompleted:
			b.WriteString(theme.DotCompleted.Render("●"))
		default:
			b.WriteString(theme.DotNeutral.Render("○"))
		}
	}
	return b.String()
}
