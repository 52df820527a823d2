package home

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/storybook/internal/ui/components"
	"github.com/abhisek/storybook/internal/ui/layout"
	"github.com/abhisek/storybook/internal/ui/theme"
)

// buttonWidth is the fixed width for menu buttons.
const buttonWidth = 24

func (h *HomeScreen) View(width, height int) string {
	// height is the content area; add back the header and footer
	compact := layout.IsCompactHeight(height+layout.HeaderHeight+layout.FooterHeight) ||
		layout.IsCompactWidth(width)
	cw := components.ContentWidth(width)

	var sections []string
	sections = append(sections, h.renderTitle(cw))
	if !compact {
		sections = append(sections, lipgloss.NewStyle().
			Width(cw).
			Align(lipgloss.Center).
			Render(RenderPip(h.variant())))
	}
	sections = append(sections, h.renderProgress(cw))
	if compact {
		sections = append(sections, lipgloss.NewStyle().Width(cw).Align(lipgloss.Center).Render(h.menu.View()))
	} else {
		sections = append(sections, h.renderMenu(cw))
	}

	return components.BookFrame(strings.Join(sections, "\n\n"), width, height)
}

func (h *HomeScreen) variant() PipVariant {
	switch {
	case h.opts.Total > 0 && len(h.progress.CompletedSlides) >= h.opts.Total:
		return PipHappy
	case h.started:
		return PipPeeking
	default:
		return PipHiding
	}
}

func (h *HomeScreen) renderTitle(cw int) string {
	title := h.opts.Title
	if title == "" {
		title = layout.BookName
	}
	out := theme.Title.Width(cw).Render(strings.ToUpper(title))
	if h.opts.Author != "" {
		out += "\n" + theme.Subtitle.Width(cw).Render("by "+h.opts.Author)
	}
	return out
}

func (h *HomeScreen) renderProgress(cw int) string {
	if !h.started {
		return theme.Hint.Width(cw).Align(lipgloss.Center).Render("A new story is waiting for you.")
	}
	done := len(h.progress.CompletedSlides)
	bar := components.NewProgressBar("Pages done", done, h.opts.Total, true, cw-4)
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Secondary).
		Width(cw).
		Align(lipgloss.Center).
		Padding(0, 1).
		Render(bar.View() + "\n" + theme.Hint.Render(fmt.Sprintf("You stopped on page %d.", h.progress.CurrentSlide+1)))
}

// renderMenu renders each menu item as a fixed-width button.
func (h *HomeScreen) renderMenu(cw int) string {
	base := lipgloss.NewStyle().
		Width(buttonWidth).
		Align(lipgloss.Center).
		Border(lipgloss.RoundedBorder()).
		Padding(0, 1)

	selected := base.
		Bold(true).
		Foreground(theme.BgDark).
		Background(theme.Primary).
		BorderForeground(theme.Primary)
	normal := base.
		Foreground(theme.Text).
		BorderForeground(theme.Border)
	disabled := base.
		Foreground(theme.TextDim).
		BorderForeground(theme.Border)

	var buttons []string
	for i, item := range h.menu.Items {
		switch {
		case item.Disabled:
			buttons = append(buttons, disabled.Render(item.Label))
		case i == h.menu.Selected:
			buttons = append(buttons, selected.Render("▸ "+item.Label))
		default:
			buttons = append(buttons, normal.Render(item.Label))
		}
	}

	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(strings.Join(buttons, "\n"))
}
