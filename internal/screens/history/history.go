package history

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/storybook/internal/router"
	"github.com/abhisek/storybook/internal/screen"
	"github.com/abhisek/storybook/internal/slides"
	"github.com/abhisek/storybook/internal/store"
	"github.com/abhisek/storybook/internal/ui/layout"
	"github.com/abhisek/storybook/internal/ui/theme"
)

type historyLoadedMsg struct {
	Summary store.LogSummary
	Err     error
}

// HistoryScreen is the reading log: per-page visits, retries and
// completions folded from the event log.
type HistoryScreen struct {
	eventRepo store.EventRepo
	summary   store.LogSummary
	selected  int
	loaded    bool
	errMsg    string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen.
func New(eventRepo store.EventRepo) *HistoryScreen {
	return &HistoryScreen{eventRepo: eventRepo}
}

func (s *HistoryScreen) Init() tea.Cmd {
	repo := s.eventRepo
	return func() tea.Msg {
		events, err := repo.QueryEvents(context.Background(), store.QueryOpts{})
		if err != nil {
			return historyLoadedMsg{Err: err}
		}
		return historyLoadedMsg{Summary: store.Summarize(events, slides.Count)}
	}
}

func (s *HistoryScreen) Title() string {
	return "Reading Log"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.summary = msg.Summary
		}
		s.loaded = true
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "q":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
			return s, nil
		case "down", "j":
			if s.selected < len(s.summary.Slides)-1 {
				s.selected++
			}
			return s, nil
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)
	if s.errMsg != "" {
		return center.Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return center.Foreground(theme.TextDim).
			Render("\n\n  Loading reading log...")
	}
	if s.summary.Sessions == 0 {
		return center.Foreground(theme.TextDim).Italic(true).
			Render("\n\n  Nothing read yet. Open the book!")
	}

	var b strings.Builder
	b.WriteString("\n")

	last := "never"
	if !s.summary.LastSeen.IsZero() {
		last = s.summary.LastSeen.Format("Jan 02, 2006 15:04")
	}
	b.WriteString(center.Foreground(theme.TextDim).Render(fmt.Sprintf(
		"%d reading sessions  ·  %d fresh starts  ·  last read %s",
		s.summary.Sessions, s.summary.Resets, last)))
	b.WriteString("\n\n")

	header := fmt.Sprintf("  %-4s  %-16s  %6s  %7s  %4s  %6s", "PAGE", "ACTIVITY", "VISITS", "RETRIES", "DONE", "ERRORS")
	b.WriteString(center.Foreground(theme.Secondary).Bold(true).Render(header))
	b.WriteString("\n")

	// Keep the selected row on screen when the log is taller than the area.
	rows := max(height-6, 1)
	first := 0
	if s.selected >= rows {
		first = s.selected - rows + 1
	}

	for i := first; i < len(s.summary.Slides) && i < first+rows; i++ {
		sl := s.summary.Slides[i]
		name := ""
		if d, ok := slides.Get(sl.Slide); ok {
			name = d.Activity
		}
		prefix := "  "
		if i == s.selected {
			prefix = "> "
		}
		line := fmt.Sprintf("%s%-4s  %-16s  %6d  %7d  %4d  %6d",
			prefix, slides.Number(sl.Slide), truncate(name, 16), sl.Visits, sl.Retries, sl.Completions, sl.Failures)

		style := lipgloss.NewStyle().Foreground(theme.Text)
		switch {
		case i == s.selected:
			style = style.Foreground(theme.Primary).Bold(true)
		case sl.Visits == 0:
			style = style.Foreground(theme.TextDim)
		case sl.Completions > 0:
			style = style.Foreground(theme.Success)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(line)))
		b.WriteString("\n")
	}

	return b.String()
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
