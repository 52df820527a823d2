package welcome

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/storybook/internal/router"
	"github.com/abhisek/storybook/internal/screen"
	"github.com/abhisek/storybook/internal/ui/theme"
)

const (
	tickInterval = 100 * time.Millisecond
	phase1End    = 500 * time.Millisecond
	phase2End    = 1500 * time.Millisecond
	totalDur     = 3000 * time.Millisecond
)

const bookClosed = `   ________
  /       /|
 /_______/ |
 |       | |
 |  ~~~  | /
 |_______|/`

const bookOpen = `  __________   __________
 |          \ /          |
 |  ~~~~~~   |   ~~~~~~  |
 |  ~~~~~    |   ~~~~~~  |
 |  ~~~~~~   |   ~~~~    |
 |__________/ \__________|`

// page-turn frames drawn beside the open book
var flipFrames = []string{"·", "✦", "★", "✦"}

type tickMsg time.Time

// WelcomeScreen shows a short book-opening animation before the home
// screen. Any key skips it.
type WelcomeScreen struct {
	title        string
	homeFactory  func() screen.Screen
	elapsed      time.Duration
	tickCount    int
	transitioned bool
}

var _ screen.Screen = (*WelcomeScreen)(nil)

// New creates a WelcomeScreen for the named book that will transition to
// the screen produced by homeFactory.
func New(title string, homeFactory func() screen.Screen) *WelcomeScreen {
	return &WelcomeScreen{
		title:       title,
		homeFactory: homeFactory,
	}
}

func (w *WelcomeScreen) Title() string {
	return ""
}

func (w *WelcomeScreen) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (w *WelcomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg.(type) {
	case tickMsg:
		if w.transitioned {
			return w, nil
		}
		if w.elapsed < totalDur {
			w.elapsed += tickInterval
		}
		w.tickCount++
		return w, tick()

	case tea.KeyPressMsg:
		return w, w.transition()
	}

	return w, nil
}

func (w *WelcomeScreen) transition() tea.Cmd {
	if w.transitioned {
		return nil
	}
	w.transitioned = true
	homeScreen := w.homeFactory()
	return func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: homeScreen}
	}
}

func (w *WelcomeScreen) View(width, height int) string {
	var sections []string

	bookStyle := lipgloss.NewStyle().Foreground(theme.Primary)

	// Phase 1: closed book. Phase 2+: open book with sparkles.
	if w.elapsed < phase1End {
		sections = append(sections, bookStyle.Render(bookClosed))
	} else {
		frame := flipFrames[w.tickCount%len(flipFrames)]
		s1 := lipgloss.NewStyle().Foreground(theme.Accent).Render(frame)
		s2 := lipgloss.NewStyle().Foreground(theme.Secondary).Render(frame)

		lines := strings.Split(bookStyle.Render(bookOpen), "\n")
		lines[0] = s1 + "  " + lines[0] + "  " + s2
		lines[len(lines)-1] = s2 + "  " + lines[len(lines)-1] + "  " + s1
		sections = append(sections, strings.Join(lines, "\n"))
	}

	// Phase 3: title, tagline and hint.
	if w.elapsed >= phase2End {
		sections = append(sections, "", RenderBanner(w.title, width), "")

		tagline := lipgloss.NewStyle().
			Foreground(theme.Text).
			Bold(true).
			Render("Once upon a time...")
		sections = append(sections, tagline, "")

		hint := lipgloss.NewStyle().
			Foreground(theme.TextDim).
			Italic(true).
			Render("press any key to open the book")
		sections = append(sections, hint)
	}

	content := lipgloss.JoinVertical(lipgloss.Center, sections...)

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}
