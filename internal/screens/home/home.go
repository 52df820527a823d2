package home

import (
	"context"
	"fmt"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/storybook/internal/router"
	"github.com/abhisek/storybook/internal/screen"
	"github.com/abhisek/storybook/internal/session"
	"github.com/abhisek/storybook/internal/ui/components"
)

// Options wires the home screen to the rest of the app.
type Options struct {
	// Title is the book title shown at the top.
	Title  string
	Author string

	Progress *session.ProgressStore
	Total    int

	// OpenBook builds a reading screen. restart clears saved progress first.
	OpenBook func(restart bool) screen.Screen

	// OpenHistory builds the reading log screen. Nil hides the item.
	OpenHistory func() screen.Screen
}

// HomeScreen is the main menu: continue, start over, reading log, exit.
type HomeScreen struct {
	opts     Options
	menu     components.Menu
	progress session.Progress
	started  bool
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.HeaderInfo = (*HomeScreen)(nil)

// New creates a new HomeScreen.
func New(opts Options) *HomeScreen {
	h := &HomeScreen{opts: opts}
	h.load()
	return h
}

// load reads saved progress and rebuilds the menu around it.
func (h *HomeScreen) load() {
	h.progress, h.started = session.Progress{}, false
	if h.opts.Progress != nil {
		p, ok := h.opts.Progress.Load(context.Background())
		h.progress = p
		h.started = ok && (p.CurrentSlide > 0 || len(p.CompletedSlides) > 0)
	}

	readLabel := "START READING"
	if h.started {
		readLabel = fmt.Sprintf("CONTINUE (PAGE %d)", h.progress.CurrentSlide+1)
	}

	items := []components.MenuItem{
		{Label: readLabel, Action: h.open(false)},
		{Label: "START OVER", Action: h.open(true), Disabled: !h.started},
	}
	if h.opts.OpenHistory != nil {
		items = append(items, components.MenuItem{Label: "READING LOG", Action: func() tea.Cmd {
			s := h.opts.OpenHistory()
			return func() tea.Msg { return router.PushScreenMsg{Screen: s} }
		}})
	}
	items = append(items, components.MenuItem{Label: "CLOSE THE BOOK", Action: func() tea.Cmd {
		return tea.Quit
	}})

	h.menu = components.NewMenu(items)
}

func (h *HomeScreen) open(restart bool) func() tea.Cmd {
	return func() tea.Cmd {
		if h.opts.OpenBook == nil {
			return nil
		}
		s := h.opts.OpenBook(restart)
		return func() tea.Msg { return router.PushScreenMsg{Screen: s} }
	}
}

// Refresh re-reads progress when the home screen is uncovered.
func (h *HomeScreen) Refresh() tea.Cmd {
	h.load()
	return nil
}

// Progress implements screen.HeaderInfo.
func (h *HomeScreen) Progress() (int, int) {
	return len(h.progress.CompletedSlides), h.opts.Total
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) Title() string {
	return "Home"
}
