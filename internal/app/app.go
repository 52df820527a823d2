package app

import (
	"context"
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	"github.com/abhisek/storybook/internal/activity"
	"github.com/abhisek/storybook/internal/audio"
	"github.com/abhisek/storybook/internal/content"
	"github.com/abhisek/storybook/internal/logging"
	"github.com/abhisek/storybook/internal/navigation"
	"github.com/abhisek/storybook/internal/router"
	"github.com/abhisek/storybook/internal/screen"
	"github.com/abhisek/storybook/internal/screens/book"
	"github.com/abhisek/storybook/internal/screens/history"
	"github.com/abhisek/storybook/internal/screens/home"
	"github.com/abhisek/storybook/internal/screens/welcome"
	"github.com/abhisek/storybook/internal/session"
	"github.com/abhisek/storybook/internal/slides"
	"github.com/abhisek/storybook/internal/store"
	"github.com/abhisek/storybook/internal/ui/layout"
)

// Options holds the dependencies the TUI needs.
type Options struct {
	KV        store.KVRepo
	Events    store.EventRepo // optional
	Loader    content.Loader
	Manifest  *content.Manifest // optional
	Audio     audio.Player      // optional
	Logger    *zap.Logger
	SessionID string

	// Watcher, when set, reloads the open page as its file changes.
	Watcher *content.Watcher

	// SkipSplash opens the home screen directly.
	SkipSplash bool
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	width  int
	height int
}

// newAppModel creates a new AppModel with the welcome or home screen.
func newAppModel(ctx context.Context, opts Options) AppModel {
	opts.Logger = logging.OrNop(opts.Logger)
	if opts.Audio == nil {
		opts.Audio = audio.Nop{}
	}

	title, author := "", ""
	if opts.Manifest != nil {
		title, author = opts.Manifest.Title, opts.Manifest.Author
		layout.BookName = title
	}

	progress := session.NewProgressStore(opts.KV, slides.Count, opts.Logger)
	registry := activity.NewRegistry(nil)

	openBook := func(restart bool) screen.Screen {
		state := session.NewState(slides.Count, progress)
		state.Initialize(ctx)
		ctrl := navigation.New(ctx, navigation.Options{
			State:     state,
			Registry:  registry,
			Audio:     opts.Audio,
			Events:    opts.Events,
			SessionID: opts.SessionID,
			Logger:    opts.Logger.Named("navigation"),
		})
		return book.New(book.Options{
			Controller: ctrl,
			Loader:     opts.Loader,
			Logger:     opts.Logger.Named("book"),
			Restart:    restart,
		})
	}

	var openHistory func() screen.Screen
	if opts.Events != nil {
		openHistory = func() screen.Screen { return history.New(opts.Events) }
	}

	homeFactory := func() screen.Screen {
		return home.New(home.Options{
			Title:       title,
			Author:      author,
			Progress:    progress,
			Total:       slides.Count,
			OpenBook:    openBook,
			OpenHistory: openHistory,
		})
	}

	var first screen.Screen
	if opts.SkipSplash {
		first = homeFactory()
	} else {
		first = welcome.New(title, homeFactory)
	}
	return AppModel{router: router.New(first)}
}

func (m AppModel) Init() tea.Cmd {
	if active := m.router.Active(); active != nil {
		return active.Init()
	}
	return nil
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if c, ok := m.router.Active().(screen.KeyCapturer); ok && c.CapturingKeys() {
				break
			}
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView(m.render())
	v.AltScreen = true
	return v
}

// render draws header, active screen and footer for the current size.
func (m AppModel) render() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	active := m.router.Active()
	title := ""
	done, total := 0, 0
	if active != nil {
		title = active.Title()
		if hi, ok := active.(screen.HeaderInfo); ok {
			done, total = hi.Progress()
		}
	}

	header := layout.RenderHeader(title, done, total, m.width)

	var footerHints []layout.KeyHint
	if hp, ok := active.(screen.KeyHintProvider); ok {
		footerHints = hp.KeyHints()
	} else if m.router.Depth() > 1 {
		footerHints = []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
		}
	} else {
		footerHints = []layout.KeyHint{
			{Key: "↑↓", Description: "Navigate"},
			{Key: "Enter", Description: "Select"},
		}
	}
	footerHints = append(footerHints, layout.KeyHint{Key: "Ctrl+C", Description: "Quit"})

	footer := layout.RenderFooter(footerHints, m.width)

	contentHeight := max(m.height-lipgloss.Height(header)-lipgloss.Height(footer), 0)

	content := m.router.View(m.width, contentHeight)
	return layout.RenderFrame(header, content, footer, m.width, m.height)
}

// Run starts the Bubble Tea program and blocks until it exits.
func Run(ctx context.Context, opts Options) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	model := newAppModel(ctx, opts)
	p := tea.NewProgram(model, tea.WithContext(ctx))

	if opts.Watcher != nil {
		opts.Watcher.Start(ctx)
		go forwardChanges(ctx, opts.Watcher, p)
	}

	_, err := p.Run()
	model.router.CloseAll()
	if err != nil && ctx.Err() == nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}

// forwardChanges turns watcher notifications into book messages.
func forwardChanges(ctx context.Context, w *content.Watcher, p *tea.Program) {
	for {
		select {
		case <-ctx.Done():
			return
		case idx, ok := <-w.Changes():
			if !ok {
				return
			}
			p.Send(book.ContentChangedMsg{Index: idx})
		}
	}
}
