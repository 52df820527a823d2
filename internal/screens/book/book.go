// Package book is the reading screen: it shows one page at a time with its
// activity and drives the navigation controller from key presses.
package book

import (
	"context"
	"errors"
	"fmt"
	"time"

	"charm.land/bubbles/v2/key"
	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/glamour"
	"go.uber.org/zap"

	"github.com/abhisek/storybook/internal/activity"
	"github.com/abhisek/storybook/internal/content"
	"github.com/abhisek/storybook/internal/logging"
	"github.com/abhisek/storybook/internal/navigation"
	"github.com/abhisek/storybook/internal/screen"
	"github.com/abhisek/storybook/internal/ui/components"
	"github.com/abhisek/storybook/internal/ui/layout"
)

const (
	loadTimeout       = 5 * time.Second
	narrationInterval = 500 * time.Millisecond
	fieldCharLimit    = 160
)

// Options configures a book screen.
type Options struct {
	Controller *navigation.Controller
	Loader     content.Loader
	Logger     *zap.Logger

	// Restart clears all progress before opening the first page.
	Restart bool
}

// zone groups focusable controls; Tab moves between zones.
type zone int

const (
	zoneToggle zone = iota
	zoneChoice
	zoneSource
	zoneTarget
	zoneField
	zoneSubmit
	zoneAction
	zonePrev
	zoneNext
)

// control is one focusable element of the page.
type control struct {
	zone  zone
	id    string
	index int
}

// BookScreen implements screen.Screen for reading the story.
type BookScreen struct {
	ctrl    *navigation.Controller
	loader  content.Loader
	logger  *zap.Logger
	restart bool

	focus int
	held  string // source picked up for a drop
	flash string // one-line notice, cleared on the next key

	inputs    []components.TextInput
	inputsFor uint64

	body      viewport.Model
	bodyFor   uint64
	bodyWidth int
	renderer  *glamour.TermRenderer
	rendererW int
}

var _ screen.Screen = (*BookScreen)(nil)
var _ screen.KeyHintProvider = (*BookScreen)(nil)
var _ screen.KeyCapturer = (*BookScreen)(nil)
var _ screen.Closer = (*BookScreen)(nil)
var _ screen.HeaderInfo = (*BookScreen)(nil)

// New creates a book screen. The controller's state must already be
// initialized.
func New(opts Options) *BookScreen {
	return &BookScreen{
		ctrl:    opts.Controller,
		loader:  opts.Loader,
		logger:  logging.OrNop(opts.Logger),
		restart: opts.Restart,
		body:    viewport.New(),
	}
}

func (s *BookScreen) Init() tea.Cmd {
	if s.restart {
		return s.load(s.ctrl.Restart())
	}
	return s.load(s.ctrl.Start())
}

func (s *BookScreen) Title() string {
	v := s.ctrl.View()
	if v.Page != nil && v.Page.Title != "" {
		return v.Page.Title
	}
	return fmt.Sprintf("Page %s", v.Slide.Number())
}

// Progress implements screen.HeaderInfo.
func (s *BookScreen) Progress() (int, int) {
	st := s.ctrl.State()
	return len(st.CompletedSlides()), st.Total()
}

// CapturingKeys reports whether a text field has focus.
func (s *BookScreen) CapturingKeys() bool {
	c, ok := s.focused(s.controls(s.ctrl.View()))
	return ok && c.zone == zoneField
}

// Close releases the controller when the screen leaves the stack.
func (s *BookScreen) Close() {
	s.ctrl.Close()
}

func (s *BookScreen) KeyHints() []layout.KeyHint {
	if s.CapturingKeys() {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Next box / Check"},
			{Key: "Tab", Description: "Move"},
			{Key: "Esc", Description: "Done typing"},
		}
	}
	v := s.ctrl.View()
	hints := []layout.KeyHint{hint(keys.Up), hint(keys.Press)}
	if len(v.Board.Sources) > 0 {
		hints = append(hints, hint(keys.Column))
	}
	if v.CanPrev {
		hints = append(hints, hint(keys.Prev))
	}
	if v.CanNext {
		hints = append(hints, hint(keys.Next))
	}
	if v.Narration {
		hints = append(hints, hint(keys.Listen))
	}
	return append(hints, layout.KeyHint{Key: "Esc", Description: "Close book"})
}

func hint(b key.Binding) layout.KeyHint {
	return layout.KeyHint{Key: b.Help().Key, Description: b.Help().Desc}
}

func (s *BookScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case pageLoadedMsg:
		if s.ctrl.Resolve(msg.Ticket, msg.Page, msg.Err) {
			s.settle()
		}
		return s, s.syncFocus()

	case ContentChangedMsg:
		return s, s.reload(msg.Index)

	case narrationTickMsg:
		if s.ctrl.View().Narrating {
			return s, narrationTick()
		}
		return s, nil

	case tea.KeyPressMsg:
		return s.handleKey(msg)
	}

	// Cursor blink and similar input housekeeping.
	if c, ok := s.focused(s.controls(s.ctrl.View())); ok && c.zone == zoneField {
		var cmd tea.Cmd
		s.inputs[c.index], cmd = s.inputs[c.index].Update(msg)
		return s, cmd
	}
	return s, nil
}

// load fetches the page for t off the update loop.
func (s *BookScreen) load(t navigation.Ticket) tea.Cmd {
	loader := s.loader
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
		defer cancel()
		page, err := loader.Load(ctx, t.Target)
		return pageLoadedMsg{Ticket: t, Page: page, Err: err}
	}
}

func (s *BookScreen) reload(index int) tea.Cmd {
	if inv, ok := s.loader.(interface{ Invalidate(int) }); ok {
		inv.Invalidate(index)
	}
	t, ok := s.ctrl.Reload(index)
	if !ok {
		return nil
	}
	s.logger.Info("page reloaded", zap.Int("slide", t.Target))
	return s.load(t)
}

// settle resets per-page UI state after a page is displayed.
func (s *BookScreen) settle() {
	v := s.ctrl.View()
	s.focus = 0
	s.held = ""
	s.flash = ""
	s.buildInputs(v)
	// Land on the first activity control, or on Next when there is none.
	ctrls := s.controls(v)
	for i, c := range ctrls {
		if c.zone != zonePrev {
			s.focus = i
			break
		}
	}
}

func (s *BookScreen) buildInputs(v navigation.View) {
	if s.inputsFor == v.Scroll && s.inputs != nil {
		return
	}
	s.inputsFor = v.Scroll
	s.inputs = s.inputs[:0]
	for _, f := range v.Board.Fields {
		s.inputs = append(s.inputs, components.NewTextInput(f.Label, f.Placeholder, f.Value, fieldCharLimit))
	}
}

func (s *BookScreen) handleKey(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	s.flash = ""
	v := s.ctrl.View()
	ctrls := s.controls(v)

	if c, ok := s.focused(ctrls); ok && c.zone == zoneField {
		return s.handleFieldKey(msg, ctrls, c)
	}

	switch {
	case key.Matches(msg, keys.Next):
		return s, s.turn(true)
	case key.Matches(msg, keys.Prev):
		return s, s.turn(false)
	case key.Matches(msg, keys.Up):
		s.move(ctrls, -1)
	case key.Matches(msg, keys.Down):
		s.move(ctrls, 1)
	case key.Matches(msg, keys.Column):
		s.jumpZone(ctrls, 1)
	case key.Matches(msg, keys.ColumnBk):
		s.jumpZone(ctrls, -1)
	case key.Matches(msg, keys.Drop):
		s.held = ""
	case key.Matches(msg, keys.Listen):
		return s, s.listen()
	case key.Matches(msg, keys.PageDown):
		s.body.HalfPageDown()
	case key.Matches(msg, keys.PageUp):
		s.body.HalfPageUp()
	case key.Matches(msg, keys.Press):
		if c, ok := s.focused(ctrls); ok {
			return s, s.press(c)
		}
	}
	return s, s.syncFocus()
}

func (s *BookScreen) handleFieldKey(msg tea.KeyPressMsg, ctrls []control, c control) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "esc":
		s.jumpZone(ctrls, 1)
		return s, s.syncFocus()
	case "tab", "down":
		s.move(ctrls, 1)
		return s, s.syncFocus()
	case "shift+tab", "up":
		s.move(ctrls, -1)
		return s, s.syncFocus()
	case "enter":
		if c.index == len(s.inputs)-1 {
			return s, s.submit()
		}
		s.move(ctrls, 1)
		return s, s.syncFocus()
	}
	var cmd tea.Cmd
	s.inputs[c.index], cmd = s.inputs[c.index].Update(msg)
	return s, cmd
}

// turn moves to the next or previous page.
func (s *BookScreen) turn(forward bool) tea.Cmd {
	var (
		t   navigation.Ticket
		err error
	)
	if forward {
		t, err = s.ctrl.Next()
	} else {
		t, err = s.ctrl.Prev()
	}
	switch {
	case errors.Is(err, navigation.ErrGateLocked):
		s.flash = "Finish the activity to turn the page."
		return nil
	case err != nil:
		// Out of range or a page still loading.
		return nil
	}
	s.blurAll()
	return s.load(t)
}

func (s *BookScreen) listen() tea.Cmd {
	err := s.ctrl.ToggleNarration()
	switch {
	case errors.Is(err, navigation.ErrNoNarration):
		s.flash = "This page has no reading voice."
		return nil
	case err != nil:
		s.flash = "Sound is not available."
		return nil
	}
	if s.ctrl.View().Narrating {
		return narrationTick()
	}
	return nil
}

func narrationTick() tea.Cmd {
	return tea.Tick(narrationInterval, func(t time.Time) tea.Msg {
		return narrationTickMsg(t)
	})
}

// press activates the focused control.
func (s *BookScreen) press(c control) tea.Cmd {
	switch c.zone {
	case zoneToggle:
		return s.interact(activity.Event{Kind: activity.EventToggle})
	case zoneChoice:
		return s.interact(activity.Event{Kind: activity.EventSelect, Choice: c.id})
	case zoneSource:
		if s.held == c.id {
			s.held = ""
			return nil
		}
		s.held = c.id
		s.jumpZone(s.controls(s.ctrl.View()), 1)
		return s.syncFocus()
	case zoneTarget:
		if s.held == "" {
			s.flash = "Pick something from the left first."
			return nil
		}
		src := s.held
		s.held = ""
		cmd := s.interact(activity.Event{Kind: activity.EventDrop, Source: src, Target: c.id})
		s.focusZone(zoneSource)
		return tea.Batch(cmd, s.syncFocus())
	case zoneSubmit:
		return s.submit()
	case zoneAction:
		return s.interact(activity.Event{Kind: activity.EventAction})
	case zonePrev:
		return s.turn(false)
	case zoneNext:
		return s.turn(true)
	}
	return nil
}

func (s *BookScreen) submit() tea.Cmd {
	values := make([]string, len(s.inputs))
	for i, in := range s.inputs {
		values[i] = in.Value()
	}
	cmd := s.interact(activity.Event{Kind: activity.EventSubmit, Fields: values})
	ok := s.ctrl.View().Phase == activity.PhaseComplete
	for i := range s.inputs {
		s.inputs[i].Submit(ok)
	}
	return cmd
}

// interact hands ev to the controller and starts a load when the
// activity asked for a page change.
func (s *BookScreen) interact(ev activity.Event) tea.Cmd {
	res := s.ctrl.Interact(ev)
	if res.Ticket != nil {
		s.blurAll()
		return s.load(*res.Ticket)
	}
	if res.Outcome.Status == activity.StatusCorrect && s.ctrl.View().CanNext {
		s.focusZone(zoneNext)
	}
	return nil
}

// controls lists the focusable elements of v in display order.
func (s *BookScreen) controls(v navigation.View) []control {
	var out []control
	if v.Busy || !v.Shown {
		return out
	}
	b := v.Board
	if b.Toggle != "" && !b.Revealed {
		out = append(out, control{zone: zoneToggle})
	}
	for i, it := range b.Choices {
		if it.State != activity.ItemDisabled {
			out = append(out, control{zone: zoneChoice, id: it.ID, index: i})
		}
	}
	for i, it := range b.Sources {
		if it.State != activity.ItemLocked {
			out = append(out, control{zone: zoneSource, id: it.ID, index: i})
		}
	}
	for i, it := range b.Targets {
		if it.State != activity.ItemLocked {
			out = append(out, control{zone: zoneTarget, id: it.ID, index: i})
		}
	}
	if len(b.Fields) > 0 && v.Phase != activity.PhaseComplete {
		for i := range b.Fields {
			out = append(out, control{zone: zoneField, index: i})
		}
		out = append(out, control{zone: zoneSubmit})
	}
	if b.Action != "" {
		out = append(out, control{zone: zoneAction})
	}
	if v.CanPrev {
		out = append(out, control{zone: zonePrev})
	}
	if v.CanNext {
		out = append(out, control{zone: zoneNext})
	}
	return out
}

func (s *BookScreen) focused(ctrls []control) (control, bool) {
	if len(ctrls) == 0 {
		return control{}, false
	}
	if s.focus >= len(ctrls) {
		s.focus = len(ctrls) - 1
	}
	if s.focus < 0 {
		s.focus = 0
	}
	return ctrls[s.focus], true
}

func (s *BookScreen) move(ctrls []control, delta int) {
	if len(ctrls) == 0 {
		return
	}
	s.focus = (s.focus + delta + len(ctrls)) % len(ctrls)
}

// jumpZone moves focus to the first control of the next (or previous)
// zone, wrapping around.
func (s *BookScreen) jumpZone(ctrls []control, dir int) {
	cur, ok := s.focused(ctrls)
	if !ok {
		return
	}
	n := len(ctrls)
	for step := 1; step < n; step++ {
		i := (s.focus + dir*step + n*n) % n
		if ctrls[i].zone == cur.zone {
			continue
		}
		// Land on the first control of that zone.
		for i > 0 && ctrls[i-1].zone == ctrls[i].zone {
			i--
		}
		s.focus = i
		return
	}
}

func (s *BookScreen) focusZone(z zone) {
	for i, c := range s.controls(s.ctrl.View()) {
		if c.zone == z {
			s.focus = i
			return
		}
	}
}

// syncFocus gives the cursor to the focused text field, if any.
func (s *BookScreen) syncFocus() tea.Cmd {
	s.buildInputs(s.ctrl.View())
	c, ok := s.focused(s.controls(s.ctrl.View()))
	var cmd tea.Cmd
	for i := range s.inputs {
		if ok && c.zone == zoneField && c.index == i {
			if !s.inputs[i].Focused() {
				cmd = s.inputs[i].Focus()
			}
			continue
		}
		s.inputs[i].Blur()
	}
	return cmd
}

func (s *BookScreen) blurAll() {
	for i := range s.inputs {
		s.inputs[i].Blur()
	}
}
