// Package navigation orchestrates moving between slides: it enforces the
// gate, hands out fetch tickets, discards stale fetches, attaches a fresh
// evaluator per visit and keeps the progression state in step.
//
// A Controller is driven from a single goroutine (the UI update loop). The
// content fetch is the only asynchronous step: Request returns a Ticket,
// the caller loads the page however it likes and reports back with
// Resolve.
package navigation

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/abhisek/storybook/internal/activity"
	"github.com/abhisek/storybook/internal/audio"
	"github.com/abhisek/storybook/internal/content"
	"github.com/abhisek/storybook/internal/logging"
	"github.com/abhisek/storybook/internal/session"
	"github.com/abhisek/storybook/internal/slides"
	"github.com/abhisek/storybook/internal/store"
)

var (
	ErrOutOfRange  = errors.New("slide out of range")
	ErrGateLocked  = errors.New("finish the activity first")
	ErrBusy        = errors.New("navigation in progress")
	ErrNoNarration = errors.New("no narration for this slide")
)

// Ticket identifies one pending navigation.
type Ticket struct {
	Target    int
	Direction session.Direction
	gen       uint64
}

// Result is what an interaction produced.
type Result struct {
	Outcome activity.Outcome
	// Ticket is set when the interaction started a navigation.
	Ticket *Ticket
}

// Options configures a Controller.
type Options struct {
	State     *session.State
	Registry  *activity.Registry
	Audio     audio.Player
	Events    store.EventRepo // optional
	SessionID string
	Logger    *zap.Logger
}

// Controller owns the reading flow.
type Controller struct {
	ctx       context.Context
	state     *session.State
	registry  *activity.Registry
	audio     audio.Player
	events    store.EventRepo
	sessionID string
	logger    *zap.Logger

	gen     uint64
	pending *Ticket

	shown   bool
	page    *content.Page
	loadErr error
	eval    activity.Evaluator
	outcome activity.Outcome
	scroll  uint64
}

// New returns a controller. ctx bounds storage calls.
func New(ctx context.Context, opts Options) *Controller {
	c := &Controller{
		ctx:       ctx,
		state:     opts.State,
		registry:  opts.Registry,
		audio:     opts.Audio,
		events:    opts.Events,
		sessionID: opts.SessionID,
		logger:    logging.OrNop(opts.Logger),
	}
	if c.registry == nil {
		c.registry = activity.NewRegistry(nil)
	}
	if c.audio == nil {
		c.audio = audio.Nop{}
	}
	return c
}

// State returns the progression state.
func (c *Controller) State() *session.State { return c.state }

// Pending reports whether a fetch is outstanding.
func (c *Controller) Pending() bool { return c.pending != nil }

// Start opens the book at the state's current slide.
func (c *Controller) Start() Ticket {
	c.record(store.EventStart, c.state.Current(), "", "")
	return c.begin(c.state.Current(), session.Jump)
}

// Request asks to move to target. Forward moves need a completed activity
// and nothing may be pending.
func (c *Controller) Request(target int, dir session.Direction) (Ticket, error) {
	if c.pending != nil {
		return Ticket{}, ErrBusy
	}
	if target < 0 || target >= c.state.Total() {
		return Ticket{}, ErrOutOfRange
	}
	if dir == session.Forward && !c.state.CanGoNext() {
		return Ticket{}, ErrGateLocked
	}
	return c.begin(target, dir), nil
}

// Next requests the following slide.
func (c *Controller) Next() (Ticket, error) {
	return c.Request(c.state.Current()+1, session.Forward)
}

// Prev requests the previous slide.
func (c *Controller) Prev() (Ticket, error) {
	return c.Request(c.state.Current()-1, session.Backward)
}

// Force moves to target regardless of the gate, superseding any pending
// fetch.
func (c *Controller) Force(target int, dir session.Direction) (Ticket, error) {
	if target < 0 || target >= c.state.Total() {
		return Ticket{}, ErrOutOfRange
	}
	return c.begin(target, dir), nil
}

// Restart clears all progress and answers and reopens the first slide.
func (c *Controller) Restart() Ticket {
	c.state.Reset(c.ctx)
	c.record(store.EventReset, 0, "", "")
	return c.begin(0, session.Jump)
}

// Reload refetches the slide on screen, or the one being fetched, when
// index is it or content.AllPages. A pending fetch keeps its direction.
func (c *Controller) Reload(index int) (Ticket, bool) {
	cur, dir := c.state.Current(), session.Jump
	if c.pending != nil {
		cur, dir = c.pending.Target, c.pending.Direction
	}
	if index != content.AllPages && index != cur {
		return Ticket{}, false
	}
	return c.begin(cur, dir), true
}

func (c *Controller) begin(target int, dir session.Direction) Ticket {
	c.audio.StopNarration()
	c.audio.PageTurn()
	if c.eval != nil {
		c.eval.Detach()
		c.eval = nil
	}
	c.gen++
	t := Ticket{Target: target, Direction: dir, gen: c.gen}
	c.pending = &t
	c.outcome = activity.Outcome{}
	c.record(store.EventNavigate, target, dir.String(), "")
	return t
}

// Resolve completes the navigation of t with the fetched page or error.
// It reports false when t was superseded and its result discarded.
func (c *Controller) Resolve(t Ticket, page *content.Page, err error) bool {
	if c.pending == nil || t.gen != c.gen {
		c.logger.Debug("stale fetch discarded", zap.Int("slide", t.Target))
		return false
	}
	c.pending = nil
	c.shown = true
	c.page = nil
	c.loadErr = nil

	switch {
	case err != nil:
		c.loadErr = err
		c.logger.Warn("slide load failed", zap.Int("slide", t.Target), zap.Error(err))
		c.record(store.EventLoadFailed, t.Target, "", err.Error())
	default:
		c.page = page
		c.attach(t, page)
	}

	c.state.AdvanceTo(c.ctx, t.Target, t.Direction)

	if c.eval != nil {
		if o := c.eval.Begin(); !o.IsZero() {
			c.outcome = o
		}
	}
	c.scroll++
	return true
}

func (c *Controller) attach(t Ticket, page *content.Page) {
	ev, err := c.registry.New(t.Target, visit{c: c, gen: t.gen})
	if err == nil {
		err = ev.Attach(page)
	}
	if err != nil {
		c.loadErr = err
		c.logger.Warn("activity attach failed", zap.Int("slide", t.Target), zap.Error(err))
		c.record(store.EventLoadFailed, t.Target, "", err.Error())
		return
	}
	c.eval = ev
}

// Interact feeds a user event to the attached activity.
func (c *Controller) Interact(ev activity.Event) Result {
	if c.pending != nil || c.eval == nil {
		return Result{}
	}
	o := c.eval.Handle(ev)
	if o.IsZero() {
		return Result{}
	}
	if o.Status != "" {
		c.outcome = o
		c.record(store.EventOutcome, c.state.Current(), string(o.Status), o.Message)
	}

	var t Ticket
	switch o.Action {
	case activity.ActionJumpToEnd:
		t = c.begin(slides.Last, session.Jump)
	case activity.ActionRestart:
		t = c.Restart()
	default:
		return Result{Outcome: o}
	}
	return Result{Outcome: o, Ticket: &t}
}

// ToggleNarration starts or stops the current slide's narration.
func (c *Controller) ToggleNarration() error {
	if c.audio.Narrating() {
		c.audio.StopNarration()
		return nil
	}
	d, _ := slides.Get(c.state.Current())
	if !d.Narration || c.pending != nil {
		return ErrNoNarration
	}
	if err := c.audio.Narrate(d.Index); err != nil {
		c.logger.Debug("narration unavailable", zap.Int("slide", d.Index), zap.Error(err))
		return err
	}
	return nil
}

// Close detaches the activity and silences audio.
func (c *Controller) Close() {
	if c.eval != nil {
		c.eval.Detach()
		c.eval = nil
	}
	c.audio.StopNarration()
}

func (c *Controller) record(kind string, slide int, status, msg string) {
	if c.events == nil {
		return
	}
	err := c.events.AppendEvent(c.ctx, store.EventData{
		SessionID: c.sessionID,
		Kind:      kind,
		Slide:     slide,
		Status:    status,
		Message:   msg,
	})
	if err != nil {
		c.logger.Warn("event log write failed", zap.String("kind", kind), zap.Error(err))
	}
}

// visit is the activity environment of one navigation. Completion is only
// accepted while the visit is still the displayed one.
type visit struct {
	c   *Controller
	gen uint64
}

func (v visit) current() bool {
	return v.gen == v.c.gen && v.c.pending == nil
}

func (v visit) MarkComplete() {
	if !v.current() {
		return
	}
	v.c.state.MarkComplete(v.c.ctx)
	v.c.record(store.EventComplete, v.c.state.Current(), "", "")
}

func (v visit) Aux() activity.AuxStore {
	return auxStore{ctx: v.c.ctx, ps: v.c.state.Store()}
}

func (v visit) Celebrate() {
	if v.current() {
		v.c.audio.Celebrate()
	}
}

type auxStore struct {
	ctx context.Context
	ps  *session.ProgressStore
}

func (a auxStore) Load(key string) string { return a.ps.LoadAux(a.ctx, key) }
func (a auxStore) Save(key, value string) { a.ps.SaveAux(a.ctx, key, value) }
