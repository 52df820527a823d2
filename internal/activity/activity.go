// Package activity evaluates the interactive task on each slide.
//
// Every slide kind has its own Evaluator. An evaluator is created fresh for
// each visit, attached to the loaded page, fed user events one at a time
// from the UI loop, and detached when the reader leaves. Completion is
// reported to the visit's Env exactly once.
package activity

import (
	"errors"
	"fmt"

	"github.com/abhisek/storybook/internal/content"
	"github.com/abhisek/storybook/internal/slides"
)

// Phase is an evaluator's progress through one visit.
type Phase int

const (
	PhaseUnattempted Phase = iota
	PhaseRetry
	PhaseComplete
)

func (p Phase) String() string {
	switch p {
	case PhaseRetry:
		return "retry"
	case PhaseComplete:
		return "complete"
	default:
		return "unattempted"
	}
}

// Status classifies an outcome for display.
type Status string

const (
	StatusPending   Status = "pending"
	StatusCorrect   Status = "correct"
	StatusIncorrect Status = "incorrect"
	StatusInfo      Status = "info"
)

// Action is a navigation request carried by an outcome.
type Action int

const (
	ActionNone Action = iota
	ActionJumpToEnd
	ActionRestart
)

// Outcome is the result of one interaction. The zero Outcome means the
// event was ignored.
type Outcome struct {
	Status  Status
	Message string

	// Count and Total are set by metered activities.
	Count int
	Total int

	Action Action
}

// IsZero reports whether o carries nothing to show.
func (o Outcome) IsZero() bool {
	return o.Status == "" && o.Action == ActionNone
}

// EventKind identifies a user interaction.
type EventKind int

const (
	EventSelect EventKind = iota // pick a choice
	EventDrop                    // drop Source onto Target
	EventToggle                  // toggle a choice or the reveal gate
	EventSubmit                  // submit text fields
	EventAction                  // press the page's action button
)

// Event is one user interaction.
type Event struct {
	Kind   EventKind
	Choice string
	Source string
	Target string
	Fields []string
}

// AuxStore keeps answers a slide remembers between visits.
type AuxStore interface {
	Load(key string) string
	Save(key, value string)
}

// Env is what an evaluator may do to the world outside it.
type Env interface {
	// MarkComplete reports success for the current visit.
	MarkComplete()
	Aux() AuxStore
	// Celebrate plays the one-shot celebration effect.
	Celebrate()
}

// Evaluator is the per-visit state machine of one slide's activity.
type Evaluator interface {
	Kind() slides.Kind
	// Attach binds the evaluator to page. Attaching the page that is
	// already attached does nothing.
	Attach(page *content.Page) error
	// Begin runs once after the slide is displayed. Activities that
	// complete without input do so here.
	Begin() Outcome
	Handle(ev Event) Outcome
	Phase() Phase
	Board() Board
	Detach()
}

var (
	// ErrNotAttached is returned by operations that need a page.
	ErrNotAttached = errors.New("activity not attached")

	// ErrSurface reports a page whose surface does not fit its activity.
	ErrSurface = errors.New("page surface does not fit activity")
)

func surfaceErr(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrSurface, fmt.Sprintf(format, args...))
}

// base carries the lifecycle shared by every evaluator.
type base struct {
	desc  slides.Descriptor
	env   Env
	page  *content.Page
	phase Phase
	fired bool
}

func (b *base) Kind() slides.Kind { return b.desc.Kind }
func (b *base) Phase() Phase      { return b.phase }
func (b *base) Detach()           { b.page = nil }

// bind records page and reports whether it is new.
func (b *base) bind(page *content.Page) (bool, error) {
	if page == nil {
		return false, ErrNotAttached
	}
	if b.page == page {
		return false, nil
	}
	b.page = page
	if b.phase != PhaseComplete {
		b.phase = PhaseUnattempted
	}
	return true, nil
}

func (b *base) attached() bool { return b.page != nil }

func (b *base) surface() content.Surface {
	if b.page == nil {
		return content.Surface{}
	}
	return b.page.Surface
}

func (b *base) msg(key, def string) string {
	return b.surface().Message(key, def)
}

// complete enters the terminal phase, firing MarkComplete the first time.
func (b *base) complete(o Outcome) Outcome {
	b.phase = PhaseComplete
	if !b.fired {
		b.fired = true
		b.env.MarkComplete()
	}
	return o
}

// retry records a failed attempt.
func (b *base) retry(o Outcome) Outcome {
	if b.phase != PhaseComplete {
		b.phase = PhaseRetry
	}
	return o
}

func (b *base) done() bool { return b.phase == PhaseComplete }

func (b *base) Begin() Outcome { return Outcome{} }

func (b *base) boardBase() Board {
	s := b.surface()
	return Board{Prompt: s.Prompt, Action: s.Action}
}
