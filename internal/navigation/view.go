package navigation

import (
	"github.com/abhisek/storybook/internal/activity"
	"github.com/abhisek/storybook/internal/content"
	"github.com/abhisek/storybook/internal/session"
	"github.com/abhisek/storybook/internal/slides"
)

// View is everything the book screen needs to draw.
type View struct {
	Index int
	Total int
	Slide slides.Descriptor

	// Shown is false until the first page has resolved.
	Shown    bool
	Page     *content.Page
	LoadErr  error
	Fallback string

	Board   activity.Board
	Phase   activity.Phase
	Outcome activity.Outcome

	CanPrev bool
	CanNext bool
	Final   bool
	Busy    bool
	Dots    []session.DotState

	Narrating bool
	Narration bool

	// Scroll changes every time a page is displayed.
	Scroll uint64
}

// View snapshots the controller for rendering.
func (c *Controller) View() View {
	idx := c.state.Current()
	d, _ := slides.Get(idx)
	v := View{
		Index:     idx,
		Total:     c.state.Total(),
		Slide:     d,
		Shown:     c.shown,
		Page:      c.page,
		LoadErr:   c.loadErr,
		Outcome:   c.outcome,
		CanPrev:   c.state.CanGoPrev() && c.pending == nil,
		CanNext:   c.state.CanGoNext() && c.pending == nil,
		Final:     idx == c.state.Total()-1,
		Busy:      c.pending != nil,
		Dots:      c.state.Indicator(),
		Narrating: c.audio.Narrating(),
		Narration: d.Narration,
		Scroll:    c.scroll,
	}
	if c.loadErr != nil && c.page == nil {
		v.Fallback = content.FallbackMessage
	}
	if c.eval != nil {
		v.Board = c.eval.Board()
		v.Phase = c.eval.Phase()
	}
	return v
}
