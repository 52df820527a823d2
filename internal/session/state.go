package session

import (
	"context"
	"maps"
	"slices"
)

// Direction is the way a navigation moves through the book.
type Direction int

const (
	Forward Direction = iota
	Backward
	Jump // restart, reward link, reload
)

func (d Direction) String() string {
	switch d {
	case Forward:
		return "forward"
	case Backward:
		return "backward"
	default:
		return "jump"
	}
}

// DotState is the visual state of one progress marker.
type DotState int

const (
	DotNeutral DotState = iota
	DotCompleted
	DotActive
)

// State is the in-memory progression state: which slide is shown, whether
// its activity has been completed during this visit, and which slides have
// ever been completed. Every mutation is persisted through the store.
type State struct {
	total     int
	current   int
	completed bool
	done      map[int]bool
	store     *ProgressStore

	// OnChange, when set, is called after every mutation.
	OnChange func()
}

// NewState returns a state for total slides backed by ps.
func NewState(total int, ps *ProgressStore) *State {
	return &State{total: total, done: make(map[int]bool), store: ps}
}

// Initialize rehydrates from the saved progress, or starts at slide 0.
// It reports whether saved progress was found.
func (s *State) Initialize(ctx context.Context) bool {
	s.current = 0
	s.completed = false
	s.done = make(map[int]bool)

	p, ok := s.store.Load(ctx)
	if !ok {
		return false
	}
	s.current = p.CurrentSlide
	for _, i := range p.CompletedSlides {
		s.done[i] = true
	}
	return true
}

// Total returns the slide count.
func (s *State) Total() int { return s.total }

// Current returns the displayed slide index.
func (s *State) Current() int { return s.current }

// ActivityCompleted reports whether the current visit's activity succeeded.
func (s *State) ActivityCompleted() bool { return s.completed }

// IsCompleted reports whether index was ever completed.
func (s *State) IsCompleted(index int) bool { return s.done[index] }

// CompletedSlides returns the completed set in ascending order.
func (s *State) CompletedSlides() []int {
	return slices.Sorted(maps.Keys(s.done))
}

// CanGoNext reports whether forward navigation is allowed.
func (s *State) CanGoNext() bool {
	return s.current < s.total-1 && s.completed
}

// CanGoPrev reports whether backward navigation is allowed.
func (s *State) CanGoPrev() bool {
	return s.current > 0
}

// MarkComplete records success for the displayed slide.
func (s *State) MarkComplete(ctx context.Context) {
	s.completed = true
	s.done[s.current] = true
	s.persist(ctx)
}

// AdvanceTo moves to index and re-arms the gate. Out-of-range indices are
// ignored.
func (s *State) AdvanceTo(ctx context.Context, index int, _ Direction) {
	if index < 0 || index >= s.total {
		return
	}
	s.current = index
	s.completed = false
	s.persist(ctx)
}

// Reset clears all progress and every remembered answer.
func (s *State) Reset(ctx context.Context) {
	s.store.Clear(ctx)
	s.current = 0
	s.completed = false
	s.done = make(map[int]bool)
	s.persist(ctx)
}

// Progress returns the persistable snapshot.
func (s *State) Progress() Progress {
	return Progress{CurrentSlide: s.current, CompletedSlides: s.CompletedSlides()}
}

// Indicator returns one marker per slide. The active slide wins over
// completed.
func (s *State) Indicator() []DotState {
	dots := make([]DotState, s.total)
	for i := range dots {
		switch {
		case i == s.current:
			dots[i] = DotActive
		case s.done[i]:
			dots[i] = DotCompleted
		}
	}
	return dots
}

// Store returns the backing progress store.
func (s *State) Store() *ProgressStore { return s.store }

func (s *State) persist(ctx context.Context) {
	s.store.Save(ctx, s.Progress())
	if s.OnChange != nil {
		s.OnChange()
	}
}
