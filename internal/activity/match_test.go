package activity

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/storybook/internal/content"
)

func drop(src, tgt string) Event {
	return Event{Kind: EventDrop, Source: src, Target: tgt}
}

func stateOf(items []BoardItem, id string) ItemState {
	for _, it := range items {
		if it.ID == id {
			return it.State
		}
	}
	return -1
}

func TestDragMatchThreePairs(t *testing.T) {
	env := newFakeEnv()
	ev := attach(t, 2, env)
	dm := ev.(*DragMatch)

	o := ev.Handle(drop("patient", "def-timid"))
	assert.Equal(t, StatusIncorrect, o.Status)
	assert.False(t, dm.Locked("patient"))
	b := ev.Board()
	assert.Equal(t, ItemIdle, stateOf(b.Sources, "patient"), "incorrect drop leaves source interactive")
	assert.Equal(t, ItemIdle, stateOf(b.Targets, "def-timid"), "incorrect drop leaves target interactive")

	o = ev.Handle(drop("patient", "def-patient"))
	assert.Equal(t, StatusCorrect, o.Status)
	assert.Equal(t, "Correct! Keep matching.", o.Message)
	assert.Zero(t, env.completes)
	b = ev.Board()
	assert.Equal(t, ItemLocked, stateOf(b.Sources, "patient"))
	assert.Equal(t, ItemLocked, stateOf(b.Targets, "def-patient"))
	assert.True(t, dm.Locked("patient"))
	assert.False(t, dm.Locked("timid"))

	assert.True(t, ev.Handle(drop("patient", "def-timid")).IsZero(), "locked source cannot be re-attempted")
	assert.True(t, ev.Handle(drop("timid", "def-patient")).IsZero(), "locked target cannot be re-attempted")
	assert.Equal(t, ItemLocked, stateOf(ev.Board().Sources, "patient"))

	ev.Handle(drop("timid", "def-timid"))
	assert.Zero(t, env.completes)
	o = ev.Handle(drop("trust", "def-trust"))
	assert.Equal(t, StatusCorrect, o.Status)
	assert.Equal(t, "Great job!", o.Message)
	assert.Equal(t, 1, env.completes)
	assert.Equal(t, PhaseComplete, ev.Phase())
}

func TestDragMatchShufflesTargets(t *testing.T) {
	page := &content.Page{Index: 2, Title: "t", Surface: content.Surface{}}
	for _, id := range []string{"a", "b", "c", "d", "e", "f", "g", "h"} {
		page.Surface.Sources = append(page.Surface.Sources, content.Token{ID: id, Label: id, Match: id})
		page.Surface.Targets = append(page.Surface.Targets, content.Token{ID: "t" + id, Label: id, Match: id})
	}

	orders := make(map[string]bool)
	r := NewRegistry(rand.New(rand.NewPCG(7, 7)))
	for i := 0; i < 5; i++ {
		ev, err := r.New(2, newFakeEnv())
		require.NoError(t, err)
		require.NoError(t, ev.Attach(page))
		key := ""
		for _, tg := range ev.Board().Targets {
			key += tg.ID
		}
		orders[key] = true
	}
	assert.Greater(t, len(orders), 1, "targets should be reordered across visits")
}

func TestDragMatchRejectsUnmatchedSurface(t *testing.T) {
	ev := newEval(t, 2, newFakeEnv())
	page := &content.Page{Index: 2, Title: "t", Surface: content.Surface{
		Sources: []content.Token{{ID: "a", Label: "a", Match: "a"}},
		Targets: []content.Token{{ID: "b", Label: "b", Match: "b"}},
	}}
	assert.ErrorIs(t, ev.Attach(page), ErrSurface)
}

func TestSequenceRejectsSharedSlot(t *testing.T) {
	ev := newEval(t, 5, newFakeEnv())
	page := &content.Page{Index: 5, Title: "t", Surface: content.Surface{
		Items: []content.Item{
			{ID: "start", Label: "Start", Order: 1},
			{ID: "again", Label: "Again", Order: 1},
		},
		Slots: []content.Slot{{Order: 1}, {Order: 2}},
	}}
	assert.ErrorIs(t, ev.Attach(page), ErrSurface)
	assert.True(t, ev.Handle(drop("start", SlotID(1))).IsZero(), "rejected page stays detached")
}

func TestCauseEffectKeysOnEffect(t *testing.T) {
	env := newFakeEnv()
	ev := attach(t, 10, env)

	o := ev.Handle(drop("waits", "eats"))
	assert.Equal(t, StatusIncorrect, o.Status)

	o = ev.Handle(drop("waits", "closer"))
	assert.Equal(t, StatusInfo, o.Status)
	ev.Handle(drop("carrot", "eats"))
	o = ev.Handle(drop("box", "warm"))
	assert.Equal(t, "You made the dominoes fall!", o.Message)
	assert.Equal(t, 1, env.completes)

	b := ev.Board()
	for _, tg := range b.Targets {
		assert.Equal(t, ItemLocked, tg.State)
		assert.NotEmpty(t, tg.Filled)
	}
}

func TestSequence(t *testing.T) {
	env := newFakeEnv()
	ev := attach(t, 5, env)
	seq := ev.(*Sequence)

	o := ev.Handle(drop("climax", SlotID(1)))
	assert.Equal(t, StatusIncorrect, o.Status)
	assert.Equal(t, 4, seq.Remaining())

	o = ev.Handle(drop("start", SlotID(1)))
	assert.Equal(t, StatusInfo, o.Status)
	assert.Equal(t, 3, seq.Remaining())
	assert.Len(t, ev.Board().Sources, 3, "placed item leaves the pool")

	assert.True(t, ev.Handle(drop("start", SlotID(1))).IsZero())
	assert.True(t, ev.Handle(drop("rising", SlotID(1))).IsZero(), "filled slot is closed")
	assert.True(t, ev.Handle(drop("rising", SlotID(9))).IsZero())

	ev.Handle(drop("rising", SlotID(2)))
	ev.Handle(drop("climax", SlotID(3)))
	assert.Zero(t, env.completes)
	o = ev.Handle(drop("end", SlotID(4)))
	assert.Equal(t, StatusCorrect, o.Status)
	assert.Equal(t, 1, env.completes)
	assert.Empty(t, ev.Board().Sources)
}
