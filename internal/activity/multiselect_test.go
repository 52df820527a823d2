package activity

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/abhisek/storybook/internal/content"
)

func toggle(id string) Event { return Event{Kind: EventToggle, Choice: id} }

func TestMultiSelectMeter(t *testing.T) {
	env := newFakeEnv()
	ev := attach(t, 9, env)
	ms := ev.(*MultiSelect)

	o := ev.Handle(toggle("bossy"))
	assert.Equal(t, StatusIncorrect, o.Status)
	assert.Equal(t, 0, o.Count)
	assert.Equal(t, 2, o.Total)

	o = ev.Handle(toggle("caring"))
	assert.Equal(t, StatusInfo, o.Status)
	assert.Equal(t, 1, o.Count)
	assert.Equal(t, 2, o.Total)
	assert.Zero(t, env.completes)

	o = ev.Handle(toggle("rude"))
	assert.Equal(t, 1, o.Count, "non-qualifying pick never changes the count")
	assert.Equal(t, 1, ms.Count())

	o = ev.Handle(toggle("patient"))
	assert.Equal(t, StatusCorrect, o.Status)
	assert.Equal(t, 2, o.Count)
	assert.Equal(t, 1, env.completes)
	assert.Equal(t, PhaseComplete, ev.Phase())
}

func TestMultiSelectToggleOff(t *testing.T) {
	env := newFakeEnv()
	ev := attach(t, 9, env)

	ev.Handle(toggle("caring"))
	o := ev.Handle(toggle("caring"))
	assert.Equal(t, 0, o.Count)
	assert.Equal(t, ItemIdle, stateOf(ev.Board().Choices, "caring"))

	ev.Handle(toggle("bossy"))
	o = ev.Handle(toggle("bossy"))
	assert.Equal(t, 0, o.Count)
}

func TestMultiSelectDeselectAfterCompletionKeepsIt(t *testing.T) {
	env := newFakeEnv()
	ev := attach(t, 9, env)

	ev.Handle(toggle("caring"))
	ev.Handle(toggle("patient"))
	o := ev.Handle(toggle("patient"))

	assert.Equal(t, 1, o.Count)
	assert.Equal(t, PhaseComplete, ev.Phase())
	assert.Equal(t, 1, ev.Board().Meter.Count)

	ev.Handle(toggle("patient"))
	assert.Equal(t, 1, env.completes, "reaching the target again must not re-fire")
}

func TestMultiSelectTargetExceedsGood(t *testing.T) {
	ev := newEval(t, 9, newFakeEnv())
	page := &content.Page{Index: 9, Title: "t", Surface: content.Surface{
		Meter:   &content.Meter{Target: 3},
		Choices: []content.Choice{{ID: "a", Label: "A", Good: true}},
	}}
	assert.ErrorIs(t, ev.Attach(page), ErrSurface)
}
