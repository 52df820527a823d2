package book

import (
	"context"
	"math/rand/v2"
	"path/filepath"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/storybook/internal/activity"
	"github.com/abhisek/storybook/internal/content"
	"github.com/abhisek/storybook/internal/navigation"
	"github.com/abhisek/storybook/internal/session"
	"github.com/abhisek/storybook/internal/slides"
	"github.com/abhisek/storybook/internal/store"
)

// newBook opens a book on a fresh database, starting at slide start.
func newBook(t *testing.T, start int) (*BookScreen, store.KVRepo) {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "book.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	ctx := context.Background()
	kv := st.KVRepo()
	ps := session.NewProgressStore(kv, slides.Count, nil)
	if start > 0 {
		ps.Save(ctx, session.Progress{CurrentSlide: start})
	}
	state := session.NewState(slides.Count, ps)
	state.Initialize(ctx)

	ctrl := navigation.New(ctx, navigation.Options{
		State:    state,
		Registry: activity.NewRegistry(rand.New(rand.NewPCG(1, 2))),
		Events:   st.EventRepo(),
	})
	b := New(Options{
		Controller: ctrl,
		Loader:     content.NewFSLoader(content.Default(), slides.Count),
	})
	t.Cleanup(b.Close)

	resolve(t, b, b.Init())
	return b, kv
}

// resolve runs a page load command and feeds its result back.
func resolve(t *testing.T, b *BookScreen, cmd tea.Cmd) {
	t.Helper()
	require.NotNil(t, cmd, "expected a page load")
	msg, ok := cmd().(pageLoadedMsg)
	require.True(t, ok, "expected pageLoadedMsg")
	b.Update(msg)
}

func press(b *BookScreen, code rune) tea.Cmd {
	_, cmd := b.Update(tea.KeyPressMsg{Code: code})
	return cmd
}

func typeKey(b *BookScreen, r rune) tea.Cmd {
	_, cmd := b.Update(tea.KeyPressMsg{Code: r, Text: string(r)})
	return cmd
}

func typeText(b *BookScreen, s string) {
	for _, r := range s {
		typeKey(b, r)
	}
}

func TestCoverGateAndTurn(t *testing.T) {
	b, _ := newBook(t, 0)
	v := b.ctrl.View()
	require.True(t, v.Shown)
	assert.Equal(t, 0, v.Index)
	assert.Equal(t, "Start reading", v.Board.Action)

	// Next is locked until the cover's action is pressed.
	assert.Nil(t, typeKey(b, 'n'))
	assert.Contains(t, b.flash, "Finish the activity")
	assert.Equal(t, 0, b.ctrl.View().Index)

	assert.Nil(t, press(b, tea.KeyEnter))
	v = b.ctrl.View()
	assert.Equal(t, activity.PhaseComplete, v.Phase)
	assert.True(t, v.CanNext)
	c, ok := b.focused(b.controls(v))
	require.True(t, ok)
	assert.Equal(t, zoneNext, c.zone, "focus should move to Next after success")

	resolve(t, b, typeKey(b, 'n'))
	v = b.ctrl.View()
	assert.Equal(t, 1, v.Index)
	assert.False(t, v.CanNext, "gate must re-arm on the new page")

	resolve(t, b, press(b, tea.KeyLeft))
	assert.Equal(t, 0, b.ctrl.View().Index)
}

func TestDragMatchByKeys(t *testing.T) {
	b, _ := newBook(t, 2)
	v := b.ctrl.View()
	require.Equal(t, slides.KindDragMatch, v.Slide.Kind)
	require.Len(t, v.Board.Sources, 3)

	targetIndex := func(id string) int {
		for i, it := range b.ctrl.View().Board.Targets {
			if it.ID == id {
				return i
			}
		}
		t.Fatalf("no target %q", id)
		return -1
	}
	dropOn := func(target string) {
		// Pick up the first source; focus jumps to the first target.
		press(b, tea.KeyEnter)
		require.Equal(t, "patient", b.held)
		for range targetIndex(target) {
			press(b, tea.KeyDown)
		}
		press(b, tea.KeyEnter)
	}

	dropOn("def-timid")
	v = b.ctrl.View()
	assert.Equal(t, activity.StatusIncorrect, v.Outcome.Status)
	assert.Equal(t, activity.ItemIdle, v.Board.Sources[0].State)
	assert.Empty(t, b.held)

	dropOn("def-patient")
	v = b.ctrl.View()
	assert.Equal(t, activity.StatusCorrect, v.Outcome.Status)
	assert.Equal(t, "Correct! Keep matching.", v.Outcome.Message)
	assert.Equal(t, activity.ItemLocked, v.Board.Sources[0].State)
	assert.False(t, v.CanNext)
}

func TestDropWithoutSourceFlashes(t *testing.T) {
	b, _ := newBook(t, 2)
	// Tab from the sources column to the targets column.
	press(b, tea.KeyTab)
	c, ok := b.focused(b.controls(b.ctrl.View()))
	require.True(t, ok)
	require.Equal(t, zoneTarget, c.zone)

	press(b, tea.KeyEnter)
	assert.NotEmpty(t, b.flash)
	assert.Equal(t, activity.PhaseUnattempted, b.ctrl.View().Phase)
}

func TestFreeTextSubmit(t *testing.T) {
	b, kv := newBook(t, 7)
	require.Equal(t, slides.KindFreeText, b.ctrl.View().Slide.Kind)
	require.True(t, b.CapturingKeys(), "the text field should have focus")

	typeText(b, "Hi. Bye.")
	press(b, tea.KeyEnter)
	v := b.ctrl.View()
	assert.Equal(t, activity.StatusIncorrect, v.Outcome.Status)
	assert.Equal(t, activity.PhaseRetry, v.Phase)

	// Clear the field and write one sentence.
	for range len("Hi. Bye.") {
		press(b, tea.KeyBackspace)
	}
	typeText(b, "Pip will come back.")
	press(b, tea.KeyEnter)

	v = b.ctrl.View()
	assert.Equal(t, activity.PhaseComplete, v.Phase)
	assert.True(t, v.CanNext)

	got, ok, err := kv.Get(context.Background(), "prediction")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "Pip will come back.", got)
	assert.False(t, b.CapturingKeys())
}

func TestEscLeavesField(t *testing.T) {
	b, _ := newBook(t, 7)
	require.True(t, b.CapturingKeys())
	press(b, tea.KeyEscape)
	assert.False(t, b.CapturingKeys())

	c, ok := b.focused(b.controls(b.ctrl.View()))
	require.True(t, ok)
	assert.Equal(t, zoneSubmit, c.zone)
}

func TestContentChangedReloadsCurrentOnly(t *testing.T) {
	b, _ := newBook(t, 0)

	_, cmd := b.Update(ContentChangedMsg{Index: 5})
	assert.Nil(t, cmd)

	_, cmd = b.Update(ContentChangedMsg{Index: 0})
	resolve(t, b, cmd)
	assert.Equal(t, 0, b.ctrl.View().Index)

	_, cmd = b.Update(ContentChangedMsg{Index: content.AllPages})
	resolve(t, b, cmd)
}

func TestRewardJumpsToEnd(t *testing.T) {
	b, _ := newBook(t, slides.Last-1)
	v := b.ctrl.View()
	require.Equal(t, slides.KindAutoComplete, v.Slide.Kind)
	assert.True(t, v.CanNext)

	c, ok := b.focused(b.controls(v))
	require.True(t, ok)
	require.Equal(t, zoneAction, c.zone)

	resolve(t, b, press(b, tea.KeyEnter))
	v = b.ctrl.View()
	assert.Equal(t, slides.Last, v.Index)
	assert.True(t, v.Final)
	assert.Equal(t, activity.PhaseComplete, v.Phase)
}

func TestViewRendersPage(t *testing.T) {
	b, _ := newBook(t, 0)
	out := b.View(100, 34)
	assert.Contains(t, out, "Katya and Pip")
	assert.Contains(t, out, "Page 01 of 16")
	assert.Contains(t, out, "Start reading")
	assert.Equal(t, "Katya and Pip", b.Title())

	done, total := b.Progress()
	assert.Equal(t, 0, done)
	assert.Equal(t, slides.Count, total)
}

func TestKeyHints(t *testing.T) {
	b, _ := newBook(t, 1)
	var keys []string
	for _, h := range b.KeyHints() {
		keys = append(keys, h.Key)
	}
	joined := strings.Join(keys, " ")
	assert.Contains(t, joined, "←/p")
	assert.NotContains(t, joined, "→/n", "Next hint only shows once unlocked")
}
