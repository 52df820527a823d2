package audio

import (
	"errors"
	"math/rand/v2"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-audio/wav"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestNop(t *testing.T) {
	var p Player = Nop{}
	assert.ErrorIs(t, p.Narrate(0), ErrUnavailable)
	assert.False(t, p.Narrating())
	p.PageTurn()
	p.Celebrate()
	p.StopNarration()
	assert.NoError(t, p.Close())
}

func TestWriteWAVDecodes(t *testing.T) {
	samples := pinkNoise(rand.New(rand.NewPCG(1, 1)))
	path := filepath.Join(t.TempDir(), "flip.wav")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, writeWAV(f, samples))
	require.NoError(t, f.Close())

	f, err = os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	dec := wav.NewDecoder(f)
	require.True(t, dec.IsValidFile())
	assert.Equal(t, uint32(sampleRate), dec.SampleRate)
	assert.Equal(t, uint16(1), dec.NumChans)
	assert.Equal(t, uint16(16), dec.BitDepth)

	buf, err := dec.FullPCMBuffer()
	require.NoError(t, err)
	assert.Len(t, buf.Data, len(samples))
}

func TestPinkNoiseEnvelope(t *testing.T) {
	s := pinkNoise(rand.New(rand.NewPCG(3, 4)))
	assert.Equal(t, int(0.3*sampleRate), len(s))
	assert.InDelta(t, 0, s[0], 1e-9, "starts silent")
	for _, v := range s {
		assert.LessOrEqual(t, v, 1.0)
		assert.GreaterOrEqual(t, v, -1.0)
	}
}

func TestNarrationPath(t *testing.T) {
	assert.Equal(t, filepath.Join("a", "slide03.mp3"), NarrationPath("a", 2))
}

// fakePlayer writes a script that sleeps, standing in for a real player.
func fakePlayer(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "player.sh")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\nexec sleep 30\n"), 0o755))
	return path
}

func TestExecPlayerNarration(t *testing.T) {
	defer goleak.VerifyNone(t)

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(NarrationPath(dir, 0), []byte("x"), 0o644))
	p := NewExecPlayer(dir, fakePlayer(t), nil)

	require.NoError(t, p.Narrate(0))
	assert.True(t, p.Narrating())

	require.NoError(t, p.Narrate(0), "restarting replaces the old process")
	assert.True(t, p.Narrating())

	p.StopNarration()
	assert.False(t, p.Narrating())

	err := p.Narrate(5)
	assert.True(t, errors.Is(err, ErrUnavailable), "missing track: %v", err)

	done := make(chan error)
	go func() { done <- p.Close() }()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("Close did not return")
	}
}

func TestExecPlayerCloseStopsEffects(t *testing.T) {
	defer goleak.VerifyNone(t)

	p := NewExecPlayer("", fakePlayer(t), nil)
	p.PageTurn()
	p.Celebrate()

	done := make(chan error)
	go func() { done <- p.Close() }()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("Close did not stop running effects")
	}
}

func TestExecPlayerNoDir(t *testing.T) {
	p := NewExecPlayer("", fakePlayer(t), nil)
	assert.ErrorIs(t, p.Narrate(0), ErrUnavailable)
	assert.NoError(t, p.Close())
}
