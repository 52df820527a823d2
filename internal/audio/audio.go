// Package audio plays narration and sound effects through an external
// player command. Every failure degrades to silence.
package audio

import "errors"

// Player is the audio collaborator of the book.
type Player interface {
	// Narrate starts the narration track of slide index, stopping any
	// narration already playing.
	Narrate(index int) error
	StopNarration()
	Narrating() bool
	// PageTurn plays the one-shot page flip effect.
	PageTurn()
	// Celebrate plays the one-shot finishing effect.
	Celebrate()
	Close() error
}

// ErrUnavailable is returned when no narration can be played.
var ErrUnavailable = errors.New("audio unavailable")

// Nop is a silent Player.
type Nop struct{}

func (Nop) Narrate(int) error { return ErrUnavailable }
func (Nop) StopNarration()    {}
func (Nop) Narrating() bool   { return false }
func (Nop) PageTurn()         {}
func (Nop) Celebrate()        {}
func (Nop) Close() error      { return nil }
