package home

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/storybook/internal/ui/theme"
)

// PipVariant selects which bunny art to display.
type PipVariant int

const (
	PipHiding  PipVariant = iota // nothing read yet
	PipPeeking                   // part way through
	PipHappy                     // every page finished
)

const pipHiding = `      (\(\
  ____( -.-)____
 |   log  log   |`

const pipPeeking = `   (\_/)
   ( •.•)
   / >🥕`

const pipHappy = `   (\_/)
 ★ (^.^) ★
   (")(")`

// RenderPip returns the bunny art for the given variant.
func RenderPip(v PipVariant) string {
	art := pipHiding
	fg := theme.TextDim

	switch v {
	case PipPeeking:
		art = pipPeeking
		fg = theme.Primary
	case PipHappy:
		art = pipHappy
		fg = theme.Accent
	}

	return lipgloss.NewStyle().
		Foreground(fg).
		Render(art)
}
