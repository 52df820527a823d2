package book

import (
	"time"

	"github.com/abhisek/storybook/internal/content"
	"github.com/abhisek/storybook/internal/navigation"
)

// pageLoadedMsg carries a fetched page back to the update loop.
type pageLoadedMsg struct {
	Ticket navigation.Ticket
	Page   *content.Page
	Err    error
}

// narrationTickMsg refreshes the listen indicator while narration plays.
type narrationTickMsg time.Time

// ContentChangedMsg reports that a page file changed on disk. Index is a
// slide index or content.AllPages.
type ContentChangedMsg struct {
	Index int
}
