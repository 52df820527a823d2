// Package slides holds the compiled-in table of pages: which activity
// variant governs each slide and which remembered answers it owns.
package slides

import "fmt"

// Count is the fixed number of slides in the book.
const Count = 16

// Kind identifies the activity variant attached to a slide.
type Kind int

const (
	KindPrompt         Kind = iota // single action button completes
	KindPoll                       // any choice completes, feedback varies
	KindSingleChoice               // one correct option completes
	KindBranch                     // one correct option, per-option feedback
	KindDragMatch                  // pair keys with targets by identity
	KindSequence                   // place items into ordered slots
	KindCauseEffect                // pair causes with effects
	KindMultiSelect                // toggle picks toward a target count
	KindFreeText                   // one validated sentence
	KindMultiFieldText             // one validated sentence per field
	KindRevealGate                 // toggle reveals a single-choice question
	KindAutoComplete               // completes on display
	KindTerminal                   // completes on display, celebrates, restarts
)

var kindNames = map[Kind]string{
	KindPrompt:         "prompt",
	KindPoll:           "poll",
	KindSingleChoice:   "single-choice",
	KindBranch:         "branch",
	KindDragMatch:      "drag-match",
	KindSequence:       "sequence",
	KindCauseEffect:    "cause-effect",
	KindMultiSelect:    "multi-select",
	KindFreeText:       "free-text",
	KindMultiFieldText: "multi-field-text",
	KindRevealGate:     "reveal-gate",
	KindAutoComplete:   "auto-complete",
	KindTerminal:       "terminal",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Descriptor is the static definition of one slide.
type Descriptor struct {
	Index    int
	Kind     Kind
	Activity string

	// AuxKeys are storage keys this slide's activity writes. A full reset
	// removes all of them.
	AuxKeys []string

	// Narration is false for slides without a narration track.
	Narration bool

	// Shuffle reorders the drop targets on every visit.
	Shuffle bool
}

// Number returns the one-indexed, zero-padded slide number used in file
// names ("01".."16").
func (d Descriptor) Number() string {
	return Number(d.Index)
}

// Number returns the zero-padded one-indexed form of index.
func Number(index int) string {
	return fmt.Sprintf("%02d", index+1)
}

var table = [Count]Descriptor{
	{Index: 0, Kind: KindPrompt, Activity: "cover", Narration: true},
	{Index: 1, Kind: KindPoll, Activity: "weekly-question", Narration: true},
	{Index: 2, Kind: KindDragMatch, Activity: "vocabulary", Narration: true, Shuffle: true},
	{Index: 3, Kind: KindBranch, Activity: "trusting-pip", Narration: true},
	{Index: 4, Kind: KindBranch, Activity: "genre-focus", Narration: true},
	{Index: 5, Kind: KindSequence, Activity: "story-hill", Narration: true},
	{Index: 6, Kind: KindSingleChoice, Activity: "kindness-pick", Narration: true},
	{Index: 7, Kind: KindFreeText, Activity: "picture-walk", AuxKeys: []string{"prediction"}, Narration: true},
	{Index: 8, Kind: KindRevealGate, Activity: "mystery-box", AuxKeys: []string{"mystery-box"}, Narration: true},
	{Index: 9, Kind: KindMultiSelect, Activity: "heart-meter", Narration: true},
	{Index: 10, Kind: KindCauseEffect, Activity: "dominoes", Narration: true},
	{Index: 11, Kind: KindSingleChoice, Activity: "big-moment", Narration: true},
	{Index: 12, Kind: KindSingleChoice, Activity: "advice-board", Narration: true},
	{Index: 13, Kind: KindMultiFieldText, Activity: "story-strip", AuxKeys: []string{
		"story-strip-beginning",
		"story-strip-middle",
		"story-strip-end",
	}, Narration: true},
	{Index: 14, Kind: KindAutoComplete, Activity: "the-end", Narration: true},
	{Index: 15, Kind: KindTerminal, Activity: "winning-moment"},
}

// Get returns the descriptor for index.
func Get(index int) (Descriptor, bool) {
	if index < 0 || index >= Count {
		return Descriptor{}, false
	}
	return table[index], true
}

// All returns every descriptor in slide order.
func All() []Descriptor {
	out := make([]Descriptor, Count)
	copy(out, table[:])
	return out
}

// AuxKeys returns every auxiliary storage key owned by any slide.
func AuxKeys() []string {
	var keys []string
	for _, d := range table {
		keys = append(keys, d.AuxKeys...)
	}
	return keys
}

// Last is the index of the final slide.
const Last = Count - 1
