package activity

import (
	"slices"

	"github.com/abhisek/storybook/internal/content"
)

// pairing is the drag-and-drop matching shared by DragMatch and
// CauseEffect. A drop is correct when key(source) == key(target); correct
// pairs lock and incorrect drops change nothing.
type pairing struct {
	base
	key       func(content.Token) string
	progress  Status
	shuffle   func(n int, swap func(i, j int))
	order     []int             // display order of targets
	lockedSrc map[string]string // source id -> target id
	lockedTgt map[string]string // target id -> source id
}

func (p *pairing) attachPairs(page *content.Page) error {
	fresh, err := p.bind(page)
	if err != nil || !fresh {
		return err
	}
	s := page.Surface
	if len(s.Sources) == 0 || len(s.Targets) == 0 {
		p.page = nil
		return surfaceErr("slide %d needs sources and targets", page.Index+1)
	}
	for _, src := range s.Sources {
		if !slices.ContainsFunc(s.Targets, func(t content.Token) bool { return p.key(t) == p.key(src) }) {
			p.page = nil
			return surfaceErr("slide %d: source %q has no target", page.Index+1, src.ID)
		}
	}
	p.lockedSrc = make(map[string]string)
	p.lockedTgt = make(map[string]string)
	p.order = make([]int, len(s.Targets))
	for i := range p.order {
		p.order[i] = i
	}
	if p.shuffle != nil {
		p.shuffle(len(p.order), func(i, j int) { p.order[i], p.order[j] = p.order[j], p.order[i] })
	}
	return nil
}

func findToken(ts []content.Token, id string) (content.Token, bool) {
	for _, t := range ts {
		if t.ID == id {
			return t, true
		}
	}
	return content.Token{}, false
}

func (p *pairing) Handle(ev Event) Outcome {
	if !p.attached() || p.done() || ev.Kind != EventDrop {
		return Outcome{}
	}
	s := p.surface()
	src, ok := findToken(s.Sources, ev.Source)
	if !ok || p.lockedSrc[src.ID] != "" {
		return Outcome{}
	}
	tgt, ok := findToken(s.Targets, ev.Target)
	if !ok || p.lockedTgt[tgt.ID] != "" {
		return Outcome{}
	}

	if p.key(src) != p.key(tgt) {
		return p.retry(Outcome{Status: StatusIncorrect, Message: p.msg("incorrect", "Try again.")})
	}

	p.lockedSrc[src.ID] = tgt.ID
	p.lockedTgt[tgt.ID] = src.ID
	if len(p.lockedSrc) == len(s.Sources) {
		return p.complete(Outcome{Status: StatusCorrect, Message: p.msg("correct", "Great job!")})
	}
	return Outcome{Status: p.progress, Message: p.msg("progress", "Correct! Keep matching.")}
}

// Locked reports whether the source with id has been matched.
func (p *pairing) Locked(id string) bool {
	return p.lockedSrc[id] != ""
}

func (p *pairing) Board() Board {
	b := p.boardBase()
	if !p.attached() {
		return b
	}
	s := p.surface()
	labels := make(map[string]string, len(s.Sources))
	for _, src := range s.Sources {
		st := ItemIdle
		if p.lockedSrc[src.ID] != "" {
			st = ItemLocked
		}
		labels[src.ID] = src.Label
		b.Sources = append(b.Sources, BoardItem{ID: src.ID, Label: src.Label, State: st})
	}
	for _, i := range p.order {
		t := s.Targets[i]
		item := BoardItem{ID: t.ID, Label: t.Label}
		if sid := p.lockedTgt[t.ID]; sid != "" {
			item.State = ItemLocked
			item.Filled = labels[sid]
		}
		b.Targets = append(b.Targets, item)
	}
	return b
}

// DragMatch pairs words with their meanings by identity key.
type DragMatch struct {
	pairing
}

func newDragMatch(b base, shuffle func(int, func(int, int))) *DragMatch {
	d := &DragMatch{pairing{base: b, progress: StatusCorrect}}
	d.key = func(t content.Token) string { return t.Match }
	if b.desc.Shuffle {
		d.shuffle = shuffle
	}
	return d
}

func (d *DragMatch) Attach(page *content.Page) error { return d.attachPairs(page) }

// CauseEffect pairs causes with effects by their effect attribute.
type CauseEffect struct {
	pairing
}

func newCauseEffect(b base) *CauseEffect {
	c := &CauseEffect{pairing{base: b, progress: StatusInfo}}
	c.key = func(t content.Token) string { return t.Effect }
	return c
}

func (c *CauseEffect) Attach(page *content.Page) error { return c.attachPairs(page) }
