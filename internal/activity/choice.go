package activity

import (
	"github.com/abhisek/storybook/internal/content"
)

// Prompt completes when the page's action is pressed.
type Prompt struct {
	base
}

func (p *Prompt) Attach(page *content.Page) error {
	_, err := p.bind(page)
	return err
}

func (p *Prompt) Handle(ev Event) Outcome {
	if !p.attached() || p.done() || ev.Kind != EventAction {
		return Outcome{}
	}
	return p.complete(Outcome{Status: StatusCorrect, Message: p.msg("correct", "Let's begin!")})
}

func (p *Prompt) Board() Board {
	b := p.boardBase()
	if b.Action == "" && p.attached() {
		b.Action = "Start"
	}
	return b
}

// choices is the selectable option list shared by the choice activities.
type choices struct {
	base
	selected string
}

func (c *choices) attachChoices(page *content.Page) (bool, error) {
	fresh, err := c.bind(page)
	if err != nil || !fresh {
		return fresh, err
	}
	if len(page.Surface.Choices) == 0 {
		c.page = nil
		return false, surfaceErr("slide %d has no choices", page.Index+1)
	}
	c.selected = ""
	return true, nil
}

func (c *choices) find(id string) (content.Choice, bool) {
	for _, ch := range c.surface().Choices {
		if ch.ID == id {
			return ch, true
		}
	}
	return content.Choice{}, false
}

func (c *choices) choiceItems(disabled bool) []BoardItem {
	cs := c.surface().Choices
	items := make([]BoardItem, len(cs))
	for i, ch := range cs {
		st := ItemIdle
		switch {
		case disabled:
			st = ItemDisabled
		case ch.ID == c.selected && c.done():
			st = ItemLocked
		case ch.ID == c.selected:
			st = ItemSelected
		}
		items[i] = BoardItem{ID: ch.ID, Label: ch.Label, State: st}
	}
	return items
}

// Poll completes on any answer. The designated option gets the "correct"
// message and the rest the "incorrect" one. Changing the answer afterwards
// updates the feedback without completing again.
type Poll struct {
	choices
}

func (p *Poll) Attach(page *content.Page) error {
	_, err := p.attachChoices(page)
	return err
}

func (p *Poll) Handle(ev Event) Outcome {
	if !p.attached() || ev.Kind != EventSelect {
		return Outcome{}
	}
	ch, ok := p.find(ev.Choice)
	if !ok {
		return Outcome{}
	}
	p.selected = ch.ID
	if ch.Correct {
		return p.complete(Outcome{Status: StatusCorrect, Message: p.msg("correct", "Great choice!")})
	}
	return p.complete(Outcome{Status: StatusIncorrect, Message: p.msg("incorrect", "Thanks for sharing!")})
}

func (p *Poll) Board() Board {
	b := p.boardBase()
	b.Choices = p.choiceItems(false)
	for i := range b.Choices {
		if b.Choices[i].State == ItemLocked {
			b.Choices[i].State = ItemSelected
		}
	}
	return b
}

// SingleChoice completes when the designated option is picked.
type SingleChoice struct {
	choices
}

func (s *SingleChoice) Attach(page *content.Page) error {
	_, err := s.attachChoices(page)
	return err
}

func (s *SingleChoice) Handle(ev Event) Outcome {
	if !s.attached() || s.done() || ev.Kind != EventSelect {
		return Outcome{}
	}
	return s.pick(ev.Choice)
}

func (s *SingleChoice) pick(id string) Outcome {
	ch, ok := s.find(id)
	if !ok {
		return Outcome{}
	}
	s.selected = ch.ID
	if ch.Correct {
		return s.complete(Outcome{Status: StatusCorrect, Message: s.msg("correct", "Correct!")})
	}
	return s.retry(Outcome{Status: StatusIncorrect, Message: s.msg("incorrect", "Try again.")})
}

func (s *SingleChoice) Board() Board {
	b := s.boardBase()
	b.Choices = s.choiceItems(false)
	return b
}

// Branch has one correct option; every other option answers with its own
// feedback and status.
type Branch struct {
	choices
}

func (br *Branch) Attach(page *content.Page) error {
	_, err := br.attachChoices(page)
	return err
}

func (br *Branch) Handle(ev Event) Outcome {
	if !br.attached() || br.done() || ev.Kind != EventSelect {
		return Outcome{}
	}
	ch, ok := br.find(ev.Choice)
	if !ok {
		return Outcome{}
	}
	br.selected = ch.ID
	if ch.Correct {
		msg := ch.Feedback
		if msg == "" {
			msg = br.msg("correct", "Good choice!")
		}
		return br.complete(Outcome{Status: StatusCorrect, Message: msg})
	}
	status := StatusIncorrect
	if ch.Status != "" {
		status = Status(ch.Status)
	}
	msg := ch.Feedback
	if msg == "" {
		msg = br.msg("incorrect", "Try again.")
	}
	return br.retry(Outcome{Status: status, Message: msg})
}

func (br *Branch) Board() Board {
	b := br.boardBase()
	b.Choices = br.choiceItems(false)
	return b
}

// RevealGate hides a single-choice question behind a toggle. The correct
// answer is remembered.
type RevealGate struct {
	SingleChoice
	revealed bool
}

func (r *RevealGate) Attach(page *content.Page) error {
	fresh, err := r.attachChoices(page)
	if fresh {
		r.revealed = false
	}
	return err
}

func (r *RevealGate) Handle(ev Event) Outcome {
	if !r.attached() || r.done() {
		return Outcome{}
	}
	switch ev.Kind {
	case EventToggle, EventAction:
		if r.revealed {
			return Outcome{}
		}
		r.revealed = true
		return Outcome{Status: StatusInfo, Message: r.msg("reveal", "Pick one answer.")}
	case EventSelect:
		if !r.revealed {
			return Outcome{}
		}
		o := r.pick(ev.Choice)
		if r.done() {
			r.remember()
		}
		return o
	}
	return Outcome{}
}

func (r *RevealGate) remember() {
	if len(r.desc.AuxKeys) == 0 {
		return
	}
	ch, _ := r.find(r.selected)
	v := ch.Value
	if v == "" {
		v = ch.Label
	}
	r.env.Aux().Save(r.desc.AuxKeys[0], v)
}

// Revealed reports whether the toggle has been activated.
func (r *RevealGate) Revealed() bool { return r.revealed }

func (r *RevealGate) Board() Board {
	b := r.boardBase()
	b.Toggle = r.surface().Toggle
	if b.Toggle == "" && r.attached() {
		b.Toggle = "Reveal"
	}
	b.Revealed = r.revealed
	b.Choices = r.choiceItems(!r.revealed)
	return b
}
