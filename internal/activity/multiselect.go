package activity

import (
	"github.com/abhisek/storybook/internal/content"
)

// MultiSelect fills a meter with qualifying picks. Reaching the target
// completes; picks can be toggled off again, and doing so after completion
// does not take the completion back.
type MultiSelect struct {
	base
	target   int
	selected map[string]bool
	good     map[string]bool // selected qualifying picks
}

func (m *MultiSelect) Attach(page *content.Page) error {
	fresh, err := m.bind(page)
	if err != nil || !fresh {
		return err
	}
	sf := page.Surface
	goods := 0
	for _, ch := range sf.Choices {
		if ch.Good {
			goods++
		}
	}
	m.target = goods
	if sf.Meter != nil {
		m.target = sf.Meter.Target
	}
	if m.target == 0 || m.target > goods {
		m.page = nil
		return surfaceErr("slide %d: meter target %d with %d qualifying choices", page.Index+1, m.target, goods)
	}
	m.selected = make(map[string]bool)
	m.good = make(map[string]bool)
	return nil
}

// Count is the number of qualifying picks currently selected.
func (m *MultiSelect) Count() int { return len(m.good) }

func (m *MultiSelect) Handle(ev Event) Outcome {
	if !m.attached() || (ev.Kind != EventToggle && ev.Kind != EventSelect) {
		return Outcome{}
	}
	var ch content.Choice
	found := false
	for _, c := range m.surface().Choices {
		if c.ID == ev.Choice {
			ch, found = c, true
			break
		}
	}
	if !found {
		return Outcome{}
	}

	if m.selected[ch.ID] {
		delete(m.selected, ch.ID)
		delete(m.good, ch.ID)
		return m.meter(m.status())
	}

	m.selected[ch.ID] = true
	if !ch.Good {
		o := m.meter(Outcome{Status: StatusIncorrect, Message: m.msg("incorrect", "Try a kinder choice.")})
		return m.retry(o)
	}
	m.good[ch.ID] = true
	if len(m.good) >= m.target {
		return m.complete(m.meter(Outcome{Status: StatusCorrect, Message: m.msg("correct", "You filled the meter!")}))
	}
	return m.meter(Outcome{Status: StatusInfo, Message: m.msg("progress", "Nice pick! Choose another.")})
}

// status is the outcome shown after a pick is removed.
func (m *MultiSelect) status() Outcome {
	if m.done() {
		return Outcome{Status: StatusCorrect, Message: m.msg("correct", "You filled the meter!")}
	}
	return Outcome{Status: StatusInfo, Message: m.msg("progress", "Nice pick! Choose another.")}
}

func (m *MultiSelect) meter(o Outcome) Outcome {
	o.Count = len(m.good)
	o.Total = m.target
	return o
}

func (m *MultiSelect) Board() Board {
	b := m.boardBase()
	if !m.attached() {
		return b
	}
	sf := m.surface()
	for _, ch := range sf.Choices {
		st := ItemIdle
		if m.selected[ch.ID] {
			st = ItemSelected
		}
		b.Choices = append(b.Choices, BoardItem{ID: ch.ID, Label: ch.Label, State: st})
	}
	label := "Meter"
	if sf.Meter != nil && sf.Meter.Label != "" {
		label = sf.Meter.Label
	}
	b.Meter = &MeterState{Label: label, Count: len(m.good), Target: m.target}
	return b
}
