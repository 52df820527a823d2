package activity

import (
	"strconv"

	"github.com/abhisek/storybook/internal/content"
)

// SlotID returns the target id of the sequence slot with the given order.
func SlotID(order int) string { return strconv.Itoa(order) }

// Sequence places items into ordered slots. An item only locks into the
// slot matching its order, and leaves the pool when it does.
type Sequence struct {
	base
	placed map[int]string // slot order -> item id
	pool   map[string]bool
}

func (s *Sequence) Attach(page *content.Page) error {
	fresh, err := s.bind(page)
	if err != nil || !fresh {
		return err
	}
	sf := page.Surface
	if len(sf.Items) == 0 {
		s.page = nil
		return surfaceErr("slide %d has no items", page.Index+1)
	}
	slots := make(map[int]bool, len(sf.Slots))
	for _, sl := range sf.Slots {
		slots[sl.Order] = true
	}
	taken := make(map[int]string, len(sf.Items))
	for _, it := range sf.Items {
		if !slots[it.Order] {
			s.page = nil
			return surfaceErr("slide %d: item %q has no slot %d", page.Index+1, it.ID, it.Order)
		}
		if other, ok := taken[it.Order]; ok {
			s.page = nil
			return surfaceErr("slide %d: items %q and %q share slot %d", page.Index+1, other, it.ID, it.Order)
		}
		taken[it.Order] = it.ID
	}
	s.placed = make(map[int]string)
	s.pool = make(map[string]bool, len(sf.Items))
	for _, it := range sf.Items {
		s.pool[it.ID] = true
	}
	return nil
}

func (s *Sequence) Handle(ev Event) Outcome {
	if !s.attached() || s.done() || ev.Kind != EventDrop || !s.pool[ev.Source] {
		return Outcome{}
	}
	order, err := strconv.Atoi(ev.Target)
	if err != nil || s.placed[order] != "" {
		return Outcome{}
	}
	var item content.Item
	for _, it := range s.surface().Items {
		if it.ID == ev.Source {
			item = it
			break
		}
	}
	if !s.hasSlot(order) {
		return Outcome{}
	}

	if item.Order != order {
		return s.retry(Outcome{Status: StatusIncorrect, Message: s.msg("incorrect", "Not quite. Try a different spot.")})
	}
	s.placed[order] = item.ID
	delete(s.pool, item.ID)
	if len(s.pool) == 0 {
		return s.complete(Outcome{Status: StatusCorrect, Message: s.msg("correct", "Everything is in order!")})
	}
	return Outcome{Status: StatusInfo, Message: s.msg("progress", "Nice! Keep going.")}
}

func (s *Sequence) hasSlot(order int) bool {
	for _, sl := range s.surface().Slots {
		if sl.Order == order {
			return true
		}
	}
	return false
}

// Remaining returns how many items are still in the pool.
func (s *Sequence) Remaining() int { return len(s.pool) }

func (s *Sequence) Board() Board {
	b := s.boardBase()
	if !s.attached() {
		return b
	}
	sf := s.surface()
	labels := make(map[string]string, len(sf.Items))
	for _, it := range sf.Items {
		labels[it.ID] = it.Label
		if s.pool[it.ID] {
			b.Sources = append(b.Sources, BoardItem{ID: it.ID, Label: it.Label})
		}
	}
	for _, sl := range sf.Slots {
		item := BoardItem{ID: SlotID(sl.Order), Label: sl.Label}
		if id := s.placed[sl.Order]; id != "" {
			item.State = ItemLocked
			item.Filled = labels[id]
		}
		b.Targets = append(b.Targets, item)
	}
	return b
}
