package activity

import "github.com/abhisek/storybook/internal/content"

// AutoComplete completes as soon as the slide is shown. Its action jumps
// to the final slide.
type AutoComplete struct {
	base
}

func (a *AutoComplete) Attach(page *content.Page) error {
	_, err := a.bind(page)
	return err
}

func (a *AutoComplete) Begin() Outcome {
	if !a.attached() {
		return Outcome{}
	}
	return a.complete(Outcome{Status: StatusCorrect, Message: a.msg("correct", "You finished the story!")})
}

func (a *AutoComplete) Handle(ev Event) Outcome {
	if !a.attached() || ev.Kind != EventAction || a.surface().Action == "" {
		return Outcome{}
	}
	return Outcome{Action: ActionJumpToEnd}
}

func (a *AutoComplete) Board() Board { return a.boardBase() }

// Terminal is the final slide: it completes on display, celebrates once
// per visit and offers a restart.
type Terminal struct {
	base
	celebrated bool
}

func (t *Terminal) Attach(page *content.Page) error {
	_, err := t.bind(page)
	return err
}

func (t *Terminal) Begin() Outcome {
	if !t.attached() {
		return Outcome{}
	}
	if !t.celebrated {
		t.celebrated = true
		t.env.Celebrate()
	}
	return t.complete(Outcome{Status: StatusCorrect, Message: t.msg("correct", "You did it!")})
}

func (t *Terminal) Handle(ev Event) Outcome {
	if !t.attached() || ev.Kind != EventAction {
		return Outcome{}
	}
	return Outcome{Action: ActionRestart}
}

func (t *Terminal) Board() Board {
	b := t.boardBase()
	if b.Action == "" && t.attached() {
		b.Action = "Read again"
	}
	return b
}
