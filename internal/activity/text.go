package activity

import (
	"fmt"
	"strings"

	"github.com/abhisek/storybook/internal/content"
)

// Reason says why a sentence was rejected.
type Reason int

const (
	ReasonEmpty Reason = iota + 1
	ReasonMultiple
)

// ValidationError reports free text that is not a single sentence.
type ValidationError struct {
	Field  int // index of the offending field
	Reason Reason
}

func (e *ValidationError) Error() string {
	switch e.Reason {
	case ReasonEmpty:
		return fmt.Sprintf("field %d is empty", e.Field)
	default:
		return fmt.Sprintf("field %d has more than one sentence", e.Field)
	}
}

const terminators = ".!?"

// ValidateSentence accepts text that, once trimmed, is non-empty, has at
// most one sentence terminator and no line break.
func ValidateSentence(text string) error {
	t := strings.TrimSpace(text)
	if t == "" {
		return &ValidationError{Reason: ReasonEmpty}
	}
	if strings.ContainsAny(t, "\r\n") {
		return &ValidationError{Reason: ReasonMultiple}
	}
	n := 0
	for _, r := range t {
		if strings.ContainsRune(terminators, r) {
			n++
		}
	}
	if n > 1 {
		return &ValidationError{Reason: ReasonMultiple}
	}
	return nil
}

// validateFields checks fields in order and stops at the first failure.
func validateFields(fields []string, want int) error {
	for i := 0; i < want; i++ {
		var v string
		if i < len(fields) {
			v = fields[i]
		}
		if err := ValidateSentence(v); err != nil {
			err.(*ValidationError).Field = i
			return err
		}
	}
	return nil
}

// textEntry holds the fields and remembered values of the text activities.
type textEntry struct {
	base
	values []string
}

func (t *textEntry) attachFields(page *content.Page) error {
	fresh, err := t.bind(page)
	if err != nil || !fresh {
		return err
	}
	n := len(page.Surface.Fields)
	if n == 0 || n != len(t.desc.AuxKeys) {
		t.page = nil
		return surfaceErr("slide %d has %d fields for %d answers", page.Index+1, n, len(t.desc.AuxKeys))
	}
	t.values = make([]string, n)
	for i, key := range t.desc.AuxKeys {
		t.values[i] = t.env.Aux().Load(key)
	}
	return nil
}

func (t *textEntry) submit(ev Event, emptyMsg, multiMsg string) Outcome {
	if !t.attached() || t.done() || ev.Kind != EventSubmit {
		return Outcome{}
	}
	for i := range t.values {
		if i < len(ev.Fields) {
			t.values[i] = ev.Fields[i]
		}
	}
	if err := validateFields(ev.Fields, len(t.values)); err != nil {
		msg := multiMsg
		if err.(*ValidationError).Reason == ReasonEmpty {
			msg = emptyMsg
		}
		return t.retry(Outcome{Status: StatusIncorrect, Message: msg})
	}
	for i, key := range t.desc.AuxKeys {
		t.values[i] = strings.TrimSpace(t.values[i])
		t.env.Aux().Save(key, t.values[i])
	}
	return t.complete(Outcome{Status: StatusCorrect, Message: t.msg("correct", "Thanks for writing!")})
}

func (t *textEntry) Board() Board {
	b := t.boardBase()
	if !t.attached() {
		return b
	}
	for i, f := range t.surface().Fields {
		b.Fields = append(b.Fields, FieldState{
			Key:         f.Key,
			Label:       f.Label,
			Placeholder: f.Placeholder,
			Value:       t.values[i],
		})
	}
	if b.Action == "" {
		b.Action = "Submit"
	}
	return b
}

// FreeText accepts one sentence and remembers it.
type FreeText struct {
	textEntry
}

func (f *FreeText) Attach(page *content.Page) error { return f.attachFields(page) }

func (f *FreeText) Handle(ev Event) Outcome {
	return f.submit(ev,
		f.msg("empty", "Please type your sentence before submitting."),
		f.msg("multiple", "Please write only one sentence."))
}

// MultiFieldText accepts one sentence per field.
type MultiFieldText struct {
	textEntry
}

func (m *MultiFieldText) Attach(page *content.Page) error { return m.attachFields(page) }

func (m *MultiFieldText) Handle(ev Event) Outcome {
	return m.submit(ev,
		m.msg("empty", "Please write one short sentence in each panel."),
		m.msg("multiple", "Keep each panel to just one sentence."))
}
