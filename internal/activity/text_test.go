package activity

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateSentence(t *testing.T) {
	tests := []struct {
		in   string
		want Reason
	}{
		{"Pip runs fast.", 0},
		{"Pip runs fast", 0},
		{"  Pip hides!  ", 0},
		{"", ReasonEmpty},
		{"   \t ", ReasonEmpty},
		{"Pip runs. Fast!", ReasonMultiple},
		{"Really?!", ReasonMultiple},
		{"Wait...", ReasonMultiple},
		{"Pip runs\nfast", ReasonMultiple},
	}
	for _, tt := range tests {
		err := ValidateSentence(tt.in)
		if tt.want == 0 {
			assert.NoError(t, err, "%q", tt.in)
			continue
		}
		var ve *ValidationError
		if assert.True(t, errors.As(err, &ve), "%q", tt.in) {
			assert.Equal(t, tt.want, ve.Reason, "%q", tt.in)
		}
	}
}

func submit(fields ...string) Event { return Event{Kind: EventSubmit, Fields: fields} }

func TestFreeText(t *testing.T) {
	env := newFakeEnv()
	ev := attach(t, 7, env)

	o := ev.Handle(submit("  "))
	assert.Equal(t, "Please type your sentence before submitting.", o.Message)
	o = ev.Handle(submit("Pip runs. Fast!"))
	assert.Equal(t, StatusIncorrect, o.Status)
	assert.Equal(t, "Please write only one sentence.", o.Message)
	assert.Equal(t, PhaseRetry, ev.Phase())
	assert.Empty(t, env.aux["prediction"])

	o = ev.Handle(submit("  Pip runs fast.  "))
	assert.Equal(t, StatusCorrect, o.Status)
	assert.Equal(t, "Pip runs fast.", env.aux["prediction"])
	assert.Equal(t, 1, env.completes)

	assert.True(t, ev.Handle(submit("Another one.")).IsZero())
	assert.Equal(t, "Pip runs fast.", env.aux["prediction"])
}

func TestFreeTextPrefill(t *testing.T) {
	env := newFakeEnv()
	env.aux["prediction"] = "Pip will find a box."
	ev := attach(t, 7, env)

	fields := ev.Board().Fields
	if assert.Len(t, fields, 1) {
		assert.Equal(t, "Pip will find a box.", fields[0].Value)
	}
}

func TestMultiFieldShortCircuits(t *testing.T) {
	env := newFakeEnv()
	ev := attach(t, 13, env)

	o := ev.Handle(submit("Katya met Pip.", "", "Two. Sentences."))
	assert.Equal(t, "Please write one short sentence in each panel.", o.Message)

	o = ev.Handle(submit("Katya met Pip.", "She waited. And waited.", ""))
	assert.Equal(t, "Keep each panel to just one sentence.", o.Message)
	assert.Zero(t, env.completes)
	assert.Empty(t, env.aux)

	o = ev.Handle(submit("Katya met Pip.", "She waited every day.", "Pip trusted her!"))
	assert.Equal(t, StatusCorrect, o.Status)
	assert.Equal(t, 1, env.completes)
	assert.Equal(t, "She waited every day.", env.aux["story-strip-middle"])
	assert.Equal(t, "Pip trusted her!", env.aux["story-strip-end"])
}

func TestMultiFieldMissingFieldsAreEmpty(t *testing.T) {
	env := newFakeEnv()
	ev := attach(t, 13, env)

	o := ev.Handle(submit("Only one."))
	assert.Equal(t, StatusIncorrect, o.Status)
	assert.Equal(t, "Please write one short sentence in each panel.", o.Message)
}
