// Package content loads story pages: a markdown body plus the activity
// surface described in YAML front matter.
package content

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// FallbackMessage is shown in place of a page that could not be loaded.
const FallbackMessage = "Sorry, this slide could not be loaded."

// Page is one loaded slide.
type Page struct {
	Index   int
	Title   string
	Body    string // markdown
	Surface Surface
	Source  string // path the page was read from
}

// Surface describes the interactive parts of a page. Which fields are used
// depends on the slide's activity kind.
type Surface struct {
	Prompt string `yaml:"prompt"`
	Action string `yaml:"action"` // button label for prompt/reward/restart
	Toggle string `yaml:"toggle"` // reveal toggle label

	Choices []Choice `yaml:"choices" validate:"dive"`
	Sources []Token  `yaml:"sources" validate:"dive"`
	Targets []Token  `yaml:"targets" validate:"dive"`
	Items   []Item   `yaml:"items" validate:"dive"`
	Slots   []Slot   `yaml:"slots" validate:"dive"`
	Fields  []Field  `yaml:"fields" validate:"dive"`
	Meter   *Meter   `yaml:"meter"`

	// Feedback overrides the default messages, keyed by outcome name
	// ("correct", "incorrect", "progress", "reveal", ...).
	Feedback map[string]string `yaml:"feedback"`
}

// Choice is a selectable option.
type Choice struct {
	ID       string `yaml:"id" validate:"required"`
	Label    string `yaml:"label" validate:"required"`
	Correct  bool   `yaml:"correct"`
	Good     bool   `yaml:"good"`     // counts toward a meter
	Feedback string `yaml:"feedback"` // per-choice message
	Status   string `yaml:"status" validate:"omitempty,oneof=correct incorrect info"`
	Value    string `yaml:"value"` // remembered answer text
}

// Token is one side of a pairing activity.
type Token struct {
	ID     string `yaml:"id" validate:"required"`
	Label  string `yaml:"label" validate:"required"`
	Match  string `yaml:"match"`
	Effect string `yaml:"effect"`
}

// Item is a draggable piece of a sequencing activity.
type Item struct {
	ID    string `yaml:"id" validate:"required"`
	Label string `yaml:"label" validate:"required"`
	Order int    `yaml:"order" validate:"min=1"`
}

// Slot is an ordered drop position of a sequencing activity.
type Slot struct {
	Order int    `yaml:"order" validate:"min=1"`
	Label string `yaml:"label"`
}

// Field is a free-text input.
type Field struct {
	Key         string `yaml:"key" validate:"required"`
	Label       string `yaml:"label"`
	Placeholder string `yaml:"placeholder"`
}

// Meter is the running count shown by multi-select activities.
type Meter struct {
	Label  string `yaml:"label"`
	Target int    `yaml:"target" validate:"min=1"`
}

// Message returns the feedback override for key, or def.
func (s Surface) Message(key, def string) string {
	if m, ok := s.Feedback[key]; ok && m != "" {
		return m
	}
	return def
}

// frontMatter is the YAML header of a page file.
type frontMatter struct {
	Title   string  `yaml:"title" validate:"required"`
	Surface Surface `yaml:"surface"`
}

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

var fence = []byte("---")

// ErrNoFrontMatter is returned for page files without a YAML header.
var ErrNoFrontMatter = errors.New("missing front matter")

// Parse decodes a page file. source is recorded on the page for messages.
func Parse(index int, source string, data []byte) (*Page, error) {
	data = bytes.TrimLeft(data, "\ufeff \t\r\n")
	if !bytes.HasPrefix(data, fence) {
		return nil, ErrNoFrontMatter
	}
	rest := data[len(fence):]
	end := bytes.Index(rest, append([]byte("\n"), fence...))
	if end < 0 {
		return nil, fmt.Errorf("unterminated front matter")
	}
	header := rest[:end]
	body := rest[end+1+len(fence):]

	var fm frontMatter
	if err := yaml.Unmarshal(header, &fm); err != nil {
		return nil, fmt.Errorf("decode front matter: %w", err)
	}
	if err := getValidator().Struct(fm); err != nil {
		return nil, fmt.Errorf("validate front matter: %w", err)
	}

	return &Page{
		Index:   index,
		Title:   fm.Title,
		Body:    strings.TrimSpace(string(body)),
		Surface: fm.Surface,
		Source:  source,
	}, nil
}
