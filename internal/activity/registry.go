package activity

import (
	"fmt"
	"math/rand/v2"
	"sync"

	"github.com/abhisek/storybook/internal/slides"
)

type constructor func(b base, shuffle func(int, func(int, int))) Evaluator

var constructors = map[slides.Kind]constructor{
	slides.KindPrompt:         func(b base, _ func(int, func(int, int))) Evaluator { return &Prompt{base: b} },
	slides.KindPoll:           func(b base, _ func(int, func(int, int))) Evaluator { return &Poll{choices{base: b}} },
	slides.KindSingleChoice:   func(b base, _ func(int, func(int, int))) Evaluator { return &SingleChoice{choices{base: b}} },
	slides.KindBranch:         func(b base, _ func(int, func(int, int))) Evaluator { return &Branch{choices{base: b}} },
	slides.KindDragMatch:      func(b base, sh func(int, func(int, int))) Evaluator { return newDragMatch(b, sh) },
	slides.KindSequence:       func(b base, _ func(int, func(int, int))) Evaluator { return &Sequence{base: b} },
	slides.KindCauseEffect:    func(b base, _ func(int, func(int, int))) Evaluator { return newCauseEffect(b) },
	slides.KindMultiSelect:    func(b base, _ func(int, func(int, int))) Evaluator { return &MultiSelect{base: b} },
	slides.KindFreeText:       func(b base, _ func(int, func(int, int))) Evaluator { return &FreeText{textEntry{base: b}} },
	slides.KindMultiFieldText: func(b base, _ func(int, func(int, int))) Evaluator { return &MultiFieldText{textEntry{base: b}} },
	slides.KindRevealGate: func(b base, _ func(int, func(int, int))) Evaluator {
		return &RevealGate{SingleChoice: SingleChoice{choices{base: b}}}
	},
	slides.KindAutoComplete: func(b base, _ func(int, func(int, int))) Evaluator { return &AutoComplete{base: b} },
	slides.KindTerminal:     func(b base, _ func(int, func(int, int))) Evaluator { return &Terminal{base: b} },
}

// Registry creates the evaluator registered for each slide.
type Registry struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewRegistry returns a registry drawing shuffles from rng, or from a
// randomly seeded source when rng is nil.
func NewRegistry(rng *rand.Rand) *Registry {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Registry{rng: rng}
}

// New returns a fresh evaluator for slide index bound to env.
func (r *Registry) New(index int, env Env) (Evaluator, error) {
	d, ok := slides.Get(index)
	if !ok {
		return nil, fmt.Errorf("no slide %d", index)
	}
	ctor, ok := constructors[d.Kind]
	if !ok {
		return nil, fmt.Errorf("slide %d: no evaluator for %s", index, d.Kind)
	}
	return ctor(base{desc: d, env: env}, r.shuffle), nil
}

func (r *Registry) shuffle(n int, swap func(i, j int)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rng.Shuffle(n, swap)
}
