package session

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"

	"go.uber.org/zap"

	"github.com/abhisek/storybook/internal/logging"
	"github.com/abhisek/storybook/internal/slides"
	"github.com/abhisek/storybook/internal/store"
)

// ProgressKey is the storage key of the persisted progress record.
const ProgressKey = "storybook-progress"

// Progress is the part of the reading state that survives restarts.
type Progress struct {
	CurrentSlide    int   `json:"currentSlide"`
	CompletedSlides []int `json:"completedSlides"`
}

// normalize clamps the record into range for total slides and sorts the
// completed set without duplicates.
func (p Progress) normalize(total int) Progress {
	if p.CurrentSlide < 0 || p.CurrentSlide >= total {
		p.CurrentSlide = 0
	}
	done := make([]int, 0, len(p.CompletedSlides))
	for _, i := range p.CompletedSlides {
		if i >= 0 && i < total {
			done = append(done, i)
		}
	}
	slices.Sort(done)
	p.CompletedSlides = slices.Compact(done)
	return p
}

// ProgressStore reads and writes the progress record and the auxiliary
// answers slides remember. Storage problems are never returned to callers:
// a failed read looks like a first run and a failed write is dropped.
type ProgressStore struct {
	kv     store.KVRepo
	total  int
	logger *zap.Logger
}

// NewProgressStore wraps kv. A nil logger disables logging.
func NewProgressStore(kv store.KVRepo, total int, logger *zap.Logger) *ProgressStore {
	return &ProgressStore{kv: kv, total: total, logger: logging.OrNop(logger)}
}

// Load returns the saved progress and whether one was found.
func (s *ProgressStore) Load(ctx context.Context) (Progress, bool) {
	raw, ok, err := s.kv.Get(ctx, ProgressKey)
	if err != nil {
		s.logger.Warn("progress read failed", zap.Error(err))
		return Progress{}, false
	}
	if !ok {
		return Progress{}, false
	}
	var p Progress
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		s.logger.Warn("progress record unreadable", zap.Error(err))
		return Progress{}, false
	}
	return p.normalize(s.total), true
}

// Save persists p.
func (s *ProgressStore) Save(ctx context.Context, p Progress) {
	if p.CompletedSlides == nil {
		p.CompletedSlides = []int{}
	}
	data, err := json.Marshal(p)
	if err != nil {
		s.logger.Warn("progress encode failed", zap.Error(err))
		return
	}
	if err := s.kv.Set(ctx, ProgressKey, string(data)); err != nil {
		s.logger.Warn("progress write failed", zap.Error(err))
	}
}

// Clear removes the progress record and every auxiliary answer key.
func (s *ProgressStore) Clear(ctx context.Context) {
	keys := append([]string{ProgressKey}, slides.AuxKeys()...)
	if err := s.kv.Delete(ctx, keys...); err != nil {
		s.logger.Warn("progress clear failed", zap.Error(err))
	}
}

// LoadAux returns a remembered answer, or "" when absent or unreadable.
func (s *ProgressStore) LoadAux(ctx context.Context, key string) string {
	v, _, err := s.kv.Get(ctx, key)
	if err != nil {
		s.logger.Warn("answer read failed", zap.String("key", key), zap.Error(err))
		return ""
	}
	return v
}

// SaveAux remembers an answer under key.
func (s *ProgressStore) SaveAux(ctx context.Context, key, value string) {
	if err := s.kv.Set(ctx, key, value); err != nil {
		s.logger.Warn("answer write failed", zap.String("key", key), zap.Error(err))
	}
}

// String renders p for logs and the stats command.
func (p Progress) String() string {
	return fmt.Sprintf("slide %d, %d completed", p.CurrentSlide+1, len(p.CompletedSlides))
}
