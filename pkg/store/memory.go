package store

import (
	"context"
	"maps"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/matzehuels/wordcloud/pkg/model"
)

// MemoryStore keeps layouts in a map. Layouts are copied on the way in and
// out so callers cannot mutate stored state.
type MemoryStore struct {
	mu      sync.RWMutex
	layouts map[string]model.Layout
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{layouts: make(map[string]model.Layout)}
}

func (s *MemoryStore) Save(ctx context.Context, l *model.Layout) error {
	if err := prepare(l); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.layouts[l.ID] = cloneLayout(*l)
	return nil
}

func (s *MemoryStore) Get(ctx context.Context, id string) (model.Layout, error) {
	if err := ValidateID(id); err != nil {
		return model.Layout{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	l, ok := s.layouts[id]
	if !ok {
		return model.Layout{}, notFound(id)
	}
	return cloneLayout(l), nil
}

func (s *MemoryStore) List(ctx context.Context, limit int) ([]Summary, error) {
	s.mu.RLock()
	out := make([]Summary, 0, len(s.layouts))
	for _, l := range s.layouts {
		out = append(out, Summarize(l))
	}
	s.mu.RUnlock()

	sortNewestFirst(out)
	if n := listLimit(limit); len(out) > n {
		out = out[:n]
	}
	return out, nil
}

func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	if err := ValidateID(id); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.layouts[id]; !ok {
		return notFound(id)
	}
	delete(s.layouts, id)
	return nil
}

func (s *MemoryStore) Prune(ctx context.Context, cutoff time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for id, l := range s.layouts {
		if l.CreatedAt.Before(cutoff) {
			delete(s.layouts, id)
			n++
		}
	}
	return n, nil
}

func (s *MemoryStore) Close() error { return nil }

// Len returns the number of stored layouts.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.layouts)
}

var _ Store = (*MemoryStore)(nil)

// sortNewestFirst orders summaries by creation time, newest first, with the
// ID as tie breaker.
func sortNewestFirst(s []Summary) {
	slices.SortFunc(s, func(a, b Summary) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})
}

func cloneLayout(l model.Layout) model.Layout {
	l.Words = slices.Clone(l.Words)
	for i := range l.Words {
		l.Words[i].Box = slices.Clone(l.Words[i].Box)
	}
	l.Dropped = slices.Clone(l.Dropped)
	l.Attempts = maps.Clone(l.Attempts)
	return l
}
