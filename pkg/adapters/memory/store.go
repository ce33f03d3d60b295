package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/aretw0/markov/pkg/domain"
)

// Store implements ports.ModelStore in memory.
// Safe for concurrent use.
type Store struct {
	data map[string]*domain.Model
	mu   sync.RWMutex
}

// NewStore creates a new in-memory store, optionally seeded with models keyed by their names.
func NewStore(models ...*domain.Model) *Store {
	s := &Store{
		data: make(map[string]*domain.Model),
	}
	for _, m := range models {
		s.data[m.Name] = m.Clone()
	}
	return s
}

// Save keeps a private copy of the model.
func (s *Store) Save(ctx context.Context, name string, model *domain.Model) error {
	if name == "" {
		return fmt.Errorf("model name cannot be empty")
	}
	copied := model.Clone()
	copied.Name = name

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[name] = copied
	return nil
}

// Load returns a copy so callers cannot mutate the stored model.
func (s *Store) Load(ctx context.Context, name string) (*domain.Model, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	m, ok := s.data[name]
	if !ok {
		return nil, fmt.Errorf("%q: %w", name, domain.ErrModelNotFound)
	}
	return m.Clone(), nil
}

// Delete removes the model.
func (s *Store) Delete(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, name)
	return nil
}

// List returns the stored names in lexical order.
func (s *Store) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.data))
	for name := range s.data {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}
