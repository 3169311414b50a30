package presets

import (
	"context"
	"maps"
	"slices"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
)

type Persister interface {
	SavePresets(data any) error
	LoadPresets(output any) error
}

type MemoryStore struct {
	mu        sync.RWMutex
	presets   map[string]Preset
	persister Persister
}

// NewMemoryStore creates a store that, when given a persister, loads the saved
// presets and writes them back after every change.
func NewMemoryStore(persister Persister) (*MemoryStore, error) {
	s := &MemoryStore{
		presets:   make(map[string]Preset),
		persister: persister,
	}
	if persister != nil {
		if err := persister.LoadPresets(&s.presets); err != nil {
			return nil, err
		}
		log.Debug("loaded presets", "count", len(s.presets))
	}
	return s, nil
}

func (s *MemoryStore) persistUnsafe() error {
	if s.persister == nil {
		return nil
	}
	return s.persister.SavePresets(s.presets)
}

func (s *MemoryStore) Save(ctx context.Context, preset Preset) error {
	if err := preset.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	var existing *Preset
	if p, ok := s.presets[preset.Name]; ok {
		existing = &p
	}
	s.presets[preset.Name] = merge(existing, preset)
	return s.persistUnsafe()
}

func (s *MemoryStore) Get(ctx context.Context, name string) (Preset, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.presets[name]
	if !ok {
		return Preset{}, ErrNotFound
	}
	return p, nil
}

func (s *MemoryStore) List(ctx context.Context) ([]Preset, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return sortByName(slices.Collect(maps.Values(s.presets))), nil
}

func (s *MemoryStore) Delete(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.presets[name]; !ok {
		return ErrNotFound
	}
	delete(s.presets, name)
	return s.persistUnsafe()
}

func sortByName(presets []Preset) []Preset {
	slices.SortFunc(presets, func(a, b Preset) int {
		return strings.Compare(a.Name, b.Name)
	})
	return presets
}
