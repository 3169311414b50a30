package storage

import (
	"slices"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/matst80/slask-menu/pkg/types"
	"github.com/romdo/go-debounce"
)

const (
	DefaultSnapshotWait    = 2 * time.Second
	DefaultSnapshotMaxWait = 30 * time.Second
)

// Snapshotter writes the menu to disk after a burst of changes has settled.
type Snapshotter struct {
	mu       sync.Mutex
	storage  types.StorageProvider
	items    func() []types.MenuItem
	debounce func()
	cancel   func()
	saves    int
}

func NewSnapshotter(storage types.StorageProvider, items func() []types.MenuItem, wait, maxWait time.Duration) *Snapshotter {
	s := &Snapshotter{
		storage: storage,
		items:   items,
	}
	s.debounce, s.cancel = debounce.NewWithMaxWait(wait, maxWait, func() {
		if err := s.Flush(); err != nil {
			log.Error("failed to save menu snapshot", "err", err)
		}
	})
	return s
}

// Trigger schedules a snapshot, it fits catalog.OnChange.
func (s *Snapshotter) Trigger() {
	s.debounce()
}

func (s *Snapshotter) Flush() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.storage.SaveItems(slices.Values(s.items())); err != nil {
		return err
	}
	s.saves++
	return nil
}

func (s *Snapshotter) Saves() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saves
}

// Close drops any pending snapshot and writes the current state.
func (s *Snapshotter) Close() error {
	s.cancel()
	return s.Flush()
}
