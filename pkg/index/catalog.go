package index

import (
	"errors"
	"iter"
	"slices"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/matst80/slask-menu/pkg/types"
)

var ErrItemNotFound = errors.New("item not found")

type ChangeHandler interface {
	ItemsUpserted(items []types.MenuItem)
	ItemsDeleted(ids []string)
}

// Catalog is the in-memory menu of one vendor. It remembers the order items were
// first added in, which is the input order the engine sees.
type Catalog struct {
	mu             sync.RWMutex
	items          map[string]types.MenuItem
	order          []string
	version        uint64
	changeHandlers []ChangeHandler
	listeners      []func()
}

func NewCatalog() *Catalog {
	return &Catalog{
		items: make(map[string]types.MenuItem),
		order: make([]string, 0),
	}
}

func (c *Catalog) AddChangeHandler(handler ChangeHandler) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.changeHandlers = append(c.changeHandlers, handler)
}

// OnChange registers a callback that runs after every change to the menu,
// including full replaces.
func (c *Catalog) OnChange(fn func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.listeners = append(c.listeners, fn)
}

func (c *Catalog) handlers() []ChangeHandler {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Clone(c.changeHandlers)
}

func (c *Catalog) notify() {
	c.mu.RLock()
	listeners := slices.Clone(c.listeners)
	c.mu.RUnlock()
	for _, fn := range listeners {
		fn()
	}
}

func (c *Catalog) upsertUnsafe(item types.MenuItem) bool {
	if item.Id == "" {
		log.Warn("skipping menu item without id", "name", item.Name)
		return false
	}
	if _, ok := c.items[item.Id]; !ok {
		c.order = append(c.order, item.Id)
	}
	c.items[item.Id] = item.Sanitized()
	return true
}

// HandleItems upserts items. Updated items keep their original position.
func (c *Catalog) HandleItems(items iter.Seq[types.MenuItem]) {
	changed := make([]types.MenuItem, 0)
	c.mu.Lock()
	for item := range items {
		if c.upsertUnsafe(item) {
			changed = append(changed, c.items[item.Id])
		}
	}
	if len(changed) > 0 {
		c.version++
	}
	c.mu.Unlock()

	if len(changed) == 0 {
		return
	}
	for _, h := range c.handlers() {
		h.ItemsUpserted(changed)
	}
	c.notify()
}

func (c *Catalog) Upsert(items ...types.MenuItem) {
	c.HandleItems(slices.Values(items))
}

func (c *Catalog) HandleDelete(ids ...string) {
	deleted := make([]string, 0, len(ids))
	c.mu.Lock()
	for _, id := range ids {
		if _, ok := c.items[id]; !ok {
			continue
		}
		delete(c.items, id)
		if idx := slices.Index(c.order, id); idx >= 0 {
			c.order = slices.Delete(c.order, idx, idx+1)
		}
		deleted = append(deleted, id)
	}
	if len(deleted) > 0 {
		c.version++
	}
	c.mu.Unlock()

	if len(deleted) == 0 {
		return
	}
	for _, h := range c.handlers() {
		h.ItemsDeleted(deleted)
	}
	c.notify()
}

func (c *Catalog) Delete(id string) error {
	if _, err := c.Get(id); err != nil {
		return err
	}
	c.HandleDelete(id)
	return nil
}

// Replace swaps the whole menu, used after a full reload from the data source.
// Change handlers are not notified, OnChange listeners are.
func (c *Catalog) Replace(items []types.MenuItem) {
	c.mu.Lock()
	c.items = make(map[string]types.MenuItem, len(items))
	c.order = make([]string, 0, len(items))
	for _, item := range items {
		c.upsertUnsafe(item)
	}
	c.version++
	c.mu.Unlock()
	c.notify()
}

func (c *Catalog) Get(id string) (types.MenuItem, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	item, ok := c.items[id]
	if !ok {
		return types.MenuItem{}, ErrItemNotFound
	}
	return item, nil
}

// Items returns a copy of all items in insertion order.
func (c *Catalog) Items() []types.MenuItem {
	c.mu.RLock()
	defer c.mu.RUnlock()
	ret := make([]types.MenuItem, 0, len(c.order))
	for _, id := range c.order {
		ret = append(ret, c.items[id])
	}
	return ret
}

func (c *Catalog) All() iter.Seq[types.MenuItem] {
	return slices.Values(c.Items())
}

// Snapshot returns the items together with the version they belong to.
func (c *Catalog) Snapshot() ([]types.MenuItem, uint64) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	ret := make([]types.MenuItem, 0, len(c.order))
	for _, id := range c.order {
		ret = append(ret, c.items[id])
	}
	return ret, c.version
}

func (c *Catalog) Version() uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.version
}

func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}
