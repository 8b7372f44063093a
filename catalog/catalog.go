package catalog

import (
	"errors"
	"fmt"
	"sync"

	"github.com/darkfieldworks/lensing-simulator/model"
)

var (
	ErrDuplicateEntry = errors.New("catalog entry already exists")
	ErrEntryNotFound  = errors.New("catalog entry not found")
	ErrBadEntry       = errors.New("invalid catalog entry")
)

// Catalog is an in-memory, thread-safe store of survey catalog rows.
// Entries keep their insertion order, which downstream batch builds rely
// on for reproducible output.
type Catalog struct {
	mu sync.RWMutex

	entries map[int64]*model.CatalogEntry
	order   []int64
}

// NewCatalog constructs an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{
		entries: make(map[int64]*model.CatalogEntry),
	}
}

// AddEntry adds a new row. It returns an error for nil entries, negative
// redshifts, or duplicate IDs.
func (c *Catalog) AddEntry(e *model.CatalogEntry) error {
	if e == nil {
		return fmt.Errorf("%w: nil entry", ErrBadEntry)
	}
	if e.Redshift < 0 {
		return fmt.Errorf("%w: id=%d has negative redshift %g", ErrBadEntry, e.ID, e.Redshift)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[e.ID]; exists {
		return fmt.Errorf("%w: id=%d", ErrDuplicateEntry, e.ID)
	}
	c.entries[e.ID] = e
	c.order = append(c.order, e.ID)
	return nil
}

// Entry returns the row with the given ID.
func (c *Catalog) Entry(id int64) (*model.CatalogEntry, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.entries[id]
	if !ok {
		return nil, fmt.Errorf("%w: id=%d", ErrEntryNotFound, id)
	}
	return e, nil
}

// Entries returns a snapshot slice of all rows in insertion order.
func (c *Catalog) Entries() []*model.CatalogEntry {
	c.mu.RLock()
	defer c.mu.RUnlock()

	res := make([]*model.CatalogEntry, 0, len(c.order))
	for _, id := range c.order {
		res = append(res, c.entries[id])
	}
	return res
}

// Len returns the number of rows.
func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.order)
}
