package session

import (
	"sync"
	"time"

	"genoscope/domain/core"
	"genoscope/models"
)

// Cache is the single-owner in-memory store for recent runs. It replaces
// the ambient "last result" session state the UI needs between renders:
// the pipeline invalidates explicitly at the start of a new run and the
// presentation layer only ever reads through it.
type Cache struct {
	mu       sync.RWMutex
	runs     map[core.RunID]*models.Run
	order    []core.RunID
	capacity int
	updated  time.Time
}

// NewCache creates a cache retaining at most capacity runs (oldest evicted
// first). Capacity below 1 defaults to 1.
func NewCache(capacity int) *Cache {
	if capacity < 1 {
		capacity = 1
	}
	return &Cache{
		runs:     make(map[core.RunID]*models.Run),
		capacity: capacity,
	}
}

// Put stores a run, evicting the oldest entry when over capacity.
func (c *Cache) Put(run *models.Run) {
	if run == nil || run.ID.IsEmpty() {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.runs[run.ID]; !exists {
		c.order = append(c.order, run.ID)
	}
	c.runs[run.ID] = run
	c.updated = time.Now()

	for len(c.order) > c.capacity {
		evicted := c.order[0]
		c.order = c.order[1:]
		delete(c.runs, evicted)
	}
}

// Get returns the cached run for id, if present.
func (c *Cache) Get(id core.RunID) (*models.Run, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	run, ok := c.runs[id]
	return run, ok
}

// Latest returns the most recently stored run.
func (c *Cache) Latest() (*models.Run, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if len(c.order) == 0 {
		return nil, false
	}
	run, ok := c.runs[c.order[len(c.order)-1]]
	return run, ok
}

// Invalidate drops every cached run. Called at the start of a new pipeline
// run so stale results never survive implicitly.
func (c *Cache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.runs = make(map[core.RunID]*models.Run)
	c.order = nil
	c.updated = time.Now()
}

// Len reports the number of cached runs.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.order)
}
