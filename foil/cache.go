package foil

import (
	"sync"

	"github.com/mitchellh/hashstructure"
)

// Cache is a memoization handle mapping a Problem's structural hash to
// the Hypothesis Learn produced for it (§4.I). Unlike the source
// language's process-wide table, a Cache is an explicit value the caller
// constructs and threads through Options; there is no package-level
// cache and no hidden global state (§9).
//
// A Cache is safe for concurrent use: reads and writes are guarded by a
// mutex, as §5 requires for the one piece of shared mutable state the
// core has.
type Cache struct {
	mu      sync.Mutex
	entries map[uint64]Hypothesis
}

// NewCache returns an empty, ready-to-use Cache.
func NewCache() *Cache {
	return &Cache{entries: make(map[uint64]Hypothesis)}
}

func (c *Cache) key(p Problem) (uint64, error) {
	return hashstructure.Hash(p, nil)
}

// Get returns the cached hypothesis for p, if any.
func (c *Cache) Get(p Problem) (Hypothesis, bool) {
	key, err := c.key(p)
	if err != nil {
		return nil, false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	h, ok := c.entries[key]
	return h, ok
}

// Put records the hypothesis Learn produced for p.
func (c *Cache) Put(p Problem, h Hypothesis) {
	key, err := c.key(p)
	if err != nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = h
}

// Len reports how many problems are currently memoized.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
