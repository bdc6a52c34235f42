package search

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/kamusis/skillscope/internal/logger"
)

// Catalog holds the current Snapshot behind an atomic pointer. Lookups call
// Snapshot once and keep using that value; Reload swaps in a new snapshot
// without disturbing them.
type Catalog struct {
	mu         sync.Mutex // serializes reloads
	current    atomic.Pointer[Snapshot]
	generation atomic.Uint64
}

// NewCatalog returns a catalog serving snap. A nil snap serves an empty corpus.
func NewCatalog(snap *Snapshot) *Catalog {
	if snap == nil {
		snap = NewSnapshot(nil)
	}
	c := &Catalog{}
	c.current.Store(snap)
	return c
}

// Snapshot returns the snapshot in effect right now.
func (c *Catalog) Snapshot() *Snapshot {
	return c.current.Load()
}

// Generation counts successful reloads since the catalog was created.
func (c *Catalog) Generation() uint64 {
	return c.generation.Load()
}

// Reload parses sources into a fresh snapshot and replaces the current one
// wholesale. Parse warnings are returned as with Load.
func (c *Catalog) Reload(ctx context.Context, sources []Source) []*ParseError {
	c.mu.Lock()
	defer c.mu.Unlock()

	snap, warns := Load(ctx, sources)
	c.current.Store(snap)
	gen := c.generation.Add(1)

	logger.G(ctx).WithField("generation", gen).WithField("documents", snap.Len()).Info("catalog reloaded")
	return warns
}
