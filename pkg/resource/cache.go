package resource

import (
	"strconv"

	"github.com/matzehuels/scenepatch/pkg/observability"
	"github.com/matzehuels/scenepatch/pkg/surface"
)

// Stats counts cache activity.
type Stats struct {
	Created int // definitions added to the surface
	Hits    int // requests answered from the cache
}

// Cache creates each distinct resource at most once per surface.
// It shares the single-writer discipline of the patch engine.
type Cache struct {
	defs  surface.Defs
	ids   map[Signature]string
	owner map[string]Signature
	stats Stats
}

// New returns a cache that registers definitions with defs.
func New(defs surface.Defs) *Cache {
	return &Cache{
		defs:  defs,
		ids:   make(map[Signature]string),
		owner: make(map[string]Signature),
	}
}

// Ensure returns the id of the resource described by sig, creating the
// definition on first use.
func (c *Cache) Ensure(sig Signature) string {
	if id, ok := c.ids[sig]; ok {
		c.stats.Hits++
		return id
	}
	id := c.claim(sig)
	c.ids[sig] = id
	if !c.defs.Has(id) {
		c.defs.AddDef(sig.def(id))
		c.stats.Created++
		observability.Resource().OnResourceCreated(string(sig.Kind()), id)
	}
	return id
}

// claim picks the id for sig. Hashed ids that are already owned by a
// different signature get a numeric suffix so ids never collide.
func (c *Cache) claim(sig Signature) string {
	base := sig.baseID()
	id := base
	for n := 2; ; n++ {
		owner, taken := c.owner[id]
		if !taken || owner == sig {
			c.owner[id] = sig
			return id
		}
		id = base + "-" + strconv.Itoa(n)
	}
}

// Stats returns a copy of the activity counters.
func (c *Cache) Stats() Stats { return c.stats }

// Len returns the number of distinct signatures seen.
func (c *Cache) Len() int { return len(c.ids) }
