// sim/cache.go
package sim

import "fmt"

// line is one tag slot within a set. recency holds the logical-clock stamp
// of the line's most recent touch; it is 0 only while the line is invalid,
// because the clock starts at 1 and never rewinds. Victim selection relies
// on that: an untouched slot always loses the recency comparison, so sets
// fill invalid slots in index order before evicting anything.
type line struct {
	valid   bool
	tag     uint64
	recency uint64
}

// Result classifies a single cache access. The counters on the Cache are
// the authoritative totals; Result carries the per-access detail that
// observers and verbose output want: the address decomposition and, when a
// valid line was displaced, its tag.
type Result struct {
	Hit       bool
	Evicted   bool
	SetIndex  uint64
	Tag       uint64
	VictimTag uint64 // tag of the displaced line; meaningful only when Evicted
}

// Stats holds the three counters a run is judged by.
type Stats struct {
	Hits      uint64
	Misses    uint64
	Evictions uint64
}

// Cache is a functional model of a set-associative cache with LRU
// replacement. It tracks tags and validity only (no data movement) and
// classifies each access as a hit or a miss, counting an eviction whenever
// a fill displaces a valid line.
//
// All state is per-instance. Two caches never share counters, tables, or
// the recency clock, so independent runs can proceed side by side.
type Cache struct {
	geom  Geometry
	sets  [][]line
	clock uint64
	stats Stats
}

// NewCache builds an empty cache with the given geometry. The geometry is
// validated here so a malformed shape can never reach Access.
func NewCache(geom Geometry) (*Cache, error) {
	if err := geom.Validate(); err != nil {
		return nil, fmt.Errorf("invalid cache geometry: %w", err)
	}
	c := &Cache{geom: geom}
	c.Reset()
	return c, nil
}

// Geometry returns the shape the cache was built with.
func (c *Cache) Geometry() Geometry {
	return c.geom
}

// Stats returns a snapshot of the counters.
func (c *Cache) Stats() Stats {
	return c.stats
}

// Reset returns the cache to its post-construction state: every line
// invalid, counters zeroed, and the recency clock back at 1.
func (c *Cache) Reset() {
	c.sets = make([][]line, c.geom.NumSets())
	for i := range c.sets {
		c.sets[i] = make([]line, c.geom.Associativity)
	}
	c.clock = 1
	c.stats = Stats{}
}

// Access classifies one memory reference and updates the tag table and the
// counters. The low BlockOffsetBits of addr are ignored, the SetIndexBits
// above them select the set, and the remaining high bits form the tag.
//
// On a miss the victim is the line with the strictly smallest recency;
// ties keep the lowest index. Filling an invalid line is not an eviction.
func (c *Cache) Access(addr uint64) Result {
	setIndex := c.geom.SetIndex(addr)
	tag := c.geom.Tag(addr)
	set := c.sets[setIndex]

	res := Result{SetIndex: setIndex, Tag: tag}

	for i := range set {
		if set[i].valid && set[i].tag == tag {
			set[i].recency = c.clock
			c.clock++
			c.stats.Hits++
			res.Hit = true
			return res
		}
	}

	c.stats.Misses++

	victim := 0
	for i := 1; i < len(set); i++ {
		if set[i].recency < set[victim].recency {
			victim = i
		}
	}

	if set[victim].valid {
		c.stats.Evictions++
		res.Evicted = true
		res.VictimTag = set[victim].tag
	}

	set[victim] = line{valid: true, tag: tag, recency: c.clock}
	c.clock++
	return res
}
