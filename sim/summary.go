package sim

import (
	"encoding/json"
	"fmt"
	"io"
)

// Summary is the final report of one simulation run: the three verdict
// counters, the record counts behind them, and an echo of the geometry so
// a stored summary is self-describing.
type Summary struct {
	Hits      uint64 `json:"hits"`
	Misses    uint64 `json:"misses"`
	Evictions uint64 `json:"evictions"`

	Loads    uint64 `json:"loads"`
	Stores   uint64 `json:"stores"`
	Modifies uint64 `json:"modifies"`
	Skipped  uint64 `json:"skipped_records"`

	SetIndexBits    int `json:"set_index_bits"`
	BlockOffsetBits int `json:"block_offset_bits"`
	Associativity   int `json:"associativity"`
}

// Summarize assembles the run summary from the cache counters, the
// replayer's record counts, and the cache geometry.
func Summarize(c *Cache, r *Replayer) Summary {
	stats := c.Stats()
	replay := r.Stats()
	geom := c.Geometry()
	return Summary{
		Hits:            stats.Hits,
		Misses:          stats.Misses,
		Evictions:       stats.Evictions,
		Loads:           replay.Loads,
		Stores:          replay.Stores,
		Modifies:        replay.Modifies,
		Skipped:         replay.Skipped,
		SetIndexBits:    geom.SetIndexBits,
		BlockOffsetBits: geom.BlockOffsetBits,
		Associativity:   geom.Associativity,
	}
}

// WriteText writes the single-line form: "hits:4 misses:5 evictions:3".
// Downstream scripts key on this exact layout.
func (s Summary) WriteText(w io.Writer) error {
	_, err := fmt.Fprintf(w, "hits:%d misses:%d evictions:%d\n", s.Hits, s.Misses, s.Evictions)
	return err
}

// WriteJSON writes the summary as indented JSON.
func (s Summary) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(s)
}
