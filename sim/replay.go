package sim

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// RecordSource produces the ordered sequence of records to replay.
// Next returns the next record and true, or a zero Record and false once
// the source is exhausted. After Next has returned false, Err reports
// whether the source stopped because of a read failure rather than a
// clean end of input.
type RecordSource interface {
	Next() (Record, bool)
	Err() error
}

// SliceSource is a RecordSource over an in-memory record slice.
type SliceSource struct {
	Records []Record
	pos     int
}

// Next returns the next record in the slice.
func (s *SliceSource) Next() (Record, bool) {
	if s.pos >= len(s.Records) {
		return Record{}, false
	}
	rec := s.Records[s.pos]
	s.pos++
	return rec, true
}

// Err always returns nil; a slice cannot fail mid-read.
func (s *SliceSource) Err() error {
	return nil
}

// ReplayStats counts the records a replay consumed, by disposition.
type ReplayStats struct {
	Loads    uint64
	Stores   uint64
	Modifies uint64
	Skipped  uint64 // instruction fetches and unrecognized ops
}

// Replayed returns how many records drove cache accesses.
func (rs ReplayStats) Replayed() uint64 {
	return rs.Loads + rs.Stores + rs.Modifies
}

// Accesses returns how many cache accesses those records issued
// (a modify issues two).
func (rs ReplayStats) Accesses() uint64 {
	return rs.Loads + rs.Stores + 2*rs.Modifies
}

// Replayer drives a cache over a record sequence, strictly in input order.
// Loads and stores issue one access each; a modify issues two back-to-back
// accesses to the same address, so its second access always finds the line
// the first one touched or installed. Instruction fetches and unrecognized
// ops are counted as skipped and issue nothing.
type Replayer struct {
	cache    *Cache
	observer Observer
	stats    ReplayStats
}

// NewReplayer wires a replayer to a cache. observer may be nil.
func NewReplayer(cache *Cache, observer Observer) *Replayer {
	return &Replayer{cache: cache, observer: observer}
}

// Stats returns a snapshot of the record counters.
func (r *Replayer) Stats() ReplayStats {
	return r.stats
}

// Replay consumes src to exhaustion, replaying every record in order.
// The only error it can return is the source's read error; malformed
// input never surfaces here because sources drop unparseable lines
// before they reach the replayer.
func (r *Replayer) Replay(src RecordSource) error {
	for {
		rec, ok := src.Next()
		if !ok {
			break
		}
		r.ReplayRecord(rec)
	}
	if err := src.Err(); err != nil {
		return fmt.Errorf("reading trace: %w", err)
	}
	return nil
}

// ReplayRecord replays a single record against the cache.
func (r *Replayer) ReplayRecord(rec Record) {
	var results [2]Result
	n := 0
	switch rec.Op {
	case OpLoad:
		r.stats.Loads++
		results[0] = r.cache.Access(rec.Addr)
		n = 1
	case OpStore:
		r.stats.Stores++
		results[0] = r.cache.Access(rec.Addr)
		n = 1
	case OpModify:
		r.stats.Modifies++
		results[0] = r.cache.Access(rec.Addr)
		results[1] = r.cache.Access(rec.Addr)
		n = 2
	default:
		r.stats.Skipped++
		logrus.Debugf("skipping record with op %q", byte(rec.Op))
		return
	}
	if r.observer != nil {
		r.observer.Observe(rec, results[:n])
	}
}
