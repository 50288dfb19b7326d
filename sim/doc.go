// Package sim provides the core cache model and trace replay engine for cachesim.
//
// # Reading Guide
//
// Start with these three files to understand the simulation kernel:
//   - geometry.go: how an address splits into block offset, set index, and tag
//   - cache.go: the set-associative tag table, LRU victim selection, and the counters
//   - replay.go: the record loop that turns loads/stores/modifies into cache accesses
//
// # Architecture
//
// The sim package owns the record model and the replay semantics; everything
// that touches bytes on disk lives in the sub-package:
//   - sim/trace/: lackey-format trace parsing, formatting, and synthetic generation
//
// Record flow is one direction only: a RecordSource feeds the Replayer, the
// Replayer feeds the Cache, and per-access Results flow out to an optional
// Observer. Nothing downstream can influence classification.
//
// # Key Interfaces
//
// The extension points are small interfaces:
//   - RecordSource: pull-based record iteration (sim/trace implements it for files)
//   - Observer: per-record classification sink (verbose output, access logs)
package sim
