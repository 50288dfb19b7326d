package sim

// Observer receives the classification of every replayed record: one
// Result per access the record issued, in access order (a modify delivers
// two, the load first). Observers are a reporting surface only; nothing
// they do can feed back into replay state.
//
// The results slice is only valid for the duration of the call; observers
// that retain it must copy.
type Observer interface {
	Observe(rec Record, results []Result)
}

// ObserverFunc adapts a plain function to the Observer interface.
type ObserverFunc func(rec Record, results []Result)

// Observe calls f.
func (f ObserverFunc) Observe(rec Record, results []Result) {
	f(rec, results)
}

// AccessLogEntry is one replayed record together with its classifications.
type AccessLogEntry struct {
	Record  Record
	Results []Result
}

// AccessLog is an Observer that retains every classification in replay
// order. Handy for tests and post-run inspection; attaching one to a large
// trace keeps the whole trace in memory.
type AccessLog struct {
	Entries []AccessLogEntry
}

// Observe appends a copy of the classification.
func (l *AccessLog) Observe(rec Record, results []Result) {
	l.Entries = append(l.Entries, AccessLogEntry{
		Record:  rec,
		Results: append([]Result(nil), results...),
	})
}
