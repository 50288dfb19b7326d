// Package trace reads, writes, and generates memory traces in valgrind
// lackey format: one reference per line, as in
//
//	I 0400d7d4,8
//	 M 0421c7f0,4
//	 L 04f6b868,8
//
// Parsing is permissive. A line is the op character, the hex address, a
// comma, and the decimal size; surrounding whitespace is tolerated and an
// optional 0x prefix on the address is accepted. Lines that do not fit the
// shape are dropped and counted, never fatal: only a failing reader stops
// a scan.
package trace

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/cachesim/cachesim/sim"
)

// ParseLine parses one non-blank trace line into a record. The op character
// is taken as-is: unrecognized ops are legal records that the replayer
// will skip, matching lackey's own output which interleaves instruction
// fetches with data references. The size may be negative (it is parsed for
// shape only and never consulted).
func ParseLine(s string) (sim.Record, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return sim.Record{}, fmt.Errorf("blank line")
	}

	op := sim.Op(s[0])
	rest := strings.TrimSpace(s[1:])

	addrPart, sizePart, ok := strings.Cut(rest, ",")
	if !ok {
		return sim.Record{}, fmt.Errorf("missing %q between address and size", ",")
	}

	addrStr := strings.TrimSpace(addrPart)
	if len(addrStr) >= 2 && (addrStr[:2] == "0x" || addrStr[:2] == "0X") {
		addrStr = addrStr[2:]
	}
	addr, err := strconv.ParseUint(addrStr, 16, 64)
	if err != nil {
		return sim.Record{}, fmt.Errorf("bad address %q: %w", addrPart, err)
	}

	size, err := strconv.Atoi(strings.TrimSpace(sizePart))
	if err != nil {
		return sim.Record{}, fmt.Errorf("bad size %q: %w", sizePart, err)
	}

	return sim.Record{Op: op, Addr: addr, Size: size}, nil
}

// Scanner streams records out of a reader one line at a time, dropping
// blank and malformed lines along the way. It implements sim.RecordSource,
// so it plugs straight into a Replayer. A Scanner is single-use: once Next
// has returned false it stays exhausted.
type Scanner struct {
	scanner *bufio.Scanner
	line    int
	skipped uint64
}

// NewScanner wraps r in a record scanner.
func NewScanner(r io.Reader) *Scanner {
	return &Scanner{scanner: bufio.NewScanner(r)}
}

// Next returns the next well-formed record. Malformed lines are counted,
// logged at debug level with their line number, and skipped; blank lines
// are skipped silently.
func (s *Scanner) Next() (sim.Record, bool) {
	for s.scanner.Scan() {
		s.line++
		text := s.scanner.Text()
		if strings.TrimSpace(text) == "" {
			continue
		}
		rec, err := ParseLine(text)
		if err != nil {
			s.skipped++
			logrus.Debugf("trace line %d dropped: %v", s.line, err)
			continue
		}
		return rec, true
	}
	return sim.Record{}, false
}

// Err reports the reader failure that stopped the scan, if any.
func (s *Scanner) Err() error {
	return s.scanner.Err()
}

// SkippedLines returns how many non-blank lines failed to parse so far.
func (s *Scanner) SkippedLines() uint64 {
	return s.skipped
}

// File is a Scanner over an on-disk trace. It owns the underlying handle;
// close it once replay is finished.
type File struct {
	Scanner
	f *os.File
}

// OpenFile opens a trace file for scanning.
func OpenFile(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening trace file: %w", err)
	}
	return &File{Scanner: *NewScanner(f), f: f}, nil
}

// Close releases the underlying file.
func (f *File) Close() error {
	return f.f.Close()
}
