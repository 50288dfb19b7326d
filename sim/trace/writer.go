package trace

import (
	"bufio"
	"fmt"
	"io"

	"github.com/cachesim/cachesim/sim"
)

// FormatRecord renders a record in canonical lackey form: op letter, one
// space, lowercase hex address without 0x, comma, decimal size.
func FormatRecord(rec sim.Record) string {
	return fmt.Sprintf("%s %x,%d", rec.Op, rec.Addr, rec.Size)
}

// WriteRecords writes one line per record to w, following lackey's layout:
// data references are indented by a single leading space, instruction
// fetches start at column zero. The output round-trips through Scanner.
func WriteRecords(w io.Writer, recs []sim.Record) error {
	bw := bufio.NewWriter(w)
	for _, rec := range recs {
		if rec.Op != sim.OpInstr {
			if err := bw.WriteByte(' '); err != nil {
				return fmt.Errorf("writing trace: %w", err)
			}
		}
		if _, err := bw.WriteString(FormatRecord(rec)); err != nil {
			return fmt.Errorf("writing trace: %w", err)
		}
		if err := bw.WriteByte('\n'); err != nil {
			return fmt.Errorf("writing trace: %w", err)
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("writing trace: %w", err)
	}
	return nil
}
