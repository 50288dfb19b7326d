package trace

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/cachesim/cachesim/sim"
)

// Valid address pattern registry.
var validPatterns = map[string]bool{
	"uniform": true, "sequential": true, "stride": true,
}

// GeneratorSpec parameterizes synthetic trace generation.
// Generation is deterministic given the same spec: the same seed always
// yields the same records, so generated traces are reproducible fixtures.
type GeneratorSpec struct {
	Records     int     // number of records to emit
	Seed        int64   // RNG seed
	AddressBits int     // addresses are confined to [0, 2^AddressBits)
	Pattern     string  // "uniform" (default), "sequential", or "stride"
	Stride      int     // address step for the stride pattern
	StoreRatio  float64 // fraction of records that are stores
	ModifyRatio float64 // fraction of records that are modifies
	InstrRatio  float64 // fraction of records that are instruction fetches
}

// Validate checks that the spec can drive generation.
func (s GeneratorSpec) Validate() error {
	if s.Records < 0 {
		return fmt.Errorf("records must be non-negative, got %d", s.Records)
	}
	if s.AddressBits < 1 || s.AddressBits > sim.AddressBits {
		return fmt.Errorf("address bits must be in [1, %d], got %d", sim.AddressBits, s.AddressBits)
	}
	if !validPatterns[s.Pattern] {
		return fmt.Errorf("unknown pattern %q; valid: uniform, sequential, stride", s.Pattern)
	}
	if s.Pattern == "stride" && s.Stride < 1 {
		return fmt.Errorf("stride must be positive, got %d", s.Stride)
	}
	if err := validateRatio("store ratio", s.StoreRatio); err != nil {
		return err
	}
	if err := validateRatio("modify ratio", s.ModifyRatio); err != nil {
		return err
	}
	if err := validateRatio("instr ratio", s.InstrRatio); err != nil {
		return err
	}
	if sum := s.StoreRatio + s.ModifyRatio + s.InstrRatio; sum > 1 {
		return fmt.Errorf("op ratios must sum to at most 1, got %f", sum)
	}
	return nil
}

func validateRatio(name string, val float64) error {
	if math.IsNaN(val) || val < 0 || val > 1 {
		return fmt.Errorf("%s must be in [0, 1], got %f", name, val)
	}
	return nil
}

// Generate produces a synthetic record sequence from the spec. Whatever
// ratio mass the op ratios leave unclaimed goes to loads.
func Generate(spec GeneratorSpec) ([]sim.Record, error) {
	if err := spec.Validate(); err != nil {
		return nil, fmt.Errorf("invalid generator spec: %w", err)
	}

	rng := rand.New(rand.NewSource(spec.Seed))
	mask := ^uint64(0)
	if spec.AddressBits < 64 {
		mask = (uint64(1) << spec.AddressBits) - 1
	}

	sizes := [...]int{1, 2, 4, 8}
	recs := make([]sim.Record, 0, spec.Records)
	var cursor uint64
	for i := 0; i < spec.Records; i++ {
		var addr uint64
		switch spec.Pattern {
		case "sequential":
			addr = cursor & mask
		case "stride":
			addr = cursor & mask
			cursor += uint64(spec.Stride)
		default: // uniform
			addr = rng.Uint64() & mask
		}

		op := pickOp(rng, spec)
		size := sizes[i%len(sizes)]
		if spec.Pattern == "sequential" {
			cursor += uint64(size)
		}

		recs = append(recs, sim.Record{Op: op, Addr: addr, Size: size})
	}
	return recs, nil
}

// pickOp draws the record kind. A single uniform draw is split between the
// ratios in a fixed order so that generation stays reproducible.
func pickOp(rng *rand.Rand, spec GeneratorSpec) sim.Op {
	r := rng.Float64()
	switch {
	case r < spec.InstrRatio:
		return sim.OpInstr
	case r < spec.InstrRatio+spec.StoreRatio:
		return sim.OpStore
	case r < spec.InstrRatio+spec.StoreRatio+spec.ModifyRatio:
		return sim.OpModify
	default:
		return sim.OpLoad
	}
}
