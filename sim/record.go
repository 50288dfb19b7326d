package sim

// Op identifies the kind of memory reference a trace record describes.
// The values are the one-letter codes used by valgrind's lackey tool.
type Op byte

const (
	OpLoad   Op = 'L' // data load
	OpStore  Op = 'S' // data store
	OpModify Op = 'M' // data modify (load followed by store)
	OpInstr  Op = 'I' // instruction fetch (never simulated)
)

// String returns the single-letter trace code for the op.
func (op Op) String() string {
	return string(op)
}

// Replayable reports whether records with this op drive cache accesses.
// Instruction fetches and unrecognized codes are carried through parsing
// but skipped by the replayer.
func (op Op) Replayable() bool {
	return op == OpLoad || op == OpStore || op == OpModify
}

// Accesses returns how many cache accesses one record with this op issues:
// two for a modify, one for a load or store, zero for everything else.
func (op Op) Accesses() int {
	switch op {
	case OpModify:
		return 2
	case OpLoad, OpStore:
		return 1
	default:
		return 0
	}
}

// Record is one parsed trace line: an operation, the byte address it
// touches, and the reference size. Size is preserved for round-tripping
// but never consulted during replay; classification depends only on the
// block the address falls in, and lackey references never straddle blocks
// in the workloads this simulator targets.
type Record struct {
	Op   Op
	Addr uint64
	Size int
}
