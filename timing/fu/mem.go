package fu

import (
	"github.com/sarchlab/apexsim/emu"
	"github.com/sarchlab/apexsim/insts"
)

// MemInput bundles one memory access as handed off by the LSQ once its
// head entry is runnable (spec.md §4.4).
type MemInput struct {
	Op        insts.Op
	PC        int32
	IsStore   bool
	Addr      int32
	StoreData int32
	DestTag   int
	HasDest   bool
}

// MemUnit is the MEM pipeline: it holds at most one instruction at a
// time and performs the access on its final cycle (spec.md §4.4).
// Unlike INT/MUL/BRANCH it is not a multi-slot shift register — a
// second access cannot enter until the first has fully drained.
type MemUnit struct {
	depth  uint64
	busy   bool
	remain uint64
	in     MemInput
}

// NewMemUnit creates a MEM unit with the given access latency (spec.md
// default: 3 cycles).
func NewMemUnit(depth uint64) *MemUnit {
	if depth == 0 {
		depth = 1
	}
	return &MemUnit{depth: depth}
}

// CanAccept reports whether the unit is free to accept a new access.
func (m *MemUnit) CanAccept() bool {
	return !m.busy
}

// Accept begins a new access. The caller must check CanAccept first.
func (m *MemUnit) Accept(in MemInput) {
	m.busy = true
	m.remain = m.depth
	m.in = in
}

// Tick advances the in-flight access by one cycle, performing the
// actual memory read/write on the final cycle, and returns the result
// once the access completes (nil otherwise). mem is the flat data
// memory the access is performed against.
func (m *MemUnit) Tick(mem *emu.Memory) *Result {
	if !m.busy {
		return nil
	}
	m.remain--
	if m.remain > 0 {
		return nil
	}

	r := Result{PC: m.in.PC, Op: m.in.Op, HasDest: m.in.HasDest, DestTag: m.in.DestTag}
	if m.in.IsStore {
		mem.Write(int(m.in.Addr), m.in.StoreData)
	} else {
		// Read's ok is ignored here: an out-of-range address is
		// already counted on mem.Segfaults() and spec.md §7 treats an
		// undefined read as non-fatal, not as a reason to withhold the
		// (undefined) result from the waiting destination.
		value, _ := mem.Read(int(m.in.Addr))
		r.Value = value
	}

	m.busy = false
	return &r
}

// Clear discards any in-flight access. Used by branch-mispredict
// squash; a half-finished memory access is abandoned along with
// everything else (spec.md §4.7).
func (m *MemUnit) Clear() {
	m.busy = false
	m.remain = 0
}
