package core

import "github.com/sarchlab/apexsim/insts"

// fetchLatch is the single pipeline register between Fetch and
// Decode/Rename/Dispatch (spec.md §4.1). It can hold at most one
// instruction; Decode draining it is what lets Fetch produce another.
type fetchLatch struct {
	Valid bool
	Inst  insts.Instruction
}

// fetch implements spec.md §4.1. It only runs when the latch is empty
// (Decode having drained it earlier in the same tick), which is what gives the
// front end its natural one-slot backpressure — no separate "stalled"
// flag is needed beyond that.
func (m *Machine) fetch() {
	if m.fLatch.Valid {
		return
	}
	if m.fetchHalted || m.fetchEnded {
		return
	}

	inst, ok := m.program.At(m.pc)
	if !ok {
		m.fetchEnded = true
		return
	}

	m.fLatch.Valid = true
	m.fLatch.Inst = inst
	m.pc += 4
}
