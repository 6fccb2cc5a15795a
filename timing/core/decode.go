package core

import (
	"github.com/sarchlab/apexsim/insts"
	"github.com/sarchlab/apexsim/timing/iqlsq"
)

// drfLatch is the Decode/Rename/Dispatch pipeline register: the
// product of rename and operand read, waiting for Dispatch to place it
// into ROB/IQ/LSQ (spec.md §4.2). Only one instruction occupies it at a
// time; Dispatch draining it is what lets Decode fill it again.
type drfLatch struct {
	Valid  bool
	Inst   insts.Instruction
	Format insts.Format

	HasDest bool
	DestTag int

	// Src1/Src2 correspond to the opcode's rs1/rs2 operand positions —
	// used for ALU input or effective-address computation.
	Src1 iqlsq.Operand
	Src2 iqlsq.Operand

	// StoreData is populated only for STORE/STR, where the operand
	// table's "rd" position names a source (the value to store) and
	// not a destination (spec.md §4.2's operand-shape table).
	StoreData iqlsq.Operand
}

// decodeAndAdvance implements spec.md §5 steps 5-6 as one function:
// if the DRF latch is still occupied (Dispatch did not drain it this
// cycle — a structural stall), nothing moves and Fetch's latch is left
// untouched. Otherwise the fetched instruction advances into decode:
// sources are renamed/read, and a destination tag is allocated if the
// opcode writes one. Failure to allocate a tag is itself a structural
// stall: the raw instruction stays in the fetch latch for retry next
// cycle, exactly as rename-pool exhaustion requires (spec.md §4.2 step
// 2, §8 "Rename pool exhaustion stalls the front-end cleanly").
func (m *Machine) decodeAndAdvance() {
	if m.dLatch.Valid {
		return
	}
	if !m.fLatch.Valid {
		return
	}

	inst := m.fLatch.Inst
	format := insts.FormatOf(inst.Op)

	if inst.Op == insts.HALT || inst.Op == insts.NOP {
		m.dLatch = drfLatch{Valid: true, Inst: inst, Format: format}
		m.fLatch.Valid = false
		if inst.Op == insts.HALT {
			m.fetchHalted = true
			m.flags.Interrupt = true
		}
		return
	}

	next := drfLatch{Valid: true, Inst: inst, Format: format}

	if format.Rs1 {
		next.Src1 = m.readSource(inst.Rs1)
	}
	if format.Rs2 {
		next.Src2 = m.readSource(inst.Rs2)
	}
	if format.Rd && !format.DestIsRd {
		next.StoreData = m.readSource(inst.Rd)
	}
	if format.Rd && format.DestIsRd {
		tag, ok := m.renameTable.Allocate(inst.Rd)
		if !ok {
			// Rename pool exhausted: leave the fetch latch intact so
			// this same instruction is retried once a commit frees a
			// tag. drfLatch stays invalid.
			return
		}
		next.HasDest = true
		next.DestTag = tag
	}

	m.dLatch = next
	m.fLatch.Valid = false
}

// readSource implements spec.md §4.2 step 1: prefer a live rename
// mapping (the read waits on that tag's broadcast); otherwise, if no
// writer is in flight for the register, read its architectural value
// directly and mark it ready.
func (m *Machine) readSource(reg int) iqlsq.Operand {
	if tag, ok := m.renameTable.Lookup(reg); ok {
		return iqlsq.Operand{Tag: tag, Ready: false}
	}
	if !m.regs.HasInFlightWriter(reg) {
		return iqlsq.Operand{Ready: true, Value: m.regs.Read(reg)}
	}
	// Per the rename-table invariant (spec.md §8 invariant 2), an
	// in-flight writer always has a live rename mapping in this
	// design, so this path is unreachable; the sentinel tag -1 never
	// matches a real broadcast; this is not the stall-free disconnect
	// spec.md warns about, it is just unreachable given invariant 2.
	return iqlsq.Operand{Tag: -1, Ready: false}
}
