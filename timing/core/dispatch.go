package core

import (
	"github.com/sarchlab/apexsim/insts"
	"github.com/sarchlab/apexsim/timing/iqlsq"
	"github.com/sarchlab/apexsim/timing/rob"
)

// dispatch implements spec.md §4.2 step 3: place the decoded
// instruction sitting in the DRF latch into the ROB (always) and, for
// anything that issues to an FU, the IQ — and, for a memory opcode,
// the LSQ too. All three insertions (when required) must have room or
// nothing is dispatched this cycle: a structural stall leaves the DRF
// latch occupied for retry, which is what keeps ROB/IQ/LSQ entries for
// one instruction from ever being split across cycles.
func (m *Machine) dispatch() {
	if !m.dLatch.Valid {
		return
	}

	inst := m.dLatch.Inst
	format := m.dLatch.Format

	needsIQ := format.FUClass != insts.FUNone
	needsLSQ := inst.Op.IsMem()

	if m.rob.Full() {
		return
	}
	if needsIQ && m.iq.Full() {
		return
	}
	if needsLSQ && m.lsq.Full() {
		return
	}

	entry := rob.Entry{
		Op:      inst.Op,
		PC:      inst.PC,
		Dest:    inst.Rd,
		DestTag: m.dLatch.DestTag,
		HasDest: m.dLatch.HasDest,
	}

	// HALT/NOP never issue to an FU: they are ready the instant they
	// are dispatched, per the design decision to record NOP as a
	// trivially-ready ROB entry rather than skip the ROB entirely.
	if !needsIQ {
		entry.Ready = true
		m.rob.Dispatch(entry)
		m.dLatch = drfLatch{}
		return
	}

	m.rob.Dispatch(entry)

	var lsqIndex int
	if needsLSQ {
		lsqIndex = m.lsq.Dispatch(iqlsq.LSQEntry{
			Op:        inst.Op,
			PC:        inst.PC,
			IsStore:   inst.Op.IsStore(),
			DestTag:   m.dLatch.DestTag,
			HasDest:   m.dLatch.HasDest,
			StoreData: m.dLatch.StoreData,
		})
	}

	m.iq.Dispatch(iqlsq.IQEntry{
		Op:          inst.Op,
		PC:          inst.PC,
		HasDest:     m.dLatch.HasDest,
		DestTag:     m.dLatch.DestTag,
		Src1:        m.dLatch.Src1,
		Src2:        m.dLatch.Src2,
		Imm:         inst.Imm,
		LSQIndex:    lsqIndex,
		HasLSQIndex: needsLSQ,
	})

	if format.DestIsRd && m.dLatch.HasDest {
		m.regs.MarkWriterDispatched(inst.Rd)
	}

	m.dLatch = drfLatch{}
}
