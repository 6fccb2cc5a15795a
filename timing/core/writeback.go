package core

import "github.com/sarchlab/apexsim/timing/fu"

// writeback implements spec.md §5 step 8 / §4.6: read each FU's exit
// stage (once per FU per cycle) and fan the result out to every
// waiting structure that cares about it. It runs after Dispatch and
// Decode so a newly dispatched IQ entry or a latch occupant waiting on
// this exact cycle's broadcast still wakes up in the same cycle it
// arrives, per spec.md §4.6's "same-cycle wakeup" rule.
func (m *Machine) writeback() {
	if r := m.intUnit.Peek(); r != nil {
		m.broadcast(r)
	}
	if r := m.mulUnit.Peek(); r != nil {
		m.broadcast(r)
	}
	if r := m.branchUnit.Peek(); r != nil {
		m.broadcast(r)
	}
	if m.pendingMem != nil {
		m.broadcast(m.pendingMem)
		m.pendingMem = nil
	}
}

// broadcast routes one FU result to the ROB, the IQ, the LSQ, and the
// DRF latch, per spec.md §4.6's three rules.
func (m *Machine) broadcast(r *fu.Result) {
	switch {
	case r.IsAddress:
		// Rule 3: an effective address computed on the INT pipeline
		// updates the waiting LSQ entry, not the ROB or IQ — the
		// instruction itself isn't done until MEM actually runs.
		if idx, ok := m.lsq.FindByPC(r.PC); ok {
			e := m.lsq.At(idx)
			e.Addr = r.Addr
			e.AddrValid = true
		}
		return

	case r.IsBranch:
		// Rule 1: the ROB entry records the resolved direction/target;
		// BZ/BNZ/JUMP have no destination register to wake.
		if idx, ok := m.rob.FindByPC(r.PC); ok {
			e := m.rob.At(idx)
			e.Ready = true
			e.Taken = r.Taken
			e.Target = r.Target
		}
		return
	}

	// Rule 1/2: an ordinary arithmetic/move/load/store result marks its
	// ROB entry ready and, if it carries a destination tag, wakes every
	// IQ entry and DRF-latch occupant waiting on that tag.
	if idx, ok := m.rob.FindByPC(r.PC); ok {
		e := m.rob.At(idx)
		e.Ready = true
		if r.HasDest {
			e.Value = r.Value
		}
	}

	if !r.HasDest {
		return
	}

	m.iq.Wakeup(r.DestTag, r.Value)
	m.lsq.WakeupStoreData(r.DestTag, r.Value)
	m.wakeLatch(r.DestTag, r.Value)
}

// wakeLatch wakes the DRF latch's Src1/Src2/StoreData if they are
// still awaiting exactly this tag — the latch is outside the IQ/LSQ so
// IQ.Wakeup alone would never reach it.
func (m *Machine) wakeLatch(tag int, value int32) {
	if !m.dLatch.Valid {
		return
	}
	if !m.dLatch.Src1.Ready && m.dLatch.Src1.Tag == tag {
		m.dLatch.Src1.Ready = true
		m.dLatch.Src1.Value = value
	}
	if !m.dLatch.Src2.Ready && m.dLatch.Src2.Tag == tag {
		m.dLatch.Src2.Ready = true
		m.dLatch.Src2.Value = value
	}
	if !m.dLatch.StoreData.Ready && m.dLatch.StoreData.Tag == tag {
		m.dLatch.StoreData.Ready = true
		m.dLatch.StoreData.Value = value
	}
}
