package core

import (
	"github.com/sarchlab/apexsim/insts"
	"github.com/sarchlab/apexsim/timing/rob"
)

// commit implements spec.md §5 step 1 / §4.7: retire up to
// cfg.RetireWidth entries from the ROB head, in program order, stopping
// at the first entry that is not yet Ready. A committing HALT ends the
// run; a committing taken BZ/BNZ or JUMP triggers full mispredict recovery and
// stops any further retirement this cycle, since the ROB it would have
// continued draining has just been cleared.
func (m *Machine) commit() {
	for i := 0; i < m.cfg.RetireWidth; i++ {
		if m.rob.Empty() {
			return
		}
		if !m.rob.Head().Ready {
			return
		}

		e := m.rob.CommitHead()
		m.retire(e)

		if m.halted {
			return
		}
	}
}

// retire applies one ROB entry's architectural side effect.
func (m *Machine) retire(e rob.Entry) {
	if e.HasDest {
		m.regs.Write(e.Dest, e.Value)
		m.regs.MarkWriterCommitted(e.Dest)
		m.renameTable.Release(e.Dest, e.DestTag)
	}

	switch e.Op {
	case insts.HALT:
		m.halted = true
	case insts.BZ, insts.BNZ, insts.JUMP:
		// JUMP is unconditionally taken (unless its target was invalid,
		// in which case Taken is false and it retires as a no-op); a
		// conditional branch squashes only when actually taken.
		if e.Taken {
			m.squashAndRedirect(e.Target)
		}
	}
}

// squashAndRedirect implements spec.md §4.7's recovery procedure: every
// in-flight structure downstream of commit is discarded (the entries
// left in it can only belong to instructions dispatched after the
// branch, since commit is strictly in order and everything older has
// already retired), and Fetch resumes from the branch's resolved
// target after sitting out exactly one cycle.
func (m *Machine) squashAndRedirect(target int32) {
	m.renameTable.Clear()
	m.rob.Clear()
	m.iq.Clear()
	m.lsq.Clear()
	m.regs.ResetInFlightWriters()

	m.fLatch = fetchLatch{}
	m.dLatch = drfLatch{}

	m.intUnit.Clear()
	m.mulUnit.Clear()
	m.branchUnit.Clear()
	m.memUnit.Clear()
	m.pendingMem = nil

	m.pc = target
	m.fetchHalted = false
	m.fetchEnded = false
	m.squashStall = true
}
