package core

import (
	"github.com/sarchlab/apexsim/insts"
	"github.com/sarchlab/apexsim/timing/fu"
)

// issue implements spec.md §4.3's per-FU-class selection (one INT, one
// MUL, one BRANCH candidate, each the oldest ready entry of its class)
// plus §4.4's separate LSQ-head-to-MEM path, and computes each result
// immediately (see fu/pipeline.go's doc comment on why compute-at-issue
// is equivalent to a staged compute here).
func (m *Machine) issue() {
	intIdx, intOk := -1, false
	if m.intUnit.CanAccept() {
		intIdx, intOk = m.iq.SelectOne(insts.FUInt)
	}
	mulIdx, mulOk := -1, false
	if m.mulUnit.CanAccept() {
		mulIdx, mulOk = m.iq.SelectOne(insts.FUMul)
	}
	branchIdx, branchOk := -1, false
	if m.branchUnit.CanAccept() {
		branchIdx, branchOk = m.iq.SelectOne(insts.FUBranch)
	}

	if branchOk {
		branchOp := m.iq.At(branchIdx).Op
		conditional := branchOp == insts.BZ || branchOp == insts.BNZ
		intWritesFlags := intOk && isFlagWriter(m.iq.At(intIdx).Op)
		if conditional && (intWritesFlags || mulOk) {
			m.flagRaceDetected++
		}
	}

	// INT and MUL issue — and update m.flags synchronously via
	// fu.Execute/fu.ExecuteMul — before BRANCH reads them below, so a
	// same-cycle flag producer's update is actually visible to a
	// same-cycle branch reader instead of resolving against a stale
	// pre-update value. This is what makes the flagRaceDetected count
	// above a genuine diagnostic rather than a silently-uncorrected
	// hazard: flags are "set at execute, not reordered" (DESIGN.md),
	// and issuing INT/MUL ahead of BRANCH within the same tick is how
	// that ordering is actually honored for the same-cycle collision.
	if intOk {
		m.issueInt(intIdx)
	}
	if mulOk {
		m.issueMul(mulIdx)
	}
	if branchOk {
		m.issueBranch(branchIdx, m.flags.Zero)
	}

	if m.memUnit.CanAccept() && m.lsq.HeadRunnable() {
		e := m.lsq.IssueHead()
		m.memUnit.Accept(fu.MemInput{
			Op:        e.Op,
			PC:        e.PC,
			IsStore:   e.IsStore,
			Addr:      e.Addr,
			StoreData: e.StoreData.Value,
			DestTag:   e.DestTag,
			HasDest:   e.HasDest,
		})
	}
}

// isFlagWriter reports whether op sets the condition flags INT/MUL
// publish for a later conditional branch to read.
func isFlagWriter(op insts.Op) bool {
	switch op {
	case insts.ADD, insts.ADDL, insts.SUB, insts.SUBL, insts.DIV, insts.MUL:
		return true
	default:
		return false
	}
}

func (m *Machine) issueInt(idx int) {
	e := m.iq.At(idx)
	in := fu.IntInput{
		Op:      e.Op,
		PC:      e.PC,
		HasDest: e.HasDest,
		DestTag: e.DestTag,
		Src1:    e.Src1.Value,
		Src2:    e.Src2.Value,
		Imm:     e.Imm,
	}
	r := fu.Execute(in, m.flags)
	if r.DivByZero {
		m.reporter.Report(m.cycle, "DIVZERO", "divide by zero")
	}
	m.intUnit.Inject(&r)
	m.iq.Free(idx)
}

func (m *Machine) issueMul(idx int) {
	e := m.iq.At(idx)
	in := fu.MulInput{
		PC:      e.PC,
		DestTag: e.DestTag,
		Src1:    e.Src1.Value,
		Src2:    e.Src2.Value,
	}
	r := fu.ExecuteMul(in, m.flags)
	m.mulUnit.Inject(&r)
	m.iq.Free(idx)
}

func (m *Machine) issueBranch(idx int, zeroFlag bool) {
	e := m.iq.At(idx)
	in := fu.BranchInput{
		Op:       e.Op,
		PC:       e.PC,
		Src1:     e.Src1.Value,
		Imm:      e.Imm,
		ZeroFlag: zeroFlag,
		CodeBase: m.program.CodeBase,
		CodeSize: int32(m.program.Len()),
	}
	r := fu.ExecuteBranch(in)
	if r.InvalidTarget {
		m.reporter.Report(m.cycle, "BADTARGET", "branch target out of range or misaligned")
	}
	m.branchUnit.Inject(&r)
	m.iq.Free(idx)
}
