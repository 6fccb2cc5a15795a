package fu

import "github.com/sarchlab/apexsim/insts"

// BranchInput bundles what the BRANCH pipeline needs to resolve a
// BZ/BNZ/JUMP.
type BranchInput struct {
	Op       insts.Op
	PC       int32
	Src1     int32 // JUMP's base register; unused otherwise
	Imm      int32
	ZeroFlag bool
	CodeBase int32
	CodeSize int32 // number of instructions, for the target range check
}

// BranchUnit is the 1-stage BRANCH pipeline (spec.md §4.5).
type BranchUnit struct {
	*Pipeline
}

// NewBranchUnit creates a BRANCH pipeline of the given depth (spec.md
// default: 1 stage).
func NewBranchUnit(depth uint64) *BranchUnit {
	return &BranchUnit{Pipeline: NewPipeline(depth)}
}

// ExecuteBranch resolves taken/not-taken and the target address. An
// out-of-range or misaligned target is reported via InvalidTarget and
// treated as not-taken (spec.md §4.5, §7).
func ExecuteBranch(in BranchInput) Result {
	r := Result{PC: in.PC, Op: in.Op, IsBranch: true}

	var target int32
	switch in.Op {
	case insts.BZ:
		r.Taken = in.ZeroFlag
		target = in.PC + in.Imm
	case insts.BNZ:
		r.Taken = !in.ZeroFlag
		target = in.PC + in.Imm
	case insts.JUMP:
		r.Taken = true
		target = in.Src1 + in.Imm
	}

	if !r.Taken {
		return r
	}

	low := in.CodeBase
	high := in.CodeBase + in.CodeSize*4
	if target%4 != 0 || target < low || target >= high {
		r.InvalidTarget = true
		r.Taken = false
		return r
	}

	r.Target = target
	return r
}
