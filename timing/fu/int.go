package fu

import (
	"github.com/sarchlab/apexsim/emu"
	"github.com/sarchlab/apexsim/insts"
)

// IntInput bundles everything the INT pipeline needs to execute one
// instruction, already resolved by IQ selection (every source the
// opcode's format requires is ready before issue, spec.md §4.3).
type IntInput struct {
	Op      insts.Op
	PC      int32
	HasDest bool
	DestTag int
	Src1    int32
	Src2    int32
	Imm     int32
}

// IntUnit is the 2-stage INT pipeline: effective-address math,
// MOV/MOVC, the ADD/SUB family, DIV, and the bitwise ops (spec.md
// §4.5).
type IntUnit struct {
	*Pipeline
}

// NewIntUnit creates an INT pipeline of the given depth (spec.md
// default: 2 stages).
func NewIntUnit(depth uint64) *IntUnit {
	return &IntUnit{Pipeline: NewPipeline(depth)}
}

// Execute computes in's result immediately (see pipeline.go's doc
// comment on why this is observably equivalent to a staged compute)
// and sets flags as a side effect for the opcodes that define them.
// The caller is responsible for injecting the returned Result into the
// pipeline's entry stage.
func Execute(in IntInput, flags *emu.Flags) Result {
	r := Result{PC: in.PC, Op: in.Op, HasDest: in.HasDest, DestTag: in.DestTag}

	switch in.Op {
	case insts.STORE:
		r.IsAddress = true
		r.Addr = in.Src1 + in.Imm
	case insts.STR:
		r.IsAddress = true
		r.Addr = in.Src1 + in.Src2
	case insts.LOAD:
		r.IsAddress = true
		r.Addr = in.Src1 + in.Imm
	case insts.LDR:
		r.IsAddress = true
		r.Addr = in.Src1 + in.Src2
	case insts.MOVC:
		r.Value = in.Imm
	case insts.MOV:
		r.Value = in.Src1
	case insts.ADD:
		res := emu.Add(in.Src1, in.Src2)
		r.Value = res.Value
		flags.Zero = res.Zero
		flags.Overflow = res.Overflow
	case insts.ADDL:
		res := emu.Add(in.Src1, in.Imm)
		r.Value = res.Value
		flags.Zero = res.Zero
		flags.Overflow = res.Overflow
	case insts.SUB:
		res := emu.Sub(in.Src1, in.Src2)
		r.Value = res.Value
		flags.Zero = res.Zero
		flags.Carry = res.Carry
	case insts.SUBL:
		res := emu.Sub(in.Src1, in.Imm)
		r.Value = res.Value
		flags.Zero = res.Zero
		flags.Carry = res.Carry
	case insts.DIV:
		res, divByZero := emu.Div(in.Src1, in.Src2)
		r.Value = res.Value
		r.DivByZero = divByZero
		flags.Zero = res.Zero
	case insts.AND:
		r.Value = emu.And(in.Src1, in.Src2)
	case insts.OR:
		r.Value = emu.Or(in.Src1, in.Src2)
	case insts.EXOR:
		r.Value = emu.Exor(in.Src1, in.Src2)
	}

	return r
}
