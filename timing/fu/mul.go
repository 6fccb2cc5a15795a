package fu

import (
	"github.com/sarchlab/apexsim/emu"
	"github.com/sarchlab/apexsim/insts"
)

// MulInput bundles the operands MUL needs; see IntInput's comment on
// why sources arrive already resolved.
type MulInput struct {
	PC      int32
	DestTag int
	Src1    int32
	Src2    int32
}

// MulUnit is the 3-stage MUL pipeline (spec.md §4.5).
type MulUnit struct {
	*Pipeline
}

// NewMulUnit creates a MUL pipeline of the given depth (spec.md
// default: 3 stages).
func NewMulUnit(depth uint64) *MulUnit {
	return &MulUnit{Pipeline: NewPipeline(depth)}
}

// ExecuteMul computes the product and the Zero flag MUL publishes at
// its final stage.
func ExecuteMul(in MulInput, flags *emu.Flags) Result {
	value := in.Src1 * in.Src2
	flags.Zero = value == 0
	return Result{
		PC:      in.PC,
		Op:      insts.MUL,
		HasDest: true,
		DestTag: in.DestTag,
		Value:   value,
	}
}
