package fu_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/apexsim/insts"
	"github.com/sarchlab/apexsim/timing/fu"
)

var _ = Describe("ExecuteBranch", func() {
	It("takes BZ when the zero flag is set", func() {
		r := fu.ExecuteBranch(fu.BranchInput{
			Op: insts.BZ, PC: 4008, Imm: 8, ZeroFlag: true,
			CodeBase: 4000, CodeSize: 10,
		})
		Expect(r.Taken).To(BeTrue())
		Expect(r.Target).To(Equal(int32(4016)))
	})

	It("does not take BZ when the zero flag is clear", func() {
		r := fu.ExecuteBranch(fu.BranchInput{Op: insts.BZ, PC: 4008, Imm: 8, ZeroFlag: false, CodeBase: 4000, CodeSize: 10})
		Expect(r.Taken).To(BeFalse())
	})

	It("takes BNZ when the zero flag is clear", func() {
		r := fu.ExecuteBranch(fu.BranchInput{Op: insts.BNZ, PC: 4008, Imm: 8, ZeroFlag: false, CodeBase: 4000, CodeSize: 10})
		Expect(r.Taken).To(BeTrue())
	})

	It("always takes JUMP, targeting rs1+imm", func() {
		r := fu.ExecuteBranch(fu.BranchInput{Op: insts.JUMP, PC: 4008, Src1: 4000, Imm: 20, CodeBase: 4000, CodeSize: 10})
		Expect(r.Taken).To(BeTrue())
		Expect(r.Target).To(Equal(int32(4020)))
	})

	It("reports a misaligned target as invalid and not-taken", func() {
		r := fu.ExecuteBranch(fu.BranchInput{Op: insts.JUMP, PC: 4008, Src1: 4001, Imm: 0, CodeBase: 4000, CodeSize: 10})
		Expect(r.InvalidTarget).To(BeTrue())
		Expect(r.Taken).To(BeFalse())
	})

	It("reports an out-of-range target as invalid and not-taken", func() {
		r := fu.ExecuteBranch(fu.BranchInput{Op: insts.JUMP, PC: 4008, Src1: 4000, Imm: 10000, CodeBase: 4000, CodeSize: 10})
		Expect(r.InvalidTarget).To(BeTrue())
		Expect(r.Taken).To(BeFalse())
	})
})
