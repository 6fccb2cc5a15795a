package fu_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/apexsim/emu"
	"github.com/sarchlab/apexsim/insts"
	"github.com/sarchlab/apexsim/timing/fu"
)

var _ = Describe("Execute (INT)", func() {
	var flags *emu.Flags

	BeforeEach(func() {
		flags = &emu.Flags{}
	})

	It("computes MOVC as the immediate", func() {
		r := fu.Execute(fu.IntInput{Op: insts.MOVC, Imm: 5, HasDest: true, DestTag: 3}, flags)
		Expect(r.Value).To(Equal(int32(5)))
		Expect(r.HasDest).To(BeTrue())
		Expect(r.DestTag).To(Equal(3))
	})

	It("computes MOV as rs1", func() {
		r := fu.Execute(fu.IntInput{Op: insts.MOV, Src1: 9}, flags)
		Expect(r.Value).To(Equal(int32(9)))
	})

	It("computes ADD and sets Overflow on signed overflow", func() {
		r := fu.Execute(fu.IntInput{Op: insts.ADD, Src1: 2147483647, Src2: 1}, flags)
		Expect(r.Value).To(Equal(int32(-2147483648)))
		Expect(flags.Overflow).To(BeTrue())
	})

	It("computes SUB and sets Carry when the subtrahend exceeds the minuend", func() {
		r := fu.Execute(fu.IntInput{Op: insts.SUB, Src1: 3, Src2: 10}, flags)
		Expect(r.Value).To(Equal(int32(-7)))
		Expect(flags.Carry).To(BeTrue())
	})

	It("computes DIV and reports divide-by-zero without faulting", func() {
		r := fu.Execute(fu.IntInput{Op: insts.DIV, Src1: 10, Src2: 0}, flags)
		Expect(r.DivByZero).To(BeTrue())
		Expect(r.Value).To(Equal(int32(0)))
		Expect(flags.Zero).To(BeTrue())
	})

	It("leaves flags untouched for AND/OR/EXOR", func() {
		flags.Zero = true
		flags.Carry = true
		fu.Execute(fu.IntInput{Op: insts.AND, Src1: 0b1100, Src2: 0b1010}, flags)
		Expect(flags.Zero).To(BeTrue(), "unchanged, not recomputed")
		Expect(flags.Carry).To(BeTrue())
	})

	It("computes a STORE effective address as rs1+imm without touching memory", func() {
		r := fu.Execute(fu.IntInput{Op: insts.STORE, Src1: 100, Imm: 16}, flags)
		Expect(r.IsAddress).To(BeTrue())
		Expect(r.Addr).To(Equal(int32(116)))
	})

	It("computes an STR effective address as rs1+rs2", func() {
		r := fu.Execute(fu.IntInput{Op: insts.STR, Src1: 100, Src2: 4}, flags)
		Expect(r.IsAddress).To(BeTrue())
		Expect(r.Addr).To(Equal(int32(104)))
	})
})
