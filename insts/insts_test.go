package insts_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/apexsim/insts"
)

var _ = Describe("Op", func() {
	It("round-trips mnemonic to Op and back", func() {
		for _, m := range []string{
			"STORE", "STR", "LOAD", "LDR", "MOVC", "MOV",
			"ADD", "ADDL", "SUB", "SUBL", "MUL", "DIV",
			"AND", "OR", "EXOR", "BZ", "BNZ", "JUMP", "HALT", "NOP",
		} {
			op, ok := insts.ParseOp(m)
			Expect(ok).To(BeTrue(), m)
			Expect(op.String()).To(Equal(m))
		}
	})

	It("rejects unknown mnemonics", func() {
		_, ok := insts.ParseOp("WOOP")
		Expect(ok).To(BeFalse())
	})
})

var _ = Describe("FormatOf", func() {
	It("matches the STORE shape: rd is the store-data source, rs1 the base, disp immediate", func() {
		f := insts.FormatOf(insts.STORE)
		Expect(f.Rd).To(BeTrue())
		Expect(f.DestIsRd).To(BeFalse(), "STORE's rd is read, not written")
		Expect(f.Rs1).To(BeTrue())
		Expect(f.Rs2).To(BeFalse())
		Expect(f.Imm).To(BeTrue())
		Expect(f.FUClass).To(Equal(insts.FUInt), "effective-address calc runs on the INT pipeline")
	})

	It("matches the LOAD shape: writes rd, reads rs1, has a displacement", func() {
		f := insts.FormatOf(insts.LOAD)
		Expect(f.Rd).To(BeTrue())
		Expect(f.DestIsRd).To(BeTrue())
		Expect(f.Rs1).To(BeTrue())
		Expect(f.Rs2).To(BeFalse())
		Expect(f.Imm).To(BeTrue())
	})

	It("matches the MOVC shape: writes rd, no register sources", func() {
		f := insts.FormatOf(insts.MOVC)
		Expect(f.Rd).To(BeTrue())
		Expect(f.DestIsRd).To(BeTrue())
		Expect(f.Rs1).To(BeFalse())
		Expect(f.Rs2).To(BeFalse())
		Expect(f.Imm).To(BeTrue())
	})

	It("routes MUL to the multiply FU class", func() {
		Expect(insts.FormatOf(insts.MUL).FUClass).To(Equal(insts.FUMul))
	})

	It("routes BZ/BNZ/JUMP to the branch FU class", func() {
		Expect(insts.FormatOf(insts.BZ).FUClass).To(Equal(insts.FUBranch))
		Expect(insts.FormatOf(insts.BNZ).FUClass).To(Equal(insts.FUBranch))
		Expect(insts.FormatOf(insts.JUMP).FUClass).To(Equal(insts.FUBranch))
	})

	It("routes HALT/NOP to no FU class", func() {
		Expect(insts.FormatOf(insts.HALT).FUClass).To(Equal(insts.FUNone))
		Expect(insts.FormatOf(insts.NOP).FUClass).To(Equal(insts.FUNone))
	})
})

var _ = Describe("classification helpers", func() {
	It("identifies memory ops", func() {
		Expect(insts.STORE.IsMem()).To(BeTrue())
		Expect(insts.LOAD.IsMem()).To(BeTrue())
		Expect(insts.ADD.IsMem()).To(BeFalse())
	})

	It("identifies stores among memory ops", func() {
		Expect(insts.STORE.IsStore()).To(BeTrue())
		Expect(insts.STR.IsStore()).To(BeTrue())
		Expect(insts.LOAD.IsStore()).To(BeFalse())
	})

	It("identifies branch ops", func() {
		Expect(insts.JUMP.IsBranch()).To(BeTrue())
		Expect(insts.ADD.IsBranch()).To(BeFalse())
	})
})
