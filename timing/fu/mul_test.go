package fu_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/apexsim/emu"
	"github.com/sarchlab/apexsim/timing/fu"
)

var _ = Describe("ExecuteMul", func() {
	It("computes the product and marks the destination", func() {
		flags := &emu.Flags{}
		r := fu.ExecuteMul(fu.MulInput{PC: 4000, DestTag: 2, Src1: 6, Src2: 7}, flags)
		Expect(r.Value).To(Equal(int32(42)))
		Expect(r.HasDest).To(BeTrue())
		Expect(r.DestTag).To(Equal(2))
		Expect(flags.Zero).To(BeFalse())
	})

	It("sets Zero on a zero product", func() {
		flags := &emu.Flags{}
		fu.ExecuteMul(fu.MulInput{Src1: 0, Src2: 9}, flags)
		Expect(flags.Zero).To(BeTrue())
	})
})
