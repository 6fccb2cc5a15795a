package emu_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/apexsim/emu"
)

var _ = Describe("Memory", func() {
	var mem *emu.Memory

	BeforeEach(func() {
		mem = &emu.Memory{}
	})

	It("round-trips a write within range", func() {
		ok := mem.Write(16, 42)
		Expect(ok).To(BeTrue())

		v, ok := mem.Read(16)
		Expect(ok).To(BeTrue())
		Expect(v).To(Equal(int32(42)))
	})

	It("reports a segfault and suppresses the write when out of range", func() {
		ok := mem.Write(emu.DataMemorySize, 1)
		Expect(ok).To(BeFalse())
		Expect(mem.Segfaults()).To(Equal(uint64(1)))

		v, ok := mem.Read(emu.DataMemorySize + 10)
		Expect(ok).To(BeFalse())
		Expect(v).To(Equal(int32(0)))
		Expect(mem.Segfaults()).To(Equal(uint64(2)))
	})

	It("returns the first n words for the end-of-run memory dump", func() {
		mem.Write(0, 7)
		mem.Write(5, 9)
		first := mem.First(10)
		Expect(first).To(HaveLen(10))
		Expect(first[0]).To(Equal(int32(7)))
		Expect(first[5]).To(Equal(int32(9)))
	})

	It("clamps First to the memory size", func() {
		first := mem.First(emu.DataMemorySize + 100)
		Expect(first).To(HaveLen(emu.DataMemorySize))
	})
})
