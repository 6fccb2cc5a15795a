package emu_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/apexsim/emu"
)

var _ = Describe("RegFile", func() {
	var rf *emu.RegFile

	BeforeEach(func() {
		rf = &emu.RegFile{}
	})

	It("reads zero-initialized registers", func() {
		Expect(rf.Read(5)).To(Equal(int32(0)))
	})

	It("round-trips a write", func() {
		rf.Write(3, 42)
		Expect(rf.Read(3)).To(Equal(int32(42)))
	})

	It("ignores out-of-range reads and writes", func() {
		rf.Write(-1, 10)
		rf.Write(emu.RegisterFileSize, 10)
		Expect(rf.Read(-1)).To(Equal(int32(0)))
		Expect(rf.Read(emu.RegisterFileSize)).To(Equal(int32(0)))
	})

	Describe("in-flight writer tracking", func() {
		It("starts with no in-flight writers", func() {
			Expect(rf.HasInFlightWriter(1)).To(BeFalse())
		})

		It("tracks dispatch and commit symmetrically", func() {
			rf.MarkWriterDispatched(1)
			Expect(rf.HasInFlightWriter(1)).To(BeTrue())
			Expect(rf.InFlightWriterCount(1)).To(Equal(1))

			rf.MarkWriterDispatched(1)
			Expect(rf.InFlightWriterCount(1)).To(Equal(2))

			rf.MarkWriterCommitted(1)
			Expect(rf.HasInFlightWriter(1)).To(BeTrue())

			rf.MarkWriterCommitted(1)
			Expect(rf.HasInFlightWriter(1)).To(BeFalse())
		})

		It("does not go negative on an extra commit", func() {
			rf.MarkWriterCommitted(2)
			Expect(rf.InFlightWriterCount(2)).To(Equal(0))
		})

		It("clears every register's count on reset", func() {
			rf.MarkWriterDispatched(1)
			rf.MarkWriterDispatched(4)
			rf.MarkWriterDispatched(4)

			rf.ResetInFlightWriters()

			Expect(rf.HasInFlightWriter(1)).To(BeFalse())
			Expect(rf.InFlightWriterCount(4)).To(Equal(0))
		})
	})
})
