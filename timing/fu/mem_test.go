package fu_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/apexsim/emu"
	"github.com/sarchlab/apexsim/insts"
	"github.com/sarchlab/apexsim/timing/fu"
)

var _ = Describe("MemUnit", func() {
	var (
		m   *fu.MemUnit
		mem *emu.Memory
	)

	BeforeEach(func() {
		m = fu.NewMemUnit(3)
		mem = &emu.Memory{}
	})

	It("refuses a second access while one is in flight", func() {
		Expect(m.CanAccept()).To(BeTrue())
		m.Accept(fu.MemInput{Op: insts.LOAD, Addr: 0})
		Expect(m.CanAccept()).To(BeFalse())
	})

	It("performs the access only on the final cycle", func() {
		mem.Write(16, 42)
		m.Accept(fu.MemInput{Op: insts.LOAD, Addr: 16, HasDest: true, DestTag: 5})

		Expect(m.Tick(mem)).To(BeNil())
		Expect(m.Tick(mem)).To(BeNil())
		r := m.Tick(mem)
		Expect(r).NotTo(BeNil())
		Expect(r.Value).To(Equal(int32(42)))
		Expect(r.DestTag).To(Equal(5))
	})

	It("frees itself after completion so a new access can be accepted", func() {
		m.Accept(fu.MemInput{Op: insts.LOAD, Addr: 0})
		m.Tick(mem)
		m.Tick(mem)
		m.Tick(mem)
		Expect(m.CanAccept()).To(BeTrue())
	})

	It("writes store data to memory on completion", func() {
		m.Accept(fu.MemInput{Op: insts.STORE, IsStore: true, Addr: 20, StoreData: 99})
		m.Tick(mem)
		m.Tick(mem)
		m.Tick(mem)

		v, ok := mem.Read(20)
		Expect(ok).To(BeTrue())
		Expect(v).To(Equal(int32(99)))
	})

	It("abandons an in-flight access on Clear", func() {
		m.Accept(fu.MemInput{Op: insts.LOAD, Addr: 0})
		m.Clear()
		Expect(m.CanAccept()).To(BeTrue())
	})
})
