package fu_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/apexsim/timing/fu"
)

var _ = Describe("Pipeline", func() {
	It("presents an injected result only after depth-1 Advances", func() {
		p := fu.NewPipeline(2)
		Expect(p.CanAccept()).To(BeTrue())

		p.Inject(&fu.Result{PC: 4000})
		Expect(p.Peek()).To(BeNil(), "not at the exit stage yet")

		p.Advance()
		Expect(p.Peek()).NotTo(BeNil())
		Expect(p.Peek().PC).To(Equal(int32(4000)))
	})

	It("accepts a new entry every cycle because Advance always frees stage 0", func() {
		p := fu.NewPipeline(2)
		p.Inject(&fu.Result{PC: 4000})
		p.Advance()
		Expect(p.CanAccept()).To(BeTrue())
	})

	It("clears every stage", func() {
		p := fu.NewPipeline(3)
		p.Inject(&fu.Result{PC: 4000})
		p.Clear()
		p.Advance()
		p.Advance()
		Expect(p.Peek()).To(BeNil())
	})
})
