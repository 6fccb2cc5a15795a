package diag_test

import (
	"bytes"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/apexsim/diag"
)

var _ = Describe("StderrReporter", func() {
	It("formats a diagnostic as [cycle N] KIND: message", func() {
		var buf bytes.Buffer
		r := diag.NewReporterTo(&buf)
		r.Report(7, "DIVZERO", "divide by zero at pc 4008")
		Expect(buf.String()).To(Equal("[cycle 7] DIVZERO: divide by zero at pc 4008\n"))
	})
})

var _ = Describe("Discard", func() {
	It("does nothing", func() {
		Expect(func() { diag.Discard{}.Report(1, "X", "y") }).NotTo(Panic())
	})
})
