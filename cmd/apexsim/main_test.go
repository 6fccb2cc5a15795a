package main

import (
	"bytes"
	"os"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func writeProgram(lines ...string) string {
	f, err := os.CreateTemp("", "apexsim-*.asm")
	Expect(err).NotTo(HaveOccurred())
	for _, line := range lines {
		_, err := f.WriteString(line + "\n")
		Expect(err).NotTo(HaveOccurred())
	}
	Expect(f.Close()).To(Succeed())
	return f.Name()
}

var _ = Describe("apexsim CLI", func() {
	var path string

	AfterEach(func() {
		os.Remove(path)
	})

	It("runs one-shot simulate mode and reports completion", func() {
		path = writeProgram("MOVC R1,#5", "MOVC R2,#7", "ADD R3,R1,R2", "HALT")

		var out bytes.Buffer
		cmd := newRootCmd()
		cmd.SetOut(&out)
		cmd.SetArgs([]string{path, "simulate", "200"})

		Expect(cmd.Execute()).To(Succeed())
		Expect(out.String()).To(ContainSubstring("Simulation Complete"))
	})

	It("prints the final dump in display mode", func() {
		path = writeProgram("MOVC R1,#5", "HALT")

		var out bytes.Buffer
		cmd := newRootCmd()
		cmd.SetOut(&out)
		cmd.SetArgs([]string{path, "display", "200"})

		Expect(cmd.Execute()).To(Succeed())
		Expect(out.String()).To(ContainSubstring("STATE OF CPU FLAGS"))
		Expect(out.String()).To(ContainSubstring("STATE OF ARCHITECTURAL REGISTER FILE"))
	})

	It("rejects an invalid mode", func() {
		path = writeProgram("HALT")

		var out bytes.Buffer
		cmd := newRootCmd()
		cmd.SetOut(&out)
		cmd.SetArgs([]string{path, "bogus", "200"})

		Expect(cmd.Execute()).To(HaveOccurred())
	})

	It("rejects a zero cycle count", func() {
		path = writeProgram("HALT")

		cmd := newRootCmd()
		cmd.SetArgs([]string{path, "simulate", "0"})

		Expect(cmd.Execute()).To(HaveOccurred())
	})

	It("runs the interactive loop until exit", func() {
		path = writeProgram("MOVC R1,#5", "HALT")

		var out bytes.Buffer
		cmd := newRootCmd()
		cmd.SetOut(&out)
		cmd.SetIn(bytes.NewBufferString("simulate 200\nexit\n"))
		cmd.SetArgs([]string{path})

		Expect(cmd.Execute()).To(Succeed())
		Expect(out.String()).To(ContainSubstring("Simulation Complete"))
		Expect(out.String()).To(ContainSubstring("Terminating Simulation"))
	})
})
