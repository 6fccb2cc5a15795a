package core

// execute implements spec.md §5 step 3 for the MEM pipeline: INT/MUL/
// BRANCH already computed their result at issue (fu/pipeline.go's
// compute-at-inject simplification), so there is nothing further for
// them to do here — only MEM, which is not a shift register but a
// single in-flight access, advances explicitly every cycle it is busy.
// An access that lands outside data memory is reported as a SEGFAULT
// diagnostic.
func (m *Machine) execute() {
	segfaults := m.mem.Segfaults()
	m.pendingMem = m.memUnit.Tick(m.mem)
	if m.mem.Segfaults() != segfaults {
		m.reporter.Report(m.cycle, "SEGFAULT", "data memory access out of range")
	}
}
