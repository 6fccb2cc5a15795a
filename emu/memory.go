package emu

// DataMemorySize is the number of addressable words in data memory.
const DataMemorySize = 4096

// Memory is the machine's flat, word-addressed data memory. There is no
// cache or TLB hierarchy: every access is a direct array index (spec.md
// §1 Non-goals).
type Memory struct {
	words [DataMemorySize]int32

	// segfaults counts out-of-range accesses, surfaced to diagnostics.
	segfaults uint64
}

// Valid reports whether addr is a legal data memory address.
func Valid(addr int) bool {
	return addr >= 0 && addr < DataMemorySize
}

// Read returns the word at addr. An out-of-range address is a
// segmentation fault: it is counted and an undefined value (0) is
// returned; the caller is expected to report the fault via diag.
func (m *Memory) Read(addr int) (value int32, ok bool) {
	if !Valid(addr) {
		m.segfaults++
		return 0, false
	}
	return m.words[addr], true
}

// Write stores value at addr. An out-of-range address is a segmentation
// fault: the write is suppressed and counted.
func (m *Memory) Write(addr int, value int32) (ok bool) {
	if !Valid(addr) {
		m.segfaults++
		return false
	}
	m.words[addr] = value
	return true
}

// Segfaults returns the number of out-of-range accesses observed so far.
func (m *Memory) Segfaults() uint64 {
	return m.segfaults
}

// First returns the first n words of memory, used by the tracer's
// end-of-run memory dump (spec.md §6: "first 100 memory words").
func (m *Memory) First(n int) []int32 {
	if n > DataMemorySize {
		n = DataMemorySize
	}
	out := make([]int32, n)
	copy(out, m.words[:n])
	return out
}
