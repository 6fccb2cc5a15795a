// Package emu provides the architectural state of the simulated machine:
// the integer register file, condition flags, and flat data memory.
package emu

// RegisterFileSize is the number of architectural integer registers.
const RegisterFileSize = 32

// RegFile is the architectural integer register file.
//
// In addition to the 32 programmer-visible registers it tracks, per
// register, how many in-flight (not yet committed) instructions will
// write it. Decode consults this count to decide whether a register read
// can be satisfied directly or must wait on the rename table.
type RegFile struct {
	// X holds the 32 architectural integer registers.
	X [RegisterFileSize]int32

	// inFlightWriters[r] is the number of dispatched-but-not-committed
	// instructions that will write register r.
	inFlightWriters [RegisterFileSize]int
}

// Read reads an architectural register. Out-of-range indices return 0.
func (r *RegFile) Read(reg int) int32 {
	if reg < 0 || reg >= RegisterFileSize {
		return 0
	}
	return r.X[reg]
}

// Write commits a value to an architectural register. Out-of-range
// indices are ignored.
func (r *RegFile) Write(reg int, value int32) {
	if reg < 0 || reg >= RegisterFileSize {
		return
	}
	r.X[reg] = value
}

// HasInFlightWriter reports whether some dispatched, not-yet-committed
// instruction will write reg.
func (r *RegFile) HasInFlightWriter(reg int) bool {
	if reg < 0 || reg >= RegisterFileSize {
		return false
	}
	return r.inFlightWriters[reg] > 0
}

// MarkWriterDispatched increments reg's in-flight writer count. Called at
// dispatch for any instruction with a destination register.
func (r *RegFile) MarkWriterDispatched(reg int) {
	if reg < 0 || reg >= RegisterFileSize {
		return
	}
	r.inFlightWriters[reg]++
}

// MarkWriterCommitted decrements reg's in-flight writer count. Called at
// commit for any instruction that wrote a destination register.
func (r *RegFile) MarkWriterCommitted(reg int) {
	if reg < 0 || reg >= RegisterFileSize || r.inFlightWriters[reg] == 0 {
		return
	}
	r.inFlightWriters[reg]--
}

// InFlightWriterCount returns the raw count, used by invariant checks and
// the tracer.
func (r *RegFile) InFlightWriterCount(reg int) int {
	if reg < 0 || reg >= RegisterFileSize {
		return 0
	}
	return r.inFlightWriters[reg]
}

// ResetInFlightWriters zeroes every register's in-flight writer count.
// Branch-mispredict squash calls this: the dispatched-but-not-committed
// instructions those counts were tracking are discarded along with the
// ROB/IQ/LSQ, and would otherwise never decrement them back to zero.
func (r *RegFile) ResetInFlightWriters() {
	for i := range r.inFlightWriters {
		r.inFlightWriters[i] = 0
	}
}
