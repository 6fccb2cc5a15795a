// Package diag carries the machine's non-fatal diagnostics — structural
// stalls are silent (they are not errors), but segfaults, divide-by-zero,
// invalid branch targets, and parse-time opcode coercions all have an
// observer here, per spec.md §7's error taxonomy.
package diag

import (
	"fmt"
	"io"
	"os"
)

// Reporter receives one diagnostic at a time. Report must not block or
// panic — spec.md §5 forbids any operation in the tick loop from
// suspending.
type Reporter interface {
	Report(cycle uint64, kind, message string)
}

// StderrReporter writes diagnostics to an io.Writer (os.Stderr by
// default) as `[cycle N] KIND: message`, the same ad hoc
// fmt.Fprintf(os.Stderr, ...) convention used throughout the teacher
// codebase in place of a structured logging library.
type StderrReporter struct {
	w io.Writer
}

// NewStderrReporter creates a StderrReporter writing to os.Stderr.
func NewStderrReporter() *StderrReporter {
	return &StderrReporter{w: os.Stderr}
}

// NewReporterTo creates a StderrReporter writing to an arbitrary
// writer — tests use this to capture diagnostics instead of os.Stderr.
func NewReporterTo(w io.Writer) *StderrReporter {
	return &StderrReporter{w: w}
}

// Report writes one formatted diagnostic line.
func (r *StderrReporter) Report(cycle uint64, kind, message string) {
	fmt.Fprintf(r.w, "[cycle %d] %s: %s\n", cycle, kind, message)
}

// Discard silently drops every diagnostic. Useful for tests that only
// care about architectural state, not diagnostic text.
type Discard struct{}

// Report implements Reporter by doing nothing.
func (Discard) Report(uint64, string, string) {}
