// Package trace prints the machine's per-cycle state and end-of-run
// summary in the display-mode format spec.md §6 describes, grounded on
// `original_source/cpu.c`'s `print_cpu_content`/`print_rob_rename_content`/
// `print_ls_iq_content` and the teacher's own `fmt.Printf`-based report
// in `cmd/m2sim/main.go`.
package trace

import (
	"fmt"
	"io"

	"github.com/sarchlab/apexsim/emu"
	"github.com/sarchlab/apexsim/timing/core"
)

// Tracer writes human-readable machine snapshots to an io.Writer.
type Tracer struct {
	w io.Writer
}

// New creates a Tracer writing to w.
func New(w io.Writer) *Tracer {
	return &Tracer{w: w}
}

// Cycle prints one cycle's front-end latches, IQ, LSQ, ROB, and rename
// table — the per-cycle block the CLI prints after every tick in both
// simulate and display mode.
func (t *Tracer) Cycle(m *core.Machine) {
	fmt.Fprintf(t.w, "\n============ CYCLE %d ============\n", m.Cycle())
	t.printLatches(m)
	t.printIQ(m)
	t.printLSQ(m)
	t.printROB(m)
	t.printRenameTable(m)
}

func (t *Tracer) printLatches(m *core.Machine) {
	fmt.Fprintf(t.w, "PC: %d\n", m.PC())
	if inst, ok := m.FetchLatch(); ok {
		fmt.Fprintf(t.w, "Fetch       : pc(%d) %s\n", inst.PC, inst.Op)
	} else {
		fmt.Fprintf(t.w, "Fetch       : ---> EMPTY\n")
	}
	if inst, ok := m.DecodeLatch(); ok {
		fmt.Fprintf(t.w, "Decode/RF   : pc(%d) %s\n", inst.PC, inst.Op)
	} else {
		fmt.Fprintf(t.w, "Decode/RF   : ---> EMPTY\n")
	}
}

func (t *Tracer) printIQ(m *core.Machine) {
	fmt.Fprintf(t.w, "\n============ STATE OF ISSUE QUEUE ============\n")
	fmt.Fprintf(t.w, "OpCode, PC, Rs1-ready, Rs2-ready, Imm\n")
	for _, e := range m.IQ().Snapshot() {
		fmt.Fprintf(t.w, "%-6s|pc(%d)|R?-%d-%t|R?-%d-%t|#%d\n",
			e.Op, e.PC, e.Src1.Value, e.Src1.Ready, e.Src2.Value, e.Src2.Ready, e.Imm)
	}
}

func (t *Tracer) printLSQ(m *core.Machine) {
	fmt.Fprintf(t.w, "\n============ STATE OF LOAD STORE QUEUE ============\n")
	fmt.Fprintf(t.w, "OpCode, PC, AddrValid, Addr, StoreDataReady\n")
	for _, e := range m.LSQ().Snapshot() {
		fmt.Fprintf(t.w, "%-6s|pc(%d)|addr-valid(%t)|addr(%d)|data-ready(%t)\n",
			e.Op, e.PC, e.AddrValid, e.Addr, e.StoreData.Ready)
	}
}

func (t *Tracer) printROB(m *core.Machine) {
	fmt.Fprintf(t.w, "\n============ STATE OF REORDER BUFFER ============\n")
	fmt.Fprintf(t.w, "OpCode, PC, Ready, Dest\n")
	for _, e := range m.ROB().Snapshot() {
		fmt.Fprintf(t.w, "%-6s|pc(%d)|ready(%t)|R%02d\n", e.Op, e.PC, e.Ready, e.Dest)
	}
}

func (t *Tracer) printRenameTable(m *core.Machine) {
	fmt.Fprintf(t.w, "\n============ STATE OF RENAME TABLE ============\n")
	fmt.Fprintf(t.w, "Tag, Owner\n")
	for tag, reg := range m.RenameTable().Snapshot() {
		if reg < 0 {
			fmt.Fprintf(t.w, "T%02d\t|\tFree\n", tag)
		} else {
			fmt.Fprintf(t.w, "T%02d\t|\tR%02d\n", tag, reg)
		}
	}
}

// Final prints the end-of-run flags, all 32 architectural registers, and
// the first 100 words of data memory — the block the original prints
// once on halt in display mode (`print_cpu_content`'s
// `ENABLE_REG_MEM_STATUS_PRINT` section).
func (t *Tracer) Final(m *core.Machine) {
	flags := m.Flags()
	fmt.Fprintf(t.w, "\n============ STATE OF CPU FLAGS ============\n")
	fmt.Fprintf(t.w, "Zero, Carry, Overflow, Interrupt\n")
	fmt.Fprintf(t.w, "%t\t|\t%t\t|\t%t\t|\t%t\n", flags.Zero, flags.Carry, flags.Overflow, flags.Interrupt)

	fmt.Fprintf(t.w, "\n============ STATE OF ARCHITECTURAL REGISTER FILE ============\n")
	fmt.Fprintf(t.w, "Register, Value\n")
	regs := m.Registers()
	for i := 0; i < emu.RegisterFileSize; i++ {
		fmt.Fprintf(t.w, "R%02d\t|\t%d\n", i, regs.Read(i))
	}

	fmt.Fprintf(t.w, "\n============ STATE OF DATA MEMORY (first 100 words) ============\n")
	fmt.Fprintf(t.w, "Address, Value\n")
	for i, v := range m.Memory().First(100) {
		fmt.Fprintf(t.w, "M%03d\t|\t%d\n", i, v)
	}
	fmt.Fprintf(t.w, "\n")
}
