// Package core wires the rename table, ROB, IQ, LSQ, and functional
// units into one machine and drives them through the fixed nine-step
// intra-cycle order spec.md §5 specifies.
package core

import (
	"github.com/sarchlab/apexsim/diag"
	"github.com/sarchlab/apexsim/emu"
	"github.com/sarchlab/apexsim/insts"
	"github.com/sarchlab/apexsim/loader"
	"github.com/sarchlab/apexsim/timing/fu"
	"github.com/sarchlab/apexsim/timing/iqlsq"
	"github.com/sarchlab/apexsim/timing/latency"
	"github.com/sarchlab/apexsim/timing/rename"
	"github.com/sarchlab/apexsim/timing/rob"
)

// Machine owns every structure of the pipeline and the architectural
// state it acts on.
type Machine struct {
	cfg *latency.Config

	regs  *emu.RegFile
	flags *emu.Flags
	mem   *emu.Memory

	renameTable *rename.Table
	rob         *rob.ROB
	iq          *iqlsq.IQ
	lsq         *iqlsq.LSQ

	intUnit    *fu.IntUnit
	mulUnit    *fu.MulUnit
	branchUnit *fu.BranchUnit
	memUnit    *fu.MemUnit

	program *loader.Program
	pc      int32

	fLatch fetchLatch
	dLatch drfLatch

	// fetchHalted is set the cycle HALT is decoded: Fetch produces
	// nothing from that cycle on, so no instruction after HALT is
	// fetched (there is no shadow-slot fetch). Mispredict squash clears
	// it again.
	fetchHalted bool

	// fetchEnded is set once Fetch walks off the end of the program
	// image, the other (non-HALT) reason Fetch stops producing.
	fetchEnded bool

	// halted is set once HALT retires at commit; Run/Tick callers use
	// this to recognize program completion.
	halted bool

	// squashStall, when true, blocks Fetch for exactly one cycle — the
	// one-cycle stall spec.md §4.5/§4.7 both require after a redirect.
	squashStall bool

	// pendingMem holds this cycle's completed MEM access, captured at
	// the execute step and consumed at the writeback step.
	pendingMem *fu.Result

	cycle uint64

	reporter diag.Reporter

	// flagRaceDetected counts cycles where a flag-writing INT/MUL op
	// and a flag-reading BZ/BNZ issued in the same cycle — see
	// DESIGN.md's Open Question decision on flag timing.
	flagRaceDetected uint64
}

// Option configures a Machine at construction time.
type Option func(*Machine)

// WithReporter overrides the default stderr diagnostics reporter.
func WithReporter(r diag.Reporter) Option {
	return func(m *Machine) {
		m.reporter = r
	}
}

// NewMachine builds a Machine from cfg and program, ready to Tick from
// cfg.CodeBase.
func NewMachine(cfg *latency.Config, program *loader.Program, opts ...Option) *Machine {
	m := &Machine{
		cfg:         cfg,
		regs:        &emu.RegFile{},
		flags:       &emu.Flags{},
		mem:         &emu.Memory{},
		renameTable: rename.NewTable(cfg.RenameTableSize),
		rob:         rob.New(cfg.ROBSize),
		iq:          iqlsq.NewIQ(cfg.IQSize),
		lsq:         iqlsq.NewLSQ(cfg.LSQSize),
		intUnit:     fu.NewIntUnit(cfg.IntStages),
		mulUnit:     fu.NewMulUnit(cfg.MulStages),
		branchUnit:  fu.NewBranchUnit(cfg.BranchStages),
		memUnit:     fu.NewMemUnit(cfg.MemStages),
		program:     program,
		pc:          program.CodeBase,
		reporter:    diag.NewStderrReporter(),
	}

	for _, opt := range opts {
		opt(m)
	}

	return m
}

// Halted reports whether HALT has retired.
func (m *Machine) Halted() bool {
	return m.halted
}

// Idle reports whether the machine has nothing left to do: Fetch has
// run out of program and every in-flight structure has drained. Run
// loops use this to stop even on programs that never execute HALT.
func (m *Machine) Idle() bool {
	return m.fetchEnded && !m.fLatch.Valid && !m.dLatch.Valid &&
		m.rob.Empty() && m.lsq.Empty() && m.iq.Len() == 0
}

// Cycle returns the number of Ticks executed so far.
func (m *Machine) Cycle() uint64 {
	return m.cycle
}

// Registers returns the architectural register file for inspection.
func (m *Machine) Registers() *emu.RegFile {
	return m.regs
}

// Flags returns the architectural condition flags for inspection.
func (m *Machine) Flags() *emu.Flags {
	return m.flags
}

// Memory returns the architectural data memory for inspection.
func (m *Machine) Memory() *emu.Memory {
	return m.mem
}

// FlagRaceDetected returns how many cycles a flag-writing arithmetic op
// and a flag-reading conditional branch issued in the same cycle.
func (m *Machine) FlagRaceDetected() uint64 {
	return m.flagRaceDetected
}

// PC returns the program counter Fetch will read from next cycle.
func (m *Machine) PC() int32 {
	return m.pc
}

// FetchLatch returns the instruction currently held between Fetch and
// Decode, and whether the latch is occupied. Used by the per-cycle
// tracer.
func (m *Machine) FetchLatch() (insts.Instruction, bool) {
	return m.fLatch.Inst, m.fLatch.Valid
}

// DecodeLatch returns the instruction currently held between Decode and
// Dispatch, and whether the latch is occupied. Used by the per-cycle
// tracer.
func (m *Machine) DecodeLatch() (insts.Instruction, bool) {
	return m.dLatch.Inst, m.dLatch.Valid
}

// ROB returns the reorder buffer for read-only inspection.
func (m *Machine) ROB() *rob.ROB {
	return m.rob
}

// IQ returns the issue queue for read-only inspection.
func (m *Machine) IQ() *iqlsq.IQ {
	return m.iq
}

// LSQ returns the load/store queue for read-only inspection.
func (m *Machine) LSQ() *iqlsq.LSQ {
	return m.lsq
}

// RenameTable returns the rename table for read-only inspection.
func (m *Machine) RenameTable() *rename.Table {
	return m.renameTable
}

// Tick advances the machine by exactly one cycle, in the fixed order
// spec.md §5 mandates: commit, issue, execute, dispatch, advance the
// F/DRF latch, decode, fetch, writeback broadcast, shift FU pipelines.
func (m *Machine) Tick() {
	if m.halted {
		return
	}

	m.cycle++

	m.commit()
	m.issue()
	m.execute()
	m.dispatch()

	stall := m.squashStall
	m.squashStall = false
	if !stall {
		m.decodeAndAdvance()
		m.fetch()
	}

	m.writeback()

	m.intUnit.Advance()
	m.mulUnit.Advance()
	m.branchUnit.Advance()
	m.iq.Tick()
	m.lsq.Tick()
}

// Run ticks the machine until it halts, runs out of work, or maxCycles
// is reached (0 means unbounded).
func (m *Machine) Run(maxCycles uint64) {
	for !m.halted && !m.Idle() {
		if maxCycles > 0 && m.cycle >= maxCycles {
			return
		}
		m.Tick()
	}
}
