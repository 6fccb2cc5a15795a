// Package fu implements the four functional-unit pipelines: INT, MUL,
// BRANCH, and MEM. Each is a fixed-latency shift register: a result is
// computed once, at the cycle it is issued, and then carried through
// enough empty stages that it is only observable at the configured
// latency later — the same simplification spec.md §4.5 sanctions
// explicitly for MUL ("the design permits ... a single-stage compute
// held for 3 cycles; observable only at stage 3 output") and which
// applies just as well to INT and BRANCH, since nothing in spec.md
// makes an intermediate stage's partial state observable anywhere.
package fu

import "github.com/sarchlab/apexsim/insts"

// Result is what an FU exit stage presents to writeback broadcast.
// Which fields are meaningful depends on the originating opcode; see
// the comments on each producer in int.go/mul.go/branch.go/mem.go.
type Result struct {
	PC      int32
	Op      insts.Op
	HasDest bool
	DestTag int
	Value   int32

	IsAddress bool
	Addr      int32

	IsBranch      bool
	Taken         bool
	Target        int32
	InvalidTarget bool

	DivByZero bool
}

// Pipeline is a fixed-depth shift register of *Result. Stage 0 is the
// entry stage (Inject's target); the last stage is the exit stage
// (Peek's target). Advance moves every occupied stage one step toward
// the exit and clears the entry, matching spec.md §5 step 9 ("shift FU
// internal pipelines").
type Pipeline struct {
	stages []*Result
}

// NewPipeline creates an empty pipeline with the given depth in cycles.
func NewPipeline(depth uint64) *Pipeline {
	if depth == 0 {
		depth = 1
	}
	return &Pipeline{stages: make([]*Result, depth)}
}

// CanAccept reports whether the entry stage is free. Because Advance
// runs every cycle unconditionally, the entry stage is always empty at
// the start of the next cycle's issue step, so this is never false in
// practice for a pipelined FU — kept as an explicit check rather than
// an assumption, matching the teacher's preference for defensive
// structural-hazard checks over implicit invariants.
func (p *Pipeline) CanAccept() bool {
	return p.stages[0] == nil
}

// Inject places r at the entry stage. The caller must check CanAccept
// first.
func (p *Pipeline) Inject(r *Result) {
	p.stages[0] = r
}

// Peek returns the exit stage's result, or nil if empty. Writeback
// broadcast reads this once per cycle per FU (spec.md §4.6, §5 step 8).
func (p *Pipeline) Peek() *Result {
	return p.stages[len(p.stages)-1]
}

// Advance shifts every stage toward the exit by one and clears the
// entry stage. Spec.md §5 step 9 runs this after writeback broadcast
// has already read the exit stage for the cycle.
func (p *Pipeline) Advance() {
	for i := len(p.stages) - 1; i > 0; i-- {
		p.stages[i] = p.stages[i-1]
	}
	p.stages[0] = nil
}

// Clear empties every stage. Used by branch-mispredict squash to
// discard in-flight FU state along with the IQ/LSQ/ROB.
func (p *Pipeline) Clear() {
	for i := range p.stages {
		p.stages[i] = nil
	}
}
