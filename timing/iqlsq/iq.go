// Package iqlsq implements the issue queue and load/store queue: the
// two waiting structures that sit between dispatch and the functional
// units.
package iqlsq

import "github.com/sarchlab/apexsim/insts"

// Operand is a source operand as it sits in a waiting structure: either
// a tag still awaiting broadcast, or a value already captured, tracked
// by Ready.
type Operand struct {
	Tag   int
	Ready bool
	Value int32
}

// IQEntry is one occupied issue-queue slot (spec.md §3).
type IQEntry struct {
	Valid    bool
	Op       insts.Op
	PC       int32
	HasDest  bool
	DestTag  int
	Src1     Operand
	Src2     Operand
	Imm      int32
	// LSQIndex links a memory op's IQ entry (which computes the
	// effective address on the INT pipeline) to its LSQ entry (which
	// waits for that address before issuing to MEM).
	LSQIndex    int
	HasLSQIndex bool
	Residency   int
}

// IQ is the unordered, fixed-capacity issue queue.
type IQ struct {
	entries []IQEntry
}

// NewIQ creates an empty issue queue with the given capacity.
func NewIQ(capacity int) *IQ {
	return &IQ{entries: make([]IQEntry, capacity)}
}

// Capacity returns the IQ's fixed size.
func (q *IQ) Capacity() int {
	return len(q.entries)
}

// Len returns the number of occupied slots.
func (q *IQ) Len() int {
	n := 0
	for i := range q.entries {
		if q.entries[i].Valid {
			n++
		}
	}
	return n
}

// Full reports whether every slot is occupied.
func (q *IQ) Full() bool {
	return q.Len() == len(q.entries)
}

// Dispatch places e into the first free slot, returning its index. The
// caller must check Full first.
func (q *IQ) Dispatch(e IQEntry) int {
	for i := range q.entries {
		if !q.entries[i].Valid {
			e.Valid = true
			q.entries[i] = e
			return i
		}
	}
	panic("iqlsq: Dispatch called on a full IQ")
}

// At returns a pointer to the entry at slot i for in-place mutation
// (writeback wakeup).
func (q *IQ) At(i int) *IQEntry {
	return &q.entries[i]
}

// Free clears slot i, returning it to the pool. Issue calls this once
// an entry has been picked.
func (q *IQ) Free(i int) {
	q.entries[i] = IQEntry{}
}

// Tick advances the residency counter of every occupied entry by one,
// regardless of readiness (spec.md §4.3's age-based tie-break).
func (q *IQ) Tick() {
	for i := range q.entries {
		if q.entries[i].Valid {
			q.entries[i].Residency++
		}
	}
}

// Wakeup broadcasts (tag, value) to every occupied slot whose Src1 or
// Src2 is an outstanding match, marking it ready and copying in value
// (spec.md §4.6 rule 2). It returns nothing: multiple slots may wake on
// the same broadcast since tags are only compared, never consumed here.
func (q *IQ) Wakeup(tag int, value int32) {
	for i := range q.entries {
		e := &q.entries[i]
		if !e.Valid {
			continue
		}
		if !e.Src1.Ready && e.Src1.Tag == tag {
			e.Src1.Ready = true
			e.Src1.Value = value
		}
		if !e.Src2.Ready && e.Src2.Tag == tag {
			e.Src2.Ready = true
			e.Src2.Value = value
		}
	}
}

// readyForSelect reports whether e's sources required by its opcode's
// format are all ready. BZ/BNZ have no data sources and are always
// ready (spec.md §4.3). Only the rs1/rs2 registers format says the
// opcode carries are checked; for STORE/STR that is the base (and
// index), all the INT pipeline needs to compute the address. A store's
// data register is not part of the IQ entry and is not checked here: it
// sits in the LSQ entry's StoreData, and LSQ.HeadRunnable keeps the
// store out of MEM until it is ready.
func readyForSelect(e *IQEntry, format insts.Format) bool {
	if format.Rs1 && !e.Src1.Ready {
		return false
	}
	if format.Rs2 && !e.Src2.Ready {
		return false
	}
	return true
}

// SelectOne scans the IQ oldest-first (largest residency) for the
// highest-residency ready entry whose opcode belongs to class, per
// spec.md §4.3's per-FU-class selection rule. It does not free the
// slot; the caller does that via Free once the pipeline accepts the
// instruction.
func (q *IQ) SelectOne(class insts.FUClass) (idx int, ok bool) {
	best := -1
	bestResidency := -1
	for i := range q.entries {
		e := &q.entries[i]
		if !e.Valid {
			continue
		}
		format := insts.FormatOf(e.Op)
		if format.FUClass != class {
			continue
		}
		if !readyForSelect(e, format) {
			continue
		}
		if e.Residency > bestResidency {
			best = i
			bestResidency = e.Residency
		}
	}
	if best < 0 {
		return 0, false
	}
	return best, true
}

// Snapshot returns every occupied slot's entry, in no particular order.
// Used by the tracer's per-cycle IQ dump.
func (q *IQ) Snapshot() []IQEntry {
	out := make([]IQEntry, 0, len(q.entries))
	for i := range q.entries {
		if q.entries[i].Valid {
			out = append(out, q.entries[i])
		}
	}
	return out
}

// Clear empties every slot. Used by branch-mispredict squash.
func (q *IQ) Clear() {
	for i := range q.entries {
		q.entries[i] = IQEntry{}
	}
}
