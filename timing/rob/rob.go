// Package rob implements the reorder buffer: a circular FIFO of
// in-flight instructions that retires strictly in dispatch order.
package rob

import "github.com/sarchlab/apexsim/insts"

// Entry is one reorder-buffer record. For ordinary arithmetic/move/load
// instructions, Value/Ready describe the destination result. For a
// BZ/BNZ/JUMP, Ready means the branch has resolved and Value is unused;
// the outcome is kept in the explicit Taken/Target fields, the same
// information the source stores by overloading `rd_valid`/`rd_value`
// but named for what it is.
type Entry struct {
	Op      insts.Op
	PC      int32
	Dest    int // architectural destination register, if any
	DestTag int // physical tag assigned at dispatch, if any
	HasDest bool
	Value   int32
	Ready   bool
	Taken   bool  // meaningful only for BZ/BNZ/JUMP
	Target  int32 // meaningful only for a taken BZ/BNZ/JUMP
}

// ROB is a fixed-capacity circular FIFO. head is the oldest (next to
// commit) entry's index, tail is the next free slot, length is the
// occupancy — the arena+index design spec.md §9 recommends over a
// linked structure.
type ROB struct {
	entries []Entry
	head    int
	tail    int
	length  int
}

// New creates an empty ROB with the given capacity.
func New(capacity int) *ROB {
	return &ROB{entries: make([]Entry, capacity)}
}

// Capacity returns the ROB's fixed size.
func (r *ROB) Capacity() int {
	return len(r.entries)
}

// Len returns the number of in-flight (not yet retired) entries.
func (r *ROB) Len() int {
	return r.length
}

// Full reports whether the ROB has no room for another dispatch.
func (r *ROB) Full() bool {
	return r.length == len(r.entries)
}

// Empty reports whether the ROB has no in-flight entries.
func (r *ROB) Empty() bool {
	return r.length == 0
}

// Dispatch appends e at the tail. The caller must check Full first;
// Dispatch does not itself refuse on overflow since dispatch atomicity
// across ROB/IQ/LSQ is the caller's responsibility (spec.md §4.2 step 3).
// It returns the ROB index assigned to e, used elsewhere as a stable
// back-reference.
func (r *ROB) Dispatch(e Entry) int {
	idx := r.tail
	r.entries[idx] = e
	r.tail = (r.tail + 1) % len(r.entries)
	r.length++
	return idx
}

// HeadIndex returns the index of the oldest in-flight entry. Valid only
// when Empty() is false.
func (r *ROB) HeadIndex() int {
	return r.head
}

// Head returns a pointer to the oldest in-flight entry for in-place
// mutation (writeback sets Value/Ready/Taken on it). Valid only when
// Empty() is false.
func (r *ROB) Head() *Entry {
	return &r.entries[r.head]
}

// At returns a pointer to the entry at ROB index idx, for writeback
// broadcast's "locate the entry with matching program counter" rule
// (spec.md §4.6). idx must be a value previously returned by Dispatch
// for a still-in-flight entry.
func (r *ROB) At(idx int) *Entry {
	return &r.entries[idx]
}

// FindByPC scans the in-flight window for the unique entry carrying pc,
// returning its ROB index and whether one was found. PC is unique among
// in-flight instructions because ROB entries are dispatched in program
// order and retired before being reused (spec.md §9).
func (r *ROB) FindByPC(pc int32) (idx int, ok bool) {
	for i, n := 0, r.length; i < n; i++ {
		at := (r.head + i) % len(r.entries)
		if r.entries[at].PC == pc {
			return at, true
		}
	}
	return 0, false
}

// CommitHead pops the oldest entry, returning it. The caller must check
// that Head().Ready is set and Empty() is false first.
func (r *ROB) CommitHead() Entry {
	e := r.entries[r.head]
	r.head = (r.head + 1) % len(r.entries)
	r.length--
	return e
}

// Snapshot returns every in-flight entry, oldest (head) first. Used by
// the tracer's per-cycle ROB dump; the caller gets copies, not pointers,
// so it cannot mutate live state.
func (r *ROB) Snapshot() []Entry {
	out := make([]Entry, 0, r.length)
	for i, n := 0, r.length; i < n; i++ {
		out = append(out, r.entries[(r.head+i)%len(r.entries)])
	}
	return out
}

// Clear discards every in-flight entry and resets head/tail/length to
// zero, the reset branch-mispredict squash uses (spec.md §4.7, §9).
func (r *ROB) Clear() {
	r.head = 0
	r.tail = 0
	r.length = 0
}
