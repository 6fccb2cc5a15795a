package iqlsq

import "github.com/sarchlab/apexsim/insts"

// LSQEntry is one occupied load/store-queue slot (spec.md §3). For a
// load, DestTag names the physical tag the loaded value is eventually
// broadcast to; for a store, StoreData is the operand carrying the
// value to write and DestTag is unused.
type LSQEntry struct {
	Op        insts.Op
	PC        int32
	IsStore   bool
	DestTag   int
	HasDest   bool
	StoreData Operand
	Addr      int32
	AddrValid bool
	Residency int
}

// LSQ is the fixed-capacity, FIFO-ordered load/store queue: a ring
// buffer with the same head/tail/length shape as the ROB, because
// spec.md §4.4 requires strict in-order issue from its head.
type LSQ struct {
	entries []LSQEntry
	head    int
	tail    int
	length  int
}

// NewLSQ creates an empty LSQ with the given capacity.
func NewLSQ(capacity int) *LSQ {
	return &LSQ{entries: make([]LSQEntry, capacity)}
}

// Capacity returns the LSQ's fixed size.
func (l *LSQ) Capacity() int {
	return len(l.entries)
}

// Len returns the number of occupied slots.
func (l *LSQ) Len() int {
	return l.length
}

// Full reports whether the LSQ has no room for another dispatch.
func (l *LSQ) Full() bool {
	return l.length == len(l.entries)
}

// Empty reports whether the LSQ holds no in-flight memory ops.
func (l *LSQ) Empty() bool {
	return l.length == 0
}

// Dispatch appends e at the tail, returning its LSQ index. The caller
// must check Full first.
func (l *LSQ) Dispatch(e LSQEntry) int {
	idx := l.tail
	l.entries[idx] = e
	l.tail = (l.tail + 1) % len(l.entries)
	l.length++
	return idx
}

// At returns a pointer to the entry at LSQ index idx, for writeback
// broadcast's PC-matching update rule (spec.md §4.6 rule 3). idx must
// have been returned by Dispatch for a still-in-flight entry.
func (l *LSQ) At(idx int) *LSQEntry {
	return &l.entries[idx]
}

// FindByPC scans the in-flight window for the entry carrying pc.
func (l *LSQ) FindByPC(pc int32) (idx int, ok bool) {
	for i, n := 0, l.length; i < n; i++ {
		at := (l.head + i) % len(l.entries)
		if l.entries[at].PC == pc {
			return at, true
		}
	}
	return 0, false
}

// HeadRunnable reports whether the head of the LSQ may issue to MEM
// this cycle: a load needs only a valid address, a store additionally
// needs its data ready (spec.md §4.4's selection rule). It returns
// false when the LSQ is empty.
func (l *LSQ) HeadRunnable() bool {
	if l.Empty() {
		return false
	}
	head := &l.entries[l.head]
	if !head.AddrValid {
		return false
	}
	if head.IsStore && !head.StoreData.Ready {
		return false
	}
	return true
}

// WakeupStoreData broadcasts (tag, value) to every occupied store
// entry whose StoreData is still an outstanding match (spec.md §4.6
// rule 3's "store data from any compute" case) — the counterpart to
// IQ.Wakeup for the one LSQ-resident operand a broadcast can target.
func (l *LSQ) WakeupStoreData(tag int, value int32) {
	for i, n := 0, l.length; i < n; i++ {
		at := (l.head + i) % len(l.entries)
		e := &l.entries[at]
		if e.IsStore && !e.StoreData.Ready && e.StoreData.Tag == tag {
			e.StoreData.Ready = true
			e.StoreData.Value = value
		}
	}
}

// IssueHead pops and returns the head entry, freeing its slot. The
// caller must check HeadRunnable first.
func (l *LSQ) IssueHead() LSQEntry {
	e := l.entries[l.head]
	l.head = (l.head + 1) % len(l.entries)
	l.length--
	return e
}

// Tick advances the residency counter of every occupied entry.
func (l *LSQ) Tick() {
	for i, n := 0, l.length; i < n; i++ {
		at := (l.head + i) % len(l.entries)
		l.entries[at].Residency++
	}
}

// Snapshot returns every in-flight entry, oldest (head) first. Used by
// the tracer's per-cycle LSQ dump.
func (l *LSQ) Snapshot() []LSQEntry {
	out := make([]LSQEntry, 0, l.length)
	for i, n := 0, l.length; i < n; i++ {
		out = append(out, l.entries[(l.head+i)%len(l.entries)])
	}
	return out
}

// Clear empties the LSQ and resets head/tail/length to zero. Used by
// branch-mispredict squash.
func (l *LSQ) Clear() {
	l.head = 0
	l.tail = 0
	l.length = 0
}
