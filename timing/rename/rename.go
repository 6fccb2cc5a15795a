// Package rename implements the physical-tag free list and the
// architectural-register-to-tag mapping that rename/dispatch consults.
package rename

// Table is the rename table: a fixed pool of tags, a free list of
// currently-unused ones, and a mapping from architectural register to
// the tag that currently names its latest in-flight definition.
//
// Only the newest mapping for a given register is ever "current" — an
// architectural register renamed twice in a row simply overwrites its
// map entry; the older tag remains live (and owned by its ROB entry)
// until that ROB entry commits and releases it explicitly.
type Table struct {
	size    int
	valid   []bool
	free    []int // tags not currently allocated, LIFO
	current map[int]int // architectural register -> tag
}

// NewTable builds a rename table with size physical tags, all free.
func NewTable(size int) *Table {
	t := &Table{
		size:    size,
		valid:   make([]bool, size),
		current: make(map[int]int),
	}
	for tag := size - 1; tag >= 0; tag-- {
		t.free = append(t.free, tag)
	}
	return t
}

// Lookup returns the tag currently naming architectural register reg,
// and whether one exists. Decode uses this for source-register rename
// (spec.md §4.2 step 1).
func (t *Table) Lookup(reg int) (tag int, ok bool) {
	tag, ok = t.current[reg]
	return tag, ok
}

// Allocate assigns a free tag to reg, replacing any previous mapping.
// It fails if the free list is exhausted — rename-pool exhaustion is a
// structural stall, not an error (spec.md §4.2 step 2, §7).
func (t *Table) Allocate(reg int) (tag int, ok bool) {
	if len(t.free) == 0 {
		return 0, false
	}
	tag = t.free[len(t.free)-1]
	t.free = t.free[:len(t.free)-1]
	t.valid[tag] = true
	t.current[reg] = tag
	return tag, true
}

// Release returns tag to the free pool. It is called at commit of the
// ROB entry that produced tag (spec.md §3's lifecycle table). If the
// rename table's current mapping for reg still points at this exact
// tag, the mapping is cleared too — a later rename of reg would have
// already overwritten it otherwise.
func (t *Table) Release(reg, tag int) {
	if !t.valid[tag] {
		return
	}
	t.valid[tag] = false
	t.free = append(t.free, tag)
	if cur, ok := t.current[reg]; ok && cur == tag {
		delete(t.current, reg)
	}
}

// IsValid reports whether tag currently names a live, not-yet-retired
// definition.
func (t *Table) IsValid(tag int) bool {
	if tag < 0 || tag >= t.size {
		return false
	}
	return t.valid[tag]
}

// FreeCount returns the number of tags available for allocation.
func (t *Table) FreeCount() int {
	return len(t.free)
}

// Size returns the fixed number of physical tags in the table.
func (t *Table) Size() int {
	return t.size
}

// Snapshot returns, for each tag index, the architectural register
// whose current mapping is that tag, or -1 when no current mapping
// names it (a free tag, or a live tag whose register has since been
// renamed again) — the per-row shape the tracer's rename-table dump
// needs (spec.md §6).
func (t *Table) Snapshot() []int {
	owners := make([]int, t.size)
	for i := range owners {
		owners[i] = -1
	}
	for reg, tag := range t.current {
		owners[tag] = reg
	}
	return owners
}

// Clear discards every live mapping and returns all tags to the free
// pool. Used by branch-mispredict squash (spec.md §4.7): the rename
// table has no notion of "in-flight but not yet retired" to preserve
// once the ROB and IQ/LSQ have themselves been drained.
func (t *Table) Clear() {
	t.free = t.free[:0]
	for tag := t.size - 1; tag >= 0; tag-- {
		t.valid[tag] = false
		t.free = append(t.free, tag)
	}
	for reg := range t.current {
		delete(t.current, reg)
	}
}
