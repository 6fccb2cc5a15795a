package emu

// Flags holds the four single-bit condition flags the machine tracks.
// They are set by the executing functional unit, never re-derived at
// commit (see DESIGN.md's Open Question decision on flag timing).
type Flags struct {
	Zero      bool
	Carry     bool
	Overflow  bool
	Interrupt bool
}

// Clear resets all flags to 0. Branch squash does not call this: spec.md
// only squashes front-end and in-flight structures, flags are left as the
// last executing FU set them.
func (f *Flags) Clear() {
	*f = Flags{}
}
