// Package loader reads an assembly-listing file into an ordered,
// address-assigned program image ready for Fetch to read from.
package loader

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/sarchlab/apexsim/insts"
)

// Program is the ordered, immutable code image produced by loading a
// file. Addresses run CodeBase, CodeBase+4, CodeBase+8, ... and never
// change after Load returns; spec.md §3 calls this "fixed at load
// time; never mutated."
type Program struct {
	CodeBase     int32
	Instructions []insts.Instruction
	Diagnostics  []insts.Diagnostic
}

// Len returns the number of instructions in the program.
func (p *Program) Len() int {
	return len(p.Instructions)
}

// At returns the instruction whose PC is pc, and whether pc falls
// within the program. Fetch uses this to decide between advancing
// normally and hitting the end-of-code sentinel (spec.md §4.1).
func (p *Program) At(pc int32) (insts.Instruction, bool) {
	idx := (pc - p.CodeBase) / 4
	if pc < p.CodeBase || (pc-p.CodeBase)%4 != 0 || int(idx) >= len(p.Instructions) {
		return insts.Instruction{}, false
	}
	return p.Instructions[idx], true
}

// Load reads path, one instruction per line, and assigns each a
// sequential address starting at codeBase. Unknown opcodes or
// malformed operands do not fail the load: they are coerced to NOP and
// recorded in Program.Diagnostics, mirroring the parser's own
// tolerance (spec.md §6/§7).
func Load(path string, codeBase int32) (*Program, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("loader: opening %s: %w", path, err)
	}
	defer f.Close()

	return loadFrom(f, codeBase)
}

func loadFrom(r io.Reader, codeBase int32) (*Program, error) {
	prog := &Program{CodeBase: codeBase}

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		text := scanner.Text()
		if len(text) == 0 {
			continue
		}

		inst, diags := insts.ParseLine(text, lineNo)
		inst.PC = codeBase + int32(len(prog.Instructions))*4
		prog.Instructions = append(prog.Instructions, inst)
		prog.Diagnostics = append(prog.Diagnostics, diags...)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("loader: reading program: %w", err)
	}

	return prog, nil
}
