package insts

import (
	"fmt"
	"strconv"
	"strings"
)

// Diagnostic describes a non-fatal problem found while parsing a line.
// The parser never stops on one; it coerces the line to NOP and
// continues, the same tolerance spec.md §7 asks of the rest of the
// engine.
type Diagnostic struct {
	Line    int
	Message string
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("line %d: %s", d.Line, d.Message)
}

// ParseLine decodes one `OPCODE,ARG1[,ARG2[,ARG3[,ARG4]]]` line; the
// opcode may also be separated from ARG1 by whitespace instead of a
// comma ("MOVC R1,#5" parses the same as "MOVC,R1,#5"). lineNo
// is 1-based and only used to annotate diagnostics. An unknown opcode
// is coerced to NOP with a diagnostic rather than returned as an error,
// per spec.md §6/§7 — the file as a whole is never rejected for one bad
// line.
func ParseLine(line string, lineNo int) (Instruction, []Diagnostic) {
	line = strings.TrimRight(line, "\r\n")
	line = strings.TrimSpace(line)

	var diags []Diagnostic
	if line == "" {
		return Instruction{Op: NOP}, diags
	}

	if i := strings.IndexAny(line, " \t"); i >= 0 && !strings.Contains(line[:i], ",") {
		line = line[:i] + "," + strings.TrimSpace(line[i:])
	}

	fields := strings.Split(line, ",")
	for i := range fields {
		fields[i] = strings.TrimSpace(fields[i])
	}

	op, ok := ParseOp(fields[0])
	if !ok {
		diags = append(diags, Diagnostic{
			Line:    lineNo,
			Message: fmt.Sprintf("unknown opcode %q coerced to NOP", fields[0]),
		})
		return Instruction{Op: NOP}, diags
	}

	format := FormatOf(op)
	args := fields[1:]
	inst := Instruction{Op: op}

	next := 0
	take := func() (string, bool) {
		if next >= len(args) {
			return "", false
		}
		v := args[next]
		next++
		return v, true
	}

	if format.Rd {
		a, ok := take()
		if !ok {
			diags = append(diags, missingOperand(lineNo, op, "rd"))
			return Instruction{Op: NOP}, diags
		}
		reg, err := parseRegister(a)
		if err != nil {
			diags = append(diags, badOperand(lineNo, op, "rd", a, err))
			return Instruction{Op: NOP}, diags
		}
		inst.Rd = reg
	}
	if format.Rs1 {
		a, ok := take()
		if !ok {
			diags = append(diags, missingOperand(lineNo, op, "rs1"))
			return Instruction{Op: NOP}, diags
		}
		reg, err := parseRegister(a)
		if err != nil {
			diags = append(diags, badOperand(lineNo, op, "rs1", a, err))
			return Instruction{Op: NOP}, diags
		}
		inst.Rs1 = reg
	}
	if format.Rs2 {
		a, ok := take()
		if !ok {
			diags = append(diags, missingOperand(lineNo, op, "rs2"))
			return Instruction{Op: NOP}, diags
		}
		reg, err := parseRegister(a)
		if err != nil {
			diags = append(diags, badOperand(lineNo, op, "rs2", a, err))
			return Instruction{Op: NOP}, diags
		}
		inst.Rs2 = reg
	}
	if format.Imm {
		a, ok := take()
		if !ok {
			diags = append(diags, missingOperand(lineNo, op, "imm"))
			return Instruction{Op: NOP}, diags
		}
		imm, err := parseImmediate(a)
		if err != nil {
			diags = append(diags, badOperand(lineNo, op, "imm", a, err))
			return Instruction{Op: NOP}, diags
		}
		inst.Imm = imm
	}

	return inst, diags
}

// parseRegister accepts "R" followed by a decimal index, e.g. "R12".
func parseRegister(tok string) (int, error) {
	if len(tok) < 2 || (tok[0] != 'R' && tok[0] != 'r') {
		return 0, fmt.Errorf("expected register operand, got %q", tok)
	}
	n, err := strconv.Atoi(tok[1:])
	if err != nil {
		return 0, fmt.Errorf("invalid register index in %q: %w", tok, err)
	}
	return n, nil
}

// parseImmediate accepts "#" followed by a signed decimal, e.g. "#-16".
func parseImmediate(tok string) (int32, error) {
	if len(tok) < 2 || tok[0] != '#' {
		return 0, fmt.Errorf("expected immediate operand, got %q", tok)
	}
	n, err := strconv.ParseInt(tok[1:], 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid immediate in %q: %w", tok, err)
	}
	return int32(n), nil
}

func missingOperand(lineNo int, op Op, field string) Diagnostic {
	return Diagnostic{
		Line:    lineNo,
		Message: fmt.Sprintf("%s missing required %s operand, coerced to NOP", op, field),
	}
}

func badOperand(lineNo int, op Op, field, got string, err error) Diagnostic {
	return Diagnostic{
		Line:    lineNo,
		Message: fmt.Sprintf("%s has invalid %s operand %q (%v), coerced to NOP", op, field, got, err),
	}
}
