// Package insts defines the closed instruction set the machine executes
// and the operand-shape table used throughout decode, dispatch, and
// execute to decide which fields of an Instruction are meaningful.
package insts

// Op is the opcode kind. The set is closed: there is no mechanism to
// add an opcode at runtime.
type Op int

const (
	STORE Op = iota
	STR
	LOAD
	LDR
	MOVC
	MOV
	ADD
	ADDL
	SUB
	SUBL
	MUL
	DIV
	AND
	OR
	EXOR
	BZ
	BNZ
	JUMP
	HALT
	NOP
)

// String names the opcode the way the input/trace format spells it.
func (o Op) String() string {
	switch o {
	case STORE:
		return "STORE"
	case STR:
		return "STR"
	case LOAD:
		return "LOAD"
	case LDR:
		return "LDR"
	case MOVC:
		return "MOVC"
	case MOV:
		return "MOV"
	case ADD:
		return "ADD"
	case ADDL:
		return "ADDL"
	case SUB:
		return "SUB"
	case SUBL:
		return "SUBL"
	case MUL:
		return "MUL"
	case DIV:
		return "DIV"
	case AND:
		return "AND"
	case OR:
		return "OR"
	case EXOR:
		return "EXOR"
	case BZ:
		return "BZ"
	case BNZ:
		return "BNZ"
	case JUMP:
		return "JUMP"
	case HALT:
		return "HALT"
	case NOP:
		return "NOP"
	default:
		return "UNKNOWN"
	}
}

// ParseOp maps an opcode mnemonic to its Op. ok is false for anything
// outside the closed set; the caller (insts.ParseLine) is responsible for
// coercing that case to NOP plus a diagnostic per spec.
func ParseOp(mnemonic string) (op Op, ok bool) {
	switch mnemonic {
	case "STORE":
		return STORE, true
	case "STR":
		return STR, true
	case "LOAD":
		return LOAD, true
	case "LDR":
		return LDR, true
	case "MOVC":
		return MOVC, true
	case "MOV":
		return MOV, true
	case "ADD":
		return ADD, true
	case "ADDL":
		return ADDL, true
	case "SUB":
		return SUB, true
	case "SUBL":
		return SUBL, true
	case "MUL":
		return MUL, true
	case "DIV":
		return DIV, true
	case "AND":
		return AND, true
	case "OR":
		return OR, true
	case "EXOR":
		return EXOR, true
	case "BZ":
		return BZ, true
	case "BNZ":
		return BNZ, true
	case "JUMP":
		return JUMP, true
	case "HALT":
		return HALT, true
	case "NOP":
		return NOP, true
	default:
		return NOP, false
	}
}

// Format classifies the operand shape an opcode expects, per spec.md
// §4.2's table. Decode consults this instead of switching on Op
// everywhere an operand is read.
//
// Rd/Rs1/Rs2/Imm report which operand positions an opcode carries, in
// the order ARG1(=rd if present)/ARG2(=rs1 or rd-less rs1)/ARG3/ARG4 a
// line is parsed in. Rd is not always a destination: the original
// field is reused as a source for STORE/STR (the store-data register),
// which DestIsRd distinguishes — false means "rd is read, not written".
type Format struct {
	Rd       bool
	Rs1      bool
	Rs2      bool
	Imm      bool
	DestIsRd bool
	FUClass  FUClass
}

// FUClass names which functional unit pipeline an opcode issues to from
// the IQ. STORE/STR/LOAD/LDR carry FUInt: the INT pipeline computes
// their effective address (spec.md §4.5); the actual memory access is a
// separate LSQ-to-MEM path the IQ selection rule never touches (it only
// arbitrates INT/MUL/BRANCH, spec.md §4.3).
type FUClass int

const (
	FUInt FUClass = iota
	FUMul
	FUBranch
	FUNone // HALT/NOP: never issued to an FU
)

// FormatOf returns the fixed operand shape for an opcode.
func FormatOf(op Op) Format {
	switch op {
	case STORE:
		// rd is the store-data register here, not a destination.
		return Format{Rd: true, Rs1: true, Imm: true, FUClass: FUInt}
	case STR:
		return Format{Rd: true, Rs1: true, Rs2: true, FUClass: FUInt}
	case LOAD:
		return Format{Rd: true, Rs1: true, Imm: true, DestIsRd: true, FUClass: FUInt}
	case LDR:
		return Format{Rd: true, Rs1: true, Rs2: true, DestIsRd: true, FUClass: FUInt}
	case MOVC:
		return Format{Rd: true, Imm: true, DestIsRd: true, FUClass: FUInt}
	case MOV:
		return Format{Rd: true, Rs1: true, DestIsRd: true, FUClass: FUInt}
	case ADD, SUB, AND, OR, EXOR:
		return Format{Rd: true, Rs1: true, Rs2: true, DestIsRd: true, FUClass: FUInt}
	case ADDL, SUBL:
		return Format{Rd: true, Rs1: true, Imm: true, DestIsRd: true, FUClass: FUInt}
	case MUL:
		return Format{Rd: true, Rs1: true, Rs2: true, DestIsRd: true, FUClass: FUMul}
	case DIV:
		return Format{Rd: true, Rs1: true, Rs2: true, DestIsRd: true, FUClass: FUInt}
	case BZ, BNZ:
		return Format{Imm: true, FUClass: FUBranch}
	case JUMP:
		return Format{Rs1: true, Imm: true, FUClass: FUBranch}
	case HALT, NOP:
		return Format{FUClass: FUNone}
	default:
		return Format{FUClass: FUNone}
	}
}

// IsMem reports whether op is a memory-accessing opcode (needs an LSQ
// entry at dispatch).
func (o Op) IsMem() bool {
	switch o {
	case STORE, STR, LOAD, LDR:
		return true
	default:
		return false
	}
}

// IsStore reports whether op writes memory rather than reading it.
func (o Op) IsStore() bool {
	return o == STORE || o == STR
}

// IsBranch reports whether op executes on the branch FU.
func (o Op) IsBranch() bool {
	return o == BZ || o == BNZ || o == JUMP
}

// Instruction is a decoded program instruction. Rd/Rs1/Rs2 are
// architectural register indices, meaningful only when the
// corresponding Format field is set; Imm is meaningful only when
// Format.Imm is set.
type Instruction struct {
	Op   Op
	Rd   int
	Rs1  int
	Rs2  int
	Imm  int32
	// PC is the address this instruction was fetched from; filled in
	// by the loader/fetch stage rather than the parser, since the
	// parser only sees an ordered list of lines.
	PC int32
}
