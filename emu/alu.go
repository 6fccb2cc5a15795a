package emu

// ALUResult bundles an arithmetic result with the flag values it sets.
// Flags fields not relevant to a given operation carry the zero value and
// the caller must only copy the ones the operation says it touches
// (spec.md §4.5).
type ALUResult struct {
	Value    int32
	Zero     bool
	Carry    bool
	Overflow bool
}

// Add computes a+b and the ADD/ADDL flag set: Overflow on signed
// overflow, Zero from the result. Carry is left false — ADD does not
// define Carry in spec.md §4.5.
func Add(a, b int32) ALUResult {
	result := a + b
	overflow := ((a >= 0 && b >= 0) && result < 0) || ((a < 0 && b < 0) && result >= 0)
	return ALUResult{Value: result, Zero: result == 0, Overflow: overflow}
}

// Sub computes a-b (minuend a, subtrahend b) and the SUB/SUBL flag set:
// Carry set when the subtrahend exceeds the minuend (spec.md §4.5's
// literal wording), Zero from the result.
func Sub(a, b int32) ALUResult {
	result := a - b
	return ALUResult{Value: result, Zero: result == 0, Carry: b > a}
}

// Div computes a/b for DIV. A zero divisor yields a result of 0 without
// faulting (spec.md §4.5, §7); the caller is responsible for reporting
// the divide-by-zero diagnostic. Zero is set from the result either way.
func Div(a, b int32) (result ALUResult, divByZero bool) {
	if b == 0 {
		return ALUResult{Value: 0, Zero: true}, true
	}
	v := a / b
	return ALUResult{Value: v, Zero: v == 0}, false
}

// And, Or, Exor implement the bitwise ops. Spec.md §4.5: "do not touch
// flags", so no ALUResult flag fields are meaningful for these; only
// Value is used.
func And(a, b int32) int32  { return a & b }
func Or(a, b int32) int32   { return a | b }
func Exor(a, b int32) int32 { return a ^ b }
