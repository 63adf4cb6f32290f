// Package isa describes the fixed instruction set of the assembler's
// target machine: mnemonic -> operand kinds, used to size instructions
// in the first pass and encode them in the second.
//
// Word count follows a fixed convention: one word for
// the opcode cell, plus one additional word per non-register operand;
// two register operands share a single extra word.
package isa

import "github.com/rncernic/asm24/internal/diag"

// OperandKind classifies one operand slot of an instruction.
type OperandKind int

const (
	// Register is a `@rN` operand; packs into the shared register word.
	Register OperandKind = iota
	// Immediate is a `#N` operand; consumes its own extra word.
	Immediate
	// Direct is a bare symbol operand; consumes its own extra word and
	// may resolve to a code, data, or extern symbol.
	Direct
	// Relative is a `&symbol` operand; consumes its own extra word and
	// resolves through the symbol table the same way as Direct: the word
	// holds the symbol's value, not an offset from the instruction.
	Relative
)

// Info describes one mnemonic.
type Info struct {
	Opcode   int
	Operands []OperandKind
}

// Set is the fixed mapping from mnemonic to Info.
var Set = map[string]Info{
	"mov": {Opcode: 0, Operands: []OperandKind{Register, Register}},
	"cmp": {Opcode: 1, Operands: []OperandKind{Register, Register}},
	"add": {Opcode: 2, Operands: []OperandKind{Register, Register}},
	"sub": {Opcode: 3, Operands: []OperandKind{Register, Register}},
	"lea": {Opcode: 4, Operands: []OperandKind{Direct, Register}},
	"clr": {Opcode: 5, Operands: []OperandKind{Register}},
	"not": {Opcode: 6, Operands: []OperandKind{Register}},
	"inc": {Opcode: 7, Operands: []OperandKind{Register}},
	"dec": {Opcode: 8, Operands: []OperandKind{Register}},
	"jmp": {Opcode: 9, Operands: []OperandKind{Relative}},
	"bne": {Opcode: 10, Operands: []OperandKind{Relative}},
	"jsr": {Opcode: 11, Operands: []OperandKind{Relative}},
	"red": {Opcode: 12, Operands: []OperandKind{Register}},
	"prn": {Opcode: 13, Operands: []OperandKind{Immediate}},
	"rts": {Opcode: 14, Operands: nil},
	"stop": {Opcode: 15, Operands: nil},
}

// Lookup returns an instruction's Info, or a diag.Instruction error if
// the mnemonic is unknown.
func Lookup(mnemonic string) (Info, error) {
	info, ok := Set[mnemonic]
	if !ok {
		return Info{}, diag.New(diag.Instruction, "unknown instruction %q", mnemonic)
	}
	return info, nil
}

// WordCount returns how many MachineWords an instruction occupies: one
// for the opcode, plus one extra word shared by register operands
// (if any), plus one extra word per non-register operand.
func WordCount(info Info) int {
	count := 1

	hasRegister := false
	for _, op := range info.Operands {
		switch op {
		case Register:
			hasRegister = true
		default:
			count++
		}
	}
	if hasRegister {
		count++
	}
	return count
}
