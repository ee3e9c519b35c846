package core

import (
	"strconv"
	"strings"
)

// Instruction is a single slot in the program image: one Hex8 instruction,
// or a data byte, or a pfx carrying the high nibble for the slot after it.
// Its address is its index in the image.
type Instruction struct {
	// Label names this address. Empty means unlabeled. A label migrates to a
	// freshly inserted pfx so that it keeps naming the first slot of its
	// logical line.
	Label string

	// Mnemonic is lowercased at construction. It isn't checked against the
	// opcode table until encoding, so the resolver can run over files with
	// typos in unreferenced lines.
	Mnemonic string

	// OperandRaw is the original operand text, kept for label lookups.
	OperandRaw string

	// Operand is the numeric operand. Meaningless while Known is false, which
	// is the case for label references until the resolver computes their
	// displacement.
	Operand int
	Known   bool
}

// NewInstruction builds an instruction record from a source line triple.
// The label's trailing colon is stripped and the mnemonic lowercased.
//
// The operand classifies as exactly one of: a numeric value in any of the
// usual Go literal forms, an implicit zero when the text is empty, or a
// pending label reference for anything else. Malformed numbers aren't an
// error here; they fall through to the label branch and surface later as
// an undefined label.
func NewInstruction(label, mnemonic, operand string) *Instruction {
	in := &Instruction{
		Label:      strings.TrimSuffix(label, ":"),
		Mnemonic:   strings.ToLower(mnemonic),
		OperandRaw: operand,
	}

	if operand == "" {
		in.Known = true
	} else if value, err := strconv.ParseInt(operand, 0, 32); err == nil {
		in.Operand = int(value)
		in.Known = true
	}
	return in
}

// pfx instructions are synthesized by the resolver with a zero operand; the
// final value pass fills in the real high nibble.
func newPrefix() *Instruction {
	return &Instruction{Mnemonic: "pfx", OperandRaw: "0", Known: true}
}
