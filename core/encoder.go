package core

import (
	"bufio"
	"fmt"
	"io"
)

// Opcodes is the fixed Hex8 vocabulary; a mnemonic's index is its 4-bit
// encoding (ldam = 0 ... pfx = 15). data is not here: it's a pseudo-op
// emitted as a raw byte.
var Opcodes = []string{
	"ldam", "ldbm", "stam", "ldac", "ldbc", "ldap", "ldai", "ldbi",
	"stai", "br", "brz", "brn", "brb", "add", "sub", "pfx",
}

var opcodeIndex = buildOpcodeIndex()

func buildOpcodeIndex() map[string]int {
	m := make(map[string]int, len(Opcodes))
	for i, op := range Opcodes {
		m[op] = i
	}
	return m
}

// WriteHex serializes a fully resolved image as hex text: one byte per
// slot, bytesPerLine to a line separated by single spaces, trailing
// newline. A data slot emits its byte as two hex digits; everything else
// emits an opcode nibble and an operand nibble. This is the pipeline's
// only I/O point and runs only after Resolve has frozen the image.
func (p *Program) WriteHex(w io.Writer, bytesPerLine int) error {
	bw := bufio.NewWriter(w)
	count := 0
	for addr, in := range p.Code {
		count++
		if count > bytesPerLine {
			fmt.Fprint(bw, "\n")
			count = 1
		} else if count > 1 {
			fmt.Fprint(bw, " ")
		}

		if in.Mnemonic == "data" {
			fmt.Fprintf(bw, "%02x", in.Operand&0xff)
			continue
		}
		opcode, ok := opcodeIndex[in.Mnemonic]
		if !ok {
			return &UnknownMnemonicError{Address: addr, Mnemonic: in.Mnemonic}
		}
		fmt.Fprintf(bw, "%x%x", opcode, in.Operand&0xf)
	}
	fmt.Fprint(bw, "\n")
	return bw.Flush()
}
