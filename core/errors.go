package core

import "fmt"

// All assembly errors are fatal for the run: nothing is written once any
// of them surfaces.

// UndefinedLabelError reports an operand naming a label that was never
// defined.
type UndefinedLabelError struct {
	Address int
	Label   string
}

func (e *UndefinedLabelError) Error() string {
	return fmt.Sprintf("undefined label '%s' at address %d", e.Label, e.Address)
}

// DuplicateLabelError reports two records claiming the same label.
type DuplicateLabelError struct {
	Label         string
	First, Second int
}

func (e *DuplicateLabelError) Error() string {
	return fmt.Sprintf("duplicate label '%s' at addresses %d and %d",
		e.Label, e.First, e.Second)
}

// UnknownMnemonicError reports a mnemonic outside the opcode vocabulary,
// caught when the encoder looks up its index.
type UnknownMnemonicError struct {
	Address  int
	Mnemonic string
}

func (e *UnknownMnemonicError) Error() string {
	return fmt.Sprintf("unknown mnemonic '%s' at address %d", e.Mnemonic, e.Address)
}

// MalformedLineError wraps a parse failure; the underlying parser error
// already carries the file, line and column.
type MalformedLineError struct {
	Err error
}

func (e *MalformedLineError) Error() string {
	return fmt.Sprintf("malformed line: %v", e.Err)
}

func (e *MalformedLineError) Unwrap() error { return e.Err }
