package core

import "testing"

func mustProgram(t *testing.T, code ...*Instruction) *Program {
	p, err := NewProgram(code)
	if err != nil {
		t.Fatalf("unexpected error building program: %v", err)
	}
	return p
}

func mustResolve(t *testing.T, p *Program) {
	if err := p.Resolve(); err != nil {
		t.Fatalf("unexpected resolve error: %v", err)
	}
}

func expectSlot(t *testing.T, p *Program, addr int, mnemonic string, operand int) {
	if addr >= len(p.Code) {
		t.Errorf("no slot at address %d", addr)
		return
	}
	in := p.Code[addr]
	if in.Mnemonic != mnemonic {
		t.Errorf("address %d: expected %s, got %s", addr, mnemonic, in.Mnemonic)
	}
	if !in.Known || in.Operand != operand {
		t.Errorf("address %d: expected operand %d, got %d (known=%t)",
			addr, operand, in.Operand, in.Known)
	}
}

func TestSmallImmediatesUntouched(t *testing.T) {
	p := mustProgram(t,
		NewInstruction("", "ldac", "15"),
		NewInstruction("", "add", ""),
		NewInstruction("", "brb", "0"),
	)
	mustResolve(t, p)

	if len(p.Code) != 3 {
		t.Fatalf("expected no insertions, got %d slots", len(p.Code))
	}
	expectSlot(t, p, 0, "ldac", 15)
	expectSlot(t, p, 1, "add", 0)
	expectSlot(t, p, 2, "brb", 0)
}

func TestOversizeImmediateGetsPrefix(t *testing.T) {
	p := mustProgram(t, NewInstruction("", "ldac", "200"))
	mustResolve(t, p)

	if len(p.Code) != 2 {
		t.Fatalf("expected 1 inserted prefix, got %d slots", len(p.Code))
	}
	expectSlot(t, p, 0, "pfx", 0xc)
	expectSlot(t, p, 1, "ldac", 0x8)
}

func TestForwardBranchDisplacement(t *testing.T) {
	// br at 0 targeting address 2: displacement is 2 - 0 - 1 = 1.
	p := mustProgram(t,
		NewInstruction("", "br", "end"),
		NewInstruction("", "add", ""),
		NewInstruction("end:", "sub", ""),
	)
	mustResolve(t, p)

	if len(p.Code) != 3 {
		t.Fatalf("expected no insertions, got %d slots", len(p.Code))
	}
	expectSlot(t, p, 0, "br", 1)
}

func TestBackwardBranchIsTwosComplement(t *testing.T) {
	// br at 1 targeting address 0: displacement -2. Negative displacements
	// always prefix, carrying the sign bits in the high nibble.
	p := mustProgram(t,
		NewInstruction("top:", "add", ""),
		NewInstruction("", "br", "top"),
	)
	mustResolve(t, p)

	if len(p.Code) != 3 {
		t.Fatalf("expected 1 inserted prefix, got %d slots", len(p.Code))
	}
	// After insertion br sits at 2: displacement 0 - 2 - 1 = -3 = 0xfd.
	expectSlot(t, p, 1, "pfx", 0xf)
	expectSlot(t, p, 2, "br", 0xd)
}

func TestLabelMovesToPrefix(t *testing.T) {
	p := mustProgram(t,
		NewInstruction("", "br", "big"),
		NewInstruction("big:", "ldac", "200"),
	)
	mustResolve(t, p)

	if addr, ok := p.Lookup("big"); !ok || addr != 1 {
		t.Errorf("expected big bound to the prefix at 1, got %d (%t)", addr, ok)
	}
	if p.Code[1].Mnemonic != "pfx" || p.Code[1].Label != "big" {
		t.Errorf("expected labeled pfx at 1, got %+v", p.Code[1])
	}
	if p.Code[2].Label != "" {
		t.Errorf("shifted instruction kept its label")
	}
	// br still reaches the logical line: displacement 1 - 0 - 1 = 0.
	expectSlot(t, p, 0, "br", 0)
}

func TestAuthorPrefixNotDuplicated(t *testing.T) {
	p := mustProgram(t,
		NewInstruction("", "pfx", "0"),
		NewInstruction("", "ldac", "200"),
	)
	mustResolve(t, p)

	if len(p.Code) != 2 {
		t.Fatalf("author pfx was duplicated: %d slots", len(p.Code))
	}
	// The final value pass overwrites the author's operand with the real
	// high nibble.
	expectSlot(t, p, 0, "pfx", 0xc)
	expectSlot(t, p, 1, "ldac", 0x8)
}

func TestInsertionTriggersFurtherInsertion(t *testing.T) {
	// br at 0 reaches its target at displacement 15, just barely in range.
	// The oversized ldac before the target forces a prefix, pushing the
	// displacement to 16 and forcing a prefix for the branch too.
	code := []*Instruction{NewInstruction("", "br", "end")}
	for i := 0; i < 14; i++ {
		code = append(code, NewInstruction("", "add", ""))
	}
	code = append(code,
		NewInstruction("", "ldac", "200"),
		NewInstruction("end:", "sub", ""))

	p := mustProgram(t, code...)
	mustResolve(t, p)

	if len(p.Code) != 19 {
		t.Fatalf("expected 2 inserted prefixes, got %d slots", len(p.Code))
	}
	if addr, ok := p.Lookup("end"); !ok || addr != 18 {
		t.Errorf("expected end at 18, got %d (%t)", addr, ok)
	}
	// Displacement 18 - 1 - 1 = 16: pfx 1, br 0.
	expectSlot(t, p, 0, "pfx", 1)
	expectSlot(t, p, 1, "br", 0)
	expectSlot(t, p, 16, "pfx", 0xc)
	expectSlot(t, p, 17, "ldac", 0x8)
}

func TestResolveIdempotent(t *testing.T) {
	p := mustProgram(t,
		NewInstruction("loop:", "ldac", "200"),
		NewInstruction("", "br", "loop"),
	)
	mustResolve(t, p)

	size := len(p.Code)
	operands := make([]int, size)
	for i, in := range p.Code {
		operands[i] = in.Operand
	}

	mustResolve(t, p)
	if len(p.Code) != size {
		t.Fatalf("second resolve inserted prefixes: %d -> %d slots", size, len(p.Code))
	}
	for i, in := range p.Code {
		if in.Operand != operands[i] {
			t.Errorf("address %d: operand changed %d -> %d", i, operands[i], in.Operand)
		}
	}
}

func TestDataExemptFromSplitting(t *testing.T) {
	p := mustProgram(t,
		NewInstruction("", "data", "0xff"),
		NewInstruction("", "data", "200"),
	)
	mustResolve(t, p)

	if len(p.Code) != 2 {
		t.Fatalf("data bytes were prefixed: %d slots", len(p.Code))
	}
	expectSlot(t, p, 0, "data", 0xff)
	expectSlot(t, p, 1, "data", 200)
}

func TestDataLabelResolvesAbsolute(t *testing.T) {
	p := mustProgram(t,
		NewInstruction("", "br", ""),
		NewInstruction("tgt:", "add", ""),
		NewInstruction("", "data", "tgt"),
	)
	mustResolve(t, p)

	expectSlot(t, p, 2, "data", 1)
}

func TestUndefinedLabel(t *testing.T) {
	p := mustProgram(t, NewInstruction("", "br", "nowhere"))
	err := p.Resolve()
	if err == nil {
		t.Fatalf("expected UndefinedLabelError")
	}

	undef, ok := err.(*UndefinedLabelError)
	if !ok {
		t.Fatalf("expected *UndefinedLabelError, got %T", err)
	}
	if undef.Label != "nowhere" || undef.Address != 0 {
		t.Errorf("wrong error detail: %+v", undef)
	}
}

func TestUndefinedDataLabel(t *testing.T) {
	p := mustProgram(t, NewInstruction("", "data", "nowhere"))
	if err := p.Resolve(); err == nil {
		t.Fatalf("expected UndefinedLabelError")
	}
}
