package core

// immediate computes the operand value an instruction wants to encode:
// the numeric operand when there is one, otherwise the relative branch
// displacement to its label, target - addr - 1 (relative to the slot after
// the instruction). Displacements move every time a prefix insertion shifts
// addresses, which is why this is recomputed on demand rather than stored.
func (p *Program) immediate(addr int) (int, error) {
	in := p.Code[addr]
	if in.Known {
		return in.Operand, nil
	}
	target, ok := p.labels[in.OperandRaw]
	if !ok {
		return 0, &UndefinedLabelError{Address: addr, Label: in.OperandRaw}
	}
	return target - addr - 1, nil
}

// Resolve drives the prefix fixed point and then freezes operand values.
//
// Any instruction whose immediate has bits above the low nibble needs a pfx
// directly before it carrying the high nibble. Inserting one shifts every
// later address, which can change label displacements and create (or
// enlarge) the need for prefixes elsewhere, so after each single insertion
// the scan restarts from address zero. The image only ever grows and a
// satisfied slot stays satisfied barring further shifts, so the loop
// terminates.
//
// Once a full scan inserts nothing the shape is stable, and a final pass
// splits each immediate: high nibble into the preceding pfx (guaranteed to
// exist by the loop, or author-written), low nibble into the instruction
// itself. Negative displacements carry their sign bits in the high nibble,
// giving two's-complement bytes across the pfx pair.
func (p *Program) Resolve() error {
	for {
		changed, err := p.insertOnePrefix()
		if err != nil {
			return err
		}
		if !changed {
			break
		}
	}

	for addr, in := range p.Code {
		if in.Mnemonic == "data" {
			if err := p.resolveData(addr, in); err != nil {
				return err
			}
			continue
		}
		imm, err := p.immediate(addr)
		if err != nil {
			return err
		}
		if imm&0xf0 != 0 {
			prev := p.Code[addr-1]
			prev.Operand = (imm >> 4) & 0xf
			prev.Known = true
		}
		in.Operand = imm & 0xf
		in.Known = true
	}
	return nil
}

// insertOnePrefix scans for the first instruction that needs a prefix and
// doesn't have one, inserts it, and reports whether anything changed. At
// most one insertion per call keeps downstream displacements from being
// judged against stale addresses.
//
// A pfx already sitting before the instruction counts as satisfying it,
// so author-written prefixes are never duplicated (though the final value
// pass will overwrite their operand if the immediate demands it). data
// bytes are emitted verbatim and never split.
func (p *Program) insertOnePrefix() (bool, error) {
	for addr, in := range p.Code {
		if in.Mnemonic == "data" {
			continue
		}
		imm, err := p.immediate(addr)
		if err != nil {
			return false, err
		}
		if imm&0xf0 == 0 {
			continue
		}
		if addr > 0 && p.Code[addr-1].Mnemonic == "pfx" {
			continue
		}
		return true, p.insertPrefix(addr)
	}
	return false, nil
}

// resolveData fills in a data byte whose operand is a label: it takes the
// label's absolute address, useful for address-table bytes. Data bytes
// never take part in displacement math or nibble splitting.
func (p *Program) resolveData(addr int, in *Instruction) error {
	if in.Known {
		return nil
	}
	target, ok := p.labels[in.OperandRaw]
	if !ok {
		return &UndefinedLabelError{Address: addr, Label: in.OperandRaw}
	}
	in.Operand = target
	in.Known = true
	return nil
}
