package core

// Program is the assembler's central mutable state: the ordered instruction
// image plus the label index derived from it. The resolver grows the image
// in place; the index is always rebuilt from scratch after a structural
// change, never patched while scanning.
type Program struct {
	Code   []*Instruction
	labels map[string]int
}

// NewProgram wraps an instruction sequence and builds the initial label
// index. Two records claiming the same label is fatal.
func NewProgram(code []*Instruction) (*Program, error) {
	labels, err := buildIndex(code)
	if err != nil {
		return nil, err
	}
	return &Program{Code: code, labels: labels}, nil
}

// buildIndex maps each label to its address. Pure; the caller swaps the
// result in wholesale.
func buildIndex(code []*Instruction) (map[string]int, error) {
	labels := make(map[string]int)
	for addr, in := range code {
		if in.Label == "" {
			continue
		}
		if first, ok := labels[in.Label]; ok {
			return nil, &DuplicateLabelError{Label: in.Label, First: first, Second: addr}
		}
		labels[in.Label] = addr
	}
	return labels, nil
}

// Lookup gives the address a label is bound to.
func (p *Program) Lookup(label string) (int, bool) {
	addr, ok := p.labels[label]
	return addr, ok
}

// insertPrefix places a zero-valued pfx at addr, shifting everything from
// addr onward up by one. If the instruction being prefixed carried a label,
// the label moves onto the pfx: it must keep naming the first slot of its
// logical line. Every address past the insertion point has changed, so the
// label index is rebuilt before returning.
func (p *Program) insertPrefix(addr int) error {
	pfx := newPrefix()
	p.Code = append(p.Code, nil)
	copy(p.Code[addr+1:], p.Code[addr:])
	p.Code[addr] = pfx

	if shifted := p.Code[addr+1]; shifted.Label != "" {
		pfx.Label = shifted.Label
		shifted.Label = ""
	}

	labels, err := buildIndex(p.Code)
	if err != nil {
		return err
	}
	p.labels = labels
	return nil
}
