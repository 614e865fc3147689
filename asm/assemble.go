package asm

// Assemble flattens a tree of Items built with Instr/WideItem/Lbl/Seq into a
// linear Instructions stream, resolving every Ref-tagged jump and
// wide-immediate against the labels placed in the same tree.
//
// The pass structure follows the design notes directly: a position pass
// walks the flattened item list assigning each label the slot index of the
// instruction that follows it, then a resolution pass rewrites every Ref
// field to a PC-relative offset (target slot minus the jump's own slot minus
// one, the convention the kernel verifier expects). A label that never
// appears yields UnknownLabelError; a resolved offset that overflows int16
// yields OffsetOutOfRangeError; a label resolving to the second slot of a
// wide-immediate load — whether that's a jump targeting it or the
// wide-immediate's own Ref — is rejected with MisalignedLddwError rather
// than silently pointing into the middle of an instruction.
func Assemble(items ...Item) (Instructions, error) {
	flat := flatten(items, nil)

	positions := make(map[string]int, len(flat))
	highSlots := make(map[int]bool)
	slot := 0
	for _, it := range flat {
		switch it.kind {
		case kindLabel:
			if _, dup := positions[it.label]; dup {
				return nil, &UnknownLabelError{Label: it.label + " (duplicate definition)"}
			}
			positions[it.label] = slot
		case kindWide:
			// The first slot of a wide-immediate is a legal jump/label
			// target; the second never is.
			highSlots[slot+1] = true
			slot += 2
		case kindInstr:
			slot++
		}
	}

	out := make(Instructions, 0, slot)
	cur := 0
	for _, it := range flat {
		switch it.kind {
		case kindLabel:
			continue
		case kindInstr:
			ins := it.insns[0]
			if ins.Ref != "" {
				resolved, err := resolveOffset(positions, highSlots, ins.Ref, cur)
				if err != nil {
					return nil, err
				}
				ins.Offset = resolved
				ins.Ref = ""
			}
			out = append(out, ins)
			cur++
		case kindWide:
			lo, hi := it.insns[0], it.insns[1]
			if lo.Ref != "" {
				resolved, err := resolveOffset(positions, highSlots, lo.Ref, cur)
				if err != nil {
					return nil, err
				}
				lo.Offset = resolved
				lo.Ref = ""
			}
			out = append(out, lo, hi)
			cur += 2
		}
	}

	return out, nil
}

// resolveOffset turns a label reference at slot `from` into the PC-relative
// displacement the kernel verifier uses: the number of slots to skip after
// the jump itself, so 0 means "fall through to the next instruction". A
// target landing on the second slot of a wide-immediate pair is rejected
// before the arithmetic, since the kernel verifier only recognizes such a
// pair's first slot as a valid destination.
func resolveOffset(positions map[string]int, highSlots map[int]bool, label string, from int) (int16, error) {
	target, ok := positions[label]
	if !ok {
		return 0, &UnknownLabelError{Label: label}
	}
	if highSlots[target] {
		return 0, &MisalignedLddwError{Label: label}
	}
	delta := target - from - 1
	if delta < -32768 || delta > 32767 {
		return 0, &OffsetOutOfRangeError{Label: label, Resolved: delta}
	}
	return int16(delta), nil
}

// Program is an assembled, linked instruction stream paired with the
// license string the kernel's verifier requires at load time and the
// program's declared BPF program type. It is the unit the map-runtime and
// per-attach-type DSL packages hand off to a loader.
type Program struct {
	Insns   Instructions
	License string
	Type    string
}

// NewProgram assembles items and wraps the result as a Program ready to
// load, tagging it with the program type name the attach-type DSL packages
// use for their ELF section naming (e.g. "xdp", "kprobe", "tracepoint").
func NewProgram(progType, license string, items ...Item) (*Program, error) {
	insns, err := Assemble(items...)
	if err != nil {
		return nil, err
	}
	return &Program{Insns: insns, License: license, Type: progType}, nil
}
