package asm

// Item is a node in the heterogeneous instruction tree builders produce: a
// single instruction, a wide-immediate pair, a label, or a nested sequence.
// Assemble flattens a tree of Items into a linear Instructions stream; Item
// itself never escapes to the wire, only the Instructions that fall out of
// assembly do.
//
// Item mirrors the tagged variant from the design notes (Instr | Wide |
// Label | Seq) as a small closed struct rather than an interface, since the
// four kinds are fixed and the zero value (an empty Seq) is harmless.
type Item struct {
	kind  itemKind
	insns [2]Instruction // insns[0] valid for kindInstr and kindWide; insns[1] only for kindWide
	label string          // valid for kindLabel
	seq   []Item          // valid for kindSeq
}

type itemKind uint8

const (
	kindInstr itemKind = iota
	kindWide
	kindLabel
	kindSeq
)

// Instr wraps a single real instruction.
func Instr(ins Instruction) Item {
	return Item{kind: kindInstr, insns: [2]Instruction{ins}}
}

// WideItem wraps the two adjacent slots of a wide-immediate load. The
// assembler counts it as two instruction slots and refuses to resolve a
// label between them.
func WideItem(lo, hi Instruction) Item {
	return Item{kind: kindWide, insns: [2]Instruction{lo, hi}}
}

// Lbl places a named, zero-width marker in the instruction stream. Jump
// builders reference it by name via LabelRef; Assemble resolves the
// reference to a PC-relative offset and drops the marker from the output.
func Lbl(name string) Item {
	return Item{kind: kindLabel, label: name}
}

// Seq groups a nested sequence of Items, flattened in depth-first order
// during assembly. It lets DSL builders compose a prologue, a caller-supplied
// body, and an epilogue as one Item without copying slices together by hand.
func Seq(items ...Item) Item {
	return Item{kind: kindSeq, seq: items}
}

// flatten walks a tree of Items in depth-first order, appending every
// kindInstr/kindWide/kindLabel leaf it finds to out.
func flatten(items []Item, out []Item) []Item {
	for _, it := range items {
		switch it.kind {
		case kindSeq:
			out = flatten(it.seq, out)
		default:
			out = append(out, it)
		}
	}
	return out
}
