package asm

// Atomic builds an atomic read-modify-write instruction
// (BPF_STX | size | BPF_ATOMIC): `*(size *)(dst + offset) OP= src`, with the
// specific operation carried in the immediate field rather than the opcode.
// Only 4- and 8-byte widths are legal.
//
// This is the single canonical home for atomic-instruction construction;
// callers needing a plain (non-atomic) read-modify-write should reach for
// LoadMem/StoreMemReg in mem.go instead, never a second atomic helper.
func Atomic(op AtomicOp, dst Register, offset int16, src Register, bytes int) (Instruction, error) {
	size, err := sizeFor(bytes)
	if err != nil {
		return Instruction{}, err
	}
	if size != SizeW && size != SizeDW {
		return Instruction{}, &InvalidSizeError{Size: size}
	}
	d, err := reg(dst)
	if err != nil {
		return Instruction{}, err
	}
	s, err := reg(src)
	if err != nil {
		return Instruction{}, err
	}
	return Instruction{
		Op:     makeOpCode(ClassStx, uint8(size)|uint8(ModeAtomic)),
		Dst:    d,
		Src:    s,
		Offset: offset,
		Imm:    int32(op),
	}, nil
}

// AtomicFetch is Atomic with the fetch bit set: src is updated in place with
// the pre-modification value, in addition to the memory update.
func AtomicFetch(op AtomicOp, dst Register, offset int16, src Register, bytes int) (Instruction, error) {
	return Atomic(op|atomicFetch, dst, offset, src, bytes)
}

// AtomicAdd64/AtomicAdd32 etc. are the common named forms: `*(dst+off) += src`.
func AtomicAdd64(dst Register, offset int16, src Register) Instruction {
	return mustAtomic(AtomicAdd, dst, offset, src, 8)
}

func AtomicAdd32(dst Register, offset int16, src Register) Instruction {
	return mustAtomic(AtomicAdd, dst, offset, src, 4)
}

func AtomicOr64(dst Register, offset int16, src Register) Instruction {
	return mustAtomic(AtomicOr, dst, offset, src, 8)
}

func AtomicAnd64(dst Register, offset int16, src Register) Instruction {
	return mustAtomic(AtomicAnd, dst, offset, src, 8)
}

func AtomicXor64(dst Register, offset int16, src Register) Instruction {
	return mustAtomic(AtomicXor, dst, offset, src, 8)
}

// AtomicXchg64 atomically swaps src with the value at *(dst+offset),
// returning the previous value in src.
func AtomicXchg64(dst Register, offset int16, src Register) Instruction {
	ins, err := AtomicFetch(AtomicXchg, dst, offset, src, 8)
	if err != nil {
		panic(err)
	}
	return ins
}

// AtomicCmpXchg64 atomically compares *(dst+offset) against R0 and, if
// equal, stores src there; R0 is overwritten with the value observed at
// *(dst+offset) either way, per the kernel's BPF_CMPXCHG semantics.
func AtomicCmpXchg64(dst Register, offset int16, src Register) Instruction {
	ins, err := Atomic(AtomicCmpXchg, dst, offset, src, 8)
	if err != nil {
		panic(err)
	}
	return ins
}

func mustAtomic(op AtomicOp, dst Register, offset int16, src Register, bytes int) Instruction {
	ins, err := Atomic(op, dst, offset, src, bytes)
	if err != nil {
		panic(err)
	}
	return ins
}
