package asm

// sizeFor maps a byte count to the instruction's Size bitfield. Only 1, 2,
// 4, and 8 are legal BPF access widths.
func sizeFor(bytes int) (Size, error) {
	switch bytes {
	case 1:
		return SizeB, nil
	case 2:
		return SizeH, nil
	case 4:
		return SizeW, nil
	case 8:
		return SizeDW, nil
	default:
		return 0, &InvalidSizeError{}
	}
}

// LoadMem builds `dst = *(size *)(src + offset)` (BPF_LDX | size | BPF_MEM).
func LoadMem(dst, src Register, offset int16, bytes int) (Instruction, error) {
	size, err := sizeFor(bytes)
	if err != nil {
		return Instruction{}, err
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
		Op:     makeOpCode(ClassLdx, uint8(size)|uint8(ModeMem)),
		Dst:    d,
		Src:    s,
		Offset: offset,
	}, nil
}

// StoreMemReg builds `*(size *)(dst + offset) = src` (BPF_STX | size | BPF_MEM).
func StoreMemReg(dst Register, offset int16, src Register, bytes int) (Instruction, error) {
	size, err := sizeFor(bytes)
	if err != nil {
		return Instruction{}, err
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
		Op:     makeOpCode(ClassStx, uint8(size)|uint8(ModeMem)),
		Dst:    d,
		Src:    s,
		Offset: offset,
	}, nil
}

// StoreMemImm builds `*(size *)(dst + offset) = imm` (BPF_ST | size | BPF_MEM).
func StoreMemImm(dst Register, offset int16, imm int32, bytes int) (Instruction, error) {
	size, err := sizeFor(bytes)
	if err != nil {
		return Instruction{}, err
	}
	d, err := reg(dst)
	if err != nil {
		return Instruction{}, err
	}
	return Instruction{
		Op:     makeOpCode(ClassSt, uint8(size)|uint8(ModeMem)),
		Dst:    d,
		Offset: offset,
		Imm:    imm,
	}, nil
}

// Convenience wrappers for the four memory widths, named the way the kernel
// and most BPF assemblers do (b/h/w/dw for 1/2/4/8 bytes).

func LoadMemB(dst, src Register, offset int16) Instruction {
	ins, err := LoadMem(dst, src, offset, 1)
	if err != nil {
		panic(err)
	}
	return ins
}

func LoadMemH(dst, src Register, offset int16) Instruction {
	ins, err := LoadMem(dst, src, offset, 2)
	if err != nil {
		panic(err)
	}
	return ins
}

func LoadMemW(dst, src Register, offset int16) Instruction {
	ins, err := LoadMem(dst, src, offset, 4)
	if err != nil {
		panic(err)
	}
	return ins
}

func LoadMemDW(dst, src Register, offset int16) Instruction {
	ins, err := LoadMem(dst, src, offset, 8)
	if err != nil {
		panic(err)
	}
	return ins
}

func StoreMemRegB(dst Register, offset int16, src Register) Instruction {
	ins, err := StoreMemReg(dst, offset, src, 1)
	if err != nil {
		panic(err)
	}
	return ins
}

func StoreMemRegH(dst Register, offset int16, src Register) Instruction {
	ins, err := StoreMemReg(dst, offset, src, 2)
	if err != nil {
		panic(err)
	}
	return ins
}

func StoreMemRegW(dst Register, offset int16, src Register) Instruction {
	ins, err := StoreMemReg(dst, offset, src, 4)
	if err != nil {
		panic(err)
	}
	return ins
}

func StoreMemRegDW(dst Register, offset int16, src Register) Instruction {
	ins, err := StoreMemReg(dst, offset, src, 8)
	if err != nil {
		panic(err)
	}
	return ins
}

func StoreMemImmB(dst Register, offset int16, imm int32) Instruction {
	ins, err := StoreMemImm(dst, offset, imm, 1)
	if err != nil {
		panic(err)
	}
	return ins
}

func StoreMemImmH(dst Register, offset int16, imm int32) Instruction {
	ins, err := StoreMemImm(dst, offset, imm, 2)
	if err != nil {
		panic(err)
	}
	return ins
}

func StoreMemImmW(dst Register, offset int16, imm int32) Instruction {
	ins, err := StoreMemImm(dst, offset, imm, 4)
	if err != nil {
		panic(err)
	}
	return ins
}

func StoreMemImmDW(dst Register, offset int16, imm int32) Instruction {
	ins, err := StoreMemImm(dst, offset, imm, 8)
	if err != nil {
		panic(err)
	}
	return ins
}

// LoadAbs and LoadInd are the legacy cBPF-derived packet-load forms
// (BPF_LD | size | BPF_ABS / BPF_IND), retained by the kernel for skb
// context programs. They always read into R0 from a (non-negative) offset
// relative to the start of the packet, or relative to src for the indirect
// form.
func LoadAbs(offset int32, bytes int) (Instruction, error) {
	size, err := sizeFor(bytes)
	if err != nil {
		return Instruction{}, err
	}
	return Instruction{
		Op:  makeOpCode(ClassLd, uint8(size)|uint8(ModeAbs)),
		Imm: offset,
	}, nil
}

func LoadInd(src Register, offset int32, bytes int) (Instruction, error) {
	size, err := sizeFor(bytes)
	if err != nil {
		return Instruction{}, err
	}
	s, err := reg(src)
	if err != nil {
		return Instruction{}, err
	}
	return Instruction{
		Op:  makeOpCode(ClassLd, uint8(size)|uint8(ModeInd)),
		Src: s,
		Imm: offset,
	}, nil
}
