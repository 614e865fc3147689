package asm

// Pseudo register values the kernel recognises in the Src field of a
// wide-immediate load, selecting what the two raw 32-bit halves mean.
const (
	PseudoMapFD    Register = 1 // imm is a user-space map fd; rewritten to the kernel fd at load time.
	PseudoMapValue Register = 2 // imm is (fd, offset); rewritten to a direct pointer into the map's value.
)

// LoadImm64 builds the two-slot wide-immediate load that places the 64-bit
// constant v into dst (BPF_LD | BPF_DW | BPF_IMM). The first slot carries the
// low 32 bits, the second the high 32 bits; all other fields of the second
// slot are zero.
func LoadImm64(dst Register, v uint64) (Instruction, Instruction, error) {
	d, err := reg(dst)
	if err != nil {
		return Instruction{}, Instruction{}, err
	}
	lo := Instruction{
		Op:  makeOpCode(ClassLd, uint8(SizeDW)|uint8(ModeImm)),
		Dst: d,
		Imm: int32(uint32(v)),
	}
	hi := Instruction{
		Imm: int32(uint32(v >> 32)),
	}
	return lo, hi, nil
}

// LoadMapFD builds a wide-immediate load of a map's file descriptor into
// dst, tagged with the pseudo-map-fd source so the kernel substitutes the
// live fd at program-load time.
func LoadMapFD(dst Register, fd int32) (Instruction, Instruction, error) {
	lo, hi, err := LoadImm64(dst, uint64(uint32(fd)))
	if err != nil {
		return Instruction{}, Instruction{}, err
	}
	lo.Src = PseudoMapFD
	return lo, hi, nil
}

// LoadMapValue builds a wide-immediate load of a pointer to offset bytes
// into a map's value, tagged with the pseudo-map-value source.
func LoadMapValue(dst Register, fd int32, offset uint32) (Instruction, Instruction, error) {
	lo, hi, err := LoadImm64(dst, uint64(uint32(fd))|uint64(offset)<<32)
	if err != nil {
		return Instruction{}, Instruction{}, err
	}
	lo.Src = PseudoMapValue
	return lo, hi, nil
}

// LddwItem is the usual way to splice a wide-immediate load into an
// instruction tree built with Seq: it wraps LoadImm64 as a single Item worth
// two slots.
func LddwItem(dst Register, v uint64) Item {
	lo, hi, err := LoadImm64(dst, v)
	if err != nil {
		panic(err)
	}
	return WideItem(lo, hi)
}

// MapFDItem splices a pseudo-map-fd wide-immediate load into an instruction
// tree.
func MapFDItem(dst Register, fd int32) Item {
	lo, hi, err := LoadMapFD(dst, fd)
	if err != nil {
		panic(err)
	}
	return WideItem(lo, hi)
}
