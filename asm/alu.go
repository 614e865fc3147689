package asm

// Width selects whether an ALU operation acts on the low 32 bits of a
// register (clearing the upper half) or the full 64 bits.
type Width uint8

const (
	Width32 Width = 0
	Width64 Width = 1
)

func (w Width) class() Class {
	if w == Width64 {
		return ClassAlu64
	}
	return ClassAlu
}

// AluImm builds `dst OP= imm` (width-dependent ALU, immediate operand).
func AluImm(width Width, op ALUOp, dst Register, imm int32) (Instruction, error) {
	d, err := reg(dst)
	if err != nil {
		return Instruction{}, err
	}
	return Instruction{
		Op:  makeOpCode(width.class(), uint8(SrcImm)|uint8(op)),
		Dst: d,
		Imm: imm,
	}, nil
}

// AluReg builds `dst OP= src` (width-dependent ALU, register operand).
func AluReg(width Width, op ALUOp, dst, src Register) (Instruction, error) {
	d, err := reg(dst)
	if err != nil {
		return Instruction{}, err
	}
	s, err := reg(src)
	if err != nil {
		return Instruction{}, err
	}
	return Instruction{
		Op:  makeOpCode(width.class(), uint8(SrcReg)|uint8(op)),
		Dst: d,
		Src: s,
	}, nil
}

// mustAluImm/mustAluReg panic on a bad register, so that the many named
// wrappers below can stay single-expression. A bad register is always a
// programming error (a literal out-of-range constant), never data-dependent,
// so panicking at the call site is preferable to threading an error through
// every one of dozens of one-line wrappers; callers who build registers from
// untrusted input should use AluImm/AluReg directly.
func mustAluImm(width Width, op ALUOp, dst Register, imm int32) Instruction {
	ins, err := AluImm(width, op, dst, imm)
	if err != nil {
		panic(err)
	}
	return ins
}

func mustAluReg(width Width, op ALUOp, dst, src Register) Instruction {
	ins, err := AluReg(width, op, dst, src)
	if err != nil {
		panic(err)
	}
	return ins
}

// 64-bit ALU, immediate operand.
func Add64Imm(dst Register, imm int32) Instruction  { return mustAluImm(Width64, AluAdd, dst, imm) }
func Sub64Imm(dst Register, imm int32) Instruction  { return mustAluImm(Width64, AluSub, dst, imm) }
func Mul64Imm(dst Register, imm int32) Instruction  { return mustAluImm(Width64, AluMul, dst, imm) }
func Div64Imm(dst Register, imm int32) Instruction  { return mustAluImm(Width64, AluDiv, dst, imm) }
func Mod64Imm(dst Register, imm int32) Instruction  { return mustAluImm(Width64, AluMod, dst, imm) }
func Or64Imm(dst Register, imm int32) Instruction   { return mustAluImm(Width64, AluOr, dst, imm) }
func And64Imm(dst Register, imm int32) Instruction  { return mustAluImm(Width64, AluAnd, dst, imm) }
func Xor64Imm(dst Register, imm int32) Instruction  { return mustAluImm(Width64, AluXor, dst, imm) }
func Lsh64Imm(dst Register, imm int32) Instruction  { return mustAluImm(Width64, AluLsh, dst, imm) }
func Rsh64Imm(dst Register, imm int32) Instruction  { return mustAluImm(Width64, AluRsh, dst, imm) }
func Arsh64Imm(dst Register, imm int32) Instruction { return mustAluImm(Width64, AluArsh, dst, imm) }
func Mov64Imm(dst Register, imm int32) Instruction  { return mustAluImm(Width64, AluMov, dst, imm) }

// 64-bit ALU, register operand.
func Add64Reg(dst, src Register) Instruction  { return mustAluReg(Width64, AluAdd, dst, src) }
func Sub64Reg(dst, src Register) Instruction  { return mustAluReg(Width64, AluSub, dst, src) }
func Mul64Reg(dst, src Register) Instruction  { return mustAluReg(Width64, AluMul, dst, src) }
func Div64Reg(dst, src Register) Instruction  { return mustAluReg(Width64, AluDiv, dst, src) }
func Mod64Reg(dst, src Register) Instruction  { return mustAluReg(Width64, AluMod, dst, src) }
func Or64Reg(dst, src Register) Instruction   { return mustAluReg(Width64, AluOr, dst, src) }
func And64Reg(dst, src Register) Instruction  { return mustAluReg(Width64, AluAnd, dst, src) }
func Xor64Reg(dst, src Register) Instruction  { return mustAluReg(Width64, AluXor, dst, src) }
func Lsh64Reg(dst, src Register) Instruction  { return mustAluReg(Width64, AluLsh, dst, src) }
func Rsh64Reg(dst, src Register) Instruction  { return mustAluReg(Width64, AluRsh, dst, src) }
func Arsh64Reg(dst, src Register) Instruction { return mustAluReg(Width64, AluArsh, dst, src) }
func Mov64Reg(dst, src Register) Instruction  { return mustAluReg(Width64, AluMov, dst, src) }

// 32-bit ALU, immediate operand. 32-bit ALU ops zero the upper 32 bits of
// dst, per the kernel's ALU32 semantics.
func Add32Imm(dst Register, imm int32) Instruction  { return mustAluImm(Width32, AluAdd, dst, imm) }
func Sub32Imm(dst Register, imm int32) Instruction  { return mustAluImm(Width32, AluSub, dst, imm) }
func Mul32Imm(dst Register, imm int32) Instruction  { return mustAluImm(Width32, AluMul, dst, imm) }
func Div32Imm(dst Register, imm int32) Instruction  { return mustAluImm(Width32, AluDiv, dst, imm) }
func Mod32Imm(dst Register, imm int32) Instruction  { return mustAluImm(Width32, AluMod, dst, imm) }
func Or32Imm(dst Register, imm int32) Instruction   { return mustAluImm(Width32, AluOr, dst, imm) }
func And32Imm(dst Register, imm int32) Instruction  { return mustAluImm(Width32, AluAnd, dst, imm) }
func Xor32Imm(dst Register, imm int32) Instruction  { return mustAluImm(Width32, AluXor, dst, imm) }
func Lsh32Imm(dst Register, imm int32) Instruction  { return mustAluImm(Width32, AluLsh, dst, imm) }
func Rsh32Imm(dst Register, imm int32) Instruction  { return mustAluImm(Width32, AluRsh, dst, imm) }
func Arsh32Imm(dst Register, imm int32) Instruction { return mustAluImm(Width32, AluArsh, dst, imm) }
func Mov32Imm(dst Register, imm int32) Instruction  { return mustAluImm(Width32, AluMov, dst, imm) }

// 32-bit ALU, register operand.
func Add32Reg(dst, src Register) Instruction  { return mustAluReg(Width32, AluAdd, dst, src) }
func Sub32Reg(dst, src Register) Instruction  { return mustAluReg(Width32, AluSub, dst, src) }
func Mul32Reg(dst, src Register) Instruction  { return mustAluReg(Width32, AluMul, dst, src) }
func Div32Reg(dst, src Register) Instruction  { return mustAluReg(Width32, AluDiv, dst, src) }
func Mod32Reg(dst, src Register) Instruction  { return mustAluReg(Width32, AluMod, dst, src) }
func Or32Reg(dst, src Register) Instruction   { return mustAluReg(Width32, AluOr, dst, src) }
func And32Reg(dst, src Register) Instruction  { return mustAluReg(Width32, AluAnd, dst, src) }
func Xor32Reg(dst, src Register) Instruction  { return mustAluReg(Width32, AluXor, dst, src) }
func Lsh32Reg(dst, src Register) Instruction  { return mustAluReg(Width32, AluLsh, dst, src) }
func Rsh32Reg(dst, src Register) Instruction  { return mustAluReg(Width32, AluRsh, dst, src) }
func Arsh32Reg(dst, src Register) Instruction { return mustAluReg(Width32, AluArsh, dst, src) }
func Mov32Reg(dst, src Register) Instruction  { return mustAluReg(Width32, AluMov, dst, src) }

// Neg64/Neg32 negate dst in place; the kernel ignores Src and Imm for this op.
func Neg64(dst Register) Instruction { return mustAluImm(Width64, AluNeg, dst, 0) }
func Neg32(dst Register) Instruction { return mustAluImm(Width32, AluNeg, dst, 0) }

// EndianWidth is the bit width of an endianness-conversion instruction's
// operand: 16, 32, or 64.
type EndianWidth int32

const (
	Endian16 EndianWidth = 16
	Endian32 EndianWidth = 32
	Endian64 EndianWidth = 64
)

// ToLittleEndian converts dst from host byte order to little-endian,
// operating on the low `width` bits.
func ToLittleEndian(dst Register, width EndianWidth) (Instruction, error) {
	d, err := reg(dst)
	if err != nil {
		return Instruction{}, err
	}
	return Instruction{
		Op:  makeOpCode(ClassAlu, uint8(EndToLE)|uint8(AluEnd)),
		Dst: d,
		Imm: int32(width),
	}, nil
}

// ToBigEndian converts dst from host byte order to big-endian, operating on
// the low `width` bits.
func ToBigEndian(dst Register, width EndianWidth) (Instruction, error) {
	d, err := reg(dst)
	if err != nil {
		return Instruction{}, err
	}
	return Instruction{
		Op:  makeOpCode(ClassAlu, uint8(EndToBE)|uint8(AluEnd)),
		Dst: d,
		Imm: int32(width),
	}, nil
}
