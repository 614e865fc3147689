package asm

// Target is the destination of a jump instruction: either a concrete,
// already-computed PC-relative offset, or a symbolic label resolved later by
// Assemble. It is the typed stand-in for the design notes' `Offset =
// Concrete(i16) | Ref(Name)`.
type Target struct {
	label  string
	offset int16
	isRef  bool
}

// To targets a label by name; Assemble rewrites the instruction's offset
// field to the label's PC-relative distance.
func To(label string) Target { return Target{label: label, isRef: true} }

// Off targets a concrete, already-known PC-relative offset, measured in
// instruction slots from the slot after the jump.
func Off(offset int16) Target { return Target{offset: offset} }

func (t Target) apply(ins *Instruction) {
	if t.isRef {
		ins.Ref = t.label
	} else {
		ins.Offset = t.offset
	}
}

// Ja builds an unconditional jump (BPF_JMP | BPF_JA).
func Ja(target Target) Instruction {
	ins := Instruction{Op: makeOpCode(ClassJmp, uint8(JmpJA))}
	target.apply(&ins)
	return ins
}

// JumpCond is a comparison jump's test: equal, not-equal, and the six
// ordered comparisons in both unsigned and signed form.
type JumpCond = JumpOp

const (
	JEQ  JumpCond = JmpJEQ
	JNE  JumpCond = JmpJNE
	JGT  JumpCond = JmpJGT
	JGE  JumpCond = JmpJGE
	JLT  JumpCond = JmpJLT
	JLE  JumpCond = JmpJLE
	JSGT JumpCond = JmpJSGT
	JSGE JumpCond = JmpJSGE
	JSLT JumpCond = JmpJSLT
	JSLE JumpCond = JmpJSLE
	JSET JumpCond = JmpJSET
)

// JumpIfImm builds a conditional jump comparing dst against an immediate,
// in the given width class (JMP for 64-bit compares, JMP32 for 32-bit).
func JumpIfImm(width Width, cond JumpCond, dst Register, imm int32, target Target) (Instruction, error) {
	d, err := reg(dst)
	if err != nil {
		return Instruction{}, err
	}
	ins := Instruction{
		Op:  makeOpCode(jumpClass(width), uint8(SrcImm)|uint8(cond)),
		Dst: d,
		Imm: imm,
	}
	target.apply(&ins)
	return ins, nil
}

// JumpIfReg builds a conditional jump comparing dst against src.
func JumpIfReg(width Width, cond JumpCond, dst, src Register, target Target) (Instruction, error) {
	d, err := reg(dst)
	if err != nil {
		return Instruction{}, err
	}
	s, err := reg(src)
	if err != nil {
		return Instruction{}, err
	}
	ins := Instruction{
		Op:  makeOpCode(jumpClass(width), uint8(SrcReg)|uint8(cond)),
		Dst: d,
		Src: s,
	}
	target.apply(&ins)
	return ins, nil
}

func jumpClass(width Width) Class {
	if width == Width64 {
		return ClassJmp
	}
	return ClassJmp32
}

// Named JMP (64-bit compare) wrappers, the form most BPF programs use.
func JEQImm(dst Register, imm int32, target Target) Instruction {
	return mustJumpImm(Width64, JEQ, dst, imm, target)
}
func JNEImm(dst Register, imm int32, target Target) Instruction {
	return mustJumpImm(Width64, JNE, dst, imm, target)
}
func JGTImm(dst Register, imm int32, target Target) Instruction {
	return mustJumpImm(Width64, JGT, dst, imm, target)
}
func JGEImm(dst Register, imm int32, target Target) Instruction {
	return mustJumpImm(Width64, JGE, dst, imm, target)
}
func JLTImm(dst Register, imm int32, target Target) Instruction {
	return mustJumpImm(Width64, JLT, dst, imm, target)
}
func JLEImm(dst Register, imm int32, target Target) Instruction {
	return mustJumpImm(Width64, JLE, dst, imm, target)
}
func JSETImm(dst Register, imm int32, target Target) Instruction {
	return mustJumpImm(Width64, JSET, dst, imm, target)
}

func JEQReg(dst, src Register, target Target) Instruction {
	return mustJumpReg(Width64, JEQ, dst, src, target)
}
func JNEReg(dst, src Register, target Target) Instruction {
	return mustJumpReg(Width64, JNE, dst, src, target)
}
func JGTReg(dst, src Register, target Target) Instruction {
	return mustJumpReg(Width64, JGT, dst, src, target)
}
func JGEReg(dst, src Register, target Target) Instruction {
	return mustJumpReg(Width64, JGE, dst, src, target)
}
func JLTReg(dst, src Register, target Target) Instruction {
	return mustJumpReg(Width64, JLT, dst, src, target)
}
func JLEReg(dst, src Register, target Target) Instruction {
	return mustJumpReg(Width64, JLE, dst, src, target)
}

func mustJumpImm(width Width, cond JumpCond, dst Register, imm int32, target Target) Instruction {
	ins, err := JumpIfImm(width, cond, dst, imm, target)
	if err != nil {
		panic(err)
	}
	return ins
}

func mustJumpReg(width Width, cond JumpCond, dst, src Register, target Target) Instruction {
	ins, err := JumpIfReg(width, cond, dst, src, target)
	if err != nil {
		panic(err)
	}
	return ins
}

// Call invokes the numbered helper function (BPF_JMP | BPF_CALL), with
// arguments expected to already be in r1..=r5 by convention.
func Call(helper Func) Instruction {
	return Instruction{
		Op:  makeOpCode(ClassJmp, uint8(SrcImm)|uint8(JmpCall)),
		Imm: int32(helper),
	}
}

// TailCall invokes the tail-call helper (helper id 12): `tail_call(ctx,
// prog_array, index)`. It never returns to the caller on success.
func TailCall() Instruction {
	return Call(FuncTailCall)
}

// Exit terminates the program, returning the value in r0 to the caller.
func Exit() Instruction {
	return Instruction{Op: makeOpCode(ClassJmp, uint8(SrcImm)|uint8(JmpExit))}
}
