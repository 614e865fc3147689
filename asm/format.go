package asm

import (
	"crypto/sha1"
	"fmt"
	"strings"
)

// Format renders insns as a human-readable disassembly listing, one
// instruction per line, in the vein of `llvm-objdump -d` output: slot
// index, opcode mnemonic, operands. It exists for tests and error messages,
// not as a real disassembler — it is never parsed back into Instructions.
func (insns Instructions) Format() string {
	var b strings.Builder
	for i, ins := range insns {
		fmt.Fprintf(&b, "%4d: %s\n", i, ins.format())
	}
	return b.String()
}

func (ins Instruction) format() string {
	c := class(ins.Op)
	switch {
	case c.isALU():
		return ins.formatALU(c)
	case c.isJump():
		return ins.formatJump(c)
	default:
		return ins.formatLoadStore(c)
	}
}

func (ins Instruction) formatALU(c Class) string {
	width := "32"
	if c == ClassAlu64 {
		width = "64"
	}
	op := opALU(ins.Op)
	if op == AluEnd {
		return fmt.Sprintf("endian%s dst=r%d imm=%d", width, ins.Dst, ins.Imm)
	}
	operand := fmt.Sprintf("r%d", ins.Src)
	if opSource(ins.Op) == SrcImm {
		operand = fmt.Sprintf("%d", ins.Imm)
	}
	return fmt.Sprintf("alu%s %s dst=r%d src=%s", width, aluMnemonic(op), ins.Dst, operand)
}

func (ins Instruction) formatJump(c Class) string {
	op := opJump(ins.Op)
	switch op {
	case JmpCall:
		return fmt.Sprintf("call %s", Func(ins.Imm))
	case JmpExit:
		return "exit"
	case JmpJA:
		return fmt.Sprintf("ja %+d", ins.Offset)
	}
	operand := fmt.Sprintf("r%d", ins.Src)
	if opSource(ins.Op) == SrcImm {
		operand = fmt.Sprintf("%d", ins.Imm)
	}
	return fmt.Sprintf("%s dst=r%d %s off=%+d", jumpMnemonic(op), ins.Dst, operand, ins.Offset)
}

func (ins Instruction) formatLoadStore(c Class) string {
	size := opSize(ins.Op)
	mode := opMode(ins.Op)
	switch {
	case isDWordLoad(ins.Op):
		return fmt.Sprintf("lddw dst=r%d imm=%#x", ins.Dst, uint32(ins.Imm))
	case mode == ModeAtomic:
		return fmt.Sprintf("atomic%d dst=r%d off=%d src=r%d op=%#x", size.bytes()*8, ins.Dst, ins.Offset, ins.Src, ins.Imm)
	case c == ClassLdx:
		return fmt.Sprintf("ldx%s dst=r%d [r%d%+d]", sizeMnemonic(size), ins.Dst, ins.Src, ins.Offset)
	case c == ClassStx:
		return fmt.Sprintf("stx%s [r%d%+d] src=r%d", sizeMnemonic(size), ins.Dst, ins.Offset, ins.Src)
	case c == ClassSt:
		return fmt.Sprintf("st%s [r%d%+d] imm=%d", sizeMnemonic(size), ins.Dst, ins.Offset, ins.Imm)
	default:
		return fmt.Sprintf("ld%s imm=%d", sizeMnemonic(size), ins.Imm)
	}
}

func aluMnemonic(op ALUOp) string {
	switch op {
	case AluAdd:
		return "add"
	case AluSub:
		return "sub"
	case AluMul:
		return "mul"
	case AluDiv:
		return "div"
	case AluOr:
		return "or"
	case AluAnd:
		return "and"
	case AluLsh:
		return "lsh"
	case AluRsh:
		return "rsh"
	case AluNeg:
		return "neg"
	case AluMod:
		return "mod"
	case AluXor:
		return "xor"
	case AluMov:
		return "mov"
	case AluArsh:
		return "arsh"
	default:
		return "alu?"
	}
}

func jumpMnemonic(op JumpOp) string {
	switch op {
	case JmpJEQ:
		return "jeq"
	case JmpJGT:
		return "jgt"
	case JmpJGE:
		return "jge"
	case JmpJSET:
		return "jset"
	case JmpJNE:
		return "jne"
	case JmpJSGT:
		return "jsgt"
	case JmpJSGE:
		return "jsge"
	case JmpJLT:
		return "jlt"
	case JmpJLE:
		return "jle"
	case JmpJSLT:
		return "jslt"
	case JmpJSLE:
		return "jsle"
	default:
		return "j?"
	}
}

func sizeMnemonic(s Size) string {
	switch s {
	case SizeB:
		return "b"
	case SizeH:
		return "h"
	case SizeW:
		return "w"
	case SizeDW:
		return "dw"
	default:
		return "?"
	}
}

// Tag computes a content digest of insns in the same spirit as the kernel's
// bpf_prog_calc_tag: a SHA1 over the marshaled instruction stream, with the
// immediate field of call instructions zeroed first since a relocated
// call's immediate can differ across otherwise-identical loads. It is not
// used by the verifier; it exists as a stable cache/dedup key for callers
// layering a loader on top of this package.
func (insns Instructions) Tag() [20]byte {
	cleaned := make(Instructions, len(insns))
	copy(cleaned, insns)
	for i, ins := range cleaned {
		if class(ins.Op) == ClassJmp && opJump(ins.Op) == JmpCall && opSource(ins.Op) == SrcImm {
			ins.Imm = 0
			cleaned[i] = ins
		}
	}
	return sha1.Sum(cleaned.Marshal())
}
