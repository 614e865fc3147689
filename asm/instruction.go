// Package asm provides the symbolic BPF instruction encoder and two-pass
// assembler: the typed builders in this package produce Instruction values
// that Assemble flattens, resolves, and serializes into the exact 64-bit
// wire format the kernel verifier consumes.
package asm

import (
	"encoding/binary"
	"fmt"
)

// InstructionSize is the width, in bytes, of one BPF instruction slot.
const InstructionSize = 8

// Instruction is a single BPF instruction slot: opcode, two nibble-packed
// registers, a signed 16-bit offset, and a signed 32-bit immediate, encoded
// exactly as described in the kernel's instruction set reference.
type Instruction struct {
	Op  OpCode
	Dst Register
	Src Register

	// Offset is the instruction's signed 16-bit offset field. For jump
	// instructions built against a label (Ja, JumpIf, ...) this is a
	// placeholder and Ref names the
	// label that supplies the real value; Assemble overwrites Offset and
	// clears Ref as part of resolution.
	Offset int16
	Imm    int32

	// Ref names the label a jump/wide-immediate's Offset should resolve
	// against. Left empty for instructions with a concrete Offset.
	Ref string
}

// Valid reports whether every field of ins is within the ranges the wire
// format allows. Offset and Imm are always representable (int16 and int32
// are already range-limited by their Go type), so Valid only needs to check
// the registers.
func (ins Instruction) Valid() bool {
	return ins.Dst.Valid() && ins.Src.Valid()
}

// Bytes serializes ins to the 8-byte little-endian wire format described in
// the design's data model: opcode, packed registers, offset, immediate.
func (ins Instruction) Bytes() [InstructionSize]byte {
	var b [InstructionSize]byte
	b[0] = byte(ins.Op)
	b[1] = byte(ins.Src<<4) | byte(ins.Dst&0x0f)
	binary.LittleEndian.PutUint16(b[2:4], uint16(ins.Offset))
	binary.LittleEndian.PutUint32(b[4:8], uint32(ins.Imm))
	return b
}

// DecodeInstruction parses one 8-byte slot. It does not attempt to detect or
// consume the second slot of a wide-immediate load; that slot decodes as an
// Instruction of its own.
func DecodeInstruction(b []byte) (Instruction, error) {
	if len(b) < InstructionSize {
		return Instruction{}, fmt.Errorf("asm: short instruction: need %d bytes, got %d", InstructionSize, len(b))
	}

	var ins Instruction
	ins.Op = OpCode(b[0])
	ins.Dst = Register(b[1] & 0x0f)
	ins.Src = Register(b[1] >> 4)
	ins.Offset = int16(binary.LittleEndian.Uint16(b[2:4]))
	ins.Imm = int32(binary.LittleEndian.Uint32(b[4:8]))
	return ins, nil
}

// Instructions is a flat, already-resolved BPF program: the output of
// Assemble, or a sequence decoded from kernel bytecode.
type Instructions []Instruction

// Marshal serializes insns to their contiguous little-endian wire form, with
// no headers, padding, or section framing (§6 "Bytecode output format").
func (insns Instructions) Marshal() []byte {
	out := make([]byte, 0, len(insns)*InstructionSize)
	for _, ins := range insns {
		b := ins.Bytes()
		out = append(out, b[:]...)
	}
	return out
}

// isDWordLoad reports whether op is the first slot of a two-slot
// wide-immediate load (BPF_LD | BPF_DW | BPF_IMM).
func isDWordLoad(op OpCode) bool {
	return class(op) == ClassLd && opSize(op) == SizeDW && opMode(op) == ModeImm
}

// Unmarshal decodes a contiguous kernel bytecode blob into Instructions, one
// per 8-byte slot. Wide-immediate pairs are not merged into a single
// Instruction: they are decoded as two adjacent raw slots, matching
// how Assemble emits them, so round-tripping through Marshal reproduces the
// original bytes.
func Unmarshal(data []byte) (Instructions, error) {
	if len(data)%InstructionSize != 0 {
		return nil, fmt.Errorf("asm: bytecode length %d is not a multiple of %d", len(data), InstructionSize)
	}

	var out Instructions
	for off := 0; off < len(data); off += InstructionSize {
		ins, err := DecodeInstruction(data[off : off+InstructionSize])
		if err != nil {
			return nil, err
		}
		out = append(out, ins)
	}
	return out, nil
}

// WideImmediate reassembles the 64-bit immediate encoded by a pair of
// adjacent lddw slots (lo, hi), as produced by LoadImm64 and friends.
func WideImmediate(lo, hi Instruction) uint64 {
	return uint64(uint32(lo.Imm)) | uint64(uint32(hi.Imm))<<32
}
