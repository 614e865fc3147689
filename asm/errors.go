package asm

import "fmt"

// InvalidRegisterError is returned by any builder given a register outside
// 0..=10.
type InvalidRegisterError struct {
	Register Register
}

func (e *InvalidRegisterError) Error() string {
	return fmt.Sprintf("asm: invalid register r%d: must be in 0..=10", uint8(e.Register))
}

// InvalidSizeError is returned when a memory or atomic builder is asked for
// an access width the kernel doesn't support in that position (e.g. a
// 1-byte or 2-byte atomic).
type InvalidSizeError struct {
	Size Size
}

func (e *InvalidSizeError) Error() string {
	return fmt.Sprintf("asm: invalid access size %#x", uint8(e.Size))
}

// OffsetRangeError is returned when a concrete jump or memory offset doesn't
// fit in the signed 16-bit offset field.
type OffsetRangeError struct {
	Offset int
}

func (e *OffsetRangeError) Error() string {
	return fmt.Sprintf("asm: offset %d out of range for a signed 16-bit field", e.Offset)
}

// ImmediateRangeError is returned when an immediate doesn't fit in the
// instruction's immediate field.
type ImmediateRangeError struct {
	Imm int64
}

func (e *ImmediateRangeError) Error() string {
	return fmt.Sprintf("asm: immediate %d out of range for a signed 32-bit field", e.Imm)
}

// UnknownLabelError is returned by Assemble when a LabelRef names a label
// that was never placed in the instruction stream.
type UnknownLabelError struct {
	Label string
}

func (e *UnknownLabelError) Error() string {
	return fmt.Sprintf("asm: unknown label %q", e.Label)
}

// OffsetOutOfRangeError is returned by Assemble when a resolved jump
// displacement doesn't fit in a signed 16-bit offset.
type OffsetOutOfRangeError struct {
	Label    string
	Resolved int
}

func (e *OffsetOutOfRangeError) Error() string {
	return fmt.Sprintf("asm: jump to %q resolves to out-of-range offset %d", e.Label, e.Resolved)
}

// MisalignedLddwError is returned by Assemble when a label falls inside the
// second slot of a wide-immediate (lddw) instruction, which the BPF ISA
// forbids since such a jump would land mid-instruction.
type MisalignedLddwError struct {
	Label string
}

func (e *MisalignedLddwError) Error() string {
	return fmt.Sprintf("asm: label %q resolves into the second slot of a wide-immediate load", e.Label)
}
