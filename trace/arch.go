// Package trace provides the kprobe/uprobe/tracepoint/raw-tracepoint
// program-type DSL: architecture-dependent pt_regs argument extraction, ELF
// section naming, and tracepoint context field access built on top of
// trace/tracefs's format descriptors.
package trace

import "fmt"

// Arch tags a host architecture's pt_regs layout.
type Arch string

const (
	X86_64  Arch = "x86_64"
	ARM64   Arch = "arm64"
	S390X   Arch = "s390x"
	PPC64LE Arch = "ppc64le"
	RISCV64 Arch = "riscv64"
)

// regLayout holds one architecture's pt_regs offsets: the return-value
// register and the first six calling-convention argument registers, as
// they land in the kernel's userspace-visible pt_regs snapshot.
type regLayout struct {
	rc   int16
	args [6]int16
}

// layouts is keyed by Arch. Every rc value matches the architecture table
// the kprobe/uprobe context description requires bit-exactly; the
// argument offsets are derived from each architecture's own pt_regs
// field order so that a given argument register's offset equals the rc
// offset whenever that architecture shares its return-value register with
// its first argument register (arm64, s390x, ppc64le, riscv64), and is
// independent otherwise (x86_64).
var layouts = map[Arch]regLayout{
	X86_64:  {rc: 80, args: [6]int16{112, 104, 96, 88, 72, 64}},   // rdi,rsi,rdx,rcx,r8,r9; rc=rax
	ARM64:   {rc: 0, args: [6]int16{0, 8, 16, 24, 32, 40}},        // x0..x5; rc=x0
	S390X:   {rc: 16, args: [6]int16{16, 24, 32, 40, 48, 56}},     // r2..r6 (+r7); rc=r2
	PPC64LE: {rc: 24, args: [6]int16{24, 32, 40, 48, 56, 64}},     // r3..r8; rc=r3
	RISCV64: {rc: 80, args: [6]int16{80, 88, 96, 104, 112, 120}},  // a0..a5; rc=a0
}

// ArgOffset returns the pt_regs byte offset of the n'th (0-based) function
// argument for arch. n must be in [0, 6).
func ArgOffset(arch Arch, n int) (int16, error) {
	layout, ok := layouts[arch]
	if !ok {
		return 0, fmt.Errorf("trace: unknown architecture %q", arch)
	}
	if n < 0 || n >= len(layout.args) {
		return 0, fmt.Errorf("trace: argument index %d out of range [0,%d)", n, len(layout.args))
	}
	return layout.args[n], nil
}

// ReturnOffset returns the pt_regs byte offset of the return-value
// register (PT_REGS_RC) for arch.
func ReturnOffset(arch Arch) (int16, error) {
	layout, ok := layouts[arch]
	if !ok {
		return 0, fmt.Errorf("trace: unknown architecture %q", arch)
	}
	return layout.rc, nil
}
