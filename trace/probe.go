package trace

import "go.bpfkit.dev/asm"

// ProbeBuilder assembles kprobe/kretprobe/uprobe/uretprobe programs, all of
// which receive a `*pt_regs` in r1 and read function arguments or the
// return value out of it at architecture-dependent offsets.
type ProbeBuilder struct {
	CtxReg asm.Register
	Arch   Arch
}

// NewProbeBuilder returns a ProbeBuilder with the conventional register
// assignment (r6 = ctx) for the given architecture.
func NewProbeBuilder(arch Arch) *ProbeBuilder {
	return &ProbeBuilder{CtxReg: asm.R6, Arch: arch}
}

// Prologue saves r1 (the *pt_regs context pointer) to CtxReg.
func (b *ProbeBuilder) Prologue() asm.Item {
	return asm.Instr(asm.Mov64Reg(b.CtxReg, asm.R1))
}

// LoadArg loads the n'th (0-based) function argument into dst, per the
// builder's architecture.
func (b *ProbeBuilder) LoadArg(n int, dst asm.Register) (asm.Item, error) {
	offset, err := ArgOffset(b.Arch, n)
	if err != nil {
		return asm.Item{}, err
	}
	return asm.Instr(asm.LoadMemDW(dst, b.CtxReg, offset)), nil
}

// LoadReturn loads the probed function's return value into dst. Only
// meaningful on a kretprobe/uretprobe, where the kernel has already run
// the traced function.
func (b *ProbeBuilder) LoadReturn(dst asm.Register) (asm.Item, error) {
	offset, err := ReturnOffset(b.Arch)
	if err != nil {
		return asm.Item{}, err
	}
	return asm.Instr(asm.LoadMemDW(dst, b.CtxReg, offset)), nil
}

// Build assembles the full program: prologue, body, and a `mov r0, 0;
// exit` epilogue — the conventional always-succeed return for kprobe and
// uprobe programs.
func (b *ProbeBuilder) Build(section string, body ...asm.Item) (*asm.Program, error) {
	items := []asm.Item{
		b.Prologue(),
		asm.Seq(body...),
		asm.Instr(asm.Mov64Imm(asm.R0, 0)),
		asm.Instr(asm.Exit()),
	}
	return asm.NewProgram(section, "GPL", items...)
}
