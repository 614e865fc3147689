package trace

import "go.bpfkit.dev/asm"

// RawTracepointBuilder assembles raw_tracepoint programs. Raw tracepoints
// receive a `struct bpf_raw_tracepoint_args *` in r1, whose single `args[]`
// field is an array of u64 values — the tracepoint's raw argument list,
// unconverted to the named-field format classic tracepoints expose.
type RawTracepointBuilder struct {
	CtxReg asm.Register
}

// NewRawTracepointBuilder returns a RawTracepointBuilder with the
// conventional register assignment (r6 = ctx).
func NewRawTracepointBuilder() *RawTracepointBuilder {
	return &RawTracepointBuilder{CtxReg: asm.R6}
}

// Prologue saves r1 to CtxReg.
func (b *RawTracepointBuilder) Prologue() asm.Item {
	return asm.Instr(asm.Mov64Reg(b.CtxReg, asm.R1))
}

// LoadArg loads the n'th raw argument (bpf_raw_tracepoint_args.args[n])
// into dst.
func (b *RawTracepointBuilder) LoadArg(n int, dst asm.Register) asm.Item {
	return asm.Instr(asm.LoadMemDW(dst, b.CtxReg, int16(n*8)))
}

// Build assembles the full program: prologue, body, and `mov r0, 0; exit`.
func (b *RawTracepointBuilder) Build(name string, body ...asm.Item) (*asm.Program, error) {
	items := []asm.Item{
		b.Prologue(),
		asm.Seq(body...),
		asm.Instr(asm.Mov64Imm(asm.R0, 0)),
		asm.Instr(asm.Exit()),
	}
	return asm.NewProgram(SectionRawTracepoint(name), "GPL", items...)
}
