package xdp

import "go.bpfkit.dev/asm"

// Builder assembles a complete XDP program: a prologue that saves the
// context pointer and loads data/data_end, a caller-supplied body, and an
// epilogue that loads a verdict into r0 and exits. It is the typed
// replacement for a macro that wraps a body with boilerplate: every field
// is a plain struct member a caller can override before calling Build.
type Builder struct {
	// CtxReg holds the context pointer (*xdp_md) after the prologue.
	CtxReg asm.Register
	// DataReg and DataEndReg hold the packet's data/data_end pointers
	// after the prologue, loaded from the context at OffsetData and
	// OffsetDataEnd.
	DataReg, DataEndReg asm.Register

	// DefaultAction is the verdict the epilogue returns when the body
	// falls through without jumping to FailLabel.
	DefaultAction Action
	// FailAction is the verdict returned when the body jumps to
	// FailLabel, typically after a failed BoundsCheck.
	FailAction Action
	// FailLabel names the label BoundsCheck jumps to on failure.
	FailLabel string

	// Name is the program's name, used to compute its ELF section via
	// Section; empty selects the bare "xdp" section.
	Name string
}

// NewBuilder returns a Builder with the conventional register assignment
// (r6 = ctx, r7 = data, r8 = data_end), a pass-by-default verdict, and
// drop-on-bounds-failure.
func NewBuilder(name string) *Builder {
	return &Builder{
		CtxReg:        asm.R6,
		DataReg:       asm.R7,
		DataEndReg:    asm.R8,
		DefaultAction: Pass,
		FailAction:    Drop,
		FailLabel:     "xdp_fail",
		Name:          name,
	}
}

// Prologue returns the conventional entry sequence: save r1 (the context
// pointer the kernel hands every XDP program) to CtxReg, then load data
// and data_end from it.
func (b *Builder) Prologue() asm.Item {
	return asm.Seq(
		asm.Instr(asm.Mov64Reg(b.CtxReg, asm.R1)),
		asm.Instr(asm.LoadMemW(b.DataReg, b.CtxReg, OffsetData)),
		asm.Instr(asm.LoadMemW(b.DataEndReg, b.CtxReg, OffsetDataEnd)),
	)
}

// BoundsCheck returns the canonical three-instruction template the
// verifier requires before dereferencing ptrReg for n bytes: `scratch :=
// ptrReg + n; if scratch > DataEndReg goto FailLabel`. A single register
// holding ptrReg+n compared once against data_end is the exact shape the
// verifier's bounds-tracking recognizes; splitting it across more
// registers or reusing a stale comparison does not verify.
func (b *Builder) BoundsCheck(scratch, ptrReg asm.Register, n int32) asm.Item {
	return asm.Seq(
		asm.Instr(asm.Mov64Reg(scratch, ptrReg)),
		asm.Instr(asm.Add64Imm(scratch, n)),
		asm.Instr(asm.JGTReg(scratch, b.DataEndReg, asm.To(b.FailLabel))),
	)
}

// Build assembles the full program: prologue, body, a pass-path epilogue
// returning DefaultAction, and a fail-path epilogue (reached only via a
// jump to FailLabel) returning FailAction.
func (b *Builder) Build(body ...asm.Item) (*asm.Program, error) {
	const doneLabel = "xdp_done"
	items := []asm.Item{
		b.Prologue(),
		asm.Seq(body...),
		asm.Instr(asm.Mov64Imm(asm.R0, int32(b.DefaultAction))),
		asm.Instr(asm.Ja(asm.To(doneLabel))),
		asm.Lbl(b.FailLabel),
		asm.Instr(asm.Mov64Imm(asm.R0, int32(b.FailAction))),
		asm.Lbl(doneLabel),
		asm.Instr(asm.Exit()),
	}
	return asm.NewProgram(Section(b.Name), "GPL", items...)
}
