package tc

import "go.bpfkit.dev/asm"

// Builder assembles a complete TC classifier/action program: a prologue
// that saves the context pointer and loads data/data_end, a caller-supplied
// body, and an epilogue that loads a verdict into r0 and exits. Mirrors
// xdp.Builder's shape; the two DSLs differ only in context offsets and
// verdict enum.
type Builder struct {
	CtxReg              asm.Register
	DataReg, DataEndReg asm.Register

	DefaultAction Action
	FailAction    Action
	FailLabel     string

	Direction Direction
	Name      string
}

// NewBuilder returns a Builder with the conventional register assignment
// (r6 = ctx, r7 = data, r8 = data_end), an ok-by-default verdict, and
// drop-on-bounds-failure.
func NewBuilder(dir Direction, name string) *Builder {
	return &Builder{
		CtxReg:        asm.R6,
		DataReg:       asm.R7,
		DataEndReg:    asm.R8,
		DefaultAction: Ok,
		FailAction:    Shot,
		FailLabel:     "tc_fail",
		Direction:     dir,
		Name:          name,
	}
}

// Prologue saves r1 (the __sk_buff context pointer) to CtxReg, then loads
// data and data_end from it.
func (b *Builder) Prologue() asm.Item {
	return asm.Seq(
		asm.Instr(asm.Mov64Reg(b.CtxReg, asm.R1)),
		asm.Instr(asm.LoadMemW(b.DataReg, b.CtxReg, OffsetData)),
		asm.Instr(asm.LoadMemW(b.DataEndReg, b.CtxReg, OffsetDataEnd)),
	)
}

// BoundsCheck is the same verifier-recognized template xdp.Builder uses:
// `scratch := ptrReg + n; if scratch > DataEndReg goto FailLabel`.
func (b *Builder) BoundsCheck(scratch, ptrReg asm.Register, n int32) asm.Item {
	return asm.Seq(
		asm.Instr(asm.Mov64Reg(scratch, ptrReg)),
		asm.Instr(asm.Add64Imm(scratch, n)),
		asm.Instr(asm.JGTReg(scratch, b.DataEndReg, asm.To(b.FailLabel))),
	)
}

// Build assembles the full program: prologue, body, a pass-path epilogue
// returning DefaultAction, and a fail-path epilogue returning FailAction.
func (b *Builder) Build(body ...asm.Item) (*asm.Program, error) {
	const doneLabel = "tc_done"
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
	return asm.NewProgram(Section(b.Direction, b.Name), "GPL", items...)
}
