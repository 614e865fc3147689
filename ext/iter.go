package ext

import "go.bpfkit.dev/asm"

// IterVerdict is a BPF iterator program's result: continue advances to
// the next element, stop ends the iteration early.
type IterVerdict int32

const (
	IterContinue IterVerdict = 0
	IterStop     IterVerdict = 1
)

// bpf_iter_meta field offsets: the fixed prefix every iterator context
// carries ahead of its type-specific element data.
const (
	IterMetaOffsetSeqFile = 0
	IterMetaOffsetSeqNum  = 8
	IterMetaOffsetSeen    = 16
)

// IterBuilder assembles a BPF iterator program: a prologue saving the
// context pointer, a caller-supplied body, and a continue/stop epilogue.
type IterBuilder struct {
	CtxReg   asm.Register
	BTFName  string

	DefaultVerdict IterVerdict
}

// NewIterBuilder returns an IterBuilder for the iterator named by
// btfName (the BTF-described type this iterator walks, e.g. "task",
// "bpf_map").
func NewIterBuilder(btfName string) *IterBuilder {
	return &IterBuilder{CtxReg: asm.R6, BTFName: btfName, DefaultVerdict: IterContinue}
}

// Prologue saves r1 (the iterator context pointer) to CtxReg.
func (b *IterBuilder) Prologue() asm.Item {
	return asm.Instr(asm.Mov64Reg(b.CtxReg, asm.R1))
}

// Build assembles the full program: prologue, body, and a `mov r0,
// DefaultVerdict; exit` epilogue.
func (b *IterBuilder) Build(body ...asm.Item) (*asm.Program, error) {
	items := []asm.Item{
		b.Prologue(),
		asm.Seq(body...),
		asm.Instr(asm.Mov64Imm(asm.R0, int32(b.DefaultVerdict))),
		asm.Instr(asm.Exit()),
	}
	return asm.NewProgram(SectionIter(b.BTFName), "GPL", items...)
}
