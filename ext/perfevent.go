package ext

import "go.bpfkit.dev/asm"

// PerfEventBuilder assembles a perf_event program. Its context,
// bpf_perf_event_data, leads with an embedded architecture-sized pt_regs
// snapshot followed by sample_period and addr — since pt_regs itself
// varies in size by architecture, RegsSize must be supplied by the caller
// rather than hardcoded here.
type PerfEventBuilder struct {
	CtxReg   asm.Register
	RegsSize int16
}

// NewPerfEventBuilder returns a PerfEventBuilder with the conventional
// register assignment (r6 = ctx) for a pt_regs snapshot of the given
// size.
func NewPerfEventBuilder(regsSize int16) *PerfEventBuilder {
	return &PerfEventBuilder{CtxReg: asm.R6, RegsSize: regsSize}
}

// Prologue saves r1 (the *bpf_perf_event_data context pointer) to CtxReg.
func (b *PerfEventBuilder) Prologue() asm.Item {
	return asm.Instr(asm.Mov64Reg(b.CtxReg, asm.R1))
}

// LoadSamplePeriod loads bpf_perf_event_data.sample_period (the first
// 8-byte field after the embedded pt_regs) into dst.
func (b *PerfEventBuilder) LoadSamplePeriod(dst asm.Register) asm.Item {
	return asm.Instr(asm.LoadMemDW(dst, b.CtxReg, b.RegsSize))
}

// LoadAddr loads bpf_perf_event_data.addr (the raw record pointer
// following sample_period) into dst.
func (b *PerfEventBuilder) LoadAddr(dst asm.Register) asm.Item {
	return asm.Instr(asm.LoadMemDW(dst, b.CtxReg, b.RegsSize+8))
}

// Build assembles the full program: prologue, body, and `mov r0, 0;
// exit`.
func (b *PerfEventBuilder) Build(body ...asm.Item) (*asm.Program, error) {
	items := []asm.Item{
		b.Prologue(),
		asm.Seq(body...),
		asm.Instr(asm.Mov64Imm(asm.R0, 0)),
		asm.Instr(asm.Exit()),
	}
	return asm.NewProgram(SectionPerfEvent(), "GPL", items...)
}
