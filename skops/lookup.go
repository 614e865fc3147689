package skops

import "go.bpfkit.dev/asm"

// LookupBuilder assembles a complete SK_LOOKUP program: a prologue saving
// the bpf_sk_lookup context pointer, a caller-supplied body that typically
// looks up a candidate socket and calls SkAssign, and an epilogue returning
// a Verdict.
type LookupBuilder struct {
	CtxReg asm.Register

	DefaultVerdict Verdict
	FailVerdict    Verdict
	FailLabel      string
}

// NewLookupBuilder returns a LookupBuilder with the conventional register
// assignment (r6 = ctx) and a pass-by-default verdict, so an unmatched
// lookup falls through to the kernel's normal listening-socket selection.
func NewLookupBuilder() *LookupBuilder {
	return &LookupBuilder{
		CtxReg:         asm.R6,
		DefaultVerdict: Pass,
		FailVerdict:    Drop,
		FailLabel:      "sk_lookup_fail",
	}
}

// Prologue saves r1 (the *bpf_sk_lookup context pointer) to CtxReg.
func (b *LookupBuilder) Prologue() asm.Item {
	return asm.Instr(asm.Mov64Reg(b.CtxReg, asm.R1))
}

// LoadField loads a 4-byte field of the sk_lookup context, e.g.
// OffsetLocalPort or OffsetProtocol, into dst.
func (b *LookupBuilder) LoadField(dst asm.Register, offset int16) asm.Item {
	return asm.Instr(asm.LoadMemW(dst, b.CtxReg, offset))
}

// LookupTCP builds `bpf_sk_lookup_tcp(ctx, tuple, tuple_size, netns,
// flags)`, searching for a listening TCP socket matching tuple. The
// returned socket pointer, or NULL on no match, ends up in r0.
func LookupTCP(ctxReg, tupleReg asm.Register, tupleSize, netns, flags int32) asm.Item {
	return asm.Seq(
		asm.Instr(asm.Mov64Reg(asm.R1, ctxReg)),
		asm.Instr(asm.Mov64Reg(asm.R2, tupleReg)),
		asm.Instr(asm.Mov64Imm(asm.R3, tupleSize)),
		asm.Instr(asm.Mov64Imm(asm.R4, netns)),
		asm.Instr(asm.Mov64Imm(asm.R5, flags)),
		asm.Instr(asm.Call(asm.FuncSkLookupTCP)),
	)
}

// LookupUDP is LookupTCP's UDP counterpart, calling bpf_sk_lookup_udp.
func LookupUDP(ctxReg, tupleReg asm.Register, tupleSize, netns, flags int32) asm.Item {
	return asm.Seq(
		asm.Instr(asm.Mov64Reg(asm.R1, ctxReg)),
		asm.Instr(asm.Mov64Reg(asm.R2, tupleReg)),
		asm.Instr(asm.Mov64Imm(asm.R3, tupleSize)),
		asm.Instr(asm.Mov64Imm(asm.R4, netns)),
		asm.Instr(asm.Mov64Imm(asm.R5, flags)),
		asm.Instr(asm.Call(asm.FuncSkLookupUDP)),
	)
}

// SkAssign builds `bpf_sk_assign(ctx, sk, flags)`, binding the socket found
// by LookupTCP/LookupUDP to this lookup so the kernel delivers the
// connection there instead of running its normal selection.
func (b *LookupBuilder) SkAssign(skReg asm.Register, flags int32) asm.Item {
	return asm.Seq(
		asm.Instr(asm.Mov64Reg(asm.R1, b.CtxReg)),
		asm.Instr(asm.Mov64Reg(asm.R2, skReg)),
		asm.Instr(asm.Mov64Imm(asm.R3, flags)),
		asm.Instr(asm.Call(asm.FuncSkAssign)),
	)
}

// SkRelease builds `bpf_sk_release(sk)`, dropping the reference a lookup
// helper took on a candidate socket that ended up unused.
func SkRelease(skReg asm.Register) asm.Item {
	return asm.Seq(
		asm.Instr(asm.Mov64Reg(asm.R1, skReg)),
		asm.Instr(asm.Call(asm.FuncSkRelease)),
	)
}

// Build assembles the full program: prologue, body, a pass-path epilogue
// returning DefaultVerdict, and a fail-path epilogue returning FailVerdict.
func (b *LookupBuilder) Build(body ...asm.Item) (*asm.Program, error) {
	const passLabel = "sk_lookup_pass"
	items := []asm.Item{
		b.Prologue(),
		asm.Seq(body...),
		asm.Instr(asm.Ja(asm.To(passLabel))),
		asm.Lbl(b.FailLabel),
		asm.Instr(asm.Mov64Imm(asm.R0, int32(b.FailVerdict))),
		asm.Instr(asm.Exit()),
		asm.Lbl(passLabel),
		asm.Instr(asm.Mov64Imm(asm.R0, int32(b.DefaultVerdict))),
		asm.Instr(asm.Exit()),
	}
	return asm.NewProgram(SectionSkLookup(), "GPL", items...)
}
