package tc

import "go.bpfkit.dev/asm"

// CsumFlags holds the checksum-fixup helpers' flag bits: FlagPseudoHdr
// (BPF_F_PSEUDO_HDR) marks a pseudo-header (L4) update, and
// FlagMarkMangledZero is BPF_F_MARK_MANGLED_0. No field-width flag
// constants are defined here.
type CsumFlags int64

const (
	FlagPseudoHdr       CsumFlags = 1 << 4
	FlagMarkMangledZero CsumFlags = 1 << 5
)

// L3CsumReplace builds `bpf_l3_csum_replace(skb, offset, from, to, size)`,
// fixing up an IP-header checksum after an in-place field rewrite.
func L3CsumReplace(ctxReg asm.Register, offset, from, to, size int32) asm.Item {
	return asm.Seq(
		asm.Instr(asm.Mov64Reg(asm.R1, ctxReg)),
		asm.Instr(asm.Mov64Imm(asm.R2, offset)),
		asm.Instr(asm.Mov64Imm(asm.R3, from)),
		asm.Instr(asm.Mov64Imm(asm.R4, to)),
		asm.Instr(asm.Mov64Imm(asm.R5, size)),
		asm.Instr(asm.Call(asm.FuncL3CsumReplace)),
	)
}

// L4CsumReplace builds `bpf_l4_csum_replace(skb, offset, from, to, flags)`,
// fixing up a TCP/UDP checksum after an in-place field rewrite. flags
// should include FlagPseudoHdr when the rewritten field is part of the
// pseudo-header (addresses, not ports).
func L4CsumReplace(ctxReg asm.Register, offset, from, to int32, flags CsumFlags) asm.Item {
	return asm.Seq(
		asm.Instr(asm.Mov64Reg(asm.R1, ctxReg)),
		asm.Instr(asm.Mov64Imm(asm.R2, offset)),
		asm.Instr(asm.Mov64Imm(asm.R3, from)),
		asm.Instr(asm.Mov64Imm(asm.R4, to)),
		asm.Instr(asm.Mov64Imm(asm.R5, int32(flags))),
		asm.Instr(asm.Call(asm.FuncL4CsumReplace)),
	)
}
