package tc

import "go.bpfkit.dev/asm"

// RedirectIfindex builds `return bpf_redirect(ifindex, flags)`. The helper's own
// return value is left in r0, but the program still has to exit with it:
// Builder.Build's epilogue overwrites r0 with DefaultAction, so a body that
// wants the helper's return value as the final verdict has to exit right
// after the call itself.
func RedirectIfindex(ifindex, flags int32) asm.Item {
	return asm.Seq(
		asm.Instr(asm.Mov64Imm(asm.R1, ifindex)),
		asm.Instr(asm.Mov64Imm(asm.R2, flags)),
		asm.Instr(asm.Call(asm.FuncRedirect)),
	)
}

// SetMark stores a new value into __sk_buff.mark.
func SetMark(ctxReg, valueReg asm.Register) asm.Item {
	return asm.Instr(asm.StoreMemRegW(ctxReg, OffsetMark, valueReg))
}

// SetPriority stores a new value into __sk_buff.priority.
func SetPriority(ctxReg, valueReg asm.Register) asm.Item {
	return asm.Instr(asm.StoreMemRegW(ctxReg, OffsetPriority, valueReg))
}
