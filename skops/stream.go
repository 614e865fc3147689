package skops

import "go.bpfkit.dev/asm"

// RedirectToSockmap builds `return bpf_sk_redirect_map(skb_or_ctx, map,
// key, flags)`, steering an SK_SKB program's packet into the sockmap entry
// at key.
func RedirectToSockmap(ctxReg, mapReg asm.Register, key, flags int32) asm.Item {
	return asm.Seq(
		asm.Instr(asm.Mov64Reg(asm.R1, ctxReg)),
		asm.Instr(asm.Mov64Reg(asm.R2, mapReg)),
		asm.Instr(asm.Mov64Imm(asm.R3, key)),
		asm.Instr(asm.Mov64Imm(asm.R4, flags)),
		asm.Instr(asm.Call(asm.FuncSKRedirectMap)),
	)
}

// RedirectToSockhash is RedirectToSockmap's sockhash counterpart, calling
// bpf_sk_redirect_hash.
func RedirectToSockhash(ctxReg, mapReg asm.Register, key, flags int32) asm.Item {
	return asm.Seq(
		asm.Instr(asm.Mov64Reg(asm.R1, ctxReg)),
		asm.Instr(asm.Mov64Reg(asm.R2, mapReg)),
		asm.Instr(asm.Mov64Imm(asm.R3, key)),
		asm.Instr(asm.Mov64Imm(asm.R4, flags)),
		asm.Instr(asm.Call(asm.FuncSKRedirectHash)),
	)
}

// MsgRedirectToSockmap builds `return bpf_msg_redirect_map(msg, map, key,
// flags)`, steering an SK_MSG program's outbound message into the sockmap
// entry at key.
func MsgRedirectToSockmap(msgReg, mapReg asm.Register, key, flags int32) asm.Item {
	return asm.Seq(
		asm.Instr(asm.Mov64Reg(asm.R1, msgReg)),
		asm.Instr(asm.Mov64Reg(asm.R2, mapReg)),
		asm.Instr(asm.Mov64Imm(asm.R3, key)),
		asm.Instr(asm.Mov64Imm(asm.R4, flags)),
		asm.Instr(asm.Call(asm.FuncMsgRedirectMap)),
	)
}

// MsgRedirectToSockhash is MsgRedirectToSockmap's sockhash counterpart,
// calling bpf_msg_redirect_hash.
func MsgRedirectToSockhash(msgReg, mapReg asm.Register, key, flags int32) asm.Item {
	return asm.Seq(
		asm.Instr(asm.Mov64Reg(asm.R1, msgReg)),
		asm.Instr(asm.Mov64Reg(asm.R2, mapReg)),
		asm.Instr(asm.Mov64Imm(asm.R3, key)),
		asm.Instr(asm.Mov64Imm(asm.R4, flags)),
		asm.Instr(asm.Call(asm.FuncMsgRedirectHash)),
	)
}

// SockmapUpdate builds `bpf_sock_map_update(skops, map, key, flags)`,
// enrolling a socket (from an SK_OPS callback) into a sockmap entry.
func SockmapUpdate(skopsReg, mapReg asm.Register, key, flags int32) asm.Item {
	return asm.Seq(
		asm.Instr(asm.Mov64Reg(asm.R1, skopsReg)),
		asm.Instr(asm.Mov64Reg(asm.R2, mapReg)),
		asm.Instr(asm.Mov64Imm(asm.R3, key)),
		asm.Instr(asm.Mov64Imm(asm.R4, flags)),
		asm.Instr(asm.Call(asm.FuncSockMapUpdate)),
	)
}

// SockhashUpdate is SockmapUpdate's sockhash counterpart, calling
// bpf_sock_hash_update.
func SockhashUpdate(skopsReg, mapReg asm.Register, key, flags int32) asm.Item {
	return asm.Seq(
		asm.Instr(asm.Mov64Reg(asm.R1, skopsReg)),
		asm.Instr(asm.Mov64Reg(asm.R2, mapReg)),
		asm.Instr(asm.Mov64Imm(asm.R3, key)),
		asm.Instr(asm.Mov64Imm(asm.R4, flags)),
		asm.Instr(asm.Call(asm.FuncSockHashUpdate)),
	)
}

// StreamVerdict builds the two-instruction epilogue common to SK_SKB
// stream-parser and stream-verdict programs, and to SK_MSG programs: load
// verdict into r0 and exit.
func StreamVerdict(verdict Verdict) asm.Item {
	return asm.Seq(
		asm.Instr(asm.Mov64Imm(asm.R0, int32(verdict))),
		asm.Instr(asm.Exit()),
	)
}
