package xdp

import "go.bpfkit.dev/asm"

// RedirectIfindex builds `return bpf_redirect(ifindex, flags)`, XDP's plain
// by-ifindex redirect. The helper's own return value (an XDP action) ends
// up in r0; Builder.Build's epilogue overwrites r0 with DefaultAction, so
// a body that wants the helper's result as the verdict has to exit right
// after the call itself.
func RedirectIfindex(ifindex, flags int32) asm.Item {
	return asm.Seq(
		asm.Instr(asm.Mov64Imm(asm.R1, ifindex)),
		asm.Instr(asm.Mov64Imm(asm.R2, flags)),
		asm.Instr(asm.Call(asm.FuncRedirect)),
	)
}

// RedirectMap builds `return bpf_redirect_map(map_fd_reg, key, flags)`,
// redirecting into a devmap/devmap_hash/cpumap/xskmap entry. mapReg must
// already hold a pseudo-map-fd wide-immediate load of the target map
// (asm.LoadMapFD / asm.MapFDItem); key selects the entry within it.
func RedirectMap(mapReg asm.Register, key, flags int32) asm.Item {
	return asm.Seq(
		asm.Instr(asm.Mov64Reg(asm.R1, mapReg)),
		asm.Instr(asm.Mov64Imm(asm.R2, key)),
		asm.Instr(asm.Mov64Imm(asm.R3, flags)),
		asm.Instr(asm.Call(asm.FuncRedirectMap)),
	)
}
