package skops

import "go.bpfkit.dev/asm"

// AcceptAll returns the two-instruction classic socket-filter epilogue that
// accepts the whole packet: a positive byte count (here the kernel's
// conventional "all of it" sentinel, the maximum snap length) in r0, then
// exit. A socket filter's r0 is a byte count to keep, not a verdict enum;
// 0 drops the packet entirely.
func AcceptAll() asm.Item {
	return asm.Seq(
		asm.Instr(asm.Mov64Imm(asm.R0, -1)),
		asm.Instr(asm.Exit()),
	)
}

// RejectAll returns the two-instruction classic socket-filter epilogue
// that drops the whole packet: `mov r0, 0; exit`.
func RejectAll() asm.Item {
	return asm.Seq(
		asm.Instr(asm.Mov64Imm(asm.R0, 0)),
		asm.Instr(asm.Exit()),
	)
}

// AcceptBytes returns the epilogue that keeps exactly n bytes of the
// packet.
func AcceptBytes(n int32) asm.Item {
	return asm.Seq(
		asm.Instr(asm.Mov64Imm(asm.R0, n)),
		asm.Instr(asm.Exit()),
	)
}
