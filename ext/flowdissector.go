package ext

import "go.bpfkit.dev/asm"

// bpf_flow_keys field offsets.
const (
	FlowOffsetNhoff = 0
	FlowOffsetThoff = 2
)

// FlowVerdict is the flow dissector's result: ok lets the kernel's own
// dissection stand, drop rejects the packet outright.
type FlowVerdict int32

const (
	FlowOk   FlowVerdict = 0
	FlowDrop FlowVerdict = -1
)

// Ethernet/IPv4/IPv6/port field layout, identical to xdp's — the flow
// dissector walks the same wire formats an XDP program does, just reports
// results into bpf_flow_keys instead of returning a verdict over the
// whole packet.
const (
	EthHeaderLen       = 14
	EthOffsetEtherType = 12

	IPv4MinHeaderLen   = 20
	IPv4OffsetIHL      = 0
	IPv4OffsetProtocol = 9
	IPv4OffsetSrcAddr  = 12
	IPv4OffsetDstAddr  = 16

	IPv6HeaderLen        = 40
	IPv6OffsetNextHeader = 6
)

// FlowDissectorBuilder assembles a flow_dissector program: a prologue
// saving the bpf_flow_keys/skb context pointers, a caller-supplied body,
// and a verdict epilogue.
type FlowDissectorBuilder struct {
	CtxReg, KeysReg     asm.Register
	DataReg, DataEndReg asm.Register

	DefaultVerdict FlowVerdict
	FailVerdict    FlowVerdict
	FailLabel      string
}

// NewFlowDissectorBuilder returns a FlowDissectorBuilder with the
// conventional register assignment (r6 = ctx, r7 = data, r8 = data_end,
// r9 = flow_keys).
func NewFlowDissectorBuilder() *FlowDissectorBuilder {
	return &FlowDissectorBuilder{
		CtxReg:         asm.R6,
		DataReg:        asm.R7,
		DataEndReg:     asm.R8,
		KeysReg:        asm.R9,
		DefaultVerdict: FlowOk,
		FailVerdict:    FlowDrop,
		FailLabel:      "flow_fail",
	}
}

// BoundsCheck is the same verifier-recognized template the packet DSLs
// share: `scratch := ptrReg + n; if scratch > DataEndReg goto FailLabel`.
func (b *FlowDissectorBuilder) BoundsCheck(scratch, ptrReg asm.Register, n int32) asm.Item {
	return asm.Seq(
		asm.Instr(asm.Mov64Reg(scratch, ptrReg)),
		asm.Instr(asm.Add64Imm(scratch, n)),
		asm.Instr(asm.JGTReg(scratch, b.DataEndReg, asm.To(b.FailLabel))),
	)
}

// ParseEthernet bounds-checks a 14-byte Ethernet header at ptrReg and
// loads its ethertype into outReg.
func (b *FlowDissectorBuilder) ParseEthernet(ptrReg, outReg asm.Register) asm.Item {
	return asm.Seq(
		b.BoundsCheck(outReg, ptrReg, EthHeaderLen),
		asm.Instr(asm.LoadMemH(outReg, ptrReg, EthOffsetEtherType)),
	)
}

// ParseIPv4 bounds-checks the minimum 20-byte IPv4 header at ptrReg,
// loads its protocol number into protoReg, and computes the transport
// offset (IHL×4) into thoffReg.
func (b *FlowDissectorBuilder) ParseIPv4(ptrReg, protoReg, thoffReg, scratch asm.Register) asm.Item {
	return asm.Seq(
		b.BoundsCheck(scratch, ptrReg, IPv4MinHeaderLen),
		asm.Instr(asm.LoadMemB(protoReg, ptrReg, IPv4OffsetProtocol)),
		asm.Instr(asm.LoadMemB(thoffReg, ptrReg, IPv4OffsetIHL)),
		asm.Instr(asm.And64Imm(thoffReg, 0x0f)),
		asm.Instr(asm.Lsh64Imm(thoffReg, 2)),
	)
}

// ParseIPv6 bounds-checks the fixed 40-byte IPv6 header at ptrReg and
// loads its next-header field into protoReg.
func (b *FlowDissectorBuilder) ParseIPv6(ptrReg, protoReg, scratch asm.Register) asm.Item {
	return asm.Seq(
		b.BoundsCheck(scratch, ptrReg, IPv6HeaderLen),
		asm.Instr(asm.LoadMemB(protoReg, ptrReg, IPv6OffsetNextHeader)),
	)
}

// ParseTransportPorts bounds-checks 4 bytes at ptrReg and loads the
// source and destination ports.
func (b *FlowDissectorBuilder) ParseTransportPorts(ptrReg, srcPortReg, dstPortReg, scratch asm.Register) asm.Item {
	return asm.Seq(
		b.BoundsCheck(scratch, ptrReg, 4),
		asm.Instr(asm.LoadMemH(srcPortReg, ptrReg, 0)),
		asm.Instr(asm.LoadMemH(dstPortReg, ptrReg, 2)),
	)
}

// StoreNhoff stores the computed network-header offset into
// bpf_flow_keys.nhoff.
func (b *FlowDissectorBuilder) StoreNhoff(valueReg asm.Register) asm.Item {
	return asm.Instr(asm.StoreMemRegH(b.KeysReg, FlowOffsetNhoff, valueReg))
}

// StoreThoff stores the computed transport-header offset into
// bpf_flow_keys.thoff.
func (b *FlowDissectorBuilder) StoreThoff(valueReg asm.Register) asm.Item {
	return asm.Instr(asm.StoreMemRegH(b.KeysReg, FlowOffsetThoff, valueReg))
}

// Build assembles the full program: prologue, body, a pass-path epilogue
// returning DefaultVerdict, and a fail-path epilogue returning
// FailVerdict.
func (b *FlowDissectorBuilder) Build(body ...asm.Item) (*asm.Program, error) {
	const passLabel = "flow_pass"
	items := []asm.Item{
		asm.Instr(asm.Mov64Reg(b.CtxReg, asm.R1)),
		asm.Instr(asm.LoadMemW(b.DataReg, b.CtxReg, 0)),
		asm.Instr(asm.LoadMemW(b.DataEndReg, b.CtxReg, 4)),
		asm.Seq(body...),
		asm.Instr(asm.Ja(asm.To(passLabel))),
		asm.Lbl(b.FailLabel),
		asm.Instr(asm.Mov64Imm(asm.R0, int32(b.FailVerdict))),
		asm.Instr(asm.Exit()),
		asm.Lbl(passLabel),
		asm.Instr(asm.Mov64Imm(asm.R0, int32(b.DefaultVerdict))),
		asm.Instr(asm.Exit()),
	}
	return asm.NewProgram(SectionFlowDissector(), "GPL", items...)
}
