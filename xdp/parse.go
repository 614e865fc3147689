package xdp

import "go.bpfkit.dev/asm"

// Ethernet header layout: fixed 14 bytes (6-byte dst mac, 6-byte src mac,
// 2-byte ethertype), ethertype in network (big-endian) byte order.
const (
	EthHeaderLen       = 14
	EthOffsetEtherType = 12
)

// Ethertype values the L3 parsers switch on.
const (
	EtherTypeIPv4 = 0x0800
	EtherTypeIPv6 = 0x86DD
)

// IPv4 fixed-header layout. The header's true length is IHL-dependent;
// IPv4TransportOffset computes it from the wire.
const (
	IPv4MinHeaderLen   = 20
	IPv4OffsetIHL      = 0 // low nibble of the first byte
	IPv4OffsetProtocol = 9
	IPv4OffsetSrcAddr  = 12
	IPv4OffsetDstAddr  = 16
)

// IPv6 fixed header layout: always exactly 40 bytes, extension headers
// aside (which this parser does not walk).
const (
	IPv6HeaderLen        = 40
	IPv6OffsetNextHeader = 6
	IPv6OffsetSrcAddr    = 8
	IPv6OffsetDstAddr    = 24
)

// IP protocol numbers the L4 parsers switch on.
const (
	ProtoTCP = 6
	ProtoUDP = 17
)

// TCP and UDP share this port layout: source port then destination port,
// 2 bytes each, network byte order, at the very start of the transport
// header.
const (
	PortOffsetSrc = 0
	PortOffsetDst = 2
)

// mustToBigEndian panics if asm.ToBigEndian reports an invalid register.
// Parsers only ever apply it to the builder's own conventional scratch
// registers, never to packet-derived data, so a failure here is a
// programming error in this package, the same class of error the asm
// package's own "must" wrappers panic on.
func mustToBigEndian(dst asm.Register, width asm.EndianWidth) asm.Instruction {
	ins, err := asm.ToBigEndian(dst, width)
	if err != nil {
		panic(err)
	}
	return ins
}

// ParseEthernet bounds-checks a 14-byte Ethernet header starting at
// ptrReg and loads its ethertype, converted to host byte order, into
// outReg.
func (b *Builder) ParseEthernet(ptrReg, outReg asm.Register) asm.Item {
	return asm.Seq(
		b.BoundsCheck(outReg, ptrReg, EthHeaderLen),
		asm.Instr(asm.LoadMemH(outReg, ptrReg, EthOffsetEtherType)),
		asm.Instr(mustToBigEndian(outReg, asm.Endian16)),
	)
}

// ParseIPv4 bounds-checks the minimum 20-byte IPv4 header at ptrReg and
// loads its protocol number into protoReg. scratch is clobbered by the
// bounds check.
func (b *Builder) ParseIPv4(ptrReg, protoReg, scratch asm.Register) asm.Item {
	return asm.Seq(
		b.BoundsCheck(scratch, ptrReg, IPv4MinHeaderLen),
		asm.Instr(asm.LoadMemB(protoReg, ptrReg, IPv4OffsetProtocol)),
	)
}

// IPv4TransportOffset loads the first header byte (version+IHL) into
// ihlReg, masks off the IHL nibble, and multiplies by 4 to produce the
// IPv4 header's true byte length — the offset, relative to ptrReg, where
// the transport header begins.
func (b *Builder) IPv4TransportOffset(ptrReg, ihlReg asm.Register) asm.Item {
	return asm.Seq(
		asm.Instr(asm.LoadMemB(ihlReg, ptrReg, IPv4OffsetIHL)),
		asm.Instr(asm.And64Imm(ihlReg, 0x0f)),
		asm.Instr(asm.Lsh64Imm(ihlReg, 2)),
	)
}

// ParseIPv6 bounds-checks the fixed 40-byte IPv6 header at ptrReg and
// loads its next-header field into protoReg.
func (b *Builder) ParseIPv6(ptrReg, protoReg, scratch asm.Register) asm.Item {
	return asm.Seq(
		b.BoundsCheck(scratch, ptrReg, IPv6HeaderLen),
		asm.Instr(asm.LoadMemB(protoReg, ptrReg, IPv6OffsetNextHeader)),
	)
}

// ParseTransportPorts bounds-checks 4 bytes at ptrReg and loads the
// source and destination ports, converted to host byte order. Valid for
// both TCP and UDP, which share this header prefix.
func (b *Builder) ParseTransportPorts(ptrReg, srcPortReg, dstPortReg, scratch asm.Register) asm.Item {
	return asm.Seq(
		b.BoundsCheck(scratch, ptrReg, 4),
		asm.Instr(asm.LoadMemH(srcPortReg, ptrReg, PortOffsetSrc)),
		asm.Instr(mustToBigEndian(srcPortReg, asm.Endian16)),
		asm.Instr(asm.LoadMemH(dstPortReg, ptrReg, PortOffsetDst)),
		asm.Instr(mustToBigEndian(dstPortReg, asm.Endian16)),
	)
}
