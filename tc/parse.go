package tc

import (
	"go.bpfkit.dev/asm"
	"go.bpfkit.dev/xdp"
)

// asXDP adapts b into an xdp.Builder sharing the same data_end register and
// fail label, so TC programs can drive xdp's L2/L3/L4 parsers directly
// instead of duplicating them: a classifier walks the same Ethernet/IP/TCP
// layout an XDP program does, just reached through __sk_buff's data/data_end
// rather than xdp_md's.
func (b *Builder) asXDP() *xdp.Builder {
	return &xdp.Builder{
		CtxReg:        b.CtxReg,
		DataReg:       b.DataReg,
		DataEndReg:    b.DataEndReg,
		FailLabel:     b.FailLabel,
		DefaultAction: xdp.Pass,
		FailAction:    xdp.Drop,
		Name:          b.Name,
	}
}

// ParseEthernet bounds-checks a 14-byte Ethernet header at ptrReg and loads
// its ethertype, converted to host byte order, into outReg.
func (b *Builder) ParseEthernet(ptrReg, outReg asm.Register) asm.Item {
	return b.asXDP().ParseEthernet(ptrReg, outReg)
}

// ParseIPv4 bounds-checks the minimum 20-byte IPv4 header at ptrReg and
// loads its protocol number into protoReg.
func (b *Builder) ParseIPv4(ptrReg, protoReg, scratch asm.Register) asm.Item {
	return b.asXDP().ParseIPv4(ptrReg, protoReg, scratch)
}

// IPv4TransportOffset computes the IPv4 header's true byte length from its
// IHL nibble.
func (b *Builder) IPv4TransportOffset(ptrReg, ihlReg asm.Register) asm.Item {
	return b.asXDP().IPv4TransportOffset(ptrReg, ihlReg)
}

// ParseIPv6 bounds-checks the fixed 40-byte IPv6 header at ptrReg and loads
// its next-header field into protoReg.
func (b *Builder) ParseIPv6(ptrReg, protoReg, scratch asm.Register) asm.Item {
	return b.asXDP().ParseIPv6(ptrReg, protoReg, scratch)
}

// ParseTransportPorts bounds-checks 4 bytes at ptrReg and loads the source
// and destination ports, converted to host byte order.
func (b *Builder) ParseTransportPorts(ptrReg, srcPortReg, dstPortReg, scratch asm.Register) asm.Item {
	return b.asXDP().ParseTransportPorts(ptrReg, srcPortReg, dstPortReg, scratch)
}
