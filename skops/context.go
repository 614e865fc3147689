// Package skops provides the socket-layer program-type DSLs: plain socket
// filters, SK_SKB/SK_MSG stream steering backed by sockmap/sockhash, and
// SK_LOOKUP 4-tuple socket selection.
package skops

// bpf_sk_lookup field offsets: the context a SK_LOOKUP program receives,
// describing the inbound connection before a listening socket has been
// chosen.
const (
	OffsetFamily     = 8
	OffsetProtocol   = 12
	OffsetRemoteIP4  = 16
	OffsetRemoteIP6  = 20
	OffsetRemotePort = 36
	OffsetLocalIP4   = 40
	OffsetLocalIP6   = 44
	OffsetLocalPort  = 60
)

// sk_msg_md field offsets: the context an SK_MSG program receives for an
// outbound message on a socket enrolled in a sockmap/sockhash.
const (
	MsgOffsetData       = 0
	MsgOffsetDataEnd    = 8
	MsgOffsetFamily     = 16
	MsgOffsetRemoteIP4  = 20
	MsgOffsetLocalIP4   = 24
	MsgOffsetRemoteIP6  = 28
	MsgOffsetLocalIP6   = 44
	MsgOffsetRemotePort = 60
	MsgOffsetLocalPort  = 64
	MsgOffsetSize       = 68
)
