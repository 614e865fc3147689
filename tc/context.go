// Package tc provides the traffic-control (classifier/action) program-type
// DSL: `__sk_buff` field offsets, the TC verdict enum, checksum-fixup
// helpers, and a Builder that assembles a complete clsact program. It reuses
// the xdp package's L2/L3/L4 parsers, since a TC classifier walks the same
// packet layout an XDP program does.
package tc

// __sk_buff field offsets, the subset a classifier typically touches. The
// struct is far larger in the kernel; this package exposes only the fields
// its builder and helpers actually use.
const (
	OffsetLen            = 0
	OffsetMark           = 8
	OffsetQueueMapping   = 12
	OffsetProtocol       = 16
	OffsetPriority       = 32
	OffsetIngressIfindex = 36
	OffsetIfindex        = 40
	OffsetTCIndex        = 44
	OffsetCb0            = 48 // first of the five cb[] scratch words
	OffsetHash           = 68
	OffsetTCClassid      = 72
	OffsetData           = 76
	OffsetDataEnd        = 80
)
