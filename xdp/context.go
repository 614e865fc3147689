// Package xdp is the XDP (eXpress Data Path) program-type DSL: a thin,
// typed façade over asm that knows the xdp_md context layout, the
// conventional prologue/epilogue shape, the canonical bounds-check
// pattern, and XDP's redirect helpers.
package xdp

// Field offsets within struct xdp_md, the record the kernel passes to an
// XDP program's r1 on entry. Values must match the kernel exactly; the
// verifier rejects a program that reads an offset one byte off.
const (
	OffsetData           = 0
	OffsetDataEnd        = 4
	OffsetDataMeta       = 8
	OffsetIngressIfindex = 12
	OffsetRxQueueIndex   = 16
	OffsetEgressIfindex  = 20
)
