package ext

import "go.bpfkit.dev/asm"

// StructOpsCallback names one TCP congestion-control callback and its
// argument count, used both for section naming and to validate a
// builder's declared argument count against the real ABI.
type StructOpsCallback struct {
	Name    string
	NumArgs int
}

// The tcp_congestion_ops callback ABI. Struct_ops callbacks are plain
// BTF-typed trampoline functions like fentry/fexit: arguments arrive
// directly in r1..=r5.
var (
	Ssthresh    = StructOpsCallback{"ssthresh", 1}
	CongAvoid   = StructOpsCallback{"cong_avoid", 3}
	SetState    = StructOpsCallback{"set_state", 2}
	CwndEvent   = StructOpsCallback{"cwnd_event", 2}
	PktsAcked   = StructOpsCallback{"pkts_acked", 2}
	UndoCwnd    = StructOpsCallback{"undo_cwnd", 1}
	CongControl = StructOpsCallback{"cong_control", 2}
	Init        = StructOpsCallback{"init", 1}
	Release     = StructOpsCallback{"release", 1}
)

// TCP-socket field offsets consumed by struct_ops callbacks. These are
// kernel-version-dependent: the layout of `struct tcp_sock`/`struct
// sock` is not a stable kernel ABI, unlike the context structs the other
// DSLs depend on. Production code should resolve these fields through
// BTFResolver.FieldPathToAccessInfo instead of this static table; it is
// provided only for kernels/environments where BTF is unavailable.
const (
	// offsets within struct sock
	TCPSockOffsetSkState = 0x12

	// offsets within struct tcp_sock, version-dependent past this point
	TCPSockOffsetSndCwnd     = 0xd0
	TCPSockOffsetSndSsthresh = 0xd4
	TCPSockOffsetSRTT        = 0xe0
)

// StructOpsBuilder assembles one struct_ops callback program.
type StructOpsBuilder struct {
	Struct   string
	Callback StructOpsCallback
	BTF      BTFResolver
}

// NewStructOpsBuilder returns a StructOpsBuilder for one named callback of
// a struct_ops struct (e.g. struct="tcp_congestion_ops",
// callback=ext.Ssthresh).
func NewStructOpsBuilder(structName string, callback StructOpsCallback, btf BTFResolver) *StructOpsBuilder {
	return &StructOpsBuilder{Struct: structName, Callback: callback, BTF: btf}
}

// Arg returns the register holding the n'th (0-based) callback argument.
// n must be within the callback's declared NumArgs.
func (b *StructOpsBuilder) Arg(n int) (asm.Register, error) {
	if n < 0 || n >= b.Callback.NumArgs {
		return 0, argOutOfRange(n)
	}
	return asm.R1 + asm.Register(n), nil
}

// Build assembles the full callback program: body, then `mov r0, 0;
// exit`. The epilogue overwrites any r0 the body sets, so a program built
// here always returns 0; congestion-control callbacks with a meaningful
// return value (e.g. ssthresh, cong_control returning a u32) need their
// own exit sequence rather than Build.
func (b *StructOpsBuilder) Build(body ...asm.Item) (*asm.Program, error) {
	items := []asm.Item{
		asm.Seq(body...),
		asm.Instr(asm.Mov64Imm(asm.R0, 0)),
		asm.Instr(asm.Exit()),
	}
	return asm.NewProgram(SectionStructOps(b.Struct, b.Callback.Name), "GPL", items...)
}
