// Package ext provides the remaining program-type DSLs: fentry/fexit
// direct-argument tracing, LSM hooks, the flow dissector, struct_ops TCP
// congestion-control callbacks, BPF iterators, and perf-event programs.
package ext

import (
	"fmt"

	"go.bpfkit.dev/asm"
)

// BTFResolver is the external collaborator this package consults for
// named-argument lookup on fentry/fexit/LSM programs: a function's BTF
// (BPF Type Format) signature tells the builder which register (or,
// for a struct-pointer argument, which field-access chain) a named
// argument corresponds to. BTF parsing itself is out of scope here; this
// package only specifies the interface it needs from one.
type BTFResolver interface {
	// FindFunction resolves a kernel function name to its BTF type id.
	FindFunction(name string) (id uint32, err error)
	// GetFunctionSignature returns the ordered list of argument names for
	// a function's BTF id.
	GetFunctionSignature(id uint32) (args []string, err error)
	// FieldPathToAccessInfo resolves a dotted field path off a named
	// argument (e.g. "sk.sk_family") to the load size and cumulative byte
	// offset needed to read it.
	FieldPathToAccessInfo(id uint32, argName, fieldPath string) (offset int16, size int, err error)
}

// FentryBuilder assembles fentry programs: arguments are delivered
// directly in r1..=r5, with no context pointer to unwrap first.
type FentryBuilder struct {
	Function string
	BTF      BTFResolver
}

// NewFentryBuilder returns a FentryBuilder attaching to function, resolved
// through btf for named-argument lookups.
func NewFentryBuilder(function string, btf BTFResolver) *FentryBuilder {
	return &FentryBuilder{Function: function, BTF: btf}
}

// Arg returns the register holding the n'th (0-based) argument: fentry
// arguments need no load, since the kernel delivers them straight into
// r1..r5.
func (b *FentryBuilder) Arg(n int) (asm.Register, error) {
	if n < 0 || n > 4 {
		return 0, argOutOfRange(n)
	}
	return asm.R1 + asm.Register(n), nil
}

// ArgByName resolves a named argument through BTF and returns its
// register, the same way Arg does for a positional index.
func (b *FentryBuilder) ArgByName(name string) (asm.Register, error) {
	id, err := b.BTF.FindFunction(b.Function)
	if err != nil {
		return 0, err
	}
	args, err := b.BTF.GetFunctionSignature(id)
	if err != nil {
		return 0, err
	}
	for i, arg := range args {
		if arg == name {
			return b.Arg(i)
		}
	}
	return 0, fmt.Errorf("ext: argument %q not found in %s's signature", name, b.Function)
}

// Build assembles the full program: body, then `mov r0, 0; exit`.
func (b *FentryBuilder) Build(body ...asm.Item) (*asm.Program, error) {
	items := []asm.Item{
		asm.Seq(body...),
		asm.Instr(asm.Mov64Imm(asm.R0, 0)),
		asm.Instr(asm.Exit()),
	}
	return asm.NewProgram(SectionFentry(b.Function), "GPL", items...)
}

// FexitBuilder is FentryBuilder's counterpart for fexit programs: the
// same direct r1..=r5 argument delivery, plus access to the traced
// function's return value through the context pointer (r1 at
// BTF-reported offset = argument count × 8).
type FexitBuilder struct {
	Function string
	BTF      BTFResolver
	CtxReg   asm.Register
}

// NewFexitBuilder returns a FexitBuilder attaching to function.
func NewFexitBuilder(function string, btf BTFResolver) *FexitBuilder {
	return &FexitBuilder{Function: function, BTF: btf, CtxReg: asm.R6}
}

// Arg is FentryBuilder.Arg's counterpart for fexit.
func (b *FexitBuilder) Arg(n int) (asm.Register, error) {
	if n < 0 || n > 4 {
		return 0, argOutOfRange(n)
	}
	return asm.R1 + asm.Register(n), nil
}

// Prologue saves r1 (the fexit context pointer, which aliases the
// argument registers plus the trailing return slot) to CtxReg, so the
// body can still reach the arguments after issuing calls that would
// otherwise clobber r1..r5.
func (b *FexitBuilder) Prologue() asm.Item {
	return asm.Instr(asm.Mov64Reg(b.CtxReg, asm.R1))
}

// LoadReturn loads the traced function's return value into dst. argCount
// is the function's argument count (from BTF), which determines the
// return slot's offset in the context array.
func (b *FexitBuilder) LoadReturn(dst asm.Register, argCount int) asm.Item {
	return asm.Instr(asm.LoadMemDW(dst, b.CtxReg, int16(argCount*8)))
}

// Build assembles the full program: prologue, body, `mov r0, 0; exit`.
func (b *FexitBuilder) Build(body ...asm.Item) (*asm.Program, error) {
	items := []asm.Item{
		b.Prologue(),
		asm.Seq(body...),
		asm.Instr(asm.Mov64Imm(asm.R0, 0)),
		asm.Instr(asm.Exit()),
	}
	return asm.NewProgram(SectionFexit(b.Function), "GPL", items...)
}
