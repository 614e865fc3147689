package ext

import "go.bpfkit.dev/asm"

// Conventional negative-errno denial values an LSM hook returns, listed
// for convenience; any negative errno is a valid deny value.
const (
	EPERM  int32 = -1
	ENOENT int32 = -2
	EACCES int32 = -13
	EINVAL int32 = -22
)

// Allow is the LSM hook's single non-denying return value.
const Allow int32 = 0

// LSMBuilder assembles an LSM hook program: arguments are delivered
// directly in r1..=r5, exactly as for fentry, since an LSM hook is itself
// a flavor of BTF-typed trampoline attach.
type LSMBuilder struct {
	Hook string
	BTF  BTFResolver

	// DefaultVerdict is returned when the body falls through without
	// jumping to FailLabel. Allow (0) is the conventional default; an
	// LSM hook meant to actively deny should set this to a negative
	// errno instead and rely on the body to override it only when
	// granting access.
	DefaultVerdict int32
	FailVerdict    int32
	FailLabel      string
}

// NewLSMBuilder returns an LSMBuilder defaulting to Allow.
func NewLSMBuilder(hook string, btf BTFResolver) *LSMBuilder {
	return &LSMBuilder{
		Hook:           hook,
		BTF:            btf,
		DefaultVerdict: Allow,
		FailVerdict:    EACCES,
		FailLabel:      "lsm_fail",
	}
}

// Arg returns the register holding the n'th (0-based) hook argument.
func (b *LSMBuilder) Arg(n int) (asm.Register, error) {
	if n < 0 || n > 4 {
		return 0, argOutOfRange(n)
	}
	return asm.R1 + asm.Register(n), nil
}

// Build assembles the full program: body, a pass-path epilogue returning
// DefaultVerdict, and a fail-path epilogue (reached via a jump to
// FailLabel) returning FailVerdict.
func (b *LSMBuilder) Build(body ...asm.Item) (*asm.Program, error) {
	const passLabel = "lsm_pass"
	items := []asm.Item{
		asm.Seq(body...),
		asm.Instr(asm.Ja(asm.To(passLabel))),
		asm.Lbl(b.FailLabel),
		asm.Instr(asm.Mov64Imm(asm.R0, b.FailVerdict)),
		asm.Instr(asm.Exit()),
		asm.Lbl(passLabel),
		asm.Instr(asm.Mov64Imm(asm.R0, b.DefaultVerdict)),
		asm.Instr(asm.Exit()),
	}
	return asm.NewProgram(SectionLSM(b.Hook), "GPL", items...)
}
