package ext

import (
	"fmt"
	"testing"

	"go.bpfkit.dev/asm"
)

type fakeBTF struct {
	sigs map[uint32][]string
	ids  map[string]uint32
}

func (f *fakeBTF) FindFunction(name string) (uint32, error) {
	id, ok := f.ids[name]
	if !ok {
		return 0, fmt.Errorf("unknown function %q", name)
	}
	return id, nil
}

func (f *fakeBTF) GetFunctionSignature(id uint32) ([]string, error) {
	args, ok := f.sigs[id]
	if !ok {
		return nil, fmt.Errorf("unknown id %d", id)
	}
	return args, nil
}

func (f *fakeBTF) FieldPathToAccessInfo(id uint32, argName, fieldPath string) (int16, int, error) {
	return 0, 0, fmt.Errorf("not implemented in test fake")
}

func newFakeBTF() *fakeBTF {
	return &fakeBTF{
		ids:  map[string]uint32{"tcp_connect": 1},
		sigs: map[uint32][]string{1: {"sk", "uaddr", "addr_len"}},
	}
}

func TestSectionNaming(t *testing.T) {
	cases := []struct{ got, want string }{
		{SectionFentry("tcp_connect"), "fentry/tcp_connect"},
		{SectionFexit("tcp_connect"), "fexit/tcp_connect"},
		{SectionLSM("bprm_check_security"), "lsm/bprm_check_security"},
		{SectionFlowDissector(), "flow_dissector"},
		{SectionIter("task"), "iter/task"},
		{SectionStructOps("tcp_congestion_ops", "ssthresh"), "struct_ops/tcp_congestion_ops/ssthresh"},
		{SectionPerfEvent(), "perf_event"},
	}
	for _, c := range cases {
		if c.got != c.want {
			t.Errorf("got %q, want %q", c.got, c.want)
		}
	}
}

func TestFentryArgByNameResolvesThroughBTF(t *testing.T) {
	b := NewFentryBuilder("tcp_connect", newFakeBTF())
	reg, err := b.ArgByName("uaddr")
	if err != nil {
		t.Fatalf("ArgByName: %v", err)
	}
	if reg != asm.R2 {
		t.Errorf("reg = %v, want r2 (second argument)", reg)
	}
}

func TestFentryArgOutOfRange(t *testing.T) {
	b := NewFentryBuilder("tcp_connect", newFakeBTF())
	if _, err := b.Arg(5); err == nil {
		t.Error("expected an error for argument index 5")
	}
}

func TestFexitLoadReturnUsesArgCountOffset(t *testing.T) {
	b := NewFexitBuilder("tcp_connect", newFakeBTF())
	insns, err := asm.Assemble(b.LoadReturn(asm.R0, 3))
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	if insns[0].Offset != 24 {
		t.Errorf("return offset = %d, want 24 (3 args * 8)", insns[0].Offset)
	}
}

func TestLSMDefaultsToAllow(t *testing.T) {
	b := NewLSMBuilder("bprm_check_security", newFakeBTF())
	prog, err := b.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	n := len(prog.Insns)
	penultimate := prog.Insns[n-2]
	if penultimate.Imm != Allow {
		t.Errorf("penultimate imm = %d, want %d (Allow)", penultimate.Imm, Allow)
	}
}

func TestLSMFailPathDeniesWithErrno(t *testing.T) {
	b := NewLSMBuilder("bprm_check_security", newFakeBTF())
	b.FailVerdict = EACCES
	prog, err := b.Build(
		asm.Instr(asm.Ja(asm.To(b.FailLabel))),
	)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	foundDeny := false
	for _, ins := range prog.Insns {
		if ins.Imm == EACCES {
			foundDeny = true
		}
	}
	if !foundDeny {
		t.Error("expected an EACCES immediate somewhere in the assembled program")
	}
}

func TestFlowDissectorBuildEndsWithDefaultVerdict(t *testing.T) {
	b := NewFlowDissectorBuilder()
	prog, err := b.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	n := len(prog.Insns)
	last, penultimate := prog.Insns[n-1], prog.Insns[n-2]
	if last.Op != asm.Exit().Op {
		t.Errorf("last instruction = %+v, want exit", last)
	}
	if penultimate.Imm != int32(FlowOk) {
		t.Errorf("penultimate imm = %d, want %d (FlowOk)", penultimate.Imm, FlowOk)
	}
}

func TestFlowDissectorParseIPv4ComputesTransportOffset(t *testing.T) {
	b := NewFlowDissectorBuilder()
	item := b.ParseIPv4(b.DataReg, asm.R1, asm.R2, asm.R3)
	insns, err := asm.Assemble(item, asm.Lbl(b.FailLabel))
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	// bounds check (3) + load protocol (1) + load ihl (1) + and (1) + lsh (1) = 7
	if len(insns) != 7 {
		t.Fatalf("got %d instructions, want 7", len(insns))
	}
}

func TestStructOpsArgRespectsCallbackArity(t *testing.T) {
	b := NewStructOpsBuilder("tcp_congestion_ops", Ssthresh, newFakeBTF())
	if _, err := b.Arg(0); err != nil {
		t.Fatalf("Arg(0): %v", err)
	}
	if _, err := b.Arg(1); err == nil {
		t.Error("expected an error: ssthresh takes only 1 argument")
	}
}

func TestIterBuilderDefaultsToContinue(t *testing.T) {
	b := NewIterBuilder("task")
	prog, err := b.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	n := len(prog.Insns)
	penultimate := prog.Insns[n-2]
	if penultimate.Imm != int32(IterContinue) {
		t.Errorf("penultimate imm = %d, want %d (IterContinue)", penultimate.Imm, IterContinue)
	}
}

func TestPerfEventLoadSamplePeriodUsesRegsSizeOffset(t *testing.T) {
	b := NewPerfEventBuilder(168) // x86_64 pt_regs is 168 bytes
	insns, err := asm.Assemble(b.LoadSamplePeriod(asm.R1))
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	if insns[0].Offset != 168 {
		t.Errorf("sample_period offset = %d, want 168", insns[0].Offset)
	}
}
