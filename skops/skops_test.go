package skops

import (
	"testing"

	"go.bpfkit.dev/asm"
)

func TestVerdictValuesMatchKernel(t *testing.T) {
	if Drop != 0 {
		t.Errorf("Drop = %d, want 0", Drop)
	}
	if Pass != 1 {
		t.Errorf("Pass = %d, want 1", Pass)
	}
}

func TestSectionNaming(t *testing.T) {
	cases := []struct {
		got, want string
	}{
		{SectionSkLookup(), "sk_lookup"},
		{SectionSocket(""), "socket"},
		{SectionSocket("filter"), "socket/filter"},
		{SectionStreamParser(""), "sk_skb/stream_parser"},
		{SectionStreamVerdict(""), "sk_skb/stream_verdict"},
		{SectionSkMsg("echo"), "sk_msg/echo"},
	}
	for _, c := range cases {
		if c.got != c.want {
			t.Errorf("got %q, want %q", c.got, c.want)
		}
	}
}

func TestLookupBuilderDefaultsToPass(t *testing.T) {
	b := NewLookupBuilder()
	prog, err := b.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	n := len(prog.Insns)
	last, penultimate := prog.Insns[n-1], prog.Insns[n-2]
	if last.Op != asm.Exit().Op {
		t.Errorf("last instruction = %+v, want exit", last)
	}
	if penultimate.Imm != int32(Pass) {
		t.Errorf("penultimate imm = %d, want %d (Pass)", penultimate.Imm, Pass)
	}
}

func TestSkAssignLoadsCtxSkAndFlags(t *testing.T) {
	b := NewLookupBuilder()
	insns, err := asm.Assemble(b.SkAssign(asm.R7, 0))
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	if len(insns) != 4 {
		t.Fatalf("got %d instructions, want 4", len(insns))
	}
	call := insns[3]
	if call.Imm != int32(asm.FuncSkAssign) {
		t.Errorf("call helper id = %d, want %d", call.Imm, asm.FuncSkAssign)
	}
}

func TestLookupTCPCallsCorrectHelper(t *testing.T) {
	insns, err := asm.Assemble(LookupTCP(asm.R6, asm.R7, 16, 0, 0))
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	call := insns[len(insns)-1]
	if call.Imm != int32(asm.FuncSkLookupTCP) {
		t.Errorf("call helper id = %d, want %d", call.Imm, asm.FuncSkLookupTCP)
	}
}

func TestRedirectToSockmapCallsCorrectHelper(t *testing.T) {
	insns, err := asm.Assemble(RedirectToSockmap(asm.R1, asm.R2, 0, 0))
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	call := insns[len(insns)-1]
	if call.Imm != int32(asm.FuncSKRedirectMap) {
		t.Errorf("call helper id = %d, want %d", call.Imm, asm.FuncSKRedirectMap)
	}
}

func TestMsgRedirectToSockhashCallsCorrectHelper(t *testing.T) {
	insns, err := asm.Assemble(MsgRedirectToSockhash(asm.R1, asm.R2, 0, 0))
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	call := insns[len(insns)-1]
	if call.Imm != int32(asm.FuncMsgRedirectHash) {
		t.Errorf("call helper id = %d, want %d", call.Imm, asm.FuncMsgRedirectHash)
	}
}

func TestSocketFilterEpilogues(t *testing.T) {
	acceptInsns, err := asm.Assemble(AcceptAll())
	if err != nil {
		t.Fatalf("Assemble(AcceptAll): %v", err)
	}
	if acceptInsns[0].Imm != -1 {
		t.Errorf("AcceptAll imm = %d, want -1", acceptInsns[0].Imm)
	}

	rejectInsns, err := asm.Assemble(RejectAll())
	if err != nil {
		t.Fatalf("Assemble(RejectAll): %v", err)
	}
	if rejectInsns[0].Imm != 0 {
		t.Errorf("RejectAll imm = %d, want 0", rejectInsns[0].Imm)
	}
}
