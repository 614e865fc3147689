package xdp

import (
	"testing"

	"go.bpfkit.dev/asm"
)

func TestActionValuesMatchKernel(t *testing.T) {
	cases := map[Action]int32{
		Aborted:  0,
		Drop:     1,
		Pass:     2,
		Tx:       3,
		Redirect: 4,
	}
	for action, want := range cases {
		if int32(action) != want {
			t.Errorf("%v = %d, want %d", action, int32(action), want)
		}
	}
}

func TestSectionNaming(t *testing.T) {
	if got := Section(""); got != "xdp" {
		t.Errorf("Section(\"\") = %q, want %q", got, "xdp")
	}
	if got := Section("drop"); got != "xdp/drop" {
		t.Errorf("Section(\"drop\") = %q, want %q", got, "xdp/drop")
	}
}

func TestBuildDropAllEndsWithMovAndExit(t *testing.T) {
	b := NewBuilder("dropall")
	b.DefaultAction = Drop
	prog, err := b.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if prog.Type != "xdp/dropall" {
		t.Errorf("prog.Type = %q, want %q", prog.Type, "xdp/dropall")
	}
	n := len(prog.Insns)
	if n < 2 {
		t.Fatalf("program too short: %d instructions", n)
	}
	last := prog.Insns[n-1]
	if last.Op != asm.Exit().Op {
		t.Errorf("last instruction = %+v, want exit", last)
	}
	// mov r0, <DefaultAction> appears somewhere before the final exit on
	// the fallthrough path.
	foundMov := false
	for _, ins := range prog.Insns {
		if ins.Op == asm.Mov64Imm(asm.R0, int32(Drop)).Op && ins.Imm == int32(Drop) {
			foundMov = true
		}
	}
	if !foundMov {
		t.Error("no mov r0, XDP_DROP found in assembled program")
	}
}

func TestBuildFailPathReturnsFailAction(t *testing.T) {
	b := NewBuilder("bounds")
	b.DefaultAction = Pass
	b.FailAction = Aborted

	prog, err := b.Build(
		b.BoundsCheck(asm.R9, b.DataReg, 14),
	)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(prog.Insns) == 0 {
		t.Fatal("empty program")
	}
	// The assembled program must contain a conditional jump (from
	// BoundsCheck) whose resolved offset is non-negative (forward jump
	// to the fail label), proving the label reference actually resolved.
	foundJump := false
	for _, ins := range prog.Insns {
		if ins.Offset > 0 {
			foundJump = true
		}
	}
	if !foundJump {
		t.Error("expected a resolved forward jump from the bounds check")
	}
}

func TestParseEthernetBoundsCheckThenLoad(t *testing.T) {
	b := NewBuilder("l2")
	item := b.ParseEthernet(b.DataReg, asm.R9)
	insns, err := asm.Assemble(item, asm.Lbl(b.FailLabel))
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	// mov, add, jgt (bounds check), ldxh, endian-convert = 5 instructions.
	if len(insns) != 5 {
		t.Fatalf("got %d instructions, want 5", len(insns))
	}
}

func TestIPv4TransportOffsetMasksIHL(t *testing.T) {
	b := NewBuilder("l3")
	item := b.IPv4TransportOffset(b.DataReg, asm.R9)
	insns, err := asm.Assemble(item)
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	if len(insns) != 3 {
		t.Fatalf("got %d instructions, want 3", len(insns))
	}
	// and r9, 0x0f
	andIns := insns[1]
	if andIns.Imm != 0x0f {
		t.Errorf("and immediate = %#x, want 0x0f", andIns.Imm)
	}
	// lsh r9, 2
	lshIns := insns[2]
	if lshIns.Imm != 2 {
		t.Errorf("lsh immediate = %d, want 2", lshIns.Imm)
	}
}

func TestRedirectMapLoadsThreeArgsThenCalls(t *testing.T) {
	item := RedirectMap(asm.R6, 3, 0)
	insns, err := asm.Assemble(item)
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	if len(insns) != 4 {
		t.Fatalf("got %d instructions, want 4", len(insns))
	}
	call := insns[3]
	if call.Imm != int32(asm.FuncRedirectMap) {
		t.Errorf("call helper id = %d, want %d", call.Imm, asm.FuncRedirectMap)
	}
}
