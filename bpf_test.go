package bpf

import (
	"testing"

	"go.bpfkit.dev/asm"
	"go.bpfkit.dev/ext"
	"go.bpfkit.dev/tc"
	"go.bpfkit.dev/xdp"
)

func TestAssembleAndNewProgramAgree(t *testing.T) {
	items := []Item{
		asm.Instr(asm.Mov64Imm(R0, 7)),
		asm.Instr(asm.Exit()),
	}
	insns, err := Assemble(items...)
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	prog, err := NewProgram("xdp", "GPL", items...)
	if err != nil {
		t.Fatalf("NewProgram: %v", err)
	}
	if len(insns) != len(prog.Insns) {
		t.Fatalf("Assemble produced %d instructions, NewProgram produced %d", len(insns), len(prog.Insns))
	}
	for i := range insns {
		if insns[i] != prog.Insns[i] {
			t.Errorf("instruction %d differs: %+v vs %+v", i, insns[i], prog.Insns[i])
		}
	}
}

func TestXDPBuilderAliasProducesSameResultAsDirectImport(t *testing.T) {
	viaAlias := NewXDPBuilder("drop-all")
	direct := xdp.NewBuilder("drop-all")

	progAlias, err := viaAlias.Build()
	if err != nil {
		t.Fatalf("alias Build: %v", err)
	}
	progDirect, err := direct.Build()
	if err != nil {
		t.Fatalf("direct Build: %v", err)
	}
	if len(progAlias.Insns) != len(progDirect.Insns) {
		t.Fatalf("alias and direct builders diverge: %d vs %d instructions",
			len(progAlias.Insns), len(progDirect.Insns))
	}
}

func TestTCBuilderAliasAcceptsDirectionConstant(t *testing.T) {
	b := NewTCBuilder(tc.Ingress, "classify")
	if b.Direction != tc.Ingress {
		t.Errorf("Direction = %v, want Ingress", b.Direction)
	}
}

func TestParseXDPAction(t *testing.T) {
	cases := map[string]xdp.Action{
		"aborted":  xdp.Aborted,
		"drop":     xdp.Drop,
		"pass":     xdp.Pass,
		"tx":       xdp.Tx,
		"redirect": xdp.Redirect,
	}
	for keyword, want := range cases {
		got, err := ParseXDPAction(keyword)
		if err != nil {
			t.Errorf("ParseXDPAction(%q): %v", keyword, err)
		}
		if got != want {
			t.Errorf("ParseXDPAction(%q) = %v, want %v", keyword, got, want)
		}
	}
	if _, err := ParseXDPAction("bogus"); err == nil {
		t.Error("expected an error for an unknown keyword")
	}
}

func TestParseTCAction(t *testing.T) {
	got, err := ParseTCAction("shot")
	if err != nil {
		t.Fatalf("ParseTCAction: %v", err)
	}
	if got != tc.Shot {
		t.Errorf("got %v, want Shot", got)
	}
	if _, err := ParseTCAction("nonsense"); err == nil {
		t.Error("expected an error for an unknown keyword")
	}
}

func TestParseSkVerdict(t *testing.T) {
	got, err := ParseSkVerdict("pass")
	if err != nil {
		t.Fatalf("ParseSkVerdict: %v", err)
	}
	if got.String() != "SK_PASS" {
		t.Errorf("got %v, want SK_PASS", got)
	}
}

func TestParseFlowVerdict(t *testing.T) {
	got, err := ParseFlowVerdict("drop")
	if err != nil {
		t.Fatalf("ParseFlowVerdict: %v", err)
	}
	if got != ext.FlowDrop {
		t.Errorf("got %v, want FlowDrop", got)
	}
}

func TestParseIterVerdict(t *testing.T) {
	if _, err := ParseIterVerdict("pause"); err == nil {
		t.Error("expected an error for an unknown keyword")
	}
	got, err := ParseIterVerdict("stop")
	if err != nil {
		t.Fatalf("ParseIterVerdict: %v", err)
	}
	if int32(got) != 1 {
		t.Errorf("got %d, want 1 (IterStop)", got)
	}
}
