package asm

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestInstructionBytesRoundTrip(t *testing.T) {
	ins := Instruction{Op: makeOpCode(ClassAlu64, uint8(SrcImm)|uint8(AluAdd)), Dst: R1, Offset: -3, Imm: 42}
	b := ins.Bytes()
	got, err := DecodeInstruction(b[:])
	if err != nil {
		t.Fatalf("DecodeInstruction: %v", err)
	}
	if diff := cmp.Diff(ins, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestInstructionBytesLayout(t *testing.T) {
	// XDP_DROP for r0, mov64 r0, 1 immediately followed by exit: verifies
	// the exact byte layout described in the wire format (end-to-end
	// scenario A, the "assemble an XDP program that drops every packet"
	// shape reduced to a single instruction).
	ins := Mov64Imm(R0, 1)
	b := ins.Bytes()
	want := [8]byte{0xb7, 0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00}
	if b != want {
		t.Errorf("Mov64Imm(R0, 1).Bytes() = % x, want % x", b, want)
	}
}

func TestInstructionValid(t *testing.T) {
	if !(Instruction{Dst: R5, Src: R10}).Valid() {
		t.Error("r5/r10 should be valid")
	}
	if (Instruction{Dst: 11}).Valid() {
		t.Error("r11 should be invalid")
	}
}

func TestUnmarshalRejectsShortTail(t *testing.T) {
	_, err := Unmarshal([]byte{0, 1, 2, 3})
	if err == nil {
		t.Fatal("expected an error for a non-multiple-of-8 length")
	}
}

func TestMarshalUnmarshalRoundTrip(t *testing.T) {
	insns := Instructions{
		Mov64Imm(R0, 7),
		Add64Imm(R0, 1),
		Exit(),
	}
	data := insns.Marshal()
	if len(data) != len(insns)*InstructionSize {
		t.Fatalf("Marshal length = %d, want %d", len(data), len(insns)*InstructionSize)
	}
	got, err := Unmarshal(data)
	if err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if diff := cmp.Diff([]Instruction(insns), []Instruction(got)); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestWideImmediate(t *testing.T) {
	lo, hi, err := LoadImm64(R1, 0x1122334455667788)
	if err != nil {
		t.Fatalf("LoadImm64: %v", err)
	}
	if got := WideImmediate(lo, hi); got != 0x1122334455667788 {
		t.Errorf("WideImmediate = %#x, want %#x", got, uint64(0x1122334455667788))
	}
}

func TestLoadMapFDByteLayout(t *testing.T) {
	// End-to-end scenario C: a lddw loading a map fd must carry the
	// pseudo-map-fd source nibble and the fd in the low imm slot.
	lo, hi, err := LoadMapFD(R1, 7)
	if err != nil {
		t.Fatalf("LoadMapFD: %v", err)
	}
	if lo.Src != PseudoMapFD {
		t.Errorf("lo.Src = %v, want PseudoMapFD", lo.Src)
	}
	if lo.Imm != 7 {
		t.Errorf("lo.Imm = %d, want 7", lo.Imm)
	}
	if hi.Imm != 0 {
		t.Errorf("hi.Imm = %d, want 0", hi.Imm)
	}
	b := lo.Bytes()
	if b[0] != byte(makeOpCode(ClassLd, uint8(SizeDW)|uint8(ModeImm))) {
		t.Errorf("lo opcode byte = %#x, want BPF_LD|BPF_DW|BPF_IMM", b[0])
	}
}
