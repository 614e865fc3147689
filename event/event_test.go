package event

import "testing"

func TestDefineAscendingOffsets(t *testing.T) {
	d, err := Define("sched_switch", []Field{
		{Name: "common_type", Type: FieldHalf},
		{Name: "common_flags", Type: FieldByte},
		{Name: "common_preempt_count", Type: FieldByte},
		{Name: "common_pid", Type: FieldWord},
		{Name: "prev_comm_lo", Type: FieldDWord},
		{Name: "prev_comm_hi", Type: FieldDWord},
		{Name: "prev_pid", Type: FieldWord},
	})
	if err != nil {
		t.Fatalf("Define: %v", err)
	}
	// Mirrors the real sched_switch tracepoint layout: an 8-byte common
	// header, a 16-byte comm array (split here into two 8-byte fields
	// since this descriptor has no array type), then prev_pid at 24.
	off, err := d.FieldOffset("prev_pid")
	if err != nil {
		t.Fatal(err)
	}
	if off != 24 {
		t.Errorf("prev_pid offset = %d, want 24", off)
	}
	sz, err := d.FieldSize("prev_pid")
	if err != nil {
		t.Fatal(err)
	}
	if sz != 4 {
		t.Errorf("prev_pid size = %d, want 4", sz)
	}
	if d.Size() != 28 {
		t.Errorf("total size = %d, want 28", d.Size())
	}
}

func TestDefineRejectsDuplicateField(t *testing.T) {
	_, err := Define("dup", []Field{
		{Name: "a", Type: FieldByte},
		{Name: "a", Type: FieldByte},
	})
	if err == nil {
		t.Fatal("expected an error for a duplicate field name")
	}
}

func TestFieldOffsetUnknownName(t *testing.T) {
	d, err := Define("e", []Field{{Name: "a", Type: FieldByte}})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := d.FieldOffset("missing"); err == nil {
		t.Fatal("expected an error for an unknown field")
	}
}
