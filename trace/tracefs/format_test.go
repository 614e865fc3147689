package tracefs

import "testing"

// TestSchedSwitchFallbackFieldOffset is the literal tracepoint-field-offset
// scenario: the static descriptor for sched/sched_switch must report
// field_offset(prev_pid) == 24 and field_size(prev_pid) == 4.
func TestSchedSwitchFallbackFieldOffset(t *testing.T) {
	ev, ok := FallbackEvent("sched", "sched_switch")
	if !ok {
		t.Fatal("no fallback descriptor for sched/sched_switch")
	}
	offset, ok := ev.FieldOffset("prev_pid")
	if !ok {
		t.Fatal("prev_pid not found")
	}
	if offset != 24 {
		t.Errorf("FieldOffset(prev_pid) = %d, want 24", offset)
	}
	size, ok := ev.FieldSize("prev_pid")
	if !ok {
		t.Fatal("prev_pid size not found")
	}
	if size != 4 {
		t.Errorf("FieldSize(prev_pid) = %d, want 4", size)
	}
}

func TestFallbackTableCoversAllListedTracepoints(t *testing.T) {
	cases := []struct{ category, name string }{
		{"sched", "sched_switch"},
		{"sched", "sched_process_exec"},
		{"sched", "sched_process_exit"},
		{"syscalls", "sys_enter_execve"},
		{"syscalls", "sys_exit_execve"},
		{"raw_syscalls", "sys_enter"},
		{"raw_syscalls", "sys_exit"},
	}
	for _, c := range cases {
		if _, ok := FallbackEvent(c.category, c.name); !ok {
			t.Errorf("missing fallback descriptor for %s/%s", c.category, c.name)
		}
	}
}

func TestParseFormatSegregatesCommonFields(t *testing.T) {
	ev, err := ParseFormat("sched", "sched_switch", 1, schedSwitchFormat)
	if err != nil {
		t.Fatalf("ParseFormat: %v", err)
	}
	if len(ev.CommonFields) == 0 {
		t.Fatal("no common fields parsed")
	}
	for _, f := range ev.CommonFields {
		if f.Name[:7] != "common_" {
			t.Errorf("field %q in CommonFields does not start with common_", f.Name)
		}
	}
	for _, f := range ev.Fields {
		if len(f.Name) >= 7 && f.Name[:7] == "common_" {
			t.Errorf("field %q should be in CommonFields, not Fields", f.Name)
		}
	}
}

func TestParseFormatArrayDeclarator(t *testing.T) {
	ev, err := ParseFormat("sched", "sched_switch", 1, schedSwitchFormat)
	if err != nil {
		t.Fatalf("ParseFormat: %v", err)
	}
	found := false
	for _, f := range ev.Fields {
		if f.Name == "prev_comm" {
			found = true
			if f.ArraySize != 16 {
				t.Errorf("prev_comm array size = %d, want 16", f.ArraySize)
			}
		}
	}
	if !found {
		t.Fatal("prev_comm field not found")
	}
}

func TestCacheMemoizesAndFlushes(t *testing.T) {
	c := NewCache()
	ev1, err := c.Lookup("sched", "sched_switch")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	ev2, err := c.Lookup("sched", "sched_switch")
	if err != nil {
		t.Fatalf("Lookup (cached): %v", err)
	}
	if ev1 != ev2 {
		t.Error("expected the same cached *Event pointer on repeated lookup")
	}
	c.Flush()
	ev3, err := c.Lookup("sched", "sched_switch")
	if err != nil {
		t.Fatalf("Lookup (post-flush): %v", err)
	}
	if ev3 == nil {
		t.Fatal("expected a fresh descriptor after flush")
	}
}

func TestCacheFallsBackForUnknownTracepointOnMissingMount(t *testing.T) {
	c := NewCache()
	if _, err := c.Lookup("nonexistent", "not_a_tracepoint"); err == nil {
		t.Error("expected an error for an unresolvable, non-fallback tracepoint")
	}
}
