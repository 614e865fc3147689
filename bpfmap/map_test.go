package bpfmap

import (
	"testing"

	"go.bpfkit.dev/bpfmap/bpfsys"
)

func TestCreateLookupUpdateDeleteRoundTrip(t *testing.T) {
	// End-to-end scenario D: hash-map round trip via the fake syscaller.
	sc := bpfsys.NewFake()
	m, err := Create(sc, Spec{Name: "counters", Kind: KindHash, KeySize: 4, ValueSize: 8, MaxEntries: 16})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	defer m.Close()

	key := []byte{1, 0, 0, 0}
	if _, ok, err := m.Lookup(key); err != nil || ok {
		t.Fatalf("Lookup before Update: ok=%v err=%v", ok, err)
	}

	value := []byte{1, 2, 3, 4, 5, 6, 7, 8}
	if err := m.Update(key, value, bpfsys.Any); err != nil {
		t.Fatalf("Update: %v", err)
	}

	got, ok, err := m.Lookup(key)
	if err != nil || !ok {
		t.Fatalf("Lookup after Update: ok=%v err=%v", ok, err)
	}
	if string(got) != string(value) {
		t.Errorf("Lookup = %v, want %v", got, value)
	}

	if err := m.Update(key, value, bpfsys.NoExist); !bpfsys.IsExist(err) {
		t.Errorf("Update(NoExist) on existing key err = %v, want EEXIST", err)
	}

	deleted, err := m.Delete(key)
	if err != nil || !deleted {
		t.Fatalf("Delete: deleted=%v err=%v", deleted, err)
	}
	deleted, err = m.Delete(key)
	if err != nil || deleted {
		t.Fatalf("second Delete: deleted=%v err=%v, want false/nil", deleted, err)
	}
}

func TestNextKeyEmptySeedReturnsFirst(t *testing.T) {
	sc := bpfsys.NewFake()
	m, err := Create(sc, Spec{Name: "m", Kind: KindHash, KeySize: 4, ValueSize: 4, MaxEntries: 4})
	if err != nil {
		t.Fatal(err)
	}
	defer m.Close()

	for i := byte(0); i < 3; i++ {
		if err := m.Update([]byte{i, 0, 0, 0}, []byte{i, 0, 0, 0}, bpfsys.Any); err != nil {
			t.Fatal(err)
		}
	}

	first, ok, err := m.NextKey(nil)
	if err != nil || !ok {
		t.Fatalf("NextKey(nil): ok=%v err=%v", ok, err)
	}
	if first[0] != 0 {
		t.Errorf("first key = %v, want prefix 0", first)
	}
}

func TestKeysIteratesAll(t *testing.T) {
	sc := bpfsys.NewFake()
	m, err := Create(sc, Spec{Name: "m", Kind: KindHash, KeySize: 4, ValueSize: 4, MaxEntries: 8})
	if err != nil {
		t.Fatal(err)
	}
	defer m.Close()

	want := 5
	for i := 0; i < want; i++ {
		k := []byte{byte(i), 0, 0, 0}
		if err := m.Update(k, k, bpfsys.Any); err != nil {
			t.Fatal(err)
		}
	}

	count := 0
	it := m.Keys()
	for it.Next() {
		count++
	}
	if err := it.Err(); err != nil {
		t.Fatalf("iteration error: %v", err)
	}
	if count != want {
		t.Errorf("iterated %d keys, want %d", count, want)
	}
}

func TestClearRemovesEverything(t *testing.T) {
	sc := bpfsys.NewFake()
	m, err := Create(sc, Spec{Name: "m", Kind: KindHash, KeySize: 4, ValueSize: 4, MaxEntries: 8})
	if err != nil {
		t.Fatal(err)
	}
	defer m.Close()

	for i := 0; i < 4; i++ {
		k := []byte{byte(i), 0, 0, 0}
		if err := m.Update(k, k, bpfsys.Any); err != nil {
			t.Fatal(err)
		}
	}
	if err := m.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if _, ok, _ := m.NextKey(nil); ok {
		t.Error("map should be empty after Clear")
	}
}

func TestStackPushPopReturnsPushedValue(t *testing.T) {
	sc := bpfsys.NewFake()
	m, err := Create(sc, Spec{Name: "s", Kind: KindStack, KeySize: 0, ValueSize: 4, MaxEntries: 8})
	if err != nil {
		t.Fatal(err)
	}
	defer m.Close()

	if err := m.Push([]byte{1, 0, 0, 0}); err != nil {
		t.Fatal(err)
	}
	if err := m.Push([]byte{2, 0, 0, 0}); err != nil {
		t.Fatal(err)
	}
	v, ok, err := m.Pop()
	if err != nil || !ok {
		t.Fatalf("Pop: ok=%v err=%v", ok, err)
	}
	// The fake syscaller's NULL-keyed entry is a single slot (it doesn't
	// model true LIFO/FIFO ordering across multiple NULL-key pushes), so
	// this only asserts that Pop retrieves *a* previously pushed value.
	if v[0] != 1 && v[0] != 2 {
		t.Errorf("Pop returned unexpected value %v", v)
	}
}

func TestBloomAddCheck(t *testing.T) {
	sc := bpfsys.NewFake()
	m, err := Create(sc, Spec{Name: "b", Kind: KindBloomFilter, KeySize: 0, ValueSize: 4, MaxEntries: 1024})
	if err != nil {
		t.Fatal(err)
	}
	defer m.Close()

	item := []byte{9, 9, 9, 9}
	present, err := m.Check(item)
	if err != nil {
		t.Fatal(err)
	}
	if present {
		t.Error("item should not be reported present before Add")
	}
	if err := m.Add(item); err != nil {
		t.Fatal(err)
	}
	present, err = m.Check(item)
	if err != nil {
		t.Fatal(err)
	}
	if !present {
		t.Error("item should be reported possibly-present after Add")
	}
}

func TestPerCPUAggregators(t *testing.T) {
	lanes := [][]byte{
		{1, 0, 0, 0, 0, 0, 0, 0},
		{5, 0, 0, 0, 0, 0, 0, 0},
		{3, 0, 0, 0, 0, 0, 0, 0},
	}
	if got := SumU64(lanes); got != 9 {
		t.Errorf("SumU64 = %d, want 9", got)
	}
	if got := MinU64(lanes); got != 1 {
		t.Errorf("MinU64 = %d, want 1", got)
	}
	if got := MaxU64(lanes); got != 5 {
		t.Errorf("MaxU64 = %d, want 5", got)
	}
	if got := AvgU64(lanes); got != 3 {
		t.Errorf("AvgU64 = %d, want 3", got)
	}
}

func TestMapInMapAddRemoveInner(t *testing.T) {
	sc := bpfsys.NewFake()
	template, err := Create(sc, Spec{Name: "inner-template", Kind: KindHash, KeySize: 4, ValueSize: 4, MaxEntries: 8})
	if err != nil {
		t.Fatal(err)
	}
	defer template.Close()

	mm, err := NewMapInMap(sc, "outer", KindHashOfMaps, 4, template)
	if err != nil {
		t.Fatalf("NewMapInMap: %v", err)
	}
	defer mm.Outer.Close()

	outerKey := []byte{0, 0, 0, 0}
	innerKey := []byte{1, 0, 0, 0}
	innerVal := []byte{7, 7, 7, 7}

	if err := mm.InnerUpdate(sc, outerKey, innerKey, innerVal, bpfsys.Any); err != nil {
		t.Fatalf("InnerUpdate: %v", err)
	}
	got, ok, err := mm.InnerLookup(outerKey, innerKey)
	if err != nil || !ok {
		t.Fatalf("InnerLookup: ok=%v err=%v", ok, err)
	}
	if string(got) != string(innerVal) {
		t.Errorf("InnerLookup = %v, want %v", got, innerVal)
	}

	if err := mm.RemoveInner(outerKey); err != nil {
		t.Fatalf("RemoveInner: %v", err)
	}
	if _, ok, _ := mm.InnerLookup(outerKey, innerKey); ok {
		t.Error("inner map should be gone after RemoveInner")
	}
}

func TestWithMapClosesOnReturn(t *testing.T) {
	sc := bpfsys.NewFake()
	var fd int
	err := WithMap(sc, Spec{Name: "scoped", Kind: KindArray, KeySize: 4, ValueSize: 4, MaxEntries: 1}, func(m *Map) error {
		fd = m.FD()
		return nil
	})
	if err != nil {
		t.Fatalf("WithMap: %v", err)
	}
	if err := sc.CloseFD(fd); err != nil {
		t.Fatalf("double-close after WithMap should be harmless: %v", err)
	}
}

func TestBatchFallbackOnEinval(t *testing.T) {
	sc := &einvalBatchSyscaller{FakeSyscaller: bpfsys.NewFake()}
	m, err := Create(sc, Spec{Name: "m", Kind: KindHash, KeySize: 4, ValueSize: 4, MaxEntries: 8})
	if err != nil {
		t.Fatal(err)
	}
	defer m.Close()

	keys := [][]byte{{1, 0, 0, 0}, {2, 0, 0, 0}}
	values := [][]byte{{10, 0, 0, 0}, {20, 0, 0, 0}}
	if err := m.UpdateBatch(keys, values, bpfsys.Any); err != nil {
		t.Fatalf("UpdateBatch: %v", err)
	}
	got, err := m.LookupBatch(keys)
	if err != nil {
		t.Fatalf("LookupBatch: %v", err)
	}
	if string(got[0]) != string(values[0]) || string(got[1]) != string(values[1]) {
		t.Errorf("LookupBatch results = %v, want %v", got, values)
	}
}

// einvalBatchSyscaller forces every batch command to report EINVAL, so
// tests can exercise the per-element fallback path deterministically.
type einvalBatchSyscaller struct {
	*bpfsys.FakeSyscaller
}

func (s *einvalBatchSyscaller) MapLookupBatch(fd int, keys, valuesOut [][]byte) (int, error) {
	return 0, bpfsys.ErrnoInval
}

func (s *einvalBatchSyscaller) MapUpdateBatch(fd int, keys, values [][]byte, policy bpfsys.UpdatePolicy) (int, error) {
	return 0, bpfsys.ErrnoInval
}
