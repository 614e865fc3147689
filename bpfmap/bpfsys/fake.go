package bpfsys

import (
	"sort"
	"sync"
)

// FakeSyscaller is an in-process emulation of the bpf(2) map commands,
// enough to make the testable properties a map-runtime test suite cares
// about checkable without a real kernel: create/lookup/update/delete/
// next-key, batch ops, and pinning to an in-memory path namespace. It does
// not emulate iteration races, batch size limits, map type restrictions,
// or any kernel-version gating — callers exercising those need a real
// kernel.
type FakeSyscaller struct {
	mu      sync.Mutex
	nextFD  int
	maps    map[int]*fakeMap
	pins    map[string]int
}

type fakeMap struct {
	entries map[string][]byte
}

// NewFake returns a fresh FakeSyscaller with no maps created yet.
func NewFake() *FakeSyscaller {
	return &FakeSyscaller{
		nextFD: 3, // avoid colliding with stdin/stdout/stderr in traces
		maps:   make(map[int]*fakeMap),
		pins:   make(map[string]int),
	}
}

func (f *FakeSyscaller) MapCreate(attr MapCreateAttr) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	fd := f.nextFD
	f.nextFD++
	f.maps[fd] = &fakeMap{entries: make(map[string][]byte)}
	return fd, nil
}

func (f *FakeSyscaller) mapFor(fd int) (*fakeMap, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	m, ok := f.maps[fd]
	if !ok {
		return nil, ErrnoInval
	}
	return m, nil
}

func (f *FakeSyscaller) MapLookupElem(fd int, key, valueOut []byte) error {
	m, err := f.mapFor(fd)
	if err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := m.entries[string(key)]
	if !ok {
		return ErrnoNoEnt
	}
	copy(valueOut, v)
	return nil
}

func (f *FakeSyscaller) MapUpdateElem(fd int, key, value []byte, policy UpdatePolicy) error {
	m, err := f.mapFor(fd)
	if err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	_, exists := m.entries[string(key)]
	switch policy {
	case NoExist:
		if exists {
			return ErrnoExist
		}
	case Exist:
		if !exists {
			return ErrnoNoEnt
		}
	}
	stored := make([]byte, len(value))
	copy(stored, value)
	m.entries[string(key)] = stored
	return nil
}

func (f *FakeSyscaller) MapDeleteElem(fd int, key []byte) error {
	m, err := f.mapFor(fd)
	if err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := m.entries[string(key)]; !ok {
		return ErrnoNoEnt
	}
	delete(m.entries, string(key))
	return nil
}

func (f *FakeSyscaller) MapGetNextKey(fd int, key []byte, nextOut []byte) error {
	m, err := f.mapFor(fd)
	if err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	keys := make([]string, 0, len(m.entries))
	for k := range m.entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	if len(keys) == 0 {
		return ErrnoNoEnt
	}
	if key == nil {
		copy(nextOut, keys[0])
		return nil
	}
	cur := string(key)
	for i, k := range keys {
		if k == cur {
			if i+1 == len(keys) {
				return ErrnoNoEnt
			}
			copy(nextOut, keys[i+1])
			return nil
		}
	}
	// Unknown seed key: kernel behaviour here is to start from the
	// first key greater than the seed, which sort gives us directly.
	for _, k := range keys {
		if k > cur {
			copy(nextOut, k)
			return nil
		}
	}
	return ErrnoNoEnt
}

func (f *FakeSyscaller) MapLookupAndDeleteElem(fd int, key, valueOut []byte) error {
	if err := f.MapLookupElem(fd, key, valueOut); err != nil {
		return err
	}
	return f.MapDeleteElem(fd, key)
}

func (f *FakeSyscaller) MapLookupBatch(fd int, keys, valuesOut [][]byte) (int, error) {
	n := 0
	for i, k := range keys {
		if err := f.MapLookupElem(fd, k, valuesOut[i]); err != nil {
			return n, err
		}
		n++
	}
	return n, nil
}

func (f *FakeSyscaller) MapUpdateBatch(fd int, keys, values [][]byte, policy UpdatePolicy) (int, error) {
	n := 0
	for i, k := range keys {
		if err := f.MapUpdateElem(fd, k, values[i], policy); err != nil {
			return n, err
		}
		n++
	}
	return n, nil
}

func (f *FakeSyscaller) MapDeleteBatch(fd int, keys [][]byte) (int, error) {
	n := 0
	for _, k := range keys {
		if err := f.MapDeleteElem(fd, k); err != nil {
			return n, err
		}
		n++
	}
	return n, nil
}

func (f *FakeSyscaller) MapLookupAndDeleteBatch(fd int, keys, valuesOut [][]byte) (int, error) {
	n := 0
	for i, k := range keys {
		if err := f.MapLookupElem(fd, k, valuesOut[i]); err != nil {
			return n, err
		}
		if err := f.MapDeleteElem(fd, k); err != nil {
			return n, err
		}
		n++
	}
	return n, nil
}

func (f *FakeSyscaller) ObjPin(fd int, path string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.maps[fd]; !ok {
		return ErrnoInval
	}
	f.pins[path] = fd
	return nil
}

func (f *FakeSyscaller) ObjGet(path string) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	fd, ok := f.pins[path]
	if !ok {
		return -1, ErrnoNoEnt
	}
	return fd, nil
}

func (f *FakeSyscaller) CloseFD(fd int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.maps, fd)
	return nil
}
