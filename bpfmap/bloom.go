package bpfmap

import (
	"fmt"

	"go.bpfkit.dev/bpfmap/bpfsys"
)

// Add inserts value into a bloom filter map. The kernel's bloom-filter
// commands pass the tested item in the syscall's *value* position, not
// the key position (key is unused and must be NULL) — the inverse of
// every other map kind's convention.
func (m *Map) Add(value []byte) error {
	if m.spec.Kind != KindBloomFilter {
		return fmt.Errorf("bpfmap: Add on non-bloom-filter map %s", m.spec.Kind)
	}
	return m.Update(nil, value, 0)
}

// Check reports whether value is possibly in the set: a successful
// kernel lookup means "possibly present" (the filter's false-positive
// rate is the kernel's concern, not this package's); ENOENT means
// "definitely absent". This mirrors the lookup-by-value convention Add
// uses.
func (m *Map) Check(value []byte) (maybePresent bool, err error) {
	if m.spec.Kind != KindBloomFilter {
		return false, fmt.Errorf("bpfmap: Check on non-bloom-filter map %s", m.spec.Kind)
	}
	buf := make([]byte, len(value))
	copy(buf, value)
	err = m.sys.MapLookupElem(m.fd, nil, buf)
	if err == nil {
		return true, nil
	}
	if bpfsys.IsNotExist(err) {
		return false, nil
	}
	return false, fmt.Errorf("bpfmap: bloom check: %w", err)
}
