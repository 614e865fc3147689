package bpfmap

import (
	"fmt"

	"go.bpfkit.dev/bpfmap/bpfsys"
)

// Push stores value with a NULL key, the kernel's convention for
// stack/queue maps. It is only meaningful on a Map created with
// KindStack or KindQueue.
func (m *Map) Push(value []byte) error {
	if m.spec.Kind != KindStack && m.spec.Kind != KindQueue {
		return fmt.Errorf("bpfmap: Push on non-stack/queue map %s", m.spec.Kind)
	}
	return m.Update(nil, value, bpfsys.Any)
}

// Pop atomically looks up and deletes with a NULL key: LIFO order for a
// stack map, FIFO for a queue map. ok is false if the map is empty.
func (m *Map) Pop() (value []byte, ok bool, err error) {
	if m.spec.Kind != KindStack && m.spec.Kind != KindQueue {
		return nil, false, fmt.Errorf("bpfmap: Pop on non-stack/queue map %s", m.spec.Kind)
	}
	buf := make([]byte, m.spec.ValueSize)
	err = m.sys.MapLookupAndDeleteElem(m.fd, nil, buf)
	if bpfsys.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("bpfmap: pop: %w", err)
	}
	return buf, true, nil
}

// Peek looks up with a NULL key without removing the element.
func (m *Map) Peek() (value []byte, ok bool, err error) {
	if m.spec.Kind != KindStack && m.spec.Kind != KindQueue {
		return nil, false, fmt.Errorf("bpfmap: Peek on non-stack/queue map %s", m.spec.Kind)
	}
	return m.Lookup(nil)
}
