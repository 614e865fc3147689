package bpfmap

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"go.bpfkit.dev/bpfmap/bpfsys"
)

// LookupBatch issues a single BPF_MAP_LOOKUP_BATCH for keys, falling back
// to per-element lookups if the kernel rejects the batch command with
// EINVAL (unsupported for this map type or kernel version). The fallback
// preserves LookupBatch's observable semantics: callers cannot tell which
// path ran.
func (m *Map) LookupBatch(keys [][]byte) (values [][]byte, err error) {
	out := make([][]byte, len(keys))
	for i := range out {
		out[i] = make([]byte, m.spec.ValueSize)
	}
	_, err = m.sys.MapLookupBatch(m.fd, keys, out)
	if bpfsys.IsInvalid(err) {
		logrus.Debug("bpfmap: lookup_batch unsupported, falling back to per-element")
		return m.lookupBatchFallback(keys)
	}
	if err != nil {
		return nil, fmt.Errorf("bpfmap: lookup_batch: %w", err)
	}
	return out, nil
}

func (m *Map) lookupBatchFallback(keys [][]byte) ([][]byte, error) {
	out := make([][]byte, len(keys))
	for i, k := range keys {
		v, ok, err := m.Lookup(k)
		if err != nil {
			return nil, err
		}
		if !ok {
			out[i] = nil
			continue
		}
		out[i] = v
	}
	return out, nil
}

// UpdateBatch issues a single BPF_MAP_UPDATE_BATCH for the key/value
// pairs, falling back to per-element updates on EINVAL.
func (m *Map) UpdateBatch(keys, values [][]byte, policy bpfsys.UpdatePolicy) error {
	_, err := m.sys.MapUpdateBatch(m.fd, keys, values, policy)
	if bpfsys.IsInvalid(err) {
		logrus.Debug("bpfmap: update_batch unsupported, falling back to per-element")
		for i, k := range keys {
			if err := m.Update(k, values[i], policy); err != nil {
				return err
			}
		}
		return nil
	}
	if err != nil {
		return fmt.Errorf("bpfmap: update_batch: %w", err)
	}
	return nil
}

// DeleteBatch issues a single BPF_MAP_DELETE_BATCH for keys, falling back
// to per-element deletes on EINVAL.
func (m *Map) DeleteBatch(keys [][]byte) error {
	_, err := m.sys.MapDeleteBatch(m.fd, keys)
	if bpfsys.IsInvalid(err) {
		logrus.Debug("bpfmap: delete_batch unsupported, falling back to per-element")
		for _, k := range keys {
			if _, err := m.Delete(k); err != nil {
				return err
			}
		}
		return nil
	}
	if err != nil {
		return fmt.Errorf("bpfmap: delete_batch: %w", err)
	}
	return nil
}

// LookupAndDeleteBatch issues a single BPF_MAP_LOOKUP_AND_DELETE_BATCH,
// falling back to a per-element lookup-then-delete pair on EINVAL.
func (m *Map) LookupAndDeleteBatch(keys [][]byte) ([][]byte, error) {
	out := make([][]byte, len(keys))
	for i := range out {
		out[i] = make([]byte, m.spec.ValueSize)
	}
	_, err := m.sys.MapLookupAndDeleteBatch(m.fd, keys, out)
	if bpfsys.IsInvalid(err) {
		logrus.Debug("bpfmap: lookup_and_delete_batch unsupported, falling back to per-element")
		for i, k := range keys {
			v, ok, err := m.Lookup(k)
			if err != nil {
				return nil, err
			}
			if ok {
				out[i] = v
				if _, err := m.Delete(k); err != nil {
					return nil, err
				}
			} else {
				out[i] = nil
			}
		}
		return out, nil
	}
	if err != nil {
		return nil, fmt.Errorf("bpfmap: lookup_and_delete_batch: %w", err)
	}
	return out, nil
}
