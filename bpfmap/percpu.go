package bpfmap

import "fmt"

// NCPUStride computes the per-CPU value stride the kernel requires the
// caller to pre-compute: perCPUSize * nCPUs. Callers building a Spec for a
// per-CPU map kind must set ValueSize to this and PerCPUSize to
// perCPUSize.
func NCPUStride(perCPUSize, nCPUs uint32) uint32 { return perCPUSize * nCPUs }

// PerCPUValues splits a raw per-CPU lookup result into its nCPUs
// individual lanes, each perCPUSize bytes, in CPU-index order.
func PerCPUValues(raw []byte, perCPUSize uint32, nCPUs int) ([][]byte, error) {
	want := int(perCPUSize) * nCPUs
	if len(raw) != want {
		return nil, fmt.Errorf("bpfmap: per-cpu value is %d bytes, want %d (%d cpus * %d bytes)", len(raw), want, nCPUs, perCPUSize)
	}
	out := make([][]byte, nCPUs)
	for i := 0; i < nCPUs; i++ {
		out[i] = raw[i*int(perCPUSize) : (i+1)*int(perCPUSize)]
	}
	return out, nil
}

// PerCPULookup looks up key on a per-CPU map and splits the result into
// per-CPU lanes. It requires m to have been created with a non-nil
// PerCPUSize.
func (m *Map) PerCPULookup(key []byte, nCPUs int) (lanes [][]byte, ok bool, err error) {
	if m.spec.PerCPUSize == nil {
		return nil, false, fmt.Errorf("bpfmap: PerCPULookup on non-per-cpu map %s", m.spec.Kind)
	}
	raw, ok, err := m.Lookup(key)
	if err != nil || !ok {
		return nil, ok, err
	}
	lanes, err = PerCPUValues(raw, *m.spec.PerCPUSize, nCPUs)
	return lanes, err == nil, err
}

// The aggregators below assume each per-CPU lane holds a little-endian
// u64, the common case for a per-CPU counter map; a caller with a
// differently shaped per-CPU value decodes lanes itself.

// SumU64 adds every lane's little-endian u64 value.
func SumU64(lanes [][]byte) uint64 {
	var sum uint64
	for _, l := range lanes {
		sum += decodeU64(l)
	}
	return sum
}

// MinU64 returns the smallest lane value; 0 if lanes is empty.
func MinU64(lanes [][]byte) uint64 {
	if len(lanes) == 0 {
		return 0
	}
	min := decodeU64(lanes[0])
	for _, l := range lanes[1:] {
		if v := decodeU64(l); v < min {
			min = v
		}
	}
	return min
}

// MaxU64 returns the largest lane value; 0 if lanes is empty.
func MaxU64(lanes [][]byte) uint64 {
	var max uint64
	for _, l := range lanes {
		if v := decodeU64(l); v > max {
			max = v
		}
	}
	return max
}

// AvgU64 returns the mean lane value, truncated; 0 if lanes is empty.
func AvgU64(lanes [][]byte) uint64 {
	if len(lanes) == 0 {
		return 0
	}
	return SumU64(lanes) / uint64(len(lanes))
}

func decodeU64(b []byte) uint64 {
	var v uint64
	for i := 0; i < len(b) && i < 8; i++ {
		v |= uint64(b[i]) << (8 * i)
	}
	return v
}
