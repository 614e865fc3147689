// Package bpfmap implements the BPF map runtime: typed handles over the
// kernel's map syscalls, with iteration, batching, pinning, per-CPU
// aggregation, map-in-map nesting, and the specialized map shapes the
// kernel exposes (stack/queue/LPM-trie/bloom/sockmap/devmap/cpumap/
// xskmap).
package bpfmap

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"go.bpfkit.dev/bpfmap/bpfsys"
)

// Kind identifies a kernel map type. Values match the kernel's enum
// bpf_map_type ordering where it matters for MapCreateAttr.MapType; the
// constants here only cover the shapes this toolkit builds handles for.
type Kind uint32

const (
	KindHash           Kind = 1
	KindArray          Kind = 2
	KindProgArray      Kind = 3
	KindPerfEventArray Kind = 4
	KindPerCPUHash     Kind = 5
	KindPerCPUArray    Kind = 6
	KindLRUHash        Kind = 9
	KindLRUPerCPUHash  Kind = 10
	KindLPMTrie        Kind = 11
	KindArrayOfMaps    Kind = 12
	KindHashOfMaps     Kind = 13
	KindDevMap         Kind = 14
	KindSockMap        Kind = 15
	KindCPUMap         Kind = 16
	KindXSKMap         Kind = 17
	KindSockHash       Kind = 18
	KindQueue          Kind = 22
	KindStack          Kind = 23
	KindDevMapHash     Kind = 25
	KindRingBuf        Kind = 27
	KindBloomFilter    Kind = 30
)

func (k Kind) String() string {
	switch k {
	case KindHash:
		return "hash"
	case KindArray:
		return "array"
	case KindPerCPUHash:
		return "percpu_hash"
	case KindPerCPUArray:
		return "percpu_array"
	case KindLRUHash:
		return "lru_hash"
	case KindLRUPerCPUHash:
		return "lru_percpu_hash"
	case KindRingBuf:
		return "ringbuf"
	case KindStack:
		return "stack"
	case KindQueue:
		return "queue"
	case KindLPMTrie:
		return "lpm_trie"
	case KindBloomFilter:
		return "bloom_filter"
	case KindDevMap:
		return "devmap"
	case KindDevMapHash:
		return "devmap_hash"
	case KindCPUMap:
		return "cpumap"
	case KindSockMap:
		return "sockmap"
	case KindSockHash:
		return "sockhash"
	case KindXSKMap:
		return "xskmap"
	case KindArrayOfMaps:
		return "array_of_maps"
	case KindHashOfMaps:
		return "hash_of_maps"
	default:
		return "unknown"
	}
}

func (k Kind) isPerCPU() bool {
	return k == KindPerCPUHash || k == KindPerCPUArray || k == KindLRUPerCPUHash
}

// Spec describes a map to create. PerCPUSize is set (non-nil) only for a
// per-CPU kind, normalizing spec.md's observation that the source
// toolkit's create_map variants were inconsistent about a percpu flag:
// here every handle either carries a per-CPU slot size or doesn't, with
// no separate boolean to fall out of sync with the kind.
type Spec struct {
	Name       string
	Kind       Kind
	KeySize    uint32
	ValueSize  uint32
	MaxEntries uint32
	Flags      uint32

	// PerCPUSize is the size of one CPU's value slot; ValueSize for a
	// per-CPU spec is the aggregate stride (PerCPUSize * n_cpus), computed
	// by NCPUStride.
	PerCPUSize *uint32

	// InnerTemplateFD names the inner-map template's FD for
	// array_of_maps/hash_of_maps creation; zero for every other kind.
	InnerTemplateFD uint32
}

// Map is an owned handle to a kernel map: a file descriptor, its
// immutable key/value contract, and the syscall bridge used to reach it.
// A Map uniquely owns its FD; Close releases it exactly once.
type Map struct {
	sys   bpfsys.Syscaller
	fd    int
	spec  Spec
	closed bool
}

// Create issues BPF_MAP_CREATE for spec and returns an owned handle.
func Create(sc bpfsys.Syscaller, spec Spec) (*Map, error) {
	if spec.Kind.isPerCPU() && spec.PerCPUSize == nil {
		return nil, fmt.Errorf("bpfmap: %s map requires PerCPUSize", spec.Kind)
	}
	fd, err := sc.MapCreate(bpfsys.MapCreateAttr{
		MapType:    uint32(spec.Kind),
		KeySize:    spec.KeySize,
		ValueSize:  spec.ValueSize,
		MaxEntries: spec.MaxEntries,
		MapFlags:   spec.Flags,
		InnerMapFD: spec.InnerTemplateFD,
		MapName:    spec.Name,
	})
	if err != nil {
		return nil, fmt.Errorf("bpfmap: create %s map %q: %w", spec.Kind, spec.Name, err)
	}
	logrus.WithFields(logrus.Fields{"kind": spec.Kind, "name": spec.Name, "fd": fd}).Debug("bpfmap: map created")
	return &Map{sys: sc, fd: fd, spec: spec}, nil
}

// FromExistingFD wraps an already-open map FD. The kernel does not report
// a pinned or inherited map's key/value sizes, so the caller must supply
// them via spec; fd and spec.InnerTemplateFD are the only Spec fields
// this constructor does not use.
func FromExistingFD(sc bpfsys.Syscaller, fd int, spec Spec) *Map {
	return &Map{sys: sc, fd: fd, spec: spec}
}

// OpenPinned resolves path to a map FD via BPF_OBJ_GET and wraps it,
// again requiring the caller to supply key/value metadata.
func OpenPinned(sc bpfsys.Syscaller, path string, spec Spec) (*Map, error) {
	fd, err := sc.ObjGet(path)
	if err != nil {
		return nil, fmt.Errorf("bpfmap: open pinned map %q: %w", path, err)
	}
	return FromExistingFD(sc, fd, spec), nil
}

// Pin exports the map's FD to path in bpffs; the pin survives Close.
func (m *Map) Pin(path string) error {
	if err := m.sys.ObjPin(m.fd, path); err != nil {
		return fmt.Errorf("bpfmap: pin %q: %w", path, err)
	}
	return nil
}

// Close releases the map's FD. Calling Close more than once is a no-op.
func (m *Map) Close() error {
	if m.closed {
		return nil
	}
	m.closed = true
	return m.sys.CloseFD(m.fd)
}

// FD returns the map's raw file descriptor, for embedding in a
// pseudo-map-fd wide-immediate load.
func (m *Map) FD() int { return m.fd }

// Kind, KeySize, ValueSize, MaxEntries expose the handle's immutable
// contract.
func (m *Map) Kind() Kind          { return m.spec.Kind }
func (m *Map) KeySize() uint32     { return m.spec.KeySize }
func (m *Map) ValueSize() uint32   { return m.spec.ValueSize }
func (m *Map) MaxEntries() uint32  { return m.spec.MaxEntries }
func (m *Map) Name() string        { return m.spec.Name }

// Lookup returns the value for key, or ok=false if the key is absent
// (ENOENT is remapped here rather than surfaced as an error).
func (m *Map) Lookup(key []byte) (value []byte, ok bool, err error) {
	buf := make([]byte, m.spec.ValueSize)
	err = m.sys.MapLookupElem(m.fd, key, buf)
	if bpfsys.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("bpfmap: lookup: %w", err)
	}
	return buf, true, nil
}

// Update creates or replaces the value at key, per policy.
func (m *Map) Update(key, value []byte, policy bpfsys.UpdatePolicy) error {
	if err := m.sys.MapUpdateElem(m.fd, key, value, policy); err != nil {
		return fmt.Errorf("bpfmap: update: %w", err)
	}
	return nil
}

// Delete removes key, returning true iff it was present.
func (m *Map) Delete(key []byte) (bool, error) {
	err := m.sys.MapDeleteElem(m.fd, key)
	if bpfsys.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("bpfmap: delete: %w", err)
	}
	return true, nil
}

// NextKey returns the key that follows key in kernel iteration order, or
// ok=false if key was the last one. A nil seed returns the first key.
func (m *Map) NextKey(key []byte) (next []byte, ok bool, err error) {
	buf := make([]byte, m.spec.KeySize)
	err = m.sys.MapGetNextKey(m.fd, key, buf)
	if bpfsys.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("bpfmap: next key: %w", err)
	}
	return buf, true, nil
}
