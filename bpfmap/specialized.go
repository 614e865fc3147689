package bpfmap

import "go.bpfkit.dev/bpfmap/bpfsys"

// NewDevMap creates a devmap, keyed by an arbitrary index and holding
// network interface indices (4-byte key, 4-byte value) for XDP_REDIRECT.
func NewDevMap(sc bpfsys.Syscaller, name string, maxEntries uint32) (*Map, error) {
	return Create(sc, Spec{Name: name, Kind: KindDevMap, KeySize: 4, ValueSize: 4, MaxEntries: maxEntries})
}

// NewDevMapHash is DevMap's hash-keyed sibling.
func NewDevMapHash(sc bpfsys.Syscaller, name string, maxEntries uint32) (*Map, error) {
	return Create(sc, Spec{Name: name, Kind: KindDevMapHash, KeySize: 4, ValueSize: 4, MaxEntries: maxEntries})
}

// NewCPUMap creates a cpumap, keyed by CPU index and holding per-CPU
// queue-size records (4-byte key, 4-byte value: the ring size).
func NewCPUMap(sc bpfsys.Syscaller, name string, maxEntries uint32) (*Map, error) {
	return Create(sc, Spec{Name: name, Kind: KindCPUMap, KeySize: 4, ValueSize: 4, MaxEntries: maxEntries})
}

// NewSockMap creates a sockmap, keyed by an arbitrary index and holding
// socket FDs, for SK_SKB/SK_MSG stream redirect.
func NewSockMap(sc bpfsys.Syscaller, name string, maxEntries uint32) (*Map, error) {
	return Create(sc, Spec{Name: name, Kind: KindSockMap, KeySize: 4, ValueSize: 4, MaxEntries: maxEntries})
}

// NewSockHash is SockMap's hash-keyed sibling, commonly keyed by a
// 4-tuple struct the caller defines.
func NewSockHash(sc bpfsys.Syscaller, name string, keySize, maxEntries uint32) (*Map, error) {
	return Create(sc, Spec{Name: name, Kind: KindSockHash, KeySize: keySize, ValueSize: 4, MaxEntries: maxEntries})
}

// NewXSKMap creates an xskmap, keyed by RX queue index and holding
// AF_XDP socket FDs.
func NewXSKMap(sc bpfsys.Syscaller, name string, maxEntries uint32) (*Map, error) {
	return Create(sc, Spec{Name: name, Kind: KindXSKMap, KeySize: 4, ValueSize: 4, MaxEntries: maxEntries})
}
