// Package bpfsys wraps the single bpf(2) syscall's command family behind a
// small interface, so the map runtime in bpfmap can be exercised against a
// real kernel or an in-memory fake without changing a line of call-site
// code.
package bpfsys

import "fmt"

// Cmd is one of the bpf(2) syscall's first-argument command codes. The
// numbering matches the kernel's enum bpf_cmd exactly.
type Cmd uint32

const (
	CmdMapCreate            Cmd = 0
	CmdMapLookupElem        Cmd = 1
	CmdMapUpdateElem        Cmd = 2
	CmdMapDeleteElem        Cmd = 3
	CmdMapGetNextKey        Cmd = 4
	CmdProgLoad             Cmd = 5
	CmdObjPin               Cmd = 6
	CmdObjGet               Cmd = 7
	CmdMapLookupBatch       Cmd = 24
	CmdMapLookupAndDeleteBatch Cmd = 25
	CmdMapUpdateBatch       Cmd = 26
	CmdMapDeleteBatch       Cmd = 27
	CmdMapLookupAndDeleteElem Cmd = 21
)

// UpdatePolicy selects BPF_MAP_UPDATE_ELEM's create/replace semantics.
type UpdatePolicy uint64

const (
	// Any creates the element if absent, replaces it if present.
	Any UpdatePolicy = 0
	// NoExist fails with EEXIST if the element is already present.
	NoExist UpdatePolicy = 1
	// Exist fails with ENOENT if the element is absent.
	Exist UpdatePolicy = 2
)

// MapCreateAttr mirrors the fields of the kernel's bpf_attr map-create
// union member that this toolkit exercises.
type MapCreateAttr struct {
	MapType    uint32
	KeySize    uint32
	ValueSize  uint32
	MaxEntries uint32
	MapFlags   uint32
	InnerMapFD uint32
	MapName    string
}

// Syscaller is the full surface of bpf(2) operations the map runtime
// needs. LinuxSyscaller implements it against the real kernel; NewFake
// returns an in-process emulation for tests.
type Syscaller interface {
	MapCreate(attr MapCreateAttr) (fd int, err error)
	MapLookupElem(fd int, key, valueOut []byte) error
	MapUpdateElem(fd int, key, value []byte, policy UpdatePolicy) error
	MapDeleteElem(fd int, key []byte) error
	MapGetNextKey(fd int, key []byte, nextOut []byte) error
	MapLookupAndDeleteElem(fd int, key, valueOut []byte) error

	MapLookupBatch(fd int, keys, valuesOut [][]byte) (count int, err error)
	MapUpdateBatch(fd int, keys, values [][]byte, policy UpdatePolicy) (count int, err error)
	MapDeleteBatch(fd int, keys [][]byte) (count int, err error)
	MapLookupAndDeleteBatch(fd int, keys, valuesOut [][]byte) (count int, err error)

	ObjPin(fd int, path string) error
	ObjGet(path string) (fd int, err error)

	CloseFD(fd int) error
}

// Errno is the typed error the map runtime's ENOENT→None/false remapping
// inspects; LinuxSyscaller returns the real syscall errno, NewFake
// synthesizes the same values.
type Errno uintptr

const (
	ErrnoNone   Errno = 0
	ErrnoNoEnt  Errno = 2
	ErrnoExist  Errno = 17
	ErrnoInval  Errno = 22
	ErrnoNoSpc  Errno = 28
)

func (e Errno) Error() string {
	switch e {
	case ErrnoNoEnt:
		return "bpfsys: no such key (ENOENT)"
	case ErrnoExist:
		return "bpfsys: key exists (EEXIST)"
	case ErrnoInval:
		return "bpfsys: invalid argument (EINVAL)"
	case ErrnoNoSpc:
		return "bpfsys: map is full (ENOSPC)"
	default:
		return fmt.Sprintf("bpfsys: errno %d", uintptr(e))
	}
}

// IsNotExist reports whether err represents an ENOENT from a map op.
func IsNotExist(err error) bool {
	e, ok := err.(Errno)
	return ok && e == ErrnoNoEnt
}

// IsExist reports whether err represents an EEXIST from a map op.
func IsExist(err error) bool {
	e, ok := err.(Errno)
	return ok && e == ErrnoExist
}

// IsInvalid reports whether err represents an EINVAL, the signal the map
// runtime's batched operations use to fall back to per-element calls.
func IsInvalid(err error) bool {
	e, ok := err.(Errno)
	return ok && e == ErrnoInval
}
