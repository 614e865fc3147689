package bpfsys

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/unix"
)

// LinuxSyscaller issues real bpf(2) syscalls via golang.org/x/sys/unix,
// the way every BPF-adjacent tool in the ecosystem reaches the kernel when
// it isn't vendoring a full libbpf binding.
type LinuxSyscaller struct{}

// NewLinux returns a Syscaller backed by the real kernel.
func NewLinux() *LinuxSyscaller { return &LinuxSyscaller{} }

func bpfSyscall(cmd Cmd, attr unsafe.Pointer, size uintptr) (uintptr, error) {
	r1, _, errno := unix.Syscall(unix.SYS_BPF, uintptr(cmd), uintptr(attr), size)
	if errno != 0 {
		return 0, Errno(errno)
	}
	return r1, nil
}

type mapCreateAttr struct {
	MapType    uint32
	KeySize    uint32
	ValueSize  uint32
	MaxEntries uint32
	MapFlags   uint32
	InnerMapFD uint32
	MapName    [16]byte
}

func (s *LinuxSyscaller) MapCreate(attr MapCreateAttr) (int, error) {
	var raw mapCreateAttr
	raw.MapType = attr.MapType
	raw.KeySize = attr.KeySize
	raw.ValueSize = attr.ValueSize
	raw.MaxEntries = attr.MaxEntries
	raw.MapFlags = attr.MapFlags
	raw.InnerMapFD = attr.InnerMapFD
	copy(raw.MapName[:], attr.MapName)

	fd, err := bpfSyscall(CmdMapCreate, unsafe.Pointer(&raw), unsafe.Sizeof(raw))
	if err != nil {
		return -1, err
	}
	return int(fd), nil
}

type mapElemAttr struct {
	MapFD uint32
	_     uint32
	Key   uint64
	Value uint64
	Flags uint64
}

func (s *LinuxSyscaller) MapLookupElem(fd int, key, valueOut []byte) error {
	attr := mapElemAttr{
		MapFD: uint32(fd),
		Key:   ptrOf(key),
		Value: ptrOf(valueOut),
	}
	_, err := bpfSyscall(CmdMapLookupElem, unsafe.Pointer(&attr), unsafe.Sizeof(attr))
	return err
}

func (s *LinuxSyscaller) MapUpdateElem(fd int, key, value []byte, policy UpdatePolicy) error {
	attr := mapElemAttr{
		MapFD: uint32(fd),
		Key:   ptrOf(key),
		Value: ptrOf(value),
		Flags: uint64(policy),
	}
	_, err := bpfSyscall(CmdMapUpdateElem, unsafe.Pointer(&attr), unsafe.Sizeof(attr))
	return err
}

func (s *LinuxSyscaller) MapDeleteElem(fd int, key []byte) error {
	attr := mapElemAttr{
		MapFD: uint32(fd),
		Key:   ptrOf(key),
	}
	_, err := bpfSyscall(CmdMapDeleteElem, unsafe.Pointer(&attr), unsafe.Sizeof(attr))
	return err
}

func (s *LinuxSyscaller) MapGetNextKey(fd int, key []byte, nextOut []byte) error {
	attr := mapElemAttr{
		MapFD: uint32(fd),
		Key:   ptrOf(key),
		Value: ptrOf(nextOut), // kernel reuses the "value" slot as next_key's output
	}
	_, err := bpfSyscall(CmdMapGetNextKey, unsafe.Pointer(&attr), unsafe.Sizeof(attr))
	return err
}

func (s *LinuxSyscaller) MapLookupAndDeleteElem(fd int, key, valueOut []byte) error {
	attr := mapElemAttr{
		MapFD: uint32(fd),
		Key:   ptrOf(key),
		Value: ptrOf(valueOut),
	}
	_, err := bpfSyscall(CmdMapLookupAndDeleteElem, unsafe.Pointer(&attr), unsafe.Sizeof(attr))
	return err
}

type mapBatchAttr struct {
	InBatch   uint64
	OutBatch  uint64
	Keys      uint64
	Values    uint64
	Count     uint32
	MapFD     uint32
	ElemFlags uint64
	Flags     uint64
}

func (s *LinuxSyscaller) MapLookupBatch(fd int, keys, valuesOut [][]byte) (int, error) {
	return s.batch(CmdMapLookupBatch, fd, keys, valuesOut, Any)
}

func (s *LinuxSyscaller) MapUpdateBatch(fd int, keys, values [][]byte, policy UpdatePolicy) (int, error) {
	return s.batch(CmdMapUpdateBatch, fd, keys, values, policy)
}

func (s *LinuxSyscaller) MapDeleteBatch(fd int, keys [][]byte) (int, error) {
	return s.batch(CmdMapDeleteBatch, fd, keys, nil, Any)
}

func (s *LinuxSyscaller) MapLookupAndDeleteBatch(fd int, keys, valuesOut [][]byte) (int, error) {
	return s.batch(CmdMapLookupAndDeleteBatch, fd, keys, valuesOut, Any)
}

// batch flattens keys/values into the two contiguous arrays the kernel's
// batch commands expect and issues one syscall for the whole set.
func (s *LinuxSyscaller) batch(cmd Cmd, fd int, keys, values [][]byte, policy UpdatePolicy) (int, error) {
	flatKeys := flatten(keys)
	var flatValues []byte
	if values != nil {
		flatValues = flatten(values)
	}
	attr := mapBatchAttr{
		Keys:      ptrOf(flatKeys),
		Values:    ptrOf(flatValues),
		Count:     uint32(len(keys)),
		MapFD:     uint32(fd),
		ElemFlags: uint64(policy),
	}
	_, err := bpfSyscall(cmd, unsafe.Pointer(&attr), unsafe.Sizeof(attr))
	if err != nil {
		return int(attr.Count), err
	}
	return int(attr.Count), nil
}

func flatten(chunks [][]byte) []byte {
	if len(chunks) == 0 {
		return nil
	}
	width := len(chunks[0])
	out := make([]byte, 0, width*len(chunks))
	for _, c := range chunks {
		out = append(out, c...)
	}
	return out
}

func ptrOf(b []byte) uint64 {
	if len(b) == 0 {
		return 0
	}
	return uint64(uintptr(unsafe.Pointer(&b[0])))
}

type objAttr struct {
	PathName uint64
	BPFFD    uint32
	FileFlags uint32
}

func (s *LinuxSyscaller) ObjPin(fd int, path string) error {
	name := []byte(path + "\x00")
	attr := objAttr{PathName: ptrOf(name), BPFFD: uint32(fd)}
	_, err := bpfSyscall(CmdObjPin, unsafe.Pointer(&attr), unsafe.Sizeof(attr))
	return err
}

func (s *LinuxSyscaller) ObjGet(path string) (int, error) {
	name := []byte(path + "\x00")
	attr := objAttr{PathName: ptrOf(name)}
	fd, err := bpfSyscall(CmdObjGet, unsafe.Pointer(&attr), unsafe.Sizeof(attr))
	if err != nil {
		return -1, err
	}
	return int(fd), nil
}

func (s *LinuxSyscaller) CloseFD(fd int) error {
	if err := unix.Close(fd); err != nil {
		return fmt.Errorf("bpfsys: close fd %d: %w", fd, err)
	}
	return nil
}
