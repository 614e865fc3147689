// Package event builds fixed-layout descriptors for event structures a BPF
// program assembles field-by-field before handing them to a perf or ring
// buffer, and the typed store instructions that populate them.
package event

import (
	"fmt"

	"go.bpfkit.dev/asm"
)

// FieldType names the storage width of one event field. There is no
// dedicated signedness or structure support — callers needing a signed
// field simply reinterpret the stored bits on the read side, the same way
// the kernel's own tracepoint format does.
type FieldType uint8

const (
	FieldByte  FieldType = iota // 1 byte
	FieldHalf                   // 2 bytes
	FieldWord                   // 4 bytes
	FieldDWord                  // 8 bytes
)

func (t FieldType) size() int {
	switch t {
	case FieldByte:
		return 1
	case FieldHalf:
		return 2
	case FieldWord:
		return 4
	case FieldDWord:
		return 8
	default:
		return 0
	}
}

// Field describes one named member of an event, before offsets are
// assigned.
type Field struct {
	Name string
	Type FieldType
}

type fieldInfo struct {
	offset int
	typ    FieldType
}

// Descriptor is the result of Define: a fixed layout of named fields at
// ascending byte offsets, ready for O(1) lookup by store_field and
// store_imm.
type Descriptor struct {
	name   string
	fields map[string]fieldInfo
	order  []string
	size   int
}

// Define computes each field's offset by ascending accumulation of the
// preceding fields' sizes, in the order given, and returns a Descriptor.
func Define(name string, fields []Field) (*Descriptor, error) {
	d := &Descriptor{
		name:   name,
		fields: make(map[string]fieldInfo, len(fields)),
		order:  make([]string, 0, len(fields)),
	}
	offset := 0
	for _, f := range fields {
		sz := f.Type.size()
		if sz == 0 {
			return nil, fmt.Errorf("event: field %q has unknown type", f.Name)
		}
		if _, dup := d.fields[f.Name]; dup {
			return nil, fmt.Errorf("event: duplicate field %q in event %q", f.Name, name)
		}
		d.fields[f.Name] = fieldInfo{offset: offset, typ: f.Type}
		d.order = append(d.order, f.Name)
		offset += sz
	}
	d.size = offset
	return d, nil
}

// Name returns the event's name, as given to Define.
func (d *Descriptor) Name() string { return d.name }

// Size returns the total byte size of the event, the sum of its fields'
// sizes.
func (d *Descriptor) Size() int { return d.size }

// Fields returns field names in declaration order.
func (d *Descriptor) Fields() []string {
	out := make([]string, len(d.order))
	copy(out, d.order)
	return out
}

// FieldOffset returns the byte offset of the named field within the event.
func (d *Descriptor) FieldOffset(name string) (int, error) {
	f, ok := d.fields[name]
	if !ok {
		return 0, fmt.Errorf("event: no field %q in event %q", name, d.name)
	}
	return f.offset, nil
}

// FieldSize returns the byte width of the named field.
func (d *Descriptor) FieldSize(name string) (int, error) {
	f, ok := d.fields[name]
	if !ok {
		return 0, fmt.Errorf("event: no field %q in event %q", name, d.name)
	}
	return f.typ.size(), nil
}

// FieldType returns the declared type of the named field.
func (d *Descriptor) FieldType(name string) (FieldType, error) {
	f, ok := d.fields[name]
	if !ok {
		return 0, fmt.Errorf("event: no field %q in event %q", name, d.name)
	}
	return f.typ, nil
}

// StoreField emits one stx instruction writing valueReg into the named
// field of the event at eventReg, at the correct offset and width for that
// field's declared type.
func (d *Descriptor) StoreField(eventReg asm.Register, name string, valueReg asm.Register) (asm.Instruction, error) {
	f, err := d.lookup(name)
	if err != nil {
		return asm.Instruction{}, err
	}
	return asm.StoreMemReg(eventReg, int16(f.offset), valueReg, f.typ.size())
}

// StoreImm emits one st instruction writing the immediate imm into the
// named field of the event at eventReg.
func (d *Descriptor) StoreImm(eventReg asm.Register, name string, imm int32) (asm.Instruction, error) {
	f, err := d.lookup(name)
	if err != nil {
		return asm.Instruction{}, err
	}
	return asm.StoreMemImm(eventReg, int16(f.offset), imm, f.typ.size())
}

// Value is either a register (stored with StoreField) or an immediate
// (stored with StoreImm), keyed by field name for StoreFields.
type Value struct {
	Reg   asm.Register
	Imm   int32
	IsImm bool
}

// Reg wraps a register as a Value for StoreFields.
func Reg(r asm.Register) Value { return Value{Reg: r} }

// Imm wraps an immediate as a Value for StoreFields.
func Imm(v int32) Value { return Value{Imm: v, IsImm: true} }

// StoreFields composes StoreField/StoreImm over a whole set of named
// values in one call, returning one instruction per entry. Map iteration
// order is not the emission order; callers needing deterministic output
// order should call StoreField/StoreImm directly.
func (d *Descriptor) StoreFields(eventReg asm.Register, values map[string]Value) ([]asm.Instruction, error) {
	out := make([]asm.Instruction, 0, len(values))
	for name, v := range values {
		var ins asm.Instruction
		var err error
		if v.IsImm {
			ins, err = d.StoreImm(eventReg, name, v.Imm)
		} else {
			ins, err = d.StoreField(eventReg, name, v.Reg)
		}
		if err != nil {
			return nil, err
		}
		out = append(out, ins)
	}
	return out, nil
}

func (d *Descriptor) lookup(name string) (fieldInfo, error) {
	f, ok := d.fields[name]
	if !ok {
		return fieldInfo{}, fmt.Errorf("event: no field %q in event %q", name, d.name)
	}
	return f, nil
}
