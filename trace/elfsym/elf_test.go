package elfsym

import (
	"encoding/binary"
	"testing"
)

// buildMinimalELF64 assembles a tiny well-formed little-endian ELF64
// image with one .symtab section containing the given symbols, entirely
// in memory — just enough structure for Parse to walk.
func buildMinimalELF64(t *testing.T, symbols []Symbol) []byte {
	t.Helper()

	order := binary.LittleEndian

	// Layout: [64-byte ehdr][strtab][symtab][shstrtab][3 section headers]
	var strtab []byte
	strtab = append(strtab, 0) // index 0 is always the empty string
	symOffsets := make([]uint32, len(symbols))
	for i, s := range symbols {
		symOffsets[i] = uint32(len(strtab))
		strtab = append(strtab, []byte(s.Name)...)
		strtab = append(strtab, 0)
	}

	var symtab []byte
	// Null symbol entry, required at index 0.
	symtab = append(symtab, make([]byte, symEntSize64)...)
	for i, s := range symbols {
		row := make([]byte, symEntSize64)
		order.PutUint32(row[0:4], symOffsets[i])
		row[4] = s.Type // st_info: low 4 bits = type, bind = 0
		row[5] = 0
		order.PutUint16(row[6:8], s.Shndx)
		order.PutUint64(row[8:16], s.Value)
		order.PutUint64(row[16:24], s.Size)
		symtab = append(symtab, row...)
	}

	shstrtab := []byte{0}
	shstrtab = append(shstrtab, []byte(".strtab\x00.symtab\x00.shstrtab\x00")...)
	strtabNameOff := uint32(1)
	symtabNameOff := uint32(1 + len(".strtab\x00"))
	shstrtabNameOff := uint32(1 + len(".strtab\x00") + len(".symtab\x00"))

	const ehdrSize = 64
	strtabOff := uint64(ehdrSize)
	symtabOff := strtabOff + uint64(len(strtab))
	shstrtabOff := symtabOff + uint64(len(symtab))
	shoff := shstrtabOff + uint64(len(shstrtab))

	writeShdr := func(buf []byte, nameOff, typ uint32, offset, size uint64, link uint32) []byte {
		row := make([]byte, shdrEntSize)
		order.PutUint32(row[0:4], nameOff)
		order.PutUint32(row[4:8], typ)
		// flags (8) left zero
		// addr (8) left zero
		order.PutUint64(row[24:32], offset)
		order.PutUint64(row[32:40], size)
		order.PutUint32(row[40:44], link)
		// info, addralign, entsize left zero
		return append(buf, row...)
	}

	var shdrs []byte
	shdrs = writeShdr(shdrs, 0, 0, 0, 0, 0) // null section
	strtabSecIdx := 1
	shdrs = writeShdr(shdrs, strtabNameOff, 3 /* SHT_STRTAB */, strtabOff, uint64(len(strtab)), 0)
	shdrs = writeShdr(shdrs, symtabNameOff, shtSymTab, symtabOff, uint64(len(symtab)), uint32(strtabSecIdx))
	shdrs = writeShdr(shdrs, shstrtabNameOff, 3, shstrtabOff, uint64(len(shstrtab)), 0)

	ehdr := make([]byte, ehdrSize)
	ehdr[0], ehdr[1], ehdr[2], ehdr[3] = 0x7F, 'E', 'L', 'F'
	ehdr[4] = 2 // ELFCLASS64
	ehdr[5] = 1 // little-endian
	order.PutUint64(ehdr[ehdrShoffOff:], shoff)
	order.PutUint16(ehdr[ehdrShentsizOff:], shdrEntSize)
	order.PutUint16(ehdr[ehdrShnumOff:], 4) // null + strtab + symtab + shstrtab
	order.PutUint16(ehdr[ehdrShstrndxOff:], 3)

	var out []byte
	out = append(out, ehdr...)
	out = append(out, strtab...)
	out = append(out, symtab...)
	out = append(out, shstrtab...)
	out = append(out, shdrs...)
	return out
}

func TestResolveSymbolFindsKnownValue(t *testing.T) {
	image := buildMinimalELF64(t, []Symbol{
		{Name: "tcp_v4_connect", Value: 0xdeadbeef, Type: symTypeFunc, Shndx: 1},
	})
	bin, err := ParseBytes("test.elf", image)
	if err != nil {
		t.Fatalf("ParseBytes: %v", err)
	}
	value, ok := bin.ResolveSymbol("tcp_v4_connect")
	if !ok {
		t.Fatal("expected to resolve tcp_v4_connect")
	}
	if value != 0xdeadbeef {
		t.Errorf("value = %#x, want %#x", value, 0xdeadbeef)
	}
}

func TestResolveSymbolAbsentReturnsFalse(t *testing.T) {
	image := buildMinimalELF64(t, []Symbol{
		{Name: "some_func", Value: 0x1000, Type: symTypeFunc},
	})
	bin, err := ParseBytes("test.elf", image)
	if err != nil {
		t.Fatalf("ParseBytes: %v", err)
	}
	if _, ok := bin.ResolveSymbol("does_not_exist"); ok {
		t.Error("expected no match for an absent symbol")
	}
}

func TestParseRejectsBadMagicWithoutPanic(t *testing.T) {
	image := make([]byte, 64)
	copy(image, "not an elf file at all..........")
	if _, err := ParseBytes("bad.elf", image); err == nil {
		t.Error("expected an error for bad magic")
	}
}

func TestParseRejects32Bit(t *testing.T) {
	image := make([]byte, 64)
	image[0], image[1], image[2], image[3] = 0x7F, 'E', 'L', 'F'
	image[4] = 1 // ELFCLASS32
	image[5] = 1
	if _, err := ParseBytes("bad32.elf", image); err == nil {
		t.Error("expected an error for a 32-bit class byte")
	}
}

func TestParseRejectsBadEndianMarker(t *testing.T) {
	image := make([]byte, 64)
	image[0], image[1], image[2], image[3] = 0x7F, 'E', 'L', 'F'
	image[4] = 2
	image[5] = 9 // neither 1 (LE) nor 2 (BE)
	if _, err := ParseBytes("badendian.elf", image); err == nil {
		t.Error("expected an error for an unrecognized endianness byte")
	}
}
