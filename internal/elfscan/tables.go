// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Implements: prd003-symbol-scan R2 (symbol/string table decoding).
package elfscan

import (
	"bytes"
	"debug/elf"
)

const (
	sym32Size = 16
	sym64Size = 24
)

// symbolTable is one (symbol table, string table) pair pulled out of an
// ELF image: the raw st_name offsets of every entry plus the bytes of the
// linked string table.
type symbolTable struct {
	nameOffsets []uint32
	strings     []byte
}

// symbolTables returns the dynamic and static symbol tables present in f,
// in that order. Either or both may be absent; a section whose bytes
// cannot be read is treated as absent.
func symbolTables(f *elf.File) []symbolTable {
	var tables []symbolTable
	for _, typ := range []elf.SectionType{elf.SHT_DYNSYM, elf.SHT_SYMTAB} {
		if tab, ok := sectionPair(f, typ); ok {
			tables = append(tables, tab)
		}
	}
	return tables
}

// sectionPair locates the section of the given type and its linked string
// table and decodes the entry name offsets.
func sectionPair(f *elf.File, typ elf.SectionType) (symbolTable, bool) {
	sec := f.SectionByType(typ)
	if sec == nil {
		return symbolTable{}, false
	}
	if sec.Link == 0 || sec.Link >= uint32(len(f.Sections)) {
		return symbolTable{}, false
	}
	data, err := sec.Data()
	if err != nil {
		return symbolTable{}, false
	}
	strs, err := f.Sections[sec.Link].Data()
	if err != nil {
		return symbolTable{}, false
	}
	offsets, ok := nameOffsets(f, data)
	if !ok {
		return symbolTable{}, false
	}
	return symbolTable{nameOffsets: offsets, strings: strs}, true
}

// nameOffsets extracts st_name from every symbol entry. st_name is the
// leading 32-bit word of both the 32- and 64-bit entry layouts.
func nameOffsets(f *elf.File, data []byte) ([]uint32, bool) {
	var entSize int
	switch f.Class {
	case elf.ELFCLASS32:
		entSize = sym32Size
	case elf.ELFCLASS64:
		entSize = sym64Size
	default:
		return nil, false
	}
	if len(data)%entSize != 0 {
		return nil, false
	}

	offsets := make([]uint32, 0, len(data)/entSize)
	for off := 0; off < len(data); off += entSize {
		offsets = append(offsets, f.ByteOrder.Uint32(data[off:off+4]))
	}
	return offsets, true
}

// stringAt resolves a string table offset to a NUL-terminated name. It
// fails for out-of-range offsets and unterminated tails.
func stringAt(strs []byte, off uint32) (string, bool) {
	if int64(off) >= int64(len(strs)) {
		return "", false
	}
	end := bytes.IndexByte(strs[off:], 0)
	if end < 0 {
		return "", false
	}
	return string(strs[off : int(off)+end]), true
}
