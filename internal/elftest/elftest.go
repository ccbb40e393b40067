// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package elftest builds minimal ELF64 images in memory so scanner and
// resolver tests can run against real, parseable binaries without
// depending on anything installed on the host.
package elftest

import (
	"bytes"
	"encoding/binary"
	"os"
)

const (
	headerSize  = 64
	shentSize   = 64
	symEntSize  = 24
	dynEntSize  = 16
	numSections = 7

	shtNull    = 0
	shtSymtab  = 2
	shtStrtab  = 3
	shtDynamic = 6
	shtDynsym  = 11

	dtNull   = 0
	dtNeeded = 1

	machineX8664 = 62
)

// Builder describes the ELF image to produce. The zero value yields a
// valid empty x86-64 shared object.
type Builder struct {
	Machine        uint16   // ELF machine; defaults to x86-64
	Needed         []string // DT_NEEDED entries
	DynSymbols     []string // Symbol names placed in .dynsym
	Symbols        []string // Symbol names placed in .symtab
	BadNameOffsets []uint32 // Extra .dynsym entries with raw, unchecked st_name values
}

// Bytes assembles the image: ELF header, section header table, then the
// section bodies (.dynsym, .dynstr, .dynamic, .symtab, .strtab,
// .shstrtab).
func (b *Builder) Bytes() []byte {
	machine := b.Machine
	if machine == 0 {
		machine = machineX8664
	}

	dynstr := newStrtab()
	dynsym := buildSymtab(dynstr, b.DynSymbols, b.BadNameOffsets)
	dynamic := buildDynamic(dynstr, b.Needed)

	strtab := newStrtab()
	symtab := buildSymtab(strtab, b.Symbols, nil)

	shstrtab := newStrtab()
	names := make([]uint32, numSections)
	for i, name := range []string{"", ".dynsym", ".dynstr", ".dynamic", ".symtab", ".strtab", ".shstrtab"} {
		if name != "" {
			names[i] = shstrtab.add(name)
		}
	}

	type section struct {
		name    uint32
		typ     uint32
		link    uint32
		entsize uint64
		body    []byte
	}
	sections := []section{
		{},
		{name: names[1], typ: shtDynsym, link: 2, entsize: symEntSize, body: dynsym},
		{name: names[2], typ: shtStrtab, body: dynstr.bytes()},
		{name: names[3], typ: shtDynamic, link: 2, entsize: dynEntSize, body: dynamic},
		{name: names[4], typ: shtSymtab, link: 5, entsize: symEntSize, body: symtab},
		{name: names[5], typ: shtStrtab, body: strtab.bytes()},
		{name: names[6], typ: shtStrtab, body: shstrtab.bytes()},
	}

	var out bytes.Buffer

	// ELF header.
	ident := make([]byte, 16)
	copy(ident, "\x7fELF")
	ident[4] = 2 // ELFCLASS64
	ident[5] = 1 // little endian
	ident[6] = 1 // EV_CURRENT
	out.Write(ident)
	writeU16(&out, 3) // ET_DYN
	writeU16(&out, machine)
	writeU32(&out, 1)          // e_version
	writeU64(&out, 0)          // e_entry
	writeU64(&out, 0)          // e_phoff
	writeU64(&out, headerSize) // e_shoff
	writeU32(&out, 0)          // e_flags
	writeU16(&out, headerSize)
	writeU16(&out, 0) // e_phentsize
	writeU16(&out, 0) // e_phnum
	writeU16(&out, shentSize)
	writeU16(&out, numSections)
	writeU16(&out, numSections-1) // e_shstrndx

	// Section header table. Bodies start right after it.
	offset := uint64(headerSize + numSections*shentSize)
	for _, s := range sections {
		writeU32(&out, s.name)
		writeU32(&out, s.typ)
		writeU64(&out, 0) // sh_flags
		writeU64(&out, 0) // sh_addr
		if s.typ == shtNull {
			writeU64(&out, 0)
		} else {
			writeU64(&out, offset)
		}
		writeU64(&out, uint64(len(s.body)))
		writeU32(&out, s.link)
		writeU32(&out, 0) // sh_info
		writeU64(&out, 1) // sh_addralign
		writeU64(&out, s.entsize)
		offset += uint64(len(s.body))
	}

	for _, s := range sections {
		out.Write(s.body)
	}
	return out.Bytes()
}

// WriteFile writes the image to path with executable permissions.
func (b *Builder) WriteFile(path string) error {
	return os.WriteFile(path, b.Bytes(), 0o755)
}

// buildSymtab produces symbol entries: the mandatory null entry, one
// entry per name, then any raw st_name values verbatim.
func buildSymtab(strs *strtab, names []string, rawOffsets []uint32) []byte {
	var out bytes.Buffer
	out.Write(make([]byte, symEntSize)) // null symbol
	for _, name := range names {
		writeSym(&out, strs.add(name))
	}
	for _, off := range rawOffsets {
		writeSym(&out, off)
	}
	return out.Bytes()
}

func writeSym(out *bytes.Buffer, nameOffset uint32) {
	writeU32(out, nameOffset)
	out.Write(make([]byte, symEntSize-4))
}

// buildDynamic produces DT_NEEDED entries terminated by DT_NULL.
func buildDynamic(strs *strtab, needed []string) []byte {
	var out bytes.Buffer
	for _, name := range needed {
		writeU64(&out, dtNeeded)
		writeU64(&out, uint64(strs.add(name)))
	}
	writeU64(&out, dtNull)
	writeU64(&out, 0)
	return out.Bytes()
}

// strtab accumulates NUL-terminated strings with a leading NUL byte.
type strtab struct {
	buf bytes.Buffer
}

func newStrtab() *strtab {
	s := &strtab{}
	s.buf.WriteByte(0)
	return s
}

func (s *strtab) add(name string) uint32 {
	off := uint32(s.buf.Len())
	s.buf.WriteString(name)
	s.buf.WriteByte(0)
	return off
}

func (s *strtab) bytes() []byte {
	return s.buf.Bytes()
}

func writeU16(out *bytes.Buffer, v uint16) {
	var b [2]byte
	binary.LittleEndian.PutUint16(b[:], v)
	out.Write(b[:])
}

func writeU32(out *bytes.Buffer, v uint32) {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	out.Write(b[:])
}

func writeU64(out *bytes.Buffer, v uint64) {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], v)
	out.Write(b[:])
}
