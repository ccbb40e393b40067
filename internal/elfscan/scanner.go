// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package elfscan extracts versioned glibc symbol requirements from ELF
// binaries.
// Implements: prd003-symbol-scan R1, R3;
//
//	docs/ARCHITECTURE § Symbol Scanning.
package elfscan

import (
	"bytes"
	"debug/elf"
	"os"
	"strings"

	"github.com/petar-djukic/glibcscan/pkg/types"
)

// versionMarker tags a symbol with the glibc release that defines it,
// e.g. "memcpy@@GLIBC_2.14".
const versionMarker = "@@GLIBC_"

// Scanner reads ELF files and feeds their versioned symbol requirements
// into a shared requirement table.
type Scanner struct{}

// Scan decodes file and records every requirement it declares into table.
// Failures never abort the run: an unreadable file records cannot-read, an
// undecodable one cannot-parse, and a bad string table offset inside an
// otherwise good file records the unknown kind for that entry and moves
// on. All records are attributed to referencedBy.
func (s *Scanner) Scan(referencedBy, file string, table types.Table, errs types.ErrorMap) {
	data, err := os.ReadFile(file)
	if err != nil {
		errs.Record(file, types.KindCannotRead, referencedBy)
		return
	}

	f, err := elf.NewFile(bytes.NewReader(data))
	if err != nil {
		errs.Record(file, types.KindCannotParse, referencedBy)
		return
	}

	for _, tab := range symbolTables(f) {
		for _, off := range tab.nameOffsets {
			name, ok := stringAt(tab.strings, off)
			if !ok {
				errs.Record(file, types.KindUnknown, referencedBy)
				continue
			}
			if req, ok := parseTag(name, file); ok {
				table.Add(req)
			}
		}
	}
}

// parseTag splits a symbol name on the version marker. Names without the
// marker carry no requirement; names where the marker appears more than
// once are malformed and dropped silently.
func parseTag(name, file string) (types.Requirement, bool) {
	if name == "" || !strings.Contains(name, versionMarker) {
		return types.Requirement{}, false
	}
	parts := strings.Split(name, versionMarker)
	if len(parts) != 2 {
		return types.Requirement{}, false
	}
	return types.Requirement{
		Version:  parts[1],
		Function: parts[0],
		File:     file,
	}, true
}
