// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Implements: prd004-version-table R1, R2.
package types

import "sort"

// Requirement is one versioned-symbol requirement extracted from a symbol
// table entry: File references Function and needs at least glibc Version.
type Requirement struct {
	Version  string // Raw version tag, e.g. "2.14"
	Function string // Symbol name with the version marker stripped
	File     string // Resolved path of the binary containing the symbol
}

// Table aggregates requirements as version → function → set of
// contributing files. It grows monotonically during a run and absorbs
// duplicate insertions (set semantics at the file level).
type Table map[string]map[string]map[string]struct{}

// NewTable returns an empty requirement table.
func NewTable() Table {
	return make(Table)
}

// Add inserts one requirement. Inserting the same triple twice is a no-op.
func (t Table) Add(r Requirement) {
	functions, ok := t[r.Version]
	if !ok {
		functions = make(map[string]map[string]struct{})
		t[r.Version] = functions
	}
	files, ok := functions[r.Function]
	if !ok {
		files = make(map[string]struct{})
		functions[r.Function] = files
	}
	files[r.File] = struct{}{}
}

// Versions returns all distinct version strings, sorted ascending.
func (t Table) Versions() []string {
	versions := make([]string, 0, len(t))
	for v := range t {
		versions = append(versions, v)
	}
	sort.Strings(versions)
	return versions
}

// Functions returns the distinct function names recorded under a version,
// sorted ascending. Unknown versions yield nil.
func (t Table) Functions(version string) []string {
	functions := make([]string, 0, len(t[version]))
	for f := range t[version] {
		functions = append(functions, f)
	}
	sort.Strings(functions)
	if len(functions) == 0 {
		return nil
	}
	return functions
}

// Files returns the contributing file paths for one version/function pair,
// sorted ascending. Unknown pairs yield nil.
func (t Table) Files(version, function string) []string {
	files := make([]string, 0, len(t[version][function]))
	for f := range t[version][function] {
		files = append(files, f)
	}
	sort.Strings(files)
	if len(files) == 0 {
		return nil
	}
	return files
}
