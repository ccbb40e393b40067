// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Implements: prd001-inspector-interface R6 (ErrorKind, ErrorMap).
package types

import "sort"

// ErrorKind classifies why a file could not contribute to the scan.
type ErrorKind int

const (
	// KindUnknown marks a per-entry symbol name lookup failure inside an
	// otherwise readable file. It is surfaced only by the catch-all error
	// report, never by kind-specific filters.
	KindUnknown ErrorKind = iota
	// KindNotFound: the graph knows the library but it has no resolvable
	// on-disk location.
	KindNotFound
	// KindCannotRead: the resolved path exists but its bytes could not be
	// obtained.
	KindCannotRead
	// KindCannotParse: bytes were obtained but ELF decoding failed.
	KindCannotParse
)

func (k ErrorKind) String() string {
	switch k {
	case KindNotFound:
		return "not-found"
	case KindCannotRead:
		return "cannot-read"
	case KindCannotParse:
		return "cannot-parse"
	default:
		return "unknown"
	}
}

// ErrorRecord is the accumulated failure state for a single file path.
// Additional referrers merge into ReferencedBy; the kind recorded first
// wins.
type ErrorRecord struct {
	Kind         ErrorKind
	ReferencedBy map[string]struct{}
}

// Referrers returns the referencing names, sorted ascending.
func (r *ErrorRecord) Referrers() []string {
	names := make([]string, 0, len(r.ReferencedBy))
	for n := range r.ReferencedBy {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// ErrorMap collects per-file failures for one run, keyed by file path.
// One record per failing path regardless of how many edges reach it.
type ErrorMap map[string]*ErrorRecord

// NewErrorMap returns an empty error map.
func NewErrorMap() ErrorMap {
	return make(ErrorMap)
}

// Record notes that referencedBy hit a failure of the given kind at path.
// A second failure for the same path keeps the original kind and only
// extends the referrer set.
func (m ErrorMap) Record(path string, kind ErrorKind, referencedBy string) {
	rec, ok := m[path]
	if !ok {
		rec = &ErrorRecord{Kind: kind, ReferencedBy: make(map[string]struct{})}
		m[path] = rec
	}
	rec.ReferencedBy[referencedBy] = struct{}{}
}

// Paths returns all failing paths, sorted ascending.
func (m ErrorMap) Paths() []string {
	paths := make([]string, 0, len(m))
	for p := range m {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// ByKind returns the failing paths whose record carries the given kind,
// sorted ascending.
func (m ErrorMap) ByKind(kind ErrorKind) []string {
	var paths []string
	for p, rec := range m {
		if rec.Kind == kind {
			paths = append(paths, p)
		}
	}
	sort.Strings(paths)
	return paths
}
