// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Implements: prd002-dependency-closure R2 (scope filtering).
package closure

import (
	"path/filepath"
	"strings"
)

// ScopeList is a set of filesystem path prefixes. A resolved library is in
// scope iff its path starts with at least one prefix, matched on whole
// path components.
type ScopeList []string

// NewScopeList cleans the given prefixes into a ScopeList.
func NewScopeList(prefixes []string) ScopeList {
	scopes := make(ScopeList, 0, len(prefixes))
	for _, p := range prefixes {
		if p == "" {
			continue
		}
		scopes = append(scopes, filepath.Clean(p))
	}
	return scopes
}

// Contains reports whether path falls under any scope prefix.
func (s ScopeList) Contains(path string) bool {
	for _, prefix := range s {
		if hasPathPrefix(path, prefix) {
			return true
		}
	}
	return false
}

// hasPathPrefix matches prefix against path on component boundaries, so
// "/usr/li" does not cover "/usr/lib/libc.so.6".
func hasPathPrefix(path, prefix string) bool {
	path = filepath.Clean(path)
	if prefix == string(filepath.Separator) {
		return strings.HasPrefix(path, prefix)
	}
	return path == prefix || strings.HasPrefix(path, prefix+string(filepath.Separator))
}
