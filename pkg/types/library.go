// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package types holds the shared data model for glibcscan: the resolved
// library graph, the requirement table, and the error map.
// Implements: prd001-inspector-interface R5;
//
//	docs/ARCHITECTURE § Data Model.
package types

// LibraryNode is one resolved entry in a dependency graph. Nodes are
// produced by the resolver and read-only everywhere else.
type LibraryNode struct {
	Name         string   // Name as it appears in a DT_NEEDED list
	DeclaredPath string   // Path as recorded at link time (or the bare name if never located)
	ResolvedPath string   // On-disk location after symlink resolution; empty if resolution failed
	Needed       []string // Library names this node itself requires, in DT_NEEDED order
}

// Resolved reports whether the node was located on disk.
func (n LibraryNode) Resolved() bool {
	return n.ResolvedPath != ""
}

// Resolution is the dependency graph computed for one root binary: the
// root's direct needs plus a name-keyed map covering the full transitive
// closure the resolver could reach.
type Resolution struct {
	Needed    []string               // Direct DT_NEEDED entries of the root
	Libraries map[string]LibraryNode // Library name → resolved node
}
