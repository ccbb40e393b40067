// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package closure expands a root binary's direct library needs into the
// set of in-scope resolved file paths to scan, with at-most-once
// semantics across an entire run.
// Implements: prd002-dependency-closure R1, R3;
//
//	docs/ARCHITECTURE § Closure Collection.
package closure

import (
	"github.com/petar-djukic/glibcscan/pkg/types"
)

// Collect expands name (referenced by referencedBy) through the graph and
// returns the resolved, in-scope paths that still need scanning.
//
// visited is shared across all roots of a run: a path already present was
// fully expanded earlier, so it is neither returned again nor recursed
// into. This is also what breaks dependency cycles. Libraries the graph
// does not know are skipped silently; known libraries without a resolved
// path are recorded as not-found against referencedBy. Scope gates only
// what is scanned: an out-of-scope node contributes nothing itself but
// its children are still explored.
func Collect(referencedBy, name string, graph *types.Resolution, scopes ScopeList, visited map[string]struct{}, errs types.ErrorMap) map[string]struct{} {
	paths := make(map[string]struct{})
	w := &walker{
		graph:   graph,
		scopes:  scopes,
		paths:   paths,
		visited: visited,
		errs:    errs,
		walked:  make(map[string]struct{}),
	}
	w.descend(referencedBy, name)
	return paths
}

type walker struct {
	graph   *types.Resolution
	scopes  ScopeList
	paths   map[string]struct{}
	visited map[string]struct{}
	errs    types.ErrorMap

	// walked guards this walk against cycles that never touch the visited
	// set (nodes filtered out by scope, nodes with no resolved path). It
	// is per-Collect, so out-of-scope subtrees are still re-explored for
	// later roots.
	walked map[string]struct{}
}

func (w *walker) descend(referencedBy, name string) {
	node, ok := w.graph.Libraries[name]
	if !ok {
		// An unresolvable name, unlike an unresolvable path, is not an
		// error: the graph simply never learned about it.
		return
	}
	if _, seen := w.walked[name]; seen {
		return
	}
	w.walked[name] = struct{}{}

	if node.Resolved() {
		if w.scopes.Contains(node.ResolvedPath) {
			_, inPaths := w.paths[node.ResolvedPath]
			_, inVisited := w.visited[node.ResolvedPath]
			if inPaths || inVisited {
				// Already fully expanded earlier in this run.
				return
			}
			w.paths[node.ResolvedPath] = struct{}{}
			w.visited[node.ResolvedPath] = struct{}{}
		}
	} else {
		w.errs.Record(node.DeclaredPath, types.KindNotFound, referencedBy)
		// No resolved location means no children to find.
		return
	}

	for _, needed := range node.Needed {
		w.descend(referencedBy, needed)
	}
}
