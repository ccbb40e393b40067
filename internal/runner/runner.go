// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package runner wires resolution, closure collection, and symbol
// scanning into one run over a set of root binaries.
// Implements: prd001-inspector-interface R2;
//
//	docs/ARCHITECTURE § Run Lifecycle.
package runner

import (
	"errors"
	"sort"

	"github.com/petar-djukic/glibcscan/internal/closure"
	"github.com/petar-djukic/glibcscan/internal/resolve"
	"github.com/petar-djukic/glibcscan/pkg/types"
)

// GraphResolver computes the dependency graph for one root binary.
type GraphResolver interface {
	Resolve(path string) (*types.Resolution, error)
}

// FileScanner extracts requirements from one resolved file.
type FileScanner interface {
	Scan(referencedBy, file string, table types.Table, errs types.ErrorMap)
}

// Deps holds injected dependencies for the runner. Resolver and Scanner
// are interfaces so tests can substitute fakes and count invocations.
type Deps struct {
	Resolver GraphResolver
	Scanner  FileScanner
	Scopes   closure.ScopeList
}

// RunResult holds the accumulated outcome of a Runner.Run invocation.
type RunResult struct {
	Requirements types.Table
	Errors       types.ErrorMap
	RootFailed   bool // True iff a root path itself appears in Errors
}

// Runner orchestrates one scan run. State never outlives a Run call.
type Runner struct {
	deps Deps
}

// NewRunner creates a Runner with the given dependencies.
func NewRunner(deps Deps) *Runner {
	return &Runner{deps: deps}
}

// Run resolves each root path once, expands its direct needs into the
// in-scope closure, and scans every collected file. The visited set, the
// requirement table, and the error map are shared across all roots, so a
// library reachable from several roots is scanned exactly once and all
// findings land in one table. Individual failures are collected, never
// fatal; RootFailed reports the single run-level failure condition.
func (r *Runner) Run(paths []string) *RunResult {
	result := &RunResult{
		Requirements: types.NewTable(),
		Errors:       types.NewErrorMap(),
	}
	visited := make(map[string]struct{})

	for _, path := range paths {
		res, err := r.deps.Resolver.Resolve(path)
		if err != nil {
			result.Errors.Record(path, classifyResolveError(err), path)
			continue
		}

		for _, needed := range res.Needed {
			collected := closure.Collect(path, needed, res, r.deps.Scopes, visited, result.Errors)

			// Sorted scan order keeps output and error accumulation
			// reproducible run-to-run.
			files := make([]string, 0, len(collected))
			for f := range collected {
				files = append(files, f)
			}
			sort.Strings(files)

			for _, f := range files {
				r.deps.Scanner.Scan(needed, f, result.Requirements, result.Errors)
			}
		}
	}

	for _, path := range paths {
		if _, failed := result.Errors[path]; failed {
			result.RootFailed = true
			break
		}
	}
	return result
}

// classifyResolveError maps a resolver failure on a root binary to the
// error kind recorded against that root.
func classifyResolveError(err error) types.ErrorKind {
	if errors.Is(err, resolve.ErrNotELF) {
		return types.KindCannotParse
	}
	return types.KindCannotRead
}
