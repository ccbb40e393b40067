// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package glibcscan defines the public interface for glibcscan, a library
// that determines which glibc versions a binary and its shared-library
// closure require.
// Implements: prd001-inspector-interface R1, R3, R6;
//
//	docs/ARCHITECTURE § Inspector Interface.
package glibcscan

import (
	"errors"

	"github.com/petar-djukic/glibcscan/pkg/types"
)

// ErrInvalidConfig is returned by New when the configuration cannot be
// used.
var ErrInvalidConfig = errors.New("invalid config")

// Config configures an Inspector instance.
type Config struct {
	Paths        []string // Root binaries to analyze (required)
	Root         string   // Filesystem root for library resolution (default "/")
	LibraryPaths []string // Extra directories probed before the system ones
	Scopes       []string // Path prefixes gating which libraries are scanned (default "/")
}

// Result holds the outcome of an Inspector.Inspect invocation.
type Result struct {
	Requirements types.Table    // version → function → contributing files
	Errors       types.ErrorMap // Per-file failures, merged across referrers
	RootFailed   bool           // True if a requested path itself failed
}

// Inspector analyzes the configured binaries.
type Inspector interface {
	// Inspect resolves each configured path's dependency graph, scans the
	// in-scope closure for versioned symbol requirements, and returns the
	// aggregated result. Per-file failures are collected in the result,
	// not returned as an error.
	Inspect() (*Result, error)
}
