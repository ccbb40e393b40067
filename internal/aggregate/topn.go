// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package aggregate selects the highest required versions out of a
// requirement table and derives the three report views from it.
// Implements: prd004-version-table R3, R4;
//
//	docs/ARCHITECTURE § Aggregation.
package aggregate

import (
	"sort"

	goversion "github.com/hashicorp/go-version"

	"github.com/petar-djukic/glibcscan/pkg/types"
)

// TopN returns up to n version strings from the table, highest first
// under descending lexicographic string order. This is the historical
// ordering: "2.4" ranks above "2.17" because the comparison is textual,
// not numeric. Pure read; n larger than the table returns everything.
func TopN(t types.Table, n int) []string {
	versions := t.Versions()
	sort.Sort(sort.Reverse(sort.StringSlice(versions)))
	return take(versions, n)
}

// TopNNumeric is the opt-in alternative to TopN that orders versions as
// dot-separated version numbers, so "2.17" ranks above "2.4". Versions
// that do not parse sort after all parseable ones, lexicographically
// descending among themselves.
func TopNNumeric(t types.Table, n int) []string {
	versions := t.Versions()

	parsed := make(map[string]*goversion.Version, len(versions))
	for _, v := range versions {
		if pv, err := goversion.NewVersion(v); err == nil {
			parsed[v] = pv
		}
	}

	sort.SliceStable(versions, func(i, j int) bool {
		pi, okI := parsed[versions[i]]
		pj, okJ := parsed[versions[j]]
		switch {
		case okI && okJ:
			return pi.GreaterThan(pj)
		case okI:
			return true
		case okJ:
			return false
		default:
			return versions[i] > versions[j]
		}
	})
	return take(versions, n)
}

func take(versions []string, n int) []string {
	if n < 0 {
		n = 0
	}
	if n > len(versions) {
		n = len(versions)
	}
	return versions[:n]
}

// FunctionView maps each selected version to its distinct function names,
// discarding file attribution.
func FunctionView(t types.Table, versions []string) map[string][]string {
	view := make(map[string][]string, len(versions))
	for _, v := range versions {
		view[v] = t.Functions(v)
	}
	return view
}

// FileView maps each selected version to its functions and their
// contributing files. Nothing is discarded.
func FileView(t types.Table, versions []string) map[string]map[string][]string {
	view := make(map[string]map[string][]string, len(versions))
	for _, v := range versions {
		functions := make(map[string][]string)
		for _, fn := range t.Functions(v) {
			functions[fn] = t.Files(v, fn)
		}
		view[v] = functions
	}
	return view
}
