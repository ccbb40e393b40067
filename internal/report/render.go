// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package report renders a finished run: the requirement views as text or
// JSON, and the collected errors filtered by kind.
// Implements: prd005-report-output R2-R4;
//
//	docs/ARCHITECTURE § Reporting.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/petar-djukic/glibcscan/internal/aggregate"
	"github.com/petar-djukic/glibcscan/pkg/types"
)

// Options selects what a view contains and how versions are ordered.
type Options struct {
	Detail   types.DetailLevel
	Versions int  // How many of the highest versions to keep
	Numeric  bool // Order versions numerically instead of lexicographically
}

// View is one detail-level projection of a requirement table, with the
// selected versions kept in rank order for text output.
type View struct {
	detail    types.DetailLevel
	versions  []string
	functions map[string][]string
	files     map[string]map[string][]string
}

// Build selects the top versions from the table and projects them at the
// requested detail level. Build never mutates the table.
func Build(t types.Table, opts Options) *View {
	var versions []string
	if opts.Numeric {
		versions = aggregate.TopNNumeric(t, opts.Versions)
	} else {
		versions = aggregate.TopN(t, opts.Versions)
	}

	v := &View{detail: opts.Detail, versions: versions}
	switch opts.Detail {
	case types.DetailFunction:
		v.functions = aggregate.FunctionView(t, versions)
	case types.DetailFile:
		v.files = aggregate.FileView(t, versions)
	}
	return v
}

// Payload returns the JSON-shaped value for the view: a version array, a
// version → functions object, or a version → function → files object.
func (v *View) Payload() any {
	switch v.detail {
	case types.DetailFunction:
		return v.functions
	case types.DetailFile:
		return v.files
	default:
		return v.versions
	}
}

// JSON serializes the view payload.
func (v *View) JSON(pretty bool) ([]byte, error) {
	if pretty {
		return json.MarshalIndent(v.Payload(), "", "  ")
	}
	return json.Marshal(v.Payload())
}

// WriteText prints the view line by line, versions highest first.
func (v *View) WriteText(w io.Writer) {
	switch v.detail {
	case types.DetailFunction:
		for _, version := range v.versions {
			for _, function := range v.functions[version] {
				fmt.Fprintf(w, "%s => %s\n", version, function)
			}
		}
	case types.DetailFile:
		for _, version := range v.versions {
			for _, function := range sortedKeys(v.files[version]) {
				for _, file := range v.files[version][function] {
					fmt.Fprintf(w, "%s => %s => %s\n", version, function, file)
				}
			}
		}
	default:
		for _, version := range v.versions {
			fmt.Fprintln(w, version)
		}
	}
}

// WriteErrors prints collected errors to w. The catch-all filter uses the
// long key=value form; kind filters use the arrow form and never match
// the unknown kind.
func WriteErrors(w io.Writer, errs types.ErrorMap, filter types.ErrorFilter) {
	switch filter {
	case types.FilterNone:
		return
	case types.FilterAll:
		for _, path := range errs.Paths() {
			rec := errs[path]
			for _, name := range rec.Referrers() {
				fmt.Fprintf(w, "file=%s, reason=%s, referenced_by=%s\n", path, rec.Kind, name)
			}
		}
	default:
		kind, ok := filter.Kind()
		if !ok {
			return
		}
		for _, path := range errs.ByKind(kind) {
			rec := errs[path]
			for _, name := range rec.Referrers() {
				fmt.Fprintf(w, "%s => %s => %s\n", path, rec.Kind, name)
			}
		}
	}
}

func sortedKeys(m map[string][]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
