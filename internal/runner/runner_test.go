// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package runner

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petar-djukic/glibcscan/internal/closure"
	"github.com/petar-djukic/glibcscan/internal/resolve"
	"github.com/petar-djukic/glibcscan/pkg/types"
)

// fakeResolver serves canned graphs per root path.
type fakeResolver struct {
	graphs map[string]*types.Resolution
	errs   map[string]error
}

func (f *fakeResolver) Resolve(path string) (*types.Resolution, error) {
	if err, ok := f.errs[path]; ok {
		return nil, err
	}
	g, ok := f.graphs[path]
	if !ok {
		return nil, fmt.Errorf("reading %s: no such file", path)
	}
	return g, nil
}

// countingScanner records every scan and emits one canned requirement per
// file.
type countingScanner struct {
	scans    map[string]int
	emit     map[string]types.Requirement
	emitErrs map[string]types.ErrorKind
}

func newCountingScanner() *countingScanner {
	return &countingScanner{
		scans:    make(map[string]int),
		emit:     make(map[string]types.Requirement),
		emitErrs: make(map[string]types.ErrorKind),
	}
}

func (c *countingScanner) Scan(referencedBy, file string, table types.Table, errs types.ErrorMap) {
	c.scans[file]++
	if req, ok := c.emit[file]; ok {
		table.Add(req)
	}
	if kind, ok := c.emitErrs[file]; ok {
		errs.Record(file, kind, referencedBy)
	}
}

func diamondGraph() *types.Resolution {
	return &types.Resolution{
		Needed: []string{"libb.so", "libc.so"},
		Libraries: map[string]types.LibraryNode{
			"libb.so": {Name: "libb.so", DeclaredPath: "/lib/libb.so", ResolvedPath: "/lib/libb.so", Needed: []string{"libd.so"}},
			"libc.so": {Name: "libc.so", DeclaredPath: "/lib/libc.so", ResolvedPath: "/lib/libc.so", Needed: []string{"libd.so"}},
			"libd.so": {Name: "libd.so", DeclaredPath: "/lib/libd.so", ResolvedPath: "/lib/libd.so"},
		},
	}
}

func TestRun_DiamondEndToEnd(t *testing.T) {
	scanner := newCountingScanner()
	scanner.emit["/lib/libd.so"] = types.Requirement{Version: "2.5", Function: "foo", File: "/lib/libd.so"}

	r := NewRunner(Deps{
		Resolver: &fakeResolver{graphs: map[string]*types.Resolution{"/bin/a": diamondGraph()}},
		Scanner:  scanner,
		Scopes:   closure.NewScopeList([]string{"/"}),
	})

	result := r.Run([]string{"/bin/a"})

	// Each closure member scanned exactly once, the shared dependency
	// included; the root binary itself is not scanned.
	assert.Equal(t, map[string]int{
		"/lib/libb.so": 1,
		"/lib/libc.so": 1,
		"/lib/libd.so": 1,
	}, scanner.scans)

	assert.Equal(t, []string{"2.5"}, result.Requirements.Versions())
	assert.Equal(t, []string{"foo"}, result.Requirements.Functions("2.5"))
	assert.Equal(t, []string{"/lib/libd.so"}, result.Requirements.Files("2.5", "foo"))
	assert.Empty(t, result.Errors)
	assert.False(t, result.RootFailed)
}

func TestRun_SharedLibraryAcrossRoots(t *testing.T) {
	shared := &types.Resolution{
		Needed: []string{"libd.so"},
		Libraries: map[string]types.LibraryNode{
			"libd.so": {Name: "libd.so", DeclaredPath: "/lib/libd.so", ResolvedPath: "/lib/libd.so"},
		},
	}
	scanner := newCountingScanner()
	r := NewRunner(Deps{
		Resolver: &fakeResolver{graphs: map[string]*types.Resolution{"/bin/a": shared, "/bin/b": shared}},
		Scanner:  scanner,
		Scopes:   closure.NewScopeList([]string{"/"}),
	})

	result := r.Run([]string{"/bin/a", "/bin/b"})

	assert.Equal(t, map[string]int{"/lib/libd.so": 1}, scanner.scans,
		"visited set must span all roots of one run")
	assert.False(t, result.RootFailed)
}

func TestRun_RootResolveFailure(t *testing.T) {
	scanner := newCountingScanner()
	r := NewRunner(Deps{
		Resolver: &fakeResolver{
			graphs: map[string]*types.Resolution{"/bin/good": diamondGraph()},
			errs: map[string]error{
				"/bin/broken": fmt.Errorf("%w: /bin/broken: bad magic", resolve.ErrNotELF),
			},
		},
		Scanner: scanner,
		Scopes:  closure.NewScopeList([]string{"/"}),
	})

	result := r.Run([]string{"/bin/broken", "/bin/good"})

	// The broken root is recorded and the run keeps going.
	require.Contains(t, result.Errors, "/bin/broken")
	assert.Equal(t, types.KindCannotParse, result.Errors["/bin/broken"].Kind)
	assert.Equal(t, []string{"/bin/broken"}, result.Errors["/bin/broken"].Referrers())
	assert.True(t, result.RootFailed)
	assert.Equal(t, 3, len(scanner.scans), "the healthy root is still analyzed")
}

func TestRun_RootReadFailureClassifiedCannotRead(t *testing.T) {
	r := NewRunner(Deps{
		Resolver: &fakeResolver{errs: map[string]error{"/bin/gone": fmt.Errorf("reading /bin/gone: no such file")}},
		Scanner:  newCountingScanner(),
		Scopes:   closure.NewScopeList([]string{"/"}),
	})

	result := r.Run([]string{"/bin/gone"})

	require.Contains(t, result.Errors, "/bin/gone")
	assert.Equal(t, types.KindCannotRead, result.Errors["/bin/gone"].Kind)
	assert.True(t, result.RootFailed)
}

func TestRun_LibraryFailureDoesNotFailRun(t *testing.T) {
	scanner := newCountingScanner()
	scanner.emitErrs["/lib/libb.so"] = types.KindCannotParse

	r := NewRunner(Deps{
		Resolver: &fakeResolver{graphs: map[string]*types.Resolution{"/bin/a": diamondGraph()}},
		Scanner:  scanner,
		Scopes:   closure.NewScopeList([]string{"/"}),
	})

	result := r.Run([]string{"/bin/a"})

	require.Contains(t, result.Errors, "/lib/libb.so")
	assert.False(t, result.RootFailed, "only failing root paths fail the run")
}

func TestRun_ScopeLimitsScanning(t *testing.T) {
	g := &types.Resolution{
		Needed: []string{"libout.so"},
		Libraries: map[string]types.LibraryNode{
			"libout.so": {Name: "libout.so", DeclaredPath: "/opt/libout.so", ResolvedPath: "/opt/libout.so", Needed: []string{"libin.so"}},
			"libin.so":  {Name: "libin.so", DeclaredPath: "/usr/lib/libin.so", ResolvedPath: "/usr/lib/libin.so"},
		},
	}
	scanner := newCountingScanner()
	r := NewRunner(Deps{
		Resolver: &fakeResolver{graphs: map[string]*types.Resolution{"/bin/a": g}},
		Scanner:  scanner,
		Scopes:   closure.NewScopeList([]string{"/usr"}),
	})

	r.Run([]string{"/bin/a"})

	assert.Equal(t, map[string]int{"/usr/lib/libin.so": 1}, scanner.scans,
		"out-of-scope libraries are traversed but never scanned")
}
