// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package resolve computes the shared-library dependency graph for a root
// binary: its direct DT_NEEDED entries and a name-keyed map of resolved
// nodes covering the reachable closure. Resolution probes a fixed set of
// library directories under a configurable root; it deliberately does not
// emulate RPATH/RUNPATH/LD_LIBRARY_PATH precedence.
// Implements: prd002-dependency-closure R4;
//
//	docs/ARCHITECTURE § Graph Resolution.
package resolve

import (
	"bytes"
	"debug/elf"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/petar-djukic/glibcscan/pkg/types"
)

// ErrNotELF is returned when the root binary's bytes could be read but do
// not decode as an ELF image.
var ErrNotELF = errors.New("not an ELF binary")

// systemLibraryDirs is the conventional set of distribution library
// locations, probed after any user-supplied paths.
var systemLibraryDirs = []string{
	"/lib",
	"/lib64",
	"/usr/lib",
	"/usr/lib64",
	"/usr/lib/x86_64-linux-gnu",
	"/usr/lib/i386-linux-gnu",
	"/usr/lib32",
}

// Resolver locates shared libraries under Root. LibraryPaths are probed
// first, in order, then the system directories; all are interpreted as
// paths inside Root.
type Resolver struct {
	Root         string
	LibraryPaths []string
}

// New returns a Resolver rooted at root. An empty root means "/".
func New(root string, libraryPaths []string) *Resolver {
	if root == "" {
		root = "/"
	}
	return &Resolver{Root: root, LibraryPaths: libraryPaths}
}

// Resolve reads the root binary at path and expands its needed-library
// names breadth-first into a Resolution. Every name ever seen gets a node;
// names that cannot be located become nodes without a resolved path so the
// caller can report them. Resolve is deterministic for a fixed filesystem
// state.
func (r *Resolver) Resolve(path string) (*types.Resolution, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	f, err := elf.NewFile(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrNotELF, path, err)
	}

	needed, err := f.ImportedLibraries()
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrNotELF, path, err)
	}

	res := &types.Resolution{
		Needed:    needed,
		Libraries: make(map[string]types.LibraryNode),
	}

	queue := append([]string(nil), needed...)
	for len(queue) > 0 {
		name := queue[0]
		queue = queue[1:]
		if _, done := res.Libraries[name]; done {
			continue
		}

		node := r.locate(name, f.Machine, f.Class)
		res.Libraries[name] = node
		queue = append(queue, node.Needed...)
	}

	return res, nil
}

// locate probes the search directories for name, requiring a regular file
// that decodes as an ELF of the same machine and class as the root.
func (r *Resolver) locate(name string, machine elf.Machine, class elf.Class) types.LibraryNode {
	for _, dir := range append(append([]string(nil), r.LibraryPaths...), systemLibraryDirs...) {
		candidate := filepath.Join(r.Root, dir, name)

		st, err := os.Stat(candidate)
		if err != nil || !st.Mode().IsRegular() {
			continue
		}
		f, err := elf.Open(candidate)
		if err != nil {
			continue
		}
		if f.Machine != machine || f.Class != class {
			f.Close()
			continue
		}
		needed, err := f.ImportedLibraries()
		f.Close()
		if err != nil {
			continue
		}

		resolved, err := filepath.EvalSymlinks(candidate)
		if err != nil {
			resolved = candidate
		}
		return types.LibraryNode{
			Name:         name,
			DeclaredPath: candidate,
			ResolvedPath: resolved,
			Needed:       needed,
		}
	}

	// Never located: keep the bare name as the declared path so error
	// reports have something to show.
	return types.LibraryNode{Name: name, DeclaredPath: name}
}
