// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package elfscan

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petar-djukic/glibcscan/internal/elftest"
	"github.com/petar-djukic/glibcscan/pkg/types"
)

func TestParseTag(t *testing.T) {
	tests := []struct {
		name   string
		symbol string
		want   types.Requirement
		wantOK bool
	}{
		{
			name:   "versioned symbol",
			symbol: "memcpy@@GLIBC_2.14",
			want:   types.Requirement{Version: "2.14", Function: "memcpy", File: "/lib/libx.so"},
			wantOK: true,
		},
		{
			name:   "dotted patch version",
			symbol: "__libc_start_main@@GLIBC_2.2.5",
			want:   types.Requirement{Version: "2.2.5", Function: "__libc_start_main", File: "/lib/libx.so"},
			wantOK: true,
		},
		{name: "unversioned symbol", symbol: "local_helper"},
		{name: "empty name", symbol: ""},
		{name: "marker appears twice", symbol: "dup@@GLIBC_2.5@@GLIBC_2.6"},
		{name: "different runtime component", symbol: "operator.new@@GLIBCXX_3.4"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := parseTag(tt.symbol, "/lib/libx.so")
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestScanner_MissingFile(t *testing.T) {
	table := types.NewTable()
	errs := types.NewErrorMap()
	path := filepath.Join(t.TempDir(), "nope.so")

	(&Scanner{}).Scan("libref.so", path, table, errs)

	require.Len(t, errs, 1)
	assert.Equal(t, types.KindCannotRead, errs[path].Kind)
	assert.Equal(t, []string{"libref.so"}, errs[path].Referrers())
	assert.Empty(t, table)
}

func TestScanner_NotAnELF(t *testing.T) {
	table := types.NewTable()
	errs := types.NewErrorMap()
	path := filepath.Join(t.TempDir(), "garbage.so")
	require.NoError(t, os.WriteFile(path, []byte("definitely not an elf image"), 0o644))

	(&Scanner{}).Scan("libref.so", path, table, errs)

	require.Len(t, errs, 1)
	assert.Equal(t, types.KindCannotParse, errs[path].Kind)
	assert.Empty(t, table)
}

func TestScanner_ExtractsRequirements(t *testing.T) {
	b := &elftest.Builder{
		DynSymbols: []string{
			"memcpy@@GLIBC_2.14",
			"read@@GLIBC_2.2",
			"local_helper",
			"dup@@GLIBC_2.5@@GLIBC_2.6",
		},
		Symbols: []string{
			"pow@@GLIBC_2.29",
		},
	}
	path := filepath.Join(t.TempDir(), "libx.so")
	require.NoError(t, b.WriteFile(path))

	table := types.NewTable()
	errs := types.NewErrorMap()
	(&Scanner{}).Scan("libref.so", path, table, errs)

	assert.Empty(t, errs)
	// Both the dynamic and the static table contribute.
	assert.Equal(t, []string{"2.14", "2.2", "2.29"}, table.Versions())
	assert.Equal(t, []string{"memcpy"}, table.Functions("2.14"))
	assert.Equal(t, []string{"pow"}, table.Functions("2.29"))
	assert.Equal(t, []string{path}, table.Files("2.2", "read"))
	assert.Nil(t, table.Functions("2.5"), "doubled marker must be dropped silently")
}

func TestScanner_BadNameOffsetRecordsUnknown(t *testing.T) {
	b := &elftest.Builder{
		DynSymbols:     []string{"write@@GLIBC_2.2"},
		BadNameOffsets: []uint32{0xFFFF}, // Far beyond .dynstr
	}
	path := filepath.Join(t.TempDir(), "libbad.so")
	require.NoError(t, b.WriteFile(path))

	table := types.NewTable()
	errs := types.NewErrorMap()
	(&Scanner{}).Scan("libref.so", path, table, errs)

	// The bad entry is recorded but does not abort the scan: the good
	// entry still lands in the table.
	require.Len(t, errs, 1)
	assert.Equal(t, types.KindUnknown, errs[path].Kind)
	assert.Equal(t, []string{"libref.so"}, errs[path].Referrers())
	assert.Equal(t, []string{"2.2"}, table.Versions())
}

func TestScanner_RescanAddsNothing(t *testing.T) {
	b := &elftest.Builder{DynSymbols: []string{"memcpy@@GLIBC_2.14"}}
	path := filepath.Join(t.TempDir(), "libx.so")
	require.NoError(t, b.WriteFile(path))

	table := types.NewTable()
	errs := types.NewErrorMap()
	s := &Scanner{}
	s.Scan("libref.so", path, table, errs)
	s.Scan("libref.so", path, table, errs)

	assert.Equal(t, []string{path}, table.Files("2.14", "memcpy"))
}
