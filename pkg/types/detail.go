// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Implements: prd005-report-output R1 (DetailLevel, OutputFormat, ErrorFilter).
package types

import "fmt"

// DetailLevel selects how much of the requirement table a report exposes.
type DetailLevel int

const (
	DetailVersion  DetailLevel = iota // Selected version strings only
	DetailFunction                    // Versions with their function names
	DetailFile                        // Full version → function → files detail
)

func (d DetailLevel) String() string {
	switch d {
	case DetailFunction:
		return "function"
	case DetailFile:
		return "file"
	default:
		return "version"
	}
}

// ParseDetailLevel maps a CLI string to a DetailLevel.
func ParseDetailLevel(s string) (DetailLevel, error) {
	switch s {
	case "version":
		return DetailVersion, nil
	case "function":
		return DetailFunction, nil
	case "file":
		return DetailFile, nil
	}
	return DetailVersion, fmt.Errorf("invalid detail level %q (want version, function, or file)", s)
}

// OutputFormat selects the stdout rendering.
type OutputFormat int

const (
	FormatText OutputFormat = iota
	FormatJSON
)

func (f OutputFormat) String() string {
	if f == FormatJSON {
		return "json"
	}
	return "text"
}

// ParseOutputFormat maps a CLI string to an OutputFormat.
func ParseOutputFormat(s string) (OutputFormat, error) {
	switch s {
	case "text":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	}
	return FormatText, fmt.Errorf("invalid output format %q (want text or json)", s)
}

// ErrorFilter selects which collected errors the CLI prints to stderr.
// The unknown kind has no filter of its own; it is only visible through
// FilterAll.
type ErrorFilter int

const (
	FilterAll ErrorFilter = iota
	FilterNone
	FilterNotFound
	FilterCannotRead
	FilterCannotParse
)

func (f ErrorFilter) String() string {
	switch f {
	case FilterNone:
		return "none"
	case FilterNotFound:
		return "not-found"
	case FilterCannotRead:
		return "cannot-read"
	case FilterCannotParse:
		return "cannot-parse"
	default:
		return "all"
	}
}

// Kind returns the ErrorKind a kind-specific filter selects. The second
// return is false for FilterAll and FilterNone.
func (f ErrorFilter) Kind() (ErrorKind, bool) {
	switch f {
	case FilterNotFound:
		return KindNotFound, true
	case FilterCannotRead:
		return KindCannotRead, true
	case FilterCannotParse:
		return KindCannotParse, true
	}
	return KindUnknown, false
}

// ParseErrorFilter maps a CLI string to an ErrorFilter.
func ParseErrorFilter(s string) (ErrorFilter, error) {
	switch s {
	case "all":
		return FilterAll, nil
	case "none":
		return FilterNone, nil
	case "not-found":
		return FilterNotFound, nil
	case "cannot-read":
		return FilterCannotRead, nil
	case "cannot-parse":
		return FilterCannotParse, nil
	}
	return FilterAll, fmt.Errorf("invalid error filter %q (want all, none, not-found, cannot-read, or cannot-parse)", s)
}
