// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Implements: prd006-cli R2.1-R2.8.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/petar-djukic/glibcscan/internal/report"
	"github.com/petar-djukic/glibcscan/pkg/glibcscan"
	"github.com/petar-djukic/glibcscan/pkg/types"
)

// newScanCmd creates the "scan" command.
func newScanCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "scan PATH...",
		Short: "Analyze one or more binaries",
		Long:  "Scan resolves each binary's shared-library closure, extracts the versioned glibc symbol requirements, and prints the highest required versions.",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runScan,
	}
}

// runScan executes the analysis and renders the report.
func runScan(cmd *cobra.Command, args []string) error {
	detail, err := types.ParseDetailLevel(viper.GetString("detail-level"))
	if err != nil {
		return err
	}
	format, err := types.ParseOutputFormat(viper.GetString("stdout"))
	if err != nil {
		return err
	}
	filter, err := types.ParseErrorFilter(viper.GetString("print-error"))
	if err != nil {
		return err
	}

	inspector, err := glibcscan.New(glibcscan.Config{
		Paths:        args,
		Root:         viper.GetString("root"),
		LibraryPaths: viper.GetStringSlice("ld-library-path"),
		Scopes:       viper.GetStringSlice("scope"),
	})
	if err != nil {
		return fmt.Errorf("initialization failed: %w", err)
	}

	result, err := inspector.Inspect()
	if err != nil {
		return err
	}

	view := report.Build(result.Requirements, report.Options{
		Detail:   detail,
		Versions: viper.GetInt("versions"),
		Numeric:  viper.GetBool("numeric-versions"),
	})

	if format == types.FormatText {
		view.WriteText(os.Stdout)
	}

	if saveTo := viper.GetString("save-json-to"); saveTo != "" || format == types.FormatJSON {
		out, err := view.JSON(viper.GetBool("pretty-json"))
		if err != nil {
			return fmt.Errorf("marshaling result: %w", err)
		}
		if saveTo != "" {
			if err := os.WriteFile(saveTo, out, 0o644); err != nil {
				return fmt.Errorf("saving json: %w", err)
			}
		}
		if format == types.FormatJSON {
			fmt.Println(string(out))
		}
	}

	report.WriteErrors(os.Stderr, result.Errors, filter)

	if result.RootFailed {
		return fmt.Errorf("one or more input paths could not be analyzed")
	}
	return nil
}
