// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Command glibcscan reports the glibc versions a binary and its
// shared-library closure require.
// Implements: prd006-cli R1.1-R1.10;
//
//	docs/ARCHITECTURE § Project Structure.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const version = "0.1.0"

func main() {
	rootCmd := &cobra.Command{
		Use:   "glibcscan",
		Short: "Minimum glibc version analyzer for ELF binaries",
		Long:  "glibcscan walks a binary's shared-library dependency closure, reads the versioned symbol requirements out of every library, and reports the highest glibc versions the binary needs to load.",
	}

	// Global flags.
	rootCmd.PersistentFlags().String("root", "/", "Filesystem root to use when resolving libraries")
	rootCmd.PersistentFlags().StringSlice("ld-library-path", nil, "Additional library directories to probe first (repeatable)")
	rootCmd.PersistentFlags().StringSlice("scope", []string{"/"}, "Only scan libraries under these path prefixes (repeatable)")
	rootCmd.PersistentFlags().String("stdout", "text", "Output format for stdout (text or json)")
	rootCmd.PersistentFlags().String("save-json-to", "", "Write the JSON result to a file")
	rootCmd.PersistentFlags().Bool("pretty-json", false, "Pretty print the JSON result")
	rootCmd.PersistentFlags().Int("versions", 1, "Number of highest required glibc versions to report")
	rootCmd.PersistentFlags().String("detail-level", "version", "Report detail (version, function, or file)")
	rootCmd.PersistentFlags().String("print-error", "all", "Which collected errors to print to stderr (all, none, not-found, cannot-read, cannot-parse)")
	rootCmd.PersistentFlags().Bool("numeric-versions", false, "Order versions numerically instead of lexicographically")

	// Bind flags to viper.
	viper.BindPFlag("root", rootCmd.PersistentFlags().Lookup("root"))
	viper.BindPFlag("ld-library-path", rootCmd.PersistentFlags().Lookup("ld-library-path"))
	viper.BindPFlag("scope", rootCmd.PersistentFlags().Lookup("scope"))
	viper.BindPFlag("stdout", rootCmd.PersistentFlags().Lookup("stdout"))
	viper.BindPFlag("save-json-to", rootCmd.PersistentFlags().Lookup("save-json-to"))
	viper.BindPFlag("pretty-json", rootCmd.PersistentFlags().Lookup("pretty-json"))
	viper.BindPFlag("versions", rootCmd.PersistentFlags().Lookup("versions"))
	viper.BindPFlag("detail-level", rootCmd.PersistentFlags().Lookup("detail-level"))
	viper.BindPFlag("print-error", rootCmd.PersistentFlags().Lookup("print-error"))
	viper.BindPFlag("numeric-versions", rootCmd.PersistentFlags().Lookup("numeric-versions"))

	// Env vars: GLIBCSCAN_ROOT, GLIBCSCAN_SCOPE, etc.
	viper.SetEnvPrefix("GLIBCSCAN")
	viper.AutomaticEnv()

	// Config file.
	viper.SetConfigName(".glibcscan")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.ReadInConfig() // Ignore error; config file is optional.

	// Add commands.
	rootCmd.AddCommand(newScanCmd())
	rootCmd.AddCommand(newVersionCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// newVersionCmd creates the "version" command.
func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print glibcscan version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("glibcscan %s\n", version)
		},
	}
}
