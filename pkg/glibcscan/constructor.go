// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Implements: prd001-inspector-interface R4;
//
//	docs/ARCHITECTURE § Inspector Interface.
package glibcscan

import (
	"fmt"

	"github.com/petar-djukic/glibcscan/internal/closure"
	"github.com/petar-djukic/glibcscan/internal/elfscan"
	"github.com/petar-djukic/glibcscan/internal/resolve"
	"github.com/petar-djukic/glibcscan/internal/runner"
)

// New validates the config and returns a ready-to-use Inspector. No
// filesystem work happens until Inspect.
func New(cfg Config) (Inspector, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	applyDefaults(&cfg)

	r := runner.NewRunner(runner.Deps{
		Resolver: resolve.New(cfg.Root, cfg.LibraryPaths),
		Scanner:  &elfscan.Scanner{},
		Scopes:   closure.NewScopeList(cfg.Scopes),
	})

	return &inspectorAdapter{runner: r, paths: cfg.Paths}, nil
}

// inspectorAdapter adapts internal/runner.Runner to the public Inspector
// interface.
type inspectorAdapter struct {
	runner *runner.Runner
	paths  []string
}

func (a *inspectorAdapter) Inspect() (*Result, error) {
	rr := a.runner.Run(a.paths)
	return &Result{
		Requirements: rr.Requirements,
		Errors:       rr.Errors,
		RootFailed:   rr.RootFailed,
	}, nil
}

// validateConfig checks that required fields are present.
func validateConfig(cfg Config) error {
	if len(cfg.Paths) == 0 {
		return fmt.Errorf("Paths is required")
	}
	for _, p := range cfg.Paths {
		if p == "" {
			return fmt.Errorf("Paths must not contain empty entries")
		}
	}
	return nil
}

// applyDefaults fills in zero-value fields with their defaults.
func applyDefaults(cfg *Config) {
	if cfg.Root == "" {
		cfg.Root = "/"
	}
	if len(cfg.Scopes) == 0 {
		cfg.Scopes = []string{"/"}
	}
}
