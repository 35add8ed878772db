// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package colcon runs the build tool's test and coverage stages.
package colcon

import (
	"context"

	"github.com/matt-FFFFFF/rosci/internal/shellrun"
)

const (
	testCommand       = "colcon test"
	eventHandlersFlag = "--event-handlers console_cohesion+"
	returnCodeFlag    = "--return-code-on-test-failure"
	lcovZeroCommand   = "colcon lcov-result --zero-counters"
	lcovResultCommand = "colcon lcov-result"
	coveragePyCommand = "colcon coveragepy-result"
	filterFlag        = "--filter"
)

type executor interface {
	Execute(ctx context.Context, commandLine, prefix string, opts shellrun.Options, logMessage string) (int, error)
}

// TestPipeline runs the fixed test and coverage stage sequence.
type TestPipeline struct {
	exec executor
}

// NewTestPipeline creates a TestPipeline using the given executor.
func NewTestPipeline(exec executor) *TestPipeline {
	return &TestPipeline{exec: exec}
}

// Run executes the four stages in fixed order: reset coverage counters, run
// the test suite, collect line coverage, collect statement coverage.
//
// The coverage bookkeeping stages (1 and 3) always run with the return code
// ignored: they are best effort and must never mask a passing test run as a
// failure. The test stage (2) and the statement-coverage stage (4) use the
// caller-supplied ignore policy from opts, so a test failure propagates
// unless the caller opted out.
func (p *TestPipeline) Run(
	ctx context.Context,
	prefix string,
	opts shellrun.Options,
	packageSelector string,
	extraArgs []string,
	coverageIgnorePattern string,
) error {
	if _, err := p.exec.Execute(ctx, lcovZeroCommand, prefix,
		opts.WithIgnoreReturnCode(true), "Reset coverage counters"); err != nil {
		return err
	}

	fragments := []string{testCommand, eventHandlersFlag, returnCodeFlag, packageSelector}
	fragments = append(fragments, extraArgs...)
	testLine := shellrun.JoinNonEmpty(fragments...)

	if _, err := p.exec.Execute(ctx, testLine, prefix, opts, "Run tests"); err != nil {
		return err
	}

	filter := ""
	if coverageIgnorePattern != "" {
		filter = shellrun.JoinNonEmpty(filterFlag, coverageIgnorePattern)
	}

	lcovLine := shellrun.JoinNonEmpty(lcovResultCommand, filter)

	if _, err := p.exec.Execute(ctx, lcovLine, prefix,
		opts.WithIgnoreReturnCode(true), "Collect line coverage"); err != nil {
		return err
	}

	if _, err := p.exec.Execute(ctx, coveragePyCommand, prefix,
		opts, "Collect statement coverage"); err != nil {
		return err
	}

	return nil
}
