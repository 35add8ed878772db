// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package shellrun

import (
	"context"
	"errors"
	"fmt"

	"github.com/matt-FFFFFF/rosci/internal/cihost"
	"github.com/matt-FFFFFF/rosci/internal/ctxlog"
)

// ErrNonZeroExit is returned when a process exits non-zero and the ignore
// policy is not set.
var ErrNonZeroExit = errors.New("command exited with non-zero code")

// Executor runs shell command lines through the platform invocation strategy,
// wrapping their output in host log groups.
type Executor struct {
	strategy InvocationStrategy
	runner   ProcessRunner
	reporter *cihost.Reporter
}

// NewExecutor creates an Executor with explicit collaborators.
func NewExecutor(strategy InvocationStrategy, runner ProcessRunner, reporter *cihost.Reporter) *Executor {
	return &Executor{
		strategy: strategy,
		runner:   runner,
		reporter: reporter,
	}
}

// NewHostExecutor creates an Executor for the current host platform,
// streaming process output to the reporter's writer.
func NewHostExecutor(reporter *cihost.Reporter) *Executor {
	return NewExecutor(
		HostStrategy(),
		NewOSRunner(reporter.Writer(), reporter.Writer()),
		reporter,
	)
}

// Execute runs the command line, prepended with prefix, and returns the
// process exit code. The prefix is concatenated verbatim; the caller is
// responsible for correct quoting.
//
// Unless opts.Silent is set, output is wrapped in a log group titled with
// logMessage, or with the script body if logMessage is empty.
//
// When opts.IgnoreReturnCode is set, a non-zero exit code is returned with a
// nil error and the caller decides whether it is fatal. When unset, a
// non-zero exit code is returned together with an error wrapping
// ErrNonZeroExit. A launch failure is always an error.
func (e *Executor) Execute(
	ctx context.Context,
	commandLine, prefix string,
	opts Options,
	logMessage string,
) (int, error) {
	script := prefix + commandLine

	if !opts.Silent {
		title := logMessage
		if title == "" {
			title = script
		}

		e.reporter.StartGroup(title)
		defer e.reporter.EndGroup()
	}

	path, args := e.strategy.Argv(script)

	ctxlog.Debug(ctx, "executing command", "path", path, "script", script)

	code, err := e.runner.Run(ctx, path, args, opts)
	if err != nil {
		return code, err
	}

	if code != 0 && !opts.IgnoreReturnCode {
		return code, fmt.Errorf("%w: %d: %s", ErrNonZeroExit, code, script)
	}

	return code, nil
}
