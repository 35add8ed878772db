// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package shellrun

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"

	"github.com/matt-FFFFFF/rosci/internal/ctxlog"
)

// ErrCouldNotStartProcess is returned when the interpreter could not be launched.
var ErrCouldNotStartProcess = errors.New("could not start process")

// ProcessRunner spawns an interpreter with the given arguments and waits for
// it to terminate, returning its exit code. A non-zero exit code is not an
// error at this layer; launch failures are.
type ProcessRunner interface {
	Run(ctx context.Context, path string, args []string, opts Options) (int, error)
}

var _ ProcessRunner = (*osRunner)(nil)

// osRunner runs processes on the host operating system, streaming their
// output to the given writers.
type osRunner struct {
	stdout io.Writer
	stderr io.Writer
}

// NewOSRunner creates a ProcessRunner that streams process output to the
// given writers. Nil writers default to the process's own stdout and stderr.
func NewOSRunner(stdout, stderr io.Writer) ProcessRunner {
	if stdout == nil {
		stdout = os.Stdout
	}

	if stderr == nil {
		stderr = os.Stderr
	}

	return &osRunner{stdout: stdout, stderr: stderr}
}

// Run implements the ProcessRunner interface.
func (r *osRunner) Run(ctx context.Context, path string, args []string, opts Options) (int, error) {
	cmd := exec.CommandContext(ctx, path, args...)
	cmd.Dir = opts.Cwd
	cmd.Stdout = r.stdout
	cmd.Stderr = r.stderr

	env := os.Environ()
	for k, v := range opts.Env {
		ctxlog.Debug(ctx, "adding environment variable", "key", k)
		env = append(env, fmt.Sprintf("%s=%s", k, v))
	}

	cmd.Env = env

	ctxlog.Debug(ctx, "starting process", "path", path, "cwd", opts.Cwd)

	err := cmd.Run()
	if err == nil {
		return 0, nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		ctxlog.Debug(ctx, "process finished", "exitCode", exitErr.ExitCode())
		return exitErr.ExitCode(), nil
	}

	return -1, errors.Join(ErrCouldNotStartProcess, err)
}
