// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package rosdep generates and runs the per-distribution dependency
// installation script.
package rosdep

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/matt-FFFFFF/rosci/internal/ctxlog"
	"github.com/matt-FFFFFF/rosci/internal/distro"
	"github.com/matt-FFFFFF/rosci/internal/shellrun"
	"github.com/spf13/afero"
)

// ScriptName is the fixed filename of the generated installer script,
// written directly under the workspace directory.
const ScriptName = "rosdep_install.sh"

const scriptMode os.FileMode = 0o755

// The script requires exactly one positional argument, the distribution
// name. rosdep's own failure exit is suppressed: dependency-resolution
// errors are logged but never fail the pipeline, since some distributions
// ship incomplete dependency metadata.
const scriptTemplate = `#!/usr/bin/env bash
set -euo pipefail

if [ $# -ne 1 ]; then
    echo "usage: $0 <distribution>" >&2
    exit 1
fi

package_paths=$(%s)
rosdep install --from-paths ${package_paths} --ignore-src --rosdistro "$1" -y || true
`

// ErrWriteScript is returned when the installer script cannot be persisted.
var ErrWriteScript = errors.New("failed to write installer script")

type executor interface {
	Execute(ctx context.Context, commandLine, prefix string, opts shellrun.Options, logMessage string) (int, error)
}

// Installer writes the dependency installation script and runs it once per
// active distribution.
type Installer struct {
	fs   afero.Fs
	exec executor
}

// New creates an Installer using the given filesystem and executor.
func New(fs afero.Fs, exec executor) *Installer {
	return &Installer{fs: fs, exec: exec}
}

// ScriptBody returns the script text for the given package selector. The
// selector is a raw colcon package-selection fragment and may be empty.
func ScriptBody(packageSelector string) string {
	listCmd := shellrun.JoinNonEmpty("colcon", "list", "--paths-only", packageSelector)
	return fmt.Sprintf(scriptTemplate, listCmd)
}

// WriteScript persists the installer script under workspaceDir with
// executable permissions and returns its path. The script is written once
// and then only read; cleanup is an external concern.
func (i *Installer) WriteScript(ctx context.Context, workspaceDir, packageSelector string) (string, error) {
	path := filepath.Join(workspaceDir, ScriptName)

	if err := afero.WriteFile(i.fs, path, []byte(ScriptBody(packageSelector)), scriptMode); err != nil {
		return "", errors.Join(ErrWriteScript, err)
	}

	// WriteFile applies the mode only on create; re-runs need the bits refreshed.
	if err := i.fs.Chmod(path, scriptMode); err != nil {
		return "", errors.Join(ErrWriteScript, err)
	}

	ctxlog.Debug(ctx, "wrote installer script", "path", path)

	return path, nil
}

// Install writes the script and invokes it once per non-empty distribution,
// ROS1 first, passing opts through unchanged. It returns one tagged result
// per invocation; a recorded non-zero exit means the script itself failed,
// not the dependency resolution it wraps. An executor error aborts the
// remaining invocations and is returned alongside the results so far.
func (i *Installer) Install(
	ctx context.Context,
	workspaceDir, packageSelector string,
	opts shellrun.Options,
	distros distro.Set,
) (shellrun.Results, error) {
	path, err := i.WriteScript(ctx, workspaceDir, packageSelector)
	if err != nil {
		return nil, err
	}

	results := make(shellrun.Results, 0, 2)

	for _, d := range distros.Active() {
		commandLine := fmt.Sprintf("%q %q", path, d)
		label := "Install dependencies for " + d

		code, err := i.exec.Execute(ctx, commandLine, "", opts, label)
		results = append(results, shellrun.StageResult{Label: label, ExitCode: code, Err: err})

		if err != nil {
			return results, err
		}
	}

	return results, nil
}
