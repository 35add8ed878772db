// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package pipeline drives the end-to-end build sequence: distribution
// validation, dependency resolution, repository import, build and tests.
package pipeline

import (
	"context"
	"fmt"

	"github.com/matt-FFFFFF/rosci/internal/cihost"
	"github.com/matt-FFFFFF/rosci/internal/colcon"
	"github.com/matt-FFFFFF/rosci/internal/config"
	"github.com/matt-FFFFFF/rosci/internal/ctxlog"
	"github.com/matt-FFFFFF/rosci/internal/distro"
	"github.com/matt-FFFFFF/rosci/internal/rosdep"
	"github.com/matt-FFFFFF/rosci/internal/shellrun"
	"github.com/matt-FFFFFF/rosci/internal/vcstool"
	"github.com/spf13/afero"
)

const (
	rosdepUpdateCommand = "rosdep update"
	buildCommand        = "colcon build"
	setupPrefixFormat   = "source /opt/ros/%s/setup.bash && "
)

type executor interface {
	Execute(ctx context.Context, commandLine, prefix string, opts shellrun.Options, logMessage string) (int, error)
}

type installer interface {
	Install(ctx context.Context, workspaceDir, packageSelector string, opts shellrun.Options,
		distros distro.Set) (shellrun.Results, error)
}

type testRunner interface {
	Run(ctx context.Context, prefix string, opts shellrun.Options, packageSelector string,
		extraArgs []string, coverageIgnorePattern string) error
}

// Driver runs the fixed pipeline sequence and reports one aggregate outcome.
type Driver struct {
	fs        afero.Fs
	exec      executor
	installer installer
	tests     testRunner
}

// New creates a Driver with explicit collaborators.
func New(fs afero.Fs, exec executor, inst installer, tests testRunner) *Driver {
	return &Driver{
		fs:        fs,
		exec:      exec,
		installer: inst,
		tests:     tests,
	}
}

// NewHost creates a Driver wired to the host filesystem and executor.
func NewHost(reporter *cihost.Reporter) *Driver {
	fs := afero.NewOsFs()
	exec := shellrun.NewHostExecutor(reporter)

	return New(fs, exec, rosdep.New(fs, exec), colcon.NewTestPipeline(exec))
}

// Run executes the pipeline described by def. Validation failures and stage
// errors are recorded in the failure accumulator; any stage error is caught
// exactly once here and converted into a single failure record. The caller
// resolves the accumulator into host output at the outer boundary.
func (d *Driver) Run(ctx context.Context, def *config.Definition, failures *cihost.Failures) shellrun.Results {
	vr := distro.Validate(def.TargetROS1Distro, def.TargetROS2Distro)
	if !vr.Valid {
		failures.Add(vr.Reason)
		return nil
	}

	results, err := d.run(ctx, def)
	if err != nil {
		failures.Addf("pipeline failed: %s", err.Error())
	}

	return results
}

func (d *Driver) run(ctx context.Context, def *config.Definition) (shellrun.Results, error) {
	distros := distro.Set{ROS1: def.TargetROS1Distro, ROS2: def.TargetROS2Distro}

	// One options record flows unchanged from here down to every
	// executor call; stages that must never abort override the ignore
	// policy on their own copy.
	opts := shellrun.Options{
		Env:              def.Env,
		IgnoreReturnCode: def.IgnoreReturnCodes,
	}.WithCwd(def.WorkspaceDir).WithSilent(def.Silent)

	results := make(shellrun.Results, 0, 8)

	code, err := d.exec.Execute(ctx, rosdepUpdateCommand, def.CommandPrefix,
		opts, "Update dependency sources")
	results = append(results, shellrun.StageResult{Label: "rosdep update", ExitCode: code, Err: err})

	if err != nil {
		return results, err
	}

	if err := vcstool.Import(ctx, d.fs, d.exec, opts, def.RepoFiles); err != nil {
		results = append(results, shellrun.StageResult{Label: "repository import", ExitCode: -1, Err: err})
		return results, err
	}

	installResults, err := d.installer.Install(ctx, def.WorkspaceDir, def.PackageSelector, opts, distros)
	results = append(results, installResults...)

	if err != nil {
		return results, err
	}

	prefix := activationPrefix(def.CommandPrefix, distros)

	buildLine := shellrun.JoinNonEmpty(buildCommand, def.PackageSelector)

	code, err = d.exec.Execute(ctx, buildLine, prefix, opts, "Build workspace")
	results = append(results, shellrun.StageResult{Label: "build", ExitCode: code, Err: err})

	if err != nil {
		return results, err
	}

	if err := d.tests.Run(ctx, prefix, opts, def.PackageSelector,
		def.ExtraTestArgs, def.CoverageIgnorePattern); err != nil {
		results = append(results, shellrun.StageResult{Label: "test", ExitCode: -1, Err: err})
		return results, err
	}

	results = append(results, shellrun.StageResult{Label: "test", ExitCode: 0})

	ctxlog.Info(ctx, "pipeline completed", "stages", len(results))

	return results, nil
}

// activationPrefix prepends the environment activation for each active
// distribution to the configured command prefix. Activation runs inside the
// POSIX shell on both platforms, since the Windows invocation strategy
// chains through bash.
func activationPrefix(commandPrefix string, distros distro.Set) string {
	prefix := commandPrefix

	for _, d := range distros.Active() {
		prefix += fmt.Sprintf(setupPrefixFormat, d)
	}

	return prefix
}
