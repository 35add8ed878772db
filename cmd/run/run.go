// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package run implements the command that executes the full pipeline.
package run

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/matt-FFFFFF/rosci/internal/cihost"
	"github.com/matt-FFFFFF/rosci/internal/config"
	"github.com/matt-FFFFFF/rosci/internal/ctxlog"
	"github.com/matt-FFFFFF/rosci/internal/pipeline"
	"github.com/matt-FFFFFF/rosci/internal/vcstool"
	"github.com/spf13/afero"
	"github.com/urfave/cli/v3"
)

const (
	configFlag = "config"
	ros1Flag   = "ros1-distro"
	ros2Flag   = "ros2-distro"
	silentFlag = "silent"
)

// ErrGetConfigFile is returned when the configuration file cannot be read.
var ErrGetConfigFile = errors.New("failed to get config file")

// RunCmd runs the pipeline described by a YAML configuration file.
var RunCmd = &cli.Command{
	Name: "run",
	Description: `Run the build, dependency installation and test pipeline.
The configuration file may be a local path or a go-getter URL; local paths
are resolved to file:// references before fetching.

Distribution flags override the values in the configuration file.`,
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:     configFlag,
			Aliases:  []string{"c"},
			Usage:    "Path or URL of the YAML pipeline configuration.",
			OnlyOnce: true,
		},
		&cli.StringFlag{
			Name:     ros1Flag,
			Usage:    "Target ROS1 distribution, overriding the configuration.",
			OnlyOnce: true,
		},
		&cli.StringFlag{
			Name:     ros2Flag,
			Usage:    "Target ROS2 distribution, overriding the configuration.",
			OnlyOnce: true,
		},
		&cli.BoolFlag{
			Name:  silentFlag,
			Usage: "Suppress log grouping around command output.",
		},
	},
	Action: actionFunc,
}

func actionFunc(ctx context.Context, cmd *cli.Command) error {
	logger := ctxlog.Logger(ctx).With("command", cmd.Name)

	def, err := loadDefinition(ctx, cmd)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	reporter := cihost.NewHostReporter()
	driver := pipeline.NewHost(reporter)

	var failures cihost.Failures

	results := driver.Run(ctx, def, &failures)

	if failures.Failed() {
		failures.Report(reporter)
		return cli.Exit(failures.Err().Error(), 1)
	}

	if results.HasError() {
		// Stages can record non-zero exits without failing the run only
		// when the ignore policy is set; surface them as warnings.
		for _, r := range results {
			if r.ExitCode != 0 {
				reporter.Warning(fmt.Sprintf("%s exited with code %d", r.Label, r.ExitCode))
			}
		}
	}

	logger.Info("pipeline succeeded", "stages", len(results))

	return nil
}

func loadDefinition(ctx context.Context, cmd *cli.Command) (*config.Definition, error) {
	def := &config.Definition{WorkspaceDir: config.DefaultWorkspaceDir}

	if ref := cmd.String(configFlag); ref != "" {
		data, err := fetchConfig(ctx, ref)
		if err != nil {
			return nil, err
		}

		if def, err = config.Load(data); err != nil {
			return nil, err
		}
	}

	def.ApplyEnv(os.Getenv)

	if v := cmd.String(ros1Flag); v != "" {
		def.TargetROS1Distro = v
	}

	if v := cmd.String(ros2Flag); v != "" {
		def.TargetROS2Distro = v
	}

	if cmd.Bool(silentFlag) {
		def.Silent = true
	}

	return def, nil
}

// fetchConfig retrieves the configuration file content. Local paths become
// file:// references so that remote and local configs share one code path.
func fetchConfig(ctx context.Context, ref string) ([]byte, error) {
	url, err := vcstool.ResolveURL(afero.NewOsFs(), ref)
	if err != nil {
		return nil, errors.Join(ErrGetConfigFile, err)
	}

	path, cleanup, err := vcstool.Fetch(ctx, url)
	if err != nil {
		return nil, errors.Join(ErrGetConfigFile, err)
	}

	defer cleanup()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Join(ErrGetConfigFile, err)
	}

	return data, nil
}
