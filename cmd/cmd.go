// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package cmd contains the command-line interface (CLI) for the module.
package cmd

import (
	"os"

	"github.com/matt-FFFFFF/rosci/cmd/run"
	"github.com/matt-FFFFFF/rosci/cmd/validate"
	"github.com/urfave/cli/v3"
)

// RootCmd is the root command for the CLI.
var RootCmd = &cli.Command{
	Commands: []*cli.Command{
		run.RunCmd,
		validate.ValidateCmd,
	},
	Writer:    os.Stdout,
	ErrWriter: os.Stderr,
	Name:      "rosci",
	Description: `rosci builds and tests ROS1 and ROS2 workspaces in CI.
It validates the selected distributions, installs their system dependencies
with rosdep, imports additional repositories, then runs the colcon build,
test and coverage pipeline, reporting one aggregate outcome to the CI host.`,
	Usage:     "rosci run -c pipeline.yaml",
	Copyright: "Copyright (c) matt-FFFFFF 2025. All rights reserved.",
	Authors: []any{
		"Matt White (matt-FFFFFF)",
	},
	EnableShellCompletion: true,
}
