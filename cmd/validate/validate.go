// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package validate implements the command that checks distribution inputs.
package validate

import (
	"context"
	"fmt"

	"github.com/matt-FFFFFF/rosci/internal/distro"
	"github.com/urfave/cli/v3"
)

const (
	ros1Flag = "ros1-distro"
	ros2Flag = "ros2-distro"
)

// ValidateCmd checks distribution inputs against the allow-lists without
// running the pipeline.
var ValidateCmd = &cli.Command{
	Name:        "validate",
	Description: `Validate the selected ROS distributions without running anything.`,
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:     ros1Flag,
			Usage:    "Target ROS1 distribution.",
			OnlyOnce: true,
		},
		&cli.StringFlag{
			Name:     ros2Flag,
			Usage:    "Target ROS2 distribution.",
			OnlyOnce: true,
		},
	},
	Action: actionFunc,
}

func actionFunc(_ context.Context, cmd *cli.Command) error {
	vr := distro.Validate(cmd.String(ros1Flag), cmd.String(ros2Flag))
	if !vr.Valid {
		return cli.Exit(vr.Reason, 1)
	}

	fmt.Fprintln(cmd.Root().Writer, "distribution selection is valid")

	return nil
}
