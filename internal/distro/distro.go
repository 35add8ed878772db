// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package distro validates ROS distribution names against the fixed
// allow-lists for the two ecosystem generations.
package distro

import (
	"fmt"
	"slices"
	"strings"
)

var (
	// ROS1Distros is the allow-list of first-generation distribution names.
	ROS1Distros = []string{"kinetic", "lunar", "melodic", "noetic"}
	// ROS2Distros is the allow-list of second-generation distribution names.
	ROS2Distros = []string{"humble", "iron", "jazzy", "kilted", "rolling"}
)

// Set holds the distributions selected for one pipeline invocation. Either
// field may be empty, but not both; it is created once from external
// configuration and never mutated.
type Set struct {
	ROS1 string
	ROS2 string
}

// Active returns the non-empty distribution names in fixed order: ROS1 first.
func (s Set) Active() []string {
	var active []string

	if s.ROS1 != "" {
		active = append(active, s.ROS1)
	}

	if s.ROS2 != "" {
		active = append(active, s.ROS2)
	}

	return active
}

// ValidationResult is the tagged outcome of validating a distribution set.
// When invalid, Reason carries the single message to surface; the check
// order fixes which reason wins when several conditions fail at once.
type ValidationResult struct {
	Valid  bool
	Reason string
}

// Validate checks that at least one distribution is selected and that each
// selected name belongs to its generation's allow-list. It is pure: the
// caller is responsible for reporting the reason and halting.
func Validate(ros1, ros2 string) ValidationResult {
	if ros1 == "" && ros2 == "" {
		return ValidationResult{
			Reason: "at least one distribution input is required",
		}
	}

	if ros1 != "" && !slices.Contains(ROS1Distros, ros1) {
		return ValidationResult{
			Reason: fmt.Sprintf(
				"unknown ROS1 distribution %q, valid values: %s",
				ros1, strings.Join(ROS1Distros, ", ")),
		}
	}

	if ros2 != "" && !slices.Contains(ROS2Distros, ros2) {
		return ValidationResult{
			Reason: fmt.Sprintf(
				"unknown ROS2 distribution %q, valid values: %s",
				ros2, strings.Join(ROS2Distros, ", ")),
		}
	}

	return ValidationResult{Valid: true}
}
