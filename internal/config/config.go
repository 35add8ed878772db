// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package config defines the YAML pipeline configuration.
package config

import (
	"errors"

	"github.com/goccy/go-yaml"
)

// DefaultWorkspaceDir is used when the configuration does not name one.
const DefaultWorkspaceDir = "ros_ws"

// ErrParseConfig is returned when the configuration cannot be parsed.
var ErrParseConfig = errors.New("failed to parse configuration")

// Definition is the YAML definition of one pipeline invocation.
type Definition struct {
	// First-generation target distribution; may be empty if TargetROS2Distro is set.
	TargetROS1Distro string `yaml:"target_ros1_distro,omitempty"`
	// Second-generation target distribution; may be empty if TargetROS1Distro is set.
	TargetROS2Distro string `yaml:"target_ros2_distro,omitempty"`
	// Workspace root containing the source packages, defaults to "ros_ws".
	WorkspaceDir string `yaml:"workspace_dir,omitempty"`
	// Raw colcon package-selection fragment, e.g. "--packages-up-to my_pkg".
	PackageSelector string `yaml:"package_selector,omitempty"`
	// Extra flags appended to the test stage command line.
	ExtraTestArgs []string `yaml:"extra_test_args,omitempty"`
	// lcov filter pattern for paths to exclude from line coverage.
	CoverageIgnorePattern string `yaml:"coverage_ignore_pattern,omitempty"`
	// Shell fragment prepended to every command, e.g. a wrapper tool.
	CommandPrefix string `yaml:"command_prefix,omitempty"`
	// vcs repository files to import before dependency installation.
	// Entries may be local paths or URLs.
	RepoFiles []string `yaml:"repo_files,omitempty"`
	// Additional environment variables for every command.
	Env map[string]string `yaml:"env,omitempty"`
	// Treat non-zero exit codes from build and test stages as non-fatal.
	IgnoreReturnCodes bool `yaml:"ignore_return_codes,omitempty"`
	// Suppress log grouping around command output.
	Silent bool `yaml:"silent,omitempty"`
}

// Environment variable names for the CI host's task inputs. The host
// exposes task inputs as INPUT_* variables; they override the file values
// but lose to explicit command-line flags.
const (
	EnvROS1Distro = "INPUT_TARGET_ROS1_DISTRO"
	EnvROS2Distro = "INPUT_TARGET_ROS2_DISTRO"
)

// ApplyEnv overrides the distribution selections from the given environment
// lookup, typically os.Getenv. Unset or empty variables leave the
// Definition unchanged.
func (d *Definition) ApplyEnv(getenv func(string) string) {
	if v := getenv(EnvROS1Distro); v != "" {
		d.TargetROS1Distro = v
	}

	if v := getenv(EnvROS2Distro); v != "" {
		d.TargetROS2Distro = v
	}
}

// Load parses a Definition from YAML and applies defaults.
func Load(data []byte) (*Definition, error) {
	def := &Definition{}

	if err := yaml.Unmarshal(data, def); err != nil {
		return nil, errors.Join(ErrParseConfig, err)
	}

	if def.WorkspaceDir == "" {
		def.WorkspaceDir = DefaultWorkspaceDir
	}

	return def, nil
}
