// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFull(t *testing.T) {
	content := `
target_ros1_distro: noetic
target_ros2_distro: humble
workspace_dir: /ws
package_selector: --packages-up-to my_pkg
extra_test_args:
  - --retest-until-pass
  - "2"
coverage_ignore_pattern: '"*/test/*"'
command_prefix: "stdbuf -o L "
repo_files:
  - deps.repos
env:
  ROS_DOMAIN_ID: "42"
ignore_return_codes: true
`

	def, err := Load([]byte(content))
	require.NoError(t, err)

	assert.Equal(t, "noetic", def.TargetROS1Distro)
	assert.Equal(t, "humble", def.TargetROS2Distro)
	assert.Equal(t, "/ws", def.WorkspaceDir)
	assert.Equal(t, "--packages-up-to my_pkg", def.PackageSelector)
	assert.Equal(t, []string{"--retest-until-pass", "2"}, def.ExtraTestArgs)
	assert.Equal(t, `"*/test/*"`, def.CoverageIgnorePattern)
	assert.Equal(t, "stdbuf -o L ", def.CommandPrefix)
	assert.Equal(t, []string{"deps.repos"}, def.RepoFiles)
	assert.Equal(t, map[string]string{"ROS_DOMAIN_ID": "42"}, def.Env)
	assert.True(t, def.IgnoreReturnCodes)
}

func TestLoadDefaults(t *testing.T) {
	def, err := Load([]byte("target_ros2_distro: rolling\n"))
	require.NoError(t, err)

	assert.Equal(t, DefaultWorkspaceDir, def.WorkspaceDir)
	assert.Empty(t, def.TargetROS1Distro)
	assert.False(t, def.IgnoreReturnCodes)
}

func TestApplyEnv(t *testing.T) {
	def := &Definition{TargetROS1Distro: "melodic"}

	env := map[string]string{
		EnvROS1Distro: "noetic",
	}

	def.ApplyEnv(func(k string) string { return env[k] })

	assert.Equal(t, "noetic", def.TargetROS1Distro)
	assert.Empty(t, def.TargetROS2Distro, "unset variable must not override")
}

func TestLoadInvalidYAML(t *testing.T) {
	_, err := Load([]byte("target_ros1_distro: [unclosed"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrParseConfig)
}
