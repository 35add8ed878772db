// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package rosdep

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/matt-FFFFFF/rosci/internal/distro"
	"github.com/matt-FFFFFF/rosci/internal/shellrun"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeExecutor struct {
	exitCodes []int
	err       error

	commandLines []string
	labels       []string
	opts         []shellrun.Options
}

func (f *fakeExecutor) Execute(
	_ context.Context, commandLine, _ string, opts shellrun.Options, logMessage string,
) (int, error) {
	f.commandLines = append(f.commandLines, commandLine)
	f.labels = append(f.labels, logMessage)
	f.opts = append(f.opts, opts)

	code := 0
	if len(f.exitCodes) > 0 {
		code = f.exitCodes[0]
		f.exitCodes = f.exitCodes[1:]
	}

	return code, f.err
}

func TestScriptBody(t *testing.T) {
	body := ScriptBody("--packages-up-to my_pkg")

	assert.Contains(t, body, "#!/usr/bin/env bash")
	assert.Contains(t, body, `if [ $# -ne 1 ]; then`)
	assert.Contains(t, body, "colcon list --paths-only --packages-up-to my_pkg")
	assert.Contains(t, body, `rosdep install --from-paths ${package_paths} --ignore-src --rosdistro "$1" -y || true`)
}

func TestScriptBodyEmptySelector(t *testing.T) {
	body := ScriptBody("")

	assert.Contains(t, body, "package_paths=$(colcon list --paths-only)")
	assert.NotContains(t, body, "--paths-only ")
}

func TestWriteScript(t *testing.T) {
	fs := afero.NewMemMapFs()
	i := New(fs, &fakeExecutor{})

	path, err := i.WriteScript(context.Background(), "/ws", "")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/ws", ScriptName), path)

	info, err := fs.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, scriptMode, info.Mode().Perm())

	content, err := afero.ReadFile(fs, path)
	require.NoError(t, err)
	assert.Equal(t, ScriptBody(""), string(content))
}

func TestInstallRunsPerDistroInOrder(t *testing.T) {
	exec := &fakeExecutor{}
	i := New(afero.NewMemMapFs(), exec)

	results, err := i.Install(context.Background(), "/ws", "", shellrun.Options{},
		distro.Set{ROS1: "noetic", ROS2: "humble"})
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Equal(t, "Install dependencies for noetic", results[0].Label)
	assert.Equal(t, "Install dependencies for humble", results[1].Label)
	require.Len(t, exec.commandLines, 2)
	assert.Contains(t, exec.commandLines[0], ScriptName)
	assert.Contains(t, exec.commandLines[0], `"noetic"`)
	assert.Contains(t, exec.commandLines[1], `"humble"`)
}

func TestInstallSingleDistro(t *testing.T) {
	exec := &fakeExecutor{exitCodes: []int{3}}
	i := New(afero.NewMemMapFs(), exec)

	results, err := i.Install(context.Background(), "/ws", "", shellrun.Options{IgnoreReturnCode: true},
		distro.Set{ROS2: "humble"})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, 3, results.ExitSum())
	assert.True(t, results.HasError())
}

func TestInstallNoDistrosWritesScriptOnly(t *testing.T) {
	fs := afero.NewMemMapFs()
	exec := &fakeExecutor{}
	i := New(fs, exec)

	results, err := i.Install(context.Background(), "/ws", "", shellrun.Options{}, distro.Set{})
	require.NoError(t, err)
	assert.Empty(t, results)
	assert.Equal(t, 0, results.ExitSum())
	assert.Empty(t, exec.commandLines)

	exists, err := afero.Exists(fs, filepath.Join("/ws", ScriptName))
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestInstallSumsExitCodes(t *testing.T) {
	exec := &fakeExecutor{exitCodes: []int{1, 255}}
	i := New(afero.NewMemMapFs(), exec)

	results, err := i.Install(context.Background(), "/ws", "", shellrun.Options{IgnoreReturnCode: true},
		distro.Set{ROS1: "noetic", ROS2: "humble"})
	require.NoError(t, err)
	assert.Equal(t, 256, results.ExitSum())
	assert.Equal(t, 1, results[0].ExitCode)
	assert.Equal(t, 255, results[1].ExitCode)
}

func TestInstallExecutorErrorAborts(t *testing.T) {
	boom := errors.New("boom")
	exec := &fakeExecutor{err: boom}
	i := New(afero.NewMemMapFs(), exec)

	results, err := i.Install(context.Background(), "/ws", "", shellrun.Options{},
		distro.Set{ROS1: "noetic", ROS2: "humble"})
	require.ErrorIs(t, err, boom)
	assert.Len(t, results, 1)
	require.Len(t, exec.commandLines, 1)
}

func TestInstallPassesOptionsUnchanged(t *testing.T) {
	exec := &fakeExecutor{}
	i := New(afero.NewMemMapFs(), exec)

	opts := shellrun.Options{Cwd: "/ws", IgnoreReturnCode: true}

	_, err := i.Install(context.Background(), "/ws", "", opts, distro.Set{ROS1: "noetic"})
	require.NoError(t, err)
	require.Len(t, exec.opts, 1)
	assert.Equal(t, opts, exec.opts[0])
}
