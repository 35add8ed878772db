// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package colcon

import (
	"context"
	"fmt"
	"testing"

	"github.com/matt-FFFFFF/rosci/internal/shellrun"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type call struct {
	commandLine string
	prefix      string
	opts        shellrun.Options
	logMessage  string
}

type fakeExecutor struct {
	// exit code and error per invocation, keyed by invocation index
	exitCodes map[int]int
	errs      map[int]error

	calls []call
}

func (f *fakeExecutor) Execute(
	_ context.Context, commandLine, prefix string, opts shellrun.Options, logMessage string,
) (int, error) {
	i := len(f.calls)
	f.calls = append(f.calls, call{commandLine, prefix, opts, logMessage})

	code := f.exitCodes[i]
	err := f.errs[i]

	if code != 0 && !opts.IgnoreReturnCode && err == nil {
		err = fmt.Errorf("%w: %d", shellrun.ErrNonZeroExit, code)
	}

	return code, err
}

func TestRunStageOrder(t *testing.T) {
	exec := &fakeExecutor{}
	p := NewTestPipeline(exec)

	err := p.Run(context.Background(), "", shellrun.Options{}, "", nil, "")
	require.NoError(t, err)
	require.Len(t, exec.calls, 4)

	assert.Equal(t, "colcon lcov-result --zero-counters", exec.calls[0].commandLine)
	assert.Equal(t, "colcon test --event-handlers console_cohesion+ --return-code-on-test-failure",
		exec.calls[1].commandLine)
	assert.Equal(t, "colcon lcov-result", exec.calls[2].commandLine)
	assert.Equal(t, "colcon coveragepy-result", exec.calls[3].commandLine)
}

func TestRunTestCommandAssembly(t *testing.T) {
	exec := &fakeExecutor{}
	p := NewTestPipeline(exec)

	err := p.Run(context.Background(), "", shellrun.Options{},
		"--packages-select my_pkg", []string{"--retest-until-pass 2"}, "")
	require.NoError(t, err)

	assert.Equal(t,
		"colcon test --event-handlers console_cohesion+ --return-code-on-test-failure "+
			"--packages-select my_pkg --retest-until-pass 2",
		exec.calls[1].commandLine)
}

func TestRunCoverageIgnorePolicy(t *testing.T) {
	exec := &fakeExecutor{}
	p := NewTestPipeline(exec)

	err := p.Run(context.Background(), "", shellrun.Options{}, "", nil, "")
	require.NoError(t, err)

	assert.True(t, exec.calls[0].opts.IgnoreReturnCode, "coverage reset must ignore return code")
	assert.False(t, exec.calls[1].opts.IgnoreReturnCode, "test stage must not ignore by default")
	assert.True(t, exec.calls[2].opts.IgnoreReturnCode, "line coverage must ignore return code")
	assert.False(t, exec.calls[3].opts.IgnoreReturnCode, "statement coverage uses caller policy")
}

func TestRunCallerIgnorePolicyPassedThrough(t *testing.T) {
	exec := &fakeExecutor{exitCodes: map[int]int{1: 1}}
	p := NewTestPipeline(exec)

	err := p.Run(context.Background(), "", shellrun.Options{IgnoreReturnCode: true}, "", nil, "")
	require.NoError(t, err)
	require.Len(t, exec.calls, 4)
	assert.True(t, exec.calls[1].opts.IgnoreReturnCode)
	assert.True(t, exec.calls[3].opts.IgnoreReturnCode)
}

func TestRunFilterOnlyWhenPatternGiven(t *testing.T) {
	exec := &fakeExecutor{}
	p := NewTestPipeline(exec)

	err := p.Run(context.Background(), "", shellrun.Options{}, "", nil, `"*/test/*"`)
	require.NoError(t, err)
	assert.Equal(t, `colcon lcov-result --filter "*/test/*"`, exec.calls[2].commandLine)

	exec = &fakeExecutor{}
	p = NewTestPipeline(exec)

	err = p.Run(context.Background(), "", shellrun.Options{}, "", nil, "")
	require.NoError(t, err)
	assert.NotContains(t, exec.calls[2].commandLine, "--filter")
}

func TestRunCoverageResetFailureDoesNotAbort(t *testing.T) {
	exec := &fakeExecutor{exitCodes: map[int]int{0: 1}}
	p := NewTestPipeline(exec)

	err := p.Run(context.Background(), "", shellrun.Options{}, "", nil, "")
	require.NoError(t, err)
	assert.Len(t, exec.calls, 4)
}

func TestRunTestFailureAbortsBeforeCoverage(t *testing.T) {
	exec := &fakeExecutor{exitCodes: map[int]int{1: 1}}
	p := NewTestPipeline(exec)

	err := p.Run(context.Background(), "", shellrun.Options{}, "", nil, "")
	require.Error(t, err)
	assert.ErrorIs(t, err, shellrun.ErrNonZeroExit)
	assert.Len(t, exec.calls, 2, "coverage collection must not run after a test failure")
}

func TestRunPrefixPropagatesToEveryStage(t *testing.T) {
	exec := &fakeExecutor{}
	p := NewTestPipeline(exec)

	const prefix = "source /opt/ros/noetic/setup.bash && "

	err := p.Run(context.Background(), prefix, shellrun.Options{}, "", nil, "")
	require.NoError(t, err)

	for _, c := range exec.calls {
		assert.Equal(t, prefix, c.prefix)
	}
}
