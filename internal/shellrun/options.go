// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package shellrun

// Options configures a single command execution. Values are passed by copy;
// callers derive variants with the With helpers rather than mutating a
// shared instance.
type Options struct {
	Env              map[string]string // Additional environment variables, merged over the process environment.
	Cwd              string            // Working directory for the command.
	Silent           bool              // Suppress the log group around the command output.
	IgnoreReturnCode bool              // Return a non-zero exit code as data instead of an error.
}

// WithIgnoreReturnCode returns a copy of the options with the ignore policy set.
func (o Options) WithIgnoreReturnCode(ignore bool) Options {
	o.IgnoreReturnCode = ignore
	return o
}

// WithSilent returns a copy of the options with the silent flag set.
func (o Options) WithSilent(silent bool) Options {
	o.Silent = silent
	return o
}

// WithCwd returns a copy of the options with the working directory set.
func (o Options) WithCwd(cwd string) Options {
	o.Cwd = cwd
	return o
}
