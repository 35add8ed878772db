// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package shellrun

import (
	"fmt"
	"os"
	"runtime"
)

const (
	goosWindows      = "windows"
	commandSwitch    = "-c"          // Script switch for POSIX shells and bash.
	binSh            = "/bin/sh"     // Default shell for POSIX hosts.
	shellEnvVar      = "SHELL"       // Environment variable naming the login shell.
	comSpecEnvVar    = "COMSPEC"     // Environment variable naming the Windows command interpreter.
	winSystemRootEnv = "SystemRoot"  // Environment variable for the Windows system root directory.
	winSystem32      = "System32"    // Directory containing cmd.exe.
	cmdExe           = "cmd.exe"     // Windows command interpreter executable.
	defaultDevCmd    = `C:\Program Files (x86)\Microsoft Visual Studio\2019\Enterprise\Common7\Tools\VsDevCmd.bat`
	defaultDevArch   = "amd64"
	defaultBashPath  = `C:\Program Files\Git\bin\bash.exe`
)

// hostGOOS is a variable so tests can stub the host platform.
var hostGOOS = runtime.GOOS

// InvocationStrategy turns a shell script body into an interpreter path and
// argument list for the host platform. The two implementations form a closed
// set, selected once at executor construction.
type InvocationStrategy interface {
	// Argv returns the interpreter path and its arguments for the script.
	Argv(script string) (string, []string)
}

var (
	_ InvocationStrategy = (*PosixShell)(nil)
	_ InvocationStrategy = (*WrappedNativeShell)(nil)
)

// PosixShell invokes a POSIX shell interpreter directly with "-c <script>".
type PosixShell struct {
	Shell string // Path to the shell interpreter.
}

// Argv implements the InvocationStrategy interface.
func (s *PosixShell) Argv(script string) (string, []string) {
	return s.Shell, []string{commandSwitch, script}
}

// WrappedNativeShell invokes the Windows command interpreter with autorun
// disabled, activates the Visual Studio developer environment for a fixed
// toolchain version and architecture, then hands the script body to a
// bash-compatible shell in the same process tree.
type WrappedNativeShell struct {
	ComSpec  string // Path to cmd.exe.
	DevCmd   string // Path to the developer environment activation batch file.
	Arch     string // Target architecture passed to the activation step.
	BashPath string // Path to the bash-compatible shell.
}

// Argv implements the InvocationStrategy interface.
// The /d switch disables cmd.exe autorun so pre-configured activation hooks
// cannot interfere with the developer environment set up here.
func (s *WrappedNativeShell) Argv(script string) (string, []string) {
	chained := fmt.Sprintf(`call "%s" -arch=%s && "%s" %s %q`,
		s.DevCmd, s.Arch, s.BashPath, commandSwitch, script)

	return s.ComSpec, []string{"/d", "/s", "/c", chained}
}

// HostStrategy returns the invocation strategy for the current host platform.
func HostStrategy() InvocationStrategy {
	if hostGOOS == goosWindows {
		return &WrappedNativeShell{
			ComSpec:  comSpec(),
			DevCmd:   defaultDevCmd,
			Arch:     defaultDevArch,
			BashPath: defaultBashPath,
		}
	}

	shell := os.Getenv(shellEnvVar)
	if shell == "" {
		shell = binSh
	}

	return &PosixShell{Shell: shell}
}

func comSpec() string {
	if cs := os.Getenv(comSpecEnvVar); cs != "" {
		return cs
	}

	systemRoot := os.Getenv(winSystemRootEnv)
	if systemRoot == "" {
		systemRoot = `C:\Windows`
	}

	return fmt.Sprintf(`%s\%s\%s`, systemRoot, winSystem32, cmdExe)
}
