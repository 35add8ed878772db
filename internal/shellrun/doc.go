// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package shellrun executes shell command lines on the host platform.
//
// A command line is always a POSIX shell script body. On POSIX hosts it is
// handed to the login shell directly; on Windows it is chained through the
// Visual Studio developer environment and then a bash-compatible shell, since
// the build tooling needs the native compiler environment and a POSIX shell
// in the same process tree.
package shellrun
