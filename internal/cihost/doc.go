// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package cihost writes the logging commands understood by the CI host:
// collapsible log groups and error annotations. It also provides the
// Failures accumulator that components use instead of a process-wide
// "mark run failed" side effect; accumulated failures are resolved into
// host output once, at the command boundary.
package cihost
