// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package cihost

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
)

// Logging command formats understood by the host. Grouping is purely a
// presentation concern and has no effect on exit-code semantics.
const (
	groupStartFormat = "##[group]%s\n"
	groupEndFormat   = "##[endgroup]\n"
	errorFormat      = "##vso[task.logissue type=error]%s\n"
	warningFormat    = "##vso[task.logissue type=warning]%s\n"
	hostedEnvVar     = "TF_BUILD"
)

var (
	localGroupColor = color.New(color.FgCyan, color.Bold)
	localErrorColor = color.New(color.FgRed, color.Bold)
	localWarnColor  = color.New(color.FgYellow)
)

// Reporter writes log groups and issue annotations to the CI host log.
// When not running on a hosted agent it renders the same information as
// colored plain text so local runs stay readable.
type Reporter struct {
	w      io.Writer
	hosted bool
}

// NewReporter creates a Reporter writing to w. If hosted is true, output uses
// the host's logging command syntax.
func NewReporter(w io.Writer, hosted bool) *Reporter {
	return &Reporter{w: w, hosted: hosted}
}

// NewHostReporter creates a Reporter writing to stdout, detecting a hosted
// agent from the environment.
func NewHostReporter() *Reporter {
	return NewReporter(os.Stdout, os.Getenv(hostedEnvVar) != "")
}

// Writer returns the underlying writer, for streaming process output
// inside a group.
func (r *Reporter) Writer() io.Writer {
	return r.w
}

// StartGroup opens a named, collapsible log group.
func (r *Reporter) StartGroup(name string) {
	if r.hosted {
		fmt.Fprintf(r.w, groupStartFormat, name)
		return
	}

	localGroupColor.Fprintf(r.w, "==> %s\n", name)
}

// EndGroup closes the current log group.
func (r *Reporter) EndGroup() {
	if r.hosted {
		fmt.Fprint(r.w, groupEndFormat)
	}
}

// Error writes an error annotation to the host log.
func (r *Reporter) Error(msg string) {
	if r.hosted {
		fmt.Fprintf(r.w, errorFormat, msg)
		return
	}

	localErrorColor.Fprintf(r.w, "error: %s\n", msg)
}

// Warning writes a warning annotation to the host log.
func (r *Reporter) Warning(msg string) {
	if r.hosted {
		fmt.Fprintf(r.w, warningFormat, msg)
		return
	}

	localWarnColor.Fprintf(r.w, "warning: %s\n", msg)
}
