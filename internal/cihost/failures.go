// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package cihost

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
)

// Failures accumulates run-failing conditions. Adding a failure does not
// stop execution at the call site; callers must still return or abort
// explicitly. The zero value is ready to use.
type Failures struct {
	msgs []string
}

// Add records a failure message.
func (f *Failures) Add(msg string) {
	f.msgs = append(f.msgs, msg)
}

// Addf records a formatted failure message.
func (f *Failures) Addf(format string, args ...any) {
	f.Add(fmt.Sprintf(format, args...))
}

// Failed reports whether any failure has been recorded.
func (f *Failures) Failed() bool {
	return len(f.msgs) > 0
}

// Messages returns the recorded failure messages in order.
func (f *Failures) Messages() []string {
	return f.msgs
}

// Err folds the recorded failures into a single error, or nil if none.
func (f *Failures) Err() error {
	var result *multierror.Error
	for _, m := range f.msgs {
		result = multierror.Append(result, fmt.Errorf("%s", m))
	}

	return result.ErrorOrNil()
}

// Report writes each recorded failure to the host as an error annotation.
func (f *Failures) Report(r *Reporter) {
	for _, m := range f.msgs {
		r.Error(m)
	}
}
