// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package shellrun

// StageResult records the outcome of one command invocation.
type StageResult struct {
	Label    string // Human-readable stage name.
	ExitCode int    // Exit code of the invocation.
	Err      error  // Error, if any.
}

// Results is an ordered collection of stage results.
type Results []StageResult

// HasError reports whether any stage recorded an error or a non-zero exit
// code.
func (r Results) HasError() bool {
	for _, v := range r {
		if v.Err != nil || v.ExitCode != 0 {
			return true
		}
	}

	return false
}

// ExitSum returns the arithmetic sum of all exit codes. Distinct failures
// conflate under addition (1 + 255 = 256), so it must only be compared
// against zero; use HasError for the pass/fail check and the individual
// records for attribution.
func (r Results) ExitSum() int {
	sum := 0
	for _, v := range r {
		sum += v.ExitCode
	}

	return sum
}
