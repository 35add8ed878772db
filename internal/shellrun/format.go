// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package shellrun

import "strings"

// JoinNonEmpty joins the given fragments with a single space, discarding
// empty fragments and preserving the order of the rest. It is used to
// assemble command lines with optional flags without leaving double spaces.
func JoinNonEmpty(fragments ...string) string {
	parts := make([]string, 0, len(fragments))

	for _, f := range fragments {
		if len(f) == 0 {
			continue
		}

		parts = append(parts, f)
	}

	return strings.Join(parts, " ")
}
