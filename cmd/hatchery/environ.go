// Copyright 2026 The Hatchery Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"io"
	"slices"
)

// printEnviron writes the parent's environment to w, one NAME=VALUE
// entry per line, sorted bytewise (C collation, not locale-aware).
func printEnviron(w io.Writer, environ []string) {
	sorted := slices.Clone(environ)
	slices.Sort(sorted)

	fmt.Fprintln(w, "--- Parent environment (sorted) ---")
	for _, entry := range sorted {
		fmt.Fprintln(w, entry)
	}
	fmt.Fprintln(w, "-----------------------------------")
}
