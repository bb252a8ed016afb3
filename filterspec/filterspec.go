// Copyright 2026 The Hatchery Authors
// SPDX-License-Identifier: Apache-2.0

// Package filterspec parses filter files: newline-separated lists of
// environment variable names selecting what a child process receives.
package filterspec

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// Spec is an ordered list of environment variable names read from a
// filter file. Order is significant: it fixes the order of entries in
// the built child environment. Duplicate names are preserved as-is.
type Spec []string

// ParseFile reads the filter file at path into a Spec.
func ParseFile(path string) (Spec, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening filter file %s: %w", path, err)
	}
	defer file.Close()

	spec, err := Parse(file)
	if err != nil {
		return nil, fmt.Errorf("reading filter file %s: %w", path, err)
	}
	return spec, nil
}

// Parse reads filter lines from r. A line is dropped when, after
// whitespace trimming, it is empty or starts with '#'. Every other
// trimmed line is a variable name, kept in input order. Both \n and
// \r\n line endings are accepted, and lines have no length limit, so
// the reader is consumed manually rather than through a token scanner
// with a fixed buffer.
func Parse(r io.Reader) (Spec, error) {
	var spec Spec
	reader := bufio.NewReader(r)
	for {
		line, err := reader.ReadString('\n')
		if err != nil && err != io.EOF {
			return nil, err
		}

		name := strings.TrimSpace(line)
		if name != "" && !strings.HasPrefix(name, "#") {
			spec = append(spec, name)
		}

		if err == io.EOF {
			return spec, nil
		}
	}
}
