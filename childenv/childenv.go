// Copyright 2026 The Hatchery Authors
// SPDX-License-Identifier: Apache-2.0

// Package childenv builds the ordered environment a child process is
// started with: the filter spec's names resolved against an
// environment source, followed by a marker entry that tells the child
// where to find the filter file that shaped its view.
package childenv

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/hatchery-project/hatchery/envsource"
	"github.com/hatchery-project/hatchery/filterspec"
)

// MarkerVar is the name of the synthesized entry appended as the last
// element of every built environment. Its value is the absolute path
// of the filter file, letting the launched program re-read the same
// filter list from its own environment.
const MarkerVar = "CHILD_ENV_FILTER_FILE"

// Entry is one environment variable. Name is never empty; Value may
// be.
type Entry struct {
	Name  string
	Value string
}

// String renders the entry in NAME=VALUE wire form.
func (e Entry) String() string {
	return e.Name + "=" + e.Value
}

// Environment is an ordered child environment. The marker entry is
// always present and always last. The zero value is not useful; build
// one with Build.
type Environment struct {
	entries []Entry
}

// Entries returns the entries in order, marker included. The returned
// slice is shared; callers must not modify it.
func (e *Environment) Entries() []Entry {
	return e.entries
}

// Len returns the number of entries, marker included.
func (e *Environment) Len() int {
	return len(e.entries)
}

// Strings renders the environment as the ordered NAME=VALUE slice
// handed to the OS at exec time. The result is freshly allocated on
// each call.
func (e *Environment) Strings() []string {
	rendered := make([]string, len(e.entries))
	for i, entry := range e.entries {
		rendered[i] = entry.String()
	}
	return rendered
}

// Build resolves the names in spec against source, in order. A name
// present in the source becomes an entry; an absent name is a soft
// miss: it is logged and skipped, and the child simply does not
// receive that variable. The marker entry (MarkerVar = absolute
// filterPath) is appended last, even for an empty spec. Any hard
// failure returns no partial result.
func Build(spec filterspec.Spec, source envsource.Source, filterPath string, logger *slog.Logger) (*Environment, error) {
	if logger == nil {
		logger = slog.Default()
	}

	absPath, err := filepath.Abs(filterPath)
	if err != nil {
		return nil, fmt.Errorf("resolving filter file path %s: %w", filterPath, err)
	}

	entries := make([]Entry, 0, len(spec)+1)
	for _, name := range spec {
		value, ok := source.Lookup(name)
		if !ok {
			logger.Warn("filtered variable not found in source environment",
				"name", name,
				"filter_file", absPath,
			)
			continue
		}
		entries = append(entries, Entry{Name: name, Value: value})
	}

	entries = append(entries, Entry{Name: MarkerVar, Value: absPath})
	return &Environment{entries: entries}, nil
}
