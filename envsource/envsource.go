// Copyright 2026 The Hatchery Authors
// SPDX-License-Identifier: Apache-2.0

// Package envsource abstracts variable lookup over different views of
// "the environment": the live process table, an explicitly captured
// NAME=VALUE array, or the platform's single-variable accessor. All
// variants are read-only; none mutate the real environment.
package envsource

import (
	"os"
	"strings"
)

// Source looks up one environment variable by name. A present variable
// with an empty value reports ("", true); an absent one reports
// ("", false). The empty name is never found.
type Source interface {
	Lookup(name string) (value string, ok bool)
}

// Environ returns a Source backed by the calling process's full
// environment table. Each lookup scans a fresh copy of the table, so
// changes made with os.Setenv between lookups are visible.
func Environ() Source {
	return environSource{}
}

type environSource struct{}

func (environSource) Lookup(name string) (string, bool) {
	if name == "" {
		return "", false
	}
	return scanEntries(os.Environ(), name)
}

// Array returns a Source backed by a specific ordered list of
// NAME=VALUE strings, such as the array the process was started with.
// The first matching entry wins; entries without '=' are ignored. The
// slice is copied, so later mutation by the caller does not affect
// lookups.
func Array(entries []string) Source {
	frozen := make([]string, len(entries))
	copy(frozen, entries)
	return arraySource{entries: frozen}
}

type arraySource struct {
	entries []string
}

func (s arraySource) Lookup(name string) (string, bool) {
	if name == "" {
		return "", false
	}
	return scanEntries(s.entries, name)
}

// Getenv returns a Source that resolves each name through the
// platform's standard single-variable lookup.
func Getenv() Source {
	return getenvSource{}
}

type getenvSource struct{}

func (getenvSource) Lookup(name string) (string, bool) {
	if name == "" {
		return "", false
	}
	return os.LookupEnv(name)
}

// scanEntries finds the first "name=value" entry for name: the entry
// must start with name immediately followed by '='. Everything after
// that separator is the value, including any further '=' characters.
func scanEntries(entries []string, name string) (string, bool) {
	for _, entry := range entries {
		if len(entry) > len(name) && entry[len(name)] == '=' && strings.HasPrefix(entry, name) {
			return entry[len(name)+1:], true
		}
	}
	return "", false
}
