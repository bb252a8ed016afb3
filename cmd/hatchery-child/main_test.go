// Copyright 2026 The Hatchery Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hatchery-project/hatchery/childenv"
)

func writeFilter(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "env")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestReport(t *testing.T) {
	filter := writeFilter(t, "PATH\n# comment\nHOME\nABSENT_VAR\n")
	environ := []string{
		"PATH=/usr/bin",
		"HOME=/home/worker",
		childenv.MarkerVar + "=" + filter,
	}

	var out strings.Builder
	if err := report(&out, "child_03", 4242, 4200, environ); err != nil {
		t.Fatalf("report: %v", err)
	}

	want := "Child: Name='child_03', PID=4242, PPID=4200\n" +
		"Child: Using environment filter file: " + filter + "\n" +
		"Child: Received environment variables (from filter list):\n" +
		"  PATH=/usr/bin\n" +
		"  HOME=/home/worker\n" +
		"  ABSENT_VAR=(not found in received environment)\n" +
		"Child: (child_03, 4242) exiting.\n"
	if got := out.String(); got != want {
		t.Errorf("report output:\n%s\nwant:\n%s", got, want)
	}
}

func TestReportMissingMarker(t *testing.T) {
	var out strings.Builder
	err := report(&out, "child_00", 1, 0, []string{"PATH=/usr/bin"})
	if err == nil {
		t.Fatal("report succeeded without the marker variable")
	}
	if !strings.Contains(err.Error(), childenv.MarkerVar) {
		t.Errorf("error = %q, want it to name %s", err, childenv.MarkerVar)
	}
}

func TestReportMissingFilterFile(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "no-such-filter")
	environ := []string{childenv.MarkerVar + "=" + missing}

	var out strings.Builder
	if err := report(&out, "child_00", 1, 0, environ); err == nil {
		t.Fatal("report succeeded with a missing filter file")
	}
}

func TestReportEmptyFilter(t *testing.T) {
	filter := writeFilter(t, "# only a comment\n\n")
	environ := []string{childenv.MarkerVar + "=" + filter}

	var out strings.Builder
	if err := report(&out, "child_00", 7, 1, environ); err != nil {
		t.Fatalf("report: %v", err)
	}

	got := out.String()
	if strings.Contains(got, "  ") {
		t.Errorf("empty filter produced variable lines:\n%s", got)
	}
	if !strings.Contains(got, "exiting") {
		t.Errorf("report did not reach the exit line:\n%s", got)
	}
}

func TestReportIgnoresLiveEnvironment(t *testing.T) {
	// A variable set in the live process environment but absent from
	// the received array must be reported as not found: the report
	// describes the snapshot handed over at exec time.
	t.Setenv("HATCHERY_CHILD_TEST_ONLY_LIVE", "live-value")

	filter := writeFilter(t, "HATCHERY_CHILD_TEST_ONLY_LIVE\n")
	environ := []string{childenv.MarkerVar + "=" + filter}

	var out strings.Builder
	if err := report(&out, "child_00", 7, 1, environ); err != nil {
		t.Fatalf("report: %v", err)
	}

	want := fmt.Sprintf("  %s=%s\n", "HATCHERY_CHILD_TEST_ONLY_LIVE", "(not found in received environment)")
	if !strings.Contains(out.String(), want) {
		t.Errorf("report output:\n%s\nwant it to contain %q", out.String(), want)
	}
}
