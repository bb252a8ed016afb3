// Copyright 2026 The Hatchery Authors
// SPDX-License-Identifier: Apache-2.0

package journal

import (
	"fmt"
	"path/filepath"
	"testing"
	"time"
)

func sampleRecord(sequence int) Record {
	return Record{
		Time:       time.Unix(1755763200+int64(sequence), 0).UTC(),
		Sequence:   sequence,
		Name:       fmt.Sprintf("child_%02d", sequence),
		PID:        4000 + sequence,
		Method:     "getenv",
		Background: sequence%2 == 1,
		FilterFile: "/etc/hatchery/env",
		EnvEntries: 3,
	}
}

func requireEqual(t *testing.T, got, want Record) {
	t.Helper()
	if !got.Time.Equal(want.Time) {
		t.Errorf("Time = %v, want %v", got.Time, want.Time)
	}
	if got.Sequence != want.Sequence || got.Name != want.Name || got.PID != want.PID {
		t.Errorf("identity fields = %d/%s/%d, want %d/%s/%d",
			got.Sequence, got.Name, got.PID, want.Sequence, want.Name, want.PID)
	}
	if got.Method != want.Method || got.Background != want.Background {
		t.Errorf("mode fields = %s/%v, want %s/%v", got.Method, got.Background, want.Method, want.Background)
	}
	if got.FilterFile != want.FilterFile || got.EnvEntries != want.EnvEntries {
		t.Errorf("filter fields = %s/%d, want %s/%d", got.FilterFile, got.EnvEntries, want.FilterFile, want.EnvEntries)
	}
}

func TestAppendAndReadBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journal")

	writer, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	want := []Record{sampleRecord(0), sampleRecord(1), sampleRecord(2)}
	for i, record := range want {
		if err := writer.Append(record); err != nil {
			t.Fatalf("Append %d: %v", i, err)
		}
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	got, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if len(got) != len(want) {
		t.Fatalf("ReadFile returned %d records, want %d", len(got), len(want))
	}
	for i := range want {
		requireEqual(t, got[i], want[i])
	}
}

func TestAppendAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journal")

	first, err := Open(path)
	if err != nil {
		t.Fatalf("first Open: %v", err)
	}
	if err := first.Append(sampleRecord(0)); err != nil {
		t.Fatalf("first Append: %v", err)
	}
	if err := first.Close(); err != nil {
		t.Fatalf("first Close: %v", err)
	}

	second, err := Open(path)
	if err != nil {
		t.Fatalf("second Open: %v", err)
	}
	if err := second.Append(sampleRecord(1)); err != nil {
		t.Fatalf("second Append: %v", err)
	}
	if err := second.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}

	got, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("ReadFile returned %d records, want 2", len(got))
	}
	if got[0].Sequence != 0 || got[1].Sequence != 1 {
		t.Errorf("sequences = %d, %d, want 0, 1", got[0].Sequence, got[1].Sequence)
	}
}

func TestReadFileEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journal")

	writer, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	got, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("ReadFile returned %d records, want 0", len(got))
	}
}

func TestReadFileMissing(t *testing.T) {
	_, err := ReadFile(filepath.Join(t.TempDir(), "absent"))
	if err == nil {
		t.Fatal("ReadFile should fail for a missing journal")
	}
}
