// Copyright 2026 The Hatchery Authors
// SPDX-License-Identifier: Apache-2.0

// Package journal records launch attempts in an append-only file.
// Records form a CBOR sequence (one deterministic data item per
// launch, no framing), so the file can be read back incrementally and
// survives being appended to across parent restarts.
package journal

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/hatchery-project/hatchery/lib/codec"
)

// Record is one launch attempt that produced a live child.
type Record struct {
	Time       time.Time `cbor:"time"`
	Sequence   int       `cbor:"sequence"`
	Name       string    `cbor:"name"`
	PID        int       `cbor:"pid"`
	Method     string    `cbor:"method"`
	Background bool      `cbor:"background"`
	FilterFile string    `cbor:"filter_file"`
	EnvEntries int       `cbor:"env_entries"`
}

// Writer appends records to a journal file. Not safe for concurrent
// use; the parent's single control-flow thread is the only writer.
type Writer struct {
	file    *os.File
	encoder *codec.Encoder
}

// Open opens the journal at path for appending, creating it if needed.
func Open(path string) (*Writer, error) {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("opening journal %s: %w", path, err)
	}
	return &Writer{file: file, encoder: codec.NewEncoder(file)}, nil
}

// Append writes one record.
func (w *Writer) Append(record Record) error {
	if err := w.encoder.Encode(record); err != nil {
		return fmt.Errorf("appending journal record: %w", err)
	}
	return nil
}

// Close closes the underlying file.
func (w *Writer) Close() error {
	return w.file.Close()
}

// ReadFile decodes every record in the journal at path.
func ReadFile(path string) ([]Record, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening journal %s: %w", path, err)
	}
	defer file.Close()

	var records []Record
	decoder := codec.NewDecoder(file)
	for {
		var record Record
		if err := decoder.Decode(&record); err != nil {
			if errors.Is(err, io.EOF) {
				return records, nil
			}
			return nil, fmt.Errorf("decoding journal %s: %w", path, err)
		}
		records = append(records, record)
	}
}
