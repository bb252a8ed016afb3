// Copyright 2026 The Hatchery Authors
// SPDX-License-Identifier: Apache-2.0

package filterspec

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Spec
	}{
		{
			name:  "plain names",
			input: "PATH\nHOME\nTERM\n",
			want:  Spec{"PATH", "HOME", "TERM"},
		},
		{
			name:  "comments and blanks dropped",
			input: "PATH\n#comment\nHOME\n\nFOO\n",
			want:  Spec{"PATH", "HOME", "FOO"},
		},
		{
			name:  "whitespace trimmed",
			input: "  PATH  \n\tHOME\t\n",
			want:  Spec{"PATH", "HOME"},
		},
		{
			name:  "comment after leading whitespace",
			input: "   # indented comment\nPATH\n",
			want:  Spec{"PATH"},
		},
		{
			name:  "crlf line endings",
			input: "PATH\r\nHOME\r\n",
			want:  Spec{"PATH", "HOME"},
		},
		{
			name:  "no trailing newline",
			input: "PATH\nHOME",
			want:  Spec{"PATH", "HOME"},
		},
		{
			name:  "duplicates preserved in order",
			input: "PATH\nHOME\nPATH\n",
			want:  Spec{"PATH", "HOME", "PATH"},
		},
		{
			name:  "whitespace-only lines dropped",
			input: "   \n\t\nPATH\n",
			want:  Spec{"PATH"},
		},
		{
			name:  "empty input",
			input: "",
			want:  nil,
		},
		{
			name:  "only comments",
			input: "# one\n# two\n",
			want:  nil,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got, err := Parse(strings.NewReader(test.input))
			if err != nil {
				t.Fatalf("Parse: %v", err)
			}
			if !slices.Equal(got, test.want) {
				t.Errorf("Parse = %q, want %q", got, test.want)
			}
		})
	}
}

func TestParseLongLine(t *testing.T) {
	// Names longer than any default scanner token buffer must survive:
	// the filter grammar puts no limit on line length.
	name := strings.Repeat("A", 256*1024)
	got, err := Parse(strings.NewReader(name + "\nPATH\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(got) != 2 || got[0] != name || got[1] != "PATH" {
		t.Errorf("long line not preserved: got %d names", len(got))
	}
}

func TestParseFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "filter")
	if err := os.WriteFile(path, []byte("PATH\n#skip\nHOME\n"), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	got, err := ParseFile(path)
	if err != nil {
		t.Fatalf("ParseFile: %v", err)
	}
	if want := (Spec{"PATH", "HOME"}); !slices.Equal(got, want) {
		t.Errorf("ParseFile = %q, want %q", got, want)
	}
}

func TestParseFileMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "does-not-exist")
	_, err := ParseFile(path)
	if err == nil {
		t.Fatal("ParseFile should fail for a missing file")
	}
	if !strings.Contains(err.Error(), path) {
		t.Errorf("error should name the path, got: %v", err)
	}
}
