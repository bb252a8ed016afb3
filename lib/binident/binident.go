// Copyright 2026 The Hatchery Authors
// SPDX-License-Identifier: Apache-2.0

// Package binident fingerprints executable files by content.
//
// The parent reports the SHA256 digest of the child binary at startup
// so operators can tell which build their launches will run, and can
// optionally pin the expected digest in configuration. The digest is
// of file content only; a rebuilt but byte-identical binary has the
// same identity.
package binident

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
)

// Digest is a SHA256 content digest.
type Digest [32]byte

// String returns the canonical hex encoding used in logs and
// configuration pins.
func (d Digest) String() string {
	return hex.EncodeToString(d[:])
}

// File computes the digest of the file at path. The file is streamed
// through the hash in chunks so memory usage stays constant regardless
// of binary size.
func File(path string) (Digest, error) {
	file, err := os.Open(path)
	if err != nil {
		return Digest{}, fmt.Errorf("opening %s for fingerprinting: %w", path, err)
	}
	defer file.Close()

	hasher := sha256.New()
	if _, err := io.Copy(hasher, file); err != nil {
		return Digest{}, fmt.Errorf("fingerprinting %s: %w", path, err)
	}

	var digest Digest
	copy(digest[:], hasher.Sum(nil))
	return digest, nil
}

// Parse parses a hex-encoded digest, validating that it encodes
// exactly 32 bytes.
func Parse(hexString string) (Digest, error) {
	var digest Digest
	decoded, err := hex.DecodeString(hexString)
	if err != nil {
		return digest, fmt.Errorf("parsing digest: %w", err)
	}
	if len(decoded) != len(digest) {
		return digest, fmt.Errorf("digest is %d bytes, want %d", len(decoded), len(digest))
	}
	copy(digest[:], decoded)
	return digest, nil
}
