// Copyright 2026 The Hatchery Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"golang.org/x/sys/unix"

	"github.com/hatchery-project/hatchery/launch"
	"github.com/hatchery-project/hatchery/lib/binident"
	"github.com/hatchery-project/hatchery/lib/config"
)

// diagnose runs the startup health checks against the CHILD_PATH
// directory. Everything here is informational: launches resolve their
// own paths per request, so a broken setup now produces warnings, not
// a refusal to start.
func diagnose(logger *slog.Logger, cfg *config.Config) {
	dir, ok := os.LookupEnv(launch.ExecDirVar)
	if !ok || dir == "" {
		logger.Warn("child directory variable is not set; launches will fail until it is exported",
			"variable", launch.ExecDirVar)
		return
	}

	binaryPath := filepath.Join(dir, cfg.ChildBinary)
	if err := validateBinary(binaryPath); err != nil {
		logger.Warn("child binary check failed", "path", binaryPath, "error", err)
	} else {
		reportDigest(logger, cfg, binaryPath)
	}

	filterPath := filepath.Join(dir, cfg.FilterFile)
	if err := unix.Access(filterPath, unix.R_OK); err != nil {
		logger.Warn("default filter file is not readable", "path", filterPath, "error", err)
	}
}

// reportDigest logs the child binary's content fingerprint and checks
// it against the configured pin, if any.
func reportDigest(logger *slog.Logger, cfg *config.Config, binaryPath string) {
	digest, err := binident.File(binaryPath)
	if err != nil {
		logger.Warn("child binary fingerprint failed", "path", binaryPath, "error", err)
		return
	}
	logger.Info("child binary", "path", binaryPath, "sha256", digest.String())

	pin, pinned, err := cfg.DigestPin()
	if err != nil || !pinned {
		return
	}
	if pin != digest {
		logger.Warn("child binary does not match the configured digest pin",
			"path", binaryPath, "sha256", digest.String(), "pinned", pin.String())
	}
}

// validateBinary checks that path names a regular file with an
// executable bit set.
func validateBinary(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("not a regular file")
	}
	if info.Mode().Perm()&0111 == 0 {
		return fmt.Errorf("not executable")
	}
	return nil
}
