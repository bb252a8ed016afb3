// Copyright 2026 The Hatchery Authors
// SPDX-License-Identifier: Apache-2.0

package launch

import (
	"errors"
	"fmt"
	"syscall"

	"golang.org/x/sys/unix"
)

// ErrBudgetExhausted is returned once all 100 child identities have
// been used. The budget never resets within a Launcher's lifetime.
var ErrBudgetExhausted = errors.New("child identity budget exhausted")

// ErrExecDirUnset is returned when the discovery variable naming the
// child executable's directory is missing or empty in the selected
// source.
var ErrExecDirUnset = errors.New(ExecDirVar + " is not set or is empty")

// Phase identifies which half of process creation failed.
type Phase string

const (
	// PhaseFork is process creation: the OS could not produce a new
	// process at all (resource limits, memory).
	PhaseFork Phase = "fork"

	// PhaseExec is image replacement: a process was created (or would
	// have been) but the target program could not be loaded (missing
	// binary, permissions, format).
	PhaseExec Phase = "exec"
)

// StartError reports a failed start with the phase that failed and the
// executable path involved. A StartError never consumes an identity
// slot.
type StartError struct {
	Phase Phase
	Path  string
	Err   error
}

func (e *StartError) Error() string {
	return fmt.Sprintf("%s failed for %s: %v", e.Phase, e.Path, e.Err)
}

func (e *StartError) Unwrap() error {
	return e.Err
}

// IsStartError reports whether err is (or wraps) a StartError.
func IsStartError(err error) (*StartError, bool) {
	var startErr *StartError
	if errors.As(err, &startErr) {
		return startErr, true
	}
	return nil, false
}

// classifyStartError maps a combined fork/exec failure onto its phase.
// The start primitive reports both halves through a single error; the
// errno separates process-creation failures from image-replacement
// failures. Anything that is not a recognizable creation errno is
// treated as exec-phase, the far more common case (bad path, missing
// binary, permissions).
func classifyStartError(path string, err error) *StartError {
	phase := PhaseExec
	var errno syscall.Errno
	if errors.As(err, &errno) {
		switch errno {
		case unix.EAGAIN, unix.ENOMEM, unix.ENOSYS:
			phase = PhaseFork
		}
	}
	return &StartError{Phase: phase, Path: path, Err: err}
}
