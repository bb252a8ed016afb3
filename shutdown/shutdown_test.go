// Copyright 2026 The Hatchery Authors
// SPDX-License-Identifier: Apache-2.0

package shutdown

import (
	"os"
	"syscall"
	"testing"
	"time"

	"github.com/hatchery-project/hatchery/lib/testutil"
)

func TestMonitorStartsClear(t *testing.T) {
	monitor := NewMonitor(syscall.SIGUSR1)
	defer monitor.Stop()

	if monitor.Requested() {
		t.Error("Requested should be false before any signal")
	}
	select {
	case <-monitor.Done():
		t.Error("Done should not be closed before any signal")
	default:
	}
}

func TestMonitorSetsFlagOnSignal(t *testing.T) {
	monitor := NewMonitor(syscall.SIGUSR1)
	defer monitor.Stop()

	if err := syscall.Kill(os.Getpid(), syscall.SIGUSR1); err != nil {
		t.Fatalf("Kill: %v", err)
	}

	testutil.RequireClosed(t, monitor.Done(), 5*time.Second, "waiting for signal delivery")
	if !monitor.Requested() {
		t.Error("Requested should be true after the signal")
	}
}

func TestMonitorAbsorbsRepeatedSignals(t *testing.T) {
	monitor := NewMonitor(syscall.SIGUSR1)
	defer monitor.Stop()

	for i := 0; i < 3; i++ {
		if err := syscall.Kill(os.Getpid(), syscall.SIGUSR1); err != nil {
			t.Fatalf("Kill %d: %v", i, err)
		}
	}

	testutil.RequireClosed(t, monitor.Done(), 5*time.Second, "waiting for first signal")
	// Give the later deliveries time to drain through the watch loop;
	// the only observable effect must be the already-set flag.
	time.Sleep(50 * time.Millisecond)
	if !monitor.Requested() {
		t.Error("Requested should remain true")
	}
}

func TestMonitorStopIsIdempotent(t *testing.T) {
	monitor := NewMonitor(syscall.SIGUSR1)
	monitor.Stop()
	monitor.Stop()
}

func TestMonitorFlagSurvivesStop(t *testing.T) {
	monitor := NewMonitor(syscall.SIGUSR1)

	if err := syscall.Kill(os.Getpid(), syscall.SIGUSR1); err != nil {
		t.Fatalf("Kill: %v", err)
	}
	testutil.RequireClosed(t, monitor.Done(), 5*time.Second, "waiting for signal delivery")

	monitor.Stop()
	if !monitor.Requested() {
		t.Error("Requested should stay true after Stop")
	}
}
