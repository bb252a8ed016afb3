// Copyright 2026 The Hatchery Authors
// SPDX-License-Identifier: Apache-2.0

// Package shutdown converts interrupt-class signals into a pollable
// shutdown flag. The signal path does the minimum reentrant-safe work:
// set an atomic flag and close a channel once. All cleanup belongs to
// the loop that polls the flag, never to the signal path itself.
package shutdown

import (
	"os"
	"os/signal"
	"sync"
	"sync/atomic"
	"syscall"
)

// Monitor watches for interrupt-class signals. The flag is set on the
// first signal and never cleared; process exit is the only reset.
type Monitor struct {
	requested atomic.Bool
	done      chan struct{}
	incoming  chan os.Signal
	stopOnce  sync.Once
}

// NewMonitor installs handlers for the given signals and starts
// watching. With no arguments it watches SIGINT and SIGTERM.
func NewMonitor(signals ...os.Signal) *Monitor {
	if len(signals) == 0 {
		signals = []os.Signal{syscall.SIGINT, syscall.SIGTERM}
	}

	monitor := &Monitor{
		done:     make(chan struct{}),
		incoming: make(chan os.Signal, 2),
	}
	signal.Notify(monitor.incoming, signals...)
	go monitor.watch()
	return monitor
}

func (m *Monitor) watch() {
	for range m.incoming {
		if !m.requested.Swap(true) {
			close(m.done)
		}
	}
}

// Requested reports whether a shutdown signal has arrived. Poll this
// between blocking operations.
func (m *Monitor) Requested() bool {
	return m.requested.Load()
}

// Done returns a channel closed when the first signal arrives, for
// select-based loops that must unblock on shutdown.
func (m *Monitor) Done() <-chan struct{} {
	return m.done
}

// Stop uninstalls the signal handlers and releases the watch
// goroutine. The flag keeps its value. Safe to call more than once.
func (m *Monitor) Stop() {
	m.stopOnce.Do(func() {
		signal.Stop(m.incoming)
		close(m.incoming)
	})
}
