// Copyright 2026 The Hatchery Authors
// SPDX-License-Identifier: Apache-2.0

// hatchery-child is the payload binary started by the hatchery parent.
// It makes environment filtering observable end to end: it prints the
// identity the parent gave it (argv[0], PID, PPID), locates the filter
// file through the marker variable the parent appended to its
// environment, re-reads the filter, and reports the value each
// filtered name actually has in the environment it received at exec
// time.
//
// The lookups deliberately go through the received environment array,
// not per-name getenv calls: the report must describe the exact
// snapshot the parent handed over, unaffected by anything that mutates
// the process environment afterwards.
//
// The binary is launched with argv = [child_NN] and the built
// environment only; it takes no flags besides --version and performs
// no logging. Stdout is the report, stderr the failure channel.
package main
