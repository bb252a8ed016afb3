// Copyright 2026 The Hatchery Authors
// SPDX-License-Identifier: Apache-2.0

// Package testutil provides shared test helpers for Hatchery packages.
//
// [RequireReceive], [RequireSend], and [RequireClosed] encapsulate the
// timeout safety valve pattern (select with a time.After fallback) so
// that tests exercising channels, such as signal delivery and command
// loops, cannot hang a test run on a missed send. All helpers call t.Fatalf
// on failure rather than returning errors, since failed test plumbing
// is not recoverable.
//
// This package has no Hatchery-internal dependencies.
package testutil
