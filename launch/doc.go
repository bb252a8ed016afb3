// Copyright 2026 The Hatchery Authors
// SPDX-License-Identifier: Apache-2.0

// Package launch starts child processes with filtered environments
// under a bounded identity budget.
//
// A [Launcher] owns the identity counter: children are named child_00
// through child_99, the counter advances only on a successful start,
// and exhausting the range is permanent for the Launcher's lifetime.
// Each [Request] selects a launch [Method], the view of the
// environment that resolves both the CHILD_PATH discovery variable
// and the filtered variables, and whether the launch is foreground or
// background.
//
// A launch walks fixed stages: budget check, child directory
// resolution, environment build (always completed in full before any
// process is created), then the combined fork/exec start. Failures are
// classified by stage; every failure aborts only the current attempt
// and leaves the counter untouched. Background children are never
// waited on. Collecting their exit statuses is out of scope, and
// terminated background children remain zombies until the parent
// exits.
package launch
