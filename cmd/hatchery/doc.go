// Copyright 2026 The Hatchery Authors
// SPDX-License-Identifier: Apache-2.0

// hatchery is the interactive parent that launches worker processes
// with filtered environments.
//
// On startup it prints its own environment sorted bytewise, runs
// non-fatal diagnostics against the CHILD_PATH directory (child binary
// present, executable, fingerprint, filter file readable), and enters
// a command loop. One-character commands select how the next child's
// environment is resolved and whether the parent pauses for it:
//
//	+   foreground launch, per-variable getenv resolution
//	*   foreground launch, resolution against the environ snapshot
//	    captured at startup
//	&   background launch, resolution against the live process
//	    environment table
//	q   quit
//
// Every launch reads the filter file (--filter, or the configured name
// inside CHILD_PATH), builds an ordered NAME=VALUE environment from
// the names it lists, appends the marker entry that tells the child
// where that filter file lives, and starts
// <CHILD_PATH>/<child_binary> with argv [child_NN]. Children are never
// waited on; background children that outlive the parent are adopted
// by init. At most 100 children can be launched per run.
//
// SIGINT and SIGTERM request shutdown: the handler only sets a flag,
// and the loop exits in an orderly way instead of resuming the blocked
// read. Configuration comes from HATCHERY_CONFIG or --config (YAML,
// optional); flags override the file.
package main
