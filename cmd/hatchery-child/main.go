// Copyright 2026 The Hatchery Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/hatchery-project/hatchery/childenv"
	"github.com/hatchery-project/hatchery/envsource"
	"github.com/hatchery-project/hatchery/filterspec"
	"github.com/hatchery-project/hatchery/lib/process"
	"github.com/hatchery-project/hatchery/lib/version"
)

func main() {
	if len(os.Args) > 1 && os.Args[1] == "--version" {
		fmt.Printf("hatchery-child %s\n", version.Info())
		return
	}

	name := "child (unknown name)"
	if len(os.Args) > 0 && os.Args[0] != "" {
		name = os.Args[0]
	}
	if err := report(os.Stdout, name, os.Getpid(), os.Getppid(), os.Environ()); err != nil {
		process.Fatal(err)
	}
}

// report writes the child's view of its filtered environment to w.
// name is the display name received as argv[0]; environ is the
// NAME=VALUE array received at exec time. Every lookup goes through
// environ, never through live getenv.
func report(w io.Writer, name string, pid, ppid int, environ []string) error {
	fmt.Fprintf(w, "Child: Name='%s', PID=%d, PPID=%d\n", name, pid, ppid)

	received := envsource.Array(environ)
	filterPath, ok := received.Lookup(childenv.MarkerVar)
	if !ok {
		return fmt.Errorf("%s not found in received environment", childenv.MarkerVar)
	}
	fmt.Fprintf(w, "Child: Using environment filter file: %s\n", filterPath)

	spec, err := filterspec.ParseFile(filterPath)
	if err != nil {
		return fmt.Errorf("reading filter file: %w", err)
	}

	fmt.Fprintln(w, "Child: Received environment variables (from filter list):")
	for _, varName := range spec {
		value, ok := received.Lookup(varName)
		if !ok {
			value = "(not found in received environment)"
		}
		fmt.Fprintf(w, "  %s=%s\n", varName, value)
	}

	fmt.Fprintf(w, "Child: (%s, %d) exiting.\n", name, pid)
	return nil
}
