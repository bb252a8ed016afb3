// Copyright 2026 The Hatchery Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/hatchery-project/hatchery/launch"
	"github.com/hatchery-project/hatchery/lib/config"
	"github.com/hatchery-project/hatchery/shutdown"
)

const banner = "Enter command (+ = launch fg getenv, * = launch fg startup-array, & = launch bg environ, q = quit):"

// loopConfig wires the interactive command loop.
type loopConfig struct {
	Launcher       *launch.Launcher
	Monitor        *shutdown.Monitor
	Config         *config.Config
	FilterOverride string
	Logger         *slog.Logger
	Input          io.Reader
	Output         io.Writer

	// Styled enables prompt and launch-line styling; set it when
	// Output is a terminal.
	Styled bool
}

// commandLoop owns the interactive surface: prompt, token dispatch,
// launch reporting, shutdown handling.
type commandLoop struct {
	launcher       *launch.Launcher
	monitor        *shutdown.Monitor
	config         *config.Config
	filterOverride string
	logger         *slog.Logger
	input          io.Reader
	output         io.Writer
	styled         bool

	promptStyle lipgloss.Style
	bannerStyle lipgloss.Style
	launchStyle lipgloss.Style
}

func newCommandLoop(cfg loopConfig) *commandLoop {
	return &commandLoop{
		launcher:       cfg.Launcher,
		monitor:        cfg.Monitor,
		config:         cfg.Config,
		filterOverride: cfg.FilterOverride,
		logger:         cfg.Logger,
		input:          cfg.Input,
		output:         cfg.Output,
		styled:         cfg.Styled,
		promptStyle:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6")),
		bannerStyle:    lipgloss.NewStyle().Faint(true),
		launchStyle:    lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
	}
}

// render applies style to text when the output is a terminal.
func (cl *commandLoop) render(style lipgloss.Style, text string) string {
	if cl.styled {
		return style.Render(text)
	}
	return text
}

// run reads commands until quit, EOF, or a shutdown signal. Input is
// read by a goroutine feeding a channel so the loop can observe the
// signal monitor while a read is pending; after a signal the loop
// never returns to the blocked read.
func (cl *commandLoop) run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Propagate the shutdown signal into the context so an in-flight
	// foreground pause ends early.
	stopped := make(chan struct{})
	defer close(stopped)
	go func() {
		select {
		case <-cl.monitor.Done():
			cancel()
		case <-stopped:
		}
	}()

	fmt.Fprintln(cl.output)
	fmt.Fprintln(cl.output, cl.render(cl.bannerStyle, banner))

	var readErr error
	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(cl.input)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-cl.monitor.Done():
				return
			}
		}
		readErr = scanner.Err()
	}()

	for {
		if cl.monitor.Requested() {
			return cl.exitOnSignal()
		}

		fmt.Fprint(cl.output, cl.render(cl.promptStyle, "> "))
		select {
		case <-cl.monitor.Done():
			return cl.exitOnSignal()
		case line, ok := <-lines:
			if !ok {
				// The reader goroutine also stops when a signal
				// arrives mid-send, so a closed channel is not
				// proof of EOF.
				if cl.monitor.Requested() {
					return cl.exitOnSignal()
				}
				fmt.Fprintln(cl.output, "\nEOF reached. Exiting.")
				return readErr
			}
			if quit := cl.dispatch(ctx, line); quit {
				return nil
			}
		}
	}
}

// exitOnSignal reports the signal-initiated exit. The prompt is still
// open on the current line, so the report starts on a fresh one.
func (cl *commandLoop) exitOnSignal() error {
	fmt.Fprintln(cl.output)
	cl.logger.Info("shutdown signal received, exiting")
	return nil
}

// dispatch interprets one input line. The first non-space character
// selects the command; the rest of the line is ignored. Reports
// whether the loop should quit.
func (cl *commandLoop) dispatch(ctx context.Context, line string) bool {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return false
	}

	token := trimmed[0]
	switch token {
	case '+':
		fmt.Fprintln(cl.output, "Command: +")
		cl.launchChild(ctx, launch.MethodGetenv, false)
	case '*':
		fmt.Fprintln(cl.output, "Command: *")
		cl.launchChild(ctx, launch.MethodStartupArray, false)
	case '&':
		fmt.Fprintln(cl.output, "Command: &")
		cl.launchChild(ctx, launch.MethodEnviron, true)
	case 'q':
		fmt.Fprintln(cl.output, "Command: q\nExiting.")
		return true
	default:
		fmt.Fprintf(cl.output, "Unknown command: %q\n", string(token))
	}
	return false
}

// launchChild issues one launch request and reports the outcome. A
// failed attempt is logged and the loop continues; only the current
// attempt is lost.
func (cl *commandLoop) launchChild(ctx context.Context, method launch.Method, background bool) {
	filter, err := cl.resolveFilter()
	if err != nil {
		cl.logger.Error("launch aborted", "method", method.String(), "error", err)
		return
	}

	child, err := cl.launcher.Launch(ctx, launch.Request{
		FilterPath: filter,
		Method:     method,
		Background: background,
	})
	if err != nil {
		cl.logger.Error("launch failed", "method", method.String(), "filter_file", filter, "error", err)
		return
	}

	suffix := ""
	if background {
		suffix = " in background"
	}
	line := fmt.Sprintf("Parent: Launched child '%s' (PID: %d)%s.", child.Identity.Name(), child.Process.Pid, suffix)
	fmt.Fprintln(cl.output, cl.render(cl.launchStyle, line))
}

// resolveFilter picks the filter file for one launch: the --filter
// override verbatim, else the configured file name inside the
// directory CHILD_PATH names at command time.
func (cl *commandLoop) resolveFilter() (string, error) {
	if cl.filterOverride != "" {
		return cl.filterOverride, nil
	}
	dir, ok := os.LookupEnv(launch.ExecDirVar)
	if !ok || dir == "" {
		return "", fmt.Errorf("%s is not set; cannot locate the default filter file", launch.ExecDirVar)
	}
	return filepath.Join(dir, cl.config.FilterFile), nil
}
