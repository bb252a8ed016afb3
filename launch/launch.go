// Copyright 2026 The Hatchery Authors
// SPDX-License-Identifier: Apache-2.0

package launch

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/hatchery-project/hatchery/childenv"
	"github.com/hatchery-project/hatchery/envsource"
	"github.com/hatchery-project/hatchery/filterspec"
	"github.com/hatchery-project/hatchery/journal"
)

const (
	// ExecDirVar names the environment variable holding the directory
	// that contains the child executable and, conventionally, the
	// default filter file.
	ExecDirVar = "CHILD_PATH"

	// MaxChildren is the identity budget: a Launcher hands out at most
	// this many identities over its lifetime.
	MaxChildren = 100

	// DefaultChildBinary is the executable name resolved inside the
	// exec directory when neither the config nor the request names one.
	DefaultChildBinary = "hatchery-child"

	// DefaultForegroundPause is the post-start pause for foreground
	// launches when the config leaves it unset.
	DefaultForegroundPause = 100 * time.Millisecond
)

// namePrefix prefixes every child display name.
const namePrefix = "child_"

// Method selects which view of the environment serves a launch
// request. The same selected source answers both the exec-directory
// resolution and the environment build, so a single request sees one
// coherent environment.
type Method int

const (
	// MethodGetenv resolves each name through the platform's
	// single-variable accessor.
	MethodGetenv Method = iota

	// MethodStartupArray resolves names against the environ snapshot
	// captured when the Launcher was created.
	MethodStartupArray

	// MethodEnviron resolves names against the live process
	// environment table.
	MethodEnviron
)

func (m Method) String() string {
	switch m {
	case MethodGetenv:
		return "getenv"
	case MethodStartupArray:
		return "startup-array"
	case MethodEnviron:
		return "environ"
	default:
		return fmt.Sprintf("method(%d)", int(m))
	}
}

// Identity is a child's sequence number and derived display name.
type Identity struct {
	// Sequence is the zero-based launch index, below MaxChildren.
	Sequence int
}

// Name returns the zero-padded display name, e.g. "child_07". It is
// the child's argv[0].
func (id Identity) Name() string {
	return fmt.Sprintf("%s%02d", namePrefix, id.Sequence)
}

// Request describes a single launch attempt.
type Request struct {
	// FilterPath is the filter specification file shaping the child's
	// environment.
	FilterPath string

	// Method selects the environment view used for this attempt.
	Method Method

	// Background skips the post-start pause. The launcher never waits
	// on the child either way.
	Background bool

	// ChildBinary overrides the configured executable name for this
	// request only. Empty means use the configured name.
	ChildBinary string
}

// Child is a successfully started child process.
type Child struct {
	Identity Identity
	Process  *os.Process
}

// Config configures a Launcher.
type Config struct {
	// ChildBinary is the executable name resolved inside the exec
	// directory. Must be a bare name, not a path. Defaults to
	// DefaultChildBinary.
	ChildBinary string

	// StartupEnviron is the environ snapshot served by
	// MethodStartupArray. Defaults to the process environment captured
	// when New runs; callers that snapshot earlier (before flag
	// parsing or config loading can touch the environment) should pass
	// their own copy.
	StartupEnviron []string

	// ForegroundPause is how long a foreground launch pauses after a
	// successful start. Zero means DefaultForegroundPause; negative
	// disables the pause.
	ForegroundPause time.Duration

	// Journal, when non-nil, receives a record of every successful
	// launch. Journal failures never fail a launch.
	Journal *journal.Writer

	// Logger receives launch progress and soft misses. Defaults to
	// slog.Default().
	Logger *slog.Logger
}

// Launcher starts child processes with filtered environments under a
// fixed identity budget. Not safe for concurrent use: launches are
// issued from a single control-flow thread.
type Launcher struct {
	childBinary     string
	startupSource   envsource.Source
	foregroundPause time.Duration
	journal         *journal.Writer
	logger          *slog.Logger

	launched int
}

// New creates a Launcher from the given config.
func New(config Config) (*Launcher, error) {
	if config.ChildBinary == "" {
		config.ChildBinary = DefaultChildBinary
	}
	if filepath.Base(config.ChildBinary) != config.ChildBinary {
		return nil, fmt.Errorf("child binary must be a bare executable name, got %q", config.ChildBinary)
	}
	if config.StartupEnviron == nil {
		config.StartupEnviron = os.Environ()
	}
	if config.ForegroundPause == 0 {
		config.ForegroundPause = DefaultForegroundPause
	}
	if config.Logger == nil {
		config.Logger = slog.Default()
	}
	return &Launcher{
		childBinary:     config.ChildBinary,
		startupSource:   envsource.Array(config.StartupEnviron),
		foregroundPause: config.ForegroundPause,
		journal:         config.Journal,
		logger:          config.Logger,
	}, nil
}

// Launched returns how many children have been started successfully.
func (l *Launcher) Launched() int {
	return l.launched
}

// Remaining returns how many identity slots are left.
func (l *Launcher) Remaining() int {
	return MaxChildren - l.launched
}

// Launch runs one attempt through its stages: budget check, exec
// directory resolution, environment build, process start. A failure at
// any stage aborts only this attempt; the identity slot is not
// consumed and the launcher stays usable. On success the returned
// Child is already running; its exit is never observed here.
func (l *Launcher) Launch(ctx context.Context, req Request) (*Child, error) {
	if l.launched >= MaxChildren {
		return nil, fmt.Errorf("%d children already launched: %w", l.launched, ErrBudgetExhausted)
	}

	source, err := l.sourceFor(req.Method)
	if err != nil {
		return nil, err
	}

	execDir, ok := source.Lookup(ExecDirVar)
	if !ok || execDir == "" {
		return nil, fmt.Errorf("resolving child directory via %s source: %w", req.Method, ErrExecDirUnset)
	}

	spec, err := filterspec.ParseFile(req.FilterPath)
	if err != nil {
		return nil, fmt.Errorf("reading filter specification: %w", err)
	}
	env, err := childenv.Build(spec, source, req.FilterPath, l.logger)
	if err != nil {
		return nil, fmt.Errorf("building child environment: %w", err)
	}

	binary := req.ChildBinary
	if binary == "" {
		binary = l.childBinary
	}
	path := filepath.Join(execDir, binary)

	identity := Identity{Sequence: l.launched}
	process, err := os.StartProcess(path, []string{identity.Name()}, &os.ProcAttr{
		Env:   env.Strings(),
		Files: []*os.File{os.Stdin, os.Stdout, os.Stderr},
	})
	if err != nil {
		return nil, classifyStartError(path, err)
	}

	l.launched++
	l.logger.Info("launched child",
		"name", identity.Name(),
		"pid", process.Pid,
		"method", req.Method.String(),
		"background", req.Background,
		"env_entries", env.Len(),
	)
	l.journalLaunch(identity, process.Pid, req, env.Len())

	if !req.Background {
		l.pause(ctx)
	}
	return &Child{Identity: identity, Process: process}, nil
}

// sourceFor maps a request method onto its environment view.
func (l *Launcher) sourceFor(method Method) (envsource.Source, error) {
	switch method {
	case MethodGetenv:
		return envsource.Getenv(), nil
	case MethodStartupArray:
		return l.startupSource, nil
	case MethodEnviron:
		return envsource.Environ(), nil
	default:
		return nil, fmt.Errorf("unknown launch method %d", int(method))
	}
}

// journalLaunch appends a record of a successful launch. The journal
// is an audit aid, not a gate: append failures are logged and the
// launch result stands.
func (l *Launcher) journalLaunch(identity Identity, pid int, req Request, entries int) {
	if l.journal == nil {
		return
	}
	record := journal.Record{
		Time:       time.Now().UTC(),
		Sequence:   identity.Sequence,
		Name:       identity.Name(),
		PID:        pid,
		Method:     req.Method.String(),
		Background: req.Background,
		FilterFile: req.FilterPath,
		EnvEntries: entries,
	}
	if err := l.journal.Append(record); err != nil {
		l.logger.Warn("journal append failed", "name", identity.Name(), "error", err)
	}
}

// pause sleeps for the foreground pause, ending early when ctx is
// cancelled. The pause interleaves parent and child output on a shared
// terminal; cutting it short does not affect the launch result.
func (l *Launcher) pause(ctx context.Context) {
	if l.foregroundPause < 0 {
		return
	}
	timer := time.NewTimer(l.foregroundPause)
	defer timer.Stop()
	select {
	case <-timer.C:
	case <-ctx.Done():
	}
}
