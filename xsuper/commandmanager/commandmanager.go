package commandmanager

import (
	"context"
	"io"
	"strings"
	"time"
)

// CommandConfig describes a single subprocess invocation. Command is either a
// bare program name or an already resolved path; arguments are passed as a
// vector and never through a shell.
type CommandConfig struct {
	Command string
	Args    []string
	Env     []string  // Extra KEY=VALUE pairs appended to the inherited environment
	Stdin   io.Reader // Optional; nil means no input for captured runs
	Stderr  io.Writer // Optional; when set, captured runs write stderr here instead of CommandResult.STDERR
}

// String renders the command line for logs and preview templates.
func (c CommandConfig) String() string {
	if len(c.Args) == 0 {
		return c.Command
	}
	return c.Command + " " + strings.Join(c.Args, " ")
}

// CommandResult encapsulates the results from a captured command execution.
type CommandResult struct {
	Command  string
	STDOUT   []byte
	STDERR   string
	ExitCode int
	Duration time.Duration
}

// CommandManager runs local subprocesses and resolves programs on the search path.
type CommandManager interface {
	// LookPath resolves name to an absolute path. Failures wrap xsuper.ErrExecutableNotFound.
	LookPath(name string) (string, error)

	// Run executes a command non-interactively and captures its output. A
	// non-zero exit status is reported in the result, not as an error.
	Run(ctx context.Context, config CommandConfig) (CommandResult, error)

	// RunInteractive executes a command attached to the controlling terminal
	// and waits for it to exit.
	RunInteractive(ctx context.Context, config CommandConfig) (int, error)
}
