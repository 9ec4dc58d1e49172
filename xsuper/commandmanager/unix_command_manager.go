package commandmanager

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
	"strings"
	"syscall"
	"time"

	"github.com/steelcutops/xsuper/logger"
	"github.com/steelcutops/xsuper/xsuper"
)

type UnixCommandManager struct {
	Logger logger.Logger

	// lookPath is swapped in tests; nil means exec.LookPath.
	lookPath func(string) (string, error)
}

func NewUnixCommandManager(log logger.Logger) *UnixCommandManager {
	if log == nil {
		log = logger.Nop()
	}
	return &UnixCommandManager{Logger: log}
}

func (u *UnixCommandManager) LookPath(name string) (string, error) {
	lookPath := u.lookPath
	if lookPath == nil {
		lookPath = exec.LookPath
	}

	path, err := lookPath(name)
	if err != nil {
		u.log().Debug("Program not found on PATH", "program", name, "error", err)
		return "", &xsuper.Error{Op: "resolve", Name: name, Err: errors.Join(xsuper.ErrExecutableNotFound, err)}
	}

	u.log().Debug("Resolved program", "program", name, "path", path)
	return path, nil
}

func (u *UnixCommandManager) Run(ctx context.Context, config CommandConfig) (CommandResult, error) {
	start := time.Now()

	cmd := exec.CommandContext(ctx, config.Command, config.Args...)
	cmd.Env = environ(config.Env)
	if config.Stdin != nil {
		cmd.Stdin = config.Stdin
	}

	var stdout bytes.Buffer
	var stderr strings.Builder
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if config.Stderr != nil {
		cmd.Stderr = config.Stderr
	}

	u.log().Debug("Executing command", "command", config.String())
	err := cmd.Run()

	result := CommandResult{
		Command:  config.String(),
		STDOUT:   stdout.Bytes(),
		STDERR:   stderr.String(),
		ExitCode: getExitCode(err),
		Duration: time.Since(start),
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		u.log().Debug("Command exited with non-zero status", "command", result.Command, "exitCode", result.ExitCode, "stderr", result.STDERR)
		return result, nil
	}
	if err != nil {
		return result, &xsuper.Error{Op: "run", Name: config.Command, Err: errors.Join(xsuper.ErrCommandIO, err)}
	}

	return result, nil
}

func (u *UnixCommandManager) RunInteractive(ctx context.Context, config CommandConfig) (int, error) {
	cmd := exec.CommandContext(ctx, config.Command, config.Args...)
	cmd.Env = environ(config.Env)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	u.log().Debug("Executing interactive command", "command", config.String())
	err := cmd.Run()

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return getExitCode(err), nil
	}
	if err != nil {
		return -1, &xsuper.Error{Op: "run interactively", Name: config.Command, Err: errors.Join(xsuper.ErrCommandIO, err)}
	}

	return 0, nil
}

func (u *UnixCommandManager) log() logger.Logger {
	if u.Logger == nil {
		return logger.Nop()
	}
	return u.Logger
}

func environ(extra []string) []string {
	if len(extra) == 0 {
		return nil
	}
	return append(os.Environ(), extra...)
}

func getExitCode(err error) int {
	if err != nil {
		if exitError, ok := err.(*exec.ExitError); ok {
			if status, ok := exitError.Sys().(syscall.WaitStatus); ok {
				return status.ExitStatus()
			}
			return exitError.ExitCode()
		}
	}
	return 0
}
