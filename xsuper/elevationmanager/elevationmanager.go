package elevationmanager

import (
	"fmt"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/steelcutops/xsuper/xsuper"
	cm "github.com/steelcutops/xsuper/xsuper/commandmanager"
	"github.com/steelcutops/xsuper/xsuper/environmentmanager"
)

// Handler is a privilege elevation program.
type Handler int

const (
	Doas Handler = iota + 1
	Sudo
	Gsudo
	Pkexec
	Please
)

// Priority is the probe order used when no handler is configured. doas is
// preferred over sudo.
var Priority = []Handler{Doas, Sudo, Gsudo, Pkexec, Please}

func (h Handler) String() string {
	switch h {
	case Doas:
		return "doas"
	case Sudo:
		return "sudo"
	case Gsudo:
		return "gsudo"
	case Pkexec:
		return "pkexec"
	case Please:
		return "please"
	default:
		return fmt.Sprintf("Handler(%d)", int(h))
	}
}

// ParseHandler matches name case-insensitively against the known handlers.
func ParseHandler(name string) (Handler, error) {
	for _, h := range Priority {
		if strings.EqualFold(name, h.String()) {
			return h, nil
		}
	}
	return 0, &xsuper.Error{Op: "parse elevation handler", Name: name, Err: xsuper.ErrUnrecognizedElevationHandler}
}

// PathResolver resolves a program name on the search path.
type PathResolver interface {
	LookPath(name string) (string, error)
}

// Detect returns the override when one is given, otherwise the first handler
// in Priority that resolves on the search path.
func Detect(override string, resolver PathResolver) (Handler, error) {
	if override != "" {
		return ParseHandler(override)
	}

	var result *multierror.Error
	for _, h := range Priority {
		if _, err := resolver.LookPath(h.String()); err != nil {
			result = multierror.Append(result, err)
			continue
		}
		return h, nil
	}

	return 0, &xsuper.Error{Op: "detect elevation handler", Err: fmt.Errorf("%w: %w", xsuper.ErrElevationFailed, result.ErrorOrNil())}
}

// ShouldElevate reports whether mutating operations need elevation. The
// sandbox package tooling already runs unprivileged.
func ShouldElevate(env environmentmanager.Environment) bool {
	return !env.Sandboxed
}

// Elevator wraps commands in the detected handler.
type Elevator struct {
	Handler     Handler
	Environment environmentmanager.Environment
	Resolver    PathResolver
}

func (e *Elevator) ShouldElevate() bool {
	return ShouldElevate(e.Environment)
}

// Elevate returns a command running config under the handler. The original
// program and arguments follow the handler verbatim as an argument vector.
func (e *Elevator) Elevate(config cm.CommandConfig) (cm.CommandConfig, error) {
	path, err := e.Resolver.LookPath(e.Handler.String())
	if err != nil {
		return cm.CommandConfig{}, fmt.Errorf("elevating with %s: %w", e.Handler, err)
	}

	args := make([]string, 0, len(config.Args)+1)
	args = append(args, config.Command)
	args = append(args, config.Args...)

	return cm.CommandConfig{
		Command: path,
		Args:    args,
		Env:     config.Env,
		Stdin:   config.Stdin,
	}, nil
}
