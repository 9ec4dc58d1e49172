package selector

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	multierror "github.com/hashicorp/go-multierror"
	"github.com/steelcutops/xsuper/logger"
	"github.com/steelcutops/xsuper/xsuper"
	cm "github.com/steelcutops/xsuper/xsuper/commandmanager"
)

// Placeholder is substituted by the fuzzy finder with the highlighted line.
const Placeholder = "{}"

// DefaultPreviewWindow puts the preview on the right two thirds, wrapped.
const DefaultPreviewWindow = "right:66%:wrap"

const (
	exitNoMatch     = 1
	exitInterrupted = 130
)

// Selector lets the user pick a subset of candidates.
type Selector interface {
	// Select returns the chosen candidates, or xsuper.ErrSelectionAborted if
	// the user cancelled.
	Select(ctx context.Context, candidates []string, queryCommand string) ([]string, error)
}

// FuzzySelector runs an fzf-compatible fuzzy finder in multi-select mode.
type FuzzySelector struct {
	CommandManager cm.CommandManager
	Programs       []string // Tried in order; the first on PATH is used
	PreviewWindow  string
	Logger         logger.Logger

	// Stderr receives the finder's stderr, where older fzf releases draw
	// their interface. Nil means os.Stderr.
	Stderr io.Writer
}

// PreviewCommand appends the placeholder to a query command line.
func PreviewCommand(queryCommand string) string {
	return queryCommand + " " + Placeholder
}

func (s *FuzzySelector) Select(ctx context.Context, candidates []string, queryCommand string) ([]string, error) {
	program, err := s.resolve()
	if err != nil {
		return nil, err
	}

	window := s.PreviewWindow
	if window == "" {
		window = DefaultPreviewWindow
	}

	config := cm.CommandConfig{
		Command: program,
		Args: []string{
			"--multi",
			"--preview", PreviewCommand(queryCommand),
			"--preview-window", window,
		},
		Stdin:  strings.NewReader(strings.Join(candidates, "\n")),
		Stderr: s.stderr(),
	}

	result, err := s.CommandManager.Run(ctx, config)
	if err != nil {
		return nil, err
	}

	switch result.ExitCode {
	case 0:
	case exitNoMatch:
		s.log().Debug("Fuzzy finder matched nothing", "program", program)
		return nil, nil
	case exitInterrupted:
		return nil, xsuper.ErrSelectionAborted
	default:
		return nil, &xsuper.Error{
			Op:   "select",
			Name: program,
			Err:  fmt.Errorf("%w: exit status %d", xsuper.ErrCommandIO, result.ExitCode),
		}
	}

	var selected []string
	for _, line := range strings.Split(string(result.STDOUT), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			selected = append(selected, line)
		}
	}

	s.log().Debug("Packages selected", "count", len(selected))
	return selected, nil
}

func (s *FuzzySelector) resolve() (string, error) {
	var result *multierror.Error
	for _, name := range s.Programs {
		path, err := s.CommandManager.LookPath(name)
		if err == nil {
			return path, nil
		}
		result = multierror.Append(result, err)
	}
	if result == nil {
		return "", &xsuper.Error{Op: "select", Err: fmt.Errorf("%w: no fuzzy finder configured", xsuper.ErrExecutableNotFound)}
	}
	return "", &xsuper.Error{Op: "select", Err: result.ErrorOrNil()}
}

func (s *FuzzySelector) stderr() io.Writer {
	if s.Stderr == nil {
		return os.Stderr
	}
	return s.Stderr
}

func (s *FuzzySelector) log() logger.Logger {
	if s.Logger == nil {
		return logger.Nop()
	}
	return s.Logger
}
