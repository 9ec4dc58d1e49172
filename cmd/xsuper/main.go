package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/gookit/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/steelcutops/xsuper/internal/config"
	"github.com/steelcutops/xsuper/internal/progress"
	"github.com/steelcutops/xsuper/logger"
	"github.com/steelcutops/xsuper/xsuper"
	"github.com/steelcutops/xsuper/xsuper/commandmanager"
	"github.com/steelcutops/xsuper/xsuper/distromanager"
	"github.com/steelcutops/xsuper/xsuper/elevationmanager"
	"github.com/steelcutops/xsuper/xsuper/environmentmanager"
	"github.com/steelcutops/xsuper/xsuper/filemanager"
	"github.com/steelcutops/xsuper/xsuper/packagemanager"
	"github.com/steelcutops/xsuper/xsuper/selector"
)

var errNoSwitch = errors.New("no switch passed")

type flags struct {
	Install          bool
	Remove           bool
	ElevationHandler string
	Debug            bool
	ConfigPath       string
}

// host bundles everything the workflow touches outside the process.
type host struct {
	Commands    func(log logger.Logger) commandmanager.CommandManager
	Files       filemanager.FileManager
	Environment environmentmanager.EnvironmentManager
	Stdout      io.Writer
	Stderr      io.Writer
	Interactive func() bool
}

func main() {
	os.Exit(run(os.Args[1:], localHost()))
}

func localHost() host {
	return host{
		Commands: func(log logger.Logger) commandmanager.CommandManager {
			return commandmanager.NewUnixCommandManager(log)
		},
		Files:       &filemanager.UnixFileManager{},
		Environment: &environmentmanager.UnixEnvironmentManager{},
		Stdout:      os.Stdout,
		Stderr:      os.Stderr,
		Interactive: func() bool { return term.IsTerminal(int(os.Stdin.Fd())) },
	}
}

// run executes the CLI and returns the process exit code.
func run(args []string, h host) int {
	cmd := newRootCmd(h)
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(context.Background())
	switch {
	case err == nil:
		return 0
	case errors.Is(err, xsuper.ErrSelectionAborted):
		return 0
	case errors.Is(err, errNoSwitch):
		return 1
	default:
		fmt.Fprintln(h.Stderr, color.Danger.Sprint("ERROR: "+err.Error()))
		return 1
	}
}

func newRootCmd(h host) *cobra.Command {
	var f flags

	cmd := &cobra.Command{
		Use:   "xsuper",
		Short: "Fuzzy install and remove packages with the native package manager",
		Long: `xsuper lists the packages your distribution offers or has installed,
lets you pick some in a fuzzy finder with a live preview, and hands the
selection to the native package manager.

Supported backends: pacman (Arch), apt (Debian), xbps (Void), zypper (openSUSE).`,
		Example: `  # Pick packages to install
  xsuper --install

  # Pick installed packages to remove, elevating with sudo
  xsuper -r -e sudo`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !f.Install && !f.Remove {
				fmt.Fprintln(cmd.ErrOrStderr(), "ERROR: No switch passed!")
				_ = cmd.Help()
				return errNoSwitch
			}
			return execute(cmd.Context(), f, h)
		},
	}

	cmd.SetOut(h.Stdout)
	cmd.SetErr(h.Stderr)

	cmd.Flags().BoolVarP(&f.Install, "install", "i", false, "Select packages to install")
	cmd.Flags().BoolVarP(&f.Remove, "remove", "r", false, "Select installed packages to remove")
	cmd.Flags().StringVarP(&f.ElevationHandler, "elevation-handler", "e", "", "Elevation program to use (doas, sudo, gsudo, pkexec, please)")
	cmd.Flags().BoolVar(&f.Debug, "debug", false, "Enable debug log level")
	cmd.Flags().StringVar(&f.ConfigPath, "config", "", "Path to a JSON config file")
	cmd.MarkFlagsMutuallyExclusive("install", "remove")

	return cmd
}

func execute(ctx context.Context, f flags, h host) error {
	cfg, err := config.Load(f.ConfigPath)
	if err != nil {
		return err
	}

	log, closeLog, err := newLogger(cfg, f.Debug, h.Stderr)
	if err != nil {
		return err
	}
	defer closeLog()

	commands := h.Commands(log)

	env := environmentmanager.Detect(h.Files)
	log.Debug("Environment detected", "sandboxed", env.Sandboxed, "prefix", env.Prefix)

	backend, err := distromanager.Detect(env, h.Files)
	if err != nil {
		return err
	}
	log.Debug("Backend detected", "backend", backend.String())

	pm := &packagemanager.PackageManager{
		Backend:        backend,
		CommandManager: commands,
		Logger:         log,
	}

	override := f.ElevationHandler
	if override == "" {
		override = cfg.ElevationHandler
	}
	if elevationmanager.ShouldElevate(env) || override != "" {
		handler, err := elevationmanager.Detect(override, commands)
		if err != nil {
			return err
		}
		log.Debug("Elevation handler detected", "handler", handler.String())
		pm.Elevator = &elevationmanager.Elevator{Handler: handler, Environment: env, Resolver: commands}
	}

	var candidates []string
	spinner := progress.New(cfg.ShowProgress)
	err = spinner.Track("Loading packages", func() error {
		var err error
		if f.Install {
			candidates, err = pm.AvailablePackages(ctx)
		} else {
			candidates, err = pm.InstalledPackages(ctx)
		}
		return err
	})
	if err != nil {
		return err
	}

	if err := env.PatchTerminfo(h.Environment); err != nil {
		return err
	}
	if h.Interactive != nil && !h.Interactive() {
		return &xsuper.Error{Op: "select", Err: fmt.Errorf("%w: standard input is not a terminal", xsuper.ErrCommandIO)}
	}

	query, err := pm.QueryCommand()
	if err != nil {
		return err
	}

	sel := &selector.FuzzySelector{
		CommandManager: commands,
		Programs:       cfg.Selectors,
		PreviewWindow:  cfg.PreviewWindow,
		Logger:         log,
		Stderr:         h.Stderr,
	}
	selected, err := sel.Select(ctx, candidates, query)
	if err != nil {
		return err
	}

	if f.Install {
		return pm.InteractiveInstall(ctx, selected)
	}
	return pm.InteractiveRemove(ctx, selected)
}

// newLogger writes to the configured log file, or to stderr when none is set.
func newLogger(cfg *config.Configuration, debug bool, stderr io.Writer) (logger.Logger, func(), error) {
	level := cfg.LogLevel
	if debug {
		level = "debug"
	}

	if cfg.LogFile == "" {
		return logger.New(level, stderr), func() {}, nil
	}

	file, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return logger.New(level, file), func() { file.Close() }, nil
}
