package packagemanager

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/steelcutops/xsuper/logger"
	cm "github.com/steelcutops/xsuper/xsuper/commandmanager"
	dm "github.com/steelcutops/xsuper/xsuper/distromanager"
)

// Elevator rewrites mutating commands to run with elevated privileges.
type Elevator interface {
	ShouldElevate() bool
	Elevate(config cm.CommandConfig) (cm.CommandConfig, error)
}

// PackageManager drives the host's native package manager for one backend.
type PackageManager struct {
	Backend        dm.Backend
	CommandManager cm.CommandManager
	Elevator       Elevator // nil never elevates
	Logger         logger.Logger
}

// InstalledPackages lists the packages currently installed on the host.
func (pm *PackageManager) InstalledPackages(ctx context.Context) ([]string, error) {
	return pm.list(ctx, ListInstalled)
}

// AvailablePackages lists the packages the configured repositories offer.
func (pm *PackageManager) AvailablePackages(ctx context.Context) ([]string, error) {
	return pm.list(ctx, ListAvailable)
}

// InteractiveInstall installs packages with the terminal handed to the
// package manager, so it can prompt for confirmation.
func (pm *PackageManager) InteractiveInstall(ctx context.Context, packages []string) error {
	return pm.interactive(ctx, Install, packages)
}

// InteractiveRemove removes packages with the terminal handed to the
// package manager.
func (pm *PackageManager) InteractiveRemove(ctx context.Context, packages []string) error {
	return pm.interactive(ctx, Remove, packages)
}

// QueryCommand returns the shell command line that prints details for a
// package once its name is appended.
func (pm *PackageManager) QueryCommand() (string, error) {
	config, err := pm.resolve(Query)
	if err != nil {
		return "", err
	}
	return config.String(), nil
}

func (pm *PackageManager) list(ctx context.Context, op Operation) ([]string, error) {
	config, err := pm.resolve(op)
	if err != nil {
		return nil, err
	}

	result, err := pm.CommandManager.Run(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if result.ExitCode != 0 {
		// Some managers exit non-zero on an empty result set; keep whatever
		// they printed.
		pm.log().Warn("Package manager exited with non-zero status", "operation", op.String(), "exitCode", result.ExitCode, "stderr", strings.TrimSpace(result.STDERR))
	}

	packages, err := Normalize(result.STDOUT, pm.Backend, op)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	pm.log().Debug("Listed packages", "operation", op.String(), "count", len(packages), "duration", result.Duration)
	return packages, nil
}

func (pm *PackageManager) interactive(ctx context.Context, op Operation, packages []string) error {
	if len(packages) == 0 {
		pm.log().Info("Nothing selected", "operation", op.String())
		return nil
	}

	config, err := pm.resolve(op)
	if err != nil {
		return err
	}
	config.Args = append(config.Args, packages...)

	if pm.Elevator != nil && pm.Elevator.ShouldElevate() {
		config, err = pm.Elevator.Elevate(config)
		if err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
	}

	exitCode, err := pm.CommandManager.RunInteractive(ctx, config)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if exitCode != 0 {
		pm.log().Warn("Package manager exited with non-zero status", "operation", op.String(), "exitCode", exitCode)
	}

	return nil
}

// resolve builds the command for op with its program resolved to an
// absolute path. Resolution happens on every call.
func (pm *PackageManager) resolve(op Operation) (cm.CommandConfig, error) {
	cmd, err := Command(pm.Backend, op)
	if err != nil {
		return cm.CommandConfig{}, err
	}

	path, err := pm.CommandManager.LookPath(cmd.Program)
	if err != nil {
		return cm.CommandConfig{}, err
	}

	return cm.CommandConfig{
		Command: path,
		Args:    slices.Clone(cmd.Args),
	}, nil
}

func (pm *PackageManager) log() logger.Logger {
	if pm.Logger == nil {
		return logger.Nop()
	}
	return pm.Logger
}
