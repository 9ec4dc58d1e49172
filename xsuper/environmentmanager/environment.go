package environmentmanager

import (
	"path"

	"github.com/steelcutops/xsuper/xsuper/filemanager"
)

const (
	// TermuxMarker exists only inside a Termux installation.
	TermuxMarker = "/data/data/com.termux/"

	// TermuxPrefix is the alternate root Termux installs its userland under.
	TermuxPrefix = "/data/data/com.termux/files/usr"
)

// Environment holds host facts computed once at startup.
type Environment struct {
	// Sandboxed is true on Termux, where there is no os-release file and the
	// package tooling runs unprivileged under an alternate root.
	Sandboxed bool

	// Prefix is the filesystem root the package tooling lives under.
	Prefix string
}

// Detect probes the filesystem for the sandbox marker.
func Detect(files filemanager.FileManager) Environment {
	if files.IsDir(TermuxMarker) {
		return Environment{Sandboxed: true, Prefix: TermuxPrefix}
	}
	return Environment{Prefix: "/"}
}

// TerminfoDir is the terminfo database under the environment prefix.
func (e Environment) TerminfoDir() string {
	return path.Join(e.Prefix, "share", "terminfo")
}

// PatchTerminfo points TERMINFO at the sandbox terminfo database so the
// fuzzy finder can draw its UI. It is a no-op outside the sandbox.
func (e Environment) PatchTerminfo(env EnvironmentManager) error {
	if !e.Sandboxed {
		return nil
	}
	return env.Set("TERMINFO", e.TerminfoDir())
}
