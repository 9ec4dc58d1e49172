package distromanager

import (
	"errors"
	"fmt"
	"strings"

	"github.com/steelcutops/xsuper/xsuper"
	"github.com/steelcutops/xsuper/xsuper/environmentmanager"
	"github.com/steelcutops/xsuper/xsuper/filemanager"
	"gopkg.in/ini.v1"
)

// OSReleasePath is the os-release file consulted on the primary platform.
const OSReleasePath = "/etc/os-release"

// SandboxBackend is the backend whose tool semantics the sandbox emulates.
const SandboxBackend = Debian

// distroIDs maps os-release ID values to a backend. Each ID belongs to
// exactly one backend.
var distroIDs = map[string]Backend{
	"debian":     Debian,
	"pureos":     Debian,
	"deepin":     Debian,
	"linuxmint":  Debian,
	"ubuntu":     Debian,
	"pop":        Debian,
	"raspbian":   Debian,
	"kali":       Debian,
	"elementary": Debian,
	"zorin":      Debian,

	"arch":        Arch,
	"manjaro":     Arch,
	"manjaro-arm": Arch,
	"garuda":      Arch,
	"artix":       Arch,
	"endeavouros": Arch,
	"cachyos":     Arch,

	"void": Void,

	"opensuse":            OpenSuse,
	"opensuse-tumbleweed": OpenSuse,
	"opensuse-leap":       OpenSuse,
	"opensuse-slowroll":   OpenSuse,
	"sles":                OpenSuse,
}

// Detect selects the backend for the host. The sandbox short-circuits to
// SandboxBackend without reading os-release.
func Detect(env environmentmanager.Environment, files filemanager.FileManager) (Backend, error) {
	if env.Sandboxed {
		return SandboxBackend, nil
	}

	if !files.Exists(OSReleasePath) {
		return 0, &xsuper.Error{Op: "detect backend", Name: OSReleasePath, Err: fmt.Errorf("%w: file not found", xsuper.ErrUnsupportedOS)}
	}

	data, err := files.ReadFile(OSReleasePath)
	if err != nil {
		return 0, &xsuper.Error{Op: "detect backend", Name: OSReleasePath, Err: errors.Join(xsuper.ErrUnsupportedOS, err)}
	}

	id, err := ParseOSReleaseID(data)
	if err != nil {
		return 0, &xsuper.Error{Op: "detect backend", Name: OSReleasePath, Err: errors.Join(xsuper.ErrUnsupportedOS, err)}
	}

	return FromID(id)
}

// FromID maps an os-release ID to its backend.
func FromID(id string) (Backend, error) {
	backend, ok := distroIDs[strings.ToLower(id)]
	if !ok {
		return 0, &xsuper.Error{Op: "detect backend", Name: id, Err: xsuper.ErrUnsupportedOS}
	}
	return backend, nil
}

// ParseOSReleaseID extracts the ID field from os-release contents.
func ParseOSReleaseID(data []byte) (string, error) {
	cfg, err := ini.LoadSources(ini.LoadOptions{
		IgnoreInlineComment:     true,
		SkipUnrecognizableLines: true,
	}, data)
	if err != nil {
		return "", fmt.Errorf("loading os-release: %w", err)
	}

	id := strings.Trim(cfg.Section(ini.DefaultSection).Key("ID").String(), `"'`)
	if id == "" {
		return "", errors.New("os-release has no ID field")
	}
	return id, nil
}
