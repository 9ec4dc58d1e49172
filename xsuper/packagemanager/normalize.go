package packagemanager

import (
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/steelcutops/xsuper/xsuper"
	dm "github.com/steelcutops/xsuper/xsuper/distromanager"
)

// extractor turns one raw output line into a package name. ok is false when
// the line carries no package.
type extractor func(line string) (name string, ok bool)

// Normalize converts raw listing output into a sorted, deduplicated list of
// bare package names. Output that is not valid UTF-8 is rejected rather than
// decoded lossily.
func Normalize(raw []byte, backend dm.Backend, op Operation) ([]string, error) {
	if !utf8.Valid(raw) {
		return nil, &xsuper.Error{Op: "normalize", Name: backend.String(), Err: xsuper.ErrOutputDecode}
	}

	lines := sortedLines(string(raw))

	extract := extractorFor(backend, op)
	if extract == nil {
		return lines, nil
	}

	names := make([]string, 0, len(lines))
	for _, line := range lines {
		if name, ok := extract(line); ok {
			names = append(names, name)
		}
	}

	// Extraction can reorder or collapse entries, e.g. two repos shipping
	// the same package.
	slices.Sort(names)
	return slices.Compact(names), nil
}

func sortedLines(output string) []string {
	var lines []string
	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines = append(lines, line)
	}

	slices.Sort(lines)
	return slices.Compact(lines)
}

func extractorFor(backend dm.Backend, op Operation) extractor {
	switch backend {
	case dm.Debian:
		if op == ListInstalled {
			return firstField
		}
	case dm.Void:
		if op == ListInstalled || op == ListAvailable {
			return xbpsPackageName
		}
	case dm.OpenSuse:
		if op == ListInstalled || op == ListAvailable {
			return zypperPackageName
		}
	}
	return nil
}

// firstField handles `dpkg --get-selections`: "<package>\t<status>".
func firstField(line string) (string, bool) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return "", false
	}
	return fields[0], true
}

// xbpsPackageName handles `xbps-query -l` and `xbps-query -Rs`:
// "<state> <package>-<version>_<revision> <description>". A single field is
// an already extracted name.
func xbpsPackageName(line string) (string, bool) {
	fields := strings.Fields(line)
	switch len(fields) {
	case 0:
		return "", false
	case 1:
		return fields[0], true
	}

	pkgver := fields[1]
	i := strings.LastIndex(pkgver, "-")
	if i <= 0 {
		return "", false
	}
	return pkgver[:i], true
}

// zypperPackageName handles the zypper search table:
// "S  | Name | Summary | Type" rows under a "---+----" rule.
func zypperPackageName(line string) (string, bool) {
	if !strings.Contains(line, "|") {
		fields := strings.Fields(line)
		if len(fields) != 1 || strings.HasPrefix(fields[0], "-") {
			return "", false
		}
		return fields[0], true
	}

	cells := strings.Split(line, "|")
	if len(cells) < 2 {
		return "", false
	}

	name := strings.TrimSpace(cells[1])
	if name == "" || name == "Name" {
		return "", false
	}
	return name, true
}
