package distromanager

import "fmt"

// Backend identifies the native package manager family of a host.
type Backend int

const (
	Arch Backend = iota + 1
	Debian
	Void
	OpenSuse
)

// Backends lists every supported backend in declaration order.
var Backends = []Backend{Arch, Debian, Void, OpenSuse}

func (b Backend) String() string {
	switch b {
	case Arch:
		return "arch"
	case Debian:
		return "debian"
	case Void:
		return "void"
	case OpenSuse:
		return "opensuse"
	default:
		return fmt.Sprintf("Backend(%d)", int(b))
	}
}
