package packagemanager

import (
	"fmt"

	"github.com/steelcutops/xsuper/xsuper"
	dm "github.com/steelcutops/xsuper/xsuper/distromanager"
)

// Operation is a logical package manager action.
type Operation int

const (
	ListInstalled Operation = iota + 1
	ListAvailable
	Install
	Remove
	Query
)

// Operations lists every operation a backend must define.
var Operations = []Operation{ListInstalled, ListAvailable, Install, Remove, Query}

func (o Operation) String() string {
	switch o {
	case ListInstalled:
		return "list-installed"
	case ListAvailable:
		return "list-available"
	case Install:
		return "install"
	case Remove:
		return "remove"
	case Query:
		return "query"
	default:
		return fmt.Sprintf("Operation(%d)", int(o))
	}
}

// OperationCommand is the program and fixed argument prefix for one
// operation. Package names are appended per call.
type OperationCommand struct {
	Program string
	Args    []string
}

// Command returns the invocation for op on backend.
func Command(backend dm.Backend, op Operation) (OperationCommand, error) {
	var cmd OperationCommand

	switch backend {
	case dm.Arch:
		cmd = archCommand(op)
	case dm.Debian:
		cmd = debianCommand(op)
	case dm.Void:
		cmd = voidCommand(op)
	case dm.OpenSuse:
		cmd = openSuseCommand(op)
	}

	if cmd.Program == "" {
		return OperationCommand{}, &xsuper.Error{
			Op:   "build command",
			Name: fmt.Sprintf("%s/%s", backend, op),
			Err:  xsuper.ErrUnsupportedOS,
		}
	}
	return cmd, nil
}

func archCommand(op Operation) OperationCommand {
	switch op {
	case ListInstalled:
		return OperationCommand{"pacman", []string{"-Q", "-q"}}
	case ListAvailable:
		return OperationCommand{"pacman", []string{"-S", "-l", "-q"}}
	case Install:
		return OperationCommand{"pacman", []string{"-S"}}
	case Remove:
		return OperationCommand{"pacman", []string{"-R", "-n", "-s"}}
	case Query:
		return OperationCommand{"pacman", []string{"-S", "-i"}}
	}
	return OperationCommand{}
}

func debianCommand(op Operation) OperationCommand {
	switch op {
	case ListInstalled:
		return OperationCommand{"dpkg", []string{"--get-selections"}}
	case ListAvailable:
		return OperationCommand{"apt-cache", []string{"pkgnames", "--generate"}}
	case Install:
		return OperationCommand{"apt", []string{"install"}}
	case Remove:
		return OperationCommand{"apt", []string{"remove"}}
	case Query:
		return OperationCommand{"apt-cache", []string{"show"}}
	}
	return OperationCommand{}
}

func voidCommand(op Operation) OperationCommand {
	switch op {
	case ListInstalled:
		return OperationCommand{"xbps-query", []string{"-l"}}
	case ListAvailable:
		// An empty search pattern matches every package in the remote index.
		return OperationCommand{"xbps-query", []string{"-R", "-s", ""}}
	case Install:
		return OperationCommand{"xbps-install", []string{"-S"}}
	case Remove:
		return OperationCommand{"xbps-remove", []string{"-R"}}
	case Query:
		return OperationCommand{"xbps-query", []string{"-R", "-S"}}
	}
	return OperationCommand{}
}

func openSuseCommand(op Operation) OperationCommand {
	switch op {
	case ListInstalled:
		return OperationCommand{"zypper", []string{"--quiet", "--no-refresh", "search", "--installed-only", "--type", "package"}}
	case ListAvailable:
		return OperationCommand{"zypper", []string{"--quiet", "--no-refresh", "search", "--type", "package"}}
	case Install:
		return OperationCommand{"zypper", []string{"install"}}
	case Remove:
		return OperationCommand{"zypper", []string{"remove"}}
	case Query:
		return OperationCommand{"zypper", []string{"info"}}
	}
	return OperationCommand{}
}
