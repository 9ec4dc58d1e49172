package environmentmanager

import "os"

// UnixEnvironmentManager manages the environment of the current process,
// which subprocesses inherit.
type UnixEnvironmentManager struct{}

func (e *UnixEnvironmentManager) Set(key, value string) error {
	return os.Setenv(key, value)
}
