package environmentmanager

// EnvironmentManager changes the environment subprocesses inherit.
type EnvironmentManager interface {
	Set(key, value string) error
}
