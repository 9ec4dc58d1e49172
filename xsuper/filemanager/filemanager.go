package filemanager

// FileManager probes the local filesystem. Paths are absolute host paths.
type FileManager interface {
	Exists(path string) bool
	IsDir(path string) bool
	ReadFile(path string) ([]byte, error)
}
