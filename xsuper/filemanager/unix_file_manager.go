package filemanager

import (
	"os"
	"path/filepath"
)

// UnixFileManager reads the local filesystem. When Root is set every path
// is resolved beneath it, which lets tests stage a fake host tree.
type UnixFileManager struct {
	Root string
}

func (ufm *UnixFileManager) Exists(path string) bool {
	_, err := os.Stat(ufm.resolve(path))
	return err == nil
}

func (ufm *UnixFileManager) IsDir(path string) bool {
	info, err := os.Stat(ufm.resolve(path))
	return err == nil && info.IsDir()
}

func (ufm *UnixFileManager) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(ufm.resolve(path))
}

func (ufm *UnixFileManager) resolve(path string) string {
	if ufm.Root == "" {
		return path
	}
	return filepath.Join(ufm.Root, path)
}
