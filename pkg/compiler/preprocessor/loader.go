package preprocessor

import (
	"os"
	"path/filepath"

	"github.com/zurustar/decopatch/pkg/fileutil"
)

// FilesystemLoader implements AssetLoader against a base directory.
// Lookups fall back to case-insensitive matching for scripts written on
// case-insensitive filesystems.
type FilesystemLoader struct {
	baseDir string
}

// NewFilesystemLoader creates a loader rooted at baseDir.
func NewFilesystemLoader(baseDir string) *FilesystemLoader {
	return &FilesystemLoader{baseDir: baseDir}
}

// ReadFile reads the named file relative to the base directory.
func (l *FilesystemLoader) ReadFile(name string) ([]byte, error) {
	path, err := l.resolve(name)
	if err != nil {
		return nil, err
	}
	return os.ReadFile(path)
}

// Exists reports whether the named file can be resolved.
func (l *FilesystemLoader) Exists(name string) bool {
	_, err := l.resolve(name)
	return err == nil
}

func (l *FilesystemLoader) resolve(name string) (string, error) {
	full := filepath.Join(l.baseDir, name)
	if _, err := os.Stat(full); err == nil {
		return full, nil
	}
	return fileutil.FindFileCaseInsensitive(filepath.Dir(full), filepath.Base(full))
}
