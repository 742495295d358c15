package basedir

import (
	"fmt"
	"os"
	"path/filepath"
)

// DataFile returns $XDG_DATA_HOME/$name without checking that it exists.
// ok is false when no data home is known.
func DataFile(name string) (path string, ok bool) {
	if DataHome == "" {
		return "", false
	}

	return filepath.Join(DataHome, name), true
}

// FindDataFiles returns every existing $dir/$suffix, checking XDG_DATA_HOME first and then each
// dir in XDG_DATA_DIRS.
// Example for suffix: mime/subclasses.
func FindDataFiles(suffix string) ([]string, error) {
	dirs := make([]string, 0, len(DataDirs)+1)
	if DataHome != "" {
		dirs = append(dirs, DataHome)
	}
	dirs = append(dirs, DataDirs...)

	result := make([]string, 0)
	for _, dir := range dirs {
		path := filepath.Join(dir, suffix)
		_, err := os.Stat(path)
		switch {
		case err == nil:
			result = append(result, path)
		case os.IsNotExist(err):
		case err != nil:
			return nil, fmt.Errorf("failed to stat %s: %w", path, err)
		}
	}

	return result, nil
}
