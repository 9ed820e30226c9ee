package platform

import (
	"fmt"
	"os"
	"path/filepath"
)

// Markers that identify a carte data directory.
const (
	ConfigFileName = "carte.yaml"
	SystemDirName  = ".carte"
)

// FindRoot walks up from startDir to the first directory holding a
// carte.yaml file or a .carte directory and returns its absolute path.
func FindRoot(startDir string) (string, error) {
	abs, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	dir := abs
	for {
		if exists(dir, ConfigFileName) || exists(dir, SystemDirName) {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return "", fmt.Errorf("no %s or %s above %s: %w", ConfigFileName, SystemDirName, abs, os.ErrNotExist)
}

func exists(dir, name string) bool {
	_, err := os.Stat(filepath.Join(dir, name))
	return err == nil
}
