package platform

import (
	"os"
	"path/filepath"
	"strings"
)

// DevDirName is the sandbox directory under os.TempDir used for dev runs.
const DevDirName = "carte-dev"

// IsDevRun reports whether the process was started by `go run` or `go test`.
// Both build the binary into a temp directory; test binaries end in ".test".
func IsDevRun() bool {
	exe, err := os.Executable()
	if err != nil {
		return false
	}
	if strings.HasSuffix(exe, ".test") || strings.HasSuffix(exe, ".test.exe") {
		return true
	}
	return isWithin(os.TempDir(), exe)
}

// ResolveDataPath returns where data actually lives. Unless sandboxed is
// true it is dir itself ("." when empty). Sandboxed paths are moved under
// os.TempDir()/carte-dev, keyed by the base name, except paths already
// inside the temp directory (relative ones resolved against the working
// directory), which are trusted as is.
func ResolveDataPath(dir string, sandboxed bool) string {
	if !sandboxed {
		if dir == "" {
			return "."
		}
		return dir
	}

	clean := filepath.Clean(dir)
	if abs, err := filepath.Abs(clean); err == nil && isWithin(os.TempDir(), abs) {
		return clean
	}

	name := filepath.Base(clean)
	if dir == "" || name == "." || name == ".." || name == string(os.PathSeparator) {
		name = "default"
	}
	return filepath.Join(os.TempDir(), DevDirName, name)
}

func isWithin(root, path string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(os.PathSeparator))
}
