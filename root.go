package owid

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrNoProjectRoot is returned by ProjectRoot when no marker is found.
var ErrNoProjectRoot = errors.New("project root not found")

// RootMarkers are the entries whose presence marks a project root, in priority order.
var RootMarkers = []string{".here", ".git", "go.mod", "package.json", "pyproject.toml"}

// ProjectRoot walks up from start to the first directory containing one of RootMarkers.
// If start is "", the working directory is used.
func ProjectRoot(start string) (string, error) {
	if start == "" {
		var e error
		if start, e = os.Getwd(); e != nil {
			return "", e
		}
	}

	dir, e := filepath.Abs(start)
	if e != nil {
		return "", e
	}

	for {
		for _, m := range RootMarkers {
			if _, e := os.Stat(filepath.Join(dir, m)); e == nil {
				return dir, nil
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("%w: no %v above %s", ErrNoProjectRoot, RootMarkers, start)
		}

		dir = parent
	}
}

// Here resolves name against the project root found from the working directory.
// Absolute names are returned unchanged.
func Here(name string) (string, error) {
	if filepath.IsAbs(name) {
		return name, nil
	}

	root, e := ProjectRoot("")
	if e != nil {
		return "", e
	}

	return filepath.Join(root, name), nil
}
