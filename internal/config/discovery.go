package config

import (
	"os"
	"path/filepath"
)

const configFileName = "you.toml"

// UserConfigPath returns the path of the config file in the XDG config
// directory (~/.config/you/you.toml).
func UserConfigPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "you", configFileName), nil
}

// ConfigPaths returns ordered list of config file paths to check.
// Paths are ordered from lowest to highest priority, so that when decoded
// sequentially, each subsequent file overrides values from previous files.
//
// Order (lowest to highest priority):
//  1. File in XDG config directory (~/.config/you/you.toml)
//  2. Files walking down from the home directory toward cwd
//  3. File in the current working directory
//
// Ancestors are only walked when cwd is inside homeDir.
func ConfigPaths(cwd, homeDir string) []string {
	var paths []string
	seen := make(map[string]bool)

	addPath := func(path string) {
		if path == "" || seen[path] {
			return
		}
		seen[path] = true
		paths = append(paths, path)
	}
	addDir := func(dir string) {
		if dir == "" {
			return
		}
		addPath(filepath.Join(dir, configFileName))
	}

	if userPath, err := UserConfigPath(); err == nil {
		addPath(userPath)
	}

	if cwd != "" && homeDir != "" && isWithin(cwd, homeDir) {
		// Collect ancestors from cwd's parent up to home
		var ancestors []string
		current := filepath.Dir(cwd)
		for len(current) >= len(homeDir) {
			ancestors = append(ancestors, current)
			if current == homeDir {
				break
			}
			parent := filepath.Dir(current)
			if parent == current {
				break // reached filesystem root
			}
			current = parent
		}

		// Add in reverse order: home first (lowest priority), closest to cwd last
		for i := len(ancestors) - 1; i >= 0; i-- {
			addDir(ancestors[i])
		}
	}

	addDir(cwd)

	return paths
}

func isWithin(path, dir string) bool {
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !filepath.IsAbs(rel) && !startsWithParent(rel))
}

func startsWithParent(rel string) bool {
	return len(rel) >= 3 && rel[:3] == ".."+string(filepath.Separator)
}
