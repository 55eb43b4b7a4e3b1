// ABOUTME: Standard filesystem paths for affix configuration
// ABOUTME: Resolves ~/.affix/ for global and .affix/ for project-local paths

package config

import (
	"os"
	"path/filepath"
)

const (
	dirName  = ".affix"
	fileName = "config.yaml"
)

// GlobalDir returns the user-global config directory (~/.affix/).
func GlobalDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", dirName)
	}
	return filepath.Join(home, dirName)
}

// ProjectDir returns the project-local config directory (.affix/ under root).
func ProjectDir(projectRoot string) string {
	return filepath.Join(projectRoot, dirName)
}

// GlobalConfigFile returns the path to the global config file.
func GlobalConfigFile() string {
	return filepath.Join(GlobalDir(), fileName)
}

// ProjectConfigFile returns the path to the project-local config file.
func ProjectConfigFile(projectRoot string) string {
	return filepath.Join(ProjectDir(projectRoot), fileName)
}

// ContentDir returns the directory holding popup content documents.
func ContentDir(projectRoot string) string {
	return filepath.Join(ProjectDir(projectRoot), "content")
}

// Files returns the config files in load order, lowest precedence first.
// An explicit path replaces the project file.
func Files(projectRoot, explicit string) []string {
	if explicit != "" {
		return []string{GlobalConfigFile(), explicit}
	}
	return []string{GlobalConfigFile(), ProjectConfigFile(projectRoot)}
}

// EnsureDir creates a directory and all parents if they don't exist.
func EnsureDir(path string) error {
	return os.MkdirAll(path, 0o755)
}
