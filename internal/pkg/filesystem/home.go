package filesystem

import (
	"os"
	"path/filepath"
	"strings"
)

// AppDirName is the per-user data directory under the home directory.
const AppDirName = ".sleepsync"

// UserHomeDir returns the current user's home directory.
// If the home directory cannot be determined, it returns "." as a fallback.
func UserHomeDir() string {
	if home, err := os.UserHomeDir(); err == nil {
		return home
	}
	return "."
}

// AppDir returns ~/.sleepsync.
func AppDir() string {
	return filepath.Join(UserHomeDir(), AppDirName)
}

// ExpandHome resolves a leading "~/" against the home directory and cleans
// relative paths. Absolute paths are returned unchanged.
func ExpandHome(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(UserHomeDir(), path[2:])
	}
	return filepath.Clean(path)
}
