//go:build linux

package platform

import (
	"fmt"
	"os"
	"path/filepath"
)

func fallbackConfigDir(homeDir string) string {
	return filepath.Join(homeDir, ".config")
}

// sessionBaseDir prefers the systemd runtime dir, which is removed at logout.
func sessionBaseDir() string {
	if runtimeDir := os.Getenv("XDG_RUNTIME_DIR"); runtimeDir != "" {
		return runtimeDir
	}
	return filepath.Join(os.TempDir(), fmt.Sprintf("runtime-%d", os.Getuid()))
}
