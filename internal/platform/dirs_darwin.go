//go:build darwin

package platform

import (
	"os"
	"path/filepath"
)

func fallbackConfigDir(homeDir string) string {
	return filepath.Join(homeDir, "Library", "Application Support")
}

// sessionBaseDir uses the per-user TMPDIR, which launchd clears on reboot.
func sessionBaseDir() string {
	return os.TempDir()
}
