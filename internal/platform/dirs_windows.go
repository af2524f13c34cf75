//go:build windows

package platform

import (
	"os"
	"path/filepath"
)

func fallbackConfigDir(homeDir string) string {
	return filepath.Join(homeDir, "AppData", "Roaming")
}

func sessionBaseDir() string {
	if localAppData := os.Getenv("LOCALAPPDATA"); localAppData != "" {
		return filepath.Join(localAppData, "Temp")
	}
	return os.TempDir()
}
