package platform

import (
	"fmt"
	"os"
	"path/filepath"
)

// Service resolves the OS-specific directories the application writes to.
type Service interface {
	ConfigDir(appName string) (string, error)
	SessionDir(appName string) (string, error)
}

type platformService struct{}

// NewService returns a platform-specific implementation.
func NewService() Service {
	return &platformService{}
}

// ConfigDir returns the durable per-user directory for appName.
func (service *platformService) ConfigDir(appName string) (string, error) {
	if appName == "" {
		return "", fmt.Errorf("config dir: app name is empty")
	}

	configDir, err := os.UserConfigDir()
	if err == nil && configDir != "" {
		return filepath.Join(configDir, appName), nil
	}

	homeDir, homeErr := os.UserHomeDir()
	if homeErr != nil {
		if err != nil {
			return "", fmt.Errorf("get config dir: %w", err)
		}
		return "", fmt.Errorf("get config dir: %w", homeErr)
	}

	return filepath.Join(fallbackConfigDir(homeDir), appName), nil
}

// SessionDir returns a directory scoped to the current login session. Its
// contents are expected to disappear when the session ends.
func (service *platformService) SessionDir(appName string) (string, error) {
	if appName == "" {
		return "", fmt.Errorf("session dir: app name is empty")
	}
	base := sessionBaseDir()
	if base == "" {
		return "", fmt.Errorf("session dir: no runtime directory available")
	}
	return filepath.Join(base, appName), nil
}
