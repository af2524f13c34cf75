package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"stagetimer/internal/ui/preferences"

	"gopkg.in/yaml.v3"
)

const settingsFileName = "settings.yaml"

// errBrokenSettings marks a settings file that exists but does not parse.
var errBrokenSettings = errors.New("settings file is not valid yaml")

type yamlSettings struct {
	TimerLogo                 string `yaml:"timer_logo,omitempty"`
	TimerName                 string `yaml:"timer_name"`
	Muted                     bool   `yaml:"muted"`
	AlertThresholdSeconds     int    `yaml:"alert_threshold_seconds"`
	LongLoopThresholdSeconds  int    `yaml:"long_loop_threshold_seconds"`
	LongTotalThresholdSeconds int    `yaml:"long_total_threshold_seconds"`
	StartCueWindowSeconds     int    `yaml:"start_cue_window_seconds"`
	RestoreDelayMillis        int    `yaml:"restore_delay_ms"`
	AddTimeStepSeconds        int    `yaml:"add_time_step_seconds"`
}

// DurableStore keeps preferences and the logo in a YAML file that survives
// across sessions.
type DurableStore struct {
	mu   sync.Mutex
	path string
}

// NewDurableStore creates a store rooted at dir.
func NewDurableStore(dir string) *DurableStore {
	return &DurableStore{path: filepath.Join(dir, settingsFileName)}
}

// Path returns the backing file.
func (store *DurableStore) Path() string {
	return store.path
}

// Load reads user preferences from YAML.
// If the file does not exist, default settings are returned.
func (store *DurableStore) Load() (preferences.Settings, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	settings := preferences.DefaultSettings()
	fileData, err := store.readLocked()
	if err != nil {
		return settings, err
	}
	applyYamlSettings(&settings, fileData)
	return settings, nil
}

// Save writes user preferences, keeping the stored logo.
func (store *DurableStore) Save(settings preferences.Settings) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	fileData, err := store.readLocked()
	if err != nil && !errors.Is(err, errBrokenSettings) {
		return err
	}
	logo := fileData.TimerLogo
	fileData = yamlSettings{
		TimerLogo:                 logo,
		TimerName:                 settings.TimerName,
		Muted:                     settings.Muted,
		AlertThresholdSeconds:     int(settings.AlertThreshold / time.Second),
		LongLoopThresholdSeconds:  int(settings.LongLoopThreshold / time.Second),
		LongTotalThresholdSeconds: int(settings.LongTotalThreshold / time.Second),
		StartCueWindowSeconds:     int(settings.StartCueWindow / time.Second),
		RestoreDelayMillis:        int(settings.RestoreDelay / time.Millisecond),
		AddTimeStepSeconds:        int(settings.AddTimeStep / time.Second),
	}
	return store.writeLocked(fileData)
}

// LoadLogo returns the stored logo data URL, or "" when none was saved.
func (store *DurableStore) LoadLogo() (string, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	fileData, err := store.readLocked()
	if err != nil {
		return "", err
	}
	return fileData.TimerLogo, nil
}

// SaveLogo replaces the stored logo; "" removes it.
func (store *DurableStore) SaveLogo(logo string) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	fileData, err := store.readLocked()
	if err != nil && !errors.Is(err, errBrokenSettings) {
		return err
	}
	fileData.TimerLogo = logo
	return store.writeLocked(fileData)
}

// readLocked returns defaults when the file is missing. A file that does not
// parse also yields defaults, with an error wrapping errBrokenSettings, so
// writers can replace it.
func (store *DurableStore) readLocked() (yamlSettings, error) {
	fileData := defaultYamlSettings()
	rawData, err := os.ReadFile(store.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fileData, nil
		}
		return fileData, fmt.Errorf("read settings file: %w", err)
	}

	if err := yaml.Unmarshal(rawData, &fileData); err != nil {
		return defaultYamlSettings(), fmt.Errorf("%w: %v", errBrokenSettings, err)
	}
	return fileData, nil
}

func (store *DurableStore) writeLocked(fileData yamlSettings) error {
	if err := os.MkdirAll(filepath.Dir(store.path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	serialized, err := yaml.Marshal(fileData)
	if err != nil {
		return fmt.Errorf("marshal settings yaml: %w", err)
	}

	if err := os.WriteFile(store.path, serialized, 0o644); err != nil {
		return fmt.Errorf("write settings file: %w", err)
	}
	return nil
}

func defaultYamlSettings() yamlSettings {
	defaults := preferences.DefaultSettings()
	return yamlSettings{
		TimerName:                 defaults.TimerName,
		AlertThresholdSeconds:     int(defaults.AlertThreshold / time.Second),
		LongLoopThresholdSeconds:  int(defaults.LongLoopThreshold / time.Second),
		LongTotalThresholdSeconds: int(defaults.LongTotalThreshold / time.Second),
		StartCueWindowSeconds:     int(defaults.StartCueWindow / time.Second),
		RestoreDelayMillis:        int(defaults.RestoreDelay / time.Millisecond),
		AddTimeStepSeconds:        int(defaults.AddTimeStep / time.Second),
	}
}

func applyYamlSettings(settings *preferences.Settings, fileData yamlSettings) {
	if fileData.TimerName != "" {
		settings.TimerName = fileData.TimerName
	}
	if fileData.AlertThresholdSeconds > 0 {
		settings.AlertThreshold = time.Duration(fileData.AlertThresholdSeconds) * time.Second
	}
	if fileData.LongLoopThresholdSeconds > 0 {
		settings.LongLoopThreshold = time.Duration(fileData.LongLoopThresholdSeconds) * time.Second
	}
	if fileData.LongTotalThresholdSeconds > 0 {
		settings.LongTotalThreshold = time.Duration(fileData.LongTotalThresholdSeconds) * time.Second
	}
	if fileData.StartCueWindowSeconds > 0 {
		settings.StartCueWindow = time.Duration(fileData.StartCueWindowSeconds) * time.Second
	}
	if fileData.RestoreDelayMillis > 0 {
		settings.RestoreDelay = time.Duration(fileData.RestoreDelayMillis) * time.Millisecond
	}
	if fileData.AddTimeStepSeconds > 0 {
		settings.AddTimeStep = time.Duration(fileData.AddTimeStepSeconds) * time.Second
	}

	settings.Muted = fileData.Muted
}
