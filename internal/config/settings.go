package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

const (
	// DefaultAddress is where the OFS server listens out of the box
	DefaultAddress = "127.0.0.1:9090"
	// DefaultExplorerReadTimeoutSeconds bounds explorer exchanges so the UI never hangs
	DefaultExplorerReadTimeoutSeconds = 30
	// DefaultSSHHost and DefaultSSHPort are where serve-ssh listens
	DefaultSSHHost = "localhost"
	DefaultSSHPort = 23235
)

// Settings represents the structure of $OFS_HOME/settings.json.
// Pointer fields distinguish "unset" from a zero value.
type Settings struct {
	Address                    string `json:"address,omitempty"`
	Debug                      *bool  `json:"debug,omitempty"`
	ExplorerReadTimeoutSeconds *int   `json:"explorer_read_timeout_seconds,omitempty"`
	HistoryEnabled             *bool  `json:"history_enabled,omitempty"`
	MaxLogFiles                *int   `json:"max_log_files,omitempty"`
	MaxResponseBytes           *int   `json:"max_response_bytes,omitempty"`
	QueueSize                  *int   `json:"queue_size,omitempty"`
	ReadTimeoutSeconds         *int   `json:"read_timeout_seconds,omitempty"`
	SSHHost                    string `json:"ssh_host,omitempty"`
	SSHPort                    *int   `json:"ssh_port,omitempty"`
	User                       string `json:"user,omitempty"`
}

// IsHistoryEnabled reports whether exchanges are journaled (default true)
func (s *Settings) IsHistoryEnabled() bool {
	return s.HistoryEnabled == nil || *s.HistoryEnabled
}

// LoadSettings loads settings from $OFS_HOME/settings.json.
// Returns empty Settings if file doesn't exist (not an error)
func LoadSettings() (*Settings, error) {
	return loadSettingsFrom(GetSettingsPath())
}

func loadSettingsFrom(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Settings{}, nil // Not an error, use defaults
		}
		return nil, fmt.Errorf("failed to read settings file: %w", err)
	}

	var settings Settings
	if len(data) == 0 {
		return &settings, nil
	}
	if err := json.Unmarshal(data, &settings); err != nil {
		return nil, fmt.Errorf("invalid settings.json: %w", err)
	}

	return &settings, nil
}

// UpdateSettings loads, modifies and saves settings under an exclusive
// file lock so concurrent `settings set` calls do not lose writes
func UpdateSettings(update func(*Settings) error) error {
	return updateSettingsAt(GetSettingsPath(), update)
}

func updateSettingsAt(path string, update func(*Settings) error) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	lock, err := os.OpenFile(path+".lock", os.O_RDWR|os.O_CREATE, 0644)
	if err != nil {
		return fmt.Errorf("failed to open lock file: %w", err)
	}
	defer lock.Close()

	if err := lockFile(lock); err != nil {
		return fmt.Errorf("failed to acquire lock: %w", err)
	}
	defer unlockFile(lock)

	settings, err := loadSettingsFrom(path)
	if err != nil {
		return err
	}
	if err := update(settings); err != nil {
		return err
	}
	return saveSettingsTo(path, settings)
}

func saveSettingsTo(path string, settings *Settings) error {
	data, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write settings file: %w", err)
	}

	return nil
}
