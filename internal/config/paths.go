package config

import (
	"os"
	"path/filepath"
)

// GetOFSHome returns OFS_HOME or ~/.ofsconsole by default
func GetOFSHome() string {
	home := os.Getenv("OFS_HOME")
	if home == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return ".ofsconsole"
		}
		return filepath.Join(homeDir, ".ofsconsole")
	}
	return ExpandPath(home)
}

// GetHistoryDBPath returns $OFS_HOME/history.db
func GetHistoryDBPath() string {
	return filepath.Join(GetOFSHome(), "history.db")
}

// GetSettingsPath returns $OFS_HOME/settings.json
func GetSettingsPath() string {
	return filepath.Join(GetOFSHome(), "settings.json")
}

// ExpandPath expands ~ to home directory
func ExpandPath(path string) string {
	if len(path) > 0 && path[0] == '~' {
		homeDir, err := os.UserHomeDir()
		if err == nil {
			if len(path) == 1 {
				return homeDir
			}
			return filepath.Join(homeDir, path[1:])
		}
	}
	return path
}
