// Package config provides the configuration directory and run configuration
// for xctemplates.
package config

import (
	"os"
	"path/filepath"
	"runtime"
)

// Dir returns the xctemplates configuration directory.
//
// Resolution:
//   - $XCTEMPLATES_CONFIG_HOME if set (explicit override)
//   - $XDG_CONFIG_HOME/xctemplates if set
//   - %AppData%/xctemplates on Windows
//   - ~/.config/xctemplates on macOS and Linux
func Dir() string {
	if dir := os.Getenv("XCTEMPLATES_CONFIG_HOME"); dir != "" {
		return dir
	}

	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "xctemplates")
	}

	if runtime.GOOS == "windows" {
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, "xctemplates")
		}
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "xctemplates")
}

// DefaultBackupRoot returns the fixed process-wide backup store location,
// created on first use by the backup manager.
//
// Resolution:
//   - $XCTEMPLATES_BACKUP_ROOT if set
//   - ~/.xctemplates/backups
func DefaultBackupRoot() string {
	if dir := os.Getenv("XCTEMPLATES_BACKUP_ROOT"); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".xctemplates", "backups")
}
