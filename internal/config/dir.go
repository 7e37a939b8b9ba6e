// Package config provides the global configuration for keelson: the
// config directory resolution and the optional config.yaml file.
package config

import (
	"os"
	"path/filepath"
	"runtime"
)

// Dir returns the keelson configuration directory.
//
// Resolution:
//   - $KEELSON_CONFIG_HOME if set (explicit override)
//   - $XDG_CONFIG_HOME/keelson if set (respects XDG on any platform)
//   - %AppData%/keelson on Windows
//   - ~/.config/keelson on macOS and Linux
func Dir() string {
	// Explicit override
	if dir := os.Getenv("KEELSON_CONFIG_HOME"); dir != "" {
		return dir
	}

	// XDG override (works on any platform)
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "keelson")
	}

	// Windows: use AppData
	if runtime.GOOS == "windows" {
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, "keelson")
		}
	}

	// macOS and Linux: ~/.config/keelson
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "keelson")
}
