package core

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const ConfigFileName = "config.json"

// Paths groups every location the loader and the scanners derive from the
// user's home and config directories.
type Paths struct {
	Home              string
	ConfigDir         string
	ConfigFile        string
	ToolsDir          string
	GamesConfigDir    string
	InstallDir        string
	DefaultWinePrefix string
}

func DefaultPaths() (Paths, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return Paths{}, fmt.Errorf("failed to get home directory: %w", err)
	}

	configRoot, err := os.UserConfigDir()
	if err != nil {
		return Paths{}, fmt.Errorf("failed to get config directory: %w", err)
	}

	return PathsFor(home, configRoot), nil
}

// PathsFor lays out the application directories below home and configRoot.
func PathsFor(home string, configRoot string) Paths {
	configDir := filepath.Join(configRoot, APP_NAME)
	installDir := filepath.Join(home, "Games", APP_NAME)

	return Paths{
		Home:              home,
		ConfigDir:         configDir,
		ConfigFile:        filepath.Join(configDir, ConfigFileName),
		ToolsDir:          filepath.Join(configDir, "tools"),
		GamesConfigDir:    filepath.Join(configDir, "GamesConfig"),
		InstallDir:        installDir,
		DefaultWinePrefix: filepath.Join(installDir, "Prefixes", "default"),
	}
}

// ExpandHome replaces a leading ~ with the home directory.
func (p Paths) ExpandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	return strings.Replace(path, "~", p.Home, 1)
}
