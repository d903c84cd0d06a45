//go:build darwin

package platform

import (
	"os/exec"
	"path/filepath"
)

func StripWindow(cmd *exec.Cmd) {}

func SteamInstallCandidates(home string) []string {
	return []string{
		filepath.Join(home, "Library", "Application Support", "Steam"),
	}
}

func SystemSteamLibraries() []string {
	return nil
}
