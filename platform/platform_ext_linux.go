//go:build linux

package platform

import (
	"os/exec"
	"path/filepath"
)

func StripWindow(cmd *exec.Cmd) {}

// SteamInstallCandidates lists Steam roots in lookup order. The Flatpak
// install wins when it exists.
func SteamInstallCandidates(home string) []string {
	return []string{
		filepath.Join(home, ".var", "app", "com.valvesoftware.Steam", ".steam", "steam"),
		filepath.Join(home, ".steam", "steam"),
	}
}

// SystemSteamLibraries are library roots that exist outside the user's
// Steam install, such as the one distribution packages ship.
func SystemSteamLibraries() []string {
	return []string{"/usr/share/steam"}
}
