//go:build !linux && !darwin && !windows

package platform

import (
	"os/exec"
	"path/filepath"
)

func StripWindow(cmd *exec.Cmd) {}

func SteamInstallCandidates(home string) []string {
	return []string{filepath.Join(home, ".steam", "steam")}
}

func SystemSteamLibraries() []string {
	return nil
}
