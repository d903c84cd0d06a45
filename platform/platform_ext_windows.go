//go:build windows

package platform

import (
	"os"
	"os/exec"
	"path/filepath"
	"syscall"

	"golang.org/x/sys/windows/registry"
)

func StripWindow(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{HideWindow: true}
}

// SteamInstallCandidates prefers the SteamPath the Steam client records in
// the registry and falls back to the default Program Files location.
func SteamInstallCandidates(home string) []string {
	var candidates []string
	if steamPath, err := steamPathFromRegistry(); err == nil && steamPath != "" {
		candidates = append(candidates, filepath.Clean(steamPath))
	}

	return append(candidates, filepath.Join(os.Getenv("PROGRAMFILES(X86)"), "Steam"))
}

func SystemSteamLibraries() []string {
	return nil
}

func steamPathFromRegistry() (string, error) {
	key, err := registry.OpenKey(registry.CURRENT_USER, `SOFTWARE\Valve\Steam`, registry.QUERY_VALUE)
	if err != nil {
		return "", err
	}
	defer key.Close()

	steamPath, _, err := key.GetStringValue("SteamPath")
	if err != nil {
		return "", err
	}
	return steamPath, nil
}
