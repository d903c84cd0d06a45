package core

import (
	"context"
	"os"
	"os/user"
	"path/filepath"
	"runtime"
	"sync"

	"github.com/spf13/afero"

	"wineconfig/platform"
)

type UserLookup interface {
	Username() (string, error)
}

type OSUserLookup struct{}

func (OSUserLookup) Username() (string, error) {
	current, err := user.Current()
	if err != nil {
		return "", err
	}
	return current.Username, nil
}

// EnvironmentFacts are the process and host facts factory defaults are built
// from.
type EnvironmentFacts struct {
	Username    string
	AccountID   string
	DefaultWine RuntimeRecord
}

// Host carries the process-scoped collaborators shared by the config loaders
// and the runtime scanners. Build it once at startup and pass it down.
type Host struct {
	Fs       afero.Fs
	Runner   CommandRunner
	Paths    Paths
	GOOS     string
	Flatpak  bool
	Accounts AccountLookup
	Users    UserLookup
	Store    Datastore[AppSettings]

	// SteamCandidates are possible Steam install roots, most preferred first.
	SteamCandidates []string
	// SystemSteamLibraries are library roots outside the Steam install.
	SystemSteamLibraries []string

	factsMu sync.Mutex
	facts   *EnvironmentFacts
}

// NewHost wires the real filesystem, process runner and platform lookups.
// configFile overrides the settings file location when not empty.
func NewHost(configFile string) (*Host, error) {
	paths, err := DefaultPaths()
	if err != nil {
		return nil, err
	}
	if configFile != "" {
		paths.ConfigFile = configFile
	}

	fs := afero.NewOsFs()
	return &Host{
		Fs:                   fs,
		Runner:               MakeExecRunner(),
		Paths:                paths,
		GOOS:                 runtime.GOOS,
		Flatpak:              os.Getenv("FLATPAK_ID") != "",
		Accounts:             NewLegendaryAccountLookup(fs, LegendaryConfigDir(paths.Home)),
		Users:                OSUserLookup{},
		Store:                NewCacheDatastore[AppSettings](),
		SteamCandidates:      platform.SteamInstallCandidates(paths.Home),
		SystemSteamLibraries: platform.SystemSteamLibraries(),
	}, nil
}

func (h *Host) IsMac() bool {
	return h.GOOS == "darwin"
}

func (h *Host) IsWindows() bool {
	return h.GOOS == "windows"
}

// SteamCompatFolder returns the first Steam install that exists, or the
// least preferred candidate when none does.
func (h *Host) SteamCompatFolder() string {
	if len(h.SteamCandidates) == 0 {
		return ""
	}
	for _, candidate := range h.SteamCandidates {
		if dirExists(h.Fs, candidate) {
			return candidate
		}
	}
	return h.SteamCandidates[len(h.SteamCandidates)-1]
}

// Facts resolves the environment facts on first use and returns the cached
// copy afterwards. Probing the default Wine spawns processes, so it must not
// run on every call for defaults.
func (h *Host) Facts(ctx context.Context) EnvironmentFacts {
	h.factsMu.Lock()
	defer h.factsMu.Unlock()

	if h.facts != nil {
		return *h.facts
	}

	facts := EnvironmentFacts{}
	if h.Users != nil {
		name, err := h.Users.Username()
		if err != nil {
			Logger.Warn("Failed to resolve current user", "err", err)
		}
		facts.Username = name
	}
	if h.Accounts != nil {
		if id, ok := h.Accounts.AccountID(); ok {
			facts.AccountID = id
		}
	}
	if !h.IsWindows() {
		facts.DefaultWine = GetDefaultWine(ctx, h)
	}

	if ctx.Err() == nil {
		h.facts = &facts
	}
	return facts
}

// MkdirAll creates path and its parents on the host filesystem.
func (h *Host) MkdirAll(path string) error {
	return h.Fs.MkdirAll(filepath.Clean(path), 0o755)
}
