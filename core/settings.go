package core

import (
	"context"
)

type EnviromentVariable struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

type WrapperVariable struct {
	Exe  string `json:"exe"`
	Args string `json:"args"`
}

type UserInfo struct {
	EpicID string `json:"epicId,omitempty"`
	Name   string `json:"name"`
}

// AppSettings is the user-tunable part of the settings document. The JSON
// names match the documents earlier releases wrote, misspellings included.
type AppSettings struct {
	CheckUpdatesInterval     int                  `json:"checkUpdatesInterval"`
	EnableUpdates            bool                 `json:"enableUpdates"`
	AddDesktopShortcuts      bool                 `json:"addDesktopShortcuts"`
	AddStartMenuShortcuts    bool                 `json:"addStartMenuShortcuts"`
	AutoInstallDxvk          bool                 `json:"autoInstallDxvk"`
	AutoInstallVkd3d         bool                 `json:"autoInstallVkd3d"`
	AddSteamShortcuts        bool                 `json:"addSteamShortcuts"`
	PreferSystemLibs         bool                 `json:"preferSystemLibs"`
	CheckForUpdatesOnStartup bool                 `json:"checkForUpdatesOnStartup"`
	AutoUpdateGames          bool                 `json:"autoUpdateGames"`
	CustomWinePaths          []string             `json:"customWinePaths"`
	DefaultInstallPath       string               `json:"defaultInstallPath"`
	LibraryTopSection        string               `json:"libraryTopSection"`
	DefaultSteamPath         string               `json:"defaultSteamPath"`
	DefaultWinePrefix        string               `json:"defaultWinePrefix"`
	HideChangelogsOnStartup  bool                 `json:"hideChangelogsOnStartup"`
	Language                 string               `json:"language"`
	MaxWorkers               int                  `json:"maxWorkers"`
	MinimizeOnLaunch         bool                 `json:"minimizeOnLaunch"`
	NvidiaPrime              bool                 `json:"nvidiaPrime"`
	EnviromentOptions        []EnviromentVariable `json:"enviromentOptions"`
	WrapperOptions           []WrapperVariable    `json:"wrapperOptions"`
	ShowFps                  bool                 `json:"showFps"`
	UseGameMode              bool                 `json:"useGameMode"`
	UserInfo                 UserInfo             `json:"userInfo"`
	WineCrossoverBottle      string               `json:"wineCrossoverBottle"`
	WinePrefix               string               `json:"winePrefix"`
	WineVersion              RuntimeRecord        `json:"wineVersion"`
}

// BuildFactoryDefaults assembles the settings a fresh install starts with.
// It only looks at the host, never at the settings file.
func BuildFactoryDefaults(ctx context.Context, h *Host) AppSettings {
	facts := h.Facts(ctx)

	var customWinePaths []string
	if !h.IsWindows() {
		customWinePaths = []string{}
	}

	winePrefix := h.Paths.DefaultWinePrefix
	if h.IsWindows() {
		winePrefix = ""
	}

	return AppSettings{
		CheckUpdatesInterval:     10,
		EnableUpdates:            false,
		AddDesktopShortcuts:      false,
		AddStartMenuShortcuts:    false,
		AutoInstallDxvk:          true,
		AutoInstallVkd3d:         true,
		AddSteamShortcuts:        false,
		PreferSystemLibs:         false,
		CheckForUpdatesOnStartup: !h.Flatpak,
		AutoUpdateGames:          false,
		CustomWinePaths:          customWinePaths,
		DefaultInstallPath:       h.Paths.InstallDir,
		LibraryTopSection:        "disabled",
		DefaultSteamPath:         h.SteamCompatFolder(),
		DefaultWinePrefix:        h.Paths.DefaultWinePrefix,
		HideChangelogsOnStartup:  false,
		Language:                 "en",
		MaxWorkers:               0,
		MinimizeOnLaunch:         false,
		NvidiaPrime:              false,
		EnviromentOptions:        []EnviromentVariable{},
		WrapperOptions:           []WrapperVariable{},
		ShowFps:                  false,
		UseGameMode:              false,
		UserInfo: UserInfo{
			EpicID: facts.AccountID,
			Name:   facts.Username,
		},
		WineCrossoverBottle: APP_NAME,
		WinePrefix:          winePrefix,
		WineVersion:         facts.DefaultWine,
	}
}
