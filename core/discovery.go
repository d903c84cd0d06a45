package core

import (
	"context"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"
)

const defaultWineNotFound = "Default Wine - Not Found"

// SettingsSource is the part of the settings layer discovery reads from.
type SettingsSource interface {
	Settings(ctx context.Context) (AppSettings, error)
	CustomWinePaths(ctx context.Context) ([]RuntimeRecord, error)
}

// RuntimeDiscovery finds the Wine, Proton and CrossOver installations on the
// host. Nothing is cached: every call scans again.
type RuntimeDiscovery struct {
	host     *Host
	settings SettingsSource
}

func NewRuntimeDiscovery(h *Host, settings SettingsSource) *RuntimeDiscovery {
	return &RuntimeDiscovery{
		host:     h,
		settings: settings,
	}
}

// GetAlternativeWine returns every runtime found on the host, default runtime
// first, then runtimes found in tool folders, then Proton builds, then the
// user's custom paths when scanCustom is set. Records pointing at a binary
// already listed are dropped. The error is only ever the context's.
func (d *RuntimeDiscovery) GetAlternativeWine(ctx context.Context, scanCustom bool) ([]RuntimeRecord, error) {
	if d.host.IsMac() {
		return d.getMacOsWineSet(ctx)
	}

	for _, dir := range []string{d.toolsWineDir(), d.toolsProtonDir()} {
		if err := d.host.MkdirAll(dir); err != nil {
			Logger.Warn("Failed to create tools directory", "dir", dir, "err", err)
		}
	}

	var defaultWine, altWine, proton, custom []RuntimeRecord

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defaultWine = d.getDefaultWineSet(gctx)
		return gctx.Err()
	})
	g.Go(func() error {
		altWine = append(d.getToolsWine(), d.getLutrisWine()...)
		return gctx.Err()
	})
	g.Go(func() error {
		proton = d.getProton(gctx)
		return gctx.Err()
	})
	if scanCustom {
		g.Go(func() error {
			custom = d.getCustomWine(gctx)
			return gctx.Err()
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return UnionRuntimes(defaultWine, altWine, proton, custom), nil
}

func (d *RuntimeDiscovery) toolsWineDir() string {
	return filepath.Join(d.host.Paths.ToolsDir, "wine")
}

func (d *RuntimeDiscovery) toolsProtonDir() string {
	return filepath.Join(d.host.Paths.ToolsDir, "proton")
}

// GetDefaultWine locates wine on the search path and asks it for its version.
// When either step fails the record keeps the "Not Found" name.
func GetDefaultWine(ctx context.Context, h *Host) RuntimeRecord {
	defaultWine := RuntimeRecord{
		Bin:  "",
		Name: defaultWineNotFound,
		Type: RuntimeWine,
	}

	wineBin, err := h.Runner.LookPath("wine")
	if err != nil {
		Logger.Debug("wine not found on PATH", "err", err)
		return defaultWine
	}
	defaultWine.Bin = wineBin

	out, err := h.Runner.Output(ctx, wineBin, "--version")
	if err != nil {
		Logger.Debug("Failed to query default wine version", "bin", wineBin, "err", err)
		return defaultWine
	}
	defaultWine.Name = "Wine Default - " + firstLine(out)

	return defaultWine.withExecs(GetWineExecs(h.Fs, wineBin))
}

func isDefaultWineFound(record RuntimeRecord) bool {
	return record.Bin != "" && !strings.Contains(record.Name, "Not Found")
}

func (d *RuntimeDiscovery) getDefaultWineSet(ctx context.Context) []RuntimeRecord {
	defaultWine := GetDefaultWine(ctx, d.host)
	if !isDefaultWineFound(defaultWine) {
		return []RuntimeRecord{}
	}
	return []RuntimeRecord{defaultWine}
}

// wineVersionsIn lists <dir>/<version>/bin/wine for every entry of dir.
func (d *RuntimeDiscovery) wineVersionsIn(dir string) []RuntimeRecord {
	wine := []RuntimeRecord{}
	for _, version := range readDirNames(d.host.Fs, dir) {
		wineBin := filepath.Join(dir, version, "bin", "wine")
		wine = append(wine, RuntimeRecord{
			Bin:  wineBin,
			Name: "Wine - " + version,
			Type: RuntimeWine,
		}.withLibs(GetWineLibs(d.host.Fs, wineBin)).withExecs(GetWineExecs(d.host.Fs, wineBin)))
	}
	return wine
}

func (d *RuntimeDiscovery) getToolsWine() []RuntimeRecord {
	return d.wineVersionsIn(d.toolsWineDir())
}

func (d *RuntimeDiscovery) getLutrisWine() []RuntimeRecord {
	lutrisCompatPath := filepath.Join(d.host.Paths.Home, ".local", "share", "lutris", "runners", "wine")
	if !dirExists(d.host.Fs, lutrisCompatPath) {
		return []RuntimeRecord{}
	}
	return d.wineVersionsIn(lutrisCompatPath)
}

// protonSearchPaths returns the folders Proton builds may be installed in.
// Distributions lay Steam out differently, so each library root gets several
// candidates.
func (d *RuntimeDiscovery) protonSearchPaths(ctx context.Context) []string {
	protonPaths := []string{d.toolsProtonDir()}

	steamPath := d.host.SteamCompatFolder()
	if d.settings != nil {
		settings, err := d.settings.Settings(ctx)
		if err != nil {
			Logger.Warn("Failed to read settings, using default Steam path", "err", err)
		} else if settings.DefaultSteamPath != "" {
			steamPath = settings.DefaultSteamPath
		}
	}

	for _, path := range GetSteamLibraries(d.host, steamPath) {
		protonPaths = append(protonPaths,
			filepath.Join(path, "steam", "steamapps", "common"),
			filepath.Join(path, "steamapps", "common"),
			filepath.Join(path, "root", "compatibilitytools.d"),
			filepath.Join(path, "compatibilitytools.d"),
		)
	}
	return protonPaths
}

func (d *RuntimeDiscovery) getProton(ctx context.Context) []RuntimeRecord {
	proton := []RuntimeRecord{}
	for _, path := range d.protonSearchPaths(ctx) {
		if !dirExists(d.host.Fs, path) {
			continue
		}
		for _, version := range readDirNames(d.host.Fs, path) {
			protonBin := filepath.Join(path, version, "proton")
			// empty version folders are common after uninstalls
			if !pathExists(d.host.Fs, protonBin) {
				continue
			}
			// Proton ships neither wineboot nor wineserver
			proton = append(proton, RuntimeRecord{
				Bin:  protonBin,
				Name: "Proton - " + version,
				Type: RuntimeProton,
			})
		}
	}
	return proton
}

func (d *RuntimeDiscovery) getCustomWine(ctx context.Context) []RuntimeRecord {
	if d.settings == nil {
		return []RuntimeRecord{}
	}
	custom, err := d.settings.CustomWinePaths(ctx)
	if err != nil {
		Logger.Error("Failed to read custom wine paths", "err", err)
		return []RuntimeRecord{}
	}
	return custom
}
