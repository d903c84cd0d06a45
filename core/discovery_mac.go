package core

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
	"golang.org/x/sync/errgroup"
	"howett.net/plist"
)

const (
	crossoverBundleQuery = `kMDItemCFBundleIdentifier = "com.codeweavers.CrossOver"`
	wineBundleQuery      = `kMDItemCFBundleIdentifier = "*.wine"`
)

type bundleInfo struct {
	Name    string `plist:"CFBundleName"`
	Version string `plist:"CFBundleShortVersionString"`
}

// readBundleInfo parses <bundle>/Contents/Info.plist. ok is false when the
// bundle has no readable manifest.
func readBundleInfo(fs afero.Fs, bundle string) (bundleInfo, bool) {
	info := bundleInfo{}
	infoFilePath := filepath.Join(bundle, "Contents", "Info.plist")
	data, err := afero.ReadFile(fs, infoFilePath)
	if err != nil {
		return info, false
	}

	if _, err := plist.Unmarshal(data, &info); err != nil {
		Logger.Warn("Failed to parse bundle manifest", "file", infoFilePath, "err", err)
		return info, false
	}
	return info, true
}

// spotlightSearch runs an mdfind query and returns the matching paths. A
// failing query yields no paths.
func (d *RuntimeDiscovery) spotlightSearch(ctx context.Context, query string) []string {
	out, err := d.host.Runner.Output(ctx, "mdfind", query)
	if err != nil {
		Logger.Error("Spotlight search failed", "query", query, "err", err)
		return nil
	}
	return splitLines(out)
}

func (d *RuntimeDiscovery) getMacOsWineSet(ctx context.Context) ([]RuntimeRecord, error) {
	var crossover, wineOnMac, wineskin []RuntimeRecord

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		crossover = d.getCrossover(gctx)
		return gctx.Err()
	})
	g.Go(func() error {
		wineOnMac = d.getWineOnMac(gctx)
		return gctx.Err()
	})
	g.Go(func() error {
		wineskin = d.getWineskinWine(gctx)
		return gctx.Err()
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return UnionRuntimes(crossover, wineOnMac, wineskin), nil
}

func (d *RuntimeDiscovery) getCrossover(ctx context.Context) []RuntimeRecord {
	crossover := []RuntimeRecord{}
	if !d.host.IsMac() {
		return crossover
	}

	for _, crossoverMacPath := range d.spotlightSearch(ctx, crossoverBundleQuery) {
		info, ok := readBundleInfo(d.host.Fs, crossoverMacPath)
		if !ok {
			continue
		}

		crossoverWineBin := filepath.Join(crossoverMacPath, "Contents", "SharedSupport", "CrossOver", "bin", "wine")
		if !pathExists(d.host.Fs, crossoverWineBin) {
			continue
		}

		crossover = append(crossover, RuntimeRecord{
			Bin:  crossoverWineBin,
			Name: "CrossOver - " + info.Version,
			Type: RuntimeCrossover,
		}.withExecs(GetWineExecs(d.host.Fs, crossoverWineBin)))
	}
	return crossover
}

func (d *RuntimeDiscovery) getWineOnMac(ctx context.Context) []RuntimeRecord {
	wineSet := []RuntimeRecord{}
	if !d.host.IsMac() {
		return wineSet
	}

	var winePaths []string
	for _, name := range readDirNames(d.host.Fs, d.toolsWineDir()) {
		winePaths = append(winePaths, filepath.Join(d.toolsWineDir(), name))
	}
	winePaths = append(winePaths, d.spotlightSearch(ctx, wineBundleQuery)...)

	seen := map[string]bool{}
	for _, winePath := range winePaths {
		if winePath == "" || seen[winePath] {
			continue
		}
		seen[winePath] = true

		info, ok := readBundleInfo(d.host.Fs, winePath)
		if !ok {
			continue
		}

		wineBin := filepath.Join(winePath, "Contents", "Resources", "wine", "bin", "wine64")
		if !pathExists(d.host.Fs, wineBin) {
			continue
		}

		libPath := filepath.Join(winePath, "Contents", "Resources", "wine", "lib")
		wineSet = append(wineSet, RuntimeRecord{
			Bin:  wineBin,
			Name: fmt.Sprintf("%s - %s", info.Name, info.Version),
			Type: RuntimeWine,
		}.withLibs(WineLibs{Lib: libPath, Lib32: libPath}).withExecs(GetWineExecs(d.host.Fs, wineBin)))
	}
	return wineSet
}

func (d *RuntimeDiscovery) getWineskinWine(ctx context.Context) []RuntimeRecord {
	wineSet := []RuntimeRecord{}
	if !d.host.IsMac() {
		return wineSet
	}

	wineSkinPath := filepath.Join(d.host.Paths.Home, "Applications", "Wineskin")
	for _, app := range readDirNames(d.host.Fs, wineSkinPath) {
		if !strings.Contains(app, ".app") {
			continue
		}

		supportDir := filepath.Join(wineSkinPath, app, "Contents", "SharedSupport", "wine")
		wineBin := filepath.Join(supportDir, "bin", "wine64")
		if !pathExists(d.host.Fs, wineBin) {
			continue
		}

		out, err := d.host.Runner.Output(ctx, wineBin, "--version")
		if err != nil {
			Logger.Error(fmt.Sprintf("Error getting wine version for %s", wineBin), "err", err)
			continue
		}

		libPath := filepath.Join(supportDir, "lib")
		wineSet = append(wineSet, RuntimeRecord{
			Bin:  wineBin,
			Name: "Wineskin - " + firstLine(out),
			Type: RuntimeWine,
		}.withLibs(WineLibs{Lib: libPath, Lib32: libPath}).withExecs(GetWineExecs(d.host.Fs, wineBin)))
	}
	return wineSet
}
