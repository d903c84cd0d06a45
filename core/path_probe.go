package core

import (
	"path/filepath"

	"github.com/spf13/afero"
)

type WineExecs struct {
	Wineboot   string `json:"wineboot"`
	Wineserver string `json:"wineserver"`
}

type WineLibs struct {
	Lib   string `json:"lib"`
	Lib32 string `json:"lib32"`
}

// GetWineExecs returns the wineboot and wineserver binaries that sit next to
// wineBin. Missing binaries are reported as empty strings.
func GetWineExecs(fs afero.Fs, wineBin string) WineExecs {
	wineDir := filepath.Dir(wineBin)
	ret := WineExecs{}

	potWineserverPath := filepath.Join(wineDir, "wineserver")
	if pathExists(fs, potWineserverPath) {
		ret.Wineserver = potWineserverPath
	}

	potWinebootPath := filepath.Join(wineDir, "wineboot")
	if pathExists(fs, potWinebootPath) {
		ret.Wineboot = potWinebootPath
	}

	return ret
}

// GetWineLibs returns the lib64 and lib folders of the installation wineBin
// belongs to.
func GetWineLibs(fs afero.Fs, wineBin string) WineLibs {
	wineDir := filepath.Dir(wineBin)
	ret := WineLibs{}

	potLib32Path := filepath.Join(wineDir, "..", "lib")
	if pathExists(fs, potLib32Path) {
		ret.Lib32 = potLib32Path
	}

	potLibPath := filepath.Join(wineDir, "..", "lib64")
	if pathExists(fs, potLibPath) {
		ret.Lib = potLibPath
	}

	return ret
}

func pathExists(fs afero.Fs, path string) bool {
	if path == "" {
		return false
	}
	ok, err := afero.Exists(fs, path)
	return err == nil && ok
}

func dirExists(fs afero.Fs, path string) bool {
	ok, err := afero.DirExists(fs, path)
	return err == nil && ok
}

// readDirNames lists a directory, returning nothing when it cannot be read.
func readDirNames(fs afero.Fs, path string) []string {
	entries, err := afero.ReadDir(fs, path)
	if err != nil {
		return nil
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, entry.Name())
	}
	return names
}
