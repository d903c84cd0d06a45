package core

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/andygrunwald/vdf"
	"github.com/samber/lo"
	"github.com/spf13/afero"
)

// GetSteamLibraries returns the Steam library roots known to the Steam
// install at steamPath, plus the host's system libraries. Only roots that
// exist are returned.
func GetSteamLibraries(h *Host, steamPath string) []string {
	libraries := append([]string{}, h.SystemSteamLibraries...)

	steamPath = strings.ReplaceAll(steamPath, "'", "")
	if steamPath != "" {
		vdfFile := filepath.Join(steamPath, "steamapps", "libraryfolders.vdf")
		if pathExists(h.Fs, vdfFile) {
			paths, err := ReadLibraryFolders(h.Fs, vdfFile)
			if err != nil {
				Logger.Error("Failed to read Steam library folders", "file", vdfFile, "err", err)
			}
			libraries = append(libraries, paths...)
		}
	}

	libraries = lo.Uniq(libraries)
	return lo.Filter(libraries, func(path string, _ int) bool {
		return pathExists(h.Fs, path)
	})
}

// ReadLibraryFolders parses a libraryfolders.vdf file. Both the current
// layout (numbered objects with a "path" key) and the legacy one (numbered
// string values) are understood.
func ReadLibraryFolders(fs afero.Fs, vdfFile string) ([]string, error) {
	file, err := fs.Open(vdfFile)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	parser := vdf.NewParser(file)
	libraryFoldersMap, err := parser.Parse()
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", vdfFile, err)
	}

	jsonStr, err := json.Marshal(libraryFoldersMap)
	if err != nil {
		return nil, err
	}

	libraryFolders := LibraryFolders{}
	if err := json.Unmarshal(jsonStr, &libraryFolders); err == nil {
		paths := make([]string, 0, len(libraryFolders.LibraryFolders))
		for _, key := range sortedLibraryKeys(lo.Keys(libraryFolders.LibraryFolders)) {
			if path := libraryFolders.LibraryFolders[key].Path; path != "" {
				paths = append(paths, path)
			}
		}
		return paths, nil
	}

	return legacyLibraryFolders(libraryFoldersMap), nil
}

func legacyLibraryFolders(root map[string]interface{}) []string {
	var folders map[string]interface{}
	for key, value := range root {
		if strings.EqualFold(key, "libraryfolders") {
			folders, _ = value.(map[string]interface{})
		}
	}

	var paths []string
	for _, key := range sortedLibraryKeys(lo.Keys(folders)) {
		if _, err := strconv.Atoi(key); err != nil {
			continue
		}
		switch entry := folders[key].(type) {
		case string:
			paths = append(paths, entry)
		case map[string]interface{}:
			if path, ok := entry["path"].(string); ok {
				paths = append(paths, path)
			}
		}
	}
	return paths
}

// sortedLibraryKeys orders numbered keys numerically and the rest after them.
func sortedLibraryKeys(keys []string) []string {
	sort.SliceStable(keys, func(i, j int) bool {
		a, errA := strconv.Atoi(keys[i])
		b, errB := strconv.Atoi(keys[j])
		switch {
		case errA == nil && errB == nil:
			return a < b
		case errA == nil:
			return true
		case errB == nil:
			return false
		default:
			return keys[i] < keys[j]
		}
	})
	return keys
}
