package core

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/afero"
	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
	"github.com/tidwall/sjson"
)

// ConfigVersion tags the shape of the settings document.
type ConfigVersion string

const (
	ConfigV0 ConfigVersion = "v0"
	ConfigV1 ConfigVersion = "v1"

	OldestConfigVersion  = ConfigV0
	CurrentConfigVersion = ConfigV1
)

var (
	ErrUnknownConfigVersion = errors.New("unknown config version")
	ErrInvalidSetting       = errors.New("invalid setting")
)

// ConfigLoader reads and writes the settings document for one schema
// version.
type ConfigLoader interface {
	Version() ConfigVersion

	// Config returns the in-memory settings. It is empty until the loader is
	// on the current schema.
	Config() AppSettings

	// GetSettings reads the settings file on every call and backfills
	// missing fields from the factory defaults. It does not touch Config.
	GetSettings(ctx context.Context) AppSettings

	// GetFactoryDefaults builds the settings of a fresh install without
	// reading the settings file.
	GetFactoryDefaults(ctx context.Context) AppSettings

	ResetToDefaults(ctx context.Context) error

	// SetSetting changes one field, addressed by its JSON path, and flushes.
	SetSetting(ctx context.Context, key string, value any) error

	Flush() error

	// Upgrade rewrites a document of this version in the next schema. It
	// reports whether the file was rewritten; the caller must then select a
	// new loader. Loaders for the current version always return false.
	Upgrade(ctx context.Context) (bool, error)

	GetCustomWinePaths(ctx context.Context) []RuntimeRecord
}

// LoaderFactory constructs and loads the loader for one version.
type LoaderFactory func(ctx context.Context, h *Host) (ConfigLoader, error)

func DefaultLoaderRegistry() map[ConfigVersion]LoaderFactory {
	return map[ConfigVersion]LoaderFactory{
		ConfigV0: NewConfigV0,
		ConfigV1: NewConfigV1,
	}
}

// baseLoader implements everything that does not change between versions.
// Versions differ in the key the settings object lives under and in how
// they upgrade.
type baseLoader struct {
	host        *Host
	version     ConfigVersion
	settingsKey string
	config      *AppSettings
}

func newBaseLoader(h *Host, version ConfigVersion, settingsKey string) *baseLoader {
	return &baseLoader{
		host:        h,
		version:     version,
		settingsKey: settingsKey,
	}
}

func (c *baseLoader) Version() ConfigVersion {
	return c.version
}

func (c *baseLoader) Config() AppSettings {
	if c.config == nil {
		return AppSettings{}
	}
	return *c.config
}

func (c *baseLoader) configPath() string {
	return c.host.Paths.ConfigFile
}

// load prepares the loader right after construction. Outdated loaders do not
// read their document: the manager calls Upgrade first.
func (c *baseLoader) load(ctx context.Context) error {
	if err := c.host.MkdirAll(c.host.Paths.GamesConfigDir); err != nil {
		Logger.Warn("Failed to create games config directory", "dir", c.host.Paths.GamesConfigDir, "err", err)
	}

	if !pathExists(c.host.Fs, c.configPath()) {
		if err := c.ResetToDefaults(ctx); err != nil {
			return err
		}
	}

	if c.version == CurrentConfigVersion {
		settings := c.GetSettings(ctx)
		c.config = &settings
	}
	return nil
}

func (c *baseLoader) GetSettings(ctx context.Context) AppSettings {
	defaults := c.GetFactoryDefaults(ctx)

	data, err := afero.ReadFile(c.host.Fs, c.configPath())
	if err != nil {
		if !os.IsNotExist(err) {
			Logger.Error("Failed to read config file", "path", c.configPath(), "err", err)
		}
		return defaults
	}

	if !gjson.ValidBytes(data) {
		Logger.Error(fmt.Sprintf("Config file is corrupted, please check %s", c.configPath()))
		return defaults
	}

	raw := gjson.GetBytes(data, c.settingsKey)
	if !raw.IsObject() {
		return defaults
	}

	settings, err := decodeSettingsOver(defaults, []byte(raw.Raw), false)
	if err != nil {
		if !isFieldTypeError(err) {
			Logger.Error("Failed to decode settings", "path", c.configPath(), "err", err)
			return defaults
		}
		Logger.Warn("Ignoring setting of the wrong type, using its default", "path", c.configPath(), "err", err)
	}

	return c.normalize(settings)
}

func (c *baseLoader) GetFactoryDefaults(ctx context.Context) AppSettings {
	return BuildFactoryDefaults(ctx, c.host)
}

func (c *baseLoader) ResetToDefaults(ctx context.Context) error {
	defaults := c.GetFactoryDefaults(ctx)
	c.config = &defaults
	return c.Flush()
}

func (c *baseLoader) SetSetting(ctx context.Context, key string, value any) error {
	config, err := patchSettings(c.GetSettings(ctx), key, value)
	if err != nil {
		return err
	}

	if c.host.Store != nil {
		stored, ok := c.host.Store.Fetch(SettingsStoreKey)
		if !ok {
			stored = config
		}
		mirrored, err := patchSettings(stored, key, value)
		if err != nil {
			mirrored = config
		}
		c.host.Store.Store(SettingsStoreKey, mirrored)
	}

	c.config = &config
	Logger.Info(fmt.Sprintf("Setting %s to %s", key, encodeForLog(value)))
	return c.Flush()
}

func (c *baseLoader) Flush() error {
	if c.config == nil {
		return fmt.Errorf("flush %s config: no settings loaded", c.version)
	}
	return c.writeDocument(c.version, c.settingsKey, *c.config)
}

func (c *baseLoader) GetCustomWinePaths(ctx context.Context) []RuntimeRecord {
	customPaths := []RuntimeRecord{}
	// a brand new install has nothing to scan
	if !pathExists(c.host.Fs, c.configPath()) {
		return customPaths
	}

	for _, path := range c.GetSettings(ctx).CustomWinePaths {
		customPaths = append(customPaths, CustomRuntimeRecord(c.host, path))
	}
	return customPaths
}

// CustomRuntimeRecord classifies a user-declared runtime by its file name.
func CustomRuntimeRecord(h *Host, path string) RuntimeRecord {
	if strings.HasSuffix(path, "proton") {
		return RuntimeRecord{
			Bin:  path,
			Name: "Custom Proton - " + path,
			Type: RuntimeProton,
		}
	}

	return RuntimeRecord{
		Bin:  path,
		Name: "Custom Wine - " + path,
		Type: RuntimeWine,
	}.withExecs(GetWineExecs(h.Fs, path))
}

// normalize expands the home shorthand in prefix paths. Windows has no
// prefix to expand.
func (c *baseLoader) normalize(settings AppSettings) AppSettings {
	if c.host.IsWindows() {
		settings.WinePrefix = ""
		return settings
	}

	settings.WinePrefix = c.host.Paths.ExpandHome(settings.WinePrefix)
	settings.DefaultWinePrefix = c.host.Paths.ExpandHome(settings.DefaultWinePrefix)
	return settings
}

// writeDocument replaces the settings file with {version, <key>: settings}.
func (c *baseLoader) writeDocument(version ConfigVersion, key string, settings AppSettings) error {
	settingsJSON, err := json.Marshal(settings)
	if err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}

	doc, err := sjson.SetBytes([]byte(`{}`), "version", string(version))
	if err != nil {
		return err
	}
	doc, err = sjson.SetRawBytes(doc, key, settingsJSON)
	if err != nil {
		return err
	}

	if err := writeFileAtomic(c.host.Fs, c.configPath(), pretty.Pretty(doc)); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// decodeSettingsOver decodes raw on top of base so fields raw lacks keep the
// base value. wineVersion is replaced as a whole record. Outside strict mode a
// field of the wrong type keeps its base value and the remaining fields are
// still returned together with the *json.UnmarshalTypeError.
func decodeSettingsOver(base AppSettings, raw []byte, strict bool) (AppSettings, error) {
	settings := base
	settings.CustomWinePaths = slices.Clone(base.CustomWinePaths)
	settings.EnviromentOptions = slices.Clone(base.EnviromentOptions)
	settings.WrapperOptions = slices.Clone(base.WrapperOptions)
	if gjson.GetBytes(raw, "wineVersion").Exists() {
		settings.WineVersion = RuntimeRecord{}
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	if strict {
		dec.DisallowUnknownFields()
	}
	if err := dec.Decode(&settings); err != nil {
		if !strict && isFieldTypeError(err) {
			return settings, err
		}
		return base, err
	}
	return settings, nil
}

func isFieldTypeError(err error) bool {
	var typeErr *json.UnmarshalTypeError
	return errors.As(err, &typeErr)
}

// backupDocument keeps a copy of content that is about to be replaced by
// something the user did not write.
func (c *baseLoader) backupDocument(data []byte) error {
	backup := c.configPath() + ".bak"
	if err := afero.WriteFile(c.host.Fs, backup, data, 0o644); err != nil {
		return fmt.Errorf("failed to back up config file: %w", err)
	}
	Logger.Warn("Backed up config file before rewriting it", "backup", backup)
	return nil
}

// patchSettings sets the field at the JSON path key. Unknown keys and values
// of the wrong type are rejected.
func patchSettings(settings AppSettings, key string, value any) (AppSettings, error) {
	if key == "" {
		return settings, fmt.Errorf("%w: empty key", ErrInvalidSetting)
	}

	encoded, err := json.Marshal(settings)
	if err != nil {
		return settings, err
	}

	patched, err := sjson.SetBytes(encoded, key, value)
	if err != nil {
		return settings, fmt.Errorf("%w: %s: %v", ErrInvalidSetting, key, err)
	}

	updated, err := decodeSettingsOver(AppSettings{}, patched, true)
	if err != nil {
		return settings, fmt.Errorf("%w: %s: %v", ErrInvalidSetting, key, err)
	}
	return updated, nil
}

func encodeForLog(value any) string {
	encoded, err := json.Marshal(value)
	if err != nil {
		return fmt.Sprintf("%v", value)
	}
	return string(encoded)
}

// writeFileAtomic writes to a temporary sibling and renames it over path so
// readers never see a partially written file.
func writeFileAtomic(fs afero.Fs, path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := fs.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmp, err := afero.TempFile(fs, dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		fs.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		fs.Remove(tmpName)
		return err
	}
	if err := fs.Chmod(tmpName, 0o644); err != nil {
		fs.Remove(tmpName)
		return err
	}

	if err := fs.Rename(tmpName, path); err != nil {
		fs.Remove(tmpName)
		return err
	}
	return nil
}
