package core

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/spf13/afero"
	"github.com/tidwall/gjson"
)

// ConfigManager hands out the loader for the settings file. The loader is
// built lazily on the first Get and reused until Reload.
type ConfigManager struct {
	host     *Host
	registry map[ConfigVersion]LoaderFactory

	mu     sync.Mutex
	loader ConfigLoader
}

func NewConfigManager(h *Host) *ConfigManager {
	return NewConfigManagerWithRegistry(h, DefaultLoaderRegistry())
}

func NewConfigManagerWithRegistry(h *Host, registry map[ConfigVersion]LoaderFactory) *ConfigManager {
	return &ConfigManager{
		host:     h,
		registry: registry,
	}
}

// Get returns the loader, building it on first use.
func (m *ConfigManager) Get(ctx context.Context) (ConfigLoader, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.loader != nil {
		return m.loader, nil
	}

	loader, err := m.reload(ctx, m.DetectVersion())
	if err != nil {
		return nil, err
	}
	m.loader = loader
	return loader, nil
}

// Reload drops the current loader and selects a new one from the file on
// disk.
func (m *ConfigManager) Reload(ctx context.Context) (ConfigLoader, error) {
	m.mu.Lock()
	m.loader = nil
	m.mu.Unlock()

	return m.Get(ctx)
}

// DetectVersion reads the version tag of the settings file. A missing file
// gets the current version; unreadable documents, missing tags and unknown
// tags get the oldest one.
func (m *ConfigManager) DetectVersion() ConfigVersion {
	path := m.host.Paths.ConfigFile
	data, err := afero.ReadFile(m.host.Fs, path)
	if err != nil {
		if os.IsNotExist(err) {
			return CurrentConfigVersion
		}
		Logger.Error("Failed to read config file", "path", path, "err", err)
		return OldestConfigVersion
	}

	if !gjson.ValidBytes(data) {
		Logger.Error(fmt.Sprintf("Config file is corrupted, please check %s", path))
		return OldestConfigVersion
	}

	tag := gjson.GetBytes(data, "version")
	if !tag.Exists() || tag.String() == "" {
		// written before documents carried a version
		return OldestConfigVersion
	}

	version := ConfigVersion(tag.String())
	if _, ok := m.registry[version]; !ok {
		Logger.Warn("Unrecognized config version, treating as oldest", "version", version, "oldest", OldestConfigVersion)
		return OldestConfigVersion
	}
	return version
}

// reload builds the loader for version and upgrades until the document is
// on the current schema. Each successful upgrade re-reads the file so the
// new document goes through the loader of its own version.
func (m *ConfigManager) reload(ctx context.Context, version ConfigVersion) (ConfigLoader, error) {
	var loader ConfigLoader

	for attempt := 0; attempt <= len(m.registry); attempt++ {
		factory, ok := m.registry[version]
		if !ok {
			Logger.Error(fmt.Sprintf("Invalid config version '%s' requested.", version))
			return nil, fmt.Errorf("%w: %s", ErrUnknownConfigVersion, version)
		}

		next, err := factory(ctx, m.host)
		if err != nil {
			return nil, fmt.Errorf("failed to load %s config: %w", version, err)
		}
		loader = next

		upgraded, err := loader.Upgrade(ctx)
		if err != nil {
			Logger.Error(fmt.Sprintf("Failed to upgrade outdated %s config.", version), "err", err)
			return loader, nil
		}

		if !upgraded {
			if version != CurrentConfigVersion {
				Logger.Error(fmt.Sprintf("Failed to upgrade outdated %s config.", version))
			}
			return loader, nil
		}

		Logger.Info(fmt.Sprintf("Upgraded outdated %s config to %s.", version, CurrentConfigVersion))
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		version = m.DetectVersion()
	}

	Logger.Error("Config upgrade did not converge", "version", version)
	return loader, nil
}

func (m *ConfigManager) Settings(ctx context.Context) (AppSettings, error) {
	loader, err := m.Get(ctx)
	if err != nil {
		return AppSettings{}, err
	}
	return loader.GetSettings(ctx), nil
}

func (m *ConfigManager) SetSetting(ctx context.Context, key string, value any) error {
	loader, err := m.Get(ctx)
	if err != nil {
		return err
	}
	return loader.SetSetting(ctx, key, value)
}

func (m *ConfigManager) ResetToDefaults(ctx context.Context) error {
	loader, err := m.Get(ctx)
	if err != nil {
		return err
	}
	return loader.ResetToDefaults(ctx)
}

func (m *ConfigManager) CustomWinePaths(ctx context.Context) ([]RuntimeRecord, error) {
	loader, err := m.Get(ctx)
	if err != nil {
		return nil, err
	}
	return loader.GetCustomWinePaths(ctx), nil
}
