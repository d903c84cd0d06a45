package core

import (
	"context"
	"os"

	"github.com/spf13/afero"
	"github.com/tidwall/gjson"
)

const v0SettingsKey = "defaultSettings"

// configV0 handles the legacy layout, which kept the settings object under
// "defaultSettings" and often had no version field at all.
type configV0 struct {
	*baseLoader
}

func NewConfigV0(ctx context.Context, h *Host) (ConfigLoader, error) {
	c := &configV0{
		baseLoader: newBaseLoader(h, ConfigV0, v0SettingsKey),
	}
	if err := c.load(ctx); err != nil {
		return nil, err
	}
	return c, nil
}

// Upgrade moves the settings object to the v1 layout and backfills anything
// the legacy document lacks. Content that is not JSON is kept in a .bak file
// and replaced by the factory defaults.
func (c *configV0) Upgrade(ctx context.Context) (bool, error) {
	data, err := afero.ReadFile(c.host.Fs, c.configPath())
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}

	defaults := c.GetFactoryDefaults(ctx)
	settings := defaults

	if !gjson.ValidBytes(data) {
		if err := c.backupDocument(data); err != nil {
			return false, err
		}
		Logger.Warn("Replaced corrupted config with defaults")
	} else if legacy := legacySettingsObject(data); legacy != nil {
		settings, err = decodeSettingsOver(defaults, legacy, false)
		if err != nil {
			// values that do not survive the upgrade stay in the backup
			if backupErr := c.backupDocument(data); backupErr != nil {
				return false, backupErr
			}
			if isFieldTypeError(err) {
				Logger.Warn("Legacy setting has the wrong type, using its default", "err", err)
			} else {
				Logger.Error("Failed to decode legacy settings, using defaults", "err", err)
				settings = defaults
			}
		}
	}

	settings = c.normalize(settings)
	if err := c.writeDocument(ConfigV1, v1SettingsKey, settings); err != nil {
		return false, err
	}

	c.config = &settings
	return true, nil
}

// legacySettingsObject finds the settings object of a document that was
// classified as v0. Documents with an unrecognised version tag may already
// use the newer key.
func legacySettingsObject(data []byte) []byte {
	for _, key := range []string{v0SettingsKey, v1SettingsKey} {
		if raw := gjson.GetBytes(data, key); raw.IsObject() {
			return []byte(raw.Raw)
		}
	}
	return nil
}
