package core

import "context"

const v1SettingsKey = "settings"

// configV1 handles {"version": "v1", "settings": {...}} documents.
type configV1 struct {
	*baseLoader
}

func NewConfigV1(ctx context.Context, h *Host) (ConfigLoader, error) {
	c := &configV1{
		baseLoader: newBaseLoader(h, ConfigV1, v1SettingsKey),
	}
	if err := c.load(ctx); err != nil {
		return nil, err
	}
	return c, nil
}

// Upgrade is a no-op: v1 is the current schema.
func (c *configV1) Upgrade(ctx context.Context) (bool, error) {
	return false, nil
}
