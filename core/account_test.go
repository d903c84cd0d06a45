package core_test

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"

	"wineconfig/core"
)

func TestLegendaryAccountLookup(t *testing.T) {
	fs := afero.NewMemMapFs()
	lookup := core.NewLegendaryAccountLookup(fs, "/home/tester/.config/legendary")

	_, ok := lookup.AccountID()
	assert.False(t, ok)

	writeFile(t, fs, "/home/tester/.config/legendary/user.json", `{"account_id": "abc123", "displayName": "tester"}`)
	id, ok := lookup.AccountID()
	assert.True(t, ok)
	assert.Equal(t, "abc123", id)

	writeFile(t, fs, "/home/tester/.config/legendary/user.json", `{not json`)
	_, ok = lookup.AccountID()
	assert.False(t, ok)
}

func TestLegendaryConfigDir(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "")
	assert.Equal(t, "/home/tester/.config/legendary", core.LegendaryConfigDir("/home/tester"))

	t.Setenv("XDG_CONFIG_HOME", "/xdg")
	assert.Equal(t, "/xdg/legendary", core.LegendaryConfigDir("/home/tester"))
}

func TestPathsFor(t *testing.T) {
	paths := core.PathsFor("/home/tester", "/home/tester/.config")

	assert.Equal(t, "/home/tester/.config/wineconfig/config.json", paths.ConfigFile)
	assert.Equal(t, "/home/tester/.config/wineconfig/tools", paths.ToolsDir)
	assert.Equal(t, "/home/tester/Games/wineconfig/Prefixes/default", paths.DefaultWinePrefix)
	assert.Equal(t, "/home/tester/Games/wineconfig/Prefixes/x", paths.ExpandHome("~/Games/wineconfig/Prefixes/x"))
	assert.Equal(t, "/abs/path", paths.ExpandHome("/abs/path"))
}
