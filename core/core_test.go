package core_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"wineconfig/core"
)

func runMainOperation(t *testing.T, h *core.Host, ops *core.Options) core.Message {
	t.Helper()

	cm := core.NewConfigManager(h)
	im := core.NewInventoryManager(core.NewRuntimeDiscovery(h, cm))
	defer im.Stop()

	channels := core.MakeDefaultChannelProvider()
	go core.RequestMainOperation(context.Background(), cm, im, ops, channels)
	return core.ConsoleLogger(channels.Logs)
}

func TestParseSettingValue(t *testing.T) {
	assert.Equal(t, float64(4), core.ParseSettingValue("4"))
	assert.Equal(t, true, core.ParseSettingValue("true"))
	assert.Equal(t, "fr", core.ParseSettingValue(`"fr"`))
	assert.Equal(t, "fr", core.ParseSettingValue("fr"))
	assert.Equal(t, []any{"/opt/wine/bin/wine"}, core.ParseSettingValue(`["/opt/wine/bin/wine"]`))
}

func TestRequestMainOperation_PrintSettings(t *testing.T) {
	h, _ := newTestHost(t, "linux")

	result := runMainOperation(t, h, &core.Options{PrintSettings: []bool{true}})
	require.NoError(t, result.Err)
	assert.Equal(t, "en", gjson.Get(result.Message, "language").String())
	assert.FileExists(t, h.Paths.ConfigFile)
}

func TestRequestMainOperation_Set(t *testing.T) {
	h, _ := newTestHost(t, "linux")

	result := runMainOperation(t, h, &core.Options{Set: map[string]string{
		"maxWorkers": "4",
		"language":   "de",
	}})
	require.NoError(t, result.Err)

	doc := readFile(t, h.Fs, h.Paths.ConfigFile)
	assert.Equal(t, int64(4), gjson.Get(doc, "settings.maxWorkers").Int())
	assert.Equal(t, "de", gjson.Get(doc, "settings.language").String())

	result = runMainOperation(t, h, &core.Options{Set: map[string]string{"bogus": "1"}})
	assert.ErrorIs(t, result.Err, core.ErrInvalidSetting)
}

func TestRequestMainOperation_Reset(t *testing.T) {
	h, _ := newTestHost(t, "linux")
	writeFile(t, h.Fs, h.Paths.ConfigFile, `{"version": "v1", "settings": {"language": "de"}}`)

	result := runMainOperation(t, h, &core.Options{Reset: []bool{true}})
	require.NoError(t, result.Err)

	doc := readFile(t, h.Fs, h.Paths.ConfigFile)
	assert.Equal(t, "en", gjson.Get(doc, "settings.language").String())
}

func TestRequestMainOperation_PrintDefaults(t *testing.T) {
	h, _ := newTestHost(t, "linux")
	writeFile(t, h.Fs, h.Paths.ConfigFile, `{"version": "v1", "settings": {"language": "de"}}`)

	result := runMainOperation(t, h, &core.Options{PrintDefaults: []bool{true}})
	require.NoError(t, result.Err)
	assert.Equal(t, "en", gjson.Get(result.Message, "language").String())
}

func TestRequestMainOperation_ListRuntimes(t *testing.T) {
	h, _ := setupLinuxRuntimes(t)

	result := runMainOperation(t, h, &core.Options{ListRuntimes: []bool{true}})
	require.NoError(t, result.Err)
	assert.Len(t, result.Runtimes, 7)

	result = runMainOperation(t, h, &core.Options{ListRuntimes: []bool{true}, NoCustom: []bool{true}})
	require.NoError(t, result.Err)
	assert.Len(t, result.Runtimes, 6)
}
