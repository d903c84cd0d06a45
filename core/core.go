package core

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// VersionRevision is replaced at link time by release builds.
var VersionRevision = "dev"

type Options struct {
	ConfigFile    []string          `short:"c" long:"config" description:"--config <FILE> Use FILE instead of the default settings file"`
	LogLocation   []string          `short:"l" long:"log-location" description:"Specifies path to logfile. Defaults to User's Cache Dir / wineconfig.log"`
	Verbose       []bool            `short:"v" long:"verbose" description:"Enable verbose logging"`
	PrintSettings []bool            `short:"p" long:"print-settings" description:"Print the current settings as JSON"`
	PrintDefaults []bool            `short:"d" long:"print-defaults" description:"Print the factory default settings as JSON"`
	Set           map[string]string `short:"s" long:"set" description:"<KEY>:<JSON_VALUE> Sets a single setting. Values that are not valid JSON are stored as strings"`
	Reset         []bool            `short:"r" long:"reset" description:"Reset every setting to its factory default"`
	ListRuntimes  []bool            `short:"w" long:"list-runtimes" description:"List the Wine, Proton and CrossOver runtimes found on this machine"`
	NoCustom      []bool            `short:"n" long:"no-custom" description:"Do not include customWinePaths when listing runtimes"`
	JSON          []bool            `short:"j" long:"json" description:"Print runtimes as JSON"`
}

// FlagSet reports whether a repeatable boolean flag was passed.
func FlagSet(values []bool) bool {
	return len(values) > 0 && values[0]
}

type Message struct {
	Finished bool
	Message  string
	Err      error

	// Runtimes is set on the final message of a runtime listing.
	Runtimes []RuntimeRecord
}

type ChannelProvider struct {
	Logs   chan Message
	Cancel context.CancelFunc
}

const APP_NAME = "wineconfig"

func MakeDefaultChannelProvider() *ChannelProvider {
	return &ChannelProvider{
		Logs:   make(chan Message, 100),
		Cancel: nil,
	}
}

func MakeChannelProviderWithCancelFunction(cancelFn context.CancelFunc) *ChannelProvider {
	provider := MakeDefaultChannelProvider()
	provider.Cancel = cancelFn
	return provider
}

func LogMessage(logs chan Message, format string, msg ...any) {
	logs <- Message{
		Message: fmt.Sprintf(format, msg...),
	}
}

func finish(logs chan Message, result string, err error) {
	logs <- Message{
		Message:  result,
		Err:      err,
		Finished: true,
	}
}

// ParseSettingValue decodes a --set value as JSON, keeping it as a plain
// string when it is not valid JSON.
func ParseSettingValue(raw string) any {
	var value any
	if err := json.Unmarshal([]byte(raw), &value); err != nil {
		return raw
	}
	return value
}

// RequestMainOperation performs the operation selected by ops and reports
// progress on channels. Exactly one Finished message is sent.
func RequestMainOperation(ctx context.Context, cm *ConfigManager, im *InventoryManager, ops *Options, channels *ChannelProvider) {
	logs := channels.Logs

	if FlagSet(ops.PrintDefaults) {
		loader, err := cm.Get(ctx)
		if err != nil {
			finish(logs, "", err)
			return
		}
		result, err := json.MarshalIndent(loader.GetFactoryDefaults(ctx), "", "  ")
		finish(logs, string(result), err)
		return
	}

	if FlagSet(ops.Reset) {
		if err := cm.ResetToDefaults(ctx); err != nil {
			finish(logs, "", err)
			return
		}
		finish(logs, "Settings reset to defaults", nil)
		return
	}

	if len(ops.Set) > 0 {
		keys := make([]string, 0, len(ops.Set))
		for key := range ops.Set {
			keys = append(keys, key)
		}
		sort.Strings(keys)

		for _, key := range keys {
			value := ParseSettingValue(ops.Set[key])
			key = strings.TrimSpace(key)
			if err := cm.SetSetting(ctx, key, value); err != nil {
				finish(logs, "", err)
				return
			}
			LogMessage(logs, "Set %v", key)
		}
		finish(logs, "All settings saved", nil)
		return
	}

	if FlagSet(ops.ListRuntimes) {
		LogMessage(logs, "Scanning for runtimes...")
		runtimes, err := im.RequestDiscovery(ctx, !FlagSet(ops.NoCustom))
		if err != nil {
			finish(logs, "", err)
			return
		}
		logs <- Message{
			Message:  fmt.Sprintf("Found %d runtimes", len(runtimes)),
			Runtimes: runtimes,
			Finished: true,
		}
		return
	}

	settings, err := cm.Settings(ctx)
	if err != nil {
		finish(logs, "", err)
		return
	}
	result, err := json.MarshalIndent(settings, "", "  ")
	finish(logs, string(result), err)
}

// ConsoleLogger drains input until the Finished message and returns it.
func ConsoleLogger(input chan Message) Message {
	for {
		result := <-input
		if result.Finished {
			return result
		}

		if result.Err != nil {
			Logger.Error(result.Err)
		} else {
			Logger.Info(result.Message)
		}
	}
}
