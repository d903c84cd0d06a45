package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"

	"github.com/fatih/color"
	"github.com/jessevdk/go-flags"

	"wineconfig/core"
	"wineconfig/platform"
)

func printRuntimes(runtimes []core.RuntimeRecord) {
	typeColors := map[core.RuntimeType]*color.Color{
		core.RuntimeWine:      color.New(color.FgRed, color.Bold),
		core.RuntimeProton:    color.New(color.FgCyan, color.Bold),
		core.RuntimeCrossover: color.New(color.FgMagenta, color.Bold),
	}
	dim := color.New(color.Faint)

	if len(runtimes) == 0 {
		fmt.Println("No runtimes found")
		return
	}

	for _, runtime := range runtimes {
		c, ok := typeColors[runtime.Type]
		if !ok {
			c = color.New(color.Bold)
		}
		c.Printf("%-10s", runtime.Type)
		fmt.Printf(" %s\n", runtime.Name)
		dim.Printf("           %s\n", runtime.Bin)
	}
}

func main() {
	platform.SetupConsole()

	ops := &core.Options{}
	_, err := flags.Parse(ops)
	if err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			return
		}
		os.Exit(1)
	}

	if len(ops.LogLocation) > 0 {
		err = core.InitLoggingWithPath(ops.LogLocation[0])
	} else {
		err = core.InitLoggingWithDefaultPath()
	}
	if err != nil {
		core.Logger.Warn("Failed to open log file, logging to stderr", "err", err)
	}
	core.SetVerbose(core.FlagSet(ops.Verbose))
	core.Logger.Debug("Starting", "version", core.VersionRevision)

	configFile := ""
	if len(ops.ConfigFile) > 0 {
		configFile = ops.ConfigFile[0]
	}

	host, err := core.NewHost(configFile)
	if err != nil {
		core.Logger.Fatal(err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	cm := core.NewConfigManager(host)
	im := core.NewInventoryManager(core.NewRuntimeDiscovery(host, cm))
	defer im.Stop()

	channels := core.MakeChannelProviderWithCancelFunction(cancel)
	go core.RequestMainOperation(ctx, cm, im, ops, channels)
	result := core.ConsoleLogger(channels.Logs)

	if result.Err != nil {
		core.Logger.Error(result.Err)
		im.Stop()
		cancel()
		os.Exit(1)
	}

	switch {
	case result.Runtimes != nil && core.FlagSet(ops.JSON):
		out, err := json.MarshalIndent(result.Runtimes, "", "  ")
		if err != nil {
			core.Logger.Fatal(err)
		}
		fmt.Println(string(out))
	case result.Runtimes != nil:
		printRuntimes(result.Runtimes)
	default:
		fmt.Println(result.Message)
	}
}
