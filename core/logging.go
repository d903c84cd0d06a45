package core

import (
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
)

// Logger is shared by every component in the package. It writes to stderr
// until one of the InitLogging functions points it at a file.
var Logger = log.NewWithOptions(os.Stderr, log.Options{
	Prefix:          APP_NAME,
	ReportTimestamp: true,
})

const DefaultLogPath = "wineconfig.log"

func InitLoggingWithDefaultPath() error {
	path, err := os.UserCacheDir()
	if err != nil {
		return err
	}

	return InitLoggingWithPath(filepath.Join(path, DefaultLogPath))
}

func InitLoggingWithPath(path string) error {
	Logger.Debug("Creating logfile at " + path)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		return err
	}

	Logger.SetOutput(file)
	return nil
}

// SetVerbose toggles debug output.
func SetVerbose(verbose bool) {
	if verbose {
		Logger.SetLevel(log.DebugLevel)
		return
	}
	Logger.SetLevel(log.InfoLevel)
}
