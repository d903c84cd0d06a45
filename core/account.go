package core

import (
	"os"
	"path/filepath"

	"github.com/spf13/afero"
	"github.com/tidwall/gjson"
)

// AccountLookup resolves the store account identifier used to seed
// userInfo.epicId. ok is false when no account is logged in.
type AccountLookup interface {
	AccountID() (id string, ok bool)
}

// LegendaryAccountLookup reads the account id Legendary stores in user.json.
type LegendaryAccountLookup struct {
	fs        afero.Fs
	configDir string
}

func NewLegendaryAccountLookup(fs afero.Fs, configDir string) *LegendaryAccountLookup {
	return &LegendaryAccountLookup{
		fs:        fs,
		configDir: configDir,
	}
}

// LegendaryConfigDir honours $XDG_CONFIG_HOME like Legendary itself does.
func LegendaryConfigDir(home string) string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "legendary")
	}
	return filepath.Join(home, ".config", "legendary")
}

func (l *LegendaryAccountLookup) AccountID() (string, bool) {
	data, err := afero.ReadFile(l.fs, filepath.Join(l.configDir, "user.json"))
	if err != nil {
		return "", false
	}

	if !gjson.ValidBytes(data) {
		Logger.Warn("Legendary user file is not valid JSON", "dir", l.configDir)
		return "", false
	}

	id := gjson.GetBytes(data, "account_id").String()
	return id, id != ""
}
