package core

import (
	"path/filepath"

	"github.com/samber/lo"
)

type RuntimeType string

const (
	RuntimeWine      RuntimeType = "wine"
	RuntimeProton    RuntimeType = "proton"
	RuntimeCrossover RuntimeType = "crossover"
)

// RuntimeRecord describes one Wine, Proton or CrossOver installation.
type RuntimeRecord struct {
	Bin        string      `json:"bin"`
	Name       string      `json:"name"`
	Type       RuntimeType `json:"type"`
	Lib        string      `json:"lib,omitempty"`
	Lib32      string      `json:"lib32,omitempty"`
	Wineboot   string      `json:"wineboot,omitempty"`
	Wineserver string      `json:"wineserver,omitempty"`
}

// Key identifies the physical runtime a record points at.
func (r RuntimeRecord) Key() string {
	if r.Bin == "" {
		return ""
	}
	return filepath.Clean(r.Bin)
}

func (r RuntimeRecord) withExecs(execs WineExecs) RuntimeRecord {
	r.Wineboot = execs.Wineboot
	r.Wineserver = execs.Wineserver
	return r
}

func (r RuntimeRecord) withLibs(libs WineLibs) RuntimeRecord {
	r.Lib = libs.Lib
	r.Lib32 = libs.Lib32
	return r
}

// UnionRuntimes concatenates the sets in priority order and drops every
// record whose binary was already seen in an earlier set. Records without a
// binary point at nothing and are dropped too.
func UnionRuntimes(sets ...[]RuntimeRecord) []RuntimeRecord {
	all := lo.Filter(lo.Flatten(sets), func(record RuntimeRecord, _ int) bool {
		return record.Key() != ""
	})
	if len(all) == 0 {
		return []RuntimeRecord{}
	}
	return lo.UniqBy(all, RuntimeRecord.Key)
}
