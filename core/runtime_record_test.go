package core_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"wineconfig/core"
)

func TestUnionRuntimes_KeepsFirstOccurrence(t *testing.T) {
	fromPath := core.RuntimeRecord{
		Bin:        "/usr/bin/wine",
		Name:       "Wine Default - wine-9.0",
		Type:       core.RuntimeWine,
		Wineserver: "/usr/bin/wineserver",
	}
	fromCustom := core.RuntimeRecord{
		Bin:  "/usr/bin/../bin/wine",
		Name: "Custom Wine - /usr/bin/../bin/wine",
		Type: core.RuntimeWine,
	}
	proton := core.RuntimeRecord{
		Bin:  "/steam/compatibilitytools.d/GE-Proton9/proton",
		Name: "Proton - GE-Proton9",
		Type: core.RuntimeProton,
	}

	result := core.UnionRuntimes(
		[]core.RuntimeRecord{fromPath},
		[]core.RuntimeRecord{proton, proton},
		[]core.RuntimeRecord{fromCustom},
	)

	assert.Equal(t, []core.RuntimeRecord{fromPath, proton}, result)
}

func TestUnionRuntimes_Empty(t *testing.T) {
	result := core.UnionRuntimes()
	assert.NotNil(t, result)
	assert.Empty(t, result)

	result = core.UnionRuntimes(nil, []core.RuntimeRecord{})
	assert.NotNil(t, result)
	assert.Empty(t, result)
}

func TestUnionRuntimes_DropsRecordsWithoutBinary(t *testing.T) {
	blank := core.RuntimeRecord{Name: "Custom Wine - ", Type: core.RuntimeWine}
	proton := core.RuntimeRecord{
		Bin:  "/opt/GE-Proton9/proton",
		Name: "Proton - GE-Proton9",
		Type: core.RuntimeProton,
	}

	result := core.UnionRuntimes(
		[]core.RuntimeRecord{blank},
		[]core.RuntimeRecord{proton, {Name: "Default Wine - Not Found", Type: core.RuntimeWine}},
	)
	assert.Equal(t, []core.RuntimeRecord{proton}, result)
}
