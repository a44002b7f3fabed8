package wind

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeDB(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "wind.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadDatabase(t *testing.T) {
	path := writeDB(t, `
groups:
  - name: Deck
    member_type: Deck
    wind:
      speed: 115
      exposure: C
      height: 30
      gust_factor: 1.3
      drag_coefficient: 1.1
  - name: Pier 1_Pier
    member_type: Pier
    elements_group: "Pier 1_Pier"
    wind:
      speed: 115
      exposure: C
      height: 25
      gust_factor: 1.3
      drag_coefficient: 1.6
ws_cases:
  - {case: Strength III, angle: 0, value: WS_A0_Q1}
  - {case: Strength III, angle: 15, value: WS_A15_Q2}
wl_cases:
  - {case: Strength V, angle: 0, value: WL_A0_Q1}
pier_frames:
  - {pier_group: "Pier 1_Pier", cap_group: "Pier 1_PierCap"}
eccentricity: 5.5
`)

	db, err := LoadDatabase(path)
	require.NoError(t, err)

	require.Len(t, db.Groups, 2)
	assert.Equal(t, "Deck", db.Groups[0].ElementsGroup) // defaulted to name
	assert.Equal(t, 115.0, db.Groups[0].Wind.WindSpeed)
	assert.Equal(t, "C", db.Groups[0].Wind.Exposure)

	// Coefficient tables fall back to the standard defaults.
	assert.Equal(t, defaultSkew, db.Skew)
	assert.Equal(t, defaultLive, db.Live)
	assert.Equal(t, 5.5, *db.Eccentricity)

	require.Len(t, db.WSCases, 2)
	assert.Equal(t, "WS_A15_Q2", db.WSCases[1].Value)
	require.Len(t, db.PierFrames, 1)
	assert.Equal(t, "Pier 1_PierCap", db.PierFrames[0].CapGroup)

	deck, sub := db.SplitGroups()
	require.Len(t, deck, 1)
	require.Len(t, sub, 1)
	assert.Equal(t, "Pier 1_Pier", sub[0].Name)
}

func TestLoadDatabaseDefaults(t *testing.T) {
	path := writeDB(t, `
groups:
  - name: Deck
    wind: {speed: 100, exposure: B, height: 20, gust_factor: 1, drag_coefficient: 1}
`)

	db, err := LoadDatabase(path)
	require.NoError(t, err)
	assert.Equal(t, MemberDeck, db.Groups[0].MemberType)
	assert.Equal(t, DefaultEccentricity, *db.Eccentricity)
}

func TestLoadDatabaseErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"no groups", "ws_cases: []\n"},
		{"unnamed group", "groups:\n  - member_type: Deck\n"},
		{"duplicate group", "groups:\n  - name: Deck\n  - name: Deck\n"},
		{"bad yaml", "groups: [\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadDatabase(writeDB(t, tt.content))
			assert.Error(t, err)
		})
	}
}

func TestLoadDatabaseMissingFile(t *testing.T) {
	_, err := LoadDatabase(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
