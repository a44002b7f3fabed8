package wind

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/windload-cli/internal/model"
)

func pipelineSnapshot() *model.Snapshot {
	return &model.Snapshot{
		Nodes: map[string]model.Node{
			"1": {ID: "1", X: 0, Y: 0, Z: 30},
			"2": {ID: "2", X: 100, Y: 0, Z: 30},
			"3": {ID: "3", X: 200, Y: 0, Z: 30},
			"4": {ID: "4", X: 100, Y: 0, Z: 0},
			"5": {ID: "5", X: 100, Y: 0, Z: 28},
		},
		Elements: map[string]model.Element{
			"100": {ID: "100", Nodes: []int{1, 2}, Section: "1"},
			"101": {ID: "101", Nodes: []int{2, 3}, Section: "1"},
			"201": {ID: "201", Nodes: []int{4, 5}, Section: "2"},
		},
		Sections: map[string]model.Section{
			"1": {ID: "1", Type: "PSC", Top: 4, Bottom: 4, Left: 20, Right: 20},
			"2": {ID: "2", Type: "DBUSER", Top: 2, Bottom: 2, Left: 2.5, Right: 2.5},
		},
		Groups: map[string]model.Group{
			"1": {Name: "Deck", Elements: []int{100, 101}},
			"2": {Name: "Pier 1_Pier", Elements: []int{201}},
		},
	}
}

func pipelineDB() *Database {
	ecc := 6.0
	return &Database{
		Groups: []StructuralGroup{
			{Name: "Deck", MemberType: MemberDeck, ElementsGroup: "Deck",
				Wind: Params{WindSpeed: 115, Exposure: "C", Height: 30, GustFactor: 1.3, DragCoefficient: 1.1}},
			{Name: "Pier 1_Pier", MemberType: MemberPier, ElementsGroup: "Pier 1_Pier",
				Wind: Params{WindSpeed: 115, Exposure: "C", Height: 28, GustFactor: 1.3, DragCoefficient: 1.6}},
		},
		WSCases: []CaseRow{
			{Case: "Strength III", Angle: 0, Value: "WS_A0_Q1"},
			{Case: "Strength III", Angle: 15, Value: "WS_A15_Q2"},
		},
		WLCases: []CaseRow{
			{Case: "Strength V", Angle: 0, Value: "WL_A0_Q1"},
		},
		Skew:         defaultSkew,
		Live:         defaultLive,
		PierFrames:   []PierFrame{{PierGroup: "Pier 1_Pier"}},
		Eccentricity: &ecc,
	}
}

func TestPipelineRun(t *testing.T) {
	p, err := NewPipeline(pipelineDB(), pipelineSnapshot())
	require.NoError(t, err)

	rows, flags, err := p.Run()
	require.NoError(t, err)

	assert.True(t, flags.WL)
	assert.True(t, flags.WSDeck)
	assert.True(t, flags.WSSub)
	require.NotEmpty(t, rows)

	// Sorted by (load case, element id).
	sorted := sort.SliceIsSorted(rows, func(i, j int) bool {
		if rows[i].LoadCase != rows[j].LoadCase {
			return rows[i].LoadCase < rows[j].LoadCase
		}
		return rows[i].ElementID < rows[j].ElementID
	})
	assert.True(t, sorted)

	byCase := map[string][]Row{}
	for _, r := range rows {
		byCase[r.LoadCase] = append(byCase[r.LoadCase], r)
	}

	// WL: angle 0 has zero longitudinal, so LY only, both deck elements.
	wl := byCase["WL_A0_Q1"]
	require.Len(t, wl, 2)
	assert.Equal(t, "LY", wl[0].Direction)
	assert.Equal(t, 6.0, wl[0].Eccentricity)
	assert.InDelta(t, defaultLive.Transverse[0], wl[0].LineLoad, 1e-12)

	// WS angle 0: deck gets LY rows (longitudinal skew is 0); pier gets LY.
	ws0 := byCase["WS_A0_Q1"]
	require.Len(t, ws0, 3)
	for _, r := range ws0 {
		assert.Equal(t, "LY", r.Direction)
	}
	deckPz, ok := p.Pressures.Lookup("Deck", "Strength III")
	require.True(t, ok)
	assert.Equal(t, 100, ws0[0].ElementID)
	assert.InDelta(t, deckPz*8, ws0[0].LineLoad, 1e-9) // exposure_y = 4+4

	pierPz, ok := p.Pressures.Lookup("Pier 1_Pier", "Strength III")
	require.True(t, ok)
	assert.Equal(t, 201, ws0[2].ElementID)
	assert.InDelta(t, pierPz*4, ws0[2].LineLoad, 1e-9) // exposure_y = 2+2

	// WS angle 15 Q2: deck LY + LX per element, pier LY + LZ (Q2 negates Z).
	ws15 := byCase["WS_A15_Q2"]
	require.Len(t, ws15, 6)
	pier15 := ws15[4:]
	assert.Equal(t, 201, pier15[0].ElementID)
	dirs := []string{pier15[0].Direction, pier15[1].Direction}
	assert.ElementsMatch(t, []string{"LY", "LZ"}, dirs)
}

func TestPipelineRunNoPressureGroups(t *testing.T) {
	db := pipelineDB()
	// Remove WS cases: only WL should run.
	db.WSCases = nil

	p, err := NewPipeline(db, pipelineSnapshot())
	require.NoError(t, err)

	rows, flags, err := p.Run()
	require.NoError(t, err)
	assert.True(t, flags.WL)
	assert.False(t, flags.WSDeck)
	assert.False(t, flags.WSSub)
	for _, r := range rows {
		assert.Equal(t, "WL_A0_Q1", r.LoadCase)
	}
}

func TestPipelineRunUnknownModelGroup(t *testing.T) {
	db := pipelineDB()
	db.Groups[0].ElementsGroup = "No Such Group"

	p, err := NewPipeline(db, pipelineSnapshot())
	require.NoError(t, err)

	rows, flags, err := p.Run()
	require.NoError(t, err)
	assert.False(t, flags.WL)
	// Only the pier group contributes.
	for _, r := range rows {
		assert.Equal(t, "Pier 1_Pier", r.GroupName)
	}
	assert.True(t, flags.WSSub)
}

func TestPipelineBadWindParams(t *testing.T) {
	db := pipelineDB()
	db.Groups[0].Wind.Exposure = "Z"

	_, err := NewPipeline(db, pipelineSnapshot())
	assert.Error(t, err)
}

func TestStatusMessage(t *testing.T) {
	assert.Contains(t, Flags{WL: true, WSDeck: true}.StatusMessage(), "WL applied")
	assert.Contains(t, Flags{WL: true}.StatusMessage(), "WS was skipped")
	assert.Contains(t, Flags{WSSub: true}.StatusMessage(), "Structural wind")
	assert.Contains(t, Flags{}.StatusMessage(), "No wind loads")
}
