package wind

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func liveCoeffs() Coefficients {
	return Coefficients{
		Angles:       []float64{0, 15, 30, 45, 60},
		Transverse:   []float64{0.100, 0.088, 0.082, 0.066, 0.034},
		Longitudinal: []float64{0.000, 0.012, 0.024, 0.032, 0.038},
	}
}

func TestBuildLiveComponents(t *testing.T) {
	cases := []CaseRow{
		{Case: "Strength V", Angle: 15, Value: "WL_A15_Q2"},
		{Case: "Strength V", Angle: 0, Value: "WL_A0_Q1"},
		{Case: "Strength V", Angle: 75, Value: "WL_A75_Q1"}, // angle not in coefficients
	}

	got, err := BuildLiveComponents(liveCoeffs(), cases)
	require.NoError(t, err)
	require.Len(t, got, 2)

	// Sorted by angle.
	assert.Equal(t, "WL_A0_Q1", got[0].LoadCase)
	assert.Equal(t, 0.100, got[0].Transverse)
	assert.Equal(t, 0.000, got[0].Longitudinal)

	// Q2 flips longitudinal only.
	assert.Equal(t, "WL_A15_Q2", got[1].LoadCase)
	assert.Equal(t, 0.088, got[1].Transverse)
	assert.Equal(t, -0.012, got[1].Longitudinal)
}

func TestBuildLiveComponentsEmptyInputs(t *testing.T) {
	got, err := BuildLiveComponents(liveCoeffs(), nil)
	require.NoError(t, err)
	assert.Empty(t, got)

	got, err = BuildLiveComponents(Coefficients{}, []CaseRow{{Case: "X", Angle: 0, Value: "Y"}})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestBuildLiveComponentsMalformedTable(t *testing.T) {
	_, err := BuildLiveComponents(liveCoeffs(), []CaseRow{{Case: "X", Angle: 7.5, Value: "Y"}})
	assert.Error(t, err)
}

func TestBuildLivePlan(t *testing.T) {
	comps := []WLComponent{
		{LoadCase: "WL_A15_Q2", LoadGroup: "WL_A15_Q2", Angle: 15, Transverse: 0.088, Longitudinal: -0.012},
		{LoadCase: "WL_A0_Q1", LoadGroup: "WL_A0_Q1", Angle: 0, Transverse: 0.100, Longitudinal: 0.0},
	}

	rows := BuildLivePlan("Deck", comps, []string{"10", "20"}, 6.0)

	// WL_A0_Q1: LY only (longitudinal 0 suppressed); WL_A15_Q2: LY + LX.
	require.Len(t, rows, 6)
	for _, r := range rows {
		assert.Equal(t, 6.0, r.Eccentricity)
		assert.Equal(t, "Deck", r.GroupName)
	}
	assert.Equal(t, "WL_A0_Q1", rows[0].LoadCase)
	assert.Equal(t, "LY", rows[0].Direction)
	assert.Equal(t, 10, rows[0].ElementID)

	var directions []string
	for _, r := range rows[2:] {
		assert.Equal(t, "WL_A15_Q2", r.LoadCase)
		directions = append(directions, r.Direction)
	}
	assert.Contains(t, directions, "LX")
	assert.Contains(t, directions, "LY")
}

func TestBuildLivePlanEmpty(t *testing.T) {
	assert.Empty(t, BuildLivePlan("Deck", nil, []string{"10"}, 6.0))
	assert.Empty(t, BuildLivePlan("Deck", []WLComponent{{LoadCase: "X", Transverse: 1}}, nil, 6.0))
}
