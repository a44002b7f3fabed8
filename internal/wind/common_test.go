package wind

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeCases(t *testing.T) {
	rows := []CaseRow{
		{Case: " Strength III ", Angle: 15, Value: " WS_A15_Q2 "},
		{Case: "Service I", Angle: 0, Value: "WL_A0"},
	}
	got, err := normalizeCases(rows, "ws_cases")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, caseEntry{Base: "Strength III", Angle: 15, Name: "WS_A15_Q2"}, got[0])
	assert.Equal(t, caseEntry{Base: "Service I", Angle: 0, Name: "WL_A0"}, got[1])
}

func TestNormalizeCasesErrors(t *testing.T) {
	tests := []struct {
		name string
		rows []CaseRow
	}{
		{"fractional angle", []CaseRow{{Case: "Strength III", Angle: 15.5, Value: "X"}}},
		{"empty case", []CaseRow{{Case: "  ", Angle: 0, Value: "X"}}},
		{"empty value", []CaseRow{{Case: "Strength III", Angle: 0, Value: ""}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := normalizeCases(tt.rows, "ws_cases")
			assert.Error(t, err)
		})
	}
}

func TestNormalizeCasesEmpty(t *testing.T) {
	got, err := normalizeCases(nil, "wl_cases")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestCoefficientsByAngle(t *testing.T) {
	c := Coefficients{
		Angles:       []float64{0, 15, 30},
		Transverse:   []float64{1.0, 0.88, 0.82},
		Longitudinal: []float64{0.0, 0.12, 0.24},
	}
	got, err := c.byAngle("skew")
	require.NoError(t, err)
	assert.Equal(t, [2]float64{0.88, 0.12}, got[15])
	assert.Len(t, got, 3)
}

func TestCoefficientsByAngleErrors(t *testing.T) {
	tests := []struct {
		name string
		c    Coefficients
	}{
		{"length mismatch", Coefficients{Angles: []float64{0, 15}, Transverse: []float64{1}, Longitudinal: []float64{0, 0.12}}},
		{"fractional angle", Coefficients{Angles: []float64{7.5}, Transverse: []float64{1}, Longitudinal: []float64{0}}},
		{"duplicate angle", Coefficients{Angles: []float64{15, 15}, Transverse: []float64{1, 1}, Longitudinal: []float64{0, 0}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.c.byAngle("skew")
			assert.Error(t, err)
		})
	}
}
