package units

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvertLength(t *testing.T) {
	tests := []struct {
		name     string
		value    float64
		from     string
		to       string
		expected float64
	}{
		{name: "ft to ft identity", value: 10, from: "FT", to: "FT", expected: 10},
		{name: "ft to m", value: 1, from: "FT", to: "M", expected: 0.3048},
		{name: "m to mm", value: 2, from: "M", to: "MM", expected: 2000},
		{name: "in to cm", value: 1, from: "IN", to: "CM", expected: 2.54},
		{name: "lowercase symbols", value: 1, from: "ft", to: "in", expected: 12},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ConvertLength(tt.value, tt.from, tt.to)
			require.NoError(t, err)
			assert.InDelta(t, tt.expected, got, 1e-9)
		})
	}
}

func TestConvertLengthUnknownSymbol(t *testing.T) {
	_, err := ConvertLength(1, "FT", "FURLONG")
	require.Error(t, err)

	_, err = ConvertLength(1, "PARSEC", "FT")
	require.Error(t, err)
}

func TestConvertForce(t *testing.T) {
	got, err := ConvertForce(1, "KIP", "LBF")
	require.NoError(t, err)
	assert.InDelta(t, 1000, got, 1e-6)

	// KIPS alias resolves to KIP.
	got, err = ConvertForce(3, "KIPS", "KIP")
	require.NoError(t, err)
	assert.InDelta(t, 3, got, 1e-12)

	_, err = ConvertForce(1, "KIP", "STONE")
	require.Error(t, err)
}

func TestConvertLengthRoundTrip(t *testing.T) {
	for _, sym := range []string{"MM", "CM", "M", "IN", "FT"} {
		v, err := ConvertLength(123.456, "FT", sym)
		require.NoError(t, err)
		back, err := ConvertLength(v, sym, "FT")
		require.NoError(t, err)
		assert.InDelta(t, 123.456, back, 1e-9, "round trip through %s", sym)
	}
}
