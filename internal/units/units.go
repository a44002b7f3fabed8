// Package units converts scalar magnitudes between the length and force
// unit symbols used by the FEA model.
package units

import (
	"strings"

	"github.com/rotisserie/eris"
)

// lengthToMeters maps a length unit symbol to its size in meters.
var lengthToMeters = map[string]float64{
	"MM": 0.001,
	"CM": 0.01,
	"M":  1.0,
	"IN": 0.0254,
	"FT": 0.3048,
}

// forceToNewtons maps a force unit symbol to its size in newtons.
var forceToNewtons = map[string]float64{
	"N":    1.0,
	"KN":   1000.0,
	"LBF":  4.4482216152605,
	"KIP":  4448.2216152605,
	"KGF":  9.80665,
	"TONF": 9806.65,
}

// forceAliases maps UI spellings to canonical force symbols.
var forceAliases = map[string]string{
	"KIPS": "KIP",
}

// ConvertLength converts a length value between unit symbols.
// An unknown symbol is a configuration error and fails immediately.
func ConvertLength(value float64, from, to string) (float64, error) {
	f, ok := lengthToMeters[strings.ToUpper(from)]
	if !ok {
		return 0, eris.Errorf("units: unknown length unit %q", from)
	}
	t, ok := lengthToMeters[strings.ToUpper(to)]
	if !ok {
		return 0, eris.Errorf("units: unknown length unit %q", to)
	}
	return value * f / t, nil
}

// ConvertForce converts a force value between unit symbols.
func ConvertForce(value float64, from, to string) (float64, error) {
	f, ok := forceToNewtons[normForce(from)]
	if !ok {
		return 0, eris.Errorf("units: unknown force unit %q", from)
	}
	t, ok := forceToNewtons[normForce(to)]
	if !ok {
		return 0, eris.Errorf("units: unknown force unit %q", to)
	}
	return value * f / t, nil
}

func normForce(sym string) string {
	s := strings.ToUpper(sym)
	if canon, ok := forceAliases[s]; ok {
		return canon
	}
	return s
}
