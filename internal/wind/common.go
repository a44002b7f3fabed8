package wind

import (
	"math"
	"strings"

	"github.com/rotisserie/eris"
)

// CaseRow is one raw load-case table row: Case is the base load case name
// ("Strength III"), Angle the wind direction in degrees, Value the final
// load case name the plan rows carry (quadrant tag included).
type CaseRow struct {
	Case  string  `yaml:"case"`
	Angle float64 `yaml:"angle"`
	Value string  `yaml:"value"`
}

// caseEntry is a validated case row. Angles are integral by contract; a
// fractional angle in the input marks a malformed table, not data to round.
type caseEntry struct {
	Base  string
	Angle int
	Name  string
}

// normalizeCases validates a case table and converts it to entries. A
// malformed table (fractional angle, blank case or value) is a configuration
// error and aborts the run; an empty table is fine and yields nil.
func normalizeCases(rows []CaseRow, table string) ([]caseEntry, error) {
	out := make([]caseEntry, 0, len(rows))
	for i, r := range rows {
		if r.Angle != math.Trunc(r.Angle) {
			return nil, eris.Errorf("wind: %s row %d: angle %v is not an integer", table, i, r.Angle)
		}
		base := strings.TrimSpace(r.Case)
		if base == "" {
			return nil, eris.Errorf("wind: %s row %d: empty case name", table, i)
		}
		name := strings.TrimSpace(r.Value)
		if name == "" {
			return nil, eris.Errorf("wind: %s row %d: empty load case value", table, i)
		}
		out = append(out, caseEntry{Base: base, Angle: int(r.Angle), Name: name})
	}
	return out, nil
}

// Coefficients is a parallel-array angle table: transverse and longitudinal
// factors per integral angle. Used for both live wind and skew coefficients.
type Coefficients struct {
	Angles       []float64 `yaml:"angles"`
	Transverse   []float64 `yaml:"transverse"`
	Longitudinal []float64 `yaml:"longitudinal"`
}

// byAngle validates the table and indexes it by angle. Length mismatches,
// fractional angles, and duplicate angles are configuration errors.
func (c Coefficients) byAngle(table string) (map[int][2]float64, error) {
	if len(c.Angles) != len(c.Transverse) || len(c.Angles) != len(c.Longitudinal) {
		return nil, eris.Errorf("wind: %s: angles/transverse/longitudinal lengths differ (%d/%d/%d)",
			table, len(c.Angles), len(c.Transverse), len(c.Longitudinal))
	}
	out := make(map[int][2]float64, len(c.Angles))
	for i, a := range c.Angles {
		if a != math.Trunc(a) {
			return nil, eris.Errorf("wind: %s: angle %v is not an integer", table, a)
		}
		key := int(a)
		if _, dup := out[key]; dup {
			return nil, eris.Errorf("wind: %s: duplicate angle %d", table, key)
		}
		out[key] = [2]float64{c.Transverse[i], c.Longitudinal[i]}
	}
	return out, nil
}
