package wind

import (
	"math"
	"sort"

	"github.com/rotisserie/eris"
)

// BaseCases are the AASHTO load cases a pressure table is computed for, in
// output order.
var BaseCases = []string{"Strength III", "Strength V", "Service I", "Service IV"}

// Params are the per-group wind inputs the pressure computation needs.
// WindSpeed is the design 3-second gust speed in mph, Height the structure
// height in ft.
type Params struct {
	WindSpeed       float64 `yaml:"speed"`
	Exposure        string  `yaml:"exposure"`
	Height          float64 `yaml:"height"`
	GustFactor      float64 `yaml:"gust_factor"`
	DragCoefficient float64 `yaml:"drag_coefficient"`
}

// kzParams holds the AASHTO LRFD exposure constants for Kz.
type kzParams struct {
	Z0 float64
	C  float64
	D  float64
}

var kzByExposure = map[string]kzParams{
	"B": {Z0: 0.9834, C: 6.87, D: 345.6},
	"C": {Z0: 0.0984, C: 7.35, D: 478.4},
	"D": {Z0: 0.0164, C: 7.65, D: 616.1},
}

// Kz computes the pressure exposure coefficient Kz = (2.5·ln(h/Z0) + C)² / D
// for exposure categories B, C, D. Non-positive heights and unknown
// categories are configuration errors.
func Kz(exposure string, height float64) (float64, error) {
	if height <= 0 {
		return 0, eris.Errorf("wind: structure height must be > 0, got %v", height)
	}
	p, ok := kzByExposure[exposure]
	if !ok {
		return 0, eris.Errorf("wind: invalid exposure category %q", exposure)
	}
	kz := math.Pow(2.5*math.Log(height/p.Z0)+p.C, 2) / p.D
	return round(kz, 4), nil
}

func round(v float64, digits int) float64 {
	scale := math.Pow(10, float64(digits))
	return math.Round(v*scale) / scale
}

// PressureRow is one computed pressure record, kept for review/export.
type PressureRow struct {
	Group     string
	LoadCase  string
	GustSpeed float64
	Kz        float64
	G         float64
	Cd        float64
	Pz        float64 // ksf
}

type pressureKey struct {
	Group string
	Case  string
}

// PressureTable maps (group, base load case) to a design pressure Pz in ksf.
type PressureTable struct {
	rows  []PressureRow
	index map[pressureKey]float64
}

// BuildPressureTable computes Pz = 2.56e-6·V²·Kz·G·Cd for every group and
// base case. Gust speed per case: Strength III uses the design speed,
// Strength V is fixed at 80 mph, Service I at 70 mph, Service IV at 0.75·V.
// Kz and the gust factor apply only to Strength III and Service IV; the
// fixed-speed cases use 1.0 for both.
func BuildPressureTable(groups map[string]Params) (*PressureTable, error) {
	names := make([]string, 0, len(groups))
	for name := range groups {
		names = append(names, name)
	}
	sort.Strings(names)

	t := &PressureTable{index: make(map[pressureKey]float64)}
	for _, name := range names {
		p := groups[name]

		kz, err := Kz(p.Exposure, p.Height)
		if err != nil {
			return nil, eris.Wrapf(err, "wind: group %q", name)
		}

		gustSpeed := map[string]float64{
			"Strength III": p.WindSpeed,
			"Strength V":   80.0,
			"Service I":    70.0,
			"Service IV":   0.75 * p.WindSpeed,
		}

		for _, c := range BaseCases {
			caseKz, caseG := 1.0, 1.0
			if c == "Strength III" || c == "Service IV" {
				caseKz, caseG = kz, p.GustFactor
			}
			v := gustSpeed[c]
			pz := round(2.56e-6*v*v*caseKz*caseG*p.DragCoefficient, 5)

			t.rows = append(t.rows, PressureRow{
				Group: name, LoadCase: c,
				GustSpeed: v, Kz: caseKz, G: caseG, Cd: p.DragCoefficient, Pz: pz,
			})
			t.index[pressureKey{Group: name, Case: c}] = pz
		}
	}
	return t, nil
}

// Lookup returns Pz for a (group, base case) pair.
func (t *PressureTable) Lookup(group, baseCase string) (float64, bool) {
	if t == nil {
		return 0, false
	}
	pz, ok := t.index[pressureKey{Group: group, Case: baseCase}]
	return pz, ok
}

// Empty reports whether the table has no rows. WS builders are skipped
// entirely for an empty table.
func (t *PressureTable) Empty() bool {
	return t == nil || len(t.rows) == 0
}

// Rows returns the computed records in (group, case) order for export.
func (t *PressureTable) Rows() []PressureRow {
	if t == nil {
		return nil
	}
	return t.rows
}
