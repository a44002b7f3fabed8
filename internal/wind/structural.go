package wind

import (
	"sort"

	"github.com/sells-group/windload-cli/internal/model"
)

// WSComponent is one deck structural-wind component row: quadrant-signed
// directional pressures in ksf for a final load case.
type WSComponent struct {
	LoadCase      string
	LoadGroup     string
	Angle         int
	BaseCase      string
	Pz            float64
	PTransverse   float64
	PLongitudinal float64
}

// BuildDeckStructuralComponents expands the WS case table for one deck group:
// Pz from the pressure table for (group, base case), scaled by the skew
// coefficients at the case angle, quadrant-signed. Rows with no matching
// pressure or no skew entry are skipped; empty inputs yield an empty result.
func BuildDeckStructuralComponents(groupName string, skew Coefficients, cases []CaseRow, pressures *PressureTable) ([]WSComponent, error) {
	if len(cases) == 0 || pressures.Empty() {
		return nil, nil
	}

	entries, err := normalizeCases(cases, "ws_cases")
	if err != nil {
		return nil, err
	}
	byAngle, err := skew.byAngle("skew_coefficients")
	if err != nil {
		return nil, err
	}

	var out []WSComponent
	for _, e := range entries {
		coeffs, ok := byAngle[e.Angle]
		if !ok {
			continue
		}
		pz, ok := pressures.Lookup(groupName, e.Base)
		if !ok {
			continue
		}
		t, l := ApplyQuadrant(ParseQuadrant(e.Name), coeffs[0], coeffs[1])
		out = append(out, WSComponent{
			LoadCase:      e.Name,
			LoadGroup:     e.Name,
			Angle:         e.Angle,
			BaseCase:      e.Base,
			Pz:            pz,
			PTransverse:   pz * t,
			PLongitudinal: pz * l,
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Angle != out[j].Angle {
			return out[i].Angle < out[j].Angle
		}
		return out[i].LoadCase < out[j].LoadCase
	})
	return out, nil
}

// BuildDeckStructuralPlan converts deck WS pressure components into line
// loads. Both directional pressures use the Y exposure depth (the deck's
// windward face): transverse as LY, longitudinal as LX. Elements whose
// section has no exposure entry are skipped.
func BuildDeckStructuralPlan(groupName string, components []WSComponent, elementIDs []string, elements map[string]model.Element, exposures map[string]Exposure) []Row {
	if len(components) == 0 || len(elementIDs) == 0 {
		return nil
	}
	depths := depthMap(elementIDs, elements, exposures, axisY)
	if len(depths) == 0 {
		return nil
	}

	var plans [][]Row
	for _, c := range components {
		if significant(c.PTransverse) {
			plans = append(plans, pressurePlan(groupName, c.LoadCase, c.LoadGroup, c.PTransverse, "LY", depths))
		}
		if significant(c.PLongitudinal) {
			plans = append(plans, pressurePlan(groupName, c.LoadCase, c.LoadGroup, c.PLongitudinal, "LX", depths))
		}
	}
	return Combine(plans...)
}
