package wind

import (
	"sort"
)

// DefaultEccentricity is the standard WL load offset above the deck, ft.
const DefaultEccentricity = 6.0

// WLComponent is one live-wind component row: quadrant-signed line-load
// coefficients for a final load case.
type WLComponent struct {
	LoadCase     string
	LoadGroup    string
	Angle        int
	Transverse   float64
	Longitudinal float64
}

// BuildLiveComponents expands the WL case table against the live wind
// coefficient table. Case rows whose angle has no coefficient entry are
// skipped; an empty case table yields an empty result. Malformed tables
// error out.
func BuildLiveComponents(coeffs Coefficients, cases []CaseRow) ([]WLComponent, error) {
	if len(cases) == 0 || len(coeffs.Angles) == 0 {
		return nil, nil
	}

	entries, err := normalizeCases(cases, "wl_cases")
	if err != nil {
		return nil, err
	}
	byAngle, err := coeffs.byAngle("wind_live")
	if err != nil {
		return nil, err
	}

	var out []WLComponent
	for _, e := range entries {
		base, ok := byAngle[e.Angle]
		if !ok {
			continue
		}
		t, l := ApplyQuadrant(ParseQuadrant(e.Name), base[0], base[1])
		out = append(out, WLComponent{
			LoadCase:     e.Name,
			LoadGroup:    e.Name,
			Angle:        e.Angle,
			Transverse:   t,
			Longitudinal: l,
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

// BuildLivePlan converts WL components into line-load rows for one group's
// elements: transverse as LY, longitudinal as LX, at the given eccentricity.
// Near-zero components are suppressed.
func BuildLivePlan(groupName string, components []WLComponent, elementIDs []string, eccentricity float64) []Row {
	if len(components) == 0 || len(elementIDs) == 0 {
		return nil
	}

	var plans [][]Row
	for _, c := range components {
		if significant(c.Transverse) {
			plans = append(plans, lineLoadPlan(groupName, c.LoadCase, c.LoadGroup, c.Transverse, "LY", elementIDs, eccentricity))
		}
		if significant(c.Longitudinal) {
			plans = append(plans, lineLoadPlan(groupName, c.LoadCase, c.LoadGroup, c.Longitudinal, "LX", elementIDs, eccentricity))
		}
	}
	return Combine(plans...)
}
