package wind

import (
	"math"
	"sort"

	"go.uber.org/zap"

	"github.com/sells-group/windload-cli/internal/geometry"
	"github.com/sells-group/windload-cli/internal/model"
)

// PierFrame names a pier group and its dependent (cap / above-deck) groups.
// Dependents resolve wind directions in the pier's local frame, not their
// own.
type PierFrame struct {
	PierGroup  string `yaml:"pier_group"`
	CapGroup   string `yaml:"cap_group"`
	AboveGroup string `yaml:"above_group"`
}

// PierReference returns the pier group whose local axes a given group should
// use. A pier references itself; caps and above-deck groups reference their
// pier; unmapped groups get no reference.
func PierReference(frames []PierFrame, group string) (string, bool) {
	for _, f := range frames {
		if f.PierGroup == "" {
			continue
		}
		switch group {
		case f.PierGroup, f.CapGroup, f.AboveGroup:
			return f.PierGroup, true
		}
	}
	return "", false
}

// GroupFrameOffset computes the design-angle correction for a dependent
// group: the signed angle (degrees, about the pier's local X) between the
// pier's local Y and the dependent group's local Y. The first member of each
// group with a computable frame represents it. ok is false when either group
// has no such member; callers then use a zero offset.
func GroupFrameOffset(cache *geometry.Cache, pierMembers, depMembers []string) (float64, bool) {
	pier, ok := firstFrame(cache, pierMembers)
	if !ok {
		return 0, false
	}
	dep, ok := firstFrame(cache, depMembers)
	if !ok {
		return 0, false
	}
	return geometry.SignedAngleAbout(pier.EX, pier.EY, dep.EY), true
}

func firstFrame(cache *geometry.Cache, members []string) (geometry.Frame, bool) {
	for _, id := range members {
		f, resolved, err := cache.Frame(id)
		if err != nil {
			zap.L().Debug("wind: skipping degenerate element in frame lookup",
				zap.String("element", id), zap.Error(err))
			continue
		}
		if resolved {
			return f, true
		}
	}
	return geometry.Frame{}, false
}

// SubComponent is one substructure structural-wind component row: the
// horizontal pressure magnitude resolved into the pier's local Y and Z.
type SubComponent struct {
	LoadCase  string
	LoadGroup string
	Angle     int
	BaseCase  string
	P         float64
	PLocalY   float64
	PLocalZ   float64
}

// BuildSubstructureComponents expands the WS case table for one substructure
// group. The design angle is the case angle plus angleOffset (the pier-frame
// correction for dependent groups, zero for the pier itself); theta = 0 puts
// the full pressure in local +Y, positive theta rotates toward +Z. Quadrant
// signs apply with T = local Y and L = local Z. Rows with no matching
// pressure are skipped; empty inputs yield an empty result.
func BuildSubstructureComponents(groupName string, cases []CaseRow, pressures *PressureTable, angleOffset float64) ([]SubComponent, error) {
	if len(cases) == 0 || pressures.Empty() {
		return nil, nil
	}

	entries, err := normalizeCases(cases, "ws_cases")
	if err != nil {
		return nil, err
	}

	var out []SubComponent
	for _, e := range entries {
		p, ok := pressures.Lookup(groupName, e.Base)
		if !ok {
			continue
		}
		theta := (float64(e.Angle) + angleOffset) * math.Pi / 180
		y, z := ApplyQuadrant(ParseQuadrant(e.Name), p*math.Cos(theta), p*math.Sin(theta))
		out = append(out, SubComponent{
			LoadCase:  e.Name,
			LoadGroup: e.Name,
			Angle:     e.Angle,
			BaseCase:  e.Base,
			P:         p,
			PLocalY:   y,
			PLocalZ:   z,
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

// BuildSubstructurePlan converts substructure WS components into line loads:
// the local-Y pressure through the Y exposure depth as LY, the local-Z
// pressure through the Z exposure depth as LZ.
func BuildSubstructurePlan(groupName string, components []SubComponent, elementIDs []string, elements map[string]model.Element, exposures map[string]Exposure) []Row {
	if len(components) == 0 || len(elementIDs) == 0 {
		return nil
	}
	depthsY := depthMap(elementIDs, elements, exposures, axisY)
	depthsZ := depthMap(elementIDs, elements, exposures, axisZ)
	if len(depthsY) == 0 && len(depthsZ) == 0 {
		return nil
	}

	var plans [][]Row
	for _, c := range components {
		if significant(c.PLocalY) && len(depthsY) > 0 {
			plans = append(plans, pressurePlan(groupName, c.LoadCase, c.LoadGroup, c.PLocalY, "LY", depthsY))
		}
		if significant(c.PLocalZ) && len(depthsZ) > 0 {
			plans = append(plans, pressurePlan(groupName, c.LoadCase, c.LoadGroup, c.PLocalZ, "LZ", depthsZ))
		}
	}
	return Combine(plans...)
}
