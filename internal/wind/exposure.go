package wind

import (
	"github.com/sells-group/windload-cli/internal/model"
)

// Exposure is a section's wind-exposed depth in the two local directions:
// Y = top + bottom + extra, Z = left + right.
type Exposure struct {
	Y float64
	Z float64
}

// SectionExposures computes exposure depths for every section. extraYDefault
// is added to every Y exposure; extraYByID overrides it per section id.
func SectionExposures(sections map[string]model.Section, extraYDefault float64, extraYByID map[string]float64) map[string]Exposure {
	out := make(map[string]Exposure, len(sections))
	for id, s := range sections {
		extra := extraYDefault
		if v, ok := extraYByID[id]; ok {
			extra = v
		}
		out[id] = Exposure{
			Y: s.Top + s.Bottom + extra,
			Z: s.Left + s.Right,
		}
	}
	return out
}

// exposureAxis selects which exposure component a depth map draws from.
type exposureAxis int

const (
	axisY exposureAxis = iota
	axisZ
)

// depthMap resolves element id -> exposure depth along one axis through the
// element's section. Elements with no section record or no exposure entry
// are skipped; their absence from the plan is expected.
func depthMap(elementIDs []string, elements map[string]model.Element, exposures map[string]Exposure, axis exposureAxis) map[string]float64 {
	out := make(map[string]float64)
	for _, eid := range elementIDs {
		e, ok := elements[eid]
		if !ok {
			continue
		}
		exp, ok := exposures[e.Section]
		if !ok {
			continue
		}
		if axis == axisZ {
			out[eid] = exp.Z
		} else {
			out[eid] = exp.Y
		}
	}
	return out
}
