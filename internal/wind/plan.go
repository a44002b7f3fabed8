package wind

import (
	"sort"
	"strconv"

	"github.com/sells-group/windload-cli/internal/model"
)

// suppressEps is the magnitude below which a component never produces a plan
// row. Zero-load rows are noise in the downstream model.
const suppressEps = 1e-9

// Row is one per-element uniform beam line load, the unit of the final plan.
type Row struct {
	ElementID    int
	LoadCase     string
	Direction    string // LX / LY / LZ
	LineLoad     float64
	Eccentricity float64
	LoadGroup    string
	GroupName    string
}

// lineLoadPlan emits one row per element for a component already in
// force/length units. Element ids that are not numeric are skipped.
func lineLoadPlan(groupName, loadCase, loadGroup string, value float64, direction string, elementIDs []string, eccentricity float64) []Row {
	var rows []Row
	for _, id := range elementIDs {
		eid, err := strconv.Atoi(id)
		if err != nil {
			continue
		}
		rows = append(rows, Row{
			ElementID:    eid,
			LoadCase:     loadCase,
			Direction:    direction,
			LineLoad:     value,
			Eccentricity: eccentricity,
			LoadGroup:    loadGroup,
			GroupName:    groupName,
		})
	}
	return rows
}

// pressurePlan converts a pressure (force/area) into per-element line loads
// via exposure depths. Elements absent from the depth map were already
// skipped upstream; near-zero products are suppressed.
func pressurePlan(groupName, loadCase, loadGroup string, pressure float64, direction string, depths map[string]float64) []Row {
	var rows []Row
	for _, id := range model.SortedIDs(depths) {
		eid, err := strconv.Atoi(id)
		if err != nil {
			continue
		}
		q := pressure * depths[id]
		if !significant(q) {
			continue
		}
		rows = append(rows, Row{
			ElementID: eid,
			LoadCase:  loadCase,
			Direction: direction,
			LineLoad:  q,
			LoadGroup: loadGroup,
			GroupName: groupName,
		})
	}
	return rows
}

func significant(v float64) bool {
	if v < 0 {
		v = -v
	}
	return v > suppressEps
}

// Combine flattens plan chunks into one table sorted by (load case, element
// id) for deterministic, reviewable output.
func Combine(plans ...[]Row) []Row {
	var out []Row
	for _, p := range plans {
		out = append(out, p...)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].LoadCase != out[j].LoadCase {
			return out[i].LoadCase < out[j].LoadCase
		}
		return out[i].ElementID < out[j].ElementID
	})
	return out
}
