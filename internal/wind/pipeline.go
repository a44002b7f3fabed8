package wind

import (
	"strconv"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/windload-cli/internal/geometry"
	"github.com/sells-group/windload-cli/internal/model"
)

// Flags record which load families a pipeline run actually produced.
type Flags struct {
	WL     bool
	WSDeck bool
	WSSub  bool
}

// StatusMessage renders the flags as a one-line run summary.
func (f Flags) StatusMessage() string {
	ws := f.WSDeck || f.WSSub
	switch {
	case f.WL && ws:
		return "WL applied to deck groups; WS applied to deck and/or substructure groups."
	case f.WL:
		return "Live wind (WL) loads assigned to deck groups. WS was skipped."
	case ws:
		return "Structural wind (WS) loads assigned to deck and/or substructure groups."
	}
	return "No wind loads were assigned (no WL/WS components)."
}

// Pipeline runs the full wind-load build for one model snapshot and wind
// database: WL for deck groups, WS for deck and substructure groups when the
// pressure table is non-empty, combined into a single sorted plan.
type Pipeline struct {
	DB        *Database
	Snapshot  *model.Snapshot
	Cache     *geometry.Cache
	Pressures *PressureTable
}

// NewPipeline computes the pressure table up front so parameter problems
// (bad exposure category, non-positive height) fail before any plan work.
func NewPipeline(db *Database, snap *model.Snapshot) (*Pipeline, error) {
	pressures, err := BuildPressureTable(db.WindParams())
	if err != nil {
		return nil, err
	}
	return &Pipeline{
		DB:        db,
		Snapshot:  snap,
		Cache:     geometry.NewCache(snap.Nodes, snap.Elements),
		Pressures: pressures,
	}, nil
}

// memberIDs resolves a database group's element ids through the model's
// structural group table. Unknown groups yield nil; their plans are empty.
func (p *Pipeline) memberIDs(g StructuralGroup) []string {
	mg, ok := model.GroupByName(p.Snapshot.Groups, g.ElementsGroup)
	if !ok {
		zap.L().Info("wind: structural group not found in model, skipping",
			zap.String("group", g.Name), zap.String("elements_group", g.ElementsGroup))
		return nil
	}
	out := make([]string, 0, len(mg.Elements))
	for _, id := range mg.Elements {
		out = append(out, strconv.Itoa(id))
	}
	return out
}

// Run builds every plan the database asks for and returns the combined,
// sorted table plus what-ran flags. Empty case tables and missing groups are
// nothing-to-do conditions; malformed tables abort with an error.
func (p *Pipeline) Run() ([]Row, Flags, error) {
	var flags Flags
	var plans [][]Row

	deckGroups, subGroups := p.DB.SplitGroups()
	exposures := SectionExposures(p.Snapshot.Sections, p.DB.ExtraExposureY, nil)
	eccentricity := *p.DB.Eccentricity

	wlComponents, err := BuildLiveComponents(p.DB.Live, p.DB.WLCases)
	if err != nil {
		return nil, flags, eris.Wrap(err, "wind: live components")
	}

	for _, g := range deckGroups {
		members := p.memberIDs(g)
		if len(members) == 0 {
			continue
		}

		if plan := BuildLivePlan(g.Name, wlComponents, members, eccentricity); len(plan) > 0 {
			plans = append(plans, plan)
			flags.WL = true
		}

		if p.Pressures.Empty() {
			continue
		}
		wsComponents, err := BuildDeckStructuralComponents(g.Name, p.DB.Skew, p.DB.WSCases, p.Pressures)
		if err != nil {
			return nil, flags, eris.Wrapf(err, "wind: deck WS components for %s", g.Name)
		}
		if plan := BuildDeckStructuralPlan(g.Name, wsComponents, members, p.Snapshot.Elements, exposures); len(plan) > 0 {
			plans = append(plans, plan)
			flags.WSDeck = true
		}
	}

	if !p.Pressures.Empty() {
		for _, g := range subGroups {
			members := p.memberIDs(g)
			if len(members) == 0 {
				continue
			}

			offset := p.frameOffset(g, members)
			subComponents, err := BuildSubstructureComponents(g.Name, p.DB.WSCases, p.Pressures, offset)
			if err != nil {
				return nil, flags, eris.Wrapf(err, "wind: substructure WS components for %s", g.Name)
			}
			if plan := BuildSubstructurePlan(g.Name, subComponents, members, p.Snapshot.Elements, exposures); len(plan) > 0 {
				plans = append(plans, plan)
				flags.WSSub = true
			}
		}
	}

	combined := Combine(plans...)
	zap.L().Info("wind: pipeline complete",
		zap.Int("rows", len(combined)),
		zap.Bool("wl", flags.WL),
		zap.Bool("ws_deck", flags.WSDeck),
		zap.Bool("ws_sub", flags.WSSub),
	)
	return combined, flags, nil
}

// frameOffset resolves the design-angle correction for a substructure group.
// A group that is its own pier reference, or has no pier mapping, or whose
// frames cannot be computed, gets a zero offset.
func (p *Pipeline) frameOffset(g StructuralGroup, members []string) float64 {
	pierName, ok := PierReference(p.DB.PierFrames, g.Name)
	if !ok || pierName == g.Name {
		return 0
	}
	pier, ok := p.groupByName(pierName)
	if !ok {
		return 0
	}
	pierMembers := p.memberIDs(pier)
	offset, ok := GroupFrameOffset(p.Cache, pierMembers, members)
	if !ok {
		zap.L().Debug("wind: no computable frames for pier offset, using 0",
			zap.String("group", g.Name), zap.String("pier", pierName))
		return 0
	}
	return offset
}

func (p *Pipeline) groupByName(name string) (StructuralGroup, bool) {
	for _, g := range p.DB.Groups {
		if g.Name == name {
			return g, true
		}
	}
	return StructuralGroup{}, false
}
