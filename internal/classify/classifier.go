package classify

import (
	"fmt"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/windload-cli/internal/geometry"
	"github.com/sells-group/windload-cli/internal/model"
	"github.com/sells-group/windload-cli/internal/units"
)

// ErrNoDeckReference marks a model whose deck reference height is undefined
// (no deck elements, or none of their nodes resolve). Height-based
// sub-classification cannot run; zero is a real elevation, not a default.
var ErrNoDeckReference = eris.New("classify: deck reference height undefined")

// Options configure a classification pass.
type Options struct {
	PierRadius   float64 // proximity threshold in RadiusUnit
	RadiusUnit   string  // unit the radius was entered in
	ModelUnit    string  // the model's active length unit
	PierBaseName string
	StartIndex   int
	SuffixAbove  string
	SuffixCap    string
	SuffixPier   string
}

func (o *Options) applyDefaults() {
	if o.PierRadius == 0 {
		o.PierRadius = 10
	}
	if o.RadiusUnit == "" {
		o.RadiusUnit = "FT"
	}
	if o.ModelUnit == "" {
		o.ModelUnit = o.RadiusUnit
	}
	if o.PierBaseName == "" {
		o.PierBaseName = "Pier"
	}
	if o.StartIndex == 0 {
		o.StartIndex = 1
	}
	if o.SuffixAbove == "" {
		o.SuffixAbove = "_SubAbove"
	}
	if o.SuffixCap == "" {
		o.SuffixCap = "_PierCap"
	}
	if o.SuffixPier == "" {
		o.SuffixPier = "_Pier"
	}
}

// Result is the outcome of one classification pass. Group keys follow the
// configured naming: "{pier label}{suffix}".
type Result struct {
	Deck                map[string]model.Element
	Substructure        map[string]model.Element
	DeckReferenceHeight float64
	HasDeckReference    bool

	// ClusterLabels lists pier labels ("Pier 1", ...) in discovery order.
	ClusterLabels []string
	// Groups maps each subgroup key to its member element ids.
	Groups map[string][]string
	// PierFrames maps each pier label to the subgroup keys of its dependent
	// (cap / above-deck) groups that came out non-empty.
	PierFrames map[string][]string
	// Unclustered lists substructure elements with no resolvable centroid;
	// they are absent from every cluster.
	Unclustered []string
}

// GroupElements returns the member ids of a subgroup key, or nil.
func (r *Result) GroupElements(key string) []string {
	return r.Groups[key]
}

// Classifier runs the deck/substructure partition and pier grouping over a
// geometry cache. It is a per-pass object: build, run once, discard.
type Classifier struct {
	cache *geometry.Cache
	opts  Options
}

// New creates a Classifier. Zero-valued options fall back to defaults
// (radius 10 FT, base name "Pier", standard suffixes).
func New(cache *geometry.Cache, opts Options) *Classifier {
	opts.applyDefaults()
	return &Classifier{cache: cache, opts: opts}
}

// Run classifies the selected elements. The returned error is
// ErrNoDeckReference when substructure elements exist but no deck reference
// height could be established; the partial result (deck/substructure split)
// is still returned alongside it.
func (c *Classifier) Run(selected map[string]model.Element, superSections map[string]bool) (*Result, error) {
	deck, sub := Partition(selected, superSections)

	res := &Result{
		Deck:         deck,
		Substructure: sub,
		Groups:       map[string][]string{},
		PierFrames:   map[string][]string{},
	}

	res.DeckReferenceHeight, res.HasDeckReference = DeckReferenceHeight(deck, c.cache)

	zap.L().Debug("classify: partitioned elements",
		zap.Int("selected", len(selected)),
		zap.Int("deck", len(deck)),
		zap.Int("substructure", len(sub)),
		zap.Bool("deck_reference", res.HasDeckReference),
	)

	if len(sub) == 0 {
		return res, nil
	}
	if !res.HasDeckReference {
		return res, ErrNoDeckReference
	}

	eps, err := units.ConvertLength(c.opts.PierRadius, c.opts.RadiusUnit, c.opts.ModelUnit)
	if err != nil {
		return nil, eris.Wrap(err, "classify: pier radius")
	}

	// Centroids in ascending numeric id order keep cluster numbering stable.
	points := make([]centroidPoint, 0, len(sub))
	for _, id := range model.SortedIDs(sub) {
		p, ok := c.cache.Centroid(id)
		if !ok {
			res.Unclustered = append(res.Unclustered, id)
			continue
		}
		points = append(points, centroidPoint{ID: id, X: p.X, Y: p.Y})
	}
	if len(res.Unclustered) > 0 {
		zap.L().Warn("classify: elements without resolvable centroid excluded from clustering",
			zap.Int("count", len(res.Unclustered)))
	}

	for i, members := range clusterByProximity(points, eps) {
		label := fmt.Sprintf("%s %d", c.opts.PierBaseName, c.opts.StartIndex+i)
		res.ClusterLabels = append(res.ClusterLabels, label)

		split := splitCluster(members, res.DeckReferenceHeight, eps, c.cache)
		res.Groups[label+c.opts.SuffixAbove] = split.Above
		res.Groups[label+c.opts.SuffixCap] = split.Caps
		res.Groups[label+c.opts.SuffixPier] = split.Piers

		var deps []string
		if len(split.Caps) > 0 {
			deps = append(deps, label+c.opts.SuffixCap)
		}
		if len(split.Above) > 0 {
			deps = append(deps, label+c.opts.SuffixAbove)
		}
		res.PierFrames[label] = deps
	}

	return res, nil
}
