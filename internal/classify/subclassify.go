package classify

import (
	"github.com/sells-group/windload-cli/internal/geometry"
)

// capSpanFactor scales the clustering threshold into the vertical-span cutoff
// that separates pier caps from piers.
const capSpanFactor = 0.3

// ClusterSplit holds one pier cluster's members partitioned by role. The
// three sets are disjoint and together cover every member whose centroid
// resolved.
type ClusterSplit struct {
	Above []string
	Caps  []string
	Piers []string
}

// splitCluster classifies a cluster's members against the deck reference
// height. A member is above-deck iff its centroid Z exceeds refZ; below-deck
// members with vertical span <= capSpanFactor*eps are caps (near-horizontal,
// short vertical extent), the rest are piers. Members whose centroid cannot
// be computed are excluded from all three sets.
func splitCluster(memberIDs []string, refZ, eps float64, cache *geometry.Cache) ClusterSplit {
	spanThreshold := capSpanFactor * eps

	var out ClusterSplit
	for _, id := range memberIDs {
		c, ok := cache.Centroid(id)
		if !ok {
			continue
		}
		if c.Z > refZ {
			out.Above = append(out.Above, id)
			continue
		}
		if cache.VerticalSpan(id) <= spanThreshold {
			out.Caps = append(out.Caps, id)
		} else {
			out.Piers = append(out.Piers, id)
		}
	}
	return out
}
