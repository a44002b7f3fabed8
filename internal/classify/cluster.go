package classify

import (
	"math"
)

// centroidPoint pairs an element id with its planar centroid. Z is dropped:
// pier grouping only cares about plan-view proximity.
type centroidPoint struct {
	ID string
	X  float64
	Y  float64
}

// unionFind is a plain disjoint-set with path halving.
type unionFind struct {
	parent []int
}

func newUnionFind(n int) *unionFind {
	p := make([]int, n)
	for i := range p {
		p[i] = i
	}
	return &unionFind{parent: p}
}

func (u *unionFind) find(i int) int {
	for u.parent[i] != i {
		u.parent[i] = u.parent[u.parent[i]]
		i = u.parent[i]
	}
	return i
}

func (u *unionFind) union(i, j int) {
	ri, rj := u.find(i), u.find(j)
	if ri != rj {
		u.parent[rj] = ri
	}
}

type gridKey struct {
	X, Y int
}

// clusterByProximity partitions points into connected components where two
// points are linked iff their planar distance is <= eps, transitively closed.
//
// Points are bucketed into a uniform grid of cell size eps; candidate pairs
// are only drawn from a cell and its 8 neighbors, which is exhaustive because
// any two points within eps land in the same or adjacent cells. The input
// order drives component numbering: each cluster keeps its members in input
// order, and clusters are emitted in order of their first-seen member, so the
// partition and its numbering are stable for unchanged input.
func clusterByProximity(points []centroidPoint, eps float64) [][]string {
	if len(points) == 0 {
		return nil
	}

	buckets := make(map[gridKey][]int)
	for i, p := range points {
		k := gridKey{X: int(math.Floor(p.X / eps)), Y: int(math.Floor(p.Y / eps))}
		buckets[k] = append(buckets[k], i)
	}

	uf := newUnionFind(len(points))
	for key, ids := range buckets {
		var cand []int
		for dx := -1; dx <= 1; dx++ {
			for dy := -1; dy <= 1; dy++ {
				cand = append(cand, buckets[gridKey{X: key.X + dx, Y: key.Y + dy}]...)
			}
		}
		for _, i := range ids {
			for _, j := range cand {
				if j <= i {
					continue
				}
				if planarDist(points[i], points[j]) <= eps {
					uf.union(i, j)
				}
			}
		}
	}

	// Collect components in first-seen order.
	order := make([]int, 0)
	members := make(map[int][]string)
	for i, p := range points {
		root := uf.find(i)
		if _, seen := members[root]; !seen {
			order = append(order, root)
		}
		members[root] = append(members[root], p.ID)
	}

	out := make([][]string, 0, len(order))
	for _, root := range order {
		out = append(out, members[root])
	}
	return out
}

func planarDist(a, b centroidPoint) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}
