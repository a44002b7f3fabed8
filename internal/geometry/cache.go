package geometry

import (
	"math"

	"github.com/rotisserie/eris"

	"github.com/sells-group/windload-cli/internal/model"
)

// ErrZeroLength marks an element whose first two resolvable end nodes
// coincide. Orientation is undefined for it.
var ErrZeroLength = eris.New("geometry: element has zero length")

// Metrics are the derived length and orientation of a line element. Angles
// are measured between the element axis and the three global planes, degrees.
type Metrics struct {
	Length  float64
	AngleXY float64
	AngleXZ float64
	AngleYZ float64
}

// Cache provides O(1) lookups from element and node ids to geometric
// primitives for one classification or load pass. Build it once per pass
// from freshly fetched tables; it holds no state beyond the input copy.
type Cache struct {
	coords   map[string]Vec3
	elements map[string]model.Element
}

// NewCache flattens the node and element tables into lookup maps.
func NewCache(nodes map[string]model.Node, elements map[string]model.Element) *Cache {
	coords := make(map[string]Vec3, len(nodes))
	for id, n := range nodes {
		coords[id] = Vec3{X: n.X, Y: n.Y, Z: n.Z}
	}
	return &Cache{coords: coords, elements: elements}
}

// NodeCoords returns the coordinates of a node, if present.
func (c *Cache) NodeCoords(nodeID string) (Vec3, bool) {
	v, ok := c.coords[nodeID]
	return v, ok
}

// Element returns the element record, if present.
func (c *Cache) Element(elementID string) (model.Element, bool) {
	e, ok := c.elements[elementID]
	return e, ok
}

// Endpoints returns the element's positive node ids in connectivity order.
// Unknown elements yield an empty slice.
func (c *Cache) Endpoints(elementID string) []string {
	e, ok := c.elements[elementID]
	if !ok {
		return nil
	}
	return e.EndNodeIDs()
}

// Centroid returns the arithmetic mean of all resolvable endpoint
// coordinates. The second return is false when no endpoint resolves.
func (c *Cache) Centroid(elementID string) (Vec3, bool) {
	var sum Vec3
	count := 0
	for _, nid := range c.Endpoints(elementID) {
		p, ok := c.coords[nid]
		if !ok {
			continue
		}
		sum = sum.Add(p)
		count++
	}
	if count == 0 {
		return Vec3{}, false
	}
	return sum.Scale(1 / float64(count)), true
}

// VerticalSpan returns max(Z) - min(Z) across the element's resolvable
// endpoints, or 0 when none resolve.
func (c *Cache) VerticalSpan(elementID string) float64 {
	first := true
	var lo, hi float64
	for _, nid := range c.Endpoints(elementID) {
		p, ok := c.coords[nid]
		if !ok {
			continue
		}
		if first {
			lo, hi = p.Z, p.Z
			first = false
			continue
		}
		lo = math.Min(lo, p.Z)
		hi = math.Max(hi, p.Z)
	}
	if first {
		return 0
	}
	return hi - lo
}

// endPoints resolves the element's first two endpoint coordinates. The bool
// is false when fewer than two endpoints resolve (an absence, not an error).
func (c *Cache) endPoints(elementID string) (Vec3, Vec3, bool) {
	ids := c.Endpoints(elementID)
	if len(ids) < 2 {
		return Vec3{}, Vec3{}, false
	}
	p1, ok1 := c.coords[ids[0]]
	p2, ok2 := c.coords[ids[1]]
	if !ok1 || !ok2 {
		return Vec3{}, Vec3{}, false
	}
	return p1, p2, true
}

// Metrics computes length and plane angles from the element's first two
// resolvable endpoints. The bool is false when the endpoints do not resolve;
// ErrZeroLength is returned for a degenerate (coincident-endpoint) element.
func (c *Cache) Metrics(elementID string) (Metrics, bool, error) {
	p1, p2, ok := c.endPoints(elementID)
	if !ok {
		return Metrics{}, false, nil
	}
	d := p2.Sub(p1)
	length := d.Norm()
	if length == 0 {
		return Metrics{}, true, eris.Wrapf(ErrZeroLength, "element %s", elementID)
	}
	deg := func(component float64) float64 {
		return math.Asin(math.Abs(component)/length) * 180 / math.Pi
	}
	return Metrics{
		Length:  length,
		AngleXY: deg(d.Z),
		AngleXZ: deg(d.Y),
		AngleYZ: deg(d.X),
	}, true, nil
}

// Frame computes the element's local axes using its stored beta angle.
// The bool is false when the endpoints do not resolve.
func (c *Cache) Frame(elementID string) (Frame, bool, error) {
	e, ok := c.elements[elementID]
	if !ok {
		return Frame{}, false, nil
	}
	p1, p2, ok := c.endPoints(elementID)
	if !ok {
		return Frame{}, false, nil
	}
	f, err := ComputeFrame(p1, p2, e.Beta)
	if err != nil {
		return Frame{}, true, eris.Wrapf(err, "element %s", elementID)
	}
	return f, true, nil
}
