package geometry

import (
	"math"

	"github.com/rotisserie/eris"
)

// frameTol decides verticality and guards degenerate triads.
const frameTol = 1e-8

// Degenerate-geometry sentinels. These mark a malformed model element, as
// opposed to missing input, and batch callers skip the element and continue.
var (
	ErrCoincidentNodes = eris.New("geometry: element end nodes coincide")
	ErrDegenerateTriad = eris.New("geometry: cannot build right-handed triad")
)

// Frame is an element's orthonormal right-handed local basis expressed in
// global coordinates: EX along the element axis from the first node to the
// second, EZ the rotated section normal, EY = EZ × EX.
type Frame struct {
	EX, EY, EZ Vec3
}

// ToLocal resolves a global vector into local (x, y, z) components.
func (f Frame) ToLocal(v Vec3) Vec3 {
	return Vec3{X: f.EX.Dot(v), Y: f.EY.Dot(v), Z: f.EZ.Dot(v)}
}

// ToGlobal resolves a local vector back into global coordinates.
func (f Frame) ToGlobal(v Vec3) Vec3 {
	return f.EX.Scale(v.X).Add(f.EY.Scale(v.Y)).Add(f.EZ.Scale(v.Z))
}

// ComputeFrame builds the local frame for a line element from its end points
// and beta rotation in degrees.
//
// Convention: a member is "vertical" when its axis is parallel to global Z
// within tolerance. For vertical members the pre-rotation reference z0 is
// global X (global Y if the axis is itself nearly global X); otherwise z0 is
// the projection of global Z onto the plane orthogonal to the axis. Beta then
// rotates z0 about the axis, right-hand rule. This is the convention the wind
// builders rely on to direct pressures onto local Y/Z.
func ComputeFrame(n1, n2 Vec3, betaDeg float64) (Frame, error) {
	axis := n2.Sub(n1)
	if axis.Norm() < frameTol {
		return Frame{}, ErrCoincidentNodes
	}
	ex := axis.Unit()

	cosTheta := ex.Dot(GlobalZ)
	isVertical := math.Abs(math.Abs(cosTheta)-1) < frameTol

	var z0 Vec3
	if isVertical {
		z0 = GlobalX
		if math.Abs(z0.Dot(ex)) > 1-frameTol {
			z0 = GlobalY
		}
	} else {
		proj := GlobalZ.Sub(ex.Scale(GlobalZ.Dot(ex)))
		if proj.Norm() < frameTol {
			z0 = GlobalX
		} else {
			z0 = proj.Unit()
		}
	}

	ez := z0.RotateAround(ex, betaDeg*math.Pi/180).Unit()

	ey := ez.Cross(ex)
	if ey.Norm() < frameTol {
		return Frame{}, ErrDegenerateTriad
	}
	return Frame{EX: ex, EY: ey.Unit(), EZ: ez}, nil
}

// SignedAngleAbout returns the signed angle in degrees from one vector to
// another, measured about the given unit axis (right-hand rule). Both vectors
// are projected onto the plane orthogonal to the axis first.
func SignedAngleAbout(axis, from, to Vec3) float64 {
	f := from.Sub(axis.Scale(from.Dot(axis)))
	t := to.Sub(axis.Scale(to.Dot(axis)))
	sin := axis.Dot(f.Cross(t))
	cos := f.Dot(t)
	return math.Atan2(sin, cos) * 180 / math.Pi
}
