// Package geometry provides element geometry lookups and the local-axis
// solver used to resolve directional loads into each member's own frame.
package geometry

import "math"

// Vec3 is a 3-component vector in global coordinates.
type Vec3 struct {
	X, Y, Z float64
}

// Global basis vectors.
var (
	GlobalX = Vec3{X: 1}
	GlobalY = Vec3{Y: 1}
	GlobalZ = Vec3{Z: 1}
)

func (v Vec3) Add(w Vec3) Vec3      { return Vec3{v.X + w.X, v.Y + w.Y, v.Z + w.Z} }
func (v Vec3) Sub(w Vec3) Vec3      { return Vec3{v.X - w.X, v.Y - w.Y, v.Z - w.Z} }
func (v Vec3) Scale(s float64) Vec3 { return Vec3{v.X * s, v.Y * s, v.Z * s} }

func (v Vec3) Dot(w Vec3) float64 { return v.X*w.X + v.Y*w.Y + v.Z*w.Z }

func (v Vec3) Cross(w Vec3) Vec3 {
	return Vec3{
		X: v.Y*w.Z - v.Z*w.Y,
		Y: v.Z*w.X - v.X*w.Z,
		Z: v.X*w.Y - v.Y*w.X,
	}
}

func (v Vec3) Norm() float64 { return math.Sqrt(v.Dot(v)) }

// Unit returns v scaled to unit length. Callers must guard zero-length input.
func (v Vec3) Unit() Vec3 { return v.Scale(1 / v.Norm()) }

// RotateAround rotates v about the unit axis k by the given angle in radians,
// right-hand rule, using Rodrigues' rotation formula.
func (v Vec3) RotateAround(k Vec3, angle float64) Vec3 {
	c := math.Cos(angle)
	s := math.Sin(angle)
	return v.Scale(c).
		Add(k.Cross(v).Scale(s)).
		Add(k.Scale(k.Dot(v) * (1 - c)))
}
