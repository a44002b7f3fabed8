package geometry

import (
	"math"
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tol = 1e-9

func assertOrthonormal(t *testing.T, f Frame) {
	t.Helper()
	assert.InDelta(t, 1, f.EX.Norm(), tol, "|ex| = 1")
	assert.InDelta(t, 1, f.EY.Norm(), tol, "|ey| = 1")
	assert.InDelta(t, 1, f.EZ.Norm(), tol, "|ez| = 1")
	assert.InDelta(t, 0, f.EX.Dot(f.EY), tol, "ex . ey = 0")
	assert.InDelta(t, 0, f.EY.Dot(f.EZ), tol, "ey . ez = 0")
	assert.InDelta(t, 0, f.EZ.Dot(f.EX), tol, "ez . ex = 0")

	// Right-handedness: ex x ey = ez.
	c := f.EX.Cross(f.EY)
	assert.InDelta(t, f.EZ.X, c.X, tol)
	assert.InDelta(t, f.EZ.Y, c.Y, tol)
	assert.InDelta(t, f.EZ.Z, c.Z, tol)
}

func TestComputeFrameOrthonormalSweep(t *testing.T) {
	axes := []struct {
		name   string
		n1, n2 Vec3
	}{
		{name: "horizontal along X", n1: Vec3{}, n2: Vec3{X: 10}},
		{name: "horizontal skewed", n1: Vec3{X: 1, Y: 2, Z: 3}, n2: Vec3{X: 4, Y: 7, Z: 3}},
		{name: "inclined", n1: Vec3{}, n2: Vec3{X: 3, Y: 4, Z: 5}},
		{name: "vertical up", n1: Vec3{Z: 0}, n2: Vec3{Z: 12}},
		{name: "vertical down", n1: Vec3{Z: 12}, n2: Vec3{Z: 0}},
	}

	for _, ax := range axes {
		t.Run(ax.name, func(t *testing.T) {
			for beta := 0.0; beta < 360; beta += 15 {
				f, err := ComputeFrame(ax.n1, ax.n2, beta)
				require.NoError(t, err, "beta=%v", beta)
				assertOrthonormal(t, f)
			}
		})
	}
}

func TestComputeFrameNonVerticalReference(t *testing.T) {
	// Horizontal member, beta = 0: ez must be the projection of global Z,
	// which for a horizontal axis is global Z itself.
	f, err := ComputeFrame(Vec3{}, Vec3{X: 5}, 0)
	require.NoError(t, err)
	assert.InDelta(t, 1, f.EZ.Dot(GlobalZ), tol)
	// ey = ez x ex = Z x X = Y.
	assert.InDelta(t, 1, f.EY.Dot(GlobalY), tol)
}

func TestComputeFrameVerticalReference(t *testing.T) {
	// Vertical member, beta = 0: reference z is global X.
	f, err := ComputeFrame(Vec3{}, Vec3{Z: 8}, 0)
	require.NoError(t, err)
	assert.InDelta(t, 1, f.EZ.Dot(GlobalX), tol)

	// beta = 90 rotates the reference about +Z onto +Y.
	f, err = ComputeFrame(Vec3{}, Vec3{Z: 8}, 90)
	require.NoError(t, err)
	assert.InDelta(t, 1, f.EZ.Dot(GlobalY), tol)
}

func TestComputeFrameBetaRoundTrip(t *testing.T) {
	n1 := Vec3{X: 1, Y: -2, Z: 0.5}
	n2 := Vec3{X: 6, Y: 3, Z: 4}

	ref, err := ComputeFrame(n1, n2, 0)
	require.NoError(t, err)

	for _, beta := range []float64{15, 45, 90, 180, 270, 359} {
		f, err := ComputeFrame(n1, n2, beta)
		require.NoError(t, err)

		back := f.EZ.RotateAround(f.EX, -beta*math.Pi/180)
		assert.InDelta(t, ref.EZ.X, back.X, tol, "beta=%v", beta)
		assert.InDelta(t, ref.EZ.Y, back.Y, tol, "beta=%v", beta)
		assert.InDelta(t, ref.EZ.Z, back.Z, tol, "beta=%v", beta)
	}
}

func TestComputeFrameCoincidentNodes(t *testing.T) {
	_, err := ComputeFrame(Vec3{X: 1, Y: 1, Z: 1}, Vec3{X: 1, Y: 1, Z: 1}, 0)
	require.Error(t, err)
	assert.True(t, eris.Is(err, ErrCoincidentNodes))
}

func TestFrameLocalGlobalRoundTrip(t *testing.T) {
	f, err := ComputeFrame(Vec3{}, Vec3{X: 3, Y: 4, Z: 5}, 30)
	require.NoError(t, err)

	v := Vec3{X: 1.5, Y: -2.25, Z: 0.75}
	back := f.ToGlobal(f.ToLocal(v))
	assert.InDelta(t, v.X, back.X, tol)
	assert.InDelta(t, v.Y, back.Y, tol)
	assert.InDelta(t, v.Z, back.Z, tol)
}

func TestSignedAngleAbout(t *testing.T) {
	// About +Z, X to Y is +90; Y to X is -90.
	assert.InDelta(t, 90, SignedAngleAbout(GlobalZ, GlobalX, GlobalY), tol)
	assert.InDelta(t, -90, SignedAngleAbout(GlobalZ, GlobalY, GlobalX), tol)
	assert.InDelta(t, 0, SignedAngleAbout(GlobalZ, GlobalX, GlobalX), tol)
	assert.InDelta(t, 180, math.Abs(SignedAngleAbout(GlobalZ, GlobalX, Vec3{X: -1})), tol)

	// Components along the axis are ignored.
	tilted := GlobalY.Add(GlobalZ.Scale(3))
	assert.InDelta(t, 90, SignedAngleAbout(GlobalZ, GlobalX, tilted), tol)
}

func TestRotateAround(t *testing.T) {
	got := GlobalX.RotateAround(GlobalZ, math.Pi/2)
	assert.InDelta(t, 0, got.X, tol)
	assert.InDelta(t, 1, got.Y, tol)
	assert.InDelta(t, 0, got.Z, tol)
}
