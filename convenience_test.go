package trajectory

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tphakala/go-trajectory/internal/testutil"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestFromMap(t *testing.T) {
	pts := FromMap(map[float64]float64{2: 0, 0: 0, 1: 10})
	require.Len(t, pts, 3)
	assert.Equal(t, []Waypoint[float64]{{0, 0}, {1, 10}, {2, 0}}, pts)

	ip, err := NewScalarInterpolator(pts...)
	require.NoError(t, err)
	got, err := ip.Evaluate(0.5)
	require.NoError(t, err)
	assert.InDelta(t, 5.0, got, exactTolerance)
}

func TestConstructors_ExactAtWaypoints(t *testing.T) {
	rz := func(a float64) quat.Number { return quat.Number(r3.NewRotation(a, r3.Vec{Z: 1})) }

	t.Run("vec3", func(t *testing.T) {
		ip, err := NewVec3Interpolator(
			Waypoint[r3.Vec]{Time: 0, Value: r3.Vec{X: 1}},
			Waypoint[r3.Vec]{Time: 1, Value: r3.Vec{Y: 1}},
		)
		require.NoError(t, err)
		got, err := ip.Evaluate(1)
		require.NoError(t, err)
		assert.Equal(t, r3.Vec{Y: 1}, got)
	})

	t.Run("rotation", func(t *testing.T) {
		end := r3.NewRotation(math.Pi, r3.Vec{X: 1})
		ip, err := NewRotationInterpolator(
			Waypoint[r3.Rotation]{Time: 0, Value: r3.NewRotation(0, r3.Vec{X: 1})},
			Waypoint[r3.Rotation]{Time: 2, Value: end},
		)
		require.NoError(t, err)
		got, err := ip.Evaluate(2)
		require.NoError(t, err)
		assert.Equal(t, end, got)
	})

	t.Run("matrix", func(t *testing.T) {
		m1 := matrixOf(rz(1))
		ip, err := NewMatrixInterpolator(
			Waypoint[*r3.Mat]{Time: 0, Value: matrixOf(rz(0))},
			Waypoint[*r3.Mat]{Time: 1, Value: m1},
		)
		require.NoError(t, err)
		got, err := ip.Evaluate(1)
		require.NoError(t, err)
		assert.True(t, mat.EqualApprox(m1, got, 0))

		mid, err := ip.Evaluate(0.5)
		require.NoError(t, err)
		testutil.AssertSameRotation(t, rz(0.5), NewPoseFromMatrix(mid, r3.Vec{}).Rotation, testutil.RotationTolerance)
	})

	t.Run("pose", func(t *testing.T) {
		p0 := IdentityPose()
		p1 := NewPose(rz(math.Pi/2), r3.Vec{X: 4})
		ip, err := NewPoseInterpolator(
			Waypoint[Pose]{Time: 0, Value: p0},
			Waypoint[Pose]{Time: 1, Value: p1},
		)
		require.NoError(t, err)

		got, err := ip.Evaluate(1)
		require.NoError(t, err)
		assert.Equal(t, p1, got)

		vel, err := ip.Derivative(0.5, 1)
		require.NoError(t, err)
		testutil.AssertVecInDelta(t, r3.Vec{Z: 1.5 * math.Pi / 2}, vel.Angular, testutil.RotationTolerance)
		testutil.AssertVecInDelta(t, r3.Vec{X: 6}, vel.Linear, exactTolerance)
	})

	t.Run("force", func(t *testing.T) {
		w := ForceVec{Couple: r3.Vec{Z: 2}, Force: r3.Vec{X: -1}}
		ip, err := NewForceInterpolator(
			Waypoint[ForceVec]{Time: 0, Value: ForceVec{}},
			Waypoint[ForceVec]{Time: 1, Value: w},
		)
		require.NoError(t, err)
		got, err := ip.Evaluate(1)
		require.NoError(t, err)
		assert.Equal(t, w, got)
	})

	t.Run("motion", func(t *testing.T) {
		m := MotionVec{Angular: r3.Vec{Y: 1}, Linear: r3.Vec{Z: 1}}
		ip, err := NewMotionInterpolator(
			Waypoint[MotionVec]{Time: 0, Value: MotionVec{}},
			Waypoint[MotionVec]{Time: 1, Value: m},
		)
		require.NoError(t, err)
		got, err := ip.Evaluate(0.5)
		require.NoError(t, err)
		testutil.AssertVecInDelta(t, r3.Vec{Y: 0.5}, got.Angular, exactTolerance)
		testutil.AssertVecInDelta(t, r3.Vec{Z: 0.5}, got.Linear, exactTolerance)
	})
}

func matrixOf(q quat.Number) *r3.Mat {
	return NewPose(q, r3.Vec{}).Matrix()
}
