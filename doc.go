// Package trajectory provides smooth, time-parameterized interpolation over
// timestamped waypoints in pure Go.
//
// Waypoint values may be scalars, N-dimensional vectors, unit quaternions,
// rotation matrices, rigid poses, or 6D spatial force and motion vectors. The
// trajectory passes exactly through every waypoint with zero velocity there.
//
// # Features
//
//   - Type-specific blending: linear for vector spaces, spherical for rotations,
//     mixed for rigid poses
//   - Exact values at waypoints, clamped values outside the waypoint range
//   - First-order time derivatives through the chain rule
//   - Uniform grid sampling of values and derivatives
//   - Built on gonum (interp, num/quat, spatial/r3) with SIMD vector operations
//     via github.com/tphakala/simd
//
// # Quick Start
//
//	ip, err := trajectory.NewScalarInterpolator(
//	    trajectory.Waypoint[float64]{Time: 0, Value: 0},
//	    trajectory.Waypoint[float64]{Time: 1, Value: 10},
//	    trajectory.Waypoint[float64]{Time: 2, Value: 0},
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	v, err := ip.Evaluate(0.5)       // between 0 and 10
//	d, err := ip.Derivative(0.5, 1)  // rate of change at t=0.5
//
// # Two-Phase Updates
//
// Waypoints are changed with [CubicInterpolator.AppendPoint] and
// [CubicInterpolator.ClearPoints] and committed with
// [CubicInterpolator.CalcCoeff]. Queries made before the commit return
// [ErrNotReady]. Building a large trajectory therefore costs one fit, not one
// per waypoint:
//
//	ip, _ := trajectory.NewQuaternionInterpolator()
//	for _, kf := range keyframes {
//	    ip.AppendPoint(kf.Time, kf.Orientation)
//	}
//	if err := ip.CalcCoeff(); err != nil {
//	    log.Fatal(err)
//	}
//
// # How It Works
//
// The waypoint ranks 0, 1, ..., N-1 are fitted over the waypoint times with a
// cubic Hermite curve whose slope is zero at every knot. Evaluating the curve
// at t gives a continuous rank; its integer part selects two neighbouring
// waypoints and its fractional part is the blend ratio between them:
//
//	t -> [index curve] -> rank 2.37 -> blend(p[2], p[3], 0.37)
//
// Each value type supplies a [Blend] that knows how to mix two values and how
// to express the rate of change between them. New value types are supported
// by declaring a new Blend.
//
// # Thread Safety
//
// A [CubicInterpolator] must not be mutated while it is queried from another
// goroutine. Once in [StateReady] with no further mutation it may be queried
// concurrently. [CubicInterpolator.Clone] returns a fully independent copy.
package trajectory
