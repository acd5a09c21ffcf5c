package trajectory

import (
	"maps"
	"slices"

	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r3"
)

// FromMap converts a time-keyed map into waypoints sorted by time.
func FromMap[T any](m map[float64]T) []Waypoint[T] {
	times := slices.Sorted(maps.Keys(m))
	out := make([]Waypoint[T], len(times))
	for i, t := range times {
		out[i] = Waypoint[T]{Time: t, Value: m[t]}
	}
	return out
}

// NewScalarInterpolator creates an interpolator over plain numbers.
func NewScalarInterpolator(points ...Waypoint[float64]) (*CubicInterpolator[float64, float64], error) {
	return NewCubicInterpolator(ScalarBlend, points...)
}

// NewVectorInterpolator creates an interpolator over N-dimensional vectors.
// All values must have the same length, otherwise ErrInvalidConfig is
// returned when coefficients are calculated.
func NewVectorInterpolator[F Float](points ...Waypoint[[]F]) (*CubicInterpolator[[]F, []F], error) {
	return NewCubicInterpolator(VectorBlend[F](), points...)
}

// NewVec3Interpolator creates an interpolator over 3D vectors.
func NewVec3Interpolator(points ...Waypoint[r3.Vec]) (*CubicInterpolator[r3.Vec, r3.Vec], error) {
	return NewCubicInterpolator(Vec3Blend, points...)
}

// NewQuaternionInterpolator creates an interpolator over unit quaternions.
func NewQuaternionInterpolator(points ...Waypoint[quat.Number]) (*CubicInterpolator[quat.Number, r3.Vec], error) {
	return NewCubicInterpolator(QuaternionBlend, points...)
}

// NewRotationInterpolator creates an interpolator over r3 rotations.
func NewRotationInterpolator(points ...Waypoint[r3.Rotation]) (*CubicInterpolator[r3.Rotation, r3.Vec], error) {
	return NewCubicInterpolator(RotationBlend, points...)
}

// NewMatrixInterpolator creates an interpolator over rotation matrices.
func NewMatrixInterpolator(points ...Waypoint[*r3.Mat]) (*CubicInterpolator[*r3.Mat, r3.Vec], error) {
	return NewCubicInterpolator(MatrixBlend, points...)
}

// NewPoseInterpolator creates an interpolator over rigid poses.
func NewPoseInterpolator(points ...Waypoint[Pose]) (*CubicInterpolator[Pose, MotionVec], error) {
	return NewCubicInterpolator(PoseBlend, points...)
}

// NewForceInterpolator creates an interpolator over spatial force vectors.
func NewForceInterpolator(points ...Waypoint[ForceVec]) (*CubicInterpolator[ForceVec, ForceVec], error) {
	return NewCubicInterpolator(ForceBlend, points...)
}

// NewMotionInterpolator creates an interpolator over spatial motion vectors.
func NewMotionInterpolator(points ...Waypoint[MotionVec]) (*CubicInterpolator[MotionVec, MotionVec], error) {
	return NewCubicInterpolator(MotionBlend, points...)
}
