package trajectory

import (
	"github.com/tphakala/go-trajectory/internal/rotation"
	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r3"
)

// Pose is a rigid-body placement: a rotation followed by a translation.
// Rotation is a unit quaternion mapping body coordinates to world coordinates.
type Pose struct {
	Rotation    quat.Number
	Translation r3.Vec
}

// IdentityPose returns the pose with no rotation and no translation.
func IdentityPose() Pose {
	return Pose{Rotation: rotation.Identity}
}

// NewPose returns a pose with the rotation normalized to unit length.
func NewPose(rot quat.Number, translation r3.Vec) Pose {
	return Pose{Rotation: rotation.Normalize(rot), Translation: translation}
}

// NewPoseFromMatrix returns a pose from a rotation matrix and a translation.
func NewPoseFromMatrix(m *r3.Mat, translation r3.Vec) Pose {
	return Pose{Rotation: rotation.FromMatrix(m), Translation: translation}
}

// Matrix returns the rotation part of p as a matrix.
func (p Pose) Matrix() *r3.Mat {
	return rotation.ToMatrix(p.Rotation)
}

// Apply maps a point from body to world coordinates.
func (p Pose) Apply(v r3.Vec) r3.Vec {
	return r3.Add(r3.Rotation(p.Rotation).Rotate(v), p.Translation)
}

// MotionVec is a 6D spatial motion vector (twist).
type MotionVec struct {
	Angular r3.Vec
	Linear  r3.Vec
}

// Add returns m + o.
func (m MotionVec) Add(o MotionVec) MotionVec {
	return MotionVec{Angular: r3.Add(m.Angular, o.Angular), Linear: r3.Add(m.Linear, o.Linear)}
}

// Sub returns m - o.
func (m MotionVec) Sub(o MotionVec) MotionVec {
	return MotionVec{Angular: r3.Sub(m.Angular, o.Angular), Linear: r3.Sub(m.Linear, o.Linear)}
}

// Scale returns f*m.
func (m MotionVec) Scale(f float64) MotionVec {
	return MotionVec{Angular: r3.Scale(f, m.Angular), Linear: r3.Scale(f, m.Linear)}
}

// ForceVec is a 6D spatial force vector (wrench).
type ForceVec struct {
	Couple r3.Vec
	Force  r3.Vec
}

// Add returns w + o.
func (w ForceVec) Add(o ForceVec) ForceVec {
	return ForceVec{Couple: r3.Add(w.Couple, o.Couple), Force: r3.Add(w.Force, o.Force)}
}

// Sub returns w - o.
func (w ForceVec) Sub(o ForceVec) ForceVec {
	return ForceVec{Couple: r3.Sub(w.Couple, o.Couple), Force: r3.Sub(w.Force, o.Force)}
}

// Scale returns f*w.
func (w ForceVec) Scale(f float64) ForceVec {
	return ForceVec{Couple: r3.Scale(f, w.Couple), Force: r3.Scale(f, w.Force)}
}

// InterpolatePose blends two poses: the translation linearly and the rotation
// spherically. Ratio 0 and 1 return the end poses exactly.
func InterpolatePose(start, end Pose, ratio float64) Pose {
	if ratio <= 0 {
		return start
	}
	if ratio >= 1 {
		return end
	}
	return Pose{
		Rotation:    rotation.Slerp(start.Rotation, end.Rotation, ratio),
		Translation: r3.Add(r3.Scale(1-ratio, start.Translation), r3.Scale(ratio, end.Translation)),
	}
}

// TransformError returns the spatial error taking start to end, expressed in
// world coordinates. The angular part is the rotation vector of
// end.Rotation * start.Rotation⁻¹ and the linear part is the translation
// difference.
func TransformError(start, end Pose) MotionVec {
	rel := quat.Mul(rotation.Normalize(end.Rotation), quat.Conj(rotation.Normalize(start.Rotation)))
	return MotionVec{
		Angular: rotation.Log(rel),
		Linear:  r3.Sub(end.Translation, start.Translation),
	}
}
