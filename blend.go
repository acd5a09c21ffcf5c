package trajectory

import (
	"fmt"
	"slices"

	"github.com/tphakala/go-trajectory/internal/rotation"
	"github.com/tphakala/go-trajectory/internal/simdops"
	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r3"
)

// Float is the type constraint for vector element types.
type Float interface {
	float32 | float64
}

// Blend defines how values of type T are blended and differentiated. U is the
// type of the rate of change of T.
//
// Each supported value type has a predefined Blend. Support for a new type is
// added by declaring a new Blend value, never by changing an existing one.
type Blend[T, U any] struct {
	// Interpolate returns the value between start and end at ratio in [0, 1].
	// Ratio 0 must return start and ratio 1 must return end.
	Interpolate func(start, end T, ratio float64) T

	// Derivative returns the rate of change from start to end per unit ratio
	// for order 1, and the zero value of U for any higher order.
	Derivative func(start, end T, ratio float64, order int) U

	// Scale multiplies a rate by s.
	Scale func(s float64, rate U) U

	// Copy returns a deep copy of a value. Nil for types with value semantics.
	Copy func(v T) T

	// Check reports whether two neighbouring waypoint values can be blended.
	// Nil when every pair of values is compatible.
	Check func(start, end T) error
}

func (b Blend[T, U]) valid() bool {
	return b.Interpolate != nil && b.Derivative != nil && b.Scale != nil
}

func (b Blend[T, U]) copyValue(v T) T {
	if b.Copy == nil {
		return v
	}
	return b.Copy(v)
}

// ScalarBlend blends plain numbers linearly.
var ScalarBlend = Blend[float64, float64]{
	Interpolate: func(start, end, ratio float64) float64 {
		return (1-ratio)*start + ratio*end
	},
	Derivative: func(start, end, _ float64, order int) float64 {
		if order == 1 {
			return end - start
		}
		return 0
	},
	Scale: func(s, rate float64) float64 {
		return s * rate
	},
}

// VectorBlend returns the blend for N-dimensional vectors. Start and end
// values must have the same length; Check rejects pairs that do not.
func VectorBlend[F Float]() Blend[[]F, []F] {
	return Blend[[]F, []F]{
		Interpolate: func(start, end []F, ratio float64) []F {
			return simdops.Lerp(start, end, ratio)
		},
		Derivative: func(start, end []F, _ float64, order int) []F {
			if order == 1 {
				return simdops.Diff(start, end)
			}
			return make([]F, len(start))
		},
		Scale: func(s float64, rate []F) []F {
			return simdops.ScaleTo(rate, s)
		},
		Copy: func(v []F) []F {
			return slices.Clone(v)
		},
		Check: func(start, end []F) error {
			if len(start) != len(end) {
				return fmt.Errorf("vector length %d does not match %d", len(end), len(start))
			}
			return nil
		},
	}
}

// Vec3Blend blends 3D vectors linearly.
var Vec3Blend = Blend[r3.Vec, r3.Vec]{
	Interpolate: func(start, end r3.Vec, ratio float64) r3.Vec {
		return r3.Add(r3.Scale(1-ratio, start), r3.Scale(ratio, end))
	},
	Derivative: func(start, end r3.Vec, _ float64, order int) r3.Vec {
		if order == 1 {
			return r3.Sub(end, start)
		}
		return r3.Vec{}
	},
	Scale: r3.Scale,
}

// QuaternionBlend blends unit quaternions by spherical linear interpolation.
// The rate is the rotation vector of start⁻¹·end, in the start frame.
var QuaternionBlend = Blend[quat.Number, r3.Vec]{
	Interpolate: rotation.Slerp,
	Derivative: func(start, end quat.Number, _ float64, order int) r3.Vec {
		if order == 1 {
			return rotation.Relative(start, end)
		}
		return r3.Vec{}
	},
	Scale: r3.Scale,
}

// RotationBlend is QuaternionBlend for r3.Rotation values.
var RotationBlend = Blend[r3.Rotation, r3.Vec]{
	Interpolate: func(start, end r3.Rotation, ratio float64) r3.Rotation {
		return r3.Rotation(rotation.Slerp(quat.Number(start), quat.Number(end), ratio))
	},
	Derivative: func(start, end r3.Rotation, ratio float64, order int) r3.Vec {
		return QuaternionBlend.Derivative(quat.Number(start), quat.Number(end), ratio, order)
	},
	Scale: r3.Scale,
}

// MatrixBlend blends rotation matrices through their quaternions.
// The rate is the rotation vector of startᵀ·end.
var MatrixBlend = Blend[*r3.Mat, r3.Vec]{
	Interpolate: func(start, end *r3.Mat, ratio float64) *r3.Mat {
		if ratio <= 0 {
			return rotation.CloneMatrix(start)
		}
		if ratio >= 1 {
			return rotation.CloneMatrix(end)
		}
		q := rotation.Slerp(rotation.FromMatrix(start), rotation.FromMatrix(end), ratio)
		return rotation.ToMatrix(q)
	},
	Derivative: func(start, end *r3.Mat, _ float64, order int) r3.Vec {
		if order == 1 {
			return rotation.MatrixLog(rotation.RelativeMatrix(start, end))
		}
		return r3.Vec{}
	},
	Scale: r3.Scale,
	Copy:  rotation.CloneMatrix,
}

// PoseBlend blends rigid poses with InterpolatePose. The rate is the spatial
// error given by TransformError.
var PoseBlend = Blend[Pose, MotionVec]{
	Interpolate: InterpolatePose,
	Derivative: func(start, end Pose, _ float64, order int) MotionVec {
		if order == 1 {
			return TransformError(start, end)
		}
		return MotionVec{}
	},
	Scale: func(s float64, rate MotionVec) MotionVec {
		return rate.Scale(s)
	},
}

// ForceBlend blends spatial force vectors linearly.
var ForceBlend = Blend[ForceVec, ForceVec]{
	Interpolate: func(start, end ForceVec, ratio float64) ForceVec {
		return start.Scale(1 - ratio).Add(end.Scale(ratio))
	},
	Derivative: func(start, end ForceVec, _ float64, order int) ForceVec {
		if order == 1 {
			return end.Sub(start)
		}
		return ForceVec{}
	},
	Scale: func(s float64, rate ForceVec) ForceVec {
		return rate.Scale(s)
	},
}

// MotionBlend blends spatial motion vectors linearly.
var MotionBlend = Blend[MotionVec, MotionVec]{
	Interpolate: func(start, end MotionVec, ratio float64) MotionVec {
		return start.Scale(1 - ratio).Add(end.Scale(ratio))
	},
	Derivative: func(start, end MotionVec, _ float64, order int) MotionVec {
		if order == 1 {
			return end.Sub(start)
		}
		return MotionVec{}
	},
	Scale: func(s float64, rate MotionVec) MotionVec {
		return rate.Scale(s)
	},
}
