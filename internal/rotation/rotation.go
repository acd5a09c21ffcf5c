// Package rotation implements the rotation-group primitives used by the
// trajectory blends: conversion between unit quaternions and rotation
// matrices, spherical linear interpolation and the logarithm map.
//
// Quaternions are gonum quat.Number values with Real as the scalar part.
// Rotation matrices are active (they rotate vectors, v' = R v) and match the
// convention of r3.Rotation.Rotate.
package rotation

import (
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r3"
)

// Identity is the identity rotation quaternion.
var Identity = quat.Number{Real: 1}

// Normalize returns q scaled to unit length. The zero quaternion maps to Identity.
func Normalize(q quat.Number) quat.Number {
	n := quat.Abs(q)
	if n == 0 {
		return Identity
	}
	if math.Abs(n-1) < unitTolerance {
		return q
	}
	return quat.Scale(1/n, q)
}

// Dot returns the four-dimensional dot product of a and b.
func Dot(a, b quat.Number) float64 {
	return a.Real*b.Real + a.Imag*b.Imag + a.Jmag*b.Jmag + a.Kmag*b.Kmag
}

// Slerp spherically interpolates from a to b along the shortest arc.
// Ratio 0 returns a and ratio 1 returns b exactly.
func Slerp(a, b quat.Number, ratio float64) quat.Number {
	if ratio <= 0 {
		return a
	}
	if ratio >= 1 {
		return b
	}
	a = Normalize(a)
	b = Normalize(b)
	if Dot(a, b) < 0 {
		b = quat.Scale(-1, b)
	}

	// p(t) = (b * a^-1)^t * a
	d := quat.Mul(b, quat.Conj(a))
	d = quat.PowReal(d, ratio)
	return Normalize(quat.Mul(d, a))
}

// Log returns the rotation vector (axis scaled by angle in radians) of q.
// The angle lies in [0, pi].
func Log(q quat.Number) r3.Vec {
	q = Normalize(q)
	if q.Real < 0 {
		q = quat.Scale(-1, q)
	}
	v := r3.Vec{X: q.Imag, Y: q.Jmag, Z: q.Kmag}
	s := r3.Norm(v)
	if s < smallAngle {
		// First-order expansion of 2*atan2(s, w)/s around s=0.
		return r3.Scale(2/q.Real, v)
	}
	angle := 2 * math.Atan2(s, q.Real)
	return r3.Scale(angle/s, v)
}

// Exp returns the unit quaternion of the rotation vector v.
func Exp(v r3.Vec) quat.Number {
	angle := r3.Norm(v)
	if angle < smallAngle {
		return Identity
	}
	return quat.Number(r3.NewRotation(angle, v))
}

// Relative returns the rotation vector of a^-1 * b.
func Relative(a, b quat.Number) r3.Vec {
	return Log(quat.Mul(quat.Conj(Normalize(a)), Normalize(b)))
}

// ToMatrix returns the rotation matrix of q.
func ToMatrix(q quat.Number) *r3.Mat {
	q = Normalize(q)
	w, x, y, z := q.Real, q.Imag, q.Jmag, q.Kmag
	return r3.NewMat([]float64{
		1 - 2*(y*y+z*z), 2 * (x*y - z*w), 2 * (x*z + y*w),
		2 * (x*y + z*w), 1 - 2*(x*x+z*z), 2 * (y*z - x*w),
		2 * (x*z - y*w), 2 * (y*z + x*w), 1 - 2*(x*x+y*y),
	})
}

// FromMatrix returns the unit quaternion of the rotation matrix m using
// Shepperd's method. The scalar part of the result is non-negative.
func FromMatrix(m *r3.Mat) quat.Number {
	m00, m01, m02 := m.At(0, 0), m.At(0, 1), m.At(0, 2)
	m10, m11, m12 := m.At(1, 0), m.At(1, 1), m.At(1, 2)
	m20, m21, m22 := m.At(2, 0), m.At(2, 1), m.At(2, 2)

	var q quat.Number
	switch trace := m00 + m11 + m22; {
	case trace > 0:
		s := shepperdHalf / math.Sqrt(trace+1)
		q = quat.Number{
			Real: shepperdQuarter / s,
			Imag: (m21 - m12) * s,
			Jmag: (m02 - m20) * s,
			Kmag: (m10 - m01) * s,
		}
	case m00 > m11 && m00 > m22:
		s := 2 * math.Sqrt(1+m00-m11-m22)
		q = quat.Number{
			Real: (m21 - m12) / s,
			Imag: shepperdQuarter * s,
			Jmag: (m01 + m10) / s,
			Kmag: (m02 + m20) / s,
		}
	case m11 > m22:
		s := 2 * math.Sqrt(1+m11-m00-m22)
		q = quat.Number{
			Real: (m02 - m20) / s,
			Imag: (m01 + m10) / s,
			Jmag: shepperdQuarter * s,
			Kmag: (m12 + m21) / s,
		}
	default:
		s := 2 * math.Sqrt(1+m22-m00-m11)
		q = quat.Number{
			Real: (m10 - m01) / s,
			Imag: (m02 + m20) / s,
			Jmag: (m12 + m21) / s,
			Kmag: shepperdQuarter * s,
		}
	}
	if q.Real < 0 {
		q = quat.Scale(-1, q)
	}
	return Normalize(q)
}

// RelativeMatrix returns aᵀ·b, the rotation taking frame a to frame b.
func RelativeMatrix(a, b *r3.Mat) *r3.Mat {
	var d mat.Dense
	d.Mul(a.T(), b)
	out := r3.NewMat(nil)
	out.CloneFrom(&d)
	return out
}

// MatrixLog returns the rotation vector of the rotation matrix m.
func MatrixLog(m *r3.Mat) r3.Vec {
	return Log(FromMatrix(m))
}

// CloneMatrix returns a deep copy of m.
func CloneMatrix(m *r3.Mat) *r3.Mat {
	out := r3.NewMat(nil)
	out.CloneFrom(m)
	return out
}
