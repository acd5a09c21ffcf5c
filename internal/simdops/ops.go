// Package simdops provides SIMD-backed slice operations for float32 and float64
// vector values. Vector-space blends and rate norms go through these so that a
// single generic code path serves both precisions.
package simdops

import (
	"math"

	"github.com/tphakala/simd/cpu"
	"github.com/tphakala/simd/f32"
	"github.com/tphakala/simd/f64"
)

// Float is the type constraint for supported floating-point types.
type Float interface {
	float32 | float64
}

// Ops provides SIMD-accelerated operations for type F.
type Ops[F Float] struct {
	// DotProductUnsafe computes the dot product without bounds checking.
	// Use only when slices are guaranteed to have equal length.
	DotProductUnsafe func(a, b []F) F

	// Scale multiplies each element by scalar s: dst[i] = a[i] * s
	Scale func(dst, a []F, s F)

	// Sub computes dst[i] = a[i] - b[i].
	Sub func(dst, a, b []F)

	// AddScaled accumulates dst[i] += alpha * s[i].
	AddScaled func(dst []F, alpha F, s []F)
}

var (
	ops32 = Ops[float32]{
		DotProductUnsafe: f32.DotProductUnsafe,
		Scale:            f32.Scale,
		Sub:              f32.Sub,
		AddScaled:        f32.AddScaled,
	}
	ops64 = Ops[float64]{
		DotProductUnsafe: f64.DotProductUnsafe,
		Scale:            f64.Scale,
		Sub:              f64.Sub,
		AddScaled:        f64.AddScaled,
	}
)

// For returns the Ops instance for type F.
func For[F Float]() *Ops[F] {
	var zero F
	switch any(zero).(type) {
	case float32:
		ops, ok := any(&ops32).(*Ops[F])
		if !ok {
			panic("simdops: type assertion failed for float32")
		}
		return ops
	case float64:
		ops, ok := any(&ops64).(*Ops[F])
		if !ok {
			panic("simdops: type assertion failed for float64")
		}
		return ops
	default:
		panic("simdops: unsupported float type")
	}
}

// Lerp returns (1-ratio)*a + ratio*b in a newly allocated slice.
// Both slices must have the same length.
func Lerp[F Float](a, b []F, ratio float64) []F {
	ops := For[F]()
	dst := make([]F, len(a))
	ops.Scale(dst, a, F(1-ratio))
	ops.AddScaled(dst, F(ratio), b)
	return dst
}

// Diff returns b - a in a newly allocated slice.
func Diff[F Float](a, b []F) []F {
	dst := make([]F, len(a))
	For[F]().Sub(dst, b, a)
	return dst
}

// ScaleTo returns s*a in a newly allocated slice.
func ScaleTo[F Float](a []F, s float64) []F {
	dst := make([]F, len(a))
	For[F]().Scale(dst, a, F(s))
	return dst
}

// Norm returns the Euclidean norm of a.
func Norm[F Float](a []F) float64 {
	if len(a) == 0 {
		return 0
	}
	return math.Sqrt(float64(For[F]().DotProductUnsafe(a, a)))
}

// Info describes the SIMD instruction set detected on this CPU.
func Info() string {
	return cpu.Info()
}
