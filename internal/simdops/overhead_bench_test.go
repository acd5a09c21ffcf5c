package simdops

import (
	"testing"

	"github.com/tphakala/simd/f64"
)

const benchWidth = 64

func benchVectors() (a, c []float64) {
	a = make([]float64, benchWidth)
	c = make([]float64, benchWidth)
	for i := range a {
		a[i] = float64(i)
		c[i] = float64(benchWidth - i)
	}
	return a, c
}

// BenchmarkScaleDirect measures a direct SIMD scale into a reused buffer.
func BenchmarkScaleDirect(b *testing.B) {
	a, _ := benchVectors()
	dst := make([]float64, benchWidth)

	b.ReportAllocs()
	for b.Loop() {
		f64.Scale(dst, a, 0.3)
	}
}

// BenchmarkScaleTo measures the allocating scale used for blend rates.
func BenchmarkScaleTo(b *testing.B) {
	a, _ := benchVectors()

	b.ReportAllocs()
	for b.Loop() {
		_ = ScaleTo(a, 0.3)
	}
}

// BenchmarkLerp64 measures the allocation cost of a 64-wide vector blend.
func BenchmarkLerp64(b *testing.B) {
	a, c := benchVectors()

	b.ReportAllocs()
	for b.Loop() {
		_ = Lerp(a, c, 0.3)
	}
}

// BenchmarkLerp32 measures the float32 path of the same blend.
func BenchmarkLerp32(b *testing.B) {
	a := make([]float32, benchWidth)
	c := make([]float32, benchWidth)
	for i := range a {
		a[i] = float32(i)
		c[i] = float32(benchWidth - i)
	}

	b.ReportAllocs()
	for b.Loop() {
		_ = Lerp(a, c, 0.3)
	}
}

// BenchmarkNorm measures the speed-column norm.
func BenchmarkNorm(b *testing.B) {
	a, _ := benchVectors()

	b.ReportAllocs()
	for b.Loop() {
		_ = Norm(a)
	}
}
