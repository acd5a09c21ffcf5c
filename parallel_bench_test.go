package trajectory

import (
	"testing"

	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r3"
)

// BenchmarkEvaluateScalar benchmarks scalar evaluation over a long trajectory.
func BenchmarkEvaluateScalar(b *testing.B) {
	ip, err := NewScalarInterpolator(sineWaypoints(1024)...)
	if err != nil {
		b.Fatalf("Failed to create interpolator: %v", err)
	}
	end, _ := ip.EndTime()

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		if _, err := ip.Evaluate(end * float64(i%1000) / 1000); err != nil {
			b.Fatalf("Evaluate failed: %v", err)
		}
	}
}

// BenchmarkEvaluateVector benchmarks evaluation of 64-dimensional vectors.
func BenchmarkEvaluateVector(b *testing.B) {
	const dim = 64

	pts := make([]Waypoint[[]float64], 32)
	for i := range pts {
		v := make([]float64, dim)
		for j := range v {
			v[j] = float64(i * j)
		}
		pts[i] = Waypoint[[]float64]{Time: float64(i), Value: v}
	}
	ip, err := NewVectorInterpolator(pts...)
	if err != nil {
		b.Fatalf("Failed to create interpolator: %v", err)
	}

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		if _, err := ip.Evaluate(float64(i%3100) / 100); err != nil {
			b.Fatalf("Evaluate failed: %v", err)
		}
	}
}

// BenchmarkEvaluatePose benchmarks pose evaluation and velocity.
func BenchmarkEvaluatePose(b *testing.B) {
	pts := make([]Waypoint[Pose], 16)
	for i := range pts {
		rot := quat.Number(r3.NewRotation(0.3*float64(i), r3.Vec{X: 1, Y: 1}))
		pts[i] = Waypoint[Pose]{Time: float64(i), Value: NewPose(rot, r3.Vec{X: float64(i)})}
	}
	ip, err := NewPoseInterpolator(pts...)
	if err != nil {
		b.Fatalf("Failed to create interpolator: %v", err)
	}

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		t := float64(i%1500) / 100
		if _, err := ip.Evaluate(t); err != nil {
			b.Fatalf("Evaluate failed: %v", err)
		}
		if _, err := ip.Derivative(t, 1); err != nil {
			b.Fatalf("Derivative failed: %v", err)
		}
	}
}

// BenchmarkCalcCoeff benchmarks fitting the index curve.
func BenchmarkCalcCoeff(b *testing.B) {
	ip, err := NewScalarInterpolator(sineWaypoints(1024)...)
	if err != nil {
		b.Fatalf("Failed to create interpolator: %v", err)
	}

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		if err := ip.CalcCoeff(); err != nil {
			b.Fatalf("CalcCoeff failed: %v", err)
		}
	}
}
