// Package testutil provides reusable test helper functions for trajectory tests.
package testutil

import (
	"fmt"
	"math"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r3"
)

// T is the subset of *testing.T the helpers need.
type T interface {
	assert.TestingT
	Helper()
}

// Default tolerances for various test scenarios.
const (
	DefaultTolerance    = 1e-10
	RotationTolerance   = 1e-9
	DerivativeTolerance = 1e-5
)

// AssertNoNaNOrInf verifies that no elements in the slice are NaN or Inf.
func AssertNoNaNOrInf(t T, s []float64, msgAndArgs ...any) bool {
	t.Helper()
	for i, v := range s {
		if math.IsNaN(v) {
			return assert.Fail(t, fmt.Sprintf("found NaN: s[%d] is NaN", i), msgAndArgs...)
		}
		if math.IsInf(v, 0) {
			return assert.Fail(t, fmt.Sprintf("found Inf: s[%d] is Inf", i), msgAndArgs...)
		}
	}
	return true
}

// AssertMonotonic verifies that a slice is monotonically non-decreasing.
func AssertMonotonic(t T, s []float64, msgAndArgs ...any) bool {
	t.Helper()
	for i := 1; i < len(s); i++ {
		if s[i] < s[i-1] {
			return assert.Fail(t, fmt.Sprintf("not monotonic: s[%d]=%f < s[%d]=%f", i, s[i], i-1, s[i-1]), msgAndArgs...)
		}
	}
	return true
}

// AssertInRange verifies that a value is within [min, max].
func AssertInRange(t T, value, minVal, maxVal float64, msgAndArgs ...any) bool {
	t.Helper()
	if value < minVal || value > maxVal {
		return assert.Fail(t, fmt.Sprintf("value %f is outside range [%f, %f]", value, minVal, maxVal), msgAndArgs...)
	}
	return true
}

// AssertSliceInDelta verifies that two flat value slices have the same length
// and agree element-wise within delta.
func AssertSliceInDelta(t T, expected, actual []float64, delta float64, msgAndArgs ...any) bool {
	t.Helper()
	if len(expected) != len(actual) {
		return assert.Fail(t, fmt.Sprintf("length mismatch: expected %d elements, actual %d", len(expected), len(actual)), msgAndArgs...)
	}
	if !floats.EqualApprox(expected, actual, delta) {
		return assert.Fail(t, fmt.Sprintf("slices differ: expected %v, actual %v (delta %e)", expected, actual, delta), msgAndArgs...)
	}
	return true
}

// AssertVecInDelta verifies that two 3D vectors agree component-wise.
func AssertVecInDelta(t T, expected, actual r3.Vec, delta float64, msgAndArgs ...any) bool {
	t.Helper()
	if r3.Norm(r3.Sub(expected, actual)) > delta {
		return assert.Fail(t, fmt.Sprintf("vectors differ: expected %v, actual %v (delta %e)", expected, actual, delta), msgAndArgs...)
	}
	return true
}

// AssertSameRotation verifies that two quaternions represent the same
// rotation. q and -q are treated as equal.
func AssertSameRotation(t T, expected, actual quat.Number, delta float64, msgAndArgs ...any) bool {
	t.Helper()
	diff := quat.Abs(quat.Sub(expected, actual))
	if alt := quat.Abs(quat.Add(expected, actual)); alt < diff {
		diff = alt
	}
	if diff > delta {
		return assert.Fail(t, fmt.Sprintf("rotations differ: expected %v, actual %v (delta %e)", expected, actual, delta), msgAndArgs...)
	}
	return true
}

// AssertRelativeError verifies that the relative error between actual and expected is within tolerance.
func AssertRelativeError(t T, expected, actual, tolerance float64, msgAndArgs ...any) bool {
	t.Helper()
	if expected == 0 {
		return assert.InDelta(t, expected, actual, tolerance, msgAndArgs...)
	}
	relError := math.Abs(actual-expected) / math.Abs(expected)
	if !(relError <= tolerance) {
		return assert.Fail(t, fmt.Sprintf("relative error %e exceeds tolerance %e (expected=%f, actual=%f)",
			relError, tolerance, expected, actual), msgAndArgs...)
	}
	return true
}
