package rotation

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r3"
)

const (
	testTolerance = 1e-10
	testAngle30   = math.Pi / 6
	testAngle90   = math.Pi / 2
	testAngle170  = 170 * math.Pi / 180
)

var (
	axisX = r3.Vec{X: 1}
	axisZ = r3.Vec{Z: 1}
	axisD = r3.Unit(r3.Vec{X: 1, Y: -2, Z: 0.5})
)

func rot(angle float64, axis r3.Vec) quat.Number {
	return quat.Number(r3.NewRotation(angle, axis))
}

func assertQuatEqual(t *testing.T, want, got quat.Number) {
	t.Helper()
	if Dot(want, got) < 0 {
		got = quat.Scale(-1, got)
	}
	assert.InDelta(t, want.Real, got.Real, testTolerance, "real")
	assert.InDelta(t, want.Imag, got.Imag, testTolerance, "imag")
	assert.InDelta(t, want.Jmag, got.Jmag, testTolerance, "jmag")
	assert.InDelta(t, want.Kmag, got.Kmag, testTolerance, "kmag")
}

func assertVecEqual(t *testing.T, want, got r3.Vec) {
	t.Helper()
	assert.InDelta(t, want.X, got.X, testTolerance, "x")
	assert.InDelta(t, want.Y, got.Y, testTolerance, "y")
	assert.InDelta(t, want.Z, got.Z, testTolerance, "z")
}

func TestNormalize(t *testing.T) {
	got := Normalize(quat.Number{Real: 2})
	assertQuatEqual(t, Identity, got)
	assert.Equal(t, Identity, Normalize(quat.Number{}), "zero maps to identity")
	assert.InDelta(t, 1.0, quat.Abs(Normalize(quat.Number{Real: 1, Imag: 1, Jmag: 1, Kmag: 1})), testTolerance)
}

func TestSlerp_Endpoints(t *testing.T) {
	a := rot(testAngle30, axisX)
	b := rot(testAngle90, axisD)

	assert.Equal(t, a, Slerp(a, b, 0), "ratio 0 must return start exactly")
	assert.Equal(t, b, Slerp(a, b, 1), "ratio 1 must return end exactly")
}

func TestSlerp_HalfwayAboutZ(t *testing.T) {
	got := Slerp(Identity, rot(testAngle90, axisZ), 0.5)
	assertQuatEqual(t, rot(math.Pi/4, axisZ), got)
}

func TestSlerp_ShortestArc(t *testing.T) {
	b := rot(testAngle90, axisZ)
	neg := quat.Scale(-1, b)

	// Both representations of the same rotation must give the same midpoint.
	assertQuatEqual(t, Slerp(Identity, b, 0.5), Slerp(Identity, neg, 0.5))
}

func TestSlerp_ConstantAngularRate(t *testing.T) {
	a := rot(testAngle30, axisD)
	b := rot(testAngle170, axisD)
	for _, r := range []float64{0.1, 0.25, 0.5, 0.75, 0.9} {
		got := Slerp(a, b, r)
		want := rot(testAngle30+r*(testAngle170-testAngle30), axisD)
		assertQuatEqual(t, want, got)
	}
}

func TestLog(t *testing.T) {
	tests := []struct {
		name  string
		angle float64
		axis  r3.Vec
	}{
		{"x_30", testAngle30, axisX},
		{"z_90", testAngle90, axisZ},
		{"diag_170", testAngle170, axisD},
		{"tiny", 1e-14, axisZ},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Log(rot(tt.angle, tt.axis))
			assertVecEqual(t, r3.Scale(tt.angle, tt.axis), got)
		})
	}
}

func TestLog_Identity(t *testing.T) {
	assertVecEqual(t, r3.Vec{}, Log(Identity))
	assertVecEqual(t, r3.Vec{}, Log(quat.Number{Real: -1}))
}

func TestExp_InvertsLog(t *testing.T) {
	v := r3.Scale(testAngle170, axisD)
	assertVecEqual(t, v, Log(Exp(v)))
	assert.Equal(t, Identity, Exp(r3.Vec{}))
}

func TestRelative(t *testing.T) {
	a := rot(testAngle30, axisZ)
	b := rot(testAngle90, axisZ)
	assertVecEqual(t, r3.Vec{Z: testAngle90 - testAngle30}, Relative(a, b))
}

func TestMatrixRoundTrip(t *testing.T) {
	// Cover every branch of Shepperd's method: positive trace and each
	// dominant diagonal element.
	cases := map[string]quat.Number{
		"identity": Identity,
		"x_170":    rot(testAngle170, axisX),
		"y_170":    rot(testAngle170, r3.Vec{Y: 1}),
		"z_170":    rot(testAngle170, axisZ),
		"diag_90":  rot(testAngle90, axisD),
	}

	for name, q := range cases {
		t.Run(name, func(t *testing.T) {
			m := ToMatrix(q)
			assertQuatEqual(t, q, FromMatrix(m))
		})
	}
}

func TestToMatrix_MatchesRotate(t *testing.T) {
	q := rot(testAngle90, axisD)
	m := ToMatrix(q)
	p := r3.Vec{X: 0.3, Y: -1.2, Z: 2}
	assertVecEqual(t, r3.Rotation(q).Rotate(p), m.MulVec(p))
}

func TestRelativeMatrix(t *testing.T) {
	a := ToMatrix(rot(testAngle30, axisX))
	b := ToMatrix(rot(testAngle90, axisX))

	rel := RelativeMatrix(a, b)
	want := ToMatrix(rot(testAngle90-testAngle30, axisX))
	require.True(t, mat.EqualApprox(want, rel, testTolerance), "relative rotation mismatch")
	assertVecEqual(t, r3.Vec{X: testAngle90 - testAngle30}, MatrixLog(rel))
}

func TestCloneMatrix(t *testing.T) {
	m := ToMatrix(rot(testAngle30, axisZ))
	c := CloneMatrix(m)
	c.Set(0, 0, 42)
	assert.NotEqual(t, 42.0, m.At(0, 0), "clone must not share storage")
}
