package waypoints

import (
	"fmt"
	"slices"

	trajectory "github.com/tphakala/go-trajectory"
	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r3"
)

// Track is a trajectory built from a waypoint file. Values and derivatives
// are returned as flat float64 slices in the layout of the file's kind;
// derivatives of rotations are rotation vectors.
type Track struct {
	kind         Kind
	channels     int
	rateChannels int
	start, end   float64

	evaluate   func(t float64) ([]float64, error)
	derivative func(t float64, order int) ([]float64, error)
	clone      func() (*Track, error)
}

// NewTrack validates f and builds its trajectory.
func NewTrack(f *File) (*Track, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}

	var (
		tr  *Track
		err error
	)
	switch f.Kind {
	case KindScalar:
		tr, err = build(f, trajectory.ScalarBlend,
			func(v []float64) float64 { return v[0] },
			func(v float64) []float64 { return []float64{v} },
			func(v float64) []float64 { return []float64{v} })
	case KindVector:
		tr, err = build(f, trajectory.VectorBlend[float64](),
			func(v []float64) []float64 { return v },
			func(v []float64) []float64 { return v },
			func(v []float64) []float64 { return v })
	case KindQuaternion:
		tr, err = build(f, trajectory.QuaternionBlend, decodeQuat, encodeQuat, encodeVec)
	case KindMatrix:
		tr, err = build(f, trajectory.MatrixBlend,
			func(v []float64) *r3.Mat { return r3.NewMat(slices.Clone(v)) },
			encodeMat, encodeVec)
	case KindPose:
		tr, err = build(f, trajectory.PoseBlend, decodePose, encodePose, encodeMotion)
	case KindForce:
		tr, err = build(f, trajectory.ForceBlend, decodeForce, encodeForce, encodeForce)
	case KindMotion:
		tr, err = build(f, trajectory.MotionBlend, decodeMotion, encodeMotion, encodeMotion)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, string(f.Kind))
	}
	if err != nil {
		return nil, err
	}
	tr.kind = f.Kind
	return tr, nil
}

// build creates a typed interpolator from the file and wraps it with flat
// encoders for values and rates.
func build[T, U any](f *File, blend trajectory.Blend[T, U], decode func([]float64) T, encode func(T) []float64, encodeRate func(U) []float64) (*Track, error) {
	points := make([]trajectory.Waypoint[T], len(f.Points))
	for i, p := range f.Points {
		points[i] = trajectory.Waypoint[T]{Time: p.Time, Value: decode(p.Value)}
	}
	ip, err := trajectory.NewCubicInterpolator(blend, points...)
	if err != nil {
		return nil, fmt.Errorf("failed to build %s track: %w", f.Kind, err)
	}
	return wrap(ip, encode, encodeRate)
}

func wrap[T, U any](ip *trajectory.CubicInterpolator[T, U], encode func(T) []float64, encodeRate func(U) []float64) (*Track, error) {
	start, err := ip.StartTime()
	if err != nil {
		return nil, err
	}
	end, err := ip.EndTime()
	if err != nil {
		return nil, err
	}

	first := encode(ip.Points()[0].Value)
	rate, err := ip.Derivative(start, 1)
	if err != nil {
		return nil, err
	}

	tr := &Track{
		channels:     len(first),
		rateChannels: len(encodeRate(rate)),
		start:        start,
		end:          end,
		evaluate: func(t float64) ([]float64, error) {
			v, err := ip.Evaluate(t)
			if err != nil {
				return nil, err
			}
			return encode(v), nil
		},
		derivative: func(t float64, order int) ([]float64, error) {
			d, err := ip.Derivative(t, order)
			if err != nil {
				return nil, err
			}
			return encodeRate(d), nil
		},
	}
	tr.clone = func() (*Track, error) {
		c, err := wrap(ip.Clone(), encode, encodeRate)
		if err != nil {
			return nil, fmt.Errorf("failed to clone %s track: %w", tr.kind, err)
		}
		c.kind = tr.kind
		return c, nil
	}
	return tr, nil
}

// Kind returns the value kind of the track.
func (tr *Track) Kind() Kind {
	return tr.kind
}

// Channels returns the number of components of each value.
func (tr *Track) Channels() int {
	return tr.channels
}

// RateChannels returns the number of components of each derivative.
func (tr *Track) RateChannels() int {
	return tr.rateChannels
}

// Start returns the time of the first waypoint.
func (tr *Track) Start() float64 {
	return tr.start
}

// End returns the time of the last waypoint.
func (tr *Track) End() float64 {
	return tr.end
}

// Evaluate returns the flattened value at t.
func (tr *Track) Evaluate(t float64) ([]float64, error) {
	return tr.evaluate(t)
}

// Derivative returns the flattened derivative of the given order at t.
func (tr *Track) Derivative(t float64, order int) ([]float64, error) {
	return tr.derivative(t, order)
}

// Clone returns an independent copy of the track.
func (tr *Track) Clone() (*Track, error) {
	if tr.clone == nil {
		return nil, ErrEmptyTrack
	}
	return tr.clone()
}

func decodeQuat(v []float64) quat.Number {
	return quat.Number{Real: v[0], Imag: v[1], Jmag: v[2], Kmag: v[3]}
}

func encodeQuat(q quat.Number) []float64 {
	return []float64{q.Real, q.Imag, q.Jmag, q.Kmag}
}

func decodeVec(v []float64) r3.Vec {
	return r3.Vec{X: v[0], Y: v[1], Z: v[2]}
}

func encodeVec(v r3.Vec) []float64 {
	return []float64{v.X, v.Y, v.Z}
}

func encodeMat(m *r3.Mat) []float64 {
	out := make([]float64, 0, matrixWidth)
	for i := range 3 {
		for j := range 3 {
			out = append(out, m.At(i, j))
		}
	}
	return out
}

func decodePose(v []float64) trajectory.Pose {
	return trajectory.NewPose(decodeQuat(v[:quaternionWidth]), decodeVec(v[quaternionWidth:]))
}

func encodePose(p trajectory.Pose) []float64 {
	return append(encodeQuat(p.Rotation), encodeVec(p.Translation)...)
}

func decodeForce(v []float64) trajectory.ForceVec {
	return trajectory.ForceVec{Couple: decodeVec(v[:3]), Force: decodeVec(v[3:])}
}

func encodeForce(w trajectory.ForceVec) []float64 {
	return append(encodeVec(w.Couple), encodeVec(w.Force)...)
}

func decodeMotion(v []float64) trajectory.MotionVec {
	return trajectory.MotionVec{Angular: decodeVec(v[:3]), Linear: decodeVec(v[3:])}
}

func encodeMotion(m trajectory.MotionVec) []float64 {
	return append(encodeVec(m.Angular), encodeVec(m.Linear)...)
}
