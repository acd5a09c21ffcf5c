package trajectory

import (
	"errors"
	"fmt"
	"slices"

	"github.com/tphakala/go-trajectory/internal/hermite"
)

// Common errors returned by the interpolator.
var (
	// ErrTooFewPoints indicates that fewer than two waypoints were present
	// when coefficients were calculated.
	ErrTooFewPoints = errors.New("number of points should be 2 or more")

	// ErrNotReady indicates a query before a successful CalcCoeff, or after
	// the waypoints changed.
	ErrNotReady = errors.New("interpolator coefficients not calculated")

	// ErrNoPoints indicates an operation that needs at least one waypoint.
	ErrNoPoints = errors.New("interpolator has no points")

	// ErrInvalidOrder indicates a derivative order below one.
	ErrInvalidOrder = errors.New("derivative order must be 1 or more")

	// ErrInvalidConfig indicates invalid configuration parameters.
	ErrInvalidConfig = errors.New("invalid configuration")
)

// Waypoint is a value the trajectory passes through at a given time.
type Waypoint[T any] struct {
	Time  float64
	Value T
}

// State describes whether an interpolator can answer queries.
type State int

const (
	// StateEmpty means no waypoints are present.
	StateEmpty State = iota

	// StateStale means waypoints changed since the last CalcCoeff.
	StateStale

	// StateReady means coefficients match the waypoints and queries are valid.
	StateReady
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateEmpty:
		return "empty"
	case StateStale:
		return "stale"
	case StateReady:
		return "ready"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// CubicInterpolator interpolates waypoints of type T with zero velocity at
// every waypoint. U is the type of the time derivative of T.
//
// The waypoint ranks 0..N-1 are fitted over the waypoint times with a cubic
// Hermite curve of zero slope at every knot. At query time the curve gives a
// continuous rank whose integer part selects the pair of waypoints and whose
// fractional part is the blend ratio between them.
//
// Mutation and queries follow a two-phase protocol: AppendPoint and
// ClearPoints change the waypoints, CalcCoeff commits them, and only then do
// Evaluate and Derivative succeed. A CubicInterpolator is not safe for
// concurrent use; Clone gives an independent copy.
type CubicInterpolator[T, U any] struct {
	blend Blend[T, U]

	// Waypoints sorted by time.
	times  []float64
	values []T

	curve *hermite.Spline
	state State
}

// NewCubicInterpolator creates an interpolator over points using blend.
// Points sharing a time keep the last value given. With two or more points
// the coefficients are calculated immediately.
func NewCubicInterpolator[T, U any](blend Blend[T, U], points ...Waypoint[T]) (*CubicInterpolator[T, U], error) {
	if !blend.valid() {
		return nil, fmt.Errorf("%w: blend functions must not be nil", ErrInvalidConfig)
	}

	ci := &CubicInterpolator[T, U]{
		blend: blend,
		curve: hermite.New(indexCurveDim),
	}
	for _, p := range points {
		ci.AppendPoint(p.Time, p.Value)
	}

	if ci.Len() >= minPoints {
		if err := ci.CalcCoeff(); err != nil {
			return nil, err
		}
	}
	return ci, nil
}

// ClearPoints removes all waypoints.
func (ci *CubicInterpolator[T, U]) ClearPoints() {
	clear(ci.values)
	ci.times = ci.times[:0]
	ci.values = ci.values[:0]
	ci.state = StateEmpty
}

// AppendPoint adds a waypoint, replacing any waypoint at the same time.
// CalcCoeff must be called before the next query.
func (ci *CubicInterpolator[T, U]) AppendPoint(t float64, value T) {
	v := ci.blend.copyValue(value)
	i, found := slices.BinarySearch(ci.times, t)
	if found {
		ci.values[i] = v
	} else {
		ci.times = slices.Insert(ci.times, i, t)
		ci.values = slices.Insert(ci.values, i, v)
	}
	ci.state = StateStale
}

// CalcCoeff rebuilds the index curve from the current waypoints.
// It returns ErrTooFewPoints when fewer than two waypoints are present, and
// ErrInvalidConfig when the blend rejects a pair of neighbouring values.
func (ci *CubicInterpolator[T, U]) CalcCoeff() error {
	n := len(ci.times)
	if n < minPoints {
		return fmt.Errorf("%w: %d", ErrTooFewPoints, n)
	}
	if ci.blend.Check != nil {
		for i := 1; i < n; i++ {
			if err := ci.blend.Check(ci.values[i-1], ci.values[i]); err != nil {
				return fmt.Errorf("%w: waypoint %d at t=%g: %w", ErrInvalidConfig, i, ci.times[i], err)
			}
		}
	}

	ci.curve.ClearPoints()
	for i, t := range ci.times {
		if err := ci.curve.AppendPoint(t, []float64{float64(i)}, []float64{0}); err != nil {
			return fmt.Errorf("failed to add index point %d: %w", i, err)
		}
	}
	ci.curve.SetDomainLowerLimit(ci.times[0])
	if err := ci.curve.CalcCoeff(); err != nil {
		return fmt.Errorf("failed to fit index curve: %w", err)
	}

	ci.state = StateReady
	return nil
}

// resolve maps t to the segment index and the blend ratio within it.
func (ci *CubicInterpolator[T, U]) resolve(t float64) (int, float64) {
	idx := ci.curve.Index(t)
	ratio := ci.curve.Evaluate(t)[0] - float64(idx)
	return idx, min(max(ratio, 0), 1)
}

func (ci *CubicInterpolator[T, U]) checkReady() error {
	if ci.state != StateReady {
		return fmt.Errorf("%w: state is %s", ErrNotReady, ci.state)
	}
	return nil
}

// Evaluate returns the interpolated value at time t. Times outside
// [StartTime, EndTime] return the nearest end value.
func (ci *CubicInterpolator[T, U]) Evaluate(t float64) (T, error) {
	if err := ci.checkReady(); err != nil {
		var zero T
		return zero, err
	}
	idx, ratio := ci.resolve(t)
	return ci.blend.Interpolate(ci.values[idx], ci.values[idx+1], ratio), nil
}

// Derivative returns the time derivative of the given order at t.
//
// The first derivative is the speed of the index curve times the blend rate
// between the bounding waypoints. Orders of two or more are zero because the
// waypoint velocities are zero.
func (ci *CubicInterpolator[T, U]) Derivative(t float64, order int) (U, error) {
	var zero U
	if order < 1 {
		return zero, fmt.Errorf("%w: got %d", ErrInvalidOrder, order)
	}
	if err := ci.checkReady(); err != nil {
		return zero, err
	}
	idx, ratio := ci.resolve(t)
	rate := ci.blend.Derivative(ci.values[idx], ci.values[idx+1], ratio, order)
	return ci.blend.Scale(ci.curve.Derivative(t, order)[0], rate), nil
}

// StartTime returns the time of the first waypoint.
func (ci *CubicInterpolator[T, U]) StartTime() (float64, error) {
	if len(ci.times) == 0 {
		return 0, ErrNoPoints
	}
	return ci.times[0], nil
}

// EndTime returns the time of the last waypoint.
func (ci *CubicInterpolator[T, U]) EndTime() (float64, error) {
	if len(ci.times) == 0 {
		return 0, ErrNoPoints
	}
	return ci.times[len(ci.times)-1], nil
}

// InDomain reports whether t lies within [StartTime, EndTime]. Queries outside
// the domain are clamped to the end values.
func (ci *CubicInterpolator[T, U]) InDomain(t float64) bool {
	n := len(ci.times)
	return n > 0 && t >= ci.times[0] && t <= ci.times[n-1]
}

// Points returns a copy of the waypoints in time order.
func (ci *CubicInterpolator[T, U]) Points() []Waypoint[T] {
	out := make([]Waypoint[T], len(ci.times))
	for i, t := range ci.times {
		out[i] = Waypoint[T]{Time: t, Value: ci.blend.copyValue(ci.values[i])}
	}
	return out
}

// Len returns the number of waypoints.
func (ci *CubicInterpolator[T, U]) Len() int {
	return len(ci.times)
}

// State returns the current lifecycle state.
func (ci *CubicInterpolator[T, U]) State() State {
	return ci.state
}

// Clone returns an independent deep copy of the interpolator, including its
// index curve.
func (ci *CubicInterpolator[T, U]) Clone() *CubicInterpolator[T, U] {
	c := &CubicInterpolator[T, U]{
		blend:  ci.blend,
		times:  slices.Clone(ci.times),
		values: make([]T, len(ci.values)),
		curve:  ci.curve.Clone(),
		state:  ci.state,
	}
	for i, v := range ci.values {
		c.values[i] = ci.blend.copyValue(v)
	}
	return c
}
