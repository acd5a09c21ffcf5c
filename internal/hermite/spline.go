// Package hermite implements a multi-dimensional cubic Hermite spline over
// time-ordered knots, each carrying a position and a slope vector.
//
// Segments are fitted one dimension at a time with gonum's
// interp.PiecewiseCubic. The spline exposes a segment index lookup whose
// semantics match an ordered map keyed by segment end time: a query exactly at
// an interior knot resolves to the segment that ends there.
package hermite

import (
	"errors"
	"fmt"
	"slices"

	"gonum.org/v1/gonum/interp"
)

// Errors returned by the spline.
var (
	// ErrTooFewPoints indicates that fewer than two knots were supplied.
	ErrTooFewPoints = errors.New("hermite: number of points should be 2 or more")

	// ErrDimension indicates a position or slope of the wrong length.
	ErrDimension = errors.New("hermite: dimension mismatch")

	// ErrDomain indicates a domain lower limit past the first knot.
	ErrDomain = errors.New("hermite: invalid domain")
)

// Spline is a piecewise cubic Hermite curve of fixed dimension.
//
// Knots are added with AppendPoint and take effect after CalcCoeff. A Spline
// is not safe for concurrent mutation.
type Spline struct {
	dim int

	// Knots sorted by time.
	times []float64
	pos   [][]float64
	vel   [][]float64

	lower    float64
	hasLower bool

	curves []interp.PiecewiseCubic
	fitted bool
}

// New creates an empty spline of dimension dim.
func New(dim int) *Spline {
	if dim < 1 {
		panic(fmt.Sprintf("hermite: invalid dimension %d", dim))
	}
	return &Spline{dim: dim}
}

// Dim returns the dimension of the spline's values.
func (s *Spline) Dim() int {
	return s.dim
}

// Len returns the number of knots.
func (s *Spline) Len() int {
	return len(s.times)
}

// ClearPoints removes all knots. The fitted segments are dropped.
func (s *Spline) ClearPoints() {
	s.times = s.times[:0]
	s.pos = s.pos[:0]
	s.vel = s.vel[:0]
	s.fitted = false
}

// AppendPoint inserts a knot at time t. A knot already present at t is
// replaced. The slices are copied.
func (s *Spline) AppendPoint(t float64, pos, vel []float64) error {
	if len(pos) != s.dim || len(vel) != s.dim {
		return fmt.Errorf("%w: want %d, got position %d and slope %d", ErrDimension, s.dim, len(pos), len(vel))
	}
	p := slices.Clone(pos)
	v := slices.Clone(vel)

	i, found := slices.BinarySearch(s.times, t)
	if found {
		s.pos[i] = p
		s.vel[i] = v
	} else {
		s.times = slices.Insert(s.times, i, t)
		s.pos = slices.Insert(s.pos, i, p)
		s.vel = slices.Insert(s.vel, i, v)
	}
	s.fitted = false
	return nil
}

// SetDomainLowerLimit sets the earliest time considered inside the domain.
// When unset, the first knot time is used.
func (s *Spline) SetDomainLowerLimit(t float64) {
	s.lower = t
	s.hasLower = true
}

// DomainLowerLimit returns the earliest in-domain time. It panics if the
// limit is unset and the spline has no knots.
func (s *Spline) DomainLowerLimit() float64 {
	if s.hasLower {
		return s.lower
	}
	return s.times[0]
}

// StartTime returns the first knot time.
func (s *Spline) StartTime() float64 {
	return s.times[0]
}

// EndTime returns the last knot time.
func (s *Spline) EndTime() float64 {
	return s.times[len(s.times)-1]
}

// InDomain reports whether t lies within [DomainLowerLimit, EndTime].
func (s *Spline) InDomain(t float64) bool {
	if len(s.times) == 0 {
		return false
	}
	return t >= s.DomainLowerLimit() && t <= s.EndTime()
}

// CalcCoeff fits the segment polynomials to the current knots.
func (s *Spline) CalcCoeff() error {
	n := len(s.times)
	if n < minKnots {
		return fmt.Errorf("%w: %d", ErrTooFewPoints, n)
	}
	if s.hasLower && s.lower > s.times[0] {
		return fmt.Errorf("%w: lower limit %g is after first point %g", ErrDomain, s.lower, s.times[0])
	}

	if cap(s.curves) < s.dim {
		s.curves = make([]interp.PiecewiseCubic, s.dim)
	}
	s.curves = s.curves[:s.dim]

	ys := make([]float64, n)
	dydxs := make([]float64, n)
	for d := range s.dim {
		for i := range n {
			ys[i] = s.pos[i][d]
			dydxs[i] = s.vel[i][d]
		}
		s.curves[d].FitWithDerivatives(s.times, ys, dydxs)
	}
	s.fitted = true
	return nil
}

// Fitted reports whether the segments match the current knots.
func (s *Spline) Fitted() bool {
	return s.fitted
}

// Index returns the 0-based segment containing t. A time equal to an interior
// knot belongs to the segment ending at that knot. Times before the domain
// resolve to the first segment and times after it to the last.
func (s *Spline) Index(t float64) int {
	s.mustBeFitted()
	last := len(s.times) - 2
	if t <= s.times[0] {
		return 0
	}
	i, _ := slices.BinarySearch(s.times[1:], t)
	return min(i, last)
}

// Evaluate returns the spline position at t. Outside the knot range the end
// positions are held.
func (s *Spline) Evaluate(t float64) []float64 {
	s.mustBeFitted()
	out := make([]float64, s.dim)
	for d := range s.dim {
		out[d] = s.curves[d].Predict(t)
	}
	return out
}

// Derivative returns the derivative of the given order at t. Order 0 is the
// position. Orders above three are zero.
func (s *Spline) Derivative(t float64, order int) []float64 {
	if order < 0 {
		panic(fmt.Sprintf("hermite: negative derivative order %d", order))
	}
	if order == 0 {
		return s.Evaluate(t)
	}
	s.mustBeFitted()

	out := make([]float64, s.dim)
	switch {
	case order == 1:
		for d := range s.dim {
			out[d] = s.curves[d].PredictDerivative(t)
		}
	case order <= maxAnalyticOrder:
		for d := range s.dim {
			out[d] = s.higherDerivative(d, t, order)
		}
	}
	return out
}

// higherDerivative returns the second or third derivative of dimension d.
// Segment selection follows interp.PiecewiseCubic so that all orders agree on
// which polynomial is in effect.
func (s *Spline) higherDerivative(d int, t float64, order int) float64 {
	n := len(s.times)
	if t < s.times[0] || t > s.times[n-1] {
		return 0
	}
	i, found := slices.BinarySearch(s.times, t)
	if !found {
		i--
	}
	i = min(i, n-2)

	h := s.times[i+1] - s.times[i]
	dy := s.pos[i+1][d] - s.pos[i][d]
	m0, m1 := s.vel[i][d], s.vel[i+1][d]
	a2 := (hermiteA2Slope*dy - (hermiteM0Twice*m0+m1)*h) / (h * h)
	a3 := (hermiteA3Slope*dy + (m0+m1)*h) / (h * h * h)

	if order == 2 {
		return secondDerivA2*a2 + secondDerivA3*a3*(t-s.times[i])
	}
	return thirdDerivA3 * a3
}

// Clone returns an independent copy of the spline. A fitted spline is refitted
// so the copy shares no storage with the receiver.
func (s *Spline) Clone() *Spline {
	c := &Spline{
		dim:      s.dim,
		times:    slices.Clone(s.times),
		pos:      make([][]float64, len(s.pos)),
		vel:      make([][]float64, len(s.vel)),
		lower:    s.lower,
		hasLower: s.hasLower,
	}
	for i := range s.pos {
		c.pos[i] = slices.Clone(s.pos[i])
		c.vel[i] = slices.Clone(s.vel[i])
	}
	if s.fitted {
		// Knots were valid when s was fitted, so this cannot fail.
		if err := c.CalcCoeff(); err != nil {
			panic(err)
		}
	}
	return c
}

func (s *Spline) mustBeFitted() {
	if !s.fitted {
		panic("hermite: spline used before CalcCoeff")
	}
}
