package trajectory

import (
	"fmt"
	"math"
)

// SampleConfig describes a uniform time grid.
type SampleConfig struct {
	// Rate is the number of samples per unit of time.
	Rate float64

	// Start and End bound the grid. When both are zero the interpolator's
	// full time range is used.
	Start, End float64
}

// Validate checks if the configuration is valid.
func (c *SampleConfig) Validate() error {
	if c.Rate <= 0 || math.IsInf(c.Rate, 0) || math.IsNaN(c.Rate) {
		return fmt.Errorf("%w: rate must be positive and finite", ErrInvalidConfig)
	}
	if !isFinite(c.Start) || !isFinite(c.End) {
		return fmt.Errorf("%w: start and end must be finite", ErrInvalidConfig)
	}
	if c.End < c.Start {
		return fmt.Errorf("%w: end %g is before start %g", ErrInvalidConfig, c.End, c.Start)
	}
	return nil
}

// Times returns the grid times for the configuration. start and end are used
// when the configuration leaves its own range unset.
func (c *SampleConfig) Times(start, end float64) ([]float64, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	if c.Start != 0 || c.End != 0 {
		start, end = c.Start, c.End
	}
	if !isFinite(start) || !isFinite(end) || end < start {
		return nil, fmt.Errorf("%w: invalid range [%g, %g]", ErrInvalidConfig, start, end)
	}

	steps := math.Floor((end-start)*c.Rate + sampleGridEpsilon)
	if !(steps+1 <= maxSamples) {
		return nil, fmt.Errorf("%w: %g samples exceeds limit %d", ErrInvalidConfig, steps+1, maxSamples)
	}

	times := make([]float64, int(steps)+1)
	for i := range times {
		times[i] = start + float64(i)/c.Rate
	}
	return times, nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func sampleTimes[T, U any](ci *CubicInterpolator[T, U], cfg SampleConfig) ([]float64, error) {
	if err := ci.checkReady(); err != nil {
		return nil, err
	}
	start, _ := ci.StartTime()
	end, _ := ci.EndTime()
	return cfg.Times(start, end)
}

// Sample evaluates the interpolator on a uniform grid.
func Sample[T, U any](ci *CubicInterpolator[T, U], cfg SampleConfig) ([]Waypoint[T], error) {
	times, err := sampleTimes(ci, cfg)
	if err != nil {
		return nil, err
	}
	out := make([]Waypoint[T], len(times))
	for i, t := range times {
		v, err := ci.Evaluate(t)
		if err != nil {
			return nil, err
		}
		out[i] = Waypoint[T]{Time: t, Value: v}
	}
	return out, nil
}

// SampleDerivative evaluates the derivative of the given order on a uniform grid.
func SampleDerivative[T, U any](ci *CubicInterpolator[T, U], cfg SampleConfig, order int) ([]Waypoint[U], error) {
	times, err := sampleTimes(ci, cfg)
	if err != nil {
		return nil, err
	}
	out := make([]Waypoint[U], len(times))
	for i, t := range times {
		v, err := ci.Derivative(t, order)
		if err != nil {
			return nil, err
		}
		out[i] = Waypoint[U]{Time: t, Value: v}
	}
	return out, nil
}
