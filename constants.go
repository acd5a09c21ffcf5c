package trajectory

// Interpolator constants
const (
	// minPoints is the minimum number of waypoints for a trajectory.
	minPoints = 2

	// indexCurveDim is the dimension of the index curve (one rank value).
	indexCurveDim = 1
)

// Sampling limits
const (
	// maxSamples bounds the size of a sampled grid.
	maxSamples = 1 << 24

	// sampleGridEpsilon absorbs rounding when counting grid points, so that
	// an end time on the grid is included.
	sampleGridEpsilon = 1e-9
)
