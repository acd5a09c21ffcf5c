package rotation

// Numerical thresholds
const (
	// Quaternions closer than this to unit length are not renormalized.
	unitTolerance = 1e-12

	// Rotation angles below this are treated as identity by the log map.
	smallAngle = 1e-12

	// Shepperd's method branch constants
	shepperdQuarter = 0.25
	shepperdHalf    = 0.5
)
