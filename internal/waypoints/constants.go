package waypoints

// Value widths per kind, in float64 components.
const (
	scalarWidth     = 1
	quaternionWidth = 4
	matrixWidth     = 9
	poseWidth       = 7
	spatialWidth    = 6
)

// Validation limits
const (
	// minPoints is the minimum number of points in a waypoint file.
	minPoints = 2

	// orthonormalTolerance bounds the deviation of RᵀR from identity for
	// matrix waypoints.
	orthonormalTolerance = 1e-6
)
