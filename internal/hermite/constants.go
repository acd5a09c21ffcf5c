package hermite

// Spline construction limits
const (
	// minKnots is the minimum number of knots needed to define one segment.
	minKnots = 2

	// maxAnalyticOrder is the highest derivative order with a non-zero value
	// on a cubic segment.
	maxAnalyticOrder = 3
)

// Hermite coefficient factors for the segment polynomial
//
//	p(x) = a0 + a1*x + a2*x^2 + a3*x^3
//
// with a2 = (3*dy - (2*m0 + m1)*h) / h^2 and a3 = (-2*dy + (m0 + m1)*h) / h^3.
const (
	hermiteA2Slope = 3.0
	hermiteA3Slope = -2.0
	hermiteM0Twice = 2.0

	// Factors from differentiating the polynomial twice and three times.
	secondDerivA2 = 2.0
	secondDerivA3 = 6.0
	thirdDerivA3  = 6.0
)
