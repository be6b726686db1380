package eq

import "math"

// Soft limiter constants. Below the knee the signal is untouched; above
// it the output approaches the ceiling asymptotically.
const (
	LimiterKnee    = 0.85
	LimiterCeiling = 0.98
)

// Limit bounds a [-1, 1]-normalized sample into a safe ceiling without
// hard clipping. The transfer is identity up to the knee, then
//
//	ceiling - (ceiling-knee) * exp(-(|x|-knee)/(ceiling-knee))
//
// sign-preserved. Stateless and deterministic.
func Limit(x float64) float64 {
	ax := math.Abs(x)
	if ax <= LimiterKnee {
		return x
	}

	const span = LimiterCeiling - LimiterKnee
	y := LimiterCeiling - span*math.Exp(-(ax-LimiterKnee)/span)

	return math.Copysign(y, x)
}
