package charts

import "math"

// EaseInOutCubic maps linear progress in [0, 1] onto a cubic ease-in-out
// curve. Inputs outside the range are clamped.
func EaseInOutCubic(t float64) float64 {
	switch {
	case t <= 0:
		return 0
	case t >= 1:
		return 1
	case t < 0.5:
		return 4 * t * t * t
	}

	return 1 - math.Pow(-2*t+2, 3)/2
}
