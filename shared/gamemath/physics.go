package gamemath

import "math"

// ClampStep bounds a frame delta to [0, max]. NaN and negative deltas become 0
// so a bad clock sample can never move an avatar backwards or jump it forward.
func ClampStep(dt, max float64) float64 {
	if math.IsNaN(dt) || dt <= 0 {
		return 0
	}
	if dt > max {
		return max
	}
	return dt
}
