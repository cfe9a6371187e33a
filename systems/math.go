package systems

import "math"

// clampFloat clamps a float64 value between min and max.
func clampFloat(v, minVal, maxVal float64) float64 {
	if v < minVal {
		return minVal
	}
	if v > maxVal {
		return maxVal
	}
	return v
}

// clampInt clamps an int value between min and max.
func clampInt(v, minVal, maxVal int) int {
	if v < minVal {
		return minVal
	}
	if v > maxVal {
		return maxVal
	}
	return v
}

// normalizeHeading wraps a heading to [0, 2*Pi).
func normalizeHeading(h float64) float64 {
	const twoPi = 2 * math.Pi
	h = math.Mod(h, twoPi)
	if h < 0 {
		h += twoPi
	}
	if h >= twoPi {
		h -= twoPi
	}
	return h
}

// distanceSq returns the squared distance between two points.
func distanceSq(x1, y1, x2, y2 float64) float64 {
	dx := x1 - x2
	dy := y1 - y2
	return dx*dx + dy*dy
}

// reflect mirrors v back into [lo, hi] and reports whether it crossed a bound.
func reflect(v, lo, hi float64) (float64, bool) {
	switch {
	case v < lo:
		return clampFloat(2*lo-v, lo, hi), true
	case v > hi:
		return clampFloat(2*hi-v, lo, hi), true
	}
	return v, false
}
