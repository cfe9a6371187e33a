package perception

import "math"

// NormalizeAngle wraps an angle to [-Pi, Pi].
func NormalizeAngle(angle float64) float64 {
	if angle >= -math.Pi && angle <= math.Pi {
		return angle
	}
	angle = math.Mod(angle+math.Pi, 2*math.Pi)
	if angle < 0 {
		angle += 2 * math.Pi
	}
	return angle - math.Pi
}

// RelativeAngle returns the angle of the offset (dx, dy) measured from
// heading, wrapped to [-Pi, Pi]. A zero offset has no direction and yields 0,
// so a point on top of the observer counts as straight ahead.
func RelativeAngle(dx, dy, heading float64) float64 {
	if dx == 0 && dy == 0 {
		return 0
	}
	return NormalizeAngle(math.Atan2(dy, dx) - heading)
}

// WithinCone reports whether the offset (dx, dy) lies inside a cone of the
// given full angular width centred on heading. Bounds are inclusive; a width
// of 2*Pi or more covers every direction.
func WithinCone(dx, dy, heading, fov float64) bool {
	if fov >= 2*math.Pi {
		return true
	}
	if fov < 0 {
		return false
	}
	return math.Abs(RelativeAngle(dx, dy, heading)) <= fov/2
}
