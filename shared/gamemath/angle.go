package gamemath

import "math"

// WrapAngle normalizes a radian angle into (-π, π].
func WrapAngle(a float64) float64 {
	if math.IsNaN(a) || math.IsInf(a, 0) {
		return 0
	}
	a = math.Mod(a, 2*math.Pi)
	if a <= -math.Pi {
		a += 2 * math.Pi
	} else if a > math.Pi {
		a -= 2 * math.Pi
	}
	return a
}

// AngleDelta returns the shortest signed rotation from -> to, in (-π, π].
func AngleDelta(from, to float64) float64 {
	return WrapAngle(to - from)
}

// LerpAngle rotates from toward to by fraction t along the shortest arc and
// returns the wrapped result.
func LerpAngle(from, to, t float64) float64 {
	return WrapAngle(from + AngleDelta(from, to)*t)
}

// RotateYaw turns a local (x, z) vector into world space for the given yaw.
// Yaw 0 faces +Z; positive yaw turns forward toward +X.
func RotateYaw(localX, localZ, yaw float64) (worldX, worldZ float64) {
	sin, cos := math.Sincos(yaw)
	worldX = localX*cos + localZ*sin
	worldZ = -localX*sin + localZ*cos
	return worldX, worldZ
}

// UnrotateYaw is the inverse of RotateYaw: world (x, z) into the avatar's
// local frame.
func UnrotateYaw(worldX, worldZ, yaw float64) (localX, localZ float64) {
	return RotateYaw(worldX, worldZ, -yaw)
}
