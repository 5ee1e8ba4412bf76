package netcomponents

import (
	"math"
	"testing"
)

func TestLerpNetTransform(t *testing.T) {
	from := NetTransformData{X: 0, Y: 1, Z: 0, Yaw: 3.0}
	to := NetTransformData{X: 10, Y: 1, Z: -4, Yaw: -3.0}

	mid := LerpNetTransform(from, to, 0.5)
	if mid.X != 5 || mid.Y != 1 || mid.Z != -2 {
		t.Fatalf("position = (%v, %v, %v), want (5, 1, -2)", mid.X, mid.Y, mid.Z)
	}
	if math.Abs(math.Abs(mid.Yaw)-math.Pi) > 1e-6 {
		t.Fatalf("yaw = %v, want ±π (short way across the seam)", mid.Yaw)
	}

	end := LerpNetTransform(from, to, 1)
	if math.Abs(end.Yaw-(-3.0)) > 1e-9 {
		t.Fatalf("yaw at t=1 = %v, want -3", end.Yaw)
	}
}
