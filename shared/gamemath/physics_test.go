package gamemath

import (
	"math"
	"testing"
)

func TestClampStep(t *testing.T) {
	const max = 1.0 / 30
	tests := []struct {
		name string
		dt   float64
		want float64
	}{
		{"normal frame", 1.0 / 60, 1.0 / 60},
		{"stall", 2.5, max},
		{"negative", -0.1, 0},
		{"nan", math.NaN(), 0},
		{"exact bound", max, max},
	}
	for _, tt := range tests {
		if got := ClampStep(tt.dt, max); got != tt.want {
			t.Errorf("%s: ClampStep(%v) = %v, want %v", tt.name, tt.dt, got, tt.want)
		}
	}
}

func TestVecLerpAndDist(t *testing.T) {
	a := Vec3{}
	b := Vec3{Z: 0.5}
	if got := a.DistSq(b); math.Abs(got-0.25) > eps {
		t.Fatalf("DistSq = %v, want 0.25", got)
	}
	got := a.Lerp(b, 0.15)
	if math.Abs(got.Z-0.075) > eps || got.X != 0 || got.Y != 0 {
		t.Fatalf("Lerp = %+v, want (0,0,0.075)", got)
	}
}
