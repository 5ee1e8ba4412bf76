package systems

import (
	"math"
	"testing"

	"github.com/automoto/avatarsync/components"
	"github.com/automoto/avatarsync/config"
	"github.com/automoto/avatarsync/shared/gamemath"
	"github.com/automoto/avatarsync/shared/motion"
)

func snapAt(pos gamemath.Vec3, yaw float64) components.SnapshotData {
	return components.SnapshotData{Position: pos, Yaw: yaw, Tick: 1, Valid: true}
}

func TestReconcileWithinToleranceIsNoop(t *testing.T) {
	cfg := config.Netcode
	pred := motion.PredictedState{Position: gamemath.Vec3{X: 1, Z: 1}, Yaw: 0.5}

	got, c := Reconcile(pred, snapAt(gamemath.Vec3{X: 1.3, Z: 1}, 0.55), cfg)
	if got != pred {
		t.Fatalf("state changed inside tolerance: %+v", got)
	}
	if c.Applied() {
		t.Fatalf("correction reported inside tolerance: %+v", c)
	}
}

func TestReconcileIgnoresInvalidSnapshot(t *testing.T) {
	pred := motion.PredictedState{Position: gamemath.Vec3{X: 10}}
	got, c := Reconcile(pred, components.SnapshotData{}, config.Netcode)
	if got != pred || c.Applied() {
		t.Fatal("invalid snapshot caused a correction")
	}
}

func TestReconcileBlendsFraction(t *testing.T) {
	cfg := config.Netcode
	got, c := Reconcile(motion.PredictedState{}, snapAt(gamemath.Vec3{Z: 0.5}, 0), cfg)
	if !c.Position {
		t.Fatal("expected a position correction")
	}
	if math.Abs(got.Position.Z-0.075) > 1e-12 || got.Position.X != 0 || got.Position.Y != 0 {
		t.Fatalf("position = %+v, want (0, 0, 0.075)", got.Position)
	}
	if c.Yaw {
		t.Fatal("unexpected yaw correction")
	}
}

func TestReconcileConvergesMonotonically(t *testing.T) {
	cfg := config.Netcode
	target := gamemath.Vec3{X: -6, Z: 8}
	snap := snapAt(target, 0)
	pred := motion.PredictedState{}

	prev := pred.Position.DistSq(target)
	ticks := 0
	for ; prev > cfg.PositionToleranceSq; ticks++ {
		if ticks > 40 {
			t.Fatalf("not within tolerance after %d ticks, error² %v", ticks, prev)
		}
		pred, _ = Reconcile(pred, snap, cfg)
		d := pred.Position.DistSq(target)
		if d >= prev {
			t.Fatalf("tick %d: error² %v did not decrease from %v", ticks, d, prev)
		}
		if pred.Position.X < target.X || pred.Position.Z > target.Z {
			t.Fatalf("tick %d: overshot target: %+v", ticks, pred.Position)
		}
		prev = d
	}

	// Once inside tolerance, further ticks leave it alone.
	settled := pred
	for i := 0; i < 10; i++ {
		pred, _ = Reconcile(pred, snap, cfg)
	}
	if pred != settled {
		t.Fatal("reconciliation kept moving inside tolerance")
	}
}

func TestReconcileYawCrossesSeam(t *testing.T) {
	cfg := config.Netcode
	got, c := Reconcile(motion.PredictedState{Yaw: 3.0}, snapAt(gamemath.Vec3{}, -3.0), cfg)
	if !c.Yaw {
		t.Fatal("expected a yaw correction")
	}
	if got.Yaw <= 3.0 {
		t.Fatalf("yaw = %v, moved the long way round (want > 3.0)", got.Yaw)
	}
	if got.Yaw > math.Pi || got.Yaw <= -math.Pi {
		t.Fatalf("yaw = %v not wrapped", got.Yaw)
	}

	// Repeated ticks keep approaching across the seam.
	pred := got
	for i := 0; i < 50; i++ {
		pred, _ = Reconcile(pred, snapAt(gamemath.Vec3{}, -3.0), cfg)
	}
	if d := math.Abs(gamemath.AngleDelta(pred.Yaw, -3.0)); d > cfg.YawTolerance {
		t.Fatalf("yaw error %v still above tolerance", d)
	}
}
