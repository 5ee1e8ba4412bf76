package systems

import (
	"math"

	"github.com/automoto/avatarsync/components"
	"github.com/automoto/avatarsync/config"
	"github.com/automoto/avatarsync/shared/gamemath"
	"github.com/automoto/avatarsync/shared/motion"
	"github.com/automoto/avatarsync/tags"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/filter"
)

// Correction describes what Reconcile changed.
type Correction struct {
	Position bool
	Yaw      bool
	ErrorSq  float64 // squared position error before the correction
	YawError float64 // shortest signed yaw error before the correction
}

// Applied reports whether any correction was made.
func (c Correction) Applied() bool {
	return c.Position || c.Yaw
}

// Reconcile nudges a predicted state toward an authoritative snapshot. Errors
// inside tolerance are left alone; larger errors shrink by cfg.ReconcileFactor
// per call. It never snaps and never replays input.
func Reconcile(pred motion.PredictedState, snap components.SnapshotData, cfg config.NetcodeConfig) (motion.PredictedState, Correction) {
	var c Correction
	if !snap.Valid {
		return pred, c
	}

	c.ErrorSq = pred.Position.DistSq(snap.Position)
	if c.ErrorSq > cfg.PositionToleranceSq {
		pred.Position = pred.Position.Lerp(snap.Position, cfg.ReconcileFactor)
		c.Position = true
	}

	c.YawError = gamemath.AngleDelta(pred.Yaw, snap.Yaw)
	if math.Abs(c.YawError) > cfg.YawTolerance {
		pred.Yaw = gamemath.LerpAngle(pred.Yaw, snap.Yaw, cfg.ReconcileFactor)
		c.Yaw = true
	}
	return pred, c
}

var localReconcileQuery = donburi.NewQuery(filter.Contains(
	tags.LocalAvatar,
	components.Predicted,
	components.Snapshot,
))

// UpdateReconciliation reconciles the local avatar against its held snapshot.
// onCorrect, when non-nil, observes every applied correction.
func UpdateReconciliation(w donburi.World, cfg config.NetcodeConfig, onCorrect func(components.SnapshotData, Correction)) {
	localReconcileQuery.Each(w, func(e *donburi.Entry) {
		snap := components.Snapshot.Get(e)
		if !snap.Valid {
			return
		}
		pred := components.Predicted.Get(e)
		var c Correction
		pred.PredictedState, c = Reconcile(pred.PredictedState, *snap, cfg)
		if c.Applied() && onCorrect != nil {
			onCorrect(*snap, c)
		}
	})
}
