package systems

import (
	"github.com/automoto/avatarsync/components"
	"github.com/automoto/avatarsync/config"
	"github.com/automoto/avatarsync/shared/motion"
	"github.com/automoto/avatarsync/tags"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/filter"
)

var localPredictionQuery = donburi.NewQuery(filter.Contains(
	tags.LocalAvatar,
	components.Predicted,
	components.Intent,
	components.LocalContext,
	components.Health,
))

// UpdatePrediction advances the local avatar by one frame of its current
// intent. It runs every tick whether or not a snapshot arrived. Dead avatars
// keep their yaw but do not move.
func UpdatePrediction(w donburi.World, dt float64, cfg config.MovementConfig) {
	localPredictionQuery.Each(w, func(e *donburi.Entry) {
		pred := components.Predicted.Get(e)
		lc := components.LocalContext.Get(e)

		if lc.PendingYaw != 0 {
			pred.PredictedState = motion.SetYaw(pred.PredictedState, pred.Yaw+lc.PendingYaw)
			lc.PendingYaw = 0
			lc.YawDirty = true
		}

		if components.Health.Get(e).Dead() {
			return
		}
		intent := components.Intent.Get(e).Current
		pred.PredictedState = motion.Advance(pred.PredictedState, intent, dt, cfg)
	})
}
