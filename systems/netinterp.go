package systems

import (
	"github.com/automoto/avatarsync/components"
	"github.com/automoto/avatarsync/config"
	"github.com/automoto/avatarsync/shared/gamemath"
	"github.com/automoto/avatarsync/tags"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/filter"
)

// Interpolate moves a remote avatar's rendered transform a fixed fraction of
// the way toward its latest snapshot. The first snapshot is taken as-is.
// Velocity is estimated from rendered motion over dt.
func Interpolate(r components.RemoteRenderData, snap components.SnapshotData, dt float64, cfg config.NetcodeConfig) components.RemoteRenderData {
	if !snap.Valid {
		return r
	}
	if !r.Initialized {
		return components.RemoteRenderData{
			Position:     snap.Position,
			PrevPosition: snap.Position,
			Yaw:          gamemath.WrapAngle(snap.Yaw),
			Initialized:  true,
		}
	}

	r.PrevPosition = r.Position
	r.Position = r.Position.Lerp(snap.Position, cfg.InterpFactor)
	r.Yaw = gamemath.LerpAngle(r.Yaw, snap.Yaw, cfg.YawInterpFactor)

	if dt > 0 {
		r.Velocity = r.Position.Sub(r.PrevPosition).Scale(1 / dt)
		r.Speed = r.Velocity.Len()
	}
	return r
}

var remoteInterpQuery = donburi.NewQuery(filter.Contains(
	tags.RemoteAvatar,
	components.RemoteRender,
	components.Snapshot,
))

// UpdateInterpolation advances every remote avatar one frame.
func UpdateInterpolation(w donburi.World, dt float64, cfg config.NetcodeConfig) {
	remoteInterpQuery.Each(w, func(e *donburi.Entry) {
		r := components.RemoteRender.Get(e)
		*r = Interpolate(*r, *components.Snapshot.Get(e), dt, cfg)
	})
}
