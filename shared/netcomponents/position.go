package netcomponents

import (
	"github.com/automoto/avatarsync/shared/gamemath"
	"github.com/yohamta/donburi"
)

// NetTransformData is the authoritative position and facing of an avatar.
type NetTransformData struct {
	X, Y, Z float64
	Yaw     float64
}

var NetTransform = donburi.NewComponentType[NetTransformData]()

func (t NetTransformData) Position() gamemath.Vec3 {
	return gamemath.Vec3{X: t.X, Y: t.Y, Z: t.Z}
}

// LerpNetTransform interpolates between two transforms; yaw takes the short
// way around the ±π seam.
func LerpNetTransform(from, to NetTransformData, t float64) *NetTransformData {
	return &NetTransformData{
		X:   from.X + (to.X-from.X)*t,
		Y:   from.Y + (to.Y-from.Y)*t,
		Z:   from.Z + (to.Z-from.Z)*t,
		Yaw: gamemath.LerpAngle(from.Yaw, to.Yaw, t),
	}
}
