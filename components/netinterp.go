package components

import (
	"github.com/automoto/avatarsync/shared/gamemath"
	"github.com/yohamta/donburi"
)

// RemoteRenderData stores interpolation state for smooth rendering of remote
// avatars between server snapshots.
type RemoteRenderData struct {
	Position     gamemath.Vec3
	Yaw          float64
	PrevPosition gamemath.Vec3 // Rendered position one frame ago
	Velocity     gamemath.Vec3 // Estimated from rendered motion, not ground truth
	Speed        float64
	Initialized  bool
}

var RemoteRender = donburi.NewComponentType[RemoteRenderData]()
