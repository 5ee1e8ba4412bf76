package components

import "github.com/yohamta/donburi"

// LocalContextData is the per-local-avatar camera and pointer context. It
// lives on the local avatar entity and is removed with it.
type LocalContextData struct {
	PointerLocked bool
	Sensitivity   float64 // radians per pixel of horizontal pointer motion
	PendingYaw    float64 // Rotation sampled this frame, applied by the predictor
	YawDirty      bool    // Yaw changed since the last published input
	Sequence      uint32  // Last input sequence sent
}

var LocalContext = donburi.NewComponentType[LocalContextData]()
