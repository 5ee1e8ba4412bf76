package systems

import (
	"github.com/automoto/avatarsync/components"
	"github.com/automoto/avatarsync/config"
	"github.com/automoto/avatarsync/shared/motion"
	"github.com/automoto/avatarsync/tags"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/filter"
)

// DeviceState is one frame of raw device input, already translated into
// device-independent key codes.
type DeviceState struct {
	Pressed       [config.KeyCount]bool
	PointerDX     float64 // horizontal pointer motion since the last frame, pixels
	PointerLocked bool
}

// Device produces the raw input for one frame.
type Device interface {
	Poll() DeviceState
}

// SampleIntent maps raw device state to a movement intent using the given
// bindings. A flag is set when any of its bound keys is held.
func SampleIntent(d DeviceState, in config.InputConfig) motion.InputIntent {
	var actions [config.ActionCount]bool
	for a := range actions {
		actions[a] = anyKeyPressed(d, in.Bindings[a].Keys)
	}
	return motion.IntentFromActions(actions)
}

// PointerYaw converts horizontal pointer motion into a yaw delta. Motion is
// ignored unless the pointer is locked. Moving right turns right, which is
// negative yaw.
func PointerYaw(d DeviceState, sensitivity float64) float64 {
	if !d.PointerLocked {
		return 0
	}
	return -d.PointerDX * sensitivity
}

var localIntentQuery = donburi.NewQuery(filter.Contains(
	tags.LocalAvatar,
	components.Intent,
	components.LocalContext,
))

// UpdateIntent samples the device once and stores the result on the local
// avatar. The previous intent is kept for change detection.
func UpdateIntent(w donburi.World, d DeviceState, in config.InputConfig) {
	intent := SampleIntent(d, in)
	localIntentQuery.Each(w, func(e *donburi.Entry) {
		it := components.Intent.Get(e)
		it.Previous = it.Current
		it.Current = intent

		lc := components.LocalContext.Get(e)
		lc.PointerLocked = d.PointerLocked
		lc.PendingYaw += PointerYaw(d, lc.Sensitivity)
	})
}

func anyKeyPressed(d DeviceState, keys []config.Key) bool {
	for _, k := range keys {
		if k >= 0 && k < config.KeyCount && d.Pressed[k] {
			return true
		}
	}
	return false
}
