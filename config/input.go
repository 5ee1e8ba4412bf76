package config

// Key is a device-independent key or button code. The client's device layer
// translates its native codes into these.
type Key int

const (
	KeyW Key = iota
	KeyA
	KeyS
	KeyD
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyShift
	KeySpace
	KeyE
	KeyQ
	MouseLeft
	MouseRight
	KeyCount // Must be last - used for array sizing
)

// InputBinding represents the keys bound to an action
type InputBinding struct {
	Keys []Key
}

// InputConfig holds all input mappings
type InputConfig struct {
	Bindings [ActionCount]InputBinding
}

// Input is the global input configuration
var Input InputConfig

func init() {
	Input = InputConfig{
		Bindings: [ActionCount]InputBinding{
			ActionMoveForward:  {Keys: []Key{KeyW, KeyUp}},
			ActionMoveBackward: {Keys: []Key{KeyS, KeyDown}},
			ActionMoveLeft:     {Keys: []Key{KeyA, KeyLeft}},
			ActionMoveRight:    {Keys: []Key{KeyD, KeyRight}},
			ActionSprint:       {Keys: []Key{KeyShift}},
			ActionJump:         {Keys: []Key{KeySpace}},
			ActionAttack:       {Keys: []Key{MouseLeft, KeyE}},
			ActionCastSpell:    {Keys: []Key{MouseRight, KeyQ}},
		},
	}
}
