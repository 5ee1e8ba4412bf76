// Package motion holds the movement integration shared by client prediction
// and the authoritative server. Everything here is pure: identical inputs
// always produce identical outputs.
package motion

import (
	"math"

	"github.com/automoto/avatarsync/config"
	"github.com/automoto/avatarsync/shared/gamemath"
	"github.com/automoto/avatarsync/shared/netconfig"
)

// InputIntent is one tick of player intent. It is recomputed every tick and
// never persisted.
type InputIntent struct {
	Forward, Backward bool
	Left, Right       bool
	Sprint            bool
	Jump              bool
	Attack            bool
	CastSpell         bool
}

// Moving reports whether any movement flag is held.
func (in InputIntent) Moving() bool {
	return in.Forward || in.Backward || in.Left || in.Right
}

// Actions encodes the intent for the wire.
func (in InputIntent) Actions() [netconfig.ActionCount]bool {
	var a [netconfig.ActionCount]bool
	a[netconfig.ActionMoveForward] = in.Forward
	a[netconfig.ActionMoveBackward] = in.Backward
	a[netconfig.ActionMoveLeft] = in.Left
	a[netconfig.ActionMoveRight] = in.Right
	a[netconfig.ActionSprint] = in.Sprint
	a[netconfig.ActionJump] = in.Jump
	a[netconfig.ActionAttack] = in.Attack
	a[netconfig.ActionCastSpell] = in.CastSpell
	return a
}

// IntentFromActions decodes a wire action set.
func IntentFromActions(a [netconfig.ActionCount]bool) InputIntent {
	return InputIntent{
		Forward:   a[netconfig.ActionMoveForward],
		Backward:  a[netconfig.ActionMoveBackward],
		Left:      a[netconfig.ActionMoveLeft],
		Right:     a[netconfig.ActionMoveRight],
		Sprint:    a[netconfig.ActionSprint],
		Jump:      a[netconfig.ActionJump],
		Attack:    a[netconfig.ActionAttack],
		CastSpell: a[netconfig.ActionCastSpell],
	}
}

// PredictedState is an avatar's integrated transform. Yaw is always kept in
// (-π, π].
type PredictedState struct {
	Position gamemath.Vec3
	Yaw      float64
}

// LocalDirection returns the unit movement vector in the avatar's frame
// (x = left, z = forward). Opposing flags cancel; diagonals are normalized.
func LocalDirection(in InputIntent) (x, z float64) {
	if in.Forward {
		z++
	}
	if in.Backward {
		z--
	}
	if in.Left {
		x++
	}
	if in.Right {
		x--
	}
	if x == 0 && z == 0 {
		return 0, 0
	}
	l := math.Hypot(x, z)
	return x / l, z / l
}

// Speed returns the movement speed for the intent in units per second.
func Speed(in InputIntent, cfg config.MovementConfig) float64 {
	if in.Sprint {
		return cfg.BaseSpeed * cfg.SprintFactor
	}
	return cfg.BaseSpeed
}

// Advance integrates one step. dt is clamped to cfg.MaxStep so a stalled
// frame cannot teleport the avatar. Yaw is not changed by movement input.
func Advance(s PredictedState, in InputIntent, dt float64, cfg config.MovementConfig) PredictedState {
	dt = gamemath.ClampStep(dt, cfg.MaxStep)
	lx, lz := LocalDirection(in)
	if dt == 0 || (lx == 0 && lz == 0) {
		s.Yaw = gamemath.WrapAngle(s.Yaw)
		return s
	}

	wx, wz := gamemath.RotateYaw(lx, lz, s.Yaw)
	step := Speed(in, cfg) * dt
	s.Position = s.Position.Add(gamemath.Vec3{X: wx * step, Z: wz * step})
	s.Yaw = gamemath.WrapAngle(s.Yaw)
	return s
}

// SetYaw replaces the yaw from rotation input, wrapped into (-π, π].
func SetYaw(s PredictedState, yaw float64) PredictedState {
	s.Yaw = gamemath.WrapAngle(yaw)
	return s
}
