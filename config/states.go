package config

import "github.com/automoto/avatarsync/shared/netconfig"

// Type aliases so client code can keep using config.StateID etc.
type StateID = netconfig.StateID
type ActionID = netconfig.ActionID

// Re-export animation state constants.
const (
	StateNone = netconfig.StateNone

	Idle        = netconfig.Idle
	WalkForward = netconfig.WalkForward
	WalkBack    = netconfig.WalkBack
	WalkLeft    = netconfig.WalkLeft
	WalkRight   = netconfig.WalkRight
	RunForward  = netconfig.RunForward
	RunBack     = netconfig.RunBack
	RunLeft     = netconfig.RunLeft
	RunRight    = netconfig.RunRight
	Jump        = netconfig.Jump
	Attack      = netconfig.Attack
	Cast        = netconfig.Cast
	Damage      = netconfig.Damage
	Death       = netconfig.Death

	StateCount = netconfig.StateCount
)

// Re-export action constants.
const (
	ActionMoveForward  = netconfig.ActionMoveForward
	ActionMoveBackward = netconfig.ActionMoveBackward
	ActionMoveLeft     = netconfig.ActionMoveLeft
	ActionMoveRight    = netconfig.ActionMoveRight
	ActionSprint       = netconfig.ActionSprint
	ActionJump         = netconfig.ActionJump
	ActionAttack       = netconfig.ActionAttack
	ActionCastSpell    = netconfig.ActionCastSpell
	ActionCount        = netconfig.ActionCount
)

// Re-export the table (same array value, indexed by StateID).
var StateToFileName = netconfig.StateToFileName
