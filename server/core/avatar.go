package core

import (
	"github.com/automoto/avatarsync/shared/messages"
	"github.com/automoto/avatarsync/shared/motion"
	"github.com/leap-fish/necs/esync"
	"github.com/yohamta/donburi"
)

// Peer is a connected client the server can message.
type Peer interface {
	Id() string
	SendMessage(msg any) error
}

// ServerAvatar holds per-avatar simulation state on the server. It is not a
// donburi component; the synced components are written from it once per tick.
type ServerAvatar struct {
	Peer     Peer
	Entity   donburi.Entity
	NetID    esync.NetworkId
	Identity string

	Username       string
	CharacterClass string
	Color          string

	State  motion.PredictedState
	Health int
	Dead   bool

	// Latest input (written by input commands, read by the tick)
	Intent        motion.InputIntent
	AttackWasHeld bool // previous tick, for edge detection

	// Last processed input sequence, echoed for client diagnostics
	LastInputSeq uint32
}

// ApplyInput stores a client input. Out-of-order and dead-avatar inputs are
// dropped. The client owns yaw; the server only wraps it.
func (a *ServerAvatar) ApplyInput(input messages.PlayerInput) bool {
	if a.Dead || input.Sequence <= a.LastInputSeq {
		return false
	}
	a.LastInputSeq = input.Sequence
	a.Intent = motion.IntentFromActions(input.Actions)
	a.State = motion.SetYaw(a.State, input.Yaw)
	return true
}

// Moving reports whether the avatar is walking or running this tick.
func (a *ServerAvatar) Moving() bool {
	lx, lz := motion.LocalDirection(a.Intent)
	return !a.Dead && (lx != 0 || lz != 0)
}

// Running reports whether the avatar is moving with sprint held.
func (a *ServerAvatar) Running() bool {
	return a.Moving() && a.Intent.Sprint
}

// Yaw returns the avatar's current facing.
func (a *ServerAvatar) Yaw() float64 {
	return a.State.Yaw
}
