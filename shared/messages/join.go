package messages

import "github.com/leap-fish/necs/esync"

// Version is the protocol version this build speaks.
const Version = "1.0"

// JoinRequest is sent by a client after connecting to request joining the game.
type JoinRequest struct {
	Version        string
	PlayerName     string
	CharacterClass string
	IdentityToken  string // Token from a previous JoinAccepted; empty for a fresh identity
}

// JoinAccepted is sent by the server when a client's join request is accepted.
type JoinAccepted struct {
	NetworkID      esync.NetworkId
	IdentityToken  string
	ServerName     string
	TickRate       int
	SpawnX         float64
	SpawnY         float64
	SpawnZ         float64
	SpawnYaw       float64
	CharacterClass string
}

// JoinRejected is sent by the server when a client's join request is rejected.
type JoinRejected struct {
	Reason string
}
