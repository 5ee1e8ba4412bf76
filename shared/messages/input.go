package messages

import "github.com/automoto/avatarsync/shared/netconfig"

// PlayerInput is sent from client to server with the local avatar's intent
// and facing. The server integrates it on its own tick.
type PlayerInput struct {
	Sequence  uint32                      // Incrementing ID, echoed back as LastSequence
	Actions   [netconfig.ActionCount]bool // Which actions are currently held
	Yaw       float64                     // Client-owned facing, radians in (-π, π]
	Timestamp int64                       // Client timestamp (Unix ms)
}

// NewPlayerInput creates a PlayerInput for the given sequence.
func NewPlayerInput(seq uint32) PlayerInput {
	return PlayerInput{Sequence: seq}
}
