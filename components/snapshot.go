package components

import (
	"github.com/automoto/avatarsync/shared/gamemath"
	"github.com/automoto/avatarsync/shared/motion"
	"github.com/leap-fish/necs/esync"
	"github.com/yohamta/donburi"
)

// SnapshotData is the latest authoritative sample for one identity. It is
// written only by snapshot ingestion and replaced whole, never patched.
type SnapshotData struct {
	NetworkID      esync.NetworkId
	Position       gamemath.Vec3
	Yaw            float64
	Tick           uint64 // Server tick; newer ticks win
	Intent         motion.InputIntent
	Health         int
	LastSequence   uint32
	Username       string
	CharacterClass string
	Color          string
	Valid          bool // False until the first snapshot arrives
}

// Newer reports whether s should replace the currently held snapshot.
func (s SnapshotData) Newer(held SnapshotData) bool {
	return !held.Valid || s.Tick > held.Tick
}

var Snapshot = donburi.NewComponentType[SnapshotData]()
