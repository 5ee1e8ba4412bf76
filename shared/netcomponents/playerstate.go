package netcomponents

import (
	"github.com/automoto/avatarsync/shared/netconfig"
	"github.com/yohamta/donburi"
)

type NetPlayerStateData struct {
	Username       string
	CharacterClass string
	Color          string
	Health         int
	Actions        [netconfig.ActionCount]bool // Last input flags the server accepted
	Moving         bool
	Running        bool
	ServerTick     uint64 // Tick that produced this state; snapshot ordering key
	LastSequence   uint32 // Last input sequence processed by the server
	IsLocal        bool   // Client-side only, not synced
}

var NetPlayerState = donburi.NewComponentType[NetPlayerStateData]()
