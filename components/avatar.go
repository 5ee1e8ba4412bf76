package components

import (
	"github.com/leap-fish/necs/esync"
	"github.com/yohamta/donburi"
)

// AvatarData identifies an avatar entity on the client.
type AvatarData struct {
	NetworkID      esync.NetworkId
	Username       string
	CharacterClass string
	Color          string
	Local          bool
}

var Avatar = donburi.NewComponentType[AvatarData]()
