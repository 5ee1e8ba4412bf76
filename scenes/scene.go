package scenes

import (
	"github.com/automoto/avatarsync/shared/messages"
	"github.com/yohamta/donburi/ecs"
)

// SceneChanger allows scenes to trigger transitions
type SceneChanger interface {
	ChangeScene(scene interface{})
}

// Render layers, drawn in order.
const (
	LayerWorld ecs.LayerID = iota
	LayerHUD
)

// ConnectOptions is everything needed to (re)join a server.
type ConnectOptions struct {
	Address string
	Join    messages.JoinRequest

	// OnIdentity is called whenever the server hands out a new identity token.
	OnIdentity func(token string)
}
