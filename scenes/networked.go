package scenes

import (
	"image/color"
	"log"
	"sync"

	"github.com/automoto/avatarsync/config"
	"github.com/automoto/avatarsync/input"
	"github.com/automoto/avatarsync/network"
	"github.com/automoto/avatarsync/systems"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/yohamta/donburi/ecs"
)

// NetworkedScene runs a joined session: it ticks the client world once per
// update and draws it top-down.
type NetworkedScene struct {
	ecs          *ecs.ECS
	sceneChanger SceneChanger
	client       *network.Client
	opts         ConnectOptions
	session      *systems.Session
	view         *TopDownView
	once         sync.Once

	savedToken string
}

func NewNetworkedScene(sc SceneChanger, client *network.Client, opts ConnectOptions) *NetworkedScene {
	return &NetworkedScene{
		sceneChanger: sc,
		client:       client,
		opts:         opts,
		savedToken:   opts.Join.IdentityToken,
	}
}

func (ns *NetworkedScene) Update() {
	ns.once.Do(ns.configure)

	state := ns.client.State()
	if state == network.StateDisconnected || state == network.StateError {
		reason := failureReason(ns.client)
		log.Printf("[networked] connection lost (%s), reconnecting", reason)
		ns.session.Close()
		ns.sceneChanger.ChangeScene(newReconnectScene(ns.sceneChanger, ns.client, ns.opts, reason))
		return
	}

	ns.persistIdentity()
	ns.ecs.Update()
}

func (ns *NetworkedScene) Draw(screen *ebiten.Image) {
	screen.Fill(color.Black)

	if ns.ecs == nil {
		return
	}
	ns.ecs.Draw(screen)
}

func (ns *NetworkedScene) configure() {
	ns.view = NewTopDownView(config.C.Scale)
	ns.session = systems.NewSession(ns.client, input.NewEbitenDevice(), ns.view, nil)
	ns.ecs = ecs.NewECS(ns.session.World())

	ns.ecs.AddSystem(ns.updateSession)
	ns.ecs.AddRenderer(LayerWorld, ns.view.DrawWorld)
	ns.ecs.AddRenderer(LayerHUD, ns.drawHUD)
}

func (ns *NetworkedScene) updateSession(_ *ecs.ECS) {
	ns.view.Begin()
	ns.session.Tick(1 / float64(ebiten.TPS()))
}

func (ns *NetworkedScene) drawHUD(_ *ecs.ECS, screen *ebiten.Image) {
	local, ok := ns.view.Local()
	server := ns.client.ServerName() + " @ " + ns.opts.Address
	locked := ebiten.CursorMode() == ebiten.CursorModeCaptured
	drawHUD(screen, local, ok, ns.session.Stats(), server, locked)
}

// persistIdentity hands a newly issued identity token to the caller once.
func (ns *NetworkedScene) persistIdentity() {
	token := ns.client.IdentityToken()
	if token == "" || token == ns.savedToken {
		return
	}
	ns.savedToken = token
	ns.opts.Join.IdentityToken = token
	if ns.opts.OnIdentity != nil {
		ns.opts.OnIdentity(token)
	}
}
