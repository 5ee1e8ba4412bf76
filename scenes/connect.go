package scenes

import (
	"fmt"
	"image/color"
	"log"
	"sync"
	"time"

	"github.com/automoto/avatarsync/config"
	"github.com/automoto/avatarsync/fonts"
	"github.com/automoto/avatarsync/network"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text" //nolint:staticcheck // TODO: migrate to text/v2
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

const reconnectDelay = 3 * time.Second

// ConnectScene dials the server and waits for the join handshake. After a
// failure it retries on a timer, or immediately on Enter.
type ConnectScene struct {
	ecs          *ecs.ECS
	sceneChanger SceneChanger
	client       *network.Client
	opts         ConnectOptions
	once         sync.Once

	dialed  bool
	retryAt time.Time
	status  string
}

func NewConnectScene(sc SceneChanger, client *network.Client, opts ConnectOptions) *ConnectScene {
	return &ConnectScene{sceneChanger: sc, client: client, opts: opts}
}

// newReconnectScene is entered after a live session drops.
func newReconnectScene(sc SceneChanger, client *network.Client, opts ConnectOptions, reason string) *ConnectScene {
	cs := NewConnectScene(sc, client, opts)
	cs.dialed = true
	cs.retryAt = time.Now().Add(reconnectDelay)
	cs.status = reason
	return cs
}

func (cs *ConnectScene) Update() {
	cs.once.Do(cs.configure)
	cs.ecs.Update()
}

func (cs *ConnectScene) Draw(screen *ebiten.Image) {
	screen.Fill(color.Black)

	if cs.ecs == nil {
		return
	}
	cs.ecs.Draw(screen)
}

func (cs *ConnectScene) configure() {
	cs.ecs = ecs.NewECS(donburi.NewWorld())
	cs.ecs.AddSystem(cs.updateConnect)
	cs.ecs.AddRenderer(LayerHUD, cs.drawStatus)
}

func (cs *ConnectScene) updateConnect(_ *ecs.ECS) {
	if !cs.dialed {
		cs.dial()
		return
	}

	switch cs.client.State() {
	case network.StateJoinedGame:
		cs.sceneChanger.ChangeScene(NewNetworkedScene(cs.sceneChanger, cs.client, cs.opts))
	case network.StateConnecting, network.StateConnected:
		cs.status = "Joining " + cs.opts.Address + "..."
	case network.StateError, network.StateDisconnected:
		if cs.retryAt.IsZero() {
			cs.status = failureReason(cs.client)
			cs.retryAt = time.Now().Add(reconnectDelay)
			log.Printf("[connect] %s, retrying in %s", cs.status, reconnectDelay)
		}
		if time.Now().After(cs.retryAt) || inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
			cs.dial()
		}
	}
}

func (cs *ConnectScene) dial() {
	// Reset router handlers from any previous attempt before registering new ones.
	cs.client.Disconnect()

	join := cs.opts.Join
	if token := cs.client.IdentityToken(); token != "" {
		join.IdentityToken = token
	}
	cs.client.Connect(cs.opts.Address, join)
	cs.dialed = true
	cs.retryAt = time.Time{}
	cs.status = "Connecting to " + cs.opts.Address + "..."
}

func failureReason(c *network.Client) string {
	if err := c.LastError(); err != nil {
		return err.Error()
	}
	return "disconnected"
}

func (cs *ConnectScene) drawStatus(_ *ecs.ECS, screen *ebiten.Image) {
	title := fonts.Title.Get()
	label := fonts.Label.Get()

	text.Draw(screen, "avatarsync", title, 20, 40, config.White)
	text.Draw(screen, cs.status, label, 20, 80, config.Yellow)

	if !cs.retryAt.IsZero() {
		wait := time.Until(cs.retryAt).Round(time.Second)
		if wait < 0 {
			wait = 0
		}
		hint := fmt.Sprintf("Retrying in %s (Enter to retry now)", wait)
		text.Draw(screen, hint, label, 20, 100, config.Grey)
	}
}
