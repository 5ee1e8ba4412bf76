package core

import (
	"log"
	"sync/atomic"

	"github.com/automoto/avatarsync/config"
	"github.com/automoto/avatarsync/shared/messages"
	"github.com/leap-fish/necs/esync/srvsync"
	"github.com/leap-fish/necs/router"
	"github.com/leap-fish/necs/transports"
	"github.com/yohamta/donburi"
)

const commandQueueSize = 256

// Options configures a Server.
type Options struct {
	Name       string
	Version    string // required client version; empty accepts any
	TickRate   int
	MaxPlayers int
	Secret     string        // identity token signing key
	Profiles   *ProfileStore // nil disables logged-out avatar persistence
}

// Server manages the avatar world and client connections. The world and the
// simulation are only touched from the game loop goroutine; router callbacks
// queue commands for it.
type Server struct {
	world     donburi.World
	loop      *GameLoop
	transport *transports.WsServerTransport
	sim       *Simulation
	tokens    *TokenIssuer
	profiles  *ProfileStore

	name       string
	version    string
	maxPlayers int
	colorIndex int
	tick       uint64

	commands chan command
	players  atomic.Int32
}

// NewServer creates a new avatar server
func NewServer(opts Options) *Server {
	if opts.TickRate <= 0 {
		opts.TickRate = config.Server.TickRate
	}
	if opts.MaxPlayers <= 0 {
		opts.MaxPlayers = config.Server.MaxPlayers
	}
	serverCfg := config.Server
	serverCfg.TickRate = opts.TickRate

	world := donburi.NewWorld()
	s := &Server{
		world:      world,
		sim:        NewSimulation(config.Movement, serverCfg),
		tokens:     NewTokenIssuer(opts.Secret),
		profiles:   opts.Profiles,
		name:       opts.Name,
		version:    opts.Version,
		maxPlayers: opts.MaxPlayers,
		commands:   make(chan command, commandQueueSize),
	}
	s.loop = NewGameLoop(s, opts.TickRate)

	// Set up the world for esync
	srvsync.UseEsync(world)

	s.setupRouterCallbacks()
	return s
}

// Start begins the server on the given port
func (s *Server) Start(port uint) error {
	go s.loop.Run()

	s.transport = transports.NewWsServerTransport(port, "", nil)
	return s.transport.Start()
}

// Stop shuts the loop down and persists every connected avatar.
func (s *Server) Stop() {
	s.loop.Stop()
	s.sim.Each(func(a *ServerAvatar) {
		s.saveProfile(a)
	})
}

func (s *Server) setupRouterCallbacks() {
	router.OnConnect(func(client *router.NetworkClient) {
		log.Printf("[server] client connected: %s", client.Id())
	})

	router.OnDisconnect(func(client *router.NetworkClient, err error) {
		if err != nil {
			log.Printf("[server] client %s disconnected with error: %v", client.Id(), err)
		} else {
			log.Printf("[server] client %s disconnected", client.Id())
		}
		s.enqueue(leaveCommand{peerID: client.Id()})
	})

	router.On(func(client *router.NetworkClient, req messages.JoinRequest) {
		s.enqueue(joinCommand{peer: client, req: req})
	})

	router.On(func(client *router.NetworkClient, input messages.PlayerInput) {
		select {
		case s.commands <- inputCommand{peerID: client.Id(), input: input}:
		default:
			log.Printf("[server] Warning: command queue full, dropping input from %s", client.Id())
		}
	})

	router.OnError(func(client *router.NetworkClient, err error) {
		log.Printf("[server] client error: %v", err)
	})
}

func (s *Server) enqueue(cmd command) {
	s.commands <- cmd
}

// World returns the ECS world
func (s *Server) World() donburi.World {
	return s.world
}

// PlayerCount returns the number of joined avatars. Safe from any goroutine.
func (s *Server) PlayerCount() int {
	return int(s.players.Load())
}

func (s *Server) broadcast(msg any) {
	s.sim.Each(func(a *ServerAvatar) {
		if err := a.Peer.SendMessage(msg); err != nil {
			log.Printf("[server] send to %s failed: %v", a.Peer.Id(), err)
		}
	})
}
