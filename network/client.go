package network

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/automoto/avatarsync/config"
	"github.com/automoto/avatarsync/shared/messages"
	"github.com/coder/websocket"
	"github.com/leap-fish/necs/esync"
	"github.com/leap-fish/necs/router"
	"github.com/leap-fish/necs/transports"
	"golang.org/x/time/rate"
)

// ErrNotConnected is returned when a message is sent without a live connection.
var ErrNotConnected = errors.New("not connected")

type ClientState int

const (
	StateDisconnected ClientState = iota
	StateConnecting
	StateConnected
	StateJoinedGame
	StateError
)

// Client manages a WebSocket connection to the avatar server.
// All shared fields are protected by mu (router callbacks run on necs goroutines).
type Client struct {
	mu sync.RWMutex

	state         ClientState
	lastError     error
	networkID     esync.NetworkId
	identityToken string
	serverName    string
	tickRate      int
	conn          *websocket.Conn
	gen           uint64 // bumped per Connect/Disconnect; stale callbacks compare against it

	inbox   *Inbox
	joinCh  chan messages.JoinAccepted // size-1 buffered; latest wins
	hitCh   chan messages.HitEvent
	deathCh chan messages.DeathEvent

	limiter *rate.Limiter
}

func NewClient() *Client {
	interval := time.Duration(config.Netcode.ResendInterval * float64(time.Second))
	return &Client{
		state:   StateDisconnected,
		inbox:   NewInbox(config.Netcode.InboxSize),
		joinCh:  make(chan messages.JoinAccepted, 1),
		hitCh:   make(chan messages.HitEvent, config.Netcode.EventInboxSize),
		deathCh: make(chan messages.DeathEvent, config.Netcode.EventInboxSize),
		limiter: rate.NewLimiter(rate.Every(interval), config.Netcode.ResendBurst),
	}
}

// Connect dials the server in a background goroutine and initiates the join handshake.
func (c *Client) Connect(address string, join messages.JoinRequest) {
	c.mu.Lock()
	c.gen++
	gen := c.gen
	c.state = StateConnecting
	c.lastError = nil
	if join.IdentityToken == "" {
		join.IdentityToken = c.identityToken
	}
	c.mu.Unlock()

	// Frames and joins from a previous connection must not leak into this one.
	c.inbox.Drain()
	c.PollJoin()
	drainChan(c.hitCh)
	drainChan(c.deathCh)

	router.OnConnect(func(_ *router.NetworkClient) {
		log.Println("[client] connected to server")
		c.mu.Lock()
		c.state = StateConnected
		c.mu.Unlock()

		if err := c.SendMessage(join); err != nil {
			c.setError(fmt.Errorf("failed to send join request: %w", err))
		}
	})

	router.On(func(_ *router.NetworkClient, msg messages.JoinAccepted) {
		log.Printf("[client] join accepted: networkID=%d server=%s tickRate=%d class=%s",
			msg.NetworkID, msg.ServerName, msg.TickRate, msg.CharacterClass)
		c.mu.Lock()
		c.networkID = msg.NetworkID
		c.identityToken = msg.IdentityToken
		c.serverName = msg.ServerName
		c.tickRate = msg.TickRate
		c.state = StateJoinedGame
		c.mu.Unlock()

		select { // drain stale, push latest
		case <-c.joinCh:
		default:
		}
		c.joinCh <- msg
	})

	router.On(func(_ *router.NetworkClient, msg messages.JoinRejected) {
		log.Printf("[client] join rejected: %s", msg.Reason)
		c.setError(fmt.Errorf("join rejected: %s", msg.Reason))
	})

	router.On(func(_ *router.NetworkClient, snapshot esync.WorldSnapshot) {
		c.inbox.Push(DecodeWorldSnapshot(snapshot))
	})

	router.On(func(_ *router.NetworkClient, evt messages.HitEvent) {
		select {
		case c.hitCh <- evt:
		default:
			log.Printf("[client] Warning: hit event dropped, inbox full")
		}
	})

	router.On(func(_ *router.NetworkClient, evt messages.DeathEvent) {
		select {
		case c.deathCh <- evt:
		default:
			log.Printf("[client] Warning: death event dropped, inbox full")
		}
	})

	router.OnDisconnect(func(_ *router.NetworkClient, err error) {
		log.Printf("[client] disconnected: %v", err)
		c.mu.Lock()
		if c.gen != gen {
			c.mu.Unlock()
			return
		}
		if c.state != StateError {
			c.state = StateDisconnected
		}
		c.conn = nil
		c.mu.Unlock()
	})

	router.OnError(func(_ *router.NetworkClient, err error) {
		log.Printf("[client] error: %v", err)
	})

	go func() {
		transport := transports.NewWsClientTransport("ws://" + address)
		err := transport.Start(func(conn *websocket.Conn) {
			c.mu.Lock()
			if c.gen == gen {
				c.conn = conn
			}
			c.mu.Unlock()
		})
		if err != nil {
			c.setErrorFor(gen, fmt.Errorf("connection failed: %w", err))
		}
	}()
}

func (c *Client) Disconnect() {
	c.mu.Lock()
	c.gen++
	conn := c.conn
	c.state = StateDisconnected
	c.conn = nil
	c.mu.Unlock()

	if conn != nil {
		_ = conn.CloseNow()
	}

	router.ResetRouter()
}

func (c *Client) State() ClientState {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

func (c *Client) LastError() error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.lastError
}

func (c *Client) NetworkID() esync.NetworkId {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.networkID
}

// IdentityToken returns the token from the last JoinAccepted. Persist it to
// keep the same identity across reconnects.
func (c *Client) IdentityToken() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.identityToken
}

func (c *Client) ServerName() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.serverName
}

func (c *Client) TickRate() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.tickRate
}

// Inbox returns the snapshot inbox the frame loop drains each tick.
func (c *Client) Inbox() *Inbox {
	return c.inbox
}

// PollJoin returns the latest unconsumed JoinAccepted, if any. Non-blocking.
func (c *Client) PollJoin() (messages.JoinAccepted, bool) {
	select {
	case msg := <-c.joinCh:
		return msg, true
	default:
		return messages.JoinAccepted{}, false
	}
}

// PublishInput sends an input when it changed since the last send, or when
// the resend limiter allows a keepalive copy. It reports whether the input
// went out.
func (c *Client) PublishInput(input messages.PlayerInput, changed bool) (bool, error) {
	if !changed && !c.limiter.Allow() {
		return false, nil
	}
	if err := c.SendMessage(input); err != nil {
		return false, err
	}
	return true, nil
}

func (c *Client) SendMessage(msg any) error {
	c.mu.RLock()
	conn := c.conn
	c.mu.RUnlock()

	if conn == nil {
		return ErrNotConnected
	}

	payload, err := router.Serialize(msg)
	if err != nil {
		return fmt.Errorf("serialize: %w", err)
	}

	return conn.Write(context.Background(), websocket.MessageBinary, payload)
}

func (c *Client) setError(err error) {
	c.mu.Lock()
	c.state = StateError
	c.lastError = err
	c.mu.Unlock()
}

// setErrorFor records err only if the connection attempt gen is still current.
func (c *Client) setErrorFor(gen uint64, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.gen != gen {
		return
	}
	c.state = StateError
	c.lastError = err
}

// DrainHits returns all pending hit events, non-blocking.
func (c *Client) DrainHits() []messages.HitEvent {
	return drainChan(c.hitCh)
}

// DrainDeaths returns all pending death events, non-blocking.
func (c *Client) DrainDeaths() []messages.DeathEvent {
	return drainChan(c.deathCh)
}

func drainChan[T any](ch chan T) []T {
	var out []T
	for {
		select {
		case v := <-ch:
			out = append(out, v)
		default:
			return out
		}
	}
}
