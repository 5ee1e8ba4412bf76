package core

import (
	"errors"
	"log"
	"time"

	"github.com/automoto/avatarsync/config"
	"github.com/automoto/avatarsync/shared/gamemath"
	"github.com/automoto/avatarsync/shared/messages"
	"github.com/automoto/avatarsync/shared/motion"
	"github.com/automoto/avatarsync/shared/netcomponents"
	"github.com/leap-fish/necs/esync"
	"github.com/leap-fish/necs/esync/srvsync"
)

type command interface{ isCommand() }

type joinCommand struct {
	peer Peer
	req  messages.JoinRequest
}

type leaveCommand struct {
	peerID string
}

type inputCommand struct {
	peerID string
	input  messages.PlayerInput
}

func (joinCommand) isCommand()  {}
func (leaveCommand) isCommand() {}
func (inputCommand) isCommand() {}

// ProcessCommands applies every queued client command. Called at the start
// of each tick from the loop goroutine.
func (s *Server) ProcessCommands() {
	for {
		select {
		case cmd := <-s.commands:
			switch c := cmd.(type) {
			case joinCommand:
				s.handleJoin(c.peer, c.req)
			case leaveCommand:
				s.handleLeave(c.peerID)
			case inputCommand:
				if a, ok := s.sim.Get(c.peerID); ok {
					a.ApplyInput(c.input)
				}
			}
		default:
			return
		}
	}
}

// joinIdentity resolves who a join request is for. A valid token reclaims
// its identity; anything else gets a fresh one.
func (s *Server) joinIdentity(token string) (identity string, restored *SavedAvatar) {
	if token == "" {
		return NewIdentity(), nil
	}
	identity, err := s.tokens.Verify(token)
	if err != nil {
		log.Printf("[server] rejecting identity token: %v", err)
		return NewIdentity(), nil
	}
	restored, err = s.profiles.Load(identity)
	if err != nil {
		log.Printf("Warning: Could not load profile %s: %v", identity, err)
	}
	return identity, restored
}

func (s *Server) reject(peer Peer, reason string) {
	log.Printf("[server] join rejected for %s: %s", peer.Id(), reason)
	if err := peer.SendMessage(messages.JoinRejected{Reason: reason}); err != nil {
		log.Printf("[server] send to %s failed: %v", peer.Id(), err)
	}
}

func (s *Server) handleJoin(peer Peer, req messages.JoinRequest) {
	if _, joined := s.sim.Get(peer.Id()); joined {
		return
	}
	if s.version != "" && req.Version != s.version {
		s.reject(peer, "version mismatch: server requires "+s.version)
		return
	}
	if s.sim.Len() >= s.maxPlayers {
		s.reject(peer, "server full")
		return
	}

	identity, restored := s.joinIdentity(req.IdentityToken)
	var connected bool
	s.sim.Each(func(a *ServerAvatar) {
		connected = connected || a.Identity == identity
	})
	if connected {
		s.reject(peer, "identity already connected")
		return
	}

	a := &ServerAvatar{
		Peer:           peer,
		Identity:       identity,
		Username:       SanitizeUsername(req.PlayerName, s.sim.Len()+1),
		CharacterClass: ResolveClass(req.CharacterClass),
		Color:          ColorFor(s.colorIndex),
		Health:         config.Server.StartHealth,
	}
	a.State.Position = SpawnPoint(s.sim.Len(), config.Server)
	if restored != nil {
		a.Username = SanitizeUsername(restored.Username, s.sim.Len()+1)
		a.CharacterClass = ResolveClass(restored.CharacterClass)
		a.State = motion.SetYaw(a.State, restored.Yaw)
		log.Printf("[server] restored avatar %s (%s)", identity, a.Username)
	}
	s.colorIndex++

	if err := s.spawnEntity(a); err != nil {
		log.Printf("[server] failed to set up network sync for %s: %v", peer.Id(), err)
		s.reject(peer, "internal error")
		return
	}

	token, err := s.tokens.Issue(identity)
	if err != nil {
		log.Printf("Warning: Could not issue identity token: %v", err)
	}

	s.sim.Add(a)
	s.players.Store(int32(s.sim.Len()))
	if restored != nil {
		if err := s.profiles.Delete(identity); err != nil {
			log.Printf("Warning: Could not delete profile %s: %v", identity, err)
		}
	}

	accepted := messages.JoinAccepted{
		NetworkID:      a.NetID,
		IdentityToken:  token,
		ServerName:     s.name,
		TickRate:       s.loop.tickRate,
		SpawnX:         a.State.Position.X,
		SpawnY:         a.State.Position.Y,
		SpawnZ:         a.State.Position.Z,
		SpawnYaw:       a.State.Yaw,
		CharacterClass: a.CharacterClass,
	}
	if err := peer.SendMessage(accepted); err != nil {
		log.Printf("[server] send to %s failed: %v", peer.Id(), err)
	}
	log.Printf("[server] avatar %d (%s, %s) joined for client %s at (%.1f, %.1f, %.1f)",
		a.NetID, a.Username, a.Color, peer.Id(), a.State.Position.X, a.State.Position.Y, a.State.Position.Z)
}

var errNoNetworkID = errors.New("entity has no network id")

func (s *Server) spawnEntity(a *ServerAvatar) error {
	entity := s.world.Create(
		netcomponents.NetTransform,
		netcomponents.NetPlayerState,
	)
	a.Entity = entity
	s.writeComponents(a)

	err := srvsync.NetworkSync(s.world, &entity,
		srvsync.WithInterp(netcomponents.NetTransform),
		netcomponents.NetPlayerState,
	)
	if err != nil {
		s.world.Remove(entity)
		return err
	}

	nid := esync.GetNetworkId(s.world.Entry(entity))
	if nid == nil {
		s.world.Remove(entity)
		return errNoNetworkID
	}
	a.Entity = entity
	a.NetID = *nid
	return nil
}

func (s *Server) handleLeave(peerID string) {
	a, ok := s.sim.Remove(peerID)
	if !ok {
		return
	}
	s.players.Store(int32(s.sim.Len()))
	s.saveProfile(a)

	if s.world.Valid(a.Entity) {
		s.world.Remove(a.Entity)
	}
	log.Printf("[server] avatar %d (%s) left", a.NetID, a.Username)
}

func (s *Server) saveProfile(a *ServerAvatar) {
	err := s.profiles.Save(SavedAvatar{
		Identity:       a.Identity,
		Username:       a.Username,
		CharacterClass: a.CharacterClass,
		X:              a.State.Position.X,
		Y:              a.State.Position.Y,
		Z:              a.State.Position.Z,
		Yaw:            a.State.Yaw,
		SavedAt:        time.Now(),
	})
	if err != nil {
		log.Printf("Warning: Could not save avatar %s: %v", a.Identity, err)
	}
}

// syncWorld writes simulation state into the synced components.
func (s *Server) syncWorld() {
	s.sim.Each(func(a *ServerAvatar) {
		if s.world.Valid(a.Entity) {
			s.writeComponents(a)
		}
	})
}

func (s *Server) writeComponents(a *ServerAvatar) {
	entry := s.world.Entry(a.Entity)
	netcomponents.NetTransform.SetValue(entry, transformOf(a))
	netcomponents.NetPlayerState.SetValue(entry, playerStateOf(a, s.tick))
}

func transformOf(a *ServerAvatar) netcomponents.NetTransformData {
	return netcomponents.NetTransformData{
		X:   a.State.Position.X,
		Y:   a.State.Position.Y,
		Z:   a.State.Position.Z,
		Yaw: gamemath.WrapAngle(a.State.Yaw),
	}
}

func playerStateOf(a *ServerAvatar, tick uint64) netcomponents.NetPlayerStateData {
	return netcomponents.NetPlayerStateData{
		Username:       a.Username,
		CharacterClass: a.CharacterClass,
		Color:          a.Color,
		Health:         a.Health,
		Actions:        a.Intent.Actions(),
		Moving:         a.Moving(),
		Running:        a.Running(),
		ServerTick:     tick,
		LastSequence:   a.LastInputSeq,
	}
}
