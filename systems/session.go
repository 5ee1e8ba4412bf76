package systems

import (
	"errors"
	"log"
	"time"

	"github.com/automoto/avatarsync/archetypes"
	"github.com/automoto/avatarsync/assets/animations"
	"github.com/automoto/avatarsync/components"
	"github.com/automoto/avatarsync/config"
	"github.com/automoto/avatarsync/network"
	"github.com/automoto/avatarsync/shared/gamemath"
	"github.com/automoto/avatarsync/shared/messages"
	"github.com/automoto/avatarsync/shared/motion"
	"github.com/automoto/avatarsync/tags"
	"github.com/leap-fish/necs/esync"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/filter"
)

// Transport is the network side of a session.
type Transport interface {
	InputPublisher
	Inbox() *network.Inbox
	PollJoin() (messages.JoinAccepted, bool)
	DrainHits() []messages.HitEvent
	DrainDeaths() []messages.DeathEvent
}

// LoaderFactory returns the clip loader for a character class.
type LoaderFactory func(class string) animations.Loader

// Stats is a snapshot of session diagnostics.
type Stats struct {
	Avatars             int
	Corrections         int
	LastPredictionError float64 // distance between predicted and server position at the acknowledged input
	PendingInputs       int
	ServerTick          uint64
}

// Session owns the client world and runs one fixed-order tick per frame.
// Everything in it is touched only from the frame loop.
type Session struct {
	world    donburi.World
	net      Transport
	device   Device
	renderer Renderer
	loaders  LoaderFactory

	libraries map[string]*animations.Library
	avatars   map[esync.NetworkId]donburi.Entity
	triggers  map[esync.NetworkId]config.StateID
	present   map[esync.NetworkId]bool

	localID       esync.NetworkId
	lastFrameTick uint64
	buffer        *network.PredictionBuffer
	stats         Stats
}

// NewSession creates an empty session. device and renderer may be nil;
// loaders defaults to the built-in clip definitions.
func NewSession(net Transport, device Device, renderer Renderer, loaders LoaderFactory) *Session {
	if loaders == nil {
		loaders = func(class string) animations.Loader {
			return animations.DefLoader{Class: class}
		}
	}
	return &Session{
		world:     donburi.NewWorld(),
		net:       net,
		device:    device,
		renderer:  renderer,
		loaders:   loaders,
		libraries: make(map[string]*animations.Library),
		avatars:   make(map[esync.NetworkId]donburi.Entity),
		triggers:  make(map[esync.NetworkId]config.StateID),
		present:   make(map[esync.NetworkId]bool),
		buffer:    &network.PredictionBuffer{},
	}
}

func (s *Session) World() donburi.World {
	return s.world
}

func (s *Session) LocalID() esync.NetworkId {
	return s.localID
}

// Entry returns the entry for an avatar identity, or nil.
func (s *Session) Entry(id esync.NetworkId) *donburi.Entry {
	e, ok := s.avatars[id]
	if !ok || !s.world.Valid(e) {
		return nil
	}
	return s.world.Entry(e)
}

// SetRenderer replaces the render sink.
func (s *Session) SetRenderer(r Renderer) {
	s.renderer = r
}

func (s *Session) Stats() Stats {
	st := s.stats
	st.Avatars = len(s.avatars)
	st.ServerTick = s.lastFrameTick
	if e := s.Entry(s.localID); e != nil && e.HasComponent(components.Snapshot) {
		st.PendingInputs = s.buffer.Pending(components.Snapshot.Get(e).LastSequence)
	}
	return st
}

// Library returns the clip library for a class, starting its load on first use.
func (s *Session) Library(class string) *animations.Library {
	if class == "" {
		class = config.DefaultCharacterClass
	}
	lib, ok := s.libraries[class]
	if !ok {
		lib = animations.NewLibrary(s.loaders(class))
		s.libraries[class] = lib
	}
	return lib
}

// Tick runs one frame: ingest, intent, prediction, reconciliation,
// interpolation, animation, render hand-off, then input publish.
func (s *Session) Tick(dt float64) {
	s.ingest()

	var dev DeviceState
	if s.device != nil {
		dev = s.device.Poll()
	}
	UpdateIntent(s.world, dev, config.Input)
	UpdatePrediction(s.world, dt, config.Movement)
	UpdateReconciliation(s.world, config.Netcode, s.onCorrect)
	UpdateInterpolation(s.world, dt, config.Netcode)
	s.updateAnimations(dt)

	if s.renderer != nil {
		EmitFrames(s.world, s.renderer)
	}
	PublishIntent(s.world, s.net, s.buffer, time.Now())
}

// Close stops every animation and empties the world.
func (s *Session) Close() {
	for id := range s.avatars {
		s.removeAvatar(id)
	}
}

func (s *Session) ingest() {
	if s.net == nil {
		return
	}
	if msg, ok := s.net.PollJoin(); ok {
		s.joinLocal(msg)
	}
	for _, frame := range s.net.Inbox().Drain() {
		s.applyFrame(frame)
	}
	for _, evt := range s.net.DrainHits() {
		s.applyHit(evt)
	}
	for _, evt := range s.net.DrainDeaths() {
		s.applyDeath(evt)
	}
}

// JoinLocal seeds the local avatar from a join acceptance. Exported for
// callers that complete the handshake themselves.
func (s *Session) JoinLocal(msg messages.JoinAccepted) {
	s.joinLocal(msg)
}

func (s *Session) joinLocal(msg messages.JoinAccepted) {
	if s.localID != 0 {
		s.removeAvatar(s.localID)
	}
	// A snapshot may have introduced this identity as remote before the join
	// arrived.
	s.removeAvatar(msg.NetworkID)

	s.localID = msg.NetworkID
	class := msg.CharacterClass
	if class == "" {
		class = config.DefaultCharacterClass
	}

	entry := archetypes.LocalAvatar.Spawn(s.world)
	components.Avatar.SetValue(entry, components.AvatarData{
		NetworkID:      msg.NetworkID,
		CharacterClass: class,
		Local:          true,
	})
	components.Predicted.SetValue(entry, components.PredictedData{
		PredictedState: motion.PredictedState{
			Position: gamemath.Vec3{X: msg.SpawnX, Y: msg.SpawnY, Z: msg.SpawnZ},
			Yaw:      gamemath.WrapAngle(msg.SpawnYaw),
		},
	})
	components.LocalContext.SetValue(entry, components.LocalContextData{
		Sensitivity: config.Local.PointerSensitivity,
	})
	components.Health.SetValue(entry, components.HealthData{
		Current: config.Server.StartHealth,
		Max:     config.Server.StartHealth,
	})
	components.Animation.SetValue(entry, components.AnimationData{CurrentState: config.StateNone})

	s.avatars[msg.NetworkID] = entry.Entity()
	s.Library(class)
	log.Printf("[session] local avatar %d joined at (%.1f, %.1f, %.1f)", msg.NetworkID, msg.SpawnX, msg.SpawnY, msg.SpawnZ)
}

func (s *Session) applyFrame(frame network.Frame) {
	// Frames not newer than the held world are dropped whole.
	if s.lastFrameTick > 0 && frame.Tick <= s.lastFrameTick {
		return
	}

	clear(s.present)
	for _, snap := range frame.Avatars {
		s.present[snap.NetworkID] = true
		s.applySnapshot(snap)
	}

	if frame.Tick <= s.lastFrameTick {
		return
	}
	s.lastFrameTick = frame.Tick

	for id, e := range s.avatars {
		if s.present[id] {
			continue
		}
		entry := s.world.Entry(e)
		// The local avatar is only dropped once the server has shown it to us;
		// frames queued before the join never contain it.
		if id == s.localID && !components.Snapshot.Get(entry).Valid {
			continue
		}
		s.removeAvatar(id)
	}
}

func (s *Session) applySnapshot(snap components.SnapshotData) {
	e, ok := s.avatars[snap.NetworkID]
	if !ok {
		if snap.NetworkID == s.localID {
			return
		}
		s.spawnRemote(snap)
		return
	}

	entry := s.world.Entry(e)
	held := components.Snapshot.Get(entry)
	if !snap.Newer(*held) {
		return
	}
	*held = snap

	av := components.Avatar.Get(entry)
	av.Username = snap.Username
	av.Color = snap.Color
	if snap.CharacterClass != "" {
		av.CharacterClass = snap.CharacterClass
	}
	components.Health.Get(entry).Current = snap.Health
}

func (s *Session) spawnRemote(snap components.SnapshotData) {
	class := snap.CharacterClass
	if class == "" {
		class = config.DefaultCharacterClass
	}

	entry := archetypes.RemoteAvatar.Spawn(s.world)
	components.Avatar.SetValue(entry, components.AvatarData{
		NetworkID:      snap.NetworkID,
		Username:       snap.Username,
		CharacterClass: class,
		Color:          snap.Color,
	})
	components.Snapshot.SetValue(entry, snap)
	components.Health.SetValue(entry, components.HealthData{
		Current: snap.Health,
		Max:     config.Server.StartHealth,
	})
	components.Animation.SetValue(entry, components.AnimationData{CurrentState: config.StateNone})

	s.avatars[snap.NetworkID] = entry.Entity()
	s.Library(class)
}

func (s *Session) removeAvatar(id esync.NetworkId) {
	e, ok := s.avatars[id]
	if !ok {
		return
	}
	delete(s.avatars, id)
	delete(s.triggers, id)
	if !s.world.Valid(e) {
		return
	}
	entry := s.world.Entry(e)
	StopAnimation(components.Animation.Get(entry))
	s.world.Remove(e)
	if id == s.localID {
		log.Printf("[session] local avatar %d removed", id)
	}
}

func (s *Session) applyHit(evt messages.HitEvent) {
	id := esync.NetworkId(evt.TargetID)
	entry := s.Entry(id)
	if entry == nil {
		return
	}
	components.Health.Get(entry).Current = evt.Health
	if s.triggers[id] != config.Death {
		s.triggers[id] = config.Damage
	}
}

func (s *Session) applyDeath(evt messages.DeathEvent) {
	id := esync.NetworkId(evt.VictimID)
	entry := s.Entry(id)
	if entry == nil {
		return
	}
	components.Health.Get(entry).Current = 0
	s.triggers[id] = config.Death
}

func (s *Session) onCorrect(snap components.SnapshotData, _ Correction) {
	s.stats.Corrections++
	if d, ok := s.buffer.PredictionError(snap.LastSequence, snap.Position); ok {
		s.stats.LastPredictionError = d
	}
}

var avatarAnimQuery = donburi.NewQuery(filter.Contains(
	tags.Avatar,
	components.Avatar,
	components.Animation,
	components.Health,
))

func (s *Session) updateAnimations(dt float64) {
	cfg := config.Animation
	avatarAnimQuery.Each(s.world, func(e *donburi.Entry) {
		av := components.Avatar.Get(e)
		anim := components.Animation.Get(e)
		lib := s.Library(av.CharacterClass)
		wasMissing := anim.Missing

		var errs []error
		if st, ok := s.triggers[av.NetworkID]; ok {
			errs = append(errs, TriggerAnimation(anim, st, lib, cfg))
		}
		if !components.Health.Get(e).Dead() {
			errs = append(errs, RequestAnimation(anim, s.selectTarget(e, cfg), lib, cfg))
		}
		errs = append(errs, UpdateAnimation(anim, dt, lib, cfg))

		for _, err := range errs {
			switch {
			case err == nil, errors.Is(err, ErrNotReady):
			case errors.Is(err, ErrIdleClipMissing):
				if !wasMissing {
					log.Printf("[animation] avatar %d (%s): %v", av.NetworkID, av.CharacterClass, err)
					wasMissing = true
				}
			default:
				log.Printf("[animation] avatar %d: %v", av.NetworkID, err)
			}
		}
	})
	clear(s.triggers)
}

func (s *Session) selectTarget(e *donburi.Entry, cfg config.AnimationConfig) config.StateID {
	if e.HasComponent(components.Intent) {
		return SelectFromIntent(components.Intent.Get(e).Current)
	}
	snap := components.Snapshot.Get(e)
	rr := components.RemoteRender.Get(e)
	return SelectFromMotion(snap.Intent, rr.Velocity, rr.Yaw, cfg)
}
