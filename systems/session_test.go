package systems

import (
	"math"
	"testing"

	"github.com/automoto/avatarsync/assets/animations"
	"github.com/automoto/avatarsync/components"
	"github.com/automoto/avatarsync/config"
	"github.com/automoto/avatarsync/network"
	"github.com/automoto/avatarsync/shared/gamemath"
	"github.com/automoto/avatarsync/shared/messages"
	"github.com/leap-fish/necs/esync"
)

const localID = 1

func newTestSession(t *testing.T, dev *fakeDevice) (*Session, *fakeTransport, *recordRenderer) {
	t.Helper()
	tr := newFakeTransport()
	rr := &recordRenderer{}
	s := NewSession(tr, dev, rr, func(string) animations.Loader { return testLoader() })
	waitReady(t, s.Library(config.DefaultCharacterClass))
	tr.joins = append(tr.joins, messages.JoinAccepted{
		NetworkID:      localID,
		CharacterClass: config.DefaultCharacterClass,
	})
	return s, tr, rr
}

func avatarSnap(id uint, tick uint64, pos gamemath.Vec3) components.SnapshotData {
	return components.SnapshotData{
		NetworkID: esync.NetworkId(id),
		Position:  pos,
		Tick:      tick,
		Health:    config.Server.StartHealth,
		Valid:     true,
	}
}

func TestSessionPredictsWithoutSnapshots(t *testing.T) {
	dev := &fakeDevice{state: pressed(config.KeyW)}
	s, tr, rr := newTestSession(t, dev)

	for i := 0; i < 60; i++ {
		s.Tick(1.0 / 60)
	}

	e := s.Entry(localID)
	if e == nil {
		t.Fatal("local avatar missing")
	}
	pos := components.Predicted.Get(e).Position
	if math.Abs(pos.Z-5.0) > 1e-9 || pos.X != 0 {
		t.Fatalf("position = %+v, want z≈5", pos)
	}

	if len(tr.sent) != 1 {
		t.Fatalf("sent %d inputs, want 1 (only the change)", len(tr.sent))
	}
	if !tr.sent[0].Actions[config.ActionMoveForward] || tr.sent[0].Sequence != 1 {
		t.Fatalf("unexpected input %+v", tr.sent[0])
	}

	if len(rr.frames) != 60 || !rr.frames[0].Local {
		t.Fatalf("rendered %d frames", len(rr.frames))
	}
	if got := rr.frames[len(rr.frames)-1].State; got != config.WalkForward {
		t.Fatalf("local animation = %s, want walk_forward", got)
	}
}

func TestSessionPublishesYawChanges(t *testing.T) {
	dev := &fakeDevice{}
	s, tr, _ := newTestSession(t, dev)
	s.Tick(1.0 / 60)

	dev.state.PointerLocked = true
	dev.state.PointerDX = 100
	s.Tick(1.0 / 60)

	if len(tr.sent) != 2 {
		t.Fatalf("sent %d inputs, want 2", len(tr.sent))
	}
	want := -100 * config.Local.PointerSensitivity
	if math.Abs(tr.sent[1].Yaw-want) > 1e-12 || tr.sent[1].Sequence != 2 {
		t.Fatalf("second input %+v, want yaw %v seq 2", tr.sent[1], want)
	}
}

func TestSessionReconcilesLocalAgainstSnapshot(t *testing.T) {
	s, tr, _ := newTestSession(t, &fakeDevice{})
	s.Tick(0)

	tr.inbox.Push(network.Frame{Tick: 1, Avatars: []components.SnapshotData{
		avatarSnap(localID, 1, gamemath.Vec3{Z: 0.5}),
	}})
	s.Tick(0)

	pos := components.Predicted.Get(s.Entry(localID)).Position
	if math.Abs(pos.Z-0.075) > 1e-12 {
		t.Fatalf("z = %v, want 0.075 (blended, not snapped)", pos.Z)
	}
	if st := s.Stats(); st.Corrections != 1 || st.ServerTick != 1 {
		t.Fatalf("stats = %+v", st)
	}
}

func TestSessionRemoteLifecycle(t *testing.T) {
	s, tr, _ := newTestSession(t, &fakeDevice{})

	tr.inbox.Push(network.Frame{Tick: 1, Avatars: []components.SnapshotData{
		avatarSnap(localID, 1, gamemath.Vec3{}),
		avatarSnap(2, 1, gamemath.Vec3{X: 3}),
	}})
	s.Tick(1.0 / 60)

	remote := s.Entry(2)
	if remote == nil {
		t.Fatal("remote avatar not created")
	}
	if got := components.RemoteRender.Get(remote).Position; got != (gamemath.Vec3{X: 3}) {
		t.Fatalf("remote position = %+v, want first snapshot", got)
	}
	if remote.HasComponent(components.Predicted) {
		t.Fatal("remote avatar has predicted state")
	}

	// Stale frame is discarded and removes nothing.
	tr.inbox.Push(network.Frame{Tick: 0, Avatars: []components.SnapshotData{
		avatarSnap(2, 0, gamemath.Vec3{X: 9}),
	}})
	s.Tick(1.0 / 60)
	if got := components.Snapshot.Get(s.Entry(2)).Position; got.X != 3 {
		t.Fatalf("stale snapshot applied: %+v", got)
	}
	if s.Entry(localID) == nil {
		t.Fatal("stale frame removed the local avatar")
	}

	// Newer frame without the remote removes it.
	tr.inbox.Push(network.Frame{Tick: 2, Avatars: []components.SnapshotData{
		avatarSnap(localID, 2, gamemath.Vec3{}),
	}})
	s.Tick(1.0 / 60)
	if s.Entry(2) != nil {
		t.Fatal("absent remote avatar not removed")
	}
	if st := s.Stats(); st.Avatars != 1 {
		t.Fatalf("avatars = %d, want 1", st.Avatars)
	}

	// A late frame from before the removal must not bring the remote back.
	tr.inbox.Push(network.Frame{Tick: 1, Avatars: []components.SnapshotData{
		avatarSnap(localID, 1, gamemath.Vec3{}),
		avatarSnap(2, 1, gamemath.Vec3{X: 3}),
	}})
	s.Tick(1.0 / 60)
	if s.Entry(2) != nil {
		t.Fatal("late frame respawned a removed avatar")
	}
	if st := s.Stats(); st.Avatars != 1 || st.ServerTick != 2 {
		t.Fatalf("stats = %+v, want 1 avatar at tick 2", st)
	}
}

func TestSessionKeepsLocalBeforeFirstSnapshot(t *testing.T) {
	s, tr, _ := newTestSession(t, &fakeDevice{})
	tr.inbox.Push(network.Frame{Tick: 5, Avatars: []components.SnapshotData{
		avatarSnap(2, 5, gamemath.Vec3{}),
	}})
	s.Tick(1.0 / 60)
	if s.Entry(localID) == nil {
		t.Fatal("local avatar removed by a frame queued before the join")
	}
}

func TestSessionServerEvents(t *testing.T) {
	dev := &fakeDevice{state: pressed(config.KeyW)}
	s, tr, _ := newTestSession(t, dev)

	tr.inbox.Push(network.Frame{Tick: 1, Avatars: []components.SnapshotData{
		avatarSnap(localID, 1, gamemath.Vec3{}),
		avatarSnap(2, 1, gamemath.Vec3{X: 1}),
	}})
	s.Tick(1.0 / 60)

	tr.hits = append(tr.hits, messages.HitEvent{AttackerID: localID, TargetID: 2, Damage: 25, Health: 75})
	tr.deaths = append(tr.deaths, messages.DeathEvent{VictimID: localID, KillerID: 2})
	s.Tick(1.0 / 60)

	remote := s.Entry(2)
	if got := components.Animation.Get(remote).CurrentState; got != config.Damage {
		t.Fatalf("remote state = %s, want damage", got)
	}
	if got := components.Health.Get(remote).Current; got != 75 {
		t.Fatalf("remote health = %d, want 75", got)
	}

	local := s.Entry(localID)
	if got := components.Animation.Get(local).CurrentState; got != config.Death {
		t.Fatalf("local state = %s, want death", got)
	}
	frozen := components.Predicted.Get(local).Position
	for i := 0; i < 10; i++ {
		s.Tick(1.0 / 60)
	}
	if got := components.Predicted.Get(local).Position; got != frozen {
		t.Fatalf("dead avatar moved from %+v to %+v", frozen, got)
	}
	if got := components.Animation.Get(local).CurrentState; got != config.Death {
		t.Fatalf("death was not terminal: %s", got)
	}
}

func TestSessionClose(t *testing.T) {
	s, tr, _ := newTestSession(t, &fakeDevice{})
	tr.inbox.Push(network.Frame{Tick: 1, Avatars: []components.SnapshotData{
		avatarSnap(2, 1, gamemath.Vec3{}),
	}})
	s.Tick(1.0 / 60)

	s.Close()
	if s.Entry(localID) != nil || s.Entry(2) != nil {
		t.Fatal("avatars survived Close")
	}
	if s.World().Len() != 0 {
		t.Fatalf("world still holds %d entities", s.World().Len())
	}
}
