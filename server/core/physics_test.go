package core

import (
	"math"
	"testing"

	"github.com/automoto/avatarsync/config"
	"github.com/automoto/avatarsync/shared/gamemath"
	"github.com/automoto/avatarsync/shared/messages"
	"github.com/automoto/avatarsync/shared/motion"
	"github.com/leap-fish/necs/esync"
)

type fakePeer struct {
	id   string
	sent []any
}

func (p *fakePeer) Id() string { return p.id }

func (p *fakePeer) SendMessage(msg any) error {
	p.sent = append(p.sent, msg)
	return nil
}

func newAvatar(id string, nid esync.NetworkId, pos gamemath.Vec3) *ServerAvatar {
	return &ServerAvatar{
		Peer:   &fakePeer{id: id},
		NetID:  nid,
		Health: config.Server.StartHealth,
		State:  motion.PredictedState{Position: pos},
	}
}

func input(seq uint32, in motion.InputIntent, yaw float64) messages.PlayerInput {
	msg := messages.NewPlayerInput(seq)
	msg.Actions = in.Actions()
	msg.Yaw = yaw
	return msg
}

func TestSimulationSubstepsMatchClient(t *testing.T) {
	sim := NewSimulation(config.Movement, config.Server)
	if sim.Substeps() != 3 {
		t.Fatalf("Substeps = %d, want 3 at 20 Hz", sim.Substeps())
	}

	a := newAvatar("a", 1, gamemath.Vec3{})
	a.ApplyInput(input(1, motion.InputIntent{Forward: true}, 0))
	sim.Add(a)

	// One second of server ticks.
	for i := 0; i < config.Server.TickRate; i++ {
		sim.Step(1 / float64(config.Server.TickRate))
	}

	// The same second integrated at 60 Hz on the client.
	var client motion.PredictedState
	for i := 0; i < 60; i++ {
		client = motion.Advance(client, motion.InputIntent{Forward: true}, 1.0/60, config.Movement)
	}

	if d := math.Sqrt(a.State.Position.DistSq(client.Position)); d > 1e-9 {
		t.Fatalf("server %+v and client %+v diverged by %v", a.State.Position, client.Position, d)
	}
	if math.Abs(a.State.Position.Z-5) > 1e-9 {
		t.Fatalf("z = %v, want 5", a.State.Position.Z)
	}
}

func TestApplyInput(t *testing.T) {
	a := newAvatar("a", 1, gamemath.Vec3{})
	if !a.ApplyInput(input(2, motion.InputIntent{Left: true, Sprint: true}, 4)) {
		t.Fatal("first input rejected")
	}
	if a.Yaw() != gamemath.WrapAngle(4) {
		t.Fatalf("yaw = %v, want wrapped 4", a.Yaw())
	}
	if !a.Moving() || !a.Running() {
		t.Fatal("expected moving and running")
	}
	if a.ApplyInput(input(1, motion.InputIntent{}, 0)) {
		t.Fatal("out-of-order input accepted")
	}
	if a.LastInputSeq != 2 {
		t.Fatalf("LastInputSeq = %d, want 2", a.LastInputSeq)
	}

	a.Dead = true
	if a.ApplyInput(input(3, motion.InputIntent{Forward: true}, 0)) {
		t.Fatal("dead avatar accepted input")
	}
}

func TestCombatHitAndDeath(t *testing.T) {
	sim := NewSimulation(config.Movement, config.Server)
	attacker := newAvatar("a", 1, gamemath.Vec3{})
	target := newAvatar("b", 2, gamemath.Vec3{X: 1})
	far := newAvatar("c", 3, gamemath.Vec3{X: 50})
	sim.Add(attacker)
	sim.Add(target)
	sim.Add(far)

	hits := 0
	seq := uint32(0)
	var events []any
	for target.Health > 0 {
		seq++
		attacker.ApplyInput(input(seq, motion.InputIntent{Attack: true}, 0))
		events = append(events, sim.Step(0.05)...)
		// Holding the button does not repeat the hit.
		events = append(events, sim.Step(0.05)...)
		seq++
		attacker.ApplyInput(input(seq, motion.InputIntent{}, 0))
		sim.Step(0.05)
		hits++
		if hits > 10 {
			t.Fatal("target never died")
		}
	}

	wantHits := config.Server.StartHealth / config.Server.AttackDamage
	if hits != wantHits {
		t.Fatalf("hits = %d, want %d", hits, wantHits)
	}
	if len(events) != wantHits+1 {
		t.Fatalf("events = %d, want %d hits and one death", len(events), wantHits)
	}
	for i, evt := range events[:wantHits] {
		hit, ok := evt.(messages.HitEvent)
		if !ok || hit.AttackerID != 1 || hit.TargetID != 2 {
			t.Fatalf("event %d = %#v", i, evt)
		}
	}
	death, ok := events[wantHits].(messages.DeathEvent)
	if !ok || death.VictimID != 2 || death.KillerID != 1 {
		t.Fatalf("last event = %#v, want death of 2 by 1", events[wantHits])
	}
	if far.Health != config.Server.StartHealth {
		t.Fatal("avatar out of range was hit")
	}

	// Dead avatars are frozen.
	pos := target.State.Position
	target.Intent = motion.InputIntent{Forward: true}
	sim.Step(0.05)
	if target.State.Position != pos {
		t.Fatal("dead avatar moved")
	}
}

func TestSimulationRemove(t *testing.T) {
	sim := NewSimulation(config.Movement, config.Server)
	sim.Add(newAvatar("a", 1, gamemath.Vec3{}))
	if _, ok := sim.Remove("a"); !ok || sim.Len() != 0 {
		t.Fatal("remove failed")
	}
	if _, ok := sim.Remove("a"); ok {
		t.Fatal("second remove reported success")
	}
}
