package core

import (
	"cmp"
	"slices"

	"github.com/automoto/avatarsync/config"
	"github.com/automoto/avatarsync/shared/messages"
	"github.com/automoto/avatarsync/shared/motion"
)

// Simulation advances every avatar on the server tick. It has no network or
// ECS dependencies.
type Simulation struct {
	avatars  map[string]*ServerAvatar // keyed by peer id
	movement config.MovementConfig
	server   config.ServerConfig
}

func NewSimulation(movement config.MovementConfig, server config.ServerConfig) *Simulation {
	return &Simulation{
		avatars:  make(map[string]*ServerAvatar),
		movement: movement,
		server:   server,
	}
}

func (sim *Simulation) Add(a *ServerAvatar) {
	sim.avatars[a.Peer.Id()] = a
}

func (sim *Simulation) Remove(peerID string) (*ServerAvatar, bool) {
	a, ok := sim.avatars[peerID]
	if ok {
		delete(sim.avatars, peerID)
	}
	return a, ok
}

func (sim *Simulation) Get(peerID string) (*ServerAvatar, bool) {
	a, ok := sim.avatars[peerID]
	return a, ok
}

func (sim *Simulation) Len() int {
	return len(sim.avatars)
}

// Each calls fn for every avatar in network id order.
func (sim *Simulation) Each(fn func(*ServerAvatar)) {
	for _, a := range sim.sorted() {
		fn(a)
	}
}

func (sim *Simulation) sorted() []*ServerAvatar {
	out := make([]*ServerAvatar, 0, len(sim.avatars))
	for _, a := range sim.avatars {
		out = append(out, a)
	}
	slices.SortFunc(out, func(a, b *ServerAvatar) int {
		return cmp.Compare(a.NetID, b.NetID)
	})
	return out
}

// Substeps returns how many integration steps one tick is split into. Steps
// at the substep rate stay under MaxStep, so the clamp never eats server
// movement.
func (sim *Simulation) Substeps() int {
	if sim.server.TickRate <= 0 {
		return 1
	}
	n := sim.server.SubstepRate / sim.server.TickRate // 3 at 20 Hz
	if n < 1 {
		n = 1
	}
	return n
}

// Step runs one tick: sub-stepped movement, then combat. It returns the
// events to broadcast.
func (sim *Simulation) Step(dt float64) []any {
	steps := sim.Substeps()
	sub := dt / float64(steps)
	for step := 0; step < steps; step++ {
		for _, a := range sim.avatars {
			if a.Dead {
				continue
			}
			a.State = motion.Advance(a.State, a.Intent, sub, sim.movement)
		}
	}
	return sim.resolveAttacks()
}

// resolveAttacks damages every living avatar in range of an attack that
// started this tick. Attackers resolve in network id order.
func (sim *Simulation) resolveAttacks() []any {
	var events []any
	order := sim.sorted()
	for _, attacker := range order {
		pressed := attacker.Intent.Attack && !attacker.AttackWasHeld
		attacker.AttackWasHeld = attacker.Intent.Attack
		if !pressed || attacker.Dead {
			continue
		}

		for _, target := range order {
			if target == attacker || target.Dead {
				continue
			}
			if attacker.State.Position.DistSq(target.State.Position) > sim.server.AttackRangeSq {
				continue
			}

			target.Health -= sim.server.AttackDamage
			if target.Health < 0 {
				target.Health = 0
			}
			events = append(events, messages.HitEvent{
				AttackerID: uint(attacker.NetID),
				TargetID:   uint(target.NetID),
				Damage:     sim.server.AttackDamage,
				Health:     target.Health,
			})
			if target.Health == 0 {
				target.Dead = true
				target.Intent = motion.InputIntent{}
				events = append(events, messages.DeathEvent{
					VictimID: uint(target.NetID),
					KillerID: uint(attacker.NetID),
				})
			}
		}
	}
	return events
}
