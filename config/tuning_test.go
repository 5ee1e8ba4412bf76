package config

import "testing"

func TestTuningApply(t *testing.T) {
	savedMovement, savedNetcode, savedServer := Movement, Netcode, Server
	defer func() {
		Movement, Netcode, Server = savedMovement, savedNetcode, savedServer
	}()

	doc := []byte(`
movement:
  base_speed: 7.5
  max_step_hz: 20
netcode:
  reconcile_factor: 0.3
server:
  tick_rate_hz: 30
`)
	tuning, err := ParseTuning(doc)
	if err != nil {
		t.Fatalf("ParseTuning: %v", err)
	}
	tuning.Apply()

	if Movement.BaseSpeed != 7.5 {
		t.Errorf("BaseSpeed = %v, want 7.5", Movement.BaseSpeed)
	}
	if Movement.MaxStep != 1.0/20 {
		t.Errorf("MaxStep = %v, want 0.05", Movement.MaxStep)
	}
	if Movement.SprintFactor != savedMovement.SprintFactor {
		t.Errorf("SprintFactor changed to %v though not in the file", Movement.SprintFactor)
	}
	if Netcode.ReconcileFactor != 0.3 {
		t.Errorf("ReconcileFactor = %v, want 0.3", Netcode.ReconcileFactor)
	}
	if Netcode.PositionToleranceSq != savedNetcode.PositionToleranceSq {
		t.Errorf("PositionToleranceSq changed to %v", Netcode.PositionToleranceSq)
	}
	if Server.TickRate != 30 {
		t.Errorf("TickRate = %v, want 30", Server.TickRate)
	}
}

func TestParseTuningRejectsGarbage(t *testing.T) {
	if _, err := ParseTuning([]byte("movement: [1, 2")); err == nil {
		t.Fatal("expected error for malformed YAML")
	}
	if _, err := ParseTuning([]byte("movement:\n  max_step_hz: -5\n")); err == nil {
		t.Fatal("expected error for negative step rate")
	}
}

func TestParseTuningBlendFactorRange(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		wantErr bool
	}{
		{"reconcile above one", "netcode:\n  reconcile_factor: 1.5\n", true},
		{"interp above one", "netcode:\n  interp_factor: 2\n", true},
		{"yaw interp negative", "netcode:\n  yaw_interp_factor: -0.1\n", true},
		{"exactly one", "netcode:\n  reconcile_factor: 1\n", false},
		{"in range", "netcode:\n  interp_factor: 0.5\n  yaw_interp_factor: 0.25\n", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseTuning([]byte(tt.doc))
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseTuning err = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestCharacterAnimationsCoverIdle(t *testing.T) {
	for class, defs := range CharacterAnimations {
		if defs[Idle].Duration <= 0 || !defs[Idle].Loop {
			t.Errorf("class %q: idle clip must exist and loop", class)
		}
		for state, def := range defs {
			if def.Duration > 0 && def.Loop == StateID(state).IsOneShot() {
				t.Errorf("class %q: %v loop flag disagrees with state class", class, StateID(state))
			}
		}
	}
}
