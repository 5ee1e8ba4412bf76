package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Tuning is the on-disk override file. Zero or missing fields keep the
// compiled-in defaults.
type Tuning struct {
	Movement struct {
		BaseSpeed    float64 `yaml:"base_speed"`
		SprintFactor float64 `yaml:"sprint_factor"`
		MaxStepHz    float64 `yaml:"max_step_hz"`
	} `yaml:"movement"`

	Netcode struct {
		PositionToleranceSq float64 `yaml:"position_tolerance_sq"`
		YawTolerance        float64 `yaml:"yaw_tolerance"`
		ReconcileFactor     float64 `yaml:"reconcile_factor"`
		InterpFactor        float64 `yaml:"interp_factor"`
		YawInterpFactor     float64 `yaml:"yaw_interp_factor"`
	} `yaml:"netcode"`

	Animation struct {
		CrossfadeDuration   float64 `yaml:"crossfade_duration"`
		IdleReturnCrossfade float64 `yaml:"idle_return_crossfade"`
		IdleSpeed           float64 `yaml:"idle_speed"`
		RunSpeed            float64 `yaml:"run_speed"`
	} `yaml:"animation"`

	Server struct {
		TickRate   int `yaml:"tick_rate_hz"`
		MaxPlayers int `yaml:"max_players"`
	} `yaml:"server"`
}

// ParseTuning decodes a tuning document.
func ParseTuning(raw []byte) (Tuning, error) {
	var t Tuning
	if err := yaml.Unmarshal(raw, &t); err != nil {
		return t, fmt.Errorf("tuning: %w", err)
	}
	if t.Movement.MaxStepHz < 0 {
		return t, fmt.Errorf("tuning: max_step_hz must be positive, got %v", t.Movement.MaxStepHz)
	}
	// Blend factors above 1 overshoot the target; zero keeps the default.
	factors := []struct {
		name string
		v    float64
	}{
		{"reconcile_factor", t.Netcode.ReconcileFactor},
		{"interp_factor", t.Netcode.InterpFactor},
		{"yaw_interp_factor", t.Netcode.YawInterpFactor},
	}
	for _, f := range factors {
		if f.v < 0 || f.v > 1 {
			return t, fmt.Errorf("tuning: %s must be in (0, 1], got %v", f.name, f.v)
		}
	}
	return t, nil
}

// LoadTuning reads a YAML tuning file and applies it to the global config.
func LoadTuning(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	t, err := ParseTuning(raw)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	t.Apply()
	return nil
}

// Apply copies every non-zero field onto the global config.
func (t Tuning) Apply() {
	setFloat(&Movement.BaseSpeed, t.Movement.BaseSpeed)
	setFloat(&Movement.SprintFactor, t.Movement.SprintFactor)
	if t.Movement.MaxStepHz > 0 {
		Movement.MaxStep = 1 / t.Movement.MaxStepHz
	}

	setFloat(&Netcode.PositionToleranceSq, t.Netcode.PositionToleranceSq)
	setFloat(&Netcode.YawTolerance, t.Netcode.YawTolerance)
	setFloat(&Netcode.ReconcileFactor, t.Netcode.ReconcileFactor)
	setFloat(&Netcode.InterpFactor, t.Netcode.InterpFactor)
	setFloat(&Netcode.YawInterpFactor, t.Netcode.YawInterpFactor)

	setFloat(&Animation.CrossfadeDuration, t.Animation.CrossfadeDuration)
	setFloat(&Animation.IdleReturnCrossfade, t.Animation.IdleReturnCrossfade)
	setFloat(&Animation.IdleSpeed, t.Animation.IdleSpeed)
	setFloat(&Animation.RunSpeed, t.Animation.RunSpeed)

	if t.Server.TickRate > 0 {
		Server.TickRate = t.Server.TickRate
	}
	if t.Server.MaxPlayers > 0 {
		Server.MaxPlayers = t.Server.MaxPlayers
	}
}

func setFloat(dst *float64, v float64) {
	if v > 0 {
		*dst = v
	}
}
