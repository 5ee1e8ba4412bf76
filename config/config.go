package config

import "image/color"

// MovementConfig contains local and server-side movement integration values.
// Client prediction and the server must use identical values or reconciliation
// will correct continuously.
type MovementConfig struct {
	BaseSpeed    float64 // units per second
	SprintFactor float64 // multiplier applied while sprint is held
	MaxStep      float64 // seconds; upper bound for a single integration step
}

// NetcodeConfig contains reconciliation and interpolation tuning.
type NetcodeConfig struct {
	// Reconciliation (local avatar)
	PositionToleranceSq float64 // squared distance before correcting
	YawTolerance        float64 // radians before correcting
	ReconcileFactor     float64 // fraction of the error removed per tick

	// Interpolation (remote avatars)
	InterpFactor    float64 // per-frame position blend toward the snapshot
	YawInterpFactor float64 // per-frame yaw blend toward the snapshot

	// Transport
	InboxSize      int     // buffered world snapshots between ticks
	EventInboxSize int     // buffered hit/death events between ticks
	ResendInterval float64 // seconds between unchanged input resends
	ResendBurst    int
}

// AnimationConfig contains selector and crossfade tuning.
type AnimationConfig struct {
	CrossfadeDuration   float64 // seconds
	IdleReturnCrossfade float64 // seconds, used after a one-shot finishes

	// Remote velocity thresholds (units per second)
	IdleSpeed float64
	RunSpeed  float64
}

// ServerConfig contains authoritative server defaults.
type ServerConfig struct {
	Name          string
	Port          uint
	TickRate      int
	SubstepRate   int // integration steps per second; server ticks are split into these
	MaxPlayers    int
	SpawnSpacing  float64
	SpawnOffsetX  float64
	SpawnHeight   float64
	StartHealth   int
	AttackDamage  int
	AttackRangeSq float64
	AppName       string // gdata storage namespace
}

// LocalConfig contains per-local-avatar pointer defaults.
type LocalConfig struct {
	PointerSensitivity float64 // radians per pixel
}

// Config holds general window configuration for the debug client.
type Config struct {
	Width  int
	Height int
	Scale  float64 // pixels per world unit in the top-down view
}

// Global configuration instances
var C *Config
var Movement MovementConfig
var Netcode NetcodeConfig
var Animation AnimationConfig
var Server ServerConfig
var Local LocalConfig

// Shared RGBA color constants
var (
	White       = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	Yellow      = color.RGBA{R: 255, G: 255, B: 0, A: 255}
	Orange      = color.RGBA{R: 255, G: 140, B: 0, A: 255}
	Red         = color.RGBA{R: 255, G: 0, B: 0, A: 255}
	BrightGreen = color.RGBA{R: 0, G: 255, B: 60, A: 255}
	LightGreen  = color.RGBA{R: 100, G: 255, B: 100, A: 255}
	Cyan        = color.RGBA{R: 0, G: 255, B: 255, A: 255}
	Magenta     = color.RGBA{R: 255, G: 0, B: 255, A: 255}
	Grey        = color.RGBA{R: 90, G: 90, B: 90, A: 255}
)

// NamedColors maps the server's palette names to draw colors.
var NamedColors = map[string]color.RGBA{
	"cyan":       Cyan,
	"magenta":    Magenta,
	"yellow":     Yellow,
	"lightgreen": LightGreen,
	"white":      White,
	"orange":     Orange,
}

func init() {
	C = &Config{
		Width:  640,
		Height: 360,
		Scale:  12,
	}

	Movement = MovementConfig{
		BaseSpeed:    5.0,
		SprintFactor: 1.8,
		MaxStep:      1.0 / 30.0,
	}

	Netcode = NetcodeConfig{
		PositionToleranceSq: 0.16,
		YawTolerance:        0.1,
		ReconcileFactor:     0.15,

		InterpFactor:    0.2,
		YawInterpFactor: 0.2,

		InboxSize:      8,
		EventInboxSize: 16,
		ResendInterval: 0.05,
		ResendBurst:    1,
	}

	Animation = AnimationConfig{
		CrossfadeDuration:   0.3,
		IdleReturnCrossfade: 0.1,
		IdleSpeed:           0.25,
		RunSpeed:            6.5,
	}

	Server = ServerConfig{
		Name:          "Avatar Server",
		Port:          7373,
		TickRate:      20,
		SubstepRate:   60,
		MaxPlayers:    16,
		SpawnSpacing:  5.0,
		SpawnOffsetX:  -2.5,
		SpawnHeight:   1.0,
		StartHealth:   100,
		AttackDamage:  25,
		AttackRangeSq: 4.0,
		AppName:       "avatarsync",
	}

	Local = LocalConfig{
		PointerSensitivity: 0.004,
	}
}
