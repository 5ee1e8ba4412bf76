package core

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/automoto/avatarsync/config"
	"github.com/automoto/avatarsync/shared/gamemath"
	"github.com/automoto/avatarsync/shared/netconfig"
)

const maxUsernameLen = 16

// SpawnPoint places the next avatar in a row along X, based on how many
// avatars are already active.
func SpawnPoint(active int, cfg config.ServerConfig) gamemath.Vec3 {
	return gamemath.Vec3{
		X: float64(active)*cfg.SpawnSpacing + cfg.SpawnOffsetX,
		Y: cfg.SpawnHeight,
		Z: 0,
	}
}

// ColorFor returns the n-th palette colour, cycling.
func ColorFor(n int) string {
	if n < 0 {
		n = -n
	}
	return netconfig.AvatarColors[n%len(netconfig.AvatarColors)]
}

// SanitizeUsername trims a requested name and falls back to "Player N".
func SanitizeUsername(name string, n int) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Sprintf("Player %d", n)
	}
	if utf8.RuneCountInString(name) > maxUsernameLen {
		name = string([]rune(name)[:maxUsernameLen])
	}
	return name
}

// ResolveClass returns class when it has animation definitions, otherwise
// the default class.
func ResolveClass(class string) string {
	if _, ok := config.CharacterAnimations[class]; ok {
		return class
	}
	return config.DefaultCharacterClass
}
