package scenes

import (
	"fmt"
	"image/color"

	"github.com/automoto/avatarsync/config"
	"github.com/automoto/avatarsync/fonts"
	"github.com/automoto/avatarsync/systems"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text" //nolint:staticcheck // TODO: migrate to text/v2
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const (
	hudBarWidth  = 130
	hudBarHeight = 13
	hudMargin    = 10
	hudLine      = 14
)

// drawHUD renders the local health bar in the top-left corner with session
// diagnostics underneath.
func drawHUD(screen *ebiten.Image, local systems.RenderFrame, hasLocal bool, stats systems.Stats, server string, pointerLocked bool) {
	y := hudMargin
	if hasLocal && local.MaxHealth > 0 {
		// Background (dark gray)
		vector.DrawFilledRect(screen,
			float32(hudMargin), float32(y),
			float32(hudBarWidth), float32(hudBarHeight),
			color.RGBA{40, 40, 40, 255}, false)

		// Current HP (green)
		ratio := float32(local.Health) / float32(local.MaxHealth)
		vector.DrawFilledRect(screen,
			float32(hudMargin), float32(y),
			float32(hudBarWidth)*ratio, float32(hudBarHeight),
			color.RGBA{40, 220, 40, 255}, false)
		y += hudBarHeight
	}

	face := fonts.HUD.Get()
	lines := []string{
		server,
		fmt.Sprintf("avatars %d  tick %d", stats.Avatars, stats.ServerTick),
		fmt.Sprintf("corrections %d  err %.3f", stats.Corrections, stats.LastPredictionError),
		fmt.Sprintf("pending inputs %d", stats.PendingInputs),
	}
	if !pointerLocked {
		lines = append(lines, "click to capture the mouse, Esc to release")
	}
	for _, l := range lines {
		y += hudLine
		text.Draw(screen, l, face, hudMargin, y, config.White)
	}
}
