// Package input reads the keyboard and mouse through ebiten and translates
// them into device-independent key codes for the session.
package input

import (
	"github.com/automoto/avatarsync/config"
	"github.com/automoto/avatarsync/systems"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

var keyMap = [config.KeyCount]ebiten.Key{
	config.KeyW:     ebiten.KeyW,
	config.KeyA:     ebiten.KeyA,
	config.KeyS:     ebiten.KeyS,
	config.KeyD:     ebiten.KeyD,
	config.KeyUp:    ebiten.KeyArrowUp,
	config.KeyDown:  ebiten.KeyArrowDown,
	config.KeyLeft:  ebiten.KeyArrowLeft,
	config.KeyRight: ebiten.KeyArrowRight,
	config.KeyShift: ebiten.KeyShift,
	config.KeySpace: ebiten.KeySpace,
	config.KeyE:     ebiten.KeyE,
	config.KeyQ:     ebiten.KeyQ,
}

var mouseMap = map[config.Key]ebiten.MouseButton{
	config.MouseLeft:  ebiten.MouseButtonLeft,
	config.MouseRight: ebiten.MouseButtonRight,
}

// EbitenDevice polls ebiten once per frame. Clicking the window captures the
// pointer and Escape releases it; pointer motion only turns the avatar while
// captured.
type EbitenDevice struct {
	lastX    int
	hasLastX bool
}

func NewEbitenDevice() *EbitenDevice {
	return &EbitenDevice{}
}

func (d *EbitenDevice) Poll() systems.DeviceState {
	var st systems.DeviceState

	d.updateCapture()
	st.PointerLocked = ebiten.CursorMode() == ebiten.CursorModeCaptured

	for k := config.Key(0); k < config.KeyCount; k++ {
		if btn, ok := mouseMap[k]; ok {
			// The click that captures the pointer is not an attack.
			st.Pressed[k] = st.PointerLocked && ebiten.IsMouseButtonPressed(btn)
			continue
		}
		st.Pressed[k] = ebiten.IsKeyPressed(keyMap[k])
	}

	x, _ := ebiten.CursorPosition()
	if d.hasLastX && st.PointerLocked {
		st.PointerDX = float64(x - d.lastX)
	}
	d.lastX = x
	d.hasLastX = true

	return st
}

func (d *EbitenDevice) updateCapture() {
	switch ebiten.CursorMode() {
	case ebiten.CursorModeCaptured:
		if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
			ebiten.SetCursorMode(ebiten.CursorModeVisible)
		}
	default:
		if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
			ebiten.SetCursorMode(ebiten.CursorModeCaptured)
			d.hasLastX = false
		}
	}
}
