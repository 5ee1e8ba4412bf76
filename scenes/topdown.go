package scenes

import (
	"fmt"
	"image/color"

	"github.com/automoto/avatarsync/config"
	"github.com/automoto/avatarsync/fonts"
	"github.com/automoto/avatarsync/shared/gamemath"
	"github.com/automoto/avatarsync/systems"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text" //nolint:staticcheck // TODO: migrate to text/v2
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/yohamta/donburi/ecs"
)

const (
	avatarRadius  = 0.5 // world units
	gridSpacing   = 5.0 // world units
	nameBarWidth  = 30
	nameBarHeight = 3
)

var (
	gridColor   = color.RGBA{30, 30, 30, 255}
	barBack     = color.RGBA{40, 40, 40, 255}
	barFill     = color.RGBA{40, 220, 40, 255}
	deadColor   = config.Grey
	facingColor = config.White
)

// TopDownView renders avatar frames as circles seen from above, centered on
// the local avatar. +Z points up the screen and +X points left, so an avatar
// at yaw 0 faces up and its left is screen-left.
type TopDownView struct {
	scale  float64
	frames []systems.RenderFrame
	local  int // index into frames, -1 when absent
}

func NewTopDownView(scale float64) *TopDownView {
	return &TopDownView{scale: scale, local: -1}
}

// Begin discards the frames of the previous tick.
func (v *TopDownView) Begin() {
	v.frames = v.frames[:0]
	v.local = -1
}

func (v *TopDownView) Render(f systems.RenderFrame) {
	v.frames = append(v.frames, f)
	if f.Local {
		v.local = len(v.frames) - 1
	}
}

// Local returns the local avatar's frame from the last tick, if any.
func (v *TopDownView) Local() (systems.RenderFrame, bool) {
	if v.local < 0 {
		return systems.RenderFrame{}, false
	}
	return v.frames[v.local], true
}

func (v *TopDownView) camera() gamemath.Vec3 {
	if f, ok := v.Local(); ok {
		return f.Position
	}
	return gamemath.Vec3{}
}

// project maps a world position to screen pixels.
func (v *TopDownView) project(p, cam gamemath.Vec3, w, h int) (float32, float32) {
	x := float64(w)/2 - (p.X-cam.X)*v.scale
	y := float64(h)/2 - (p.Z-cam.Z)*v.scale
	return float32(x), float32(y)
}

func (v *TopDownView) DrawWorld(_ *ecs.ECS, screen *ebiten.Image) {
	w, h := screen.Bounds().Dx(), screen.Bounds().Dy()
	cam := v.camera()

	v.drawGrid(screen, cam, w, h)
	for i := range v.frames {
		v.drawAvatar(screen, &v.frames[i], cam, w, h)
	}
}

func (v *TopDownView) drawGrid(screen *ebiten.Image, cam gamemath.Vec3, w, h int) {
	step := float32(gridSpacing * v.scale)
	if step < 4 {
		return
	}
	ox, oy := v.project(gamemath.Vec3{}, cam, w, h)
	for x := mod32(ox, step); x < float32(w); x += step {
		vector.StrokeLine(screen, x, 0, x, float32(h), 1, gridColor, false)
	}
	for y := mod32(oy, step); y < float32(h); y += step {
		vector.StrokeLine(screen, 0, y, float32(w), y, 1, gridColor, false)
	}
}

func (v *TopDownView) drawAvatar(screen *ebiten.Image, f *systems.RenderFrame, cam gamemath.Vec3, w, h int) {
	x, y := v.project(f.Position, cam, w, h)
	// Airborne avatars draw slightly larger.
	r := float32((avatarRadius + f.Position.Y*0.1) * v.scale)

	clr, ok := config.NamedColors[f.Color]
	if !ok {
		clr = config.White
	}
	if f.Health <= 0 {
		clr = deadColor
	}
	vector.DrawFilledCircle(screen, x, y, r, clr, true)
	if f.Local {
		vector.StrokeCircle(screen, x, y, r+2, 1, config.BrightGreen, true)
	}

	fx, fz := gamemath.RotateYaw(0, 1, f.Yaw)
	tip := gamemath.Vec3{X: f.Position.X + fx*avatarRadius*2, Z: f.Position.Z + fz*avatarRadius*2}
	tx, ty := v.project(tip, cam, w, h)
	vector.StrokeLine(screen, x, y, tx, ty, 2, facingColor, true)

	face := fonts.Label.Get()
	label := f.Username
	if label == "" {
		label = fmt.Sprintf("#%d", f.NetworkID)
	}
	text.Draw(screen, label, face, int(x)-nameBarWidth/2, int(y-r)-8, config.White)
	text.Draw(screen, stateLabel(f), face, int(x)-nameBarWidth/2, int(y+r)+14, config.Grey)

	if f.MaxHealth > 0 {
		bx, by := x-nameBarWidth/2, y-r-6
		vector.DrawFilledRect(screen, bx, by, nameBarWidth, nameBarHeight, barBack, false)
		ratio := float32(f.Health) / float32(f.MaxHealth)
		vector.DrawFilledRect(screen, bx, by, nameBarWidth*ratio, nameBarHeight, barFill, false)
	}
}

func stateLabel(f *systems.RenderFrame) string {
	if f.Clip == nil {
		return f.State.String() + " (no clip)"
	}
	if f.FadeFrom != nil {
		return fmt.Sprintf("%s <- %s %.0f%%", f.State, f.FadeFrom.State, f.Weight*100)
	}
	return f.State.String()
}

func mod32(a, m float32) float32 {
	for a < 0 {
		a += m
	}
	for a >= m {
		a -= m
	}
	return a
}
