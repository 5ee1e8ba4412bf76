package systems

import (
	"github.com/automoto/avatarsync/assets/animations"
	"github.com/automoto/avatarsync/components"
	"github.com/automoto/avatarsync/config"
	"github.com/automoto/avatarsync/shared/gamemath"
	"github.com/automoto/avatarsync/tags"
	"github.com/leap-fish/necs/esync"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/filter"
)

// RenderFrame is everything a renderer needs to draw one avatar this frame.
// Clip is nil when no clip could be resolved.
type RenderFrame struct {
	NetworkID esync.NetworkId
	Username  string
	Color     string
	Local     bool

	Position gamemath.Vec3
	Yaw      float64

	State        config.StateID
	Clip         *animations.Clip
	ClipTime     float64
	FadeFrom     *animations.Clip // Outgoing clip while crossfading
	FadeFromTime float64
	Weight       float64 // Blend weight of Clip over FadeFrom

	Health    int
	MaxHealth int
}

// Renderer is a sink for resolved avatar frames. It never feeds back into
// the simulation.
type Renderer interface {
	Render(RenderFrame)
}

var renderQuery = donburi.NewQuery(filter.Contains(
	tags.Avatar,
	components.Avatar,
	components.Animation,
	components.Health,
))

// EmitFrames hands every drawable avatar to r. Local avatars render their
// predicted transform, remote avatars their interpolated one.
func EmitFrames(w donburi.World, r Renderer) {
	renderQuery.Each(w, func(e *donburi.Entry) {
		frame, ok := BuildFrame(e)
		if ok {
			r.Render(frame)
		}
	})
}

// BuildFrame resolves one avatar entry. It reports false for remote avatars
// that have not received a snapshot yet.
func BuildFrame(e *donburi.Entry) (RenderFrame, bool) {
	av := components.Avatar.Get(e)
	anim := components.Animation.Get(e)
	health := components.Health.Get(e)

	frame := RenderFrame{
		NetworkID: av.NetworkID,
		Username:  av.Username,
		Color:     av.Color,
		Local:     av.Local,
		State:     anim.CurrentState,
		Weight:    anim.Weight,
		Health:    health.Current,
		MaxHealth: health.Max,
	}

	switch {
	case e.HasComponent(components.Predicted):
		pred := components.Predicted.Get(e)
		frame.Position = pred.Position
		frame.Yaw = pred.Yaw
	case e.HasComponent(components.RemoteRender):
		rr := components.RemoteRender.Get(e)
		if !rr.Initialized {
			return RenderFrame{}, false
		}
		frame.Position = rr.Position
		frame.Yaw = rr.Yaw
	default:
		return RenderFrame{}, false
	}

	if anim.CurrentAnimation != nil {
		frame.Clip = anim.CurrentAnimation.Clip
		frame.ClipTime = anim.CurrentAnimation.Time()
	}
	if anim.Crossfading() {
		frame.FadeFrom = anim.FadeFrom.Clip
		frame.FadeFromTime = anim.FadeFrom.Time()
	}
	return frame, true
}
