package components

import (
	"github.com/automoto/avatarsync/assets/animations"
	"github.com/automoto/avatarsync/config"
	"github.com/tanema/gween"
	"github.com/yohamta/donburi"
)

// AnimationData is one avatar's animation state. The animation systems are
// its only writer.
type AnimationData struct {
	CurrentState     config.StateID
	CurrentAnimation *animations.Animation // nil when no clip could be resolved
	FadeFrom         *animations.Animation // Outgoing clip while crossfading
	Fade             *gween.Tween          // Weight of CurrentAnimation over FadeFrom
	Weight           float64
	Stopped          bool
	Missing          bool // Idle clip missing was already reported
}

// OneShot reports whether the current clip plays once.
func (a *AnimationData) OneShot() bool {
	return a.CurrentState.IsOneShot()
}

// Playing reports whether a clip is bound and still producing motion.
func (a *AnimationData) Playing() bool {
	return !a.Stopped && a.CurrentAnimation != nil && !a.CurrentAnimation.Finished()
}

// Crossfading reports whether an outgoing clip is still blended in.
func (a *AnimationData) Crossfading() bool {
	return a.FadeFrom != nil && a.Fade != nil
}

var Animation = donburi.NewComponentType[AnimationData]()
