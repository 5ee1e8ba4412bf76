package animations

import "github.com/automoto/avatarsync/shared/netconfig"

// Clip is a playable animation handle returned by a Loader.
type Clip struct {
	State    netconfig.StateID
	Name     string
	Duration float64 // seconds per cycle
	Loop     bool
}

// Animation is one playback of a clip.
type Animation struct {
	Clip             *Clip
	elapsed          float64
	Looped           bool // Set once the clip has reached its end at least once
	FreezeOnComplete bool // If true, hold the last pose instead of looping
}

// Update advances playback by dt seconds.
func (a *Animation) Update(dt float64) {
	if a.Clip == nil || dt <= 0 {
		return
	}
	if a.FreezeOnComplete && a.Looped {
		return
	}
	a.elapsed += dt
	if a.elapsed < a.Clip.Duration {
		return
	}
	a.Looped = true
	if a.FreezeOnComplete || a.Clip.Duration <= 0 {
		// Stay on last pose
		a.elapsed = a.Clip.Duration
		return
	}
	for a.elapsed >= a.Clip.Duration {
		a.elapsed -= a.Clip.Duration
	}
}

// Time returns the playback position within the current cycle.
func (a *Animation) Time() float64 {
	return a.elapsed
}

// Finished reports whether a non-looping playback has reached its end.
func (a *Animation) Finished() bool {
	return a.FreezeOnComplete && a.Looped
}

func (a *Animation) Restart() {
	a.elapsed = 0
	a.Looped = false
}

func NewAnimation(clip *Clip) *Animation {
	return &Animation{
		Clip:             clip,
		FreezeOnComplete: clip != nil && !clip.Loop,
	}
}
