package systems

import (
	"errors"
	"fmt"
	"math"

	"github.com/automoto/avatarsync/assets/animations"
	"github.com/automoto/avatarsync/components"
	"github.com/automoto/avatarsync/config"
	"github.com/automoto/avatarsync/shared/gamemath"
	"github.com/automoto/avatarsync/shared/motion"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

var (
	// ErrNotReady is returned when a transition is requested before the clip
	// library has finished loading. The request is dropped.
	ErrNotReady = errors.New("animation library not ready")
	// ErrIdleClipMissing is returned when neither the requested clip nor the
	// Idle fallback exists.
	ErrIdleClipMissing = errors.New("idle clip missing")
)

// SelectFromIntent picks the target state for the local avatar.
// Priority: attack, jump, cast, then movement, then idle.
func SelectFromIntent(in motion.InputIntent) config.StateID {
	switch {
	case in.Attack:
		return config.Attack
	case in.Jump:
		return config.Jump
	case in.CastSpell:
		return config.Cast
	}
	return movementState(in.Forward, in.Backward, in.Left, in.Right, in.Sprint)
}

// SelectFromMotion picks the target state for a remote avatar. One-shots come
// from the action flags echoed in the snapshot; locomotion is inferred from
// the rendered velocity in the avatar's own frame.
func SelectFromMotion(in motion.InputIntent, velocity gamemath.Vec3, yaw float64, cfg config.AnimationConfig) config.StateID {
	switch {
	case in.Attack:
		return config.Attack
	case in.Jump:
		return config.Jump
	case in.CastSpell:
		return config.Cast
	}

	speed := math.Hypot(velocity.X, velocity.Z)
	if speed < cfg.IdleSpeed {
		return config.Idle
	}
	lx, lz := gamemath.UnrotateYaw(velocity.X, velocity.Z, yaw)
	run := speed > cfg.RunSpeed
	if math.Abs(lz) >= math.Abs(lx) {
		return movementState(lz > 0, lz < 0, false, false, run)
	}
	return movementState(false, false, lx > 0, lx < 0, run)
}

func movementState(forward, backward, left, right, sprint bool) config.StateID {
	switch {
	case forward:
		if sprint {
			return config.RunForward
		}
		return config.WalkForward
	case backward:
		if sprint {
			return config.RunBack
		}
		return config.WalkBack
	case left:
		if sprint {
			return config.RunLeft
		}
		return config.WalkLeft
	case right:
		if sprint {
			return config.RunRight
		}
		return config.WalkRight
	}
	return config.Idle
}

// RequestAnimation asks for a transition to target. Requests for the state
// already playing are no-ops, a playing one-shot holds off looping states,
// and Death is terminal. A missing clip falls back to Idle.
func RequestAnimation(anim *components.AnimationData, target config.StateID, lib *animations.Library, cfg config.AnimationConfig) error {
	if !lib.Ready() {
		return ErrNotReady
	}
	if anim.Stopped || !target.Valid() {
		return nil
	}
	if anim.CurrentState == config.Death && anim.CurrentAnimation != nil {
		return nil
	}

	if target == anim.CurrentState && anim.CurrentAnimation != nil {
		if !target.IsOneShot() || !anim.CurrentAnimation.Finished() {
			return nil
		}
	}
	if anim.OneShot() && anim.Playing() && !target.IsOneShot() {
		return nil
	}

	requested := target
	clip, ok := lib.Clip(target)
	if !ok && target != config.Idle {
		target = config.Idle
		if anim.CurrentState == config.Idle && anim.CurrentAnimation != nil {
			return nil
		}
		clip, ok = lib.Clip(config.Idle)
	}
	if !ok {
		anim.CurrentState = config.Idle
		anim.CurrentAnimation = nil
		anim.FadeFrom = nil
		anim.Fade = nil
		anim.Weight = 0
		anim.Missing = true
		return fmt.Errorf("requested %s: %w", requested, ErrIdleClipMissing)
	}

	duration := cfg.CrossfadeDuration
	if target == config.Idle && anim.OneShot() {
		duration = cfg.IdleReturnCrossfade
	}
	transition(anim, target, clip, duration)
	return nil
}

// TriggerAnimation starts a server-driven one-shot (Damage, Death).
func TriggerAnimation(anim *components.AnimationData, state config.StateID, lib *animations.Library, cfg config.AnimationConfig) error {
	if !state.IsOneShot() {
		return fmt.Errorf("trigger %s: not a one-shot state", state)
	}
	return RequestAnimation(anim, state, lib, cfg)
}

func transition(anim *components.AnimationData, state config.StateID, clip *animations.Clip, duration float64) {
	if anim.CurrentAnimation != nil && duration > 0 {
		anim.FadeFrom = anim.CurrentAnimation
		anim.Fade = gween.New(0, 1, float32(duration), ease.Linear)
		anim.Weight = 0
	} else {
		anim.FadeFrom = nil
		anim.Fade = nil
		anim.Weight = 1
	}
	anim.CurrentAnimation = animations.NewAnimation(clip)
	// The state class decides playback, whatever the loader set on the clip.
	anim.CurrentAnimation.FreezeOnComplete = state.IsOneShot()
	anim.CurrentState = state
	anim.Missing = false
}

// UpdateAnimation advances the clip and any crossfade by dt. A finished
// one-shot returns to Idle on the same call, except Death which holds its
// last pose.
func UpdateAnimation(anim *components.AnimationData, dt float64, lib *animations.Library, cfg config.AnimationConfig) error {
	if anim.Stopped {
		return nil
	}

	if anim.Fade != nil {
		w, done := anim.Fade.Update(float32(dt))
		anim.Weight = float64(w)
		if done {
			anim.Fade = nil
			anim.FadeFrom = nil
			anim.Weight = 1
		} else if anim.FadeFrom != nil {
			anim.FadeFrom.Update(dt)
		}
	}

	if anim.CurrentAnimation == nil {
		return nil
	}
	anim.CurrentAnimation.Update(dt)

	if anim.OneShot() && anim.CurrentAnimation.Finished() && anim.CurrentState != config.Death {
		return RequestAnimation(anim, config.Idle, lib, cfg)
	}
	return nil
}

// StopAnimation halts playback for good. Used when the avatar is removed.
func StopAnimation(anim *components.AnimationData) {
	anim.Stopped = true
	anim.CurrentAnimation = nil
	anim.FadeFrom = nil
	anim.Fade = nil
	anim.Weight = 0
}
