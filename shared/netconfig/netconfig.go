// Package netconfig defines lightweight types shared between client and server
// for network serialization. It must have zero dependencies on ebiten or any
// graphics library so the dedicated server binary stays headless.
package netconfig

// StateID identifies an avatar animation state. The set is closed: every
// table indexed by StateID is sized by StateCount.
type StateID int

const (
	StateNone StateID = -1

	// Looping states
	Idle StateID = iota - 1
	WalkForward
	WalkBack
	WalkLeft
	WalkRight
	RunForward
	RunBack
	RunLeft
	RunRight

	// One-shot states
	Jump
	Attack
	Cast
	Damage
	Death

	StateCount // Must be last - used for array sizing
)

// StateToFileName maps StateID to the clip name the asset loader knows it by.
var StateToFileName = [StateCount]string{
	Idle:        "idle",
	WalkForward: "walk_forward",
	WalkBack:    "walk_back",
	WalkLeft:    "walk_left",
	WalkRight:   "walk_right",
	RunForward:  "run_forward",
	RunBack:     "run_back",
	RunLeft:     "run_left",
	RunRight:    "run_right",
	Jump:        "jump",
	Attack:      "attack1",
	Cast:        "cast",
	Damage:      "damage",
	Death:       "death",
}

func (s StateID) Valid() bool {
	return s >= 0 && s < StateCount
}

func (s StateID) String() string {
	if s.Valid() {
		return StateToFileName[s]
	}
	return "unknown"
}

// IsOneShot reports whether the state plays once and reports completion.
func (s StateID) IsOneShot() bool {
	switch s {
	case Jump, Attack, Cast, Damage, Death:
		return true
	}
	return false
}

// ActionID represents a logical input action carried in PlayerInput.
type ActionID int

const (
	ActionMoveForward ActionID = iota
	ActionMoveBackward
	ActionMoveLeft
	ActionMoveRight
	ActionSprint
	ActionJump
	ActionAttack
	ActionCastSpell
	ActionCount // Must be last - used for array sizing
)

// AvatarColors is the round-robin palette assigned to joining avatars.
var AvatarColors = []string{"cyan", "magenta", "yellow", "lightgreen", "white", "orange"}
