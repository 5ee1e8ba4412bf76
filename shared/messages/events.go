package messages

// HitEvent is broadcast when an attack connects
type HitEvent struct {
	AttackerID uint // NetworkId of attacker
	TargetID   uint // NetworkId of target
	Damage     int
	Health     int // Target health after the hit
}

// DeathEvent is broadcast when an avatar's health reaches zero
type DeathEvent struct {
	VictimID uint // NetworkId of victim
	KillerID uint // NetworkId of killer (0 if environmental)
}
