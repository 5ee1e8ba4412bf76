package config

// AnimationDef describes one clip as the default loader builds it.
type AnimationDef struct {
	Duration float64 // seconds; ignored for looping clips except as cycle length
	Loop     bool
}

// CharacterAnimations maps a character class to its clip definitions. A zero
// entry (Duration 0) means the class ships no clip for that state.
var CharacterAnimations = map[string][StateCount]AnimationDef{
	"wizard": {
		Idle:        {Duration: 2.0, Loop: true},
		WalkForward: {Duration: 1.0, Loop: true},
		WalkBack:    {Duration: 1.0, Loop: true},
		WalkLeft:    {Duration: 1.0, Loop: true},
		WalkRight:   {Duration: 1.0, Loop: true},
		RunForward:  {Duration: 0.7, Loop: true},
		RunBack:     {Duration: 0.7, Loop: true},
		RunLeft:     {Duration: 0.7, Loop: true},
		RunRight:    {Duration: 0.7, Loop: true},
		Jump:        {Duration: 0.8},
		Attack:      {Duration: 0.6},
		Cast:        {Duration: 1.1},
		Damage:      {Duration: 0.4},
		Death:       {Duration: 1.6},
	},
	"paladin": {
		Idle:        {Duration: 2.4, Loop: true},
		WalkForward: {Duration: 1.1, Loop: true},
		WalkBack:    {Duration: 1.1, Loop: true},
		WalkLeft:    {Duration: 1.1, Loop: true},
		WalkRight:   {Duration: 1.1, Loop: true},
		RunForward:  {Duration: 0.75, Loop: true},
		RunBack:     {Duration: 0.75, Loop: true},
		RunLeft:     {Duration: 0.75, Loop: true},
		RunRight:    {Duration: 0.75, Loop: true},
		Jump:        {Duration: 0.9},
		Attack:      {Duration: 0.7},
		Cast:        {Duration: 1.3},
		Damage:      {Duration: 0.45},
		Death:       {Duration: 1.8},
	},
}

// DefaultCharacterClass is used when a join request names an unknown class.
const DefaultCharacterClass = "wizard"
