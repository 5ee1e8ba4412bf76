package components

import (
	"github.com/automoto/avatarsync/shared/motion"
	"github.com/yohamta/donburi"
)

// IntentData stores the current and previous tick's intent for the local
// avatar.
type IntentData struct {
	Current  motion.InputIntent
	Previous motion.InputIntent
}

// Changed reports whether the intent differs from last tick.
func (i *IntentData) Changed() bool {
	return i.Current != i.Previous
}

var Intent = donburi.NewComponentType[IntentData]()
