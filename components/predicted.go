package components

import (
	"github.com/automoto/avatarsync/shared/motion"
	"github.com/yohamta/donburi"
)

// PredictedData is the local avatar's predicted transform. Only the predictor
// and reconciler write it; snapshots never overwrite it.
type PredictedData struct {
	motion.PredictedState
}

var Predicted = donburi.NewComponentType[PredictedData]()
