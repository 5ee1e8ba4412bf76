package systems

import (
	"errors"
	"log"
	"time"

	"github.com/automoto/avatarsync/components"
	"github.com/automoto/avatarsync/network"
	"github.com/automoto/avatarsync/shared/messages"
	"github.com/automoto/avatarsync/tags"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/filter"
)

// InputPublisher sends a local input to the server. changed marks inputs
// that differ from the last one sent; unchanged inputs may be rate limited.
type InputPublisher interface {
	PublishInput(input messages.PlayerInput, changed bool) (bool, error)
}

var localPublishQuery = donburi.NewQuery(filter.Contains(
	tags.LocalAvatar,
	components.Intent,
	components.LocalContext,
	components.Predicted,
))

// PublishIntent sends the local avatar's intent and yaw. Every input that
// goes out is logged in buf with the position predicted for it.
func PublishIntent(w donburi.World, pub InputPublisher, buf *network.PredictionBuffer, now time.Time) {
	if pub == nil {
		return
	}
	localPublishQuery.Each(w, func(e *donburi.Entry) {
		it := components.Intent.Get(e)
		lc := components.LocalContext.Get(e)
		pred := components.Predicted.Get(e)

		input := messages.NewPlayerInput(lc.Sequence + 1)
		input.Actions = it.Current.Actions()
		input.Yaw = pred.Yaw
		input.Timestamp = now.UnixMilli()

		sent, err := pub.PublishInput(input, it.Changed() || lc.YawDirty)
		if err != nil {
			if !errors.Is(err, network.ErrNotConnected) {
				log.Printf("[netinput] send error: %v", err)
			}
			return
		}
		if !sent {
			return
		}

		lc.Sequence = input.Sequence
		lc.YawDirty = false
		if buf != nil {
			buf.Store(input, pred.Position)
		}
	})
}
