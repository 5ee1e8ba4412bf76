package network

import (
	"log"

	"github.com/automoto/avatarsync/components"
	"github.com/automoto/avatarsync/shared/motion"
	"github.com/automoto/avatarsync/shared/netcomponents"
	"github.com/leap-fish/necs/esync"
)

// DecodeWorldSnapshot turns a synced world into a Frame. Entities missing
// either the transform or the player state are skipped.
func DecodeWorldSnapshot(snapshot esync.WorldSnapshot) Frame {
	var frame Frame
	for _, ent := range snapshot {
		var compData []any
		for _, componentBytes := range ent.State {
			instance, err := esync.Mapper.Deserialize(componentBytes)
			if err != nil {
				log.Printf("[client] Warning: entity %d component decode failed: %v", ent.Id, err)
				continue
			}
			compData = append(compData, instance)
		}

		snap, ok := snapshotFromComponents(ent.Id, compData)
		if !ok {
			continue
		}
		if snap.Tick > frame.Tick {
			frame.Tick = snap.Tick
		}
		frame.Avatars = append(frame.Avatars, snap)
	}
	return frame
}

func snapshotFromComponents(id esync.NetworkId, compData []any) (components.SnapshotData, bool) {
	var (
		transform    netcomponents.NetTransformData
		state        netcomponents.NetPlayerStateData
		hasTransform bool
		hasState     bool
	)
	for _, data := range compData {
		switch v := data.(type) {
		case netcomponents.NetTransformData:
			transform = v
			hasTransform = true
		case netcomponents.NetPlayerStateData:
			state = v
			hasState = true
		}
	}
	if !hasTransform || !hasState {
		return components.SnapshotData{}, false
	}

	return components.SnapshotData{
		NetworkID:      id,
		Position:       transform.Position(),
		Yaw:            transform.Yaw,
		Tick:           state.ServerTick,
		Intent:         motion.IntentFromActions(state.Actions),
		Health:         state.Health,
		LastSequence:   state.LastSequence,
		Username:       state.Username,
		CharacterClass: state.CharacterClass,
		Color:          state.Color,
		Valid:          true,
	}, true
}
