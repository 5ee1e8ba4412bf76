package archetypes

import (
	"github.com/automoto/avatarsync/components"
	"github.com/automoto/avatarsync/tags"
	"github.com/yohamta/donburi"
)

var (
	LocalAvatar = newArchetype(
		tags.Avatar,
		tags.LocalAvatar,
		components.Avatar,
		components.Predicted,
		components.Intent,
		components.LocalContext,
		components.Snapshot,
		components.Health,
		components.Animation,
	)
	RemoteAvatar = newArchetype(
		tags.Avatar,
		tags.RemoteAvatar,
		components.Avatar,
		components.Snapshot,
		components.RemoteRender,
		components.Health,
		components.Animation,
	)
)

type archetype struct {
	components []donburi.IComponentType
}

func newArchetype(cs ...donburi.IComponentType) *archetype {
	return &archetype{
		components: cs,
	}
}

func (a *archetype) Spawn(world donburi.World, cs ...donburi.IComponentType) *donburi.Entry {
	e := world.Entry(world.Create(
		append(a.components, cs...)...,
	))
	return e
}
