package tags

import "github.com/yohamta/donburi"

var (
	Avatar       = donburi.NewTag().SetName("Avatar")
	LocalAvatar  = donburi.NewTag().SetName("LocalAvatar")
	RemoteAvatar = donburi.NewTag().SetName("RemoteAvatar")
)
