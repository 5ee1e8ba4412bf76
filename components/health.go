package components

import "github.com/yohamta/donburi"

type HealthData struct {
	Current int
	Max     int
}

// Dead reports whether health has been exhausted.
func (h *HealthData) Dead() bool {
	return h.Current <= 0
}

var Health = donburi.NewComponentType[HealthData]()
