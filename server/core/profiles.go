package core

import (
	"encoding/json"
	"log"
	"time"

	"github.com/quasilyte/gdata"
)

// SavedAvatar is a logged-out avatar kept for rejoin.
type SavedAvatar struct {
	Identity       string    `json:"identity"`
	Username       string    `json:"username"`
	CharacterClass string    `json:"characterClass"`
	X              float64   `json:"x"`
	Y              float64   `json:"y"`
	Z              float64   `json:"z"`
	Yaw            float64   `json:"yaw"`
	SavedAt        time.Time `json:"savedAt"`
}

// ItemStore is the subset of gdata.Manager used by ProfileStore.
type ItemStore interface {
	LoadItem(itemKey string) ([]byte, error)
	SaveItem(itemKey string, data []byte) error
	DeleteItem(itemKey string) error
}

// ProfileStore persists logged-out avatars by identity.
type ProfileStore struct {
	items ItemStore
}

// OpenProfileStore opens the gdata store for appName.
func OpenProfileStore(appName string) (*ProfileStore, error) {
	m, err := gdata.Open(gdata.Config{
		AppName: appName,
	})
	if err != nil {
		return nil, err
	}
	return NewProfileStore(m), nil
}

func NewProfileStore(items ItemStore) *ProfileStore {
	return &ProfileStore{items: items}
}

func profileKey(identity string) string {
	return "avatar_" + identity
}

// Load returns the saved avatar for identity, or nil when none exists.
func (p *ProfileStore) Load(identity string) (*SavedAvatar, error) {
	if p == nil || p.items == nil {
		return nil, nil
	}
	data, err := p.items.LoadItem(profileKey(identity))
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, nil
	}
	var saved SavedAvatar
	if err := json.Unmarshal(data, &saved); err != nil {
		return nil, err
	}
	if saved.Identity != identity {
		log.Printf("Warning: profile for %s names identity %s, ignoring", identity, saved.Identity)
		return nil, nil
	}
	return &saved, nil
}

// Save stores a logged-out avatar.
func (p *ProfileStore) Save(saved SavedAvatar) error {
	if p == nil || p.items == nil {
		return nil
	}
	data, err := json.Marshal(saved)
	if err != nil {
		return err
	}
	return p.items.SaveItem(profileKey(saved.Identity), data)
}

// Delete drops the saved avatar for identity once it is back in the world.
func (p *ProfileStore) Delete(identity string) error {
	if p == nil || p.items == nil {
		return nil
	}
	return p.items.DeleteItem(profileKey(identity))
}
