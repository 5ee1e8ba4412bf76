package systems

import (
	"encoding/json"
	"log"

	"github.com/quasilyte/gdata"
)

// SavedProfile is the client identity stored between runs.
type SavedProfile struct {
	PlayerName         string  `json:"playerName"`
	CharacterClass     string  `json:"characterClass"`
	IdentityToken      string  `json:"identityToken"`
	PointerSensitivity float64 `json:"pointerSensitivity"`
}

// ItemStore is the subset of gdata.Manager used for persistence.
type ItemStore interface {
	LoadItem(itemKey string) ([]byte, error)
	SaveItem(itemKey string, data []byte) error
}

const profileKey = "profile"

var store ItemStore

// InitPersistence opens the gdata store for the client profile.
func InitPersistence(appName string) error {
	m, err := gdata.Open(gdata.Config{
		AppName: appName,
	})
	if err != nil {
		log.Printf("Warning: Could not initialize persistence: %v", err)
		return err
	}
	store = m
	return nil
}

// UseStore replaces the backing store. A nil store disables persistence.
func UseStore(s ItemStore) {
	store = s
}

// LoadProfile loads the saved profile. It returns nil, nil when nothing was
// saved or persistence is unavailable.
func LoadProfile() (*SavedProfile, error) {
	if store == nil {
		return nil, nil
	}

	data, err := store.LoadItem(profileKey)
	if err != nil {
		log.Printf("Warning: Could not load profile: %v", err)
		return nil, nil
	}
	if len(data) == 0 {
		return nil, nil
	}

	var p SavedProfile
	if err := json.Unmarshal(data, &p); err != nil {
		log.Printf("Warning: Could not parse saved profile: %v", err)
		return nil, err
	}
	return &p, nil
}

// SaveProfile writes the profile to disk.
func SaveProfile(p *SavedProfile) error {
	if store == nil || p == nil {
		return nil
	}

	data, err := json.Marshal(p)
	if err != nil {
		log.Printf("Warning: Could not serialize profile: %v", err)
		return err
	}

	if err := store.SaveItem(profileKey, data); err != nil {
		log.Printf("Warning: Could not save profile: %v", err)
		return err
	}
	return nil
}
