package core

import (
	"testing"
	"time"
)

type memItems map[string][]byte

func (m memItems) LoadItem(key string) ([]byte, error) { return m[key], nil }

func (m memItems) SaveItem(key string, data []byte) error {
	m[key] = data
	return nil
}

func (m memItems) DeleteItem(key string) error {
	delete(m, key)
	return nil
}

func TestProfileStore(t *testing.T) {
	items := memItems{}
	store := NewProfileStore(items)
	id := NewIdentity()

	if got, err := store.Load(id); got != nil || err != nil {
		t.Fatalf("Load of unknown identity = %v, %v", got, err)
	}

	saved := SavedAvatar{
		Identity:       id,
		Username:       "ada",
		CharacterClass: "paladin",
		X:              1,
		Y:              2,
		Z:              3,
		Yaw:            1.5,
		SavedAt:        time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}
	if err := store.Save(saved); err != nil {
		t.Fatal(err)
	}
	got, err := store.Load(id)
	if err != nil || got == nil {
		t.Fatalf("Load = %v, %v", got, err)
	}
	if got.Username != "ada" || got.CharacterClass != "paladin" || got.Yaw != 1.5 || !got.SavedAt.Equal(saved.SavedAt) {
		t.Fatalf("Load = %+v, want %+v", got, saved)
	}

	if err := store.Delete(id); err != nil {
		t.Fatal(err)
	}
	if got, err := store.Load(id); got != nil || err != nil {
		t.Fatalf("Load after Delete = %v, %v", got, err)
	}
	if err := store.Delete(id); err != nil {
		t.Fatalf("second Delete: %v", err)
	}

	items[profileKey(id)] = []byte("{")
	if _, err := store.Load(id); err == nil {
		t.Fatal("expected a parse error for a corrupt profile")
	}
}

func TestNilProfileStore(t *testing.T) {
	var store *ProfileStore
	if err := store.Save(SavedAvatar{Identity: "x"}); err != nil {
		t.Fatal(err)
	}
	if got, err := store.Load("x"); got != nil || err != nil {
		t.Fatalf("Load = %v, %v", got, err)
	}
	if err := store.Delete("x"); err != nil {
		t.Fatal(err)
	}
}
