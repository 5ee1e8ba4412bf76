package core

import (
	"errors"
	"testing"
	"time"
)

func TestTokenRoundTrip(t *testing.T) {
	ti := NewTokenIssuer("test-secret")
	id := NewIdentity()

	token, err := ti.Issue(id)
	if err != nil {
		t.Fatal(err)
	}
	got, err := ti.Verify(token)
	if err != nil {
		t.Fatal(err)
	}
	if got != id {
		t.Fatalf("identity = %q, want %q", got, id)
	}
}

func TestTokenRejected(t *testing.T) {
	ti := NewTokenIssuer("test-secret")
	other := NewTokenIssuer("other-secret")
	token, err := other.Issue(NewIdentity())
	if err != nil {
		t.Fatal(err)
	}

	expired := NewTokenIssuer("test-secret")
	expired.now = func() time.Time { return time.Now().Add(-2 * IdentityTTL) }
	old, err := expired.Issue(NewIdentity())
	if err != nil {
		t.Fatal(err)
	}

	notUUID, err := ti.Issue("not-a-uuid")
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name  string
		token string
	}{
		{"garbage", "not.a.token"},
		{"wrong key", token},
		{"expired", old},
		{"bad identity", notUUID},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ti.Verify(tt.token); !errors.Is(err, ErrInvalidToken) {
				t.Fatalf("err = %v, want ErrInvalidToken", err)
			}
		})
	}
}
