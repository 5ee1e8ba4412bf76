package systems

import (
	"context"
	"testing"
	"time"

	"github.com/automoto/avatarsync/assets/animations"
	"github.com/automoto/avatarsync/config"
	"github.com/automoto/avatarsync/network"
	"github.com/automoto/avatarsync/shared/messages"
	"github.com/automoto/avatarsync/shared/netconfig"
)

const clipDuration = 0.5

func testLoader(missing ...config.StateID) animations.Loader {
	skip := make(map[config.StateID]bool, len(missing))
	for _, s := range missing {
		skip[s] = true
	}
	return animations.LoaderFunc(func(s netconfig.StateID) (*animations.Clip, error) {
		if skip[s] {
			return nil, animations.ErrClipMissing
		}
		return &animations.Clip{State: s, Name: s.String(), Duration: clipDuration, Loop: !s.IsOneShot()}, nil
	})
}

func readyLibrary(t *testing.T, missing ...config.StateID) *animations.Library {
	t.Helper()
	lib := animations.NewLibrary(testLoader(missing...))
	waitReady(t, lib)
	return lib
}

func waitReady(t *testing.T, lib *animations.Library) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := lib.Wait(ctx); err != nil {
		t.Fatalf("library did not load: %v", err)
	}
}

// pendingLibrary never finishes loading until the test ends.
func pendingLibrary(t *testing.T) *animations.Library {
	t.Helper()
	release := make(chan struct{})
	t.Cleanup(func() { close(release) })
	return animations.NewLibrary(animations.LoaderFunc(func(s netconfig.StateID) (*animations.Clip, error) {
		<-release
		return nil, animations.ErrClipMissing
	}))
}

type fakeTransport struct {
	inbox  *network.Inbox
	joins  []messages.JoinAccepted
	hits   []messages.HitEvent
	deaths []messages.DeathEvent
	sent   []messages.PlayerInput
}

func newFakeTransport() *fakeTransport {
	return &fakeTransport{inbox: network.NewInbox(8)}
}

func (f *fakeTransport) PublishInput(in messages.PlayerInput, changed bool) (bool, error) {
	if !changed && len(f.sent) > 0 {
		return false, nil
	}
	f.sent = append(f.sent, in)
	return true, nil
}

func (f *fakeTransport) Inbox() *network.Inbox { return f.inbox }

func (f *fakeTransport) PollJoin() (messages.JoinAccepted, bool) {
	if len(f.joins) == 0 {
		return messages.JoinAccepted{}, false
	}
	msg := f.joins[0]
	f.joins = f.joins[1:]
	return msg, true
}

func (f *fakeTransport) DrainHits() []messages.HitEvent {
	out := f.hits
	f.hits = nil
	return out
}

func (f *fakeTransport) DrainDeaths() []messages.DeathEvent {
	out := f.deaths
	f.deaths = nil
	return out
}

type fakeDevice struct {
	state DeviceState
}

func (d *fakeDevice) Poll() DeviceState {
	s := d.state
	d.state.PointerDX = 0
	return s
}

type recordRenderer struct {
	frames []RenderFrame
}

func (r *recordRenderer) Render(f RenderFrame) {
	r.frames = append(r.frames, f)
}
