package animations

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"sync/atomic"

	"github.com/automoto/avatarsync/config"
	"github.com/automoto/avatarsync/shared/netconfig"
)

// ErrClipMissing is returned by loaders that have no clip for a state.
var ErrClipMissing = errors.New("animation clip missing")

// Loader produces a playable clip for a state. Implementations may block;
// Library always calls them off the frame loop.
type Loader interface {
	Load(state netconfig.StateID) (*Clip, error)
}

// LoaderFunc adapts a function to Loader.
type LoaderFunc func(state netconfig.StateID) (*Clip, error)

func (f LoaderFunc) Load(state netconfig.StateID) (*Clip, error) {
	return f(state)
}

// DefLoader builds clips from config.CharacterAnimations for one class.
type DefLoader struct {
	Class string
}

func (d DefLoader) Load(state netconfig.StateID) (*Clip, error) {
	defs, ok := config.CharacterAnimations[d.Class]
	if !ok {
		return nil, fmt.Errorf("class %q: %w", d.Class, ErrClipMissing)
	}
	if !state.Valid() {
		return nil, fmt.Errorf("state %d: %w", state, ErrClipMissing)
	}
	def := defs[state]
	if def.Duration <= 0 {
		return nil, fmt.Errorf("class %q state %s: %w", d.Class, state, ErrClipMissing)
	}
	return &Clip{
		State:    state,
		Name:     d.Class + "/" + netconfig.StateToFileName[state],
		Duration: def.Duration,
		Loop:     def.Loop,
	}, nil
}

// Library holds the clips for one skeleton, indexed by state. Loading runs in
// the background; Ready is the only way the frame loop observes completion.
type Library struct {
	clips [netconfig.StateCount]*Clip
	errs  [netconfig.StateCount]error
	ready atomic.Bool
	done  chan struct{}
}

// NewLibrary dispatches one load per state and returns immediately.
func NewLibrary(loader Loader) *Library {
	l := &Library{done: make(chan struct{})}
	go l.loadAll(loader)
	return l
}

func (l *Library) loadAll(loader Loader) {
	var wg sync.WaitGroup
	for s := netconfig.StateID(0); s < netconfig.StateCount; s++ {
		wg.Add(1)
		go func(state netconfig.StateID) {
			defer wg.Done()
			clip, err := loader.Load(state)
			if err == nil && clip == nil {
				err = ErrClipMissing
			}
			if err != nil {
				l.errs[state] = err
				log.Printf("[animation] clip %s unavailable: %v", state, err)
				return
			}
			l.clips[state] = clip
		}(s)
	}
	wg.Wait()
	l.ready.Store(true)
	close(l.done)
}

// Ready reports whether loading has completed. Non-blocking.
func (l *Library) Ready() bool {
	return l != nil && l.ready.Load()
}

// Wait blocks until loading completes or ctx is done. For tools and tests;
// the frame loop uses Ready.
func (l *Library) Wait(ctx context.Context) error {
	select {
	case <-l.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Clip returns the clip for a state. It reports false while loading is still
// in flight or when the state failed to load.
func (l *Library) Clip(state netconfig.StateID) (*Clip, bool) {
	if !l.Ready() || !state.Valid() {
		return nil, false
	}
	c := l.clips[state]
	return c, c != nil
}

// Err returns the load error recorded for a state, if any.
func (l *Library) Err(state netconfig.StateID) error {
	if !l.Ready() || !state.Valid() {
		return nil
	}
	return l.errs[state]
}
