package network

import "github.com/automoto/avatarsync/components"

// Frame is one decoded world snapshot. Tick is the highest server tick
// carried by any avatar in it.
type Frame struct {
	Tick    uint64
	Avatars []components.SnapshotData
}

// Inbox is a bounded hand-off between the network goroutine and the frame
// loop. Push never blocks: when full, the oldest frame is discarded so the
// newest one always gets in.
type Inbox struct {
	ch chan Frame
}

func NewInbox(size int) *Inbox {
	if size < 1 {
		size = 1
	}
	return &Inbox{ch: make(chan Frame, size)}
}

// Push enqueues a frame, evicting the oldest when full. Safe for one
// producer and one consumer.
func (i *Inbox) Push(f Frame) {
	for {
		select {
		case i.ch <- f:
			return
		default:
		}
		select { // drain stale, retry
		case <-i.ch:
		default:
		}
	}
}

// Drain returns every queued frame in arrival order. Non-blocking.
func (i *Inbox) Drain() []Frame {
	return drainChan(i.ch)
}

// Len reports the number of queued frames.
func (i *Inbox) Len() int {
	return len(i.ch)
}
