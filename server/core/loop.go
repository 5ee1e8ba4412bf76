package core

import (
	"log"
	"sync/atomic"
	"time"

	"github.com/leap-fish/necs/esync/srvsync"
)

type GameLoop struct {
	server   *Server
	tickRate int
	running  atomic.Bool
	stopChan chan struct{}
	done     chan struct{}
}

func NewGameLoop(server *Server, tickRate int) *GameLoop {
	return &GameLoop{
		server:   server,
		tickRate: tickRate,
		stopChan: make(chan struct{}),
		done:     make(chan struct{}),
	}
}

func (g *GameLoop) Run() {
	g.running.Store(true)
	defer close(g.done)
	ticker := time.NewTicker(time.Second / time.Duration(g.tickRate))
	defer ticker.Stop()

	log.Printf("[server] game loop started at %d ticks/second", g.tickRate)

	for {
		select {
		case <-g.stopChan:
			log.Println("[server] game loop stopped")
			return
		case <-ticker.C:
			g.tick()
		}
	}
}

// Stop ends the loop and waits for the current tick to finish.
func (g *GameLoop) Stop() {
	close(g.stopChan)
	if g.running.Load() {
		<-g.done
	}
}

func (g *GameLoop) tick() {
	s := g.server
	s.ProcessCommands()

	s.tick++
	for _, evt := range s.sim.Step(1 / float64(g.tickRate)) {
		s.broadcast(evt)
	}
	s.syncWorld()

	if err := srvsync.DoSync(); err != nil {
		log.Printf("[server] sync error: %v", err)
	}
}
