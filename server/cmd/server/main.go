package main

import (
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/automoto/avatarsync/config"
	"github.com/automoto/avatarsync/server/core"
	"github.com/automoto/avatarsync/shared/messages"
	"github.com/automoto/avatarsync/shared/protocol"
)

func main() {
	port := flag.Uint("port", config.Server.Port, "Server port")
	tickRate := flag.Int("tickrate", config.Server.TickRate, "Server tick rate (updates per second)")
	name := flag.String("name", config.Server.Name, "Server display name")
	version := flag.String("version", messages.Version, "Required client version (empty = accept any)")
	maxPlayers := flag.Int("maxplayers", config.Server.MaxPlayers, "Maximum joined avatars")
	secret := flag.String("secret", "", "Identity token signing key (default $AVATARSYNC_SECRET)")
	tuning := flag.String("tuning", "", "Optional YAML tuning file")
	noPersist := flag.Bool("no-persist", false, "Do not persist logged-out avatars")
	flag.Parse()

	if *tuning != "" {
		if err := config.LoadTuning(*tuning); err != nil {
			log.Fatalf("Failed to load tuning: %v", err)
		}
	}

	if err := protocol.RegisterComponents(); err != nil {
		log.Fatalf("Failed to register components: %v", err)
	}

	var profiles *core.ProfileStore
	if !*noPersist {
		p, err := core.OpenProfileStore(config.Server.AppName)
		if err != nil {
			log.Printf("Warning: Could not initialize persistence: %v", err)
		} else {
			profiles = p
		}
	}

	server := core.NewServer(core.Options{
		Name:       *name,
		Version:    *version,
		TickRate:   *tickRate,
		MaxPlayers: *maxPlayers,
		Secret:     *secret,
		Profiles:   profiles,
	})

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		log.Println("Shutting down server...")
		server.Stop()
		os.Exit(0)
	}()

	log.Printf("Starting avatar server %q on port %d (tick rate: %d/s, version: %q)",
		*name, *port, *tickRate, *version)
	if err := server.Start(*port); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
