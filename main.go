package main

import (
	"flag"
	"image"
	"log"
	"os"

	"github.com/automoto/avatarsync/config"
	"github.com/automoto/avatarsync/fonts"
	"github.com/automoto/avatarsync/network"
	"github.com/automoto/avatarsync/scenes"
	"github.com/automoto/avatarsync/shared/messages"
	"github.com/automoto/avatarsync/shared/protocol"
	"github.com/automoto/avatarsync/systems"
	"github.com/hajimehoshi/ebiten/v2"
)

type Scene interface {
	Update()
	Draw(screen *ebiten.Image)
}

type Game struct {
	bounds image.Rectangle
	scene  Scene
}

// ChangeScene switches to a new scene
func (g *Game) ChangeScene(scene interface{}) {
	g.scene = scene.(Scene)
}

func NewGame(client *network.Client, opts scenes.ConnectOptions) *Game {
	g := &Game{
		bounds: image.Rectangle{},
	}
	g.scene = scenes.NewConnectScene(g, client, opts)
	return g
}

func (g *Game) Update() error {
	g.scene.Update()
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.scene.Draw(screen)
}

func (g *Game) Layout(width, height int) (int, int) {
	g.bounds = image.Rect(0, 0, config.C.Width, config.C.Height)
	return config.C.Width, config.C.Height
}

// loadFonts replaces the built-in bitmap face with a TrueType font, if given.
func loadFonts(path string) {
	if path == "" {
		return
	}
	ttf, err := os.ReadFile(path)
	if err != nil {
		log.Printf("Warning: Could not read font: %v", err)
		return
	}
	if err := fonts.LoadFont(fonts.Label, ttf); err != nil {
		log.Printf("Warning: %v", err)
		return
	}
	_ = fonts.LoadFontWithSize(fonts.HUD, ttf, 12)
	_ = fonts.LoadFontWithSize(fonts.Title, ttf, 32)
}

func main() {
	addr := flag.String("addr", "localhost:7373", "Server address (host:port)")
	name := flag.String("name", "", "Player name (default: saved profile)")
	class := flag.String("class", "", "Character class (default: saved profile)")
	tuning := flag.String("tuning", "", "Optional YAML tuning file")
	fontPath := flag.String("font", "", "Optional TrueType font for labels")
	flag.Parse()

	if *tuning != "" {
		if err := config.LoadTuning(*tuning); err != nil {
			log.Fatalf("Failed to load tuning: %v", err)
		}
	}

	// Register network components for client-side deserialization
	if err := protocol.RegisterComponents(); err != nil {
		log.Fatalf("Failed to register network components: %v", err)
	}

	// Initialize persistence and load the saved profile
	if err := systems.InitPersistence(config.Server.AppName); err != nil {
		log.Printf("Warning: Could not initialize persistence: %v", err)
	}
	profile, _ := systems.LoadProfile()
	if profile == nil {
		profile = &systems.SavedProfile{PlayerName: "Player", CharacterClass: config.DefaultCharacterClass}
	}
	if *name != "" {
		profile.PlayerName = *name
	}
	if *class != "" {
		profile.CharacterClass = *class
	}
	if profile.PointerSensitivity > 0 {
		config.Local.PointerSensitivity = profile.PointerSensitivity
	} else {
		profile.PointerSensitivity = config.Local.PointerSensitivity
	}
	_ = systems.SaveProfile(profile)

	loadFonts(*fontPath)

	opts := scenes.ConnectOptions{
		Address: *addr,
		Join: messages.JoinRequest{
			Version:        messages.Version,
			PlayerName:     profile.PlayerName,
			CharacterClass: profile.CharacterClass,
			IdentityToken:  profile.IdentityToken,
		},
		OnIdentity: func(token string) {
			profile.IdentityToken = token
			_ = systems.SaveProfile(profile)
		},
	}

	ebiten.SetWindowSize(config.C.Width*2, config.C.Height*2)
	ebiten.SetWindowTitle("avatarsync")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeOnlyFullscreenEnabled)

	if err := ebiten.RunGame(NewGame(network.NewClient(), opts)); err != nil {
		log.Fatal(err)
	}
}
