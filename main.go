package main

import (
	_ "embed"
	"errors"
	"flag"
	"log"
	"math/rand"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/iburimskiy/petal-letter/internal/audio"
	"github.com/iburimskiy/petal-letter/internal/config"
	"github.com/iburimskiy/petal-letter/internal/game"
	"github.com/iburimskiy/petal-letter/internal/scene"
	"github.com/iburimskiy/petal-letter/internal/sched"
)

//go:embed assets/letter.yaml
var defaultScene []byte

func main() {
	var (
		configPath string
		seed       int64
		choose     bool
		debug      bool
		mute       bool
	)
	flag.StringVar(&configPath, "config", "", "scene YAML overriding the built-in letter")
	flag.Int64Var(&seed, "seed", 0, "random seed (0 = time based)")
	flag.BoolVar(&choose, "choose", false, "pick the song with a file dialog")
	flag.BoolVar(&debug, "debug", false, "show the debug status line")
	flag.BoolVar(&mute, "mute", false, "start muted for this session")
	flag.Parse()

	cfg := loadScene(configPath)

	if choose {
		path, err := audio.Choose()
		switch {
		case err != nil:
			log.Printf("[Main] File dialog failed: %v", err)
		case path != "":
			log.Printf("[Main] Using song %s", path)
			cfg.Audio = path
		}
	}

	settings := config.OpenSettings(config.AppName)
	if mute {
		settings.MuteForSession()
	}

	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	openTrack := func() (scene.Track, error) {
		p, err := audio.Open(cfg.Audio, settings.Settings().EffectiveVolume())
		if err != nil {
			return nil, err
		}
		return p, nil
	}

	s := sched.New()
	m := scene.NewManager(cfg, s, rng, openTrack, scene.Viewport{
		Width:  config.WindowWidth,
		Height: config.WindowHeight,
	})
	g := game.New(m, s, settings, debug)

	ebiten.SetWindowSize(config.WindowWidth, config.WindowHeight)
	ebiten.SetWindowTitle(config.WindowTitle)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(config.TPS)

	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatalf("[Main] %v", err)
	}
}

// loadScene returns the scene at path, falling back to the embedded letter
// when path is empty or cannot be loaded.
func loadScene(path string) *config.Scene {
	if path != "" {
		cfg, err := config.LoadScene(path)
		if err == nil {
			return cfg
		}
		log.Printf("[Main] %v (using built-in letter)", err)
	}
	cfg, err := config.ParseScene(defaultScene)
	if err != nil {
		log.Fatalf("[Main] built-in letter: %v", err)
	}
	return cfg
}
