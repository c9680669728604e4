// Package game adapts the scene to ebiten: it feeds input and viewport size
// in, ticks the scheduler once per update and draws the scene.
package game

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/iburimskiy/petal-letter/internal/config"
	"github.com/iburimskiy/petal-letter/internal/scene"
	"github.com/iburimskiy/petal-letter/internal/sched"
)

const smoothingFactor = 0.6

type volumeSetter interface {
	SetVolume(v float64)
}

type leveler interface {
	Level() float64
}

// Game implements ebiten.Game.
type Game struct {
	scene    *scene.Manager
	sched    *sched.Scheduler
	settings *config.SettingsManager
	debug    bool

	width, height int
	time          float64
	level         float64
	track         scene.Track
}

// New wires a game around an already constructed scene.
func New(m *scene.Manager, s *sched.Scheduler, settings *config.SettingsManager, debug bool) *Game {
	view := m.Viewport()
	return &Game{
		scene:    m,
		sched:    s,
		settings: settings,
		debug:    debug,
		width:    int(view.Width),
		height:   int(view.Height),
	}
}

func (g *Game) Update() error {
	if anyKeyJustPressed(ebiten.KeyEscape, ebiten.KeyQ) {
		return ebiten.Termination
	}
	g.handleKeys()

	if g.width > 0 && g.height > 0 {
		g.scene.Resize(float64(g.width), float64(g.height))
	}
	if pressed, x, y := justPressed(); pressed {
		g.handlePointer(float64(x), float64(y))
	}

	g.sched.Tick(config.FrameDuration)
	g.syncTrack()
	g.time += 1.0 / config.TPS
	return nil
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.width, g.height = outsideWidth, outsideHeight
	return outsideWidth, outsideHeight
}

func (g *Game) handleKeys() {
	switch {
	case anyKeyJustPressed(ebiten.KeyR):
		g.scene.Reset()
	case anyKeyJustPressed(ebiten.KeyM):
		muted := g.settings.ToggleMute()
		log.Printf("[Game] Muted: %v", muted)
		g.applyVolume()
	case anyKeyJustPressed(ebiten.KeyEqual, ebiten.KeyNumpadAdd):
		g.settings.SetVolume(g.settings.Settings().Volume + config.VolumeStep)
		g.applyVolume()
	case anyKeyJustPressed(ebiten.KeyMinus, ebiten.KeyNumpadSubtract):
		g.settings.SetVolume(g.settings.Settings().Volume - config.VolumeStep)
		g.applyVolume()
	}
}

// handlePointer routes a click or tap: the play button before the session
// starts, the open letter's card while it is shown, otherwise the paper.
func (g *Game) handlePointer(x, y float64) {
	view := g.scene.Viewport()
	if !g.scene.State().Started {
		if playButtonContains(view, x, y) {
			g.scene.Start()
		}
		return
	}

	paper := g.scene.Paper()
	if paper == nil {
		return
	}
	letter := paper.Letter()
	if letter.Active() {
		card := cardRect(view)
		if closeRect(card).contains(x, y) || !card.contains(x, y) {
			letter.Close()
		}
		return
	}
	if paper.Contains(x, y) {
		paper.Click()
	}
}

// syncTrack applies the saved volume to a newly created paper's track and
// follows its loudness for the heart pulse.
func (g *Game) syncTrack() {
	var track scene.Track
	if paper := g.scene.Paper(); paper != nil {
		track = paper.Track()
	}
	if track != g.track {
		g.track = track
		g.applyVolume()
	}

	lvl := 0.0
	if l, ok := track.(leveler); ok {
		lvl = l.Level()
	}
	g.level = smoothingFactor*g.level + (1-smoothingFactor)*lvl
}

func (g *Game) applyVolume() {
	if v, ok := g.track.(volumeSetter); ok {
		v.SetVolume(g.settings.Settings().EffectiveVolume())
	}
}
