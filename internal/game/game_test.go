package game

import (
	"math/rand"
	"testing"
	"time"

	"github.com/iburimskiy/petal-letter/internal/config"
	"github.com/iburimskiy/petal-letter/internal/scene"
	"github.com/iburimskiy/petal-letter/internal/sched"
)

type fakeTrack struct {
	volume float64
	level  float64
}

func (f *fakeTrack) Play() error         { return nil }
func (f *fakeTrack) Pause()              {}
func (f *fakeTrack) Rewind() error       { return nil }
func (f *fakeTrack) Close() error        { return nil }
func (f *fakeTrack) SetVolume(v float64) { f.volume = v }
func (f *fakeTrack) Level() float64      { return f.level }

func newTestGame(t *testing.T) (*Game, *fakeTrack) {
	t.Helper()
	cfg := config.DefaultScene()
	cfg.Lines = []string{"hello"}
	s := sched.New()
	track := &fakeTrack{volume: -1, level: 1}
	open := func() (scene.Track, error) { return track, nil }
	m := scene.NewManager(cfg, s, rand.New(rand.NewSource(7)), open, scene.Viewport{Width: 1000, Height: 800})
	return New(m, s, config.NewSettingsManager(nil), false), track
}

func (g *Game) tickFor(d time.Duration) {
	for elapsed := time.Duration(0); elapsed < d; elapsed += config.FrameDuration {
		g.sched.Tick(config.FrameDuration)
		g.syncTrack()
	}
}

func TestPointerRouting(t *testing.T) {
	g, _ := newTestGame(t)

	// Outside the play button: nothing happens.
	g.handlePointer(10, 10)
	if g.scene.State().Started {
		t.Fatal("click outside the play button started the scene")
	}

	g.handlePointer(500, 400)
	if !g.scene.State().Started {
		t.Fatal("play button did not start the scene")
	}

	g.tickFor(time.Second)
	paper := g.scene.Paper()
	if paper == nil {
		t.Fatal("paper not created")
	}

	g.handlePointer(paper.X+5, paper.Y+5)
	if !paper.Letter().Active() {
		t.Fatal("clicking the paper did not open the letter")
	}

	card := cardRect(g.scene.Viewport())
	g.handlePointer(card.X+card.W/2, card.Y+card.H/2)
	if !paper.Letter().Active() {
		t.Fatal("click inside the card closed the letter")
	}

	g.handlePointer(card.X-5, card.Y-5)
	if paper.Letter().Active() {
		t.Fatal("click outside the card did not close the letter")
	}

	g.handlePointer(paper.X+5, paper.Y+5)
	cr := closeRect(card)
	g.handlePointer(cr.X+1, cr.Y+1)
	if paper.Letter().Active() {
		t.Fatal("close button did not close the letter")
	}
}

func TestSyncTrackAppliesVolume(t *testing.T) {
	g, track := newTestGame(t)
	g.scene.Start()
	g.tickFor(time.Second)

	if track.volume != config.DefaultVolume {
		t.Errorf("volume: got %v, want %v", track.volume, config.DefaultVolume)
	}
	if g.level <= 0 || g.level > 1 {
		t.Errorf("level: got %v, want in (0, 1]", g.level)
	}

	g.settings.ToggleMute()
	g.applyVolume()
	if track.volume != 0 {
		t.Errorf("volume when muted: got %v, want 0", track.volume)
	}
}

func TestLayoutTracksOutsideSize(t *testing.T) {
	g, _ := newTestGame(t)
	w, h := g.Layout(640, 480)
	if w != 640 || h != 480 {
		t.Errorf("Layout: got %dx%d, want 640x480", w, h)
	}
	if g.width != 640 || g.height != 480 {
		t.Errorf("stored size: got %dx%d", g.width, g.height)
	}
}
