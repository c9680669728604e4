package scene

import (
	"log"

	"github.com/iburimskiy/petal-letter/internal/config"
	"github.com/iburimskiy/petal-letter/internal/sched"
)

// Paper is the single falling letter. It carries the song and opens the
// letter overlay when clicked. X and Y are the top-left corner.
type Paper struct {
	X, Y     float64
	Rotation float64
	Speed    float64
	Wobble   float64
	Label    string

	manager *Manager
	track   Track
	letter  *Letter
	task    *sched.Task
	landed  bool
	removed bool
}

func newPaper(m *Manager) *Paper {
	log.Printf("[Paper] Creating paper")
	p := &Paper{
		Label:   m.cfg.Label,
		manager: m,
		letter:  newLetter(m.sched, m.cfg),
	}
	p.openTrack()
	p.reset()
	p.fall()
	p.playTrack()
	return p
}

func (p *Paper) openTrack() {
	if p.manager.openTrack == nil {
		log.Printf("[Paper] No audio configured")
		return
	}
	track, err := p.manager.openTrack()
	if err != nil {
		log.Printf("[Paper] Audio error: path=%s err=%v", p.manager.cfg.Audio, err)
		return
	}
	p.track = track
	log.Printf("[Paper] Audio loaded: %s", p.manager.cfg.Audio)
}

func (p *Paper) playTrack() {
	if p.track == nil {
		return
	}
	if err := p.track.Play(); err != nil {
		log.Printf("[Paper] Play error: path=%s err=%v", p.manager.cfg.Audio, err)
	}
}

// reset puts the paper back above the top edge and recomputes its speed so it
// reaches the ground in exactly Timing.PaperFall.
func (p *Paper) reset() {
	m := p.manager
	p.X = m.view.Width / 2
	p.Y = config.PaperStartY
	p.Rotation = 0
	p.landed = false

	distance := m.view.Ground() - config.PaperStartY
	frames := m.cfg.Timing.PaperFall.Seconds() * config.TPS
	p.Speed = distance / frames
	p.Wobble = m.rng.Float64()*2*config.PaperMaxWobble - config.PaperMaxWobble
}

func (p *Paper) fall() {
	p.task.Cancel()
	p.task = p.manager.sched.NextFrame(p.update)
}

func (p *Paper) update() {
	m := p.manager
	if m.state.Resizing {
		// Parked until the resize settles; relayout restarts the fall.
		p.task = nil
		return
	}

	p.Y += p.Speed
	p.X += p.Wobble
	p.Rotation += p.Wobble

	ground := m.view.Ground()
	if p.Y > ground {
		p.land(ground)
		return
	}
	p.fall()
}

func (p *Paper) land(ground float64) {
	p.landed = true
	p.Y = ground - config.PaperGroundMargin
	p.task = nil
	log.Printf("[Paper] Landed at y=%.1f", p.Y)
}

// relayout adapts the paper to a new viewport once a resize has settled.
func (p *Paper) relayout() {
	m := p.manager
	if !p.landed {
		p.reset()
		p.fall()
		return
	}

	rest := m.view.Ground() - config.PaperGroundMargin
	p.X = clamp(p.X, 0, max(0, m.view.Width-config.PaperWidth))
	if p.Y < rest {
		// The ground moved down; let the paper fall onto it.
		p.landed = false
		p.fall()
		return
	}
	p.Y = rest
}

// Click opens the letter unless a resize is in progress.
func (p *Paper) Click() {
	if p.manager.state.Resizing {
		log.Printf("[Paper] Interaction blocked - resizing")
		return
	}
	p.letter.Open()
}

// Contains reports whether the point lies on the paper.
func (p *Paper) Contains(x, y float64) bool {
	return x >= p.X && x < p.X+config.PaperWidth &&
		y >= p.Y && y < p.Y+config.PaperHeight
}

// Landed reports whether the paper has reached the ground.
func (p *Paper) Landed() bool { return p.landed }

// Removed reports whether the paper has been destroyed.
func (p *Paper) Removed() bool { return p.removed }

// Letter returns the overlay the paper opens.
func (p *Paper) Letter() *Letter { return p.letter }

// Track returns the paper's audio, or nil when none could be opened.
func (p *Paper) Track() Track { return p.track }

func (p *Paper) destroy() {
	p.task.Cancel()
	p.task = nil
	p.letter.Close()
	if p.track != nil {
		p.track.Pause()
		if err := p.track.Rewind(); err != nil {
			log.Printf("[Paper] Rewind error: %v", err)
		}
		if err := p.track.Close(); err != nil {
			log.Printf("[Paper] Close error: %v", err)
		}
		p.track = nil
	}
	p.removed = true
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
