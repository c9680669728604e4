package scene

import (
	"github.com/iburimskiy/petal-letter/internal/config"
	"github.com/iburimskiy/petal-letter/internal/sched"
)

// PetalState is where a petal is in its life.
type PetalState int

const (
	PetalFalling PetalState = iota
	PetalLanded
	PetalRemoved
)

func (s PetalState) String() string {
	switch s {
	case PetalFalling:
		return "falling"
	case PetalLanded:
		return "landed"
	case PetalRemoved:
		return "removed"
	}
	return "unknown"
}

// Petal is one falling petal. X and Y are the top-left corner.
type Petal struct {
	X, Y     float64
	Size     float64
	Rotation float64 // degrees
	Speed    float64 // px per frame
	Wobble   float64 // px (and degrees) per frame
	State    PetalState

	manager *Manager
	task    *sched.Task
}

func newPetal(m *Manager) *Petal {
	size := m.rng.Float64()*config.PetalSizeRange + config.PetalMinSize
	return &Petal{
		Size:     size,
		X:        m.rng.Float64() * m.view.Width,
		Y:        -size,
		Rotation: m.rng.Float64() * 360,
		Speed:    m.rng.Float64()*config.PetalSpeedRange + config.PetalMinSpeed,
		Wobble:   m.rng.Float64()*2*config.PetalMaxWobble - config.PetalMaxWobble,
		State:    PetalFalling,
		manager:  m,
	}
}

func (p *Petal) fall() {
	p.task = p.manager.sched.NextFrame(p.update)
}

func (p *Petal) update() {
	m := p.manager
	if m.state.Resizing {
		m.RemoveParticle(p)
		return
	}

	p.Y += p.Speed
	p.X += p.Wobble
	p.Rotation += p.Wobble

	ground := m.view.Ground()
	switch {
	case p.Y > ground+config.PetalOvershoot:
		m.RemoveParticle(p)
	case p.Y > ground:
		p.land()
	default:
		p.fall()
	}
}

func (p *Petal) land() {
	m := p.manager
	p.State = PetalLanded
	m.RemoveParticle(p)
	m.addLanded(p)
	m.AddParticle()
}

// LandedPetal is the resting copy of a petal on the ground strip.
// Bottom is the distance from the bottom edge of the viewport.
type LandedPetal struct {
	X        float64
	Bottom   float64
	Size     float64
	Rotation float64
	Alpha    float64

	manager *Manager
	task    *sched.Task
}

func newLandedPetal(m *Manager, p *Petal) *LandedPetal {
	return &LandedPetal{
		X:        p.X,
		Bottom:   m.rng.Float64() * m.view.Height * config.GroundStripRatio,
		Size:     p.Size,
		Rotation: m.rng.Float64() * 360,
		Alpha:    1,
		manager:  m,
	}
}

func (lp *LandedPetal) hold() {
	lp.task = lp.manager.sched.After(lp.manager.cfg.Timing.LandedHold, lp.fadeOut)
}

func (lp *LandedPetal) fadeOut() {
	m := lp.manager
	if m.state.Resizing {
		m.dropLanded(lp)
		return
	}
	start := m.sched.Now()
	fade := m.cfg.Timing.LandedFade
	lp.task = m.sched.Every(config.FrameDuration, func() bool {
		elapsed := m.sched.Now() - start
		if elapsed >= fade {
			lp.Alpha = 0
			m.dropLanded(lp)
			return false
		}
		lp.Alpha = 1 - float64(elapsed)/float64(fade)
		return true
	})
}

// Y returns the top edge of a landed petal in a viewport of height h.
func (lp *LandedPetal) Y(h float64) float64 {
	return h - lp.Bottom - lp.Size
}

