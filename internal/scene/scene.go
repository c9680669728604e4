// Package scene holds the falling-petal animation state: the manager, the
// petals, the paper and its letter. It has no display or audio dependencies;
// everything time-based runs on a sched.Scheduler and every random value comes
// from an injected *rand.Rand.
package scene

import "github.com/iburimskiy/petal-letter/internal/config"

// Track is the audio handle the paper owns.
type Track interface {
	Play() error
	Pause()
	Rewind() error
	Close() error
}

// TrackOpener opens the paper's song. It is called once per paper.
type TrackOpener func() (Track, error)

// Viewport is the drawable area in logical pixels.
type Viewport struct {
	Width  float64
	Height float64
}

// Ground is the y coordinate below which falling objects have landed.
func (v Viewport) Ground() float64 {
	return v.Height * config.GroundRatio
}
