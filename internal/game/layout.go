package game

import (
	"math"

	"github.com/iburimskiy/petal-letter/internal/config"
	"github.com/iburimskiy/petal-letter/internal/scene"
)

type rect struct {
	X, Y, W, H float64
}

func (r rect) contains(x, y float64) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// playButton returns the centre and radius of the gate's play button.
func playButton(view scene.Viewport) (cx, cy, r float64) {
	return view.Width / 2, view.Height / 2, config.ButtonRadius
}

func playButtonContains(view scene.Viewport, x, y float64) bool {
	cx, cy, r := playButton(view)
	return math.Hypot(x-cx, y-cy) <= r
}

// cardRect is the letter card, centred and kept inside the viewport margin.
func cardRect(view scene.Viewport) rect {
	w := math.Max(0, math.Min(config.CardMaxWidth, view.Width-2*config.CardMargin))
	h := math.Max(0, math.Min(config.CardMaxHeight, view.Height-2*config.CardMargin))
	return rect{X: (view.Width - w) / 2, Y: (view.Height - h) / 2, W: w, H: h}
}

// closeRect is the close control in the card's top-right corner.
func closeRect(card rect) rect {
	const inset = 8
	return rect{
		X: card.X + card.W - config.CloseSize - inset,
		Y: card.Y + inset,
		W: config.CloseSize,
		H: config.CloseSize,
	}
}
