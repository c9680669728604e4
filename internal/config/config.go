package config

import "time"

const (
	WindowWidth  = 1024
	WindowHeight = 768
	WindowTitle  = "Petals - click play, then the paper. R: reset, M: mute, Esc/Q: quit"

	// Ticks per second; every per-frame speed below assumes this rate.
	TPS           = 60
	FrameDuration = time.Second / TPS

	// Gate play button
	ButtonRadius = 40

	// Ground line as a fraction of viewport height
	GroundRatio      = 0.9
	GroundStripRatio = 0.1

	// Petal population
	DesktopMinWidth   = 768
	DesktopPetalCount = 20
	MobilePetalCount  = 10

	// Petal spawn ranges
	PetalMinSize    = 10
	PetalSizeRange  = 15
	PetalMinSpeed   = 1
	PetalSpeedRange = 2
	PetalMaxWobble  = 1
	PetalOvershoot  = 100

	// Paper geometry
	PaperWidth        = 60
	PaperHeight       = 80
	PaperStartY       = -100
	PaperMaxWobble    = 0.25
	PaperGroundMargin = 40

	// Letter card
	CardMaxWidth  = 560
	CardMaxHeight = 440
	CardMargin    = 20
	CloseSize     = 24
	HeartCount    = 4

	DefaultVolume = 0.5
	VolumeStep    = 0.1

	AppName = "petal_letter"
)

// PetalCount returns how many petals a viewport of the given width keeps falling.
func PetalCount(width float64) int {
	if width < DesktopMinWidth {
		return MobilePetalCount
	}
	return DesktopPetalCount
}
