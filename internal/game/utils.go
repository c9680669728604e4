package game

import (
	"fmt"
	"image/color"
	"math"
	"strings"
	"time"
)

// hsvToRgb converts HSV to RGB (hue: 0-360, saturation: 0-1, value: 0-1)
func hsvToRgb(h, s, v float64) (uint8, uint8, uint8) {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	c := v * s
	x := c * (1 - math.Abs(math.Mod(h/60, 2)-1))
	m := v - c

	var r, g, b float64
	switch {
	case h < 60:
		r, g, b = c, x, 0
	case h < 120:
		r, g, b = x, c, 0
	case h < 180:
		r, g, b = 0, c, x
	case h < 240:
		r, g, b = 0, x, c
	case h < 300:
		r, g, b = x, 0, c
	default:
		r, g, b = c, 0, x
	}

	return uint8(math.Round((r + m) * 255)), uint8(math.Round((g + m) * 255)), uint8(math.Round((b + m) * 255))
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// fade scales the alpha of c by a.
func fade(c color.NRGBA, a float64) color.NRGBA {
	c.A = uint8(float64(c.A) * clamp01(a))
	return c
}

// formatDuration formats a duration as MM:SS
func formatDuration(d time.Duration) string {
	minutes := int(d.Minutes())
	seconds := int(d.Seconds()) % 60
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}

// wrapText breaks s into lines of at most width runes, splitting on spaces.
// Words longer than width are cut.
func wrapText(s string, width int) []string {
	if width <= 0 {
		return []string{s}
	}
	var (
		lines []string
		line  []rune
	)
	for _, word := range strings.Fields(s) {
		w := []rune(word)
		for len(w) > width {
			if len(line) > 0 {
				lines = append(lines, string(line))
				line = line[:0]
			}
			lines = append(lines, string(w[:width]))
			w = w[width:]
		}
		switch {
		case len(line) == 0:
			line = append(line, w...)
		case len(line)+1+len(w) <= width:
			line = append(line, ' ')
			line = append(line, w...)
		default:
			lines = append(lines, string(line))
			line = append(line[:0], w...)
		}
	}
	if len(line) > 0 || len(lines) == 0 {
		lines = append(lines, string(line))
	}
	return lines
}

type point struct{ x, y float64 }

func rotate(p point, deg float64) point {
	rad := deg * math.Pi / 180
	sin, cos := math.Sincos(rad)
	return point{p.x*cos - p.y*sin, p.x*sin + p.y*cos}
}

// petalOutline is a circle with one sharp corner (top right before rotation),
// centred on (cx, cy) and rotated by deg.
func petalOutline(cx, cy, size, deg float64) []point {
	const segments = 18
	r := size / 2
	pts := make([]point, 0, segments+2)
	for i := 0; i <= segments; i++ {
		a := float64(i) / segments * 1.5 * math.Pi
		pts = append(pts, point{r * math.Cos(a), r * math.Sin(a)})
	}
	pts = append(pts, point{r, -r})
	for i, p := range pts {
		p = rotate(p, deg)
		pts[i] = point{cx + p.x, cy + p.y}
	}
	return pts
}

// rectOutline returns the corners of a w*h rectangle centred on (cx, cy)
// rotated by deg.
func rectOutline(cx, cy, w, h, deg float64) []point {
	corners := []point{{-w / 2, -h / 2}, {w / 2, -h / 2}, {w / 2, h / 2}, {-w / 2, h / 2}}
	for i, p := range corners {
		p = rotate(p, deg)
		corners[i] = point{cx + p.x, cy + p.y}
	}
	return corners
}

// heartOutline approximates a heart of the given width centred on (cx, cy).
func heartOutline(cx, cy, width float64) []point {
	const segments = 32
	s := width / 32
	pts := make([]point, 0, segments)
	for i := 0; i < segments; i++ {
		t := float64(i) / segments * 2 * math.Pi
		x := 16 * math.Pow(math.Sin(t), 3)
		y := 13*math.Cos(t) - 5*math.Cos(2*t) - 2*math.Cos(3*t) - math.Cos(4*t)
		pts = append(pts, point{cx + x*s, cy - y*s})
	}
	return pts
}
