package game

import (
	"image/color"
	"math"
	"reflect"
	"testing"
	"time"

	"github.com/iburimskiy/petal-letter/internal/scene"
)

func TestHsvToRgb(t *testing.T) {
	tests := []struct {
		h, s, v float64
		r, g, b uint8
	}{
		{0, 1, 1, 255, 0, 0},
		{120, 1, 1, 0, 255, 0},
		{240, 1, 1, 0, 0, 255},
		{360, 1, 1, 255, 0, 0},
		{-120, 1, 1, 0, 0, 255},
		{0, 0, 1, 255, 255, 255},
	}
	for _, tt := range tests {
		r, g, b := hsvToRgb(tt.h, tt.s, tt.v)
		if r != tt.r || g != tt.g || b != tt.b {
			t.Errorf("hsvToRgb(%v, %v, %v) = (%d, %d, %d), want (%d, %d, %d)", tt.h, tt.s, tt.v, r, g, b, tt.r, tt.g, tt.b)
		}
	}
}

func TestFade(t *testing.T) {
	c := color.NRGBA{R: 10, G: 20, B: 30, A: 200}
	if got := fade(c, 0.5); got.A != 100 || got.R != 10 {
		t.Errorf("fade(0.5) = %+v", got)
	}
	if got := fade(c, 2); got.A != 200 {
		t.Errorf("fade(2) should clamp, got A=%d", got.A)
	}
	if got := fade(c, -1); got.A != 0 {
		t.Errorf("fade(-1) should clamp, got A=%d", got.A)
	}
}

func TestFormatDuration(t *testing.T) {
	if got := formatDuration(75 * time.Second); got != "01:15" {
		t.Errorf("formatDuration(75s) = %q", got)
	}
}

func TestWrapText(t *testing.T) {
	tests := []struct {
		s     string
		width int
		want  []string
	}{
		{"", 10, []string{""}},
		{"short", 10, []string{"short"}},
		{"the quick brown fox", 10, []string{"the quick", "brown fox"}},
		{"abcdefghijkl", 5, []string{"abcde", "fghij", "kl"}},
		{"a abcdefgh", 4, []string{"a", "abcd", "efgh"}},
		{"no limit", 0, []string{"no limit"}},
	}
	for _, tt := range tests {
		if got := wrapText(tt.s, tt.width); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("wrapText(%q, %d) = %q, want %q", tt.s, tt.width, got, tt.want)
		}
	}
}

func TestPetalOutlineStaysNearCentre(t *testing.T) {
	pts := petalOutline(100, 50, 20, 37)
	if len(pts) < 3 {
		t.Fatalf("too few points: %d", len(pts))
	}
	limit := 10*math.Sqrt2 + 1e-9
	for i, p := range pts {
		if d := math.Hypot(p.x-100, p.y-50); d > limit {
			t.Errorf("point %d at distance %v, want <= %v", i, d, limit)
		}
	}
}

func TestRectOutlineRotation(t *testing.T) {
	pts := rectOutline(0, 0, 4, 2, 90)
	want := []point{{1, -2}, {1, 2}, {-1, 2}, {-1, -2}}
	for i := range want {
		if math.Abs(pts[i].x-want[i].x) > 1e-9 || math.Abs(pts[i].y-want[i].y) > 1e-9 {
			t.Errorf("corner %d: got %+v, want %+v", i, pts[i], want[i])
		}
	}
}

func TestCardAndCloseRects(t *testing.T) {
	card := cardRect(scene.Viewport{Width: 1000, Height: 800})
	if card.W != 560 || card.H != 440 || card.X != 220 || card.Y != 180 {
		t.Errorf("card: got %+v", card)
	}
	small := cardRect(scene.Viewport{Width: 300, Height: 200})
	if small.W != 260 || small.H != 160 {
		t.Errorf("small card: got %+v", small)
	}
	cr := closeRect(card)
	if !card.contains(cr.X, cr.Y) || !card.contains(cr.X+cr.W-1, cr.Y+cr.H-1) {
		t.Errorf("close button %+v outside card %+v", cr, card)
	}
}

func TestPlayButtonContains(t *testing.T) {
	view := scene.Viewport{Width: 800, Height: 600}
	if !playButtonContains(view, 400, 300) {
		t.Error("centre should hit")
	}
	if !playButtonContains(view, 430, 300) {
		t.Error("inside radius should hit")
	}
	if playButtonContains(view, 450, 300) {
		t.Error("outside radius should miss")
	}
}
