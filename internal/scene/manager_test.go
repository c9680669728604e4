package scene

import (
	"slices"
	"testing"
	"time"

	"github.com/iburimskiy/petal-letter/internal/config"
)

func TestStartIsIdempotent(t *testing.T) {
	h := newHarness(t, 1000, 800)

	h.m.Start()
	h.m.Start()
	if got := h.s.Pending(); got != 1 {
		t.Errorf("pending after double Start: got %d, want 1 gate fade", got)
	}

	h.run(150 * time.Millisecond)
	h.m.Start()
	if a := h.m.GateAlpha(); a <= 0 || a >= 1 {
		t.Errorf("GateAlpha mid-fade: got %v, want in (0, 1)", a)
	}

	h.run(2 * time.Second)
	h.m.Start()
	h.run(time.Second)

	if h.m.GateVisible() {
		t.Error("gate should be removed")
	}
	if h.m.GateAlpha() != 0 {
		t.Errorf("GateAlpha: got %v, want 0", h.m.GateAlpha())
	}
	if len(h.tracks) != 1 {
		t.Errorf("papers created: got %d, want 1", len(h.tracks))
	}
	if h.m.PetalCount() != 20 {
		t.Errorf("PetalCount: got %d, want 20", h.m.PetalCount())
	}
}

func TestGateBeforeStart(t *testing.T) {
	h := newHarness(t, 1000, 800)
	if !h.m.GateVisible() || h.m.GateAlpha() != 1 {
		t.Error("gate should be fully visible before Start")
	}
	h.run(time.Second)
	if h.m.PetalCount() != 0 || h.m.Paper() != nil {
		t.Error("nothing should spawn before Start")
	}
}

func TestStartSequenceTiming(t *testing.T) {
	h := newHarness(t, 1000, 800)
	h.m.Start()

	h.run(280 * time.Millisecond)
	if !h.m.GateVisible() {
		t.Fatal("gate removed before the fade finished")
	}

	h.run(50 * time.Millisecond)
	if h.m.GateVisible() {
		t.Fatal("gate still visible after the fade")
	}
	if h.m.Paper() != nil {
		t.Fatal("paper created before its delay")
	}

	h.run(550 * time.Millisecond)
	if h.m.Paper() == nil {
		t.Fatal("paper not created after its delay")
	}
}

func TestCreateParticlesOnePerFrame(t *testing.T) {
	h := newHarness(t, 1000, 800)
	h.m.CreateParticles(5)

	for frame := 1; frame <= 7; frame++ {
		h.s.Tick(config.FrameDuration)
		want := min(frame, 5)
		if got := h.m.PetalCount(); got != want {
			t.Fatalf("frame %d: PetalCount = %d, want %d", frame, got, want)
		}
	}
}

func TestPetalsKeepCreationOrder(t *testing.T) {
	h := newHarness(t, 1000, 800)
	var want []*Petal
	for i := 0; i < 6; i++ {
		want = append(want, h.m.AddParticle())
	}

	for i := 0; i < 5; i++ {
		h.run(config.FrameDuration)
		if got := h.m.Petals(); !slices.Equal(got, want) {
			t.Fatalf("frame %d: petals out of creation order", i)
		}
	}

	h.m.RemoveParticle(want[2])
	want = slices.Delete(want, 2, 3)
	if got := h.m.Petals(); !slices.Equal(got, want) {
		t.Error("order changed after removing a petal")
	}
	if h.m.PetalCount() != len(want) {
		t.Errorf("PetalCount: got %d, want %d", h.m.PetalCount(), len(want))
	}
}

func TestTargetCountByWidth(t *testing.T) {
	tests := []struct {
		width float64
		want  int
	}{
		{width: 1000, want: 20},
		{width: 500, want: 10},
	}
	for _, tt := range tests {
		h := newHarness(t, tt.width, 800)
		h.m.Start()
		h.run(time.Second)
		if got := h.m.Target(); got != tt.want {
			t.Errorf("width %v: Target = %d, want %d", tt.width, got, tt.want)
		}
		if got := h.m.PetalCount(); got != tt.want {
			t.Errorf("width %v: PetalCount = %d, want %d", tt.width, got, tt.want)
		}
	}
}

func TestClearAll(t *testing.T) {
	h := newHarness(t, 1000, 800)
	p := startPaper(t, h)
	h.run(15 * time.Second)
	if len(h.m.Landed()) == 0 {
		t.Fatal("expected landed petals before clearing")
	}

	h.m.ClearAll()

	if h.m.PetalCount() != 0 {
		t.Errorf("PetalCount: got %d, want 0", h.m.PetalCount())
	}
	if len(h.m.Landed()) != 0 {
		t.Errorf("Landed: got %d, want 0", len(h.m.Landed()))
	}
	if h.m.Paper() != nil {
		t.Error("Paper should be nil")
	}
	if !p.Removed() {
		t.Error("paper should be marked removed")
	}
	tr := h.tracks[0]
	if tr.pauses != 1 || tr.rewinds != 1 || tr.closes != 1 {
		t.Errorf("track not released: %+v", *tr)
	}

	h.run(5 * time.Second)
	if h.m.PetalCount() != 0 || len(h.m.Landed()) != 0 {
		t.Error("scene repopulated after ClearAll")
	}
}

func TestResizeIgnoredBeforeStart(t *testing.T) {
	h := newHarness(t, 1000, 800)
	h.m.Resize(500, 400)

	if h.m.State().Resizing {
		t.Error("Resizing set before Start")
	}
	if h.m.Viewport() != (Viewport{Width: 500, Height: 400}) {
		t.Errorf("Viewport: got %+v", h.m.Viewport())
	}
	if h.m.Target() != 10 {
		t.Errorf("Target: got %d, want 10", h.m.Target())
	}
	if h.s.Pending() != 0 {
		t.Errorf("Pending: got %d, want 0", h.s.Pending())
	}
}

func TestResizeDebounce(t *testing.T) {
	h := newHarness(t, 1000, 800)
	startPaper(t, h)

	h.m.Resize(900, 800)
	h.run(50 * time.Millisecond)
	h.m.Resize(800, 800)
	h.run(50 * time.Millisecond)
	h.m.Resize(700, 800)
	h.run(80 * time.Millisecond)

	if !h.m.State().Resizing {
		t.Fatal("debounce fired before the burst settled")
	}

	h.run(40 * time.Millisecond)
	if h.m.State().Resizing {
		t.Fatal("debounce did not fire after the burst")
	}
	if h.m.Viewport().Width != 700 {
		t.Errorf("Width: got %v, want 700", h.m.Viewport().Width)
	}
}

func TestResizeReplenishesPetals(t *testing.T) {
	h := newHarness(t, 1000, 800)
	h.m.Start()
	h.run(time.Second)

	h.m.Resize(500, 800)
	h.run(200 * time.Millisecond)
	h.run(500 * time.Millisecond)

	if got := h.m.Target(); got != 10 {
		t.Errorf("Target: got %d, want 10", got)
	}
	if got := h.m.PetalCount(); got != 10 {
		t.Errorf("PetalCount: got %d, want 10", got)
	}

	h.m.Resize(1200, 800)
	h.run(time.Second)
	if got := h.m.PetalCount(); got != 20 {
		t.Errorf("PetalCount after widening: got %d, want 20", got)
	}
}

func TestResizeBeforePaperExists(t *testing.T) {
	h := newHarness(t, 1000, 800)
	h.m.Start()

	// Settles during the gate fade, long before the paper timer.
	h.m.Resize(900, 700)
	h.run(200 * time.Millisecond)
	if h.m.State().Resizing {
		t.Fatal("resize did not settle")
	}
	if h.m.Paper() != nil {
		t.Fatal("paper created early")
	}

	h.run(time.Second)
	if h.m.Paper() == nil {
		t.Fatal("paper not created after an early resize")
	}
	if len(h.tracks) != 1 {
		t.Errorf("papers: got %d, want 1", len(h.tracks))
	}
}

func TestPaperDeferredByResize(t *testing.T) {
	h := newHarness(t, 1000, 800)
	h.m.Start()
	h.run(750 * time.Millisecond)

	// The paper timer (300ms fade + 500ms delay) fires while resizing.
	h.m.Resize(900, 700)
	h.run(80 * time.Millisecond)
	if h.m.Paper() != nil {
		t.Fatal("paper created while resizing")
	}

	// Check placement on the frame the paper appears, before it moves.
	h.runUntil(t, 10, func() bool { return h.m.Paper() != nil })
	if h.m.State().Resizing {
		t.Error("paper created before the resize settled")
	}
	if h.m.Paper().X != 450 {
		t.Errorf("X: got %v, want 450", h.m.Paper().X)
	}
}

func TestReset(t *testing.T) {
	h := newHarness(t, 1000, 800)
	startPaper(t, h)
	h.run(time.Second)

	h.m.Reset()
	if h.m.State().Started {
		t.Error("Started should be cleared")
	}
	if !h.m.GateVisible() {
		t.Error("gate should be back")
	}
	if h.m.Paper() != nil || h.m.PetalCount() != 0 {
		t.Error("scene not cleared")
	}
	if h.tracks[0].closes != 1 {
		t.Error("track not closed on reset")
	}

	h.m.Start()
	h.run(time.Second)
	if h.m.Paper() == nil {
		t.Fatal("paper not recreated after restart")
	}
	if len(h.tracks) != 2 {
		t.Errorf("tracks: got %d, want 2", len(h.tracks))
	}
}

func TestResetBeforeStartIsNoop(t *testing.T) {
	h := newHarness(t, 1000, 800)
	h.m.Reset()
	if h.m.State().Started || !h.m.GateVisible() {
		t.Error("Reset before Start changed state")
	}
}

func TestResetCancelsPendingStart(t *testing.T) {
	h := newHarness(t, 1000, 800)
	h.m.Start()
	h.run(400 * time.Millisecond)
	h.m.Reset()

	h.run(2 * time.Second)
	if h.m.Paper() != nil {
		t.Error("paper created after Reset")
	}
	if h.m.PetalCount() != 0 {
		t.Errorf("PetalCount: got %d, want 0", h.m.PetalCount())
	}
}
