package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Scene is the static content and pacing of one session.
//
// Loaded from assets/letter.yaml (embedded) and optionally overridden with a
// file given on the command line. Fields missing from the YAML keep their
// defaults.
type Scene struct {
	// Audio is the path of the looping song carried by the paper.
	Audio string `yaml:"audio"`

	// Label is drawn on the paper.
	Label string `yaml:"label"`

	// Lines are revealed one after another in the letter overlay.
	Lines []string `yaml:"lines"`

	// Signature lines appear after the last line has been typed.
	Signature []string `yaml:"signature"`

	Timing Timing `yaml:"timing"`
}

// Timing holds every delay the scene schedules.
type Timing struct {
	FadeOut        time.Duration `yaml:"fadeOut"`
	PaperDelay     time.Duration `yaml:"paperDelay"`
	ResizeDebounce time.Duration `yaml:"resizeDebounce"`
	PaperFall      time.Duration `yaml:"paperFall"`
	LandedHold     time.Duration `yaml:"landedHold"`
	LandedFade     time.Duration `yaml:"landedFade"`
	OpenDelay      time.Duration `yaml:"openDelay"`
	CharInterval   time.Duration `yaml:"charInterval"`
	LinePause      time.Duration `yaml:"linePause"`
	SignaturePause time.Duration `yaml:"signaturePause"`
}

// DefaultTiming returns the stock pacing.
func DefaultTiming() Timing {
	return Timing{
		FadeOut:        300 * time.Millisecond,
		PaperDelay:     500 * time.Millisecond,
		ResizeDebounce: 100 * time.Millisecond,
		PaperFall:      10900 * time.Millisecond,
		LandedHold:     2 * time.Second,
		LandedFade:     time.Second,
		OpenDelay:      750 * time.Millisecond,
		CharInterval:   50 * time.Millisecond,
		LinePause:      500 * time.Millisecond,
		SignaturePause: 500 * time.Millisecond,
	}
}

// DefaultScene returns a scene with default timing and no letter text.
func DefaultScene() *Scene {
	return &Scene{
		Audio:  "assets/TMWYHI.mp3",
		Label:  "For Baby",
		Timing: DefaultTiming(),
	}
}

// ParseScene decodes YAML on top of DefaultScene and validates the result.
func ParseScene(data []byte) (*Scene, error) {
	scene := DefaultScene()
	if err := yaml.Unmarshal(data, scene); err != nil {
		return nil, fmt.Errorf("failed to parse scene config: %w", err)
	}
	if err := scene.Validate(); err != nil {
		return nil, fmt.Errorf("invalid scene config: %w", err)
	}
	return scene, nil
}

// LoadScene reads and parses a scene file.
func LoadScene(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scene config: %w", err)
	}
	return ParseScene(data)
}

// Validate checks that the letter has content and every interval is usable.
func (s *Scene) Validate() error {
	if len(s.Lines) == 0 {
		return errors.New("letter has no lines")
	}
	durations := []struct {
		name string
		d    time.Duration
	}{
		{"fadeOut", s.Timing.FadeOut},
		{"paperDelay", s.Timing.PaperDelay},
		{"resizeDebounce", s.Timing.ResizeDebounce},
		{"paperFall", s.Timing.PaperFall},
		{"landedHold", s.Timing.LandedHold},
		{"landedFade", s.Timing.LandedFade},
		{"openDelay", s.Timing.OpenDelay},
		{"charInterval", s.Timing.CharInterval},
		{"linePause", s.Timing.LinePause},
		{"signaturePause", s.Timing.SignaturePause},
	}
	for _, d := range durations {
		if d.d <= 0 {
			return fmt.Errorf("timing.%s must be positive, got %v", d.name, d.d)
		}
	}
	return nil
}
