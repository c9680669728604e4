// Package audio plays the paper's looping song through the beep speaker.
package audio

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/effects"
	"github.com/faiface/beep/flac"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/speaker"
	"github.com/faiface/beep/wav"
)

const (
	meterRingSize   = 2048
	resampleQuality = 4
)

// ErrClosed is returned by Play after Close.
var ErrClosed = errors.New("audio: player closed")

// The speaker is process-wide; it is initialised once with the sample rate of
// the first song and later songs are resampled to it.
var (
	speakerMu    sync.Mutex
	speakerReady bool
	speakerRate  beep.SampleRate
)

// Player is a looping track with volume control and a level meter.
type Player struct {
	path   string
	stream beep.StreamSeekCloser
	format beep.Format
	ctrl   *beep.Ctrl
	volume *effects.Volume
	meter  *levelMeter
	queued bool
	closed bool
}

// Open decodes the file at path and prepares it paused at the given volume.
func Open(path string, volume float64) (*Player, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}

	stream, format, err := decode(f, filepath.Ext(path))
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}

	rate, err := ensureSpeaker(format.SampleRate)
	if err != nil {
		_ = stream.Close()
		return nil, fmt.Errorf("failed to init speaker: %w", err)
	}

	// Chain: stream -> loop -> (resample) -> meter -> volume -> ctrl
	var s beep.Streamer = beep.Loop(-1, stream)
	if format.SampleRate != rate {
		s = beep.Resample(resampleQuality, format.SampleRate, rate, s)
	}
	meter := newLevelMeter(s, meterRingSize)
	vol := &effects.Volume{Streamer: meter, Base: 2}
	ctrl := &beep.Ctrl{Streamer: vol, Paused: true}

	p := &Player{
		path:   path,
		stream: stream,
		format: format,
		ctrl:   ctrl,
		volume: vol,
		meter:  meter,
	}
	p.applyVolume(volume)
	return p, nil
}

func decode(f *os.File, ext string) (beep.StreamSeekCloser, beep.Format, error) {
	switch strings.ToLower(ext) {
	case ".wav":
		return wav.Decode(f)
	case ".mp3":
		return mp3.Decode(f)
	case ".flac":
		return flac.Decode(f)
	default:
		return nil, beep.Format{}, errors.New("unsupported file type: " + ext)
	}
}

func ensureSpeaker(rate beep.SampleRate) (beep.SampleRate, error) {
	speakerMu.Lock()
	defer speakerMu.Unlock()

	if speakerReady {
		return speakerRate, nil
	}
	if err := speaker.Init(rate, rate.N(time.Second/20)); err != nil {
		return 0, err
	}
	speakerReady = true
	speakerRate = rate
	return rate, nil
}

// Path returns the file this player was opened from.
func (p *Player) Path() string {
	return p.path
}

// Duration returns the length of one pass through the song.
func (p *Player) Duration() time.Duration {
	return p.format.SampleRate.D(p.stream.Len())
}

// Position returns the playback position within the current pass.
func (p *Player) Position() time.Duration {
	speaker.Lock()
	defer speaker.Unlock()
	return p.format.SampleRate.D(p.stream.Position())
}

// Play starts or resumes playback.
func (p *Player) Play() error {
	if p.closed {
		return ErrClosed
	}
	if !p.queued {
		p.queued = true
		speaker.Play(p.ctrl)
	}
	speaker.Lock()
	p.ctrl.Paused = false
	speaker.Unlock()
	return nil
}

// Pause stops playback, keeping the position.
func (p *Player) Pause() {
	speaker.Lock()
	p.ctrl.Paused = true
	speaker.Unlock()
	p.meter.reset()
}

// Rewind moves playback to the start of the song.
func (p *Player) Rewind() error {
	if p.closed {
		return ErrClosed
	}
	speaker.Lock()
	err := p.stream.Seek(0)
	speaker.Unlock()
	return err
}

// SetVolume sets linear volume in [0, 1]; 0 silences the track.
func (p *Player) SetVolume(v float64) {
	speaker.Lock()
	p.applyVolume(v)
	speaker.Unlock()
}

func (p *Player) applyVolume(v float64) {
	if v <= 0 {
		p.volume.Silent = true
		return
	}
	p.volume.Silent = false
	p.volume.Volume = math.Log2(math.Min(v, 1))
}

// Level returns the loudness of the most recently played samples in [0, 1].
func (p *Player) Level() float64 {
	return p.meter.level()
}

// Close detaches the track from the speaker and releases the file.
func (p *Player) Close() error {
	if p.closed {
		return nil
	}
	p.closed = true
	speaker.Lock()
	p.ctrl.Paused = true
	p.ctrl.Streamer = nil
	speaker.Unlock()
	return p.stream.Close()
}
