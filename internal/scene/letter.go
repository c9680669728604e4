package scene

import (
	"log"
	"time"
	"unicode/utf8"

	"github.com/iburimskiy/petal-letter/internal/config"
	"github.com/iburimskiy/petal-letter/internal/sched"
)

// Letter is the overlay opened from the paper. Lines are typed one rune at a
// time and strictly one line after another; the signature follows the last.
type Letter struct {
	sched     *sched.Scheduler
	timing    config.Timing
	lines     []string
	signature []string

	revealed      []int // runes shown per line
	started       []bool
	signatureShow bool
	active        bool
	tasks         []*sched.Task
}

func newLetter(s *sched.Scheduler, cfg *config.Scene) *Letter {
	return &Letter{
		sched:     s,
		timing:    cfg.Timing,
		lines:     cfg.Lines,
		signature: cfg.Signature,
		revealed:  make([]int, len(cfg.Lines)),
		started:   make([]bool, len(cfg.Lines)),
	}
}

// Open shows the overlay and restarts the reveal from an empty card.
func (l *Letter) Open() {
	if len(l.lines) == 0 {
		log.Printf("[Letter] No letter content")
		return
	}
	l.cancel()
	clear(l.revealed)
	clear(l.started)
	l.signatureShow = false
	l.active = true
	log.Printf("[Letter] Showing card overlay")
	l.add(l.sched.After(l.timing.OpenDelay, l.startTypewriter))
}

// Close hides the overlay and drops any reveal still pending.
func (l *Letter) Close() {
	if !l.active {
		return
	}
	l.active = false
	l.cancel()
}

// Active reports whether the overlay is shown.
func (l *Letter) Active() bool { return l.active }

// Visible returns the typed prefix of every line.
func (l *Letter) Visible() []string {
	out := make([]string, len(l.lines))
	for i, line := range l.lines {
		out[i] = prefix(line, l.revealed[i])
	}
	return out
}

// Typing reports whether line i has started and is not yet complete.
func (l *Letter) Typing(i int) bool {
	return l.started[i] && l.revealed[i] < utf8.RuneCountInString(l.lines[i])
}

// SignatureVisible reports whether the signature has been revealed.
func (l *Letter) SignatureVisible() bool { return l.signatureShow }

// Signature returns the signature lines.
func (l *Letter) Signature() []string { return l.signature }

// LineStart returns the offset from the start of typing at which line i
// begins: each line waits for the previous one's runes plus a pause.
func (l *Letter) LineStart(i int) time.Duration {
	var delay time.Duration
	for _, line := range l.lines[:i] {
		delay += time.Duration(utf8.RuneCountInString(line))*l.timing.CharInterval + l.timing.LinePause
	}
	return delay
}

func (l *Letter) startTypewriter() {
	for i := range l.lines {
		i := i
		l.add(l.sched.After(l.LineStart(i), func() { l.typeLine(i) }))
	}
}

func (l *Letter) typeLine(i int) {
	l.started[i] = true
	n := utf8.RuneCountInString(l.lines[i])
	last := i == len(l.lines)-1
	l.add(l.sched.Every(l.timing.CharInterval, func() bool {
		if l.revealed[i] < n {
			l.revealed[i]++
			return true
		}
		if last {
			l.add(l.sched.After(l.timing.SignaturePause, func() { l.signatureShow = true }))
		}
		return false
	}))
}

func (l *Letter) add(t *sched.Task) {
	// Drop handles that have already run so the slice stays short.
	live := l.tasks[:0]
	for _, old := range l.tasks {
		if !old.Done() {
			live = append(live, old)
		}
	}
	l.tasks = append(live, t)
}

func (l *Letter) cancel() {
	for _, t := range l.tasks {
		t.Cancel()
	}
	l.tasks = l.tasks[:0]
}

func prefix(s string, runes int) string {
	if runes <= 0 {
		return ""
	}
	i := 0
	for j := range s {
		if i == runes {
			return s[:j]
		}
		i++
	}
	return s
}
