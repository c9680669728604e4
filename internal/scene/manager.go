package scene

import (
	"log"
	"math/rand"
	"slices"
	"time"

	"github.com/iburimskiy/petal-letter/internal/config"
	"github.com/iburimskiy/petal-letter/internal/sched"
)

// State holds the manager's lifecycle flags.
type State struct {
	Started  bool
	Resizing bool
}

// Gate is the play-button overlay shown before the session starts.
type Gate struct {
	fading    bool
	fadeStart time.Duration
	removed   bool
}

// Manager owns the petals, the paper and the session lifecycle.
//
// All methods must be called from the goroutine that ticks the scheduler.
type Manager struct {
	cfg       *config.Scene
	sched     *sched.Scheduler
	rng       *rand.Rand
	openTrack TrackOpener
	view      Viewport

	state  State
	target int
	petals map[*Petal]struct{}
	order  []*Petal // petals in creation order, for a stable draw order
	landed []*LandedPetal
	paper  *Paper
	gate   Gate

	// paperDeferred is set when the paper's timer fired mid-resize.
	paperDeferred bool
	resizeTask    *sched.Task
	startTasks    []*sched.Task
	batches       []*batch
}

// NewManager builds an idle scene for the given viewport. openTrack may be
// nil, in which case the paper is silent.
func NewManager(cfg *config.Scene, s *sched.Scheduler, rng *rand.Rand, openTrack TrackOpener, view Viewport) *Manager {
	return &Manager{
		cfg:       cfg,
		sched:     s,
		rng:       rng,
		openTrack: openTrack,
		view:      view,
		target:    config.PetalCount(view.Width),
		petals:    make(map[*Petal]struct{}),
	}
}

// Start fades out the gate, then begins dropping petals and, after
// Timing.PaperDelay, the paper. Calling it again while started does nothing.
func (m *Manager) Start() {
	if m.state.Started {
		log.Printf("[SceneManager] Already started, ignoring")
		return
	}
	log.Printf("[SceneManager] Starting")
	m.state.Started = true
	m.gate = Gate{fading: true, fadeStart: m.sched.Now()}
	m.startTasks = append(m.startTasks, m.sched.After(m.cfg.Timing.FadeOut, m.removeGate))
}

func (m *Manager) removeGate() {
	log.Printf("[SceneManager] Removing gate")
	m.gate.removed = true
	m.gate.fading = false
	m.target = config.PetalCount(m.view.Width)
	m.CreateParticles(m.target)
	m.startTasks = append(m.startTasks, m.sched.After(m.cfg.Timing.PaperDelay, m.createPaper))
}

func (m *Manager) createPaper() {
	switch {
	case m.paper != nil:
		return
	case m.state.Resizing:
		log.Printf("[SceneManager] Paper deferred until resize settles")
		m.paperDeferred = true
		return
	}
	m.paperDeferred = false
	m.paper = newPaper(m)
}

// AddParticle creates one falling petal and registers it.
func (m *Manager) AddParticle() *Petal {
	p := newPetal(m)
	m.petals[p] = struct{}{}
	m.order = append(m.order, p)
	p.fall()
	return p
}

// RemoveParticle unregisters p and stops its animation. Removing a petal that
// is not registered does nothing.
func (m *Manager) RemoveParticle(p *Petal) {
	if _, ok := m.petals[p]; !ok {
		return
	}
	delete(m.petals, p)
	for i, other := range m.order {
		if other == p {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	p.task.Cancel()
	p.task = nil
	if p.State == PetalFalling {
		p.State = PetalRemoved
	}
}

// CreateParticles adds n petals, one per frame. The batch stops early if a
// resize begins.
func (m *Manager) CreateParticles(n int) {
	b := &batch{manager: m, left: n}
	m.batches = append(m.batches, b)
	b.task = m.sched.NextFrame(b.step)
}

// batch paces petal creation across frames.
type batch struct {
	manager *Manager
	left    int
	task    *sched.Task
}

func (b *batch) step() {
	m := b.manager
	if m.state.Resizing || b.left <= 0 {
		b.task = nil
		return
	}
	m.AddParticle()
	b.left--
	b.task = m.sched.NextFrame(b.step)
}

func (m *Manager) addLanded(p *Petal) {
	lp := newLandedPetal(m, p)
	m.landed = append(m.landed, lp)
	lp.hold()
}

func (m *Manager) dropLanded(lp *LandedPetal) {
	lp.task.Cancel()
	for i, other := range m.landed {
		if other == lp {
			m.landed = append(m.landed[:i], m.landed[i+1:]...)
			return
		}
	}
}

// ClearAll removes every petal, landed or falling, and destroys the paper.
func (m *Manager) ClearAll() {
	for _, p := range m.order {
		p.task.Cancel()
		p.task = nil
		p.State = PetalRemoved
	}
	clear(m.petals)
	m.order = nil

	for _, lp := range m.landed {
		lp.task.Cancel()
	}
	m.landed = nil

	for _, b := range m.batches {
		b.task.Cancel()
	}
	m.batches = nil

	if m.paper != nil {
		m.paper.destroy()
		m.paper = nil
	}
	m.paperDeferred = false
}

// Reset clears the scene and brings the gate back so Start can run again.
func (m *Manager) Reset() {
	if !m.state.Started {
		return
	}
	log.Printf("[SceneManager] Resetting")
	for _, t := range m.startTasks {
		t.Cancel()
	}
	m.startTasks = nil
	m.resizeTask.Cancel()
	m.resizeTask = nil
	m.ClearAll()
	m.state = State{}
	m.gate = Gate{}
}

// Resize records a new viewport. After Start, a burst of resizes marks the
// scene as resizing and is collapsed into one relayout after
// Timing.ResizeDebounce.
func (m *Manager) Resize(width, height float64) {
	next := Viewport{Width: width, Height: height}
	if next == m.view {
		return
	}
	m.view = next
	if !m.state.Started {
		m.target = config.PetalCount(width)
		return
	}
	m.state.Resizing = true
	m.resizeTask.Cancel()
	m.resizeTask = m.sched.After(m.cfg.Timing.ResizeDebounce, m.finishResize)
}

func (m *Manager) finishResize() {
	m.resizeTask = nil
	m.state.Resizing = false
	m.target = config.PetalCount(m.view.Width)
	log.Printf("[SceneManager] Resize settled at %.0fx%.0f", m.view.Width, m.view.Height)

	if m.gate.removed {
		if missing := m.target - len(m.petals) - m.queuedPetals(); missing > 0 {
			m.CreateParticles(missing)
		}
	}

	if m.paper == nil {
		if m.paperDeferred {
			m.createPaper()
		}
		return
	}
	m.paper.relayout()
}

// queuedPetals counts petals still waiting in creation batches.
func (m *Manager) queuedPetals() int {
	n := 0
	live := m.batches[:0]
	for _, b := range m.batches {
		if b.task.Done() {
			continue
		}
		n += b.left
		live = append(live, b)
	}
	m.batches = live
	return n
}

// State returns a copy of the lifecycle flags.
func (m *Manager) State() State { return m.state }

// Viewport returns the current viewport.
func (m *Manager) Viewport() Viewport { return m.view }

// Target is the number of petals the scene keeps falling.
func (m *Manager) Target() int { return m.target }

// Petals returns the falling petals, oldest first.
func (m *Manager) Petals() []*Petal {
	return slices.Clone(m.order)
}

// PetalCount is the number of falling petals.
func (m *Manager) PetalCount() int { return len(m.petals) }

// Landed returns the petals resting on the ground.
func (m *Manager) Landed() []*LandedPetal { return m.landed }

// Paper returns the paper, or nil before it exists.
func (m *Manager) Paper() *Paper { return m.paper }

// GateVisible reports whether the play gate is still drawn.
func (m *Manager) GateVisible() bool { return !m.gate.removed }

// GateAlpha is the gate's opacity, fading from 1 to 0 after Start.
func (m *Manager) GateAlpha() float64 {
	switch {
	case m.gate.removed:
		return 0
	case !m.gate.fading:
		return 1
	}
	elapsed := m.sched.Now() - m.gate.fadeStart
	return clamp(1-float64(elapsed)/float64(m.cfg.Timing.FadeOut), 0, 1)
}
