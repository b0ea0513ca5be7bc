package vantage

import (
	"log"
	"math/rand"
	"sync/atomic"
	"time"
)

const (
	// watchdogInterval is how often the stall watchdog samples the heartbeat.
	watchdogInterval = 500 * time.Millisecond
	// stallThresholdMs is how long the frame loop may go silent while the
	// engine is running before the watchdog intervenes.
	stallThresholdMs = 1000
)

type positionListener struct {
	id uint32
	fn func(pos Position)
}

type perfListener struct {
	id uint32
	fn func(snapshot PerformanceSnapshot)
}

// Orchestrator owns the camera position and wires every input source to the
// movement controller and scheduler. It is the single writer: input handlers
// only enqueue intents, and the position mutates exactly once per frame tick
// inside Step. Everything runs on the host's frame loop; only the stall
// watchdog lives on its own goroutine.
type Orchestrator struct {
	cfg         Config
	constraints Constraints

	pos Position

	sched     *Scheduler
	monitor   *PerformanceMonitor
	quality   *QualityManager
	movements *MovementController
	gestures  *GestureRecognizer
	keyboard  *AccessibilityController
	sections  *SectionRegistry

	surface   RenderSurface
	announcer Announcer

	viewportW, viewportH float64

	// Pending intents, composed additively within a tick: pans sum, scale
	// multiplies. Drained by Step before the scheduler advances.
	pendingDelta GestureDelta
	hasPending   bool

	// animPos holds the latest interpolated position from active runs; the
	// write-back into pos happens once per tick.
	animPos    Position
	hasAnimPos bool

	posListeners  []positionListener
	perfListeners []perfListener
	nextID        uint32

	lastStepMs float64
	hasStepped bool
	wasClamped bool

	// Watchdog state. heartbeat carries unix-milli of the last Step call.
	heartbeat    atomic.Int64
	running      atomic.Bool
	watchdogStop chan struct{}
	onStall      func()
}

// NewOrchestrator builds the full engine from a validated config. The
// surface and announcer may be nil (headless operation, e.g. tests). A nil
// rng leaves frame skipping on its default deterministic seed.
func NewOrchestrator(cfg Config, surface RenderSurface, announcer Announcer,
	sections *SectionRegistry, rng *rand.Rand) (*Orchestrator, error) {

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	o := &Orchestrator{
		cfg:         cfg,
		constraints: cfg.Viewport.Constraints(),
		surface:     surface,
		announcer:   announcer,
		sections:    sections,
		viewportW:   1280,
		viewportH:   720,
	}

	o.monitor = NewPerformanceMonitor(cfg.WindowSize, cfg.Quality.DegradeFPS, cfg.Quality.UpgradeFPS)
	o.quality = NewQualityManager(cfg.DwellTimeMs)
	o.monitor.SetSignalHandlers(
		func(nowMs float64) {
			if o.quality.Degrade(nowMs) {
				log.Printf("vantage: quality degraded to %s", o.quality.Level())
			}
		},
		func(nowMs float64) {
			if o.quality.Upgrade(nowMs) {
				log.Printf("vantage: quality upgraded to %s", o.quality.Level())
			}
		},
	)

	o.sched = NewScheduler(cfg.FrameSkipProbability, rng, func() bool {
		return o.quality.Bundle().ForceFrameSkip
	})
	o.movements = NewMovementController(o.sched, o.quality, cfg.ConcurrencyLimit)
	if sections != nil {
		o.movements.SetAnchorResolver(sections)
	}
	if effect, ok := surface.(AppearanceEffect); ok {
		o.movements.SetAppearanceEffect(effect)
	}

	o.gestures = NewGestureRecognizer(cfg.PanSensitivity, cfg.ZoomSensitivity)
	o.gestures.OnGestureDelta = o.ApplyDelta

	o.keyboard = NewAccessibilityController(o, announcer)
	o.keyboard.SetAnnouncementsEnabled(cfg.Announcements)
	if sections != nil {
		o.keyboard.SetLocationDescriber(sections)
	}

	home := Position{Scale: 1.0}
	if sections != nil {
		home = sections.HomePosition()
	}
	o.pos, _ = Validate(home, o.constraints)

	return o, nil
}

// Gestures returns the touch input source.
func (o *Orchestrator) Gestures() *GestureRecognizer { return o.gestures }

// Keyboard returns the accessibility input source.
func (o *Orchestrator) Keyboard() *AccessibilityController { return o.keyboard }

// Monitor returns the performance monitor.
func (o *Orchestrator) Monitor() *PerformanceMonitor { return o.monitor }

// Movements returns the movement controller.
func (o *Orchestrator) Movements() *MovementController { return o.movements }

// QualityLevel returns the current quality tier.
func (o *Orchestrator) QualityLevel() QualityLevel { return o.quality.Level() }

// Quality returns the quality manager, for level-change subscriptions.
func (o *Orchestrator) Quality() *QualityManager { return o.quality }

// SetSurface attaches or replaces the render surface. Surfaces implementing
// AppearanceEffect also become the rack-focus target.
func (o *Orchestrator) SetSurface(surface RenderSurface) {
	o.surface = surface
	if effect, ok := surface.(AppearanceEffect); ok {
		o.movements.SetAppearanceEffect(effect)
	}
}

// SetViewport tells the orchestrator the render surface dimensions used to
// derive the per-frame transform.
func (o *Orchestrator) SetViewport(w, h float64) {
	if w > 0 && h > 0 {
		o.viewportW, o.viewportH = w, h
	}
}

// Position returns the camera's effective position: the last committed
// value projected through any intents enqueued since, so that callers in
// the same tick (announcements, tests) observe their own effect.
func (o *Orchestrator) Position() Position {
	if !o.hasPending {
		return o.pos
	}
	pos, _ := Validate(o.applyDeltaTo(o.pos, o.pendingDelta), o.constraints)
	return pos
}

// ApplyDelta enqueues a position intent. Gesture and keyboard deltas arriving
// in the same tick compose additively; the frame loop is the sole writer.
func (o *Orchestrator) ApplyDelta(d GestureDelta) {
	if !o.hasPending {
		o.pendingDelta = GestureDelta{Scale: 1.0}
		o.hasPending = true
	}
	o.pendingDelta.X += d.X
	o.pendingDelta.Y += d.Y
	if d.Scale > 0 {
		o.pendingDelta.Scale *= d.Scale
	}
	o.pendingDelta.CenterX = d.CenterX
	o.pendingDelta.CenterY = d.CenterY
}

// applyDeltaTo maps a content-space delta onto a camera position: content
// dragged right moves the camera left, and pinch scale multiplies zoom.
func (o *Orchestrator) applyDeltaTo(pos Position, d GestureDelta) Position {
	scale := pos.Scale
	if scale == 0 {
		scale = 1
	}
	out := pos
	out.X -= d.X / scale
	out.Y -= d.Y / scale
	if d.Scale > 0 {
		out.Scale *= d.Scale
	}
	return out
}

// ViewRect returns the canvas region the camera currently shows: the
// viewport projected into content space around the effective position.
func (o *Orchestrator) ViewRect() Rect {
	pos := o.Position()
	scale := pos.Scale
	if scale <= 0 {
		scale = 1
	}
	w := o.viewportW / scale
	h := o.viewportH / scale
	return Rect{X: pos.X - w/2, Y: pos.Y - h/2, Width: w, Height: h}
}

// VisibleSections returns the sections the render surface should draw this
// frame. When the current optimization bundle enables offscreen culling,
// sections whose cells lie outside the view rectangle are dropped.
func (o *Orchestrator) VisibleSections() []Section {
	if o.sections == nil {
		return nil
	}
	if !o.quality.Bundle().CullOffscreen {
		return o.sections.All()
	}
	return o.sections.SectionsInView(o.ViewRect())
}

// RequestMovement starts a named camera movement toward target. Rejections
// (one-shot guard, concurrency cap) are logged and resolve as no-ops.
func (o *Orchestrator) RequestMovement(kind MovementKind, target Position) {
	o.Request(MovementRequest{Kind: kind, Target: target})
}

// Request starts a movement with full request data (section anchors for
// match-cut and rack-focus).
func (o *Orchestrator) Request(req MovementRequest) *AnimationRun {
	return o.movements.Execute(req, o.Position(),
		func(progress float64, pos Position) {
			o.animPos = pos
			o.hasAnimPos = true
		},
		nil,
	)
}

// NavigateToSection pan-tilts the camera to a registered section.
func (o *Orchestrator) NavigateToSection(id string) {
	if o.sections == nil {
		return
	}
	target, ok := o.sections.PositionOf(id)
	if !ok {
		log.Printf("vantage: unknown section %q", id)
		return
	}
	target.Scale = o.Position().Scale
	o.RequestMovement(MovePanTilt, target)
}

// ResetView cancels in-flight movements and pan-tilts back home.
func (o *Orchestrator) ResetView() {
	o.sched.CancelAll()
	home := Position{Scale: 1.0}
	if o.sections != nil {
		home = o.sections.HomePosition()
	}
	o.RequestMovement(MovePanTilt, home)
}

// OnPositionChange subscribes to the once-per-frame committed position.
func (o *Orchestrator) OnPositionChange(fn func(pos Position)) Unsubscribe {
	o.nextID++
	id := o.nextID
	o.posListeners = append(o.posListeners, positionListener{id: id, fn: fn})
	return func() {
		for i := range o.posListeners {
			if o.posListeners[i].id == id {
				o.posListeners = append(o.posListeners[:i], o.posListeners[i+1:]...)
				return
			}
		}
	}
}

// OnPerformanceUpdate subscribes to the per-frame metrics snapshot.
func (o *Orchestrator) OnPerformanceUpdate(fn func(snapshot PerformanceSnapshot)) Unsubscribe {
	o.nextID++
	id := o.nextID
	o.perfListeners = append(o.perfListeners, perfListener{id: id, fn: fn})
	return func() {
		for i := range o.perfListeners {
			if o.perfListeners[i].id == id {
				o.perfListeners = append(o.perfListeners[:i], o.perfListeners[i+1:]...)
				return
			}
		}
	}
}

// Step advances the engine by one frame tick. nowMs is the host's frame
// timestamp in milliseconds from any monotonic origin.
//
// Ordering inside one tick is fixed: the monitor records the frame before
// the scheduler advances, so quality decisions always see current timing;
// then intents drain, animations interpolate, the position is validated and
// committed exactly once, and the transform is published.
func (o *Orchestrator) Step(nowMs float64) {
	o.heartbeat.Store(time.Now().UnixMilli())

	o.monitor.RecordFrame(nowMs)

	dtMs := frameBudgetMs
	if o.hasStepped {
		if d := nowMs - o.lastStepMs; d > 0 {
			dtMs = d
		}
	}
	o.lastStepMs = nowMs
	o.hasStepped = true

	next := o.pos

	if o.hasPending {
		next = o.applyDeltaTo(next, o.pendingDelta)
		o.pendingDelta = GestureDelta{}
		o.hasPending = false
	}

	o.hasAnimPos = false
	o.sched.Step(dtMs)
	if o.hasAnimPos {
		// Animations own the trajectory; manual deltas applied in the same
		// tick are superseded by the interpolated value (last writer wins).
		next = o.animPos
	}

	validated, clamped := Validate(next, o.constraints)
	if clamped && !o.wasClamped {
		log.Printf("vantage: position (%.1f, %.1f, %.2f) out of bounds, clamped",
			next.X, next.Y, next.Scale)
	}
	o.wasClamped = clamped

	o.pos = validated

	if o.surface != nil {
		o.surface.ApplyTransform(TransformFor(o.pos, o.viewportW, o.viewportH))
	}
	for _, l := range o.posListeners {
		l.fn(o.pos)
	}

	o.monitor.SetActiveAnimations(o.sched.ActiveCount())
	snapshot := o.monitor.Snapshot()
	for _, l := range o.perfListeners {
		l.fn(snapshot)
	}
}

// SetStallHandler installs a hook the watchdog calls when the frame loop
// goes silent, typically to re-register the host frame callback.
func (o *Orchestrator) SetStallHandler(fn func()) {
	o.onStall = fn
}

// Start marks the engine running and launches the stall watchdog.
func (o *Orchestrator) Start() {
	if o.running.Swap(true) {
		return
	}
	o.heartbeat.Store(time.Now().UnixMilli())
	o.watchdogStop = make(chan struct{})
	go o.watchdog(o.watchdogStop)
}

// Stop halts the watchdog and cancels all in-flight animations. Cancelled
// runs never invoke their completion callbacks.
func (o *Orchestrator) Stop() {
	if !o.running.Swap(false) {
		return
	}
	close(o.watchdogStop)
	o.sched.CancelAll()
}

// Dispose is deterministic teardown: Stop plus listener release.
func (o *Orchestrator) Dispose() {
	o.Stop()
	o.posListeners = nil
	o.perfListeners = nil
}

// watchdog detects a stalled frame loop: the engine claims to be running but
// Step has not been called within the threshold. Recovery is delegated to
// the stall handler; the watchdog itself only observes and logs.
func (o *Orchestrator) watchdog(stop chan struct{}) {
	ticker := time.NewTicker(watchdogInterval)
	defer ticker.Stop()

	stalled := false
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			if !o.running.Load() {
				return
			}
			silence := time.Now().UnixMilli() - o.heartbeat.Load()
			if silence > stallThresholdMs {
				if !stalled {
					log.Printf("vantage: frame loop stalled for %dms, restarting", silence)
					if o.onStall != nil {
						o.onStall()
					}
				}
				stalled = true
			} else {
				stalled = false
			}
		}
	}
}
